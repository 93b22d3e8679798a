package bot

import (
	"go.uber.org/zap"

	"fernbot/match"
)

// ZapTraceSink logs ranking traces. The match engine stays logging-free and
// only emits trace objects; this is the operator-facing consumer.
func ZapTraceSink(logger *zap.Logger) match.TraceSink {
	return match.TraceSinkFunc(func(t match.Trace) {
		fields := []zap.Field{
			zap.String("request_id", t.RequestID),
			zap.String("persona", t.Query.Persona.String()),
			zap.String("cleaned", t.Query.Cleaned),
			zap.Strings("keywords", t.Query.Keywords),
			zap.Int("scanned", t.Scanned),
			zap.Bool("accepted", t.Accepted),
			zap.Duration("elapsed", t.Elapsed),
		}
		if t.BestID != "" {
			fields = append(fields,
				zap.String("best_id", t.BestID),
				zap.Float64("best_score", t.BestScore),
				zap.Int("signals", len(t.Signals)))
		}
		logger.Debug("Ranked query", fields...)
	})
}
