package match

import (
	"strings"
	"time"
)

// Persona identifies whose stored answer a query is asking about.
type Persona int

const (
	// PersonaBoth means no single persona was unambiguously mentioned:
	// either neither name appeared in the query, or both did.
	PersonaBoth Persona = iota
	PersonaFern
	PersonaNannam
)

func (p Persona) String() string {
	switch p {
	case PersonaFern:
		return "fern"
	case PersonaNannam:
		return "nannam"
	default:
		return "both"
	}
}

// Entry is one stored question/answer record from the content collection.
// Every field except ID is optional: an entry with neither a question nor
// keywords can never match, and an entry with no answers is still a valid
// match target (selection falls back to a "no answer yet" reply).
type Entry struct {
	ID           string
	Question     string
	Keywords     []string
	FernAnswer   string
	NannamAnswer string
}

// Query is the per-request derived form of an inbound message.
type Query struct {
	Raw      string
	Persona  Persona
	Cleaned  string
	Keywords []string
}

// NewQuery derives persona, cleaned text and content keywords from a raw
// message. If stripping the persona aliases empties the text, Cleaned falls
// back to the raw text so an all-alias query still has something to search
// with.
func NewQuery(raw string) Query {
	raw = strings.TrimSpace(raw)
	q := Query{
		Raw:     raw,
		Persona: DetectPersona(raw),
		Cleaned: Clean(raw),
	}
	if q.Cleaned == "" {
		q.Cleaned = strings.ToLower(raw)
	}
	q.Keywords = ExtractKeywords(q.Cleaned)
	return q
}

// SignalHit records one similarity signal that fired for a candidate,
// with its contribution and the text that triggered it.
type SignalHit struct {
	Signal string  `json:"signal"`
	Score  float64 `json:"score"`
	Detail string  `json:"detail,omitempty"`
}

// Match is the scoring result for a single candidate entry.
type Match struct {
	Entry   Entry
	Score   float64
	Signals []SignalHit
}

// Result is the outcome of ranking a query against the full candidate set.
// Best is nil when no candidate cleared the acceptance threshold. Ranked
// holds every scanned candidate sorted by descending score, unrankable
// (signal-less) candidates last.
type Result struct {
	Best    *Match
	Ranked  []Match
	Scanned int
}

// Suggestions returns up to n candidate questions usable as "did you mean"
// hints: rankable entries with a non-empty question, best first.
func (r Result) Suggestions(n int) []string {
	var out []string
	for _, m := range r.Ranked {
		if len(out) >= n {
			break
		}
		if len(m.Signals) == 0 || m.Entry.Question == "" {
			continue
		}
		out = append(out, m.Entry.Question)
	}
	return out
}

// Trace is the per-request diagnostic record emitted by the ranking engine.
// The engine itself never logs; the consumer decides what to do with it.
type Trace struct {
	RequestID string
	Query     Query
	Scanned   int
	BestID    string
	BestScore float64
	Signals   []SignalHit
	Accepted  bool
	Elapsed   time.Duration
}

// TraceSink consumes ranking traces.
type TraceSink interface {
	Emit(Trace)
}

// TraceSinkFunc adapts a function to the TraceSink interface.
type TraceSinkFunc func(Trace)

func (f TraceSinkFunc) Emit(t Trace) { f(t) }
