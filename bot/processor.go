package bot

import (
	"context"
	"strings"
	"sync"

	"github.com/line/line-bot-sdk-go/v8/linebot/webhook"
	"go.uber.org/zap"

	"fernbot/match"
)

// User-facing texts for the terminal outcomes the matcher cannot answer.
// Internal error detail never reaches the chat, only the logs.
const (
	emptyStoreText = "ขออภัยครับ ยังไม่มีข้อมูลในระบบ\nกรุณาเพิ่มข้อมูลใน Firestore ก่อนนะครับ"
	storeDownText  = "ขออภัยครับ ตอนนี้ระบบมีปัญหา เดี๋ยวลองใหม่อีกทีนะครับ 🙏"
	notFoundText   = "ขออภัยครับ ไม่พบคำตอบสำหรับคำถามนี้ 😅\nลองถามด้วยคำง่ายๆ เช่น \"ชอบอะไร\" หรือ \"กินอะไร\""
	rateLimitText  = "ถามรัวไปหน่อยครับ พักแป๊บนึงแล้วค่อยถามใหม่นะครับ ⏳"

	suggestionHeader = "หรือว่าอยากถามข้อนี้:"
)

// Processor turns inbound LINE events into replies. Each webhook delivery
// may carry several events; they are processed independently with no shared
// mutable state and no ordering guarantee between their replies.
type Processor struct {
	engine          *match.Engine
	replier         Replier
	limiter         *ChatLimiter
	suggestionLimit int
	logger          *zap.Logger
}

// NewProcessor wires the event pipeline. limiter may be nil to disable
// per-chat rate limiting.
func NewProcessor(engine *match.Engine, replier Replier, limiter *ChatLimiter, suggestionLimit int, logger *zap.Logger) *Processor {
	return &Processor{
		engine:          engine,
		replier:         replier,
		limiter:         limiter,
		suggestionLimit: suggestionLimit,
		logger:          logger,
	}
}

// HandleEvents processes one webhook batch. It returns once every event has
// been handled so the HTTP handler can acknowledge the whole delivery;
// individual event failures are logged and never fail the batch.
func (p *Processor) HandleEvents(ctx context.Context, events []webhook.EventInterface) {
	var wg sync.WaitGroup
	for _, ev := range events {
		msgEvent, ok := ev.(webhook.MessageEvent)
		if !ok {
			continue
		}
		wg.Add(1)
		go func(ev webhook.MessageEvent) {
			defer wg.Done()
			p.handleMessage(ctx, ev)
		}(msgEvent)
	}
	wg.Wait()
}

func (p *Processor) handleMessage(ctx context.Context, event webhook.MessageEvent) {
	textMsg, ok := event.Message.(webhook.TextMessageContent)
	if !ok {
		// Only text messages are answerable
		return
	}

	text := strings.TrimSpace(textMsg.Text)
	if text == "" {
		return
	}

	if p.limiter != nil {
		if chatID := sourceChatID(event.Source); chatID != "" && !p.limiter.Allow(chatID) {
			p.logger.Warn("Chat rate limit exceeded", zap.String("chat_id", truncateID(chatID)))
			p.reply(ctx, event.ReplyToken, rateLimitText)
			return
		}
	}

	p.reply(ctx, event.ReplyToken, p.Answer(ctx, text))
}

// Answer runs the full matching pipeline on one message and produces the
// reply text. It always returns something sendable: store failures and
// missed matches map to fixed best-effort messages.
func (p *Processor) Answer(ctx context.Context, text string) string {
	query := match.NewQuery(text)

	result, err := p.engine.Rank(ctx, query)
	if err != nil {
		p.logger.Error("Candidate fetch failed", zap.Error(err))
		return storeDownText
	}

	if result.Scanned == 0 {
		return emptyStoreText
	}

	if result.Best == nil {
		return notFound(result.Suggestions(p.suggestionLimit))
	}

	return match.SelectAnswer(result.Best.Entry, query.Persona)
}

func (p *Processor) reply(ctx context.Context, replyToken, text string) {
	if err := p.replier.Reply(ctx, replyToken, text); err != nil {
		// The matcher already did its job; a delivery failure is the
		// platform's problem and must not fail the batch.
		p.logger.Warn("Reply delivery failed", zap.Error(err))
	}
}

func notFound(suggestions []string) string {
	if len(suggestions) == 0 {
		return notFoundText
	}
	var b strings.Builder
	b.WriteString(notFoundText)
	b.WriteString("\n\n")
	b.WriteString(suggestionHeader)
	for _, s := range suggestions {
		b.WriteString("\n• ")
		b.WriteString(s)
	}
	return b.String()
}

// sourceChatID extracts a stable per-chat identifier from an event source
// for rate limiting: the group, room, or user id, in that order.
func sourceChatID(source webhook.SourceInterface) string {
	switch s := source.(type) {
	case webhook.GroupSource:
		return s.GroupId
	case *webhook.GroupSource:
		return s.GroupId
	case webhook.RoomSource:
		return s.RoomId
	case *webhook.RoomSource:
		return s.RoomId
	case webhook.UserSource:
		return s.UserId
	case *webhook.UserSource:
		return s.UserId
	default:
		return ""
	}
}

func truncateID(id string) string {
	if len(id) > 8 {
		return id[:8] + "..."
	}
	return id
}
