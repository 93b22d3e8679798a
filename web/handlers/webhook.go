package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/line/line-bot-sdk-go/v8/linebot/webhook"
	"go.uber.org/zap"

	"fernbot/bot"
)

// WebhookHandler receives LINE webhook deliveries. The platform expects a
// 2xx acknowledgement for every delivered batch, so event-level failures
// never change the response status; only an unverifiable request is
// rejected.
type WebhookHandler struct {
	processor     *bot.Processor
	channelSecret string
	logger        *zap.Logger
}

func NewWebhookHandler(processor *bot.Processor, channelSecret string, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		processor:     processor,
		channelSecret: channelSecret,
		logger:        logger,
	}
}

func (h *WebhookHandler) Callback(c *gin.Context) {
	cb, err := webhook.ParseRequest(h.channelSecret, c.Request)
	if err != nil {
		if errors.Is(err, webhook.ErrInvalidSignature) {
			h.logger.Warn("Webhook signature verification failed")
			c.Status(http.StatusBadRequest)
			return
		}
		h.logger.Error("Failed to parse webhook request", zap.Error(err))
		c.Status(http.StatusInternalServerError)
		return
	}

	h.processor.HandleEvents(c.Request.Context(), cb.Events)
	c.Status(http.StatusOK)
}
