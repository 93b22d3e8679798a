package bot

import (
	"context"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"

	"fernbot/errors"
)

// Replier sends one text reply back through the messaging platform. The
// processor only ever needs to produce text, so the interface stays this
// narrow and tests can inject a recorder.
type Replier interface {
	Reply(ctx context.Context, replyToken, text string) error
}

type lineReplier struct {
	api *messaging_api.MessagingApiAPI
}

// NewLineReplier wraps the LINE Messaging API client as a Replier.
func NewLineReplier(api *messaging_api.MessagingApiAPI) Replier {
	return &lineReplier{api: api}
}

func (r *lineReplier) Reply(_ context.Context, replyToken, text string) error {
	_, err := r.api.ReplyMessage(&messaging_api.ReplyMessageRequest{
		ReplyToken: replyToken,
		Messages: []messaging_api.MessageInterface{
			&messaging_api.TextMessage{Text: text},
		},
	})
	if err != nil {
		return errors.WrapError(errors.ErrReplyDelivery, err.Error())
	}
	return nil
}
