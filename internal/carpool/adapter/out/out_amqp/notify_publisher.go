package out_amqp

import (
	"context"
	"fmt"

	"carpool/internal/carpool/application/ports/out"
	"carpool/internal/shared/logger"
	"carpool/internal/shared/mq"
)

// NotifyPublisher implements out.Notifier by publishing one message per
// recipient onto the notify exchange; the chat gateway consumes the queue
// and does the platform-specific DM. Replies to the issuing user ride a
// separate routing key so the gateway can render them inline.
type NotifyPublisher struct {
	mq  *mq.RabbitMQ
	log *logger.Logger
}

func NewNotifyPublisher(rabbit *mq.RabbitMQ, log *logger.Logger) *NotifyPublisher {
	return &NotifyPublisher{mq: rabbit, log: log}
}

type notifyMessage struct {
	UserID  string         `json:"user_id"`
	Kind    string         `json:"kind"`
	GroupID string         `json:"group_id,omitempty"`
	Text    string         `json:"text"`
	Payload map[string]any `json:"payload,omitempty"`
}

func (p *NotifyPublisher) Send(ctx context.Context, userExternalID string, n out.Notification) error {
	key := mq.NotifyKey
	if n.Kind == "reply" {
		key = mq.ReplyKey
	}

	msg := notifyMessage{
		UserID:  userExternalID,
		Kind:    n.Kind,
		GroupID: n.GroupID,
		Text:    n.Text,
		Payload: n.Payload,
	}
	if err := p.mq.Publish(ctx, mq.NotifyExchange, key, msg); err != nil {
		return fmt.Errorf("publish notification: %w", err)
	}

	p.log.Debug(logger.Entry{
		Action:  "notification_published",
		Message: n.Kind,
		GroupID: n.GroupID,
		Additional: map[string]any{
			"user_id":     userExternalID,
			"routing_key": key,
		},
	})
	return nil
}
