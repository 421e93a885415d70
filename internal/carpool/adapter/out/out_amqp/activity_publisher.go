package out_amqp

import (
	"context"
	"fmt"

	"carpool/internal/carpool/application/ports/out"
	"carpool/internal/shared/logger"
	"carpool/internal/shared/mq"
)

// ActivityPublisher implements out.ActivityBroadcaster for the coordinator
// service, which has no websocket clients of its own: events cross to the
// dashboard over the broker and the dashboard re-broadcasts into its hub.
type ActivityPublisher struct {
	mq  *mq.RabbitMQ
	log *logger.Logger
}

func NewActivityPublisher(rabbit *mq.RabbitMQ, log *logger.Logger) *ActivityPublisher {
	return &ActivityPublisher{mq: rabbit, log: log}
}

func (p *ActivityPublisher) Broadcast(ctx context.Context, event out.ActivityEvent) error {
	if err := p.mq.Publish(ctx, mq.NotifyExchange, mq.ActivityKey, event); err != nil {
		return fmt.Errorf("publish activity event: %w", err)
	}
	p.log.Debug(logger.Entry{
		Action:  "activity_published",
		Message: event.Type,
		GroupID: event.GroupID,
	})
	return nil
}
