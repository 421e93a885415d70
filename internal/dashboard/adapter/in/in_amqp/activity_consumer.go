package in_amqp

import (
	"context"
	"encoding/json"

	"carpool/internal/carpool/application/ports/out"
	"carpool/internal/shared/logger"
	"carpool/internal/shared/mq"
	"carpool/internal/shared/ws"

	amqp091 "github.com/rabbitmq/amqp091-go"
)

// ActivityConsumer bridges coordinator activity events into the dashboard's
// websocket hub. Events are fire-and-forget: malformed ones are dropped, not
// requeued.
type ActivityConsumer struct {
	mq  *mq.RabbitMQ
	hub *ws.Hub
	log *logger.Logger
}

func NewActivityConsumer(rabbit *mq.RabbitMQ, hub *ws.Hub, log *logger.Logger) *ActivityConsumer {
	return &ActivityConsumer{mq: rabbit, hub: hub, log: log}
}

func (c *ActivityConsumer) Start(ctx context.Context) error {
	c.log.Info(logger.Entry{
		Action:  "activity_consumer_starting",
		Message: "starting dashboard activity consumer",
	})
	return c.mq.Consume(ctx, mq.ActivityQueue, "dashboard-service", func(msg amqp091.Delivery) {
		c.handleActivity(msg)
	})
}

func (c *ActivityConsumer) handleActivity(msg amqp091.Delivery) {
	var event out.ActivityEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		c.log.Error(logger.Entry{
			Action:  "activity_unmarshal_failed",
			Message: err.Error(),
			Error:   &logger.ErrObj{Msg: err.Error()},
		})
		_ = msg.Nack(false, false)
		return
	}

	if err := c.hub.BroadcastJSON(event); err != nil {
		c.log.Debug(logger.Entry{
			Action:  "activity_rebroadcast_failed",
			Message: err.Error(),
			GroupID: event.GroupID,
		})
	}
	_ = msg.Ack(false)
}
