package mq

import (
	"context"
	"fmt"

	"carpool/internal/shared/logger"
)

// Exchange and queue names shared by the coordinator and the chat gateway.
const (
	CommandExchange = "carpool_topic" // inbound: chat gateway -> coordinator
	CommandQueue    = "carpool.commands"
	CommandKey      = "carpool.command"

	NotifyExchange = "notify_direct" // outbound: coordinator -> chat gateway
	NotifyQueue    = "notify.dispatch"
	NotifyKey      = "notify.member"
	ReplyKey       = "notify.reply"

	ActivityQueue = "dashboard.activity" // outbound: coordinator -> dashboard feed
	ActivityKey   = "dashboard.activity"
)

// SetupTopology declares the exchanges, queues and bindings. Declarations are
// idempotent, so every service can run this on startup.
func SetupTopology(ctx context.Context, mq *RabbitMQ, log *logger.Logger) error {
	ch := mq.Channel()
	if ch == nil {
		return fmt.Errorf("rabbitmq channel not available")
	}

	if err := ch.ExchangeDeclare(
		CommandExchange,
		"topic",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,   // args
	); err != nil {
		return fmt.Errorf("declare %s: %w", CommandExchange, err)
	}

	if err := ch.ExchangeDeclare(
		NotifyExchange,
		"direct",
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return fmt.Errorf("declare %s: %w", NotifyExchange, err)
	}

	if _, err := ch.QueueDeclare(CommandQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue %s: %w", CommandQueue, err)
	}
	if err := ch.QueueBind(CommandQueue, CommandKey, CommandExchange, false, nil); err != nil {
		return fmt.Errorf("bind queue %s: %w", CommandQueue, err)
	}

	// Both member notifications and command replies land on the dispatch
	// queue; the chat gateway consumes it and does the platform-specific DM.
	if _, err := ch.QueueDeclare(NotifyQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue %s: %w", NotifyQueue, err)
	}
	for _, key := range []string{NotifyKey, ReplyKey} {
		if err := ch.QueueBind(NotifyQueue, key, NotifyExchange, false, nil); err != nil {
			return fmt.Errorf("bind queue %s (%s): %w", NotifyQueue, key, err)
		}
	}

	// Activity events ride the same direct exchange on their own key; the
	// dashboard consumes them and pushes into its websocket hub.
	if _, err := ch.QueueDeclare(ActivityQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue %s: %w", ActivityQueue, err)
	}
	if err := ch.QueueBind(ActivityQueue, ActivityKey, NotifyExchange, false, nil); err != nil {
		return fmt.Errorf("bind queue %s: %w", ActivityQueue, err)
	}

	log.Info(logger.Entry{
		Action:  "topology_setup_complete",
		Message: "all exchanges and queues created",
	})

	return nil
}
