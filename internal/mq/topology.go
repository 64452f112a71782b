package mq

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Exchange — тип для имени обменника.
type Exchange string

// Queue — тип для имени очереди.
type Queue string

// RoutingKey — тип для ключа маршрутизации.
type RoutingKey string

// Топология событий Keeper.
const (
	ExchangeEvents Exchange = "keeper.events"

	QueueAccountsSettled Queue = "accounts.settled"
	QueueCyclesCompleted Queue = "cycles.completed"

	RoutingKeyAccountSettled RoutingKey = "account.settled"
	RoutingKeyCycleCompleted RoutingKey = "cycle.completed"
)

// SetupTopology объявляет обменник, очереди и привязки.
// Идемпотентна: повторный вызов на существующей топологии безопасен.
func SetupTopology(ctx context.Context, conn *Connection) error {
	return conn.WithChannel(ctx, func(ch *amqp.Channel) error {
		err := ch.ExchangeDeclare(
			string(ExchangeEvents), // name
			"direct",               // type
			true,                   // durable
			false,                  // auto-deleted
			false,                  // internal
			false,                  // no-wait
			nil,                    // arguments
		)
		if err != nil {
			return fmt.Errorf("declare exchange %s: %w", ExchangeEvents, err)
		}

		bindings := []struct {
			queue Queue
			key   RoutingKey
		}{
			{QueueAccountsSettled, RoutingKeyAccountSettled},
			{QueueCyclesCompleted, RoutingKeyCycleCompleted},
		}

		for _, b := range bindings {
			if _, err := ch.QueueDeclare(
				string(b.queue), // name
				true,            // durable
				false,           // auto-delete
				false,           // exclusive
				false,           // no-wait
				nil,             // arguments
			); err != nil {
				return fmt.Errorf("declare queue %s: %w", b.queue, err)
			}

			if err := ch.QueueBind(
				string(b.queue),
				string(b.key),
				string(ExchangeEvents),
				false,
				nil,
			); err != nil {
				return fmt.Errorf("bind queue %s: %w", b.queue, err)
			}
		}

		return nil
	})
}
