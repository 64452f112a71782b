package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// MessageType — тип события.
type MessageType string

// Типы событий.
const (
	MessageTypeAccountSettled MessageType = "account.settled"
	MessageTypeCycleCompleted MessageType = "cycle.completed"
)

// Message — конверт события.
type Message struct {
	// ID — уникальный идентификатор сообщения.
	ID string `json:"id"`

	// Type — тип события.
	Type MessageType `json:"type"`

	// Payload — полезная нагрузка.
	Payload any `json:"payload"`

	// Timestamp — время создания.
	Timestamp time.Time `json:"timestamp"`
}

// AccountSettledPayload — событие о завершившемся workflow аккаунта.
type AccountSettledPayload struct {
	CycleID    uuid.UUID `json:"cycle_id"`
	Address    string    `json:"address"`
	Outcome    string    `json:"outcome"` // SUCCEEDED или FAILED
	FinalState string    `json:"final_state"`
	Points     *int64    `json:"points,omitempty"`
}

// CycleCompletedPayload — событие о завершившемся цикле.
type CycleCompletedPayload struct {
	CycleID    uuid.UUID `json:"cycle_id"`
	Total      int       `json:"total"`
	Succeeded  int       `json:"succeeded"`
	Failed     int       `json:"failed"`
	DurationMs int64     `json:"duration_ms"`
}

// Publisher публикует события Keeper в RabbitMQ.
type Publisher struct {
	conn   *Connection
	logger *slog.Logger
}

// NewPublisher создаёт новый Publisher.
func NewPublisher(conn *Connection, logger *slog.Logger) *Publisher {
	return &Publisher{
		conn:   conn,
		logger: logger,
	}
}

// PublishAccountSettled публикует событие account.settled.
func (p *Publisher) PublishAccountSettled(ctx context.Context, payload AccountSettledPayload) error {
	return p.publish(ctx, RoutingKeyAccountSettled, &Message{
		ID:        uuid.NewString(),
		Type:      MessageTypeAccountSettled,
		Payload:   payload,
		Timestamp: time.Now(),
	})
}

// PublishCycleCompleted публикует событие cycle.completed.
func (p *Publisher) PublishCycleCompleted(ctx context.Context, payload CycleCompletedPayload) error {
	return p.publish(ctx, RoutingKeyCycleCompleted, &Message{
		ID:        uuid.NewString(),
		Type:      MessageTypeCycleCompleted,
		Payload:   payload,
		Timestamp: time.Now(),
	})
}

// publish сериализует и публикует событие в exchange keeper.events.
func (p *Publisher) publish(ctx context.Context, routingKey RoutingKey, msg *Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	return p.conn.WithChannel(ctx, func(ch *amqp.Channel) error {
		err := ch.PublishWithContext(
			ctx,
			string(ExchangeEvents), // exchange
			string(routingKey),     // routing key
			false,
			false,
			amqp.Publishing{
				ContentType:  "application/json",
				DeliveryMode: amqp.Persistent, // событие переживёт рестарт RabbitMQ
				MessageId:    msg.ID,
				Timestamp:    msg.Timestamp,
				Body:         body,
			},
		)
		if err != nil {
			return fmt.Errorf("publish %s: %w", routingKey, err)
		}

		p.logger.Debug("published event",
			"type", msg.Type,
			"message_id", msg.ID,
		)
		return nil
	})
}
