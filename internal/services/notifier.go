package services

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/streadway/amqp"

	"alfredoptarigan/resume-ats-checker/internal/models"
)

// StatusUpdate is published whenever a comparison changes status.
type StatusUpdate struct {
	ComparisonID uuid.UUID               `json:"comparison_id"`
	Status       models.ComparisonStatus `json:"status"`
	Score        *float64                `json:"score,omitempty"`
	Error        string                  `json:"error,omitempty"`
	At           time.Time               `json:"at"`
}

type Notifier interface {
	Publish(update StatusUpdate) error
	Close() error
}

type noopNotifier struct{}

// NewNoopNotifier is used when no broker is configured.
func NewNoopNotifier() Notifier {
	return noopNotifier{}
}

func (noopNotifier) Publish(StatusUpdate) error { return nil }
func (noopNotifier) Close() error               { return nil }

type amqpNotifier struct {
	conn     *amqp.Connection
	exchange string
	mu       sync.Mutex
	ch       *amqp.Channel
}

// NewAMQPNotifier publishes updates to a topic exchange with routing key
// "comparison.<id>".
func NewAMQPNotifier(url, exchange string) (Notifier, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("error connecting to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("error opening RabbitMQ channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		exchange,
		amqp.ExchangeTopic,
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}

	log.Printf("📡 Publishing comparison updates to exchange '%s'\n", exchange)

	return &amqpNotifier{conn: conn, exchange: exchange, ch: ch}, nil
}

func (n *amqpNotifier) Publish(update StatusUpdate) error {
	if update.At.IsZero() {
		update.At = time.Now().UTC()
	}

	body, err := json.Marshal(update)
	if err != nil {
		return fmt.Errorf("failed to encode status update: %w", err)
	}

	// a channel is not safe for concurrent publishing
	n.mu.Lock()
	defer n.mu.Unlock()

	err = n.ch.Publish(
		n.exchange,
		fmt.Sprintf("comparison.%s", update.ComparisonID),
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    update.At,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish status update: %w", err)
	}
	return nil
}

func (n *amqpNotifier) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if err := n.ch.Close(); err != nil {
		n.conn.Close()
		return fmt.Errorf("failed to close channel: %w", err)
	}
	return n.conn.Close()
}
