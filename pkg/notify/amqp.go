package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"studio-booking/internal/data/entity"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const confirmationRoutingKey = "booking.confirmation"

// AMQPNotifier publishes a ConfirmationEvent to a topic exchange.
type AMQPNotifier struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
	log      *zap.Logger
}

func NewAMQPNotifier(url, exchange string, log *zap.Logger) (*AMQPNotifier, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &AMQPNotifier{
		conn:     conn,
		ch:       ch,
		exchange: exchange,
		log:      log.With(zap.String("notifier", "amqp")),
	}, nil
}

func (n *AMQPNotifier) SendConfirmation(ctx context.Context, booking *entity.Booking) error {
	ev, err := NewConfirmationEvent(booking)
	if err != nil {
		return fmt.Errorf("build confirmation event: %w", err)
	}
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal confirmation event: %w", err)
	}

	err = n.ch.PublishWithContext(ctx, n.exchange, confirmationRoutingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    ev.BookingID,
		Timestamp:    time.Now(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish confirmation: %w", err)
	}

	n.log.Info("Confirmation event published",
		zap.String("booking_id", ev.BookingID),
		zap.String("exchange", n.exchange),
	)
	return nil
}

func (n *AMQPNotifier) Close() error {
	if n.ch != nil {
		_ = n.ch.Close()
	}
	if n.conn != nil {
		return n.conn.Close()
	}
	return nil
}
