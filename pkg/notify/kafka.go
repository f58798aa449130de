package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"studio-booking/internal/data/entity"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// KafkaNotifier writes a ConfirmationEvent keyed by booking id.
type KafkaNotifier struct {
	writer *kafka.Writer
	log    *zap.Logger
}

func NewKafkaNotifier(brokers []string, topic string, log *zap.Logger) *KafkaNotifier {
	return &KafkaNotifier{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			BatchTimeout:           10 * time.Millisecond,
			AllowAutoTopicCreation: true,
		},
		log: log.With(zap.String("notifier", "kafka"), zap.String("topic", topic)),
	}
}

func (n *KafkaNotifier) SendConfirmation(ctx context.Context, booking *entity.Booking) error {
	ev, err := NewConfirmationEvent(booking)
	if err != nil {
		return fmt.Errorf("build confirmation event: %w", err)
	}
	value, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal confirmation event: %w", err)
	}

	err = n.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(ev.BookingID),
		Value: value,
		Time:  time.Now(),
	})
	if err != nil {
		return fmt.Errorf("write confirmation: %w", err)
	}

	n.log.Info("Confirmation event written", zap.String("booking_id", ev.BookingID))
	return nil
}

func (n *KafkaNotifier) Close() error {
	return n.writer.Close()
}
