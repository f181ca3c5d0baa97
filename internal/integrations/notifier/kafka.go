package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

// NewKafkaWriter создает синхронный писатель в топик уведомлений
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
		Async:        false,
	}
}

// KafkaSink публикует уведомления в Kafka.
// Ключ сообщения - ID бронирования, чтобы события одного бронирования шли в одну партицию по порядку.
type KafkaSink struct {
	writer MessageWriter
	now    func() time.Time
}

// NewKafkaSink создает sink поверх писателя Kafka
func NewKafkaSink(writer MessageWriter) *KafkaSink {
	return &KafkaSink{
		writer: writer,
		now:    time.Now,
	}
}

// Notify публикует одно уведомление
func (s *KafkaSink) Notify(ctx context.Context, n domain.Notification) error {
	event := NewEvent(n, s.now())

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(n.BookingID, 10)),
		Value: payload,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(event.ID.String())},
			{Key: "category", Value: []byte(event.Category)},
		},
	}

	if err := s.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("%w: booking=%d: %v", ErrPublish, n.BookingID, err)
	}
	return nil
}

// Close закрывает писатель
func (s *KafkaSink) Close() error {
	return s.writer.Close()
}
