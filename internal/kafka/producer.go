package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
)

// BookingEvent is published on every lifecycle transition so downstream
// consumers (notifications, analytics) can follow bookings without polling.
type BookingEvent struct {
	Type       string     `json:"type"`
	BookingID  string     `json:"booking_id"`
	UserID     string     `json:"user_id,omitempty"`
	PNR        string     `json:"pnr,omitempty"`
	Source     string     `json:"source"`
	Status     string     `json:"status"`
	Currency   string     `json:"currency"`
	TotalPrice *float64   `json:"total_price,omitempty"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
}

const (
	EventBookingCreated   = "booking_created"
	EventBookingConfirmed = "booking_confirmed"
	EventBookingTicketed  = "booking_ticketed"
	EventBookingCancelled = "booking_cancelled"
	EventBookingExpired   = "booking_expired"
)

type Producer struct {
	writer *kafka.Writer
}

func NewProducer(brokers []string) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}
	return &Producer{writer: writer}
}

func (p *Producer) Publish(ctx context.Context, topic, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
	})
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
