package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

// Publisher is the seam the order and webhook services publish through.
type Publisher interface {
	PublishOrderEvent(ctx context.Context, event *OrderEvent) error
	PublishPaymentAlert(ctx context.Context, alert *PaymentAlert) error
}

// OrderEvent is emitted on the order events topic for every created order.
type OrderEvent struct {
	Type             string    `json:"type"` // e.g. "order.created"
	OrderID          uint      `json:"order_id"`
	PaymentReference string    `json:"payment_reference"`
	TotalAmount      int64     `json:"total_amount"`
	CustomerEmail    string    `json:"customer_email"`
	OccurredAt       time.Time `json:"occurred_at"`
}

// PaymentAlert is emitted on the payment alerts topic when the webhook
// reconciler sees a charge with no matching order. It is consumed by the
// on-call alerting pipeline; log scraping is not the only trail.
type PaymentAlert struct {
	Type             string    `json:"type"` // e.g. "payment.discrepancy"
	PaymentReference string    `json:"payment_reference"`
	Amount           int64     `json:"amount"`
	Detail           string    `json:"detail"`
	OccurredAt       time.Time `json:"occurred_at"`
}

type KafkaPublisher struct {
	orderWriter *kafka.Writer
	alertWriter *kafka.Writer
}

func NewKafkaPublisher(brokers, orderTopic, alertTopic string) *KafkaPublisher {
	return &KafkaPublisher{
		orderWriter: newWriter(brokers, orderTopic),
		alertWriter: newWriter(brokers, alertTopic),
	}
}

func newWriter(brokers, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(strings.Split(brokers, ",")...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
}

func (p *KafkaPublisher) PublishOrderEvent(ctx context.Context, event *OrderEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(fmt.Sprintf("order-%d", event.OrderID)),
		Value: value,
	}
	if err := p.orderWriter.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish order event: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) PublishPaymentAlert(ctx context.Context, alert *PaymentAlert) error {
	value, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("failed to marshal payment alert: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte("payment-" + alert.PaymentReference),
		Value: value,
	}
	if err := p.alertWriter.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish payment alert: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	if err := p.orderWriter.Close(); err != nil {
		return err
	}
	return p.alertWriter.Close()
}
