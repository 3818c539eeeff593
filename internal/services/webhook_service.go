package services

import (
	"context"
	"errors"
	"time"

	"storefront/internal/events"
	"storefront/internal/repository"

	"gorm.io/gorm"
)

// ChargeEvent is the parsed payload of a gateway webhook delivery.
type ChargeEvent struct {
	Type      string `json:"event"`
	Reference string `json:"reference"`
	Amount    int64  `json:"amount"`
}

type WebhookService interface {
	ProcessChargeSuccess(ctx context.Context, event *ChargeEvent) error
}

type webhookService struct {
	orderRepo repository.OrderRepository
	publisher events.Publisher
}

func NewWebhookService(orderRepo repository.OrderRepository, publisher events.Publisher) WebhookService {
	return &webhookService{orderRepo: orderRepo, publisher: publisher}
}

// ProcessChargeSuccess reconciles an asynchronous charge.success delivery
// against the orders table. An existing order means the synchronous path won
// and this is a no-op. A missing order means money moved without a merchant
// record: that discrepancy goes to the alerts topic for manual intervention.
// Either way the caller must ack the gateway, so no error is returned for the
// missing-order case.
func (s *webhookService) ProcessChargeSuccess(ctx context.Context, event *ChargeEvent) error {
	order, err := s.orderRepo.GetByReference(ctx, event.Reference)
	if err == nil {
		logger.Info().Str("reference", event.Reference).Uint("order_id", order.ID).Msg("Webhook matched existing order")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	logger.Error().
		Str("reference", event.Reference).
		Int64("amount", event.Amount).
		Msg("Charge succeeded but no matching order exists; manual reconciliation required")

	alert := &events.PaymentAlert{
		Type:             "payment.discrepancy",
		PaymentReference: event.Reference,
		Amount:           event.Amount,
		Detail:           "charge.success received with no matching order",
		OccurredAt:       time.Now(),
	}
	if err := s.publisher.PublishPaymentAlert(ctx, alert); err != nil {
		logger.Error().Err(err).Str("reference", event.Reference).Msg("Failed to publish payment alert")
	}
	return nil
}
