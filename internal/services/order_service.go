package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"storefront/internal/events"
	"storefront/internal/models"
	"storefront/internal/repository"
	"storefront/pkg/paystack"

	"github.com/rs/zerolog"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

var (
	// ErrPaymentNotVerified: the gateway answered and reports the charge did
	// not succeed. Fatal to the checkout attempt.
	ErrPaymentNotVerified = errors.New("payment not verified by gateway")
	// ErrVerificationUnavailable: the verify call itself failed. The charge
	// may still have succeeded on the gateway side; the webhook reconciler
	// is the fallback trail for that case.
	ErrVerificationUnavailable = errors.New("payment verification unavailable")
	// ErrAmountMismatch: recomputed total does not equal the gateway-reported
	// paid amount. Treated as potential tampering.
	ErrAmountMismatch = errors.New("paid amount does not match order total")
)

// GatewayVerifier is the narrow seam over the payment gateway client.
type GatewayVerifier interface {
	VerifyTransaction(ctx context.Context, reference string) (*paystack.VerificationResult, error)
}

// VerificationCache caches successful gateway verifications by reference so
// the webhook path does not need a second round-trip.
type VerificationCache interface {
	SetVerification(ctx context.Context, reference string, value interface{}, ttl time.Duration) error
	GetVerification(ctx context.Context, reference string, dest interface{}) (bool, error)
}

type CheckoutItem struct {
	ProductID uint   `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"` // minor currency units
	Quantity  int    `json:"quantity"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

type ShippingAddress struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

type CheckoutInput struct {
	Reference string
	UserID    *uint
	Name      string
	Email     string
	Address   ShippingAddress
	Items     []CheckoutItem
}

// CheckoutResult carries the created (or previously created) order. Duplicate
// is true when the payment reference had already been processed and the
// existing order was returned instead of a new one.
type CheckoutResult struct {
	Order     *models.Order
	Duplicate bool
}

type OrderService interface {
	Checkout(ctx context.Context, input *CheckoutInput) (*CheckoutResult, error)
	GetOrderByID(ctx context.Context, id uint) (*models.Order, error)
	GetOrdersByUser(ctx context.Context, userID uint) ([]models.Order, error)
	GetAllOrders(ctx context.Context) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, id uint, status string) error
}

type orderService struct {
	orderRepo      repository.OrderRepository
	gateway        GatewayVerifier
	verifyCache    VerificationCache
	notifier       NotificationService
	publisher      events.Publisher
	shippingRate   int
	verifyCacheTTL time.Duration
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	gateway GatewayVerifier,
	verifyCache VerificationCache,
	notifier NotificationService,
	publisher events.Publisher,
	shippingRate int,
	verifyCacheTTL time.Duration,
) OrderService {
	return &orderService{
		orderRepo:      orderRepo,
		gateway:        gateway,
		verifyCache:    verifyCache,
		notifier:       notifier,
		publisher:      publisher,
		shippingRate:   shippingRate,
		verifyCacheTTL: verifyCacheTTL,
	}
}

// Checkout runs the full order-creation pipeline: gateway verification,
// amount reconciliation, transactional order write, best-effort notifications
// and an order event. A duplicate payment reference is converted into an
// idempotent success carrying the order that won the race.
func (s *orderService) Checkout(ctx context.Context, input *CheckoutInput) (*CheckoutResult, error) {
	verification, err := s.verify(ctx, input.Reference)
	if err != nil {
		logger.Error().Err(err).Str("reference", input.Reference).Msg("Gateway verification call failed")
		return nil, ErrVerificationUnavailable
	}
	if !verification.Succeeded() {
		logger.Warn().Str("reference", input.Reference).Str("status", verification.Status).Msg("Payment not verified")
		return nil, ErrPaymentNotVerified
	}

	subtotal := CartSubtotal(input.Items)
	shipping := ShippingCost(subtotal, s.shippingRate)
	expected := subtotal + shipping
	if expected != verification.Amount {
		logger.Warn().
			Str("reference", input.Reference).
			Int64("expected", expected).
			Int64("paid", verification.Amount).
			Msg("Paid amount does not match recomputed total")
		return nil, ErrAmountMismatch
	}

	order := &models.Order{
		UserID:           input.UserID,
		Status:           string(models.OrderPaid),
		TotalAmount:      expected,
		ShippingCost:     shipping,
		PaymentReference: input.Reference,
		CustomerName:     input.Name,
		CustomerEmail:    input.Email,
		AddressLine1:     input.Address.Line1,
		AddressLine2:     input.Address.Line2,
		City:             input.Address.City,
		State:            input.Address.State,
		PostalCode:       input.Address.PostalCode,
		Country:          input.Address.Country,
		Items:            buildOrderItems(input.Items),
	}

	if err := s.orderRepo.CreateWithItems(ctx, order); err != nil {
		if errors.Is(err, repository.ErrDuplicateReference) {
			// Lost the race against a retry or the webhook path. The
			// reference did get persisted, so report the winner's order.
			existing, lookupErr := s.orderRepo.GetByReference(ctx, input.Reference)
			if lookupErr != nil {
				return nil, fmt.Errorf("duplicate reference but lookup failed: %w", lookupErr)
			}
			logger.Info().Str("reference", input.Reference).Uint("order_id", existing.ID).Msg("Duplicate checkout treated as success")
			return &CheckoutResult{Order: existing, Duplicate: true}, nil
		}
		return nil, err
	}

	// Everything past this point is best effort; the order is committed.
	s.notifier.SendOrderNotifications(ctx, order)

	event := &events.OrderEvent{
		Type:             "order.created",
		OrderID:          order.ID,
		PaymentReference: order.PaymentReference,
		TotalAmount:      order.TotalAmount,
		CustomerEmail:    order.CustomerEmail,
		OccurredAt:       time.Now(),
	}
	if err := s.publisher.PublishOrderEvent(ctx, event); err != nil {
		logger.Error().Err(err).Uint("order_id", order.ID).Msg("Failed to publish order event")
	}

	return &CheckoutResult{Order: order}, nil
}

func (s *orderService) verify(ctx context.Context, reference string) (*paystack.VerificationResult, error) {
	var cached paystack.VerificationResult
	hit, err := s.verifyCache.GetVerification(ctx, reference, &cached)
	if err != nil {
		logger.Warn().Err(err).Str("reference", reference).Msg("Verification cache read failed")
	} else if hit {
		return &cached, nil
	}

	result, err := s.gateway.VerifyTransaction(ctx, reference)
	if err != nil {
		return nil, err
	}

	if result.Succeeded() {
		if err := s.verifyCache.SetVerification(ctx, reference, result, s.verifyCacheTTL); err != nil {
			logger.Warn().Err(err).Str("reference", reference).Msg("Verification cache write failed")
		}
	}
	return result, nil
}

func buildOrderItems(items []CheckoutItem) []models.OrderItem {
	orderItems := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		orderItems = append(orderItems, models.OrderItem{
			ProductID:   item.ProductID,
			ProductName: item.Name,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			Size:        item.Size,
			Color:       item.Color,
		})
	}
	return orderItems
}

func (s *orderService) GetOrderByID(ctx context.Context, id uint) (*models.Order, error) {
	return s.orderRepo.GetByID(ctx, id)
}

func (s *orderService) GetOrdersByUser(ctx context.Context, userID uint) ([]models.Order, error) {
	return s.orderRepo.GetByUserID(ctx, userID)
}

func (s *orderService) GetAllOrders(ctx context.Context) ([]models.Order, error) {
	return s.orderRepo.GetAll(ctx)
}

func (s *orderService) UpdateOrderStatus(ctx context.Context, id uint, status string) error {
	if !models.ValidOrderStatus(status) {
		return fmt.Errorf("invalid order status %q", status)
	}
	return s.orderRepo.UpdateStatus(ctx, id, status)
}
