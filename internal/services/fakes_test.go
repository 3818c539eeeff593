package services

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"storefront/internal/events"
	"storefront/internal/models"
	"storefront/internal/repository"
	"storefront/pkg/paystack"

	"gorm.io/gorm"
)

// In-memory collaborators for service tests.

type fakeOrderRepo struct {
	mu     sync.Mutex
	nextID uint
	orders map[string]*models.Order // keyed by payment reference
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{nextID: 1, orders: make(map[string]*models.Order)}
}

func (r *fakeOrderRepo) CreateWithItems(ctx context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.orders[order.PaymentReference]; exists {
		return repository.ErrDuplicateReference
	}
	order.ID = r.nextID
	r.nextID++
	for i := range order.Items {
		order.Items[i].OrderID = order.ID
	}
	stored := *order
	r.orders[order.PaymentReference] = &stored
	return nil
}

func (r *fakeOrderRepo) GetByID(ctx context.Context, id uint) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeOrderRepo) GetByReference(ctx context.Context, reference string) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if o, ok := r.orders[reference]; ok {
		return o, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeOrderRepo) GetByUserID(ctx context.Context, userID uint) ([]models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Order
	for _, o := range r.orders {
		if o.UserID != nil && *o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) GetAll(ctx context.Context) ([]models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Order
	for _, o := range r.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (r *fakeOrderRepo) UpdateStatus(ctx context.Context, id uint, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.ID == id {
			o.Status = status
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeOrderRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.orders)
}

type fakeGateway struct {
	mu      sync.Mutex
	results map[string]*gatewayOutcome
	calls   int
}

type gatewayOutcome struct {
	status string
	amount int64
	err    error
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{results: make(map[string]*gatewayOutcome)}
}

func (g *fakeGateway) succeed(reference string, amount int64) {
	g.results[reference] = &gatewayOutcome{status: "success", amount: amount}
}

func (g *fakeGateway) fail(reference string) {
	g.results[reference] = &gatewayOutcome{status: "failed"}
}

func (g *fakeGateway) unreachable(reference string) {
	g.results[reference] = &gatewayOutcome{err: errors.New("connection refused")}
}

func (g *fakeGateway) VerifyTransaction(ctx context.Context, reference string) (*paystack.VerificationResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	outcome, ok := g.results[reference]
	if !ok {
		return nil, errors.New("unknown reference")
	}
	if outcome.err != nil {
		return nil, outcome.err
	}
	return &paystack.VerificationResult{
		Reference: reference,
		Status:    outcome.status,
		Amount:    outcome.amount,
		Currency:  "NGN",
	}, nil
}

type fakeCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]byte)}
}

func (c *fakeCache) SetVerification(ctx context.Context, reference string, value interface{}, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[reference] = data
	return nil
}

func (c *fakeCache) GetVerification(ctx context.Context, reference string, dest interface{}) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.entries[reference]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, dest)
}

type fakeMailer struct {
	mu      sync.Mutex
	sent    []string // recipients
	failFor map[string]error
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{failFor: make(map[string]error)}
}

func (m *fakeMailer) Send(ctx context.Context, to, subject, html string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.failFor[to]; ok {
		return err
	}
	m.sent = append(m.sent, to)
	return nil
}

func (m *fakeMailer) recipients() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.sent...)
}

type fakePublisher struct {
	mu          sync.Mutex
	orderEvents []*events.OrderEvent
	alerts      []*events.PaymentAlert
	failOrders  error
}

func (p *fakePublisher) PublishOrderEvent(ctx context.Context, event *events.OrderEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failOrders != nil {
		return p.failOrders
	}
	p.orderEvents = append(p.orderEvents, event)
	return nil
}

func (p *fakePublisher) PublishPaymentAlert(ctx context.Context, alert *events.PaymentAlert) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.alerts = append(p.alerts, alert)
	return nil
}
