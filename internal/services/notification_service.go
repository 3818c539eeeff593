package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"storefront/internal/models"
)

// Mailer is the seam over the transactional email client.
type Mailer interface {
	Send(ctx context.Context, to, subject, html string) error
}

type NotificationService interface {
	// SendOrderNotifications sends the customer confirmation and the admin
	// notification for a committed order. Both are attempted independently;
	// failures are logged and returned but must never affect the order.
	SendOrderNotifications(ctx context.Context, order *models.Order) []error
}

type notificationService struct {
	mailer     Mailer
	adminEmail string
}

func NewNotificationService(mailer Mailer, adminEmail string) NotificationService {
	return &notificationService{mailer: mailer, adminEmail: adminEmail}
}

func (s *notificationService) SendOrderNotifications(ctx context.Context, order *models.Order) []error {
	type outcome struct {
		recipient string
		err       error
	}

	var wg sync.WaitGroup
	results := make([]outcome, 2)

	wg.Add(2)
	go func() {
		defer wg.Done()
		err := s.mailer.Send(ctx, order.CustomerEmail,
			fmt.Sprintf("Order confirmation #%d", order.ID),
			customerEmailBody(order))
		results[0] = outcome{recipient: order.CustomerEmail, err: err}
	}()
	go func() {
		defer wg.Done()
		err := s.mailer.Send(ctx, s.adminEmail,
			fmt.Sprintf("New order #%d received", order.ID),
			adminEmailBody(order))
		results[1] = outcome{recipient: s.adminEmail, err: err}
	}()
	wg.Wait()

	var errs []error
	for _, r := range results {
		if r.err != nil {
			logger.Error().Err(r.err).Str("recipient", r.recipient).Uint("order_id", order.ID).Msg("Failed to send order notification")
			errs = append(errs, r.err)
		}
	}
	return errs
}

func customerEmailBody(order *models.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<h2>Thank you for your order, %s!</h2>", order.CustomerName)
	fmt.Fprintf(&b, "<p>Order #%d has been confirmed and paid.</p><ul>", order.ID)
	for _, item := range order.Items {
		fmt.Fprintf(&b, "<li>%s x%d</li>", item.ProductName, item.Quantity)
	}
	fmt.Fprintf(&b, "</ul><p>Total: %s (incl. %s shipping)</p>",
		formatMinor(order.TotalAmount), formatMinor(order.ShippingCost))
	return b.String()
}

func adminEmailBody(order *models.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<h2>New order #%d</h2>", order.ID)
	fmt.Fprintf(&b, "<p>%s &lt;%s&gt; — %d item(s), total %s</p>",
		order.CustomerName, order.CustomerEmail, len(order.Items), formatMinor(order.TotalAmount))
	fmt.Fprintf(&b, "<p>Ship to: %s, %s, %s</p>", order.AddressLine1, order.City, order.Country)
	return b.String()
}

func formatMinor(amount int64) string {
	return fmt.Sprintf("%d.%02d", amount/100, amount%100)
}
