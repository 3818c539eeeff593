package handlers

import (
	"errors"
	"net/http"

	"storefront/internal/middleware"
	"storefront/internal/services"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	orderService services.OrderService
}

func NewOrderHandler(orderService services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

type CheckoutRequest struct {
	Reference       string                   `json:"reference" binding:"required"`
	CartItems       []services.CheckoutItem  `json:"cartItems" binding:"required,min=1"`
	ShippingAddress services.ShippingAddress `json:"shippingAddress" binding:"required"`
	Name            string                   `json:"name" binding:"required"`
	Email           string                   `json:"email" binding:"required,email"`
	UserID          *uint                    `json:"userId"`
	// Client-computed estimates. Accepted for payload compatibility but
	// ignored: the server recomputes shipping and total itself.
	TotalAmount  int64 `json:"totalAmount"`
	ShippingCost int64 `json:"shippingCost"`
}

// Checkout handles POST /api/checkout. Failure classes map to distinct
// machine-readable codes so clients can tell "payment failed" apart from
// "order persistence failed after payment succeeded".
func (h *OrderHandler) Checkout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "code": "invalid_request"})
		return
	}

	input := &services.CheckoutInput{
		Reference: req.Reference,
		UserID:    req.UserID,
		Name:      req.Name,
		Email:     req.Email,
		Address:   req.ShippingAddress,
		Items:     req.CartItems,
	}

	result, err := h.orderService.Checkout(c.Request.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPaymentNotVerified):
			c.JSON(http.StatusPaymentRequired, gin.H{"error": "Payment was not successful", "code": "payment_not_verified"})
		case errors.Is(err, services.ErrVerificationUnavailable):
			c.JSON(http.StatusBadGateway, gin.H{"error": "Could not verify payment, please contact support", "code": "payment_verification_unavailable"})
		case errors.Is(err, services.ErrAmountMismatch):
			c.JSON(http.StatusConflict, gin.H{"error": "Paid amount does not match order total", "code": "amount_mismatch"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order", "code": "order_write_failed"})
		}
		return
	}

	status := http.StatusCreated
	if result.Duplicate {
		status = http.StatusOK
	}
	c.JSON(status, gin.H{
		"success":   true,
		"orderId":   result.Order.ID,
		"duplicate": result.Duplicate,
	})
}

// MyOrders handles GET /api/orders/mine for an authenticated customer.
func (h *OrderHandler) MyOrders(c *gin.Context) {
	userID := c.GetUint(middleware.ContextUserID)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	orders, err := h.orderService.GetOrdersByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}
