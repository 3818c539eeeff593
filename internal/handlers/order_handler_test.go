package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOrderService struct {
	result *services.CheckoutResult
	err    error
	input  *services.CheckoutInput
}

func (f *fakeOrderService) Checkout(ctx context.Context, input *services.CheckoutInput) (*services.CheckoutResult, error) {
	f.input = input
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeOrderService) GetOrderByID(ctx context.Context, id uint) (*models.Order, error) {
	return nil, nil
}

func (f *fakeOrderService) GetOrdersByUser(ctx context.Context, userID uint) ([]models.Order, error) {
	return nil, nil
}

func (f *fakeOrderService) GetAllOrders(ctx context.Context) ([]models.Order, error) {
	return nil, nil
}

func (f *fakeOrderService) UpdateOrderStatus(ctx context.Context, id uint, status string) error {
	return nil
}

func checkoutRouter(svc services.OrderService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewOrderHandler(svc)
	router.POST("/api/checkout", handler.Checkout)
	return router
}

func checkoutBody() map[string]interface{} {
	return map[string]interface{}{
		"reference": "ref-1001",
		"name":      "Ada Obi",
		"email":     "ada@example.com",
		"cartItems": []map[string]interface{}{
			{"product_id": 1, "name": "Classic Tee", "unit_price": 40000, "quantity": 2},
		},
		"shippingAddress": map[string]interface{}{
			"line1":   "12 Marina Road",
			"city":    "Lagos",
			"country": "NG",
		},
		// Client estimates, ignored by the server.
		"totalAmount":  83000,
		"shippingCost": 3000,
	}
}

func postCheckout(router *gin.Engine, payload interface{}) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/api/checkout", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCheckoutHandlerSuccess(t *testing.T) {
	svc := &fakeOrderService{
		result: &services.CheckoutResult{Order: &models.Order{ID: 42}},
	}
	router := checkoutRouter(svc)

	w := postCheckout(router, checkoutBody())
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Success   bool `json:"success"`
		OrderID   uint `json:"orderId"`
		Duplicate bool `json:"duplicate"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, uint(42), resp.OrderID)
	assert.False(t, resp.Duplicate)

	// The handler passes through the cart, not the client's totals.
	require.NotNil(t, svc.input)
	assert.Equal(t, "ref-1001", svc.input.Reference)
	require.Len(t, svc.input.Items, 1)
}

func TestCheckoutHandlerDuplicateReturnsOK(t *testing.T) {
	svc := &fakeOrderService{
		result: &services.CheckoutResult{Order: &models.Order{ID: 42}, Duplicate: true},
	}
	router := checkoutRouter(svc)

	w := postCheckout(router, checkoutBody())
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["duplicate"])
}

func TestCheckoutHandlerErrorCodes(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"payment not verified", services.ErrPaymentNotVerified, http.StatusPaymentRequired, "payment_not_verified"},
		{"verification unavailable", services.ErrVerificationUnavailable, http.StatusBadGateway, "payment_verification_unavailable"},
		{"amount mismatch", services.ErrAmountMismatch, http.StatusConflict, "amount_mismatch"},
		{"write failure", assert.AnError, http.StatusInternalServerError, "order_write_failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := checkoutRouter(&fakeOrderService{err: tt.err})
			w := postCheckout(router, checkoutBody())
			assert.Equal(t, tt.wantStatus, w.Code)

			var resp map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantCode, resp["code"])
		})
	}
}

func TestCheckoutHandlerRejectsInvalidPayload(t *testing.T) {
	router := checkoutRouter(&fakeOrderService{})

	payload := checkoutBody()
	delete(payload, "reference")
	w := postCheckout(router, payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	payload = checkoutBody()
	payload["cartItems"] = []map[string]interface{}{}
	w = postCheckout(router, payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
