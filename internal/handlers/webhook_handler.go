package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"os"

	"storefront/internal/services"
	"storefront/pkg/paystack"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

type WebhookHandler struct {
	webhookService services.WebhookService
	webhookSecret  string
}

func NewWebhookHandler(webhookService services.WebhookService, webhookSecret string) *WebhookHandler {
	return &WebhookHandler{webhookService: webhookService, webhookSecret: webhookSecret}
}

type webhookPayload struct {
	Event string `json:"event"`
	Data  struct {
		Reference string `json:"reference"`
		Amount    int64  `json:"amount"`
		Status    string `json:"status"`
	} `json:"data"`
}

// HandlePaystackWebhook verifies the HMAC signature over the raw body before
// trusting any field. Per gateway convention every recognized delivery is
// acked with 200 even when reconciliation fails internally, so the gateway
// does not retry forever; only signature failures are rejected.
func (h *WebhookHandler) HandlePaystackWebhook(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read body"})
		return
	}

	signature := c.GetHeader("X-Paystack-Signature")
	if !paystack.ValidSignature(body, signature, h.webhookSecret) {
		logger.Warn().Str("ip", c.ClientIP()).Msg("Webhook signature verification failed")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid signature"})
		return
	}

	var payload webhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	if payload.Event != "charge.success" {
		// Unhandled event types are acked and ignored.
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	event := &services.ChargeEvent{
		Type:      payload.Event,
		Reference: payload.Data.Reference,
		Amount:    payload.Data.Amount,
	}
	if err := h.webhookService.ProcessChargeSuccess(c.Request.Context(), event); err != nil {
		logger.Error().Err(err).Str("reference", event.Reference).Msg("Webhook reconciliation failed")
		// Still ack: the gateway must not retry a delivery we cannot use.
	}

	c.JSON(http.StatusOK, gin.H{"status": "received"})
}
