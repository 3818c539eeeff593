package paystack

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type Client struct {
	BaseURL    string
	SecretKey  string
	HTTPClient *http.Client
}

type verifyResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Status          string `json:"status"`
		Reference       string `json:"reference"`
		Amount          int64  `json:"amount"`
		Currency        string `json:"currency"`
		GatewayResponse string `json:"gateway_response"`
	} `json:"data"`
}

// VerificationResult is the normalized outcome of a verify call. Amount is in
// minor currency units as reported by the gateway.
type VerificationResult struct {
	Reference string `json:"reference"`
	Status    string `json:"status"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
}

// Succeeded reports whether the gateway confirmed the charge.
func (r *VerificationResult) Succeeded() bool {
	return r.Status == "success"
}

func NewClient(baseURL, secretKey string) *Client {
	return &Client{
		BaseURL:   baseURL,
		SecretKey: secretKey,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// VerifyTransaction performs the server-to-server verify-by-reference call.
// A non-nil error means the call itself failed; a nil error with a
// non-success result means the gateway reports the payment did not succeed.
func (c *Client) VerifyTransaction(ctx context.Context, reference string) (*VerificationResult, error) {
	url := fmt.Sprintf("%s/transaction/verify/%s", c.BaseURL, reference)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.SecretKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gateway returned status %d: %s", resp.StatusCode, string(body))
	}

	var response verifyResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if !response.Status {
		return nil, fmt.Errorf("gateway rejected verify call: %s", response.Message)
	}

	return &VerificationResult{
		Reference: response.Data.Reference,
		Status:    response.Data.Status,
		Amount:    response.Data.Amount,
		Currency:  response.Data.Currency,
	}, nil
}

// ValidSignature checks the X-Paystack-Signature header: hex-encoded
// HMAC-SHA512 of the raw request body under the webhook secret.
func ValidSignature(body []byte, signature, secret string) bool {
	if signature == "" {
		return false
	}
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
