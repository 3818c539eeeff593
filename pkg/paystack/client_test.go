package paystack

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func verifyServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, "sk_test_secret")
}

func TestVerifyTransactionSuccess(t *testing.T) {
	client := verifyServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/transaction/verify/ref-1001", r.URL.Path)
		assert.Equal(t, "Bearer sk_test_secret", r.Header.Get("Authorization"))
		fmt.Fprint(w, `{"status":true,"message":"Verification successful","data":{"status":"success","reference":"ref-1001","amount":103000,"currency":"NGN"}}`)
	})

	result, err := client.VerifyTransaction(context.Background(), "ref-1001")
	require.NoError(t, err)
	assert.True(t, result.Succeeded())
	assert.Equal(t, int64(103000), result.Amount)
	assert.Equal(t, "NGN", result.Currency)
	assert.Equal(t, "ref-1001", result.Reference)
}

func TestVerifyTransactionChargeFailed(t *testing.T) {
	client := verifyServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":true,"message":"Verification successful","data":{"status":"failed","reference":"ref-1001","amount":103000,"currency":"NGN"}}`)
	})

	result, err := client.VerifyTransaction(context.Background(), "ref-1001")
	require.NoError(t, err)
	assert.False(t, result.Succeeded())
}

func TestVerifyTransactionGatewayError(t *testing.T) {
	client := verifyServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	result, err := client.VerifyTransaction(context.Background(), "ref-1001")
	assert.Nil(t, result)
	assert.Error(t, err)
}

func TestVerifyTransactionRejectedCall(t *testing.T) {
	client := verifyServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":false,"message":"Invalid key"}`)
	})

	result, err := client.VerifyTransaction(context.Background(), "ref-1001")
	assert.Nil(t, result)
	assert.Error(t, err)
}

func TestValidSignature(t *testing.T) {
	body := []byte(`{"event":"charge.success"}`)
	secret := "sk_test_secret"

	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write(body)
	good := hex.EncodeToString(mac.Sum(nil))

	assert.True(t, ValidSignature(body, good, secret))
	assert.False(t, ValidSignature(body, good, "other_secret"))
	assert.False(t, ValidSignature([]byte("tampered"), good, secret))
	assert.False(t, ValidSignature(body, "", secret))
}
