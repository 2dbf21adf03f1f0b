package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePaymentIntent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/payment_intents", r.URL.Path)
		assert.Equal(t, "Bearer sk_test_123", r.Header.Get("Authorization"))

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "11800", r.PostFormValue("amount"))
		assert.Equal(t, "usd", r.PostFormValue("currency"))

		json.NewEncoder(w).Encode(map[string]string{
			"id":            "pi_123",
			"client_secret": "pi_123_secret_456",
		})
	}))
	defer server.Close()

	svc := NewStripeService(server.URL, "sk_test_123", "pk_test_123")

	intent, err := svc.CreatePaymentIntent(11800, "usd")
	require.NoError(t, err)
	assert.Equal(t, "pi_123", intent.ID)
	assert.Equal(t, "pi_123_secret_456", intent.ClientSecret)
}

func TestCreatePaymentIntentGatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		json.NewEncoder(w).Encode(map[string]map[string]string{
			"error": {"message": "Your card was declined."},
		})
	}))
	defer server.Close()

	svc := NewStripeService(server.URL, "sk_test_123", "pk_test_123")

	_, err := svc.CreatePaymentIntent(100, "usd")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "declined")
}

func TestCreatePaymentIntentUnconfigured(t *testing.T) {
	svc := NewStripeService("https://api.stripe.com", "", "pk_test_123")

	_, err := svc.CreatePaymentIntent(100, "usd")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestPublishableKey(t *testing.T) {
	svc := NewStripeService("https://api.stripe.com", "sk", "pk_test_123")
	assert.Equal(t, "pk_test_123", svc.PublishableKey())
}
