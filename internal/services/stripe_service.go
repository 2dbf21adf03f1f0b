package services

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// StripeService creates payment intents against the Stripe API.
type StripeService struct {
	baseURL   string
	secretKey string
	publicKey string
	client    *http.Client
}

// NewStripeService creates a StripeService.
func NewStripeService(baseURL, secretKey, publicKey string) *StripeService {
	return &StripeService{
		baseURL:   baseURL,
		secretKey: secretKey,
		publicKey: publicKey,
		client:    &http.Client{Timeout: 20 * time.Second},
	}
}

// PaymentIntent is the subset of the gateway response the API exposes.
type PaymentIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
}

type stripeErrorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// CreatePaymentIntent registers a payment of the given amount (in the
// currency's smallest unit) and returns the client secret the frontend
// confirms against.
func (s *StripeService) CreatePaymentIntent(amount int64, currency string) (*PaymentIntent, error) {
	if s.secretKey == "" {
		return nil, fmt.Errorf("stripe secret key not configured")
	}

	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amount, 10))
	form.Set("currency", currency)
	form.Set("metadata[integration_check]", "accept_a_payment")

	req, err := http.NewRequest(http.MethodPost, s.baseURL+"/v1/payment_intents", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+s.secretKey)

	resp, err := s.client.Do(req)
	if err != nil {
		log.Printf("[Stripe] payment intent request failed: %v", err)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var parsed stripeErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&parsed); err == nil && parsed.Error.Message != "" {
			return nil, fmt.Errorf("stripe: %s", parsed.Error.Message)
		}
		return nil, fmt.Errorf("stripe returned status %d", resp.StatusCode)
	}

	var intent PaymentIntent
	if err := json.NewDecoder(resp.Body).Decode(&intent); err != nil {
		return nil, err
	}

	return &intent, nil
}

// PublishableKey returns the key the frontend initializes Stripe with.
func (s *StripeService) PublishableKey() string {
	return s.publicKey
}
