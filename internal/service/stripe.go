package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidAmount = errors.New("amount must be a positive integer")
	ErrGateway       = errors.New("payment gateway request failed")
)

// StripeClient creates payment intents against the Stripe REST API.
type StripeClient struct {
	baseURL   string
	secretKey string
	client    *http.Client
}

type paymentIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
}

func NewStripeClient(baseURL, secretKey string) *StripeClient {
	return &StripeClient{
		baseURL:   baseURL,
		secretKey: secretKey,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

// CreatePaymentIntent requests a card payment intent for the given amount in
// minor units (cents, USD) and returns the client secret. Not retried:
// the call can have financial side effects.
func (c *StripeClient) CreatePaymentIntent(ctx context.Context, amount int64) (string, error) {
	if amount <= 0 {
		return "", ErrInvalidAmount
	}

	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amount, 10))
	form.Set("currency", "usd")
	form.Set("payment_method_types[]", "card")

	endpoint := fmt.Sprintf("%s/v1/payment_intents", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGateway, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%w: unexpected status %d, body: %s", ErrGateway, resp.StatusCode, string(body))
	}

	var intent paymentIntent
	if err := json.NewDecoder(resp.Body).Decode(&intent); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrGateway, err)
	}
	if intent.ClientSecret == "" {
		return "", fmt.Errorf("%w: empty client secret", ErrGateway)
	}

	return intent.ClientSecret, nil
}
