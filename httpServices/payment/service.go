package payment

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"venue-booking/config"
	"venue-booking/models/reservation"

	"github.com/google/uuid"
)

// Client talks to the external payment provider. Creating an intent is an
// optional convenience after booking; the authoritative payment state always
// arrives through the webhook.
type Client struct {
	baseURL    string
	apiKey     string
	currency   string
	httpClient *http.Client
}

// NewClient builds the provider client. An empty base URL disables intent
// creation; callers treat a nil client as "payments collected offline".
func NewClient(cfg config.Config) *Client {
	if cfg.PaymentBaseURL == "" {
		return nil
	}
	return &Client{
		baseURL:  cfg.PaymentBaseURL,
		apiKey:   cfg.PaymentAPIKey,
		currency: cfg.PaymentCurrency,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// CreateIntent opens a payment intent sized to the reservation's price and
// returns the provider reference to store on the reservation. A nil client
// returns nothing without error.
func (c *Client) CreateIntent(res reservation.Reservation, price float64, description string) (*CreateIntentResponse, error) {
	if c == nil {
		return nil, nil
	}

	reqBody := CreateIntentRequest{
		AmountCents:     int64(math.Round(price * 100)),
		Currency:        c.currency,
		Description:     description,
		IdempotencyKey:  uuid.NewString(),
		ReservationKind: res.GetKind().String(),
		ReservationID:   res.GetID(),
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal intent request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/v1/intents", bytes.NewBuffer(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build intent request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Idempotency-Key", reqBody.IdempotencyKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("payment provider request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read provider response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("payment provider returned status %d: %s", resp.StatusCode, string(body))
	}

	var intent CreateIntentResponse
	if err := json.Unmarshal(body, &intent); err != nil {
		return nil, fmt.Errorf("failed to decode provider response: %w", err)
	}
	return &intent, nil
}
