package payment

// CreateIntentRequest asks the payment provider to open an intent for a
// reservation. Amounts are integer cents; the metadata ties the provider
// object back to the reservation for webhook reconciliation.
type CreateIntentRequest struct {
	AmountCents     int64  `json:"amount_cents"`
	Currency        string `json:"currency"`
	Description     string `json:"description"`
	IdempotencyKey  string `json:"idempotency_key"`
	ReservationKind string `json:"metadata_reservation_kind"`
	ReservationID   uint   `json:"metadata_reservation_id"`
}

// CreateIntentResponse is the provider's reply.
type CreateIntentResponse struct {
	IntentID     string `json:"intent_id"`
	ClientSecret string `json:"client_secret"`
	Status       string `json:"status"`
}
