package payment

import (
	"fmt"
	"math"

	"venue-booking/models/reservation"
)

// Webhook event types the provider sends.
const (
	EventPaymentSucceeded = "payment.succeeded"
	EventPaymentFailed    = "payment.failed"
)

// WebhookEvent is the provider's payload. The provider event id is the
// idempotency key: each id is applied at most once.
type WebhookEvent struct {
	ID   string      `json:"id"`
	Type string      `json:"type"`
	Data WebhookData `json:"data"`
}

// WebhookData identifies the reservation and carries the settled amount in
// integer cents.
type WebhookData struct {
	ReservationKind string `json:"reservation_kind"`
	ReservationID   uint   `json:"reservation_id"`
	Reference       string `json:"reference"`
	AmountCents     int64  `json:"amount_cents"`
	Currency        string `json:"currency"`
}

// Validate rejects only structurally unusable deliveries. The event id is
// the one field processing cannot work without: it is the idempotency key.
// Everything else missing makes the event unreconcilable, not invalid; those
// are acknowledged so the provider stops redelivering them.
func (e WebhookEvent) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("event id is required")
	}
	return nil
}

// Reconcilable reports whether the event carries enough correlation to act
// on, with a human-readable reason when it does not.
func (e WebhookEvent) Reconcilable() (string, bool) {
	if e.Type != EventPaymentSucceeded && e.Type != EventPaymentFailed {
		return "unhandled event type " + e.Type, false
	}
	if e.Data.ReservationID == 0 {
		return "missing reservation correlation", false
	}
	if _, ok := reservation.ParseKind(e.Data.ReservationKind); !ok {
		return "unknown reservation kind " + e.Data.ReservationKind, false
	}
	return "", true
}

// DecideTransition maps a payment event onto the target status given the
// reservation's price. A successful payment covering the full price settles
// the reservation; a smaller amount is a partial payment.
func DecideTransition(eventType string, amountCents int64, price float64) (reservation.Status, error) {
	switch eventType {
	case EventPaymentFailed:
		return reservation.StatusPagoFallido, nil
	case EventPaymentSucceeded:
		if amountCents >= int64(math.Round(price*100)) {
			return reservation.StatusPagada, nil
		}
		return reservation.StatusPagoParcial, nil
	default:
		return "", fmt.Errorf("unknown event type: %q", eventType)
	}
}
