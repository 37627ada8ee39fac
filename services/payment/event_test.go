package payment

import (
	"testing"

	"venue-booking/models/reservation"
)

func TestDecideTransition(t *testing.T) {
	tests := []struct {
		name        string
		eventType   string
		amountCents int64
		price       float64
		want        reservation.Status
		wantErr     bool
	}{
		{"full payment settles", EventPaymentSucceeded, 150000, 1500, reservation.StatusPagada, false},
		{"exact amount settles", EventPaymentSucceeded, 12000, 120, reservation.StatusPagada, false},
		{"overpayment settles", EventPaymentSucceeded, 200000, 1500, reservation.StatusPagada, false},
		{"partial payment", EventPaymentSucceeded, 50000, 1500, reservation.StatusPagoParcial, false},
		{"one cent short is partial", EventPaymentSucceeded, 11999, 120, reservation.StatusPagoParcial, false},
		{"failed payment", EventPaymentFailed, 0, 1500, reservation.StatusPagoFallido, false},
		{"failed ignores amount", EventPaymentFailed, 150000, 1500, reservation.StatusPagoFallido, false},
		{"unknown type", "payment.refunded", 100, 1, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecideTransition(tt.eventType, tt.amountCents, tt.price)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("DecideTransition() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestWebhookEventValidate(t *testing.T) {
	valid := WebhookEvent{
		ID:   "evt_123",
		Type: EventPaymentSucceeded,
		Data: WebhookData{ReservationKind: "habitacion", ReservationID: 7, AmountCents: 12000},
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid event rejected: %v", err)
	}

	missingID := valid
	missingID.ID = ""
	if err := missingID.Validate(); err == nil {
		t.Error("event without an id cannot be deduplicated and must be rejected")
	}
}

func TestWebhookEventReconcilable(t *testing.T) {
	valid := WebhookEvent{
		ID:   "evt_123",
		Type: EventPaymentSucceeded,
		Data: WebhookData{ReservationKind: "habitacion", ReservationID: 7, AmountCents: 12000},
	}
	if reason, ok := valid.Reconcilable(); !ok {
		t.Errorf("complete event not reconcilable: %s", reason)
	}

	// Events missing correlation are absorbed and acknowledged, never
	// rejected: the provider would otherwise redeliver them forever.
	tests := []struct {
		name   string
		mutate func(*WebhookEvent)
	}{
		{"unhandled type", func(e *WebhookEvent) { e.Type = "payment.disputed" }},
		{"missing reservation id", func(e *WebhookEvent) { e.Data.ReservationID = 0 }},
		{"unknown kind", func(e *WebhookEvent) { e.Data.ReservationKind = "suite" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := valid
			tt.mutate(&ev)
			if err := ev.Validate(); err != nil {
				t.Errorf("event must still pass validation (it gets recorded and acked): %v", err)
			}
			if _, ok := ev.Reconcilable(); ok {
				t.Error("expected not reconcilable")
			}
		})
	}
}

func TestDuplicateAndRetryClassification(t *testing.T) {
	dup := errString(`ERROR: duplicate key value violates unique constraint "idx_webhook_events_provider_event_id" (SQLSTATE 23505)`)
	if !isDuplicateEvent(dup) {
		t.Error("unique violation must classify as duplicate")
	}

	serialization := errString("ERROR: could not serialize access due to concurrent update (SQLSTATE 40001)")
	if !isRetryableStorage(serialization) {
		t.Error("serialization failure must classify as retryable")
	}
	deadlock := errString("ERROR: deadlock detected (SQLSTATE 40P01)")
	if !isRetryableStorage(deadlock) {
		t.Error("deadlock must classify as retryable")
	}

	plain := errString("record not found")
	if isDuplicateEvent(plain) || isRetryableStorage(plain) {
		t.Error("ordinary errors must not classify as duplicate or retryable")
	}
}

type errString string

func (e errString) Error() string { return string(e) }
