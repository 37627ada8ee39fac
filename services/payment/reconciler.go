package payment

import (
	"encoding/json"
	"strings"

	"venue-booking/logger"
	"venue-booking/models/reservation"
	"venue-booking/models/webhook"
	"venue-booking/services/lifecycle"
	"venue-booking/services/notification"
	"venue-booking/types/apperrors"

	"gorm.io/gorm"
)

// Reconciler turns payment-provider webhooks into reservation status
// changes. Processing is idempotent: the provider event id is inserted with
// a unique constraint in the same transaction as the transition, so a
// redelivered or concurrently delivered event can commit at most once.
type Reconciler struct {
	db        *gorm.DB
	lifecycle *lifecycle.Service
	notifier  notification.Notifier
	secret    string
}

func NewReconciler(db *gorm.DB, lc *lifecycle.Service, notifier notification.Notifier, secret string) *Reconciler {
	return &Reconciler{db: db, lifecycle: lc, notifier: notifier, secret: secret}
}

// Result reports what processing did, so the controller can acknowledge the
// provider accurately.
type Result struct {
	Outcome     string // applied | ignored | not_found | duplicate
	Reservation reservation.Reservation
	NewStatus   reservation.Status
}

// Duplicate outcome is returned, never stored: the original row already
// records what happened.
const OutcomeDuplicate = "duplicate"

// Process verifies, parses and applies one webhook delivery.
//
// Error contract: a signature failure or malformed payload is the caller's
// error (reject, provider should not retry). A transient storage failure
// asks the provider to retry. Everything else acknowledges: duplicates,
// unreconcilable events (missing correlation, unhandled type), unknown
// reservations and illegal transitions are recorded and absorbed so the
// provider stops redelivering.
func (r *Reconciler) Process(payload []byte, signature string) (*Result, error) {
	if !VerifySignature(payload, signature, r.secret) {
		return nil, apperrors.ErrBadSignature
	}

	var ev WebhookEvent
	if err := json.Unmarshal(payload, &ev); err != nil {
		return nil, apperrors.NewValidation("body", "malformed webhook payload: "+err.Error())
	}
	if err := ev.Validate(); err != nil {
		return nil, apperrors.NewValidation("body", err.Error())
	}

	if reason, ok := ev.Reconcilable(); !ok {
		logger.Warning("Ignoring payment webhook " + ev.ID + ": " + reason)
		return r.absorb(ev)
	}
	kind, _ := reservation.ParseKind(ev.Data.ReservationKind)

	result := &Result{}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res, err := r.lifecycle.GetForUpdate(tx, kind, ev.Data.ReservationID)
		if apperrors.IsNotFound(err) {
			result.Outcome = webhook.OutcomeNotFound
			return r.recordEvent(tx, ev, webhook.OutcomeNotFound)
		}
		if err != nil {
			return err
		}

		target, err := DecideTransition(ev.Type, ev.Data.AmountCents, res.GetPrice())
		if err != nil {
			return apperrors.NewValidation("type", err.Error())
		}

		changed, err := r.lifecycle.TransitionTx(tx, res, target, "payment-webhook")
		if apperrors.IsInvalidTransition(err) {
			// Already terminal or otherwise settled. Record and absorb so
			// the provider stops retrying a state we will never accept.
			result.Outcome = webhook.OutcomeIgnored
			result.Reservation = res
			return r.recordEvent(tx, ev, webhook.OutcomeIgnored)
		}
		if err != nil {
			return err
		}
		if !changed {
			result.Outcome = webhook.OutcomeIgnored
			result.Reservation = res
			return r.recordEvent(tx, ev, webhook.OutcomeIgnored)
		}

		if ev.Data.Reference != "" {
			if err := tx.Model(res).Update("payment_provider_ref", ev.Data.Reference).Error; err != nil {
				return err
			}
		}

		result.Outcome = webhook.OutcomeApplied
		result.Reservation = res
		result.NewStatus = target
		return r.recordEvent(tx, ev, webhook.OutcomeApplied)
	})
	if err != nil {
		if isDuplicateEvent(err) {
			return &Result{Outcome: OutcomeDuplicate}, nil
		}
		if apperrors.IsValidation(err) {
			return nil, err
		}
		if isRetryableStorage(err) {
			return nil, &apperrors.TransientStorageError{Op: "webhook reconciliation", Err: err}
		}
		return nil, err
	}

	if result.Outcome == webhook.OutcomeApplied {
		r.notifyApplied(result)
	}
	return result, nil
}

// absorb durably records an event that will never be applied and
// acknowledges it, so the provider stops redelivering. The dedup row still
// guards a redelivery of the same unreconcilable event.
func (r *Reconciler) absorb(ev WebhookEvent) (*Result, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		return r.recordEvent(tx, ev, webhook.OutcomeIgnored)
	})
	if err != nil {
		if isDuplicateEvent(err) {
			return &Result{Outcome: OutcomeDuplicate}, nil
		}
		if isRetryableStorage(err) {
			return nil, &apperrors.TransientStorageError{Op: "webhook reconciliation", Err: err}
		}
		return nil, err
	}
	return &Result{Outcome: webhook.OutcomeIgnored}, nil
}

// recordEvent inserts the idempotency row. The unique index on the provider
// event id makes this the serialization point for redeliveries.
func (r *Reconciler) recordEvent(tx *gorm.DB, ev WebhookEvent, outcome string) error {
	return tx.Create(&webhook.Event{
		ProviderEventID: ev.ID,
		EventType:       ev.Type,
		ReservationKind: ev.Data.ReservationKind,
		ReservationID:   ev.Data.ReservationID,
		Outcome:         outcome,
	}).Error
}

func isDuplicateEvent(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "23505") ||
		strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "duplicated key")
}

func isRetryableStorage(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "40001") ||
		strings.Contains(msg, "40P01") ||
		strings.Contains(msg, "could not serialize access") ||
		strings.Contains(msg, "deadlock detected")
}

func (r *Reconciler) notifyApplied(result *Result) {
	if r.notifier == nil || result.Reservation == nil {
		return
	}
	if result.NewStatus != reservation.StatusPagada && result.NewStatus != reservation.StatusPagoParcial {
		return
	}
	if err := r.notifier.SendPaymentConfirmed(result.Reservation, result.Reservation.GetContactEmail()); err != nil {
		logger.Error("Failed to send payment confirmation for "+result.Reservation.GetConfirmationNumber(), err)
	}
}
