package webhook

import (
	"time"
)

// Event records a payment-provider webhook that has been durably processed.
// The unique index on ProviderEventID is the idempotency key: a redelivered
// webhook fails the insert inside the reconciliation transaction and is
// acknowledged as a no-op.
type Event struct {
	ID              uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	ProviderEventID string `gorm:"type:varchar(128);not null;uniqueIndex" json:"provider_event_id"`
	EventType       string `gorm:"type:varchar(50);not null" json:"event_type"`

	ReservationKind string `gorm:"type:varchar(20)" json:"reservation_kind,omitempty"`
	ReservationID   uint   `gorm:"index" json:"reservation_id,omitempty"`
	Outcome         string `gorm:"type:varchar(30);not null" json:"outcome"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// Processing outcomes stored on the event row.
const (
	OutcomeApplied  = "applied"
	OutcomeIgnored  = "ignored"
	OutcomeNotFound = "not_found"
)

// TableName sets the table name for the Event model.
func (Event) TableName() string {
	return "webhook_events"
}
