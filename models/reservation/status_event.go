package reservation

import (
	"time"
)

// StatusEvent records one status change of any reservation kind. Rows are
// written in the same transaction as the change itself.
type StatusEvent struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	Kind          Kind   `gorm:"type:varchar(20);not null;index:idx_status_events_target" json:"kind"`
	ReservationID uint   `gorm:"not null;index:idx_status_events_target" json:"reservation_id"`
	Status        Status `gorm:"type:varchar(20);not null" json:"status"`

	Actor     string    `gorm:"type:varchar(255);not null" json:"actor"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName sets the table name for the StatusEvent model.
func (StatusEvent) TableName() string {
	return "reservation_status_events"
}
