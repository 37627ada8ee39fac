package massage

import (
	"time"
)

// MassageType is a bookable spa service with a fixed duration. Slots of the
// same type conflict with each other; the reservation window end is derived
// from DurationMinutes.
type MassageType struct {
	ID              uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name            string  `gorm:"type:varchar(255);not null" json:"name"`
	Description     string  `gorm:"type:text" json:"description,omitempty"`
	DurationMinutes int     `gorm:"not null" json:"duration_minutes"`
	Price           float64 `gorm:"not null" json:"price"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// Duration converts the stored minutes into a time.Duration.
func (m MassageType) Duration() time.Duration {
	return time.Duration(m.DurationMinutes) * time.Minute
}
