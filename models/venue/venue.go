package venue

import (
	"time"
)

// Venue is an event space. The default booking policy is same-calendar-day
// exclusivity: at most one non-cancelled event per venue per day.
type Venue struct {
	ID          uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string  `gorm:"type:varchar(255);not null" json:"name"`
	Description string  `gorm:"type:text" json:"description,omitempty"`
	Capacity    int     `gorm:"not null" json:"capacity"`
	BasePrice   float64 `gorm:"not null" json:"base_price"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
