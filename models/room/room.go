package room

import (
	"time"
)

// Room status values. Rooms under maintenance are administratively excluded
// from auto-assignment and direct booking.
const (
	StatusDisponible    = "Disponible"
	StatusMantenimiento = "Mantenimiento"
)

// Room is one physical room in the catalog. Letter is the human-facing
// identifier accepted at the input boundary; internally everything keys on ID.
type Room struct {
	ID     uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Letter string `gorm:"type:varchar(5);not null;uniqueIndex" json:"letter"`
	Name   string `gorm:"type:varchar(255);not null" json:"name"`
	Status string `gorm:"type:varchar(30);not null;default:'Disponible'" json:"status"`

	RoomTypeID uint     `gorm:"not null;index" json:"room_type_id"`
	RoomType   RoomType `gorm:"foreignKey:RoomTypeID" json:"room_type,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// RoomType describes capacity and base pricing for a class of rooms.
type RoomType struct {
	ID            uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Title         string  `gorm:"type:varchar(255);not null" json:"title"`
	Description   string  `gorm:"type:text" json:"description,omitempty"`
	AdultCapacity int     `gorm:"not null" json:"adult_capacity"`
	ChildCapacity int     `gorm:"not null" json:"child_capacity"`
	PricePerNight float64 `gorm:"not null" json:"price_per_night"`
}
