package reservation

import (
	"time"

	"venue-booking/models/massage"
	"venue-booking/models/room"
	"venue-booking/models/venue"
)

// Kind discriminates the three reservation variants.
type Kind string

const (
	KindEvento     Kind = "evento"
	KindHabitacion Kind = "habitacion"
	KindMasaje     Kind = "masaje"
)

func (k Kind) String() string {
	return string(k)
}

func (k Kind) IsValid() bool {
	switch k {
	case KindEvento, KindHabitacion, KindMasaje:
		return true
	default:
		return false
	}
}

// ParseKind converts a path/query value into a Kind.
func ParseKind(s string) (Kind, bool) {
	k := Kind(s)
	return k, k.IsValid()
}

// Core holds the columns every reservation kind shares. The variants embed
// it instead of inheriting from it; callers dispatch on the kind tag.
type Core struct {
	ID                 uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ConfirmationNumber string    `gorm:"type:varchar(64);not null;uniqueIndex" json:"confirmation_number"`
	StartsAt           time.Time `gorm:"not null;index" json:"starts_at"`
	EndsAt             time.Time `gorm:"not null;index" json:"ends_at"`
	Status             Status    `gorm:"type:varchar(20);not null;index" json:"status"`

	Price              float64 `gorm:"not null" json:"price"`
	PaymentMethod      string  `gorm:"type:varchar(30)" json:"payment_method,omitempty"`
	PaymentProviderRef *string `gorm:"type:varchar(64);index" json:"payment_provider_ref,omitempty"`

	ContactName  string `gorm:"type:varchar(255);not null" json:"contact_name"`
	ContactEmail string `gorm:"type:varchar(255);not null" json:"contact_email"`
	ContactPhone string `gorm:"type:varchar(30);not null" json:"contact_phone"`

	CreatedBy string    `gorm:"type:varchar(255);not null" json:"created_by"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedBy string    `gorm:"type:varchar(255)" json:"updated_by,omitempty"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (c *Core) GetID() uint                   { return c.ID }
func (c *Core) GetStatus() Status             { return c.Status }
func (c *Core) SetStatus(s Status)            { c.Status = s }
func (c *Core) GetConfirmationNumber() string { return c.ConfirmationNumber }
func (c *Core) GetPrice() float64             { return c.Price }
func (c *Core) GetContactEmail() string       { return c.ContactEmail }
func (c *Core) Window() TimeWindow            { return TimeWindow{Start: c.StartsAt, End: c.EndsAt} }

// Reservation is the capability every variant exposes regardless of kind.
type Reservation interface {
	GetID() uint
	GetKind() Kind
	GetStatus() Status
	SetStatus(Status)
	GetConfirmationNumber() string
	GetPrice() float64
	GetContactEmail() string
	Window() TimeWindow
}

// EventReservation books the venue for a calendar day and optionally bundles
// rooms. The bundled rooms are the RoomReservation rows whose ParentEventID
// points here; RoomCount and RoomsSubtotal are denormalized summaries kept
// in sync by the booking service inside the same transaction.
type EventReservation struct {
	Core

	VenueID uint        `gorm:"not null;index" json:"venue_id"`
	Venue   venue.Venue `gorm:"foreignKey:VenueID" json:"venue,omitempty"`

	RoomCount     int     `gorm:"not null;default:0" json:"room_count"`
	RoomsSubtotal float64 `gorm:"not null;default:0" json:"rooms_subtotal"`

	Rooms []RoomReservation `gorm:"foreignKey:ParentEventID" json:"rooms,omitempty"`
}

func (EventReservation) TableName() string { return "event_reservations" }

func (r *EventReservation) GetKind() Kind { return KindEvento }

// RoomReservation books one physical room, either standalone or as part of
// an event (ParentEventID set). RoomLetter is denormalized from the catalog
// so conflict messages can name the room without a join.
type RoomReservation struct {
	Core

	RoomID     uint      `gorm:"not null;index" json:"room_id"`
	Room       room.Room `gorm:"foreignKey:RoomID" json:"room,omitempty"`
	RoomLetter string    `gorm:"type:varchar(5);not null;index" json:"room_letter"`
	Nights     int       `gorm:"not null;default:1" json:"nights"`

	ParentEventID *uint `gorm:"index" json:"parent_event_id,omitempty"`
}

func (RoomReservation) TableName() string { return "room_reservations" }

func (r *RoomReservation) GetKind() Kind { return KindHabitacion }

// MassageReservation books a slot for a massage type. The window end is
// derived from the type's fixed duration at creation time.
type MassageReservation struct {
	Core

	MassageTypeID uint                `gorm:"not null;index" json:"massage_type_id"`
	MassageType   massage.MassageType `gorm:"foreignKey:MassageTypeID" json:"massage_type,omitempty"`
}

func (MassageReservation) TableName() string { return "massage_reservations" }

func (r *MassageReservation) GetKind() Kind { return KindMasaje }
