package reservation

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Accepted request date layouts: plain dates for rooms/events, RFC3339 for
// massage slot times.
var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

// ParseDate parses a request date. Unparseable input is a validation
// failure, never treated as "available".
func ParseDate(value string) (time.Time, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return time.Time{}, fmt.Errorf("date is required")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date: %q", value)
}

// ContactInput is the booking contact captured on every reservation.
type ContactInput struct {
	Name  string `json:"name" validate:"required,min=1,max=255"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"required,min=6,max=30"`
}

// RoomReservationRequest books one room directly.
type RoomReservationRequest struct {
	RoomLetter    string       `json:"room_letter" validate:"required,min=1,max=5"`
	CheckIn       string       `json:"check_in" validate:"required"`
	CheckOut      string       `json:"check_out" validate:"required"`
	Price         float64      `json:"price" validate:"gte=0"`
	PaymentMethod string       `json:"payment_method" validate:"omitempty,oneof=tarjeta efectivo transferencia"`
	Contact       ContactInput `json:"contact" validate:"required"`
}

func (r RoomReservationRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return err
	}
	return nil
}

// EventRoomInput is one explicitly chosen room inside an event booking.
// Dates are optional; when omitted the booking derives a one-night stay
// anchored on the event date.
type EventRoomInput struct {
	RoomLetter string  `json:"room_letter" validate:"required,min=1,max=5"`
	CheckIn    string  `json:"check_in" validate:"omitempty"`
	CheckOut   string  `json:"check_out" validate:"omitempty"`
	Price      float64 `json:"price" validate:"gte=0"`
}

// Room selection modes for an event booking.
const (
	RoomModeExplicit = "explicit"
	RoomModeAuto     = "auto"
	RoomModeNone     = "none"
)

// EventReservationRequest books the venue for a day plus zero or more rooms.
type EventReservationRequest struct {
	VenueID       uint             `json:"venue_id" validate:"required"`
	EventDate     string           `json:"event_date" validate:"required"`
	Price         float64          `json:"price" validate:"gte=0"`
	PaymentMethod string           `json:"payment_method" validate:"omitempty,oneof=tarjeta efectivo transferencia"`
	RoomMode      string           `json:"room_mode" validate:"required,oneof=explicit auto none"`
	Rooms         []EventRoomInput `json:"rooms" validate:"omitempty,dive"`
	Contact       ContactInput     `json:"contact" validate:"required"`
}

func (r EventReservationRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return err
	}
	if r.RoomMode == RoomModeExplicit && len(r.Rooms) == 0 {
		return fmt.Errorf("room_mode explicit requires at least one room")
	}
	if r.RoomMode != RoomModeExplicit && len(r.Rooms) > 0 {
		return fmt.Errorf("rooms may only be listed with room_mode explicit")
	}
	return nil
}

// MassageReservationRequest books a massage slot; the end time follows from
// the massage type's fixed duration.
type MassageReservationRequest struct {
	MassageTypeID uint         `json:"massage_type_id" validate:"required"`
	StartsAt      string       `json:"starts_at" validate:"required"`
	PaymentMethod string       `json:"payment_method" validate:"omitempty,oneof=tarjeta efectivo transferencia"`
	Contact       ContactInput `json:"contact" validate:"required"`
}

func (r MassageReservationRequest) Validate() error {
	return validate.Struct(r)
}

// SetStatusRequest is an administrative status override.
type SetStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func (r SetStatusRequest) Validate() error {
	return validate.Struct(r)
}

// CancelRequest is an owner-initiated cancellation; the email must match the
// contact captured at booking time.
type CancelRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func (r CancelRequest) Validate() error {
	return validate.Struct(r)
}
