package queue

import "time"

// ReservationCreated is the event published after a booking transaction
// commits. Consumers (reporting, housekeeping boards) get the confirmation
// number plus enough context to render the booking without a DB round trip.
type ReservationCreated struct {
	Kind               string    `json:"kind"`
	ReservationID      uint      `json:"reservation_id"`
	ConfirmationNumber string    `json:"confirmation_number"`
	Status             string    `json:"status"`
	StartsAt           time.Time `json:"starts_at"`
	EndsAt             time.Time `json:"ends_at"`
	Price              float64   `json:"price"`
	RoomCount          int       `json:"room_count,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}

// ReservationStatusChanged is published after a lifecycle transition commits,
// whether it came from staff, the owner, a payment event or the scheduler.
type ReservationStatusChanged struct {
	Kind               string    `json:"kind"`
	ReservationID      uint      `json:"reservation_id"`
	ConfirmationNumber string    `json:"confirmation_number"`
	From               string    `json:"from"`
	To                 string    `json:"to"`
	Actor              string    `json:"actor"`
	ChangedAt          time.Time `json:"changed_at"`
}
