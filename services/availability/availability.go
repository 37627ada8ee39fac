package availability

import (
	"time"

	"venue-booking/models/reservation"

	"github.com/jinzhu/now"
	"gorm.io/gorm"
)

// Service answers availability questions by scanning active reservations
// for a resource and testing half-open interval overlap. Every method takes
// the *gorm.DB handle it should run on: the pooled handle for advisory
// pre-checks, the open transaction for the authoritative re-check before
// commit.
type Service struct{}

func NewService() *Service {
	return &Service{}
}

// RoomConflicts returns the active room reservations that overlap the
// window for the given room. Direct bookings and event-bundled rooms are
// both covered because every bundled room is materialized as a
// RoomReservation row.
func (s *Service) RoomConflicts(db *gorm.DB, roomID uint, window reservation.TimeWindow, excludeID uint) ([]reservation.RoomReservation, error) {
	var conflicts []reservation.RoomReservation
	q := db.Where("room_id = ?", roomID).
		Where("status <> ?", reservation.StatusCancelada).
		Where("starts_at < ? AND ends_at > ?", window.End, window.Start)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Order("starts_at").Find(&conflicts).Error; err != nil {
		return nil, err
	}
	return conflicts, nil
}

// RoomAvailable reports whether the room is free for the whole window.
func (s *Service) RoomAvailable(db *gorm.DB, roomID uint, window reservation.TimeWindow, excludeID uint) (bool, error) {
	conflicts, err := s.RoomConflicts(db, roomID, window, excludeID)
	if err != nil {
		return false, err
	}
	return len(conflicts) == 0, nil
}

// VenueConflicts returns the active event reservations occupying the venue
// on the same calendar day. Events are day-granular: same day, different
// event means conflict regardless of stored times.
func (s *Service) VenueConflicts(db *gorm.DB, venueID uint, date time.Time, excludeID uint) ([]reservation.EventReservation, error) {
	dayStart := now.With(date.UTC()).BeginningOfDay()
	dayEnd := dayStart.AddDate(0, 0, 1)

	var conflicts []reservation.EventReservation
	q := db.Where("venue_id = ?", venueID).
		Where("status <> ?", reservation.StatusCancelada).
		Where("starts_at < ? AND ends_at > ?", dayEnd, dayStart)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Order("starts_at").Find(&conflicts).Error; err != nil {
		return nil, err
	}
	return conflicts, nil
}

// VenueAvailable reports whether the venue has no event on the given day.
func (s *Service) VenueAvailable(db *gorm.DB, venueID uint, date time.Time, excludeID uint) (bool, error) {
	conflicts, err := s.VenueConflicts(db, venueID, date, excludeID)
	if err != nil {
		return false, err
	}
	return len(conflicts) == 0, nil
}

// MassageConflicts returns the active massage reservations of the same type
// that overlap the window.
func (s *Service) MassageConflicts(db *gorm.DB, massageTypeID uint, window reservation.TimeWindow, excludeID uint) ([]reservation.MassageReservation, error) {
	var conflicts []reservation.MassageReservation
	q := db.Where("massage_type_id = ?", massageTypeID).
		Where("status <> ?", reservation.StatusCancelada).
		Where("starts_at < ? AND ends_at > ?", window.End, window.Start)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Order("starts_at").Find(&conflicts).Error; err != nil {
		return nil, err
	}
	return conflicts, nil
}

// MassageAvailable reports whether a massage slot of the given type is free.
func (s *Service) MassageAvailable(db *gorm.DB, massageTypeID uint, window reservation.TimeWindow, excludeID uint) (bool, error) {
	conflicts, err := s.MassageConflicts(db, massageTypeID, window, excludeID)
	if err != nil {
		return false, err
	}
	return len(conflicts) == 0, nil
}
