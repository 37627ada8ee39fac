package assigner

import (
	"sort"
	"time"

	"venue-booking/models/reservation"
	"venue-booking/models/room"
	"venue-booking/services/availability"

	"github.com/jinzhu/now"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Service selects rooms on behalf of venue staff when the caller delegates
// room allocation for an event booking.
type Service struct {
	checker *availability.Service
}

func NewService(checker *availability.Service) *Service {
	return &Service{checker: checker}
}

// Result is the outcome of an auto-assignment. Partial is set when fewer
// rooms than the quota were free; that is a degraded-but-successful
// outcome, not a failure.
type Result struct {
	Rooms   []room.Room
	Window  reservation.TimeWindow
	Partial bool
}

// SelectRooms picks up to quota rooms from the candidates in room-letter
// ascending order. Deterministic ordering keeps assignments reproducible
// for tests and support diagnostics.
func SelectRooms(candidates []room.Room, quota int) []room.Room {
	selected := make([]room.Room, 0, len(candidates))
	for _, r := range candidates {
		if r.Status == room.StatusDisponible {
			selected = append(selected, r)
		}
	}
	sort.Slice(selected, func(i, j int) bool {
		return selected[i].Letter < selected[j].Letter
	})
	if quota >= 0 && len(selected) > quota {
		selected = selected[:quota]
	}
	return selected
}

// OneNightWindow derives the stay bundled rooms get when the caller does not
// supply explicit dates: check-in on the event day, check-out the next day.
func OneNightWindow(eventDate time.Time) reservation.TimeWindow {
	start := now.With(eventDate.UTC()).BeginningOfDay()
	return reservation.TimeWindow{Start: start, End: start.AddDate(0, 0, 1)}
}

// AutoAssign queries the catalog for administratively available rooms,
// keeps those that individually pass the availability check for a one-night
// stay anchored on the event date, and caps the result at quota. It runs on
// the handle it is given so the booking transaction sees authoritative
// state.
func (s *Service) AutoAssign(db *gorm.DB, eventDate time.Time, quota int) (*Result, error) {
	// The candidate rows are locked so two events auto-assigning the same
	// night serialize on the pool instead of both passing the per-room check.
	var candidates []room.Room
	if err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("RoomType").Where("status = ?", room.StatusDisponible).Order("letter").Find(&candidates).Error; err != nil {
		return nil, err
	}

	window := OneNightWindow(eventDate)

	free := make([]room.Room, 0, len(candidates))
	for _, r := range candidates {
		ok, err := s.checker.RoomAvailable(db, r.ID, window, 0)
		if err != nil {
			return nil, err
		}
		if ok {
			free = append(free, r)
		}
	}

	selected := SelectRooms(free, quota)
	return &Result{
		Rooms:   selected,
		Window:  window,
		Partial: len(selected) < quota,
	}, nil
}
