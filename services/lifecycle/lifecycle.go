package lifecycle

import (
	"context"
	"fmt"
	"strings"
	"time"

	"venue-booking/logger"
	"venue-booking/models/reservation"
	"venue-booking/queue"
	"venue-booking/types/apperrors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Service moves reservations through their lifecycle. Every transition is
// checked against the legal edges, written together with its audit row, and
// applied under a row lock so concurrent actors cannot interleave.
type Service struct {
	db        *gorm.DB
	publisher *queue.Publisher
}

func NewService(db *gorm.DB, publisher *queue.Publisher) *Service {
	return &Service{db: db, publisher: publisher}
}

// Get loads a reservation by kind and id. Events come with their bundled
// rooms attached.
func (s *Service) Get(kind reservation.Kind, id uint) (reservation.Reservation, error) {
	return s.load(s.db, kind, id, false)
}

// GetForUpdate loads a reservation under a row lock inside the caller's
// transaction, for transitions driven from outside this service.
func (s *Service) GetForUpdate(tx *gorm.DB, kind reservation.Kind, id uint) (reservation.Reservation, error) {
	return s.load(tx, kind, id, true)
}

func (s *Service) load(db *gorm.DB, kind reservation.Kind, id uint, forUpdate bool) (reservation.Reservation, error) {
	q := db
	if forUpdate {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var res reservation.Reservation
	var err error
	switch kind {
	case reservation.KindEvento:
		ev := &reservation.EventReservation{}
		if forUpdate {
			err = q.First(ev, id).Error
		} else {
			err = q.Preload("Rooms").First(ev, id).Error
		}
		res = ev
	case reservation.KindHabitacion:
		rr := &reservation.RoomReservation{}
		err = q.First(rr, id).Error
		res = rr
	case reservation.KindMasaje:
		mr := &reservation.MassageReservation{}
		err = q.First(mr, id).Error
		res = mr
	default:
		return nil, apperrors.NewValidation("kind", "unknown reservation kind: "+kind.String())
	}

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, &apperrors.NotFoundError{Entity: kind.String(), Ref: fmt.Sprintf("%d", id)}
		}
		return nil, err
	}
	return res, nil
}

// TransitionTx applies one status change to an already-loaded reservation
// inside the caller's transaction: legality check, status update, audit row.
// A same-state target is an idempotent no-op (changed=false). Cancelling an
// event also cancels its bundled rooms.
func (s *Service) TransitionTx(tx *gorm.DB, res reservation.Reservation, target reservation.Status, actor string) (bool, error) {
	if !target.IsValid() {
		return false, apperrors.NewValidation("status", "unknown status: "+target.String())
	}

	current := res.GetStatus()
	if current == target {
		return false, nil
	}
	if !current.CanTransitionTo(target) {
		return false, &apperrors.InvalidTransitionError{From: current.String(), To: target.String()}
	}

	if actor == "" {
		actor = "system"
	}

	res.SetStatus(target)
	if err := tx.Model(res).Updates(map[string]interface{}{
		"status":     target,
		"updated_by": actor,
	}).Error; err != nil {
		return false, err
	}

	if err := tx.Create(&reservation.StatusEvent{
		Kind:          res.GetKind(),
		ReservationID: res.GetID(),
		Status:        target,
		Actor:         actor,
	}).Error; err != nil {
		return false, err
	}

	if res.GetKind() == reservation.KindEvento && target == reservation.StatusCancelada {
		if err := s.cancelBundledRooms(tx, res.GetID(), actor); err != nil {
			return false, err
		}
	}

	return true, nil
}

// cancelBundledRooms cancels every still-active room reservation attached to
// the event, with its own audit row each.
func (s *Service) cancelBundledRooms(tx *gorm.DB, eventID uint, actor string) error {
	var bundled []reservation.RoomReservation
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("parent_event_id = ?", eventID).
		Where("status <> ?", reservation.StatusCancelada).
		Find(&bundled).Error; err != nil {
		return err
	}

	for _, rr := range bundled {
		if err := tx.Model(&reservation.RoomReservation{}).Where("id = ?", rr.ID).Updates(map[string]interface{}{
			"status":     reservation.StatusCancelada,
			"updated_by": actor,
		}).Error; err != nil {
			return err
		}
		if err := tx.Create(&reservation.StatusEvent{
			Kind:          reservation.KindHabitacion,
			ReservationID: rr.ID,
			Status:        reservation.StatusCancelada,
			Actor:         actor,
		}).Error; err != nil {
			return err
		}
	}
	return nil
}

// SetStatus is the administrative transition entry point: load under lock,
// apply, publish. Returns the reservation in its resulting state and whether
// anything actually changed.
func (s *Service) SetStatus(kind reservation.Kind, id uint, target reservation.Status, actor string) (reservation.Reservation, bool, error) {
	var res reservation.Reservation
	var from reservation.Status
	var changed bool

	err := s.db.Transaction(func(tx *gorm.DB) error {
		loaded, err := s.load(tx, kind, id, true)
		if err != nil {
			return err
		}
		from = loaded.GetStatus()
		changed, err = s.TransitionTx(tx, loaded, target, actor)
		if err != nil {
			return err
		}
		res = loaded
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	if changed {
		s.publishStatusChange(res, from, target, actor)
	}
	return res, changed, nil
}

// Cancel is the owner-facing cancellation: the requester must present the
// email captured at booking time.
func (s *Service) Cancel(kind reservation.Kind, id uint, email string) (reservation.Reservation, error) {
	var res reservation.Reservation
	var from reservation.Status
	var changed bool

	err := s.db.Transaction(func(tx *gorm.DB) error {
		loaded, err := s.load(tx, kind, id, true)
		if err != nil {
			return err
		}
		if !strings.EqualFold(loaded.GetContactEmail(), email) {
			return apperrors.NewValidation("email", "email does not match the booking contact")
		}
		from = loaded.GetStatus()
		changed, err = s.TransitionTx(tx, loaded, reservation.StatusCancelada, email)
		if err != nil {
			return err
		}
		res = loaded
		return nil
	})
	if err != nil {
		return nil, err
	}

	if changed {
		s.publishStatusChange(res, from, reservation.StatusCancelada, email)
	}
	return res, nil
}

// History returns the audit trail of a reservation, oldest first.
func (s *Service) History(kind reservation.Kind, id uint) ([]reservation.StatusEvent, error) {
	var events []reservation.StatusEvent
	err := s.db.Where("kind = ? AND reservation_id = ?", kind, id).
		Order("created_at, id").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (s *Service) publishStatusChange(res reservation.Reservation, from, to reservation.Status, actor string) {
	s.publisher.Publish(context.Background(), queue.RoutingKeyStatusChanged, queue.ReservationStatusChanged{
		Kind:               res.GetKind().String(),
		ReservationID:      res.GetID(),
		ConfirmationNumber: res.GetConfirmationNumber(),
		From:               from.String(),
		To:                 to.String(),
		Actor:              actor,
		ChangedAt:          time.Now().UTC(),
	})
	logger.Info(fmt.Sprintf("Reservation %s status: %s -> %s (by %s)", res.GetConfirmationNumber(), from, to, actor))
}
