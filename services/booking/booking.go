package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	paymentHTTP "venue-booking/httpServices/payment"
	"venue-booking/logger"
	"venue-booking/models/massage"
	"venue-booking/models/reservation"
	"venue-booking/models/room"
	"venue-booking/models/venue"
	"venue-booking/queue"
	"venue-booking/services/assigner"
	"venue-booking/services/availability"
	"venue-booking/services/notification"
	"venue-booking/types/apperrors"
	reservationTypes "venue-booking/types/reservation"
	"venue-booking/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Service creates reservations. Every booking runs as a single database
// transaction that first locks the catalog row being booked (room, venue or
// massage type) and only then re-checks availability, so two concurrent
// requests for the same slot serialize on the row and cannot both commit.
// Side effects (email, queue events, payment intents) run only after the
// transaction is durable and are reported as warnings, never as failures.
type Service struct {
	db        *gorm.DB
	checker   *availability.Service
	assigner  *assigner.Service
	notifier  notification.Notifier
	publisher *queue.Publisher
	payments  *paymentHTTP.Client
	quota     int
}

func NewService(db *gorm.DB, checker *availability.Service, roomAssigner *assigner.Service, notifier notification.Notifier, publisher *queue.Publisher, payments *paymentHTTP.Client, quota int) *Service {
	if quota <= 0 {
		quota = 14
	}
	return &Service{
		db:        db,
		checker:   checker,
		assigner:  roomAssigner,
		notifier:  notifier,
		publisher: publisher,
		payments:  payments,
		quota:     quota,
	}
}

// CreateRoomReservation books one room directly for a check-in/check-out
// window. Returns the created reservation plus warnings from post-commit
// side effects.
func (s *Service) CreateRoomReservation(req reservationTypes.RoomReservationRequest) (*reservation.RoomReservation, []string, error) {
	if err := req.Validate(); err != nil {
		return nil, nil, apperrors.NewValidation("body", err.Error())
	}

	checkIn, err := reservationTypes.ParseDate(req.CheckIn)
	if err != nil {
		return nil, nil, apperrors.NewValidation("check_in", err.Error())
	}
	checkOut, err := reservationTypes.ParseDate(req.CheckOut)
	if err != nil {
		return nil, nil, apperrors.NewValidation("check_out", err.Error())
	}
	window := reservation.TimeWindow{Start: checkIn, End: checkOut}
	if err := window.Validate(); err != nil {
		return nil, nil, apperrors.NewValidation("check_out", err.Error())
	}

	letter := utils.NormalizeRoomLetter(req.RoomLetter)

	var created reservation.RoomReservation
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var r room.Room
		if err := lockForBooking(tx).Preload("RoomType").Where("letter = ?", letter).First(&r).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return &apperrors.NotFoundError{Entity: "room", Ref: letter}
			}
			return err
		}
		if r.Status != room.StatusDisponible {
			return apperrors.NewValidation("room_letter", fmt.Sprintf("room %s is under maintenance", letter))
		}

		conflicts, err := s.checker.RoomConflicts(tx, r.ID, window, 0)
		if err != nil {
			return err
		}
		if len(conflicts) > 0 {
			return &apperrors.ConflictError{
				ResourceKind:          "habitacion",
				ResourceLabel:         letter,
				CompetingConfirmation: conflicts[0].ConfirmationNumber,
			}
		}

		price := req.Price
		if price == 0 {
			price = float64(window.Nights()) * r.RoomType.PricePerNight
		}

		created = reservation.RoomReservation{
			Core: reservation.Core{
				ConfirmationNumber: utils.NewConfirmationNumber(reservation.KindHabitacion),
				StartsAt:           window.Start,
				EndsAt:             window.End,
				Status:             reservation.StatusPendiente,
				Price:              price,
				PaymentMethod:      req.PaymentMethod,
				ContactName:        req.Contact.Name,
				ContactEmail:       req.Contact.Email,
				ContactPhone:       req.Contact.Phone,
				CreatedBy:          req.Contact.Email,
			},
			RoomID:     r.ID,
			RoomLetter: r.Letter,
			Nights:     window.Nights(),
		}
		if err := tx.Create(&created).Error; err != nil {
			return err
		}

		return s.recordStatus(tx, &created, req.Contact.Email)
	})
	if err != nil {
		return nil, nil, s.mapTxError("room booking", err)
	}

	warnings := s.afterCommit(&created, req.Contact.Email, req.PaymentMethod, "Reserva de habitación "+created.RoomLetter, created.Price, 0)
	return &created, warnings, nil
}

// CreateMassageReservation books a massage slot. The slot's end time follows
// from the massage type's fixed duration, never from the request.
func (s *Service) CreateMassageReservation(req reservationTypes.MassageReservationRequest) (*reservation.MassageReservation, []string, error) {
	if err := req.Validate(); err != nil {
		return nil, nil, apperrors.NewValidation("body", err.Error())
	}

	startsAt, err := reservationTypes.ParseDate(req.StartsAt)
	if err != nil {
		return nil, nil, apperrors.NewValidation("starts_at", err.Error())
	}

	var created reservation.MassageReservation
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var mt massage.MassageType
		if err := lockForBooking(tx).First(&mt, req.MassageTypeID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return &apperrors.NotFoundError{Entity: "massage type", Ref: fmt.Sprintf("%d", req.MassageTypeID)}
			}
			return err
		}

		window := reservation.TimeWindow{Start: startsAt, End: startsAt.Add(mt.Duration())}
		conflicts, err := s.checker.MassageConflicts(tx, mt.ID, window, 0)
		if err != nil {
			return err
		}
		if len(conflicts) > 0 {
			return &apperrors.ConflictError{
				ResourceKind:          "masaje",
				ResourceLabel:         mt.Name,
				CompetingConfirmation: conflicts[0].ConfirmationNumber,
			}
		}

		created = reservation.MassageReservation{
			Core: reservation.Core{
				ConfirmationNumber: utils.NewConfirmationNumber(reservation.KindMasaje),
				StartsAt:           window.Start,
				EndsAt:             window.End,
				Status:             reservation.StatusPendiente,
				Price:              mt.Price,
				PaymentMethod:      req.PaymentMethod,
				ContactName:        req.Contact.Name,
				ContactEmail:       req.Contact.Email,
				ContactPhone:       req.Contact.Phone,
				CreatedBy:          req.Contact.Email,
			},
			MassageTypeID: mt.ID,
		}
		if err := tx.Create(&created).Error; err != nil {
			return err
		}

		return s.recordStatus(tx, &created, req.Contact.Email)
	})
	if err != nil {
		return nil, nil, s.mapTxError("massage booking", err)
	}

	warnings := s.afterCommit(&created, req.Contact.Email, req.PaymentMethod, "Reserva de masaje", created.Price, 0)
	return &created, warnings, nil
}

// CreateEventWithRooms books the venue for a calendar day plus zero or more
// rooms in one atomic transaction. If any room in the bundle is taken, the
// whole booking rolls back, including the venue hold.
func (s *Service) CreateEventWithRooms(req reservationTypes.EventReservationRequest) (*reservation.EventReservation, []string, error) {
	if err := req.Validate(); err != nil {
		return nil, nil, apperrors.NewValidation("body", err.Error())
	}

	eventDate, err := reservationTypes.ParseDate(req.EventDate)
	if err != nil {
		return nil, nil, apperrors.NewValidation("event_date", err.Error())
	}

	if req.RoomMode == reservationTypes.RoomModeExplicit {
		seen := make(map[string]bool)
		for _, in := range req.Rooms {
			l := utils.NormalizeRoomLetter(in.RoomLetter)
			if seen[l] {
				return nil, nil, apperrors.NewValidation("rooms", "room "+l+" is listed more than once")
			}
			seen[l] = true
		}
	}

	dayWindow := assigner.OneNightWindow(eventDate)

	var created reservation.EventReservation
	var partial bool
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var v venue.Venue
		if err := lockForBooking(tx).First(&v, req.VenueID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return &apperrors.NotFoundError{Entity: "venue", Ref: fmt.Sprintf("%d", req.VenueID)}
			}
			return err
		}

		venueConflicts, err := s.checker.VenueConflicts(tx, v.ID, eventDate, 0)
		if err != nil {
			return err
		}
		if len(venueConflicts) > 0 {
			return &apperrors.ConflictError{
				ResourceKind:          "evento",
				ResourceLabel:         v.Name + " " + dayWindow.Start.Format("2006-01-02"),
				CompetingConfirmation: venueConflicts[0].ConfirmationNumber,
			}
		}

		price := req.Price
		if price == 0 {
			price = v.BasePrice
		}

		created = reservation.EventReservation{
			Core: reservation.Core{
				ConfirmationNumber: utils.NewConfirmationNumber(reservation.KindEvento),
				StartsAt:           dayWindow.Start,
				EndsAt:             dayWindow.End,
				Status:             reservation.StatusPendiente,
				Price:              price,
				PaymentMethod:      req.PaymentMethod,
				ContactName:        req.Contact.Name,
				ContactEmail:       req.Contact.Email,
				ContactPhone:       req.Contact.Phone,
				CreatedBy:          req.Contact.Email,
			},
			VenueID: v.ID,
		}
		if err := tx.Create(&created).Error; err != nil {
			return err
		}
		if err := s.recordStatus(tx, &created, req.Contact.Email); err != nil {
			return err
		}

		var bundled []reservation.RoomReservation
		switch req.RoomMode {
		case reservationTypes.RoomModeExplicit:
			bundled, err = s.bookExplicitRooms(tx, &created, req, dayWindow)
		case reservationTypes.RoomModeAuto:
			bundled, partial, err = s.bookAutoRooms(tx, &created, req, eventDate)
		}
		if err != nil {
			return err
		}

		if len(bundled) > 0 {
			var subtotal float64
			for _, rr := range bundled {
				subtotal += rr.Price
			}
			created.Rooms = bundled
			created.RoomCount = len(bundled)
			created.RoomsSubtotal = subtotal
			if err := tx.Model(&reservation.EventReservation{}).Where("id = ?", created.ID).
				Updates(map[string]interface{}{"room_count": created.RoomCount, "rooms_subtotal": created.RoomsSubtotal}).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, nil, s.mapTxError("event booking", err)
	}

	warnings := s.afterCommit(&created, req.Contact.Email, req.PaymentMethod, "Reserva de evento en "+dayWindow.Start.Format("2006-01-02"), created.Price+created.RoomsSubtotal, created.RoomCount)
	if partial {
		warnings = append(warnings, fmt.Sprintf("only %d of %d rooms were available for auto-assignment", created.RoomCount, s.quota))
	}
	return &created, warnings, nil
}

// bookExplicitRooms creates one bundled room reservation per requested room,
// failing the transaction on the first conflict.
func (s *Service) bookExplicitRooms(tx *gorm.DB, parent *reservation.EventReservation, req reservationTypes.EventReservationRequest, dayWindow reservation.TimeWindow) ([]reservation.RoomReservation, error) {
	bundled := make([]reservation.RoomReservation, 0, len(req.Rooms))
	for _, in := range req.Rooms {
		letter := utils.NormalizeRoomLetter(in.RoomLetter)

		var r room.Room
		if err := lockForBooking(tx).Preload("RoomType").Where("letter = ?", letter).First(&r).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, &apperrors.NotFoundError{Entity: "room", Ref: letter}
			}
			return nil, err
		}
		if r.Status != room.StatusDisponible {
			return nil, apperrors.NewValidation("rooms", fmt.Sprintf("room %s is under maintenance", letter))
		}

		window := dayWindow
		if in.CheckIn != "" && in.CheckOut != "" {
			checkIn, err := reservationTypes.ParseDate(in.CheckIn)
			if err != nil {
				return nil, apperrors.NewValidation("rooms", fmt.Sprintf("room %s: %s", letter, err.Error()))
			}
			checkOut, err := reservationTypes.ParseDate(in.CheckOut)
			if err != nil {
				return nil, apperrors.NewValidation("rooms", fmt.Sprintf("room %s: %s", letter, err.Error()))
			}
			window = reservation.TimeWindow{Start: checkIn, End: checkOut}
			if err := window.Validate(); err != nil {
				return nil, apperrors.NewValidation("rooms", fmt.Sprintf("room %s: %s", letter, err.Error()))
			}
		}

		conflicts, err := s.checker.RoomConflicts(tx, r.ID, window, 0)
		if err != nil {
			return nil, err
		}
		if len(conflicts) > 0 {
			return nil, &apperrors.ConflictError{
				ResourceKind:          "habitacion",
				ResourceLabel:         letter,
				CompetingConfirmation: conflicts[0].ConfirmationNumber,
			}
		}

		price := in.Price
		if price == 0 {
			price = float64(window.Nights()) * r.RoomType.PricePerNight
		}

		rr := reservation.RoomReservation{
			Core: reservation.Core{
				ConfirmationNumber: utils.NewConfirmationNumber(reservation.KindHabitacion),
				StartsAt:           window.Start,
				EndsAt:             window.End,
				Status:             reservation.StatusPendiente,
				Price:              price,
				PaymentMethod:      req.PaymentMethod,
				ContactName:        req.Contact.Name,
				ContactEmail:       req.Contact.Email,
				ContactPhone:       req.Contact.Phone,
				CreatedBy:          req.Contact.Email,
			},
			RoomID:        r.ID,
			RoomLetter:    r.Letter,
			Nights:        window.Nights(),
			ParentEventID: &parent.ID,
		}
		if err := tx.Create(&rr).Error; err != nil {
			return nil, err
		}
		if err := s.recordStatus(tx, &rr, req.Contact.Email); err != nil {
			return nil, err
		}
		bundled = append(bundled, rr)
	}
	return bundled, nil
}

// bookAutoRooms delegates room selection to the assigner and materializes one
// bundled room reservation per assigned room. Fewer rooms than the quota is a
// partial success, reported as a warning.
func (s *Service) bookAutoRooms(tx *gorm.DB, parent *reservation.EventReservation, req reservationTypes.EventReservationRequest, eventDate time.Time) ([]reservation.RoomReservation, bool, error) {
	result, err := s.assigner.AutoAssign(tx, eventDate, s.quota)
	if err != nil {
		return nil, false, err
	}

	bundled := make([]reservation.RoomReservation, 0, len(result.Rooms))
	for _, r := range result.Rooms {
		rr := reservation.RoomReservation{
			Core: reservation.Core{
				ConfirmationNumber: utils.NewConfirmationNumber(reservation.KindHabitacion),
				StartsAt:           result.Window.Start,
				EndsAt:             result.Window.End,
				Status:             reservation.StatusPendiente,
				Price:              float64(result.Window.Nights()) * r.RoomType.PricePerNight,
				PaymentMethod:      req.PaymentMethod,
				ContactName:        req.Contact.Name,
				ContactEmail:       req.Contact.Email,
				ContactPhone:       req.Contact.Phone,
				CreatedBy:          req.Contact.Email,
			},
			RoomID:        r.ID,
			RoomLetter:    r.Letter,
			Nights:        result.Window.Nights(),
			ParentEventID: &parent.ID,
		}
		if err := tx.Create(&rr).Error; err != nil {
			return nil, false, err
		}
		if err := s.recordStatus(tx, &rr, req.Contact.Email); err != nil {
			return nil, false, err
		}
		bundled = append(bundled, rr)
	}
	return bundled, result.Partial, nil
}

// lockForBooking scopes the handle to take a row lock on the catalog row
// being booked. Postgres runs transactions at READ COMMITTED, where two
// concurrent conflict scans would each miss the other's uncommitted insert;
// serializing bookers on the resource row makes the in-transaction re-check
// authoritative, so exactly one of two racing bookings commits and the other
// sees the winner's row as a conflict.
func lockForBooking(tx *gorm.DB) *gorm.DB {
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// recordStatus appends the reservation's current status to the audit trail in
// the same transaction.
func (s *Service) recordStatus(tx *gorm.DB, res reservation.Reservation, actor string) error {
	if actor == "" {
		actor = "system"
	}
	return tx.Create(&reservation.StatusEvent{
		Kind:          res.GetKind(),
		ReservationID: res.GetID(),
		Status:        res.GetStatus(),
		Actor:         actor,
	}).Error
}

// mapTxError classifies a failed transaction. Domain errors pass through;
// serialization conflicts and deadlocks become retryable transient errors.
func (s *Service) mapTxError(op string, err error) error {
	if apperrors.IsValidation(err) || apperrors.IsConflict(err) || apperrors.IsNotFound(err) {
		return err
	}
	if isSerializationFailure(err) {
		return &apperrors.TransientStorageError{Op: op, Err: err}
	}
	return err
}

func isSerializationFailure(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "40001") ||
		strings.Contains(msg, "40P01") ||
		strings.Contains(msg, "could not serialize access") ||
		strings.Contains(msg, "deadlock detected")
}

// PaymentMethodCard marks the bookings that settle through the card
// provider; only those get a payment intent.
const PaymentMethodCard = "tarjeta"

// createsPaymentIntent reports whether the chosen payment method settles
// online. Cash and bank-transfer bookings are reconciled manually and never
// touch the provider.
func createsPaymentIntent(method string) bool {
	return method == PaymentMethodCard
}

// afterCommit runs the best-effort side effects of a committed booking and
// collects human-readable warnings for the response.
func (s *Service) afterCommit(res reservation.Reservation, contactEmail, paymentMethod, description string, totalPrice float64, roomCount int) []string {
	var warnings []string

	if s.notifier != nil {
		if err := s.notifier.SendBookingConfirmation(res, contactEmail); err != nil {
			logger.Error("Failed to send booking confirmation for "+res.GetConfirmationNumber(), err)
			warnings = append(warnings, "confirmation email could not be sent")
		}
		if err := s.notifier.NotifyAdmins(
			"Nueva reserva "+res.GetConfirmationNumber(),
			fmt.Sprintf("<p>Nueva reserva <strong>%s</strong> (%s) por %s.</p>", res.GetConfirmationNumber(), res.GetKind(), contactEmail),
		); err != nil {
			logger.Error("Failed to notify admins for "+res.GetConfirmationNumber(), err)
		}
	}

	w := res.Window()
	s.publisher.Publish(context.Background(), queue.RoutingKeyCreated, queue.ReservationCreated{
		Kind:               res.GetKind().String(),
		ReservationID:      res.GetID(),
		ConfirmationNumber: res.GetConfirmationNumber(),
		Status:             res.GetStatus().String(),
		StartsAt:           w.Start,
		EndsAt:             w.End,
		Price:              totalPrice,
		RoomCount:          roomCount,
		CreatedAt:          time.Now().UTC(),
	})

	if s.payments != nil && createsPaymentIntent(paymentMethod) {
		intent, err := s.payments.CreateIntent(res, totalPrice, description)
		if err != nil {
			logger.Error("Failed to create payment intent for "+res.GetConfirmationNumber(), err)
			warnings = append(warnings, "payment intent could not be created")
		} else if intent != nil {
			if err := s.db.Model(res).Update("payment_provider_ref", intent.IntentID).Error; err != nil {
				logger.Error("Failed to store payment reference for "+res.GetConfirmationNumber(), err)
				warnings = append(warnings, "payment reference could not be stored")
			}
		}
	}

	return warnings
}
