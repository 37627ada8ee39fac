package reservation

import (
	"strconv"

	"venue-booking/logger"
	reservationModel "venue-booking/models/reservation"
	"venue-booking/services/booking"
	"venue-booking/services/lifecycle"
	"venue-booking/types"
	"venue-booking/types/apperrors"
	reservationTypes "venue-booking/types/reservation"

	"github.com/gofiber/fiber/v2"
)

// ReservationController handles reservation-related HTTP requests
type ReservationController struct {
	Booking   *booking.Service
	Lifecycle *lifecycle.Service
	Logger    *logger.AsyncLogger
}

// NewReservationController creates a new reservation controller
func NewReservationController(bookingService *booking.Service, lifecycleService *lifecycle.Service, asyncLogger *logger.AsyncLogger) *ReservationController {
	return &ReservationController{
		Booking:   bookingService,
		Lifecycle: lifecycleService,
		Logger:    asyncLogger,
	}
}

// StoreRoom creates a direct room reservation
func (rc *ReservationController) StoreRoom(c *fiber.Ctx) error {
	var req reservationTypes.RoomReservationRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse room reservation body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}

	created, warnings, err := rc.Booking.CreateRoomReservation(req)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:   fiber.StatusCreated,
		Message:  "Room reservation created",
		Warnings: warnings,
		Data:     created,
	})
}

// StoreMassage creates a massage slot reservation
func (rc *ReservationController) StoreMassage(c *fiber.Ctx) error {
	var req reservationTypes.MassageReservationRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse massage reservation body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}

	created, warnings, err := rc.Booking.CreateMassageReservation(req)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:   fiber.StatusCreated,
		Message:  "Massage reservation created",
		Warnings: warnings,
		Data:     created,
	})
}

// StoreEvent creates an event reservation, optionally bundling rooms, as one
// atomic booking
func (rc *ReservationController) StoreEvent(c *fiber.Ctx) error {
	var req reservationTypes.EventReservationRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse event reservation body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}

	created, warnings, err := rc.Booking.CreateEventWithRooms(req)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(types.ApiResponse{
		Status:   fiber.StatusCreated,
		Message:  "Event reservation created",
		Warnings: warnings,
		Data:     created,
	})
}

// Show returns one reservation by kind and id
func (rc *ReservationController) Show(c *fiber.Ctx) error {
	kind, id, err := parseTarget(c)
	if err != nil {
		return errorResponse(c, err)
	}

	res, err := rc.Lifecycle.Get(kind, id)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Reservation found",
		Data:    res,
	})
}

// History returns the status audit trail of a reservation, oldest first
func (rc *ReservationController) History(c *fiber.Ctx) error {
	kind, id, err := parseTarget(c)
	if err != nil {
		return errorResponse(c, err)
	}

	events, err := rc.Lifecycle.History(kind, id)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Status history",
		Data:    events,
	})
}

// SetStatus applies an administrative status transition
func (rc *ReservationController) SetStatus(c *fiber.Ctx) error {
	kind, id, err := parseTarget(c)
	if err != nil {
		return errorResponse(c, err)
	}

	var req reservationTypes.SetStatusRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse status body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}
	if err := req.Validate(); err != nil {
		return errorResponse(c, apperrors.NewValidation("status", err.Error()))
	}

	actor := "admin"
	if claims, ok := c.Locals("user").(map[string]interface{}); ok {
		if email, ok := claims["email"].(string); ok && email != "" {
			actor = email
		}
	}

	res, changed, err := rc.Lifecycle.SetStatus(kind, id, reservationModel.Status(req.Status), actor)
	if err != nil {
		return errorResponse(c, err)
	}

	message := "Status updated"
	if !changed {
		message = "Status unchanged"
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: message,
		Data:    res,
	})
}

// Cancel is the owner-facing cancellation; the email must match the booking
// contact
func (rc *ReservationController) Cancel(c *fiber.Ctx) error {
	kind, id, err := parseTarget(c)
	if err != nil {
		return errorResponse(c, err)
	}

	var req reservationTypes.CancelRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse cancel body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
			Data:    nil,
		})
	}
	if err := req.Validate(); err != nil {
		return errorResponse(c, apperrors.NewValidation("email", err.Error()))
	}

	res, err := rc.Lifecycle.Cancel(kind, id, req.Email)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Reservation cancelled",
		Data:    res,
	})
}

func parseTarget(c *fiber.Ctx) (reservationModel.Kind, uint, error) {
	kind, ok := reservationModel.ParseKind(c.Params("kind"))
	if !ok {
		return "", 0, apperrors.NewValidation("kind", "unknown reservation kind: "+c.Params("kind"))
	}
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return "", 0, apperrors.NewValidation("id", "invalid reservation id: "+c.Params("id"))
	}
	return kind, uint(id), nil
}

// errorResponse maps domain errors onto HTTP statuses with the standard
// envelope.
func errorResponse(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case apperrors.IsConflict(err):
		status = fiber.StatusConflict
	case apperrors.IsNotFound(err):
		status = fiber.StatusNotFound
	case apperrors.IsValidation(err):
		status = fiber.StatusUnprocessableEntity
	case apperrors.IsInvalidTransition(err):
		status = fiber.StatusUnprocessableEntity
	case apperrors.IsTransient(err):
		status = fiber.StatusServiceUnavailable
	}

	if status == fiber.StatusInternalServerError {
		logger.Error("Reservation request failed", err)
	}
	return c.Status(status).JSON(types.ApiResponse{
		Status:  status,
		Message: err.Error(),
		Data:    nil,
	})
}
