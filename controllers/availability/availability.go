package availability

import (
	"strconv"

	"venue-booking/models/massage"
	reservationModel "venue-booking/models/reservation"
	roomModel "venue-booking/models/room"
	"venue-booking/services/availability"
	"venue-booking/types"
	reservationTypes "venue-booking/types/reservation"
	"venue-booking/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AvailabilityController answers advisory availability queries. The result
// is a snapshot: the authoritative check happens again inside the booking
// transaction.
type AvailabilityController struct {
	DB      *gorm.DB
	Checker *availability.Service
}

// NewAvailabilityController creates a new availability controller
func NewAvailabilityController(db *gorm.DB, checker *availability.Service) *AvailabilityController {
	return &AvailabilityController{DB: db, Checker: checker}
}

type checkResult struct {
	Available bool        `json:"available"`
	Conflicts interface{} `json:"conflicts,omitempty"`
}

// Check answers one availability question, dispatching on the kind query
// param:
//
//	?kind=habitacion&room_letter=G&check_in=2025-04-10&check_out=2025-04-12
//	?kind=evento&venue_id=1&date=2025-04-10
//	?kind=masaje&massage_type_id=2&starts_at=2025-04-10T15:00:00Z
func (ac *AvailabilityController) Check(c *fiber.Ctx) error {
	kind, ok := reservationModel.ParseKind(c.Query("kind"))
	if !ok {
		return badRequest(c, "unknown reservation kind: "+c.Query("kind"))
	}

	switch kind {
	case reservationModel.KindHabitacion:
		return ac.checkRoom(c)
	case reservationModel.KindEvento:
		return ac.checkVenue(c)
	default:
		return ac.checkMassage(c)
	}
}

func (ac *AvailabilityController) checkRoom(c *fiber.Ctx) error {
	letter := utils.NormalizeRoomLetter(c.Query("room_letter"))
	if letter == "" {
		return badRequest(c, "room_letter is required")
	}

	checkIn, err := reservationTypes.ParseDate(c.Query("check_in"))
	if err != nil {
		return badRequest(c, "check_in: "+err.Error())
	}
	checkOut, err := reservationTypes.ParseDate(c.Query("check_out"))
	if err != nil {
		return badRequest(c, "check_out: "+err.Error())
	}
	window := reservationModel.TimeWindow{Start: checkIn, End: checkOut}
	if err := window.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	var r roomModel.Room
	if err := ac.DB.Where("letter = ?", letter).First(&r).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return notFound(c, "room not found: "+letter)
		}
		return internalError(c, err)
	}

	conflicts, err := ac.Checker.RoomConflicts(ac.DB, r.ID, window, 0)
	if err != nil {
		return internalError(c, err)
	}
	return respondOK(c, checkResult{Available: len(conflicts) == 0, Conflicts: nonEmpty(len(conflicts), conflicts)})
}

func (ac *AvailabilityController) checkVenue(c *fiber.Ctx) error {
	venueID, err := strconv.ParseUint(c.Query("venue_id"), 10, 64)
	if err != nil || venueID == 0 {
		return badRequest(c, "venue_id is required")
	}
	date, err := reservationTypes.ParseDate(c.Query("date"))
	if err != nil {
		return badRequest(c, "date: "+err.Error())
	}

	conflicts, err := ac.Checker.VenueConflicts(ac.DB, uint(venueID), date, 0)
	if err != nil {
		return internalError(c, err)
	}
	return respondOK(c, checkResult{Available: len(conflicts) == 0, Conflicts: nonEmpty(len(conflicts), conflicts)})
}

func (ac *AvailabilityController) checkMassage(c *fiber.Ctx) error {
	typeID, err := strconv.ParseUint(c.Query("massage_type_id"), 10, 64)
	if err != nil || typeID == 0 {
		return badRequest(c, "massage_type_id is required")
	}
	startsAt, err := reservationTypes.ParseDate(c.Query("starts_at"))
	if err != nil {
		return badRequest(c, "starts_at: "+err.Error())
	}

	var mt massage.MassageType
	if err := ac.DB.First(&mt, uint(typeID)).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return notFound(c, "massage type not found")
		}
		return internalError(c, err)
	}

	window := reservationModel.TimeWindow{Start: startsAt, End: startsAt.Add(mt.Duration())}
	conflicts, err := ac.Checker.MassageConflicts(ac.DB, mt.ID, window, 0)
	if err != nil {
		return internalError(c, err)
	}
	return respondOK(c, checkResult{Available: len(conflicts) == 0, Conflicts: nonEmpty(len(conflicts), conflicts)})
}

func nonEmpty(n int, v interface{}) interface{} {
	if n == 0 {
		return nil
	}
	return v
}

func respondOK(c *fiber.Ctx, result checkResult) error {
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Availability checked",
		Data:    result,
	})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
		Status:  fiber.StatusBadRequest,
		Message: msg,
		Data:    nil,
	})
}

func notFound(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusNotFound).JSON(types.ApiResponse{
		Status:  fiber.StatusNotFound,
		Message: msg,
		Data:    nil,
	})
}

func internalError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
		Status:  fiber.StatusInternalServerError,
		Message: err.Error(),
		Data:    nil,
	})
}
