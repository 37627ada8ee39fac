package catalog

import (
	"venue-booking/models/massage"
	"venue-booking/models/room"
	"venue-booking/models/venue"
	"venue-booking/types"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CatalogController serves the bookable resource catalog
type CatalogController struct {
	DB *gorm.DB
}

// NewCatalogController creates a new catalog controller
func NewCatalogController(db *gorm.DB) *CatalogController {
	return &CatalogController{DB: db}
}

// ListRooms returns every room with its type, ordered by letter
func (cc *CatalogController) ListRooms(c *fiber.Ctx) error {
	var rooms []room.Room
	if err := cc.DB.Preload("RoomType").Order("letter").Find(&rooms).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to fetch rooms",
			Data:    nil,
		})
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Rooms fetched",
		Data:    rooms,
	})
}

// ListVenues returns the event venues
func (cc *CatalogController) ListVenues(c *fiber.Ctx) error {
	var venues []venue.Venue
	if err := cc.DB.Order("id").Find(&venues).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to fetch venues",
			Data:    nil,
		})
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Venues fetched",
		Data:    venues,
	})
}

// ListMassageTypes returns the massage service catalog
func (cc *CatalogController) ListMassageTypes(c *fiber.Ctx) error {
	var massageTypes []massage.MassageType
	if err := cc.DB.Order("id").Find(&massageTypes).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Failed to fetch massage types",
			Data:    nil,
		})
	}
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Massage types fetched",
		Data:    massageTypes,
	})
}
