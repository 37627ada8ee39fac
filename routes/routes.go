package routes

import (
	"context"

	"venue-booking/config"
	"venue-booking/constants"
	availabilityController "venue-booking/controllers/availability"
	catalogController "venue-booking/controllers/catalog"
	reservationController "venue-booking/controllers/reservation"
	webhookController "venue-booking/controllers/webhook"
	paymentHTTP "venue-booking/httpServices/payment"
	"venue-booking/logger"
	"venue-booking/middleware"
	"venue-booking/queue"
	"venue-booking/services/assigner"
	"venue-booking/services/availability"
	"venue-booking/services/booking"
	"venue-booking/services/lifecycle"
	"venue-booking/services/notification"
	"venue-booking/services/payment"
	"venue-booking/services/scheduler"
	"venue-booking/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg config.Config) {
	asyncLogger := logger.NewAsyncLogger(db)

	// Start the async logger processing goroutine
	go asyncLogger.ProcessLog()

	checker := availability.NewService()
	roomAssigner := assigner.NewService(checker)

	var notifier notification.Notifier
	if emailNotifier, err := notification.NewEmailNotifier(cfg); err != nil {
		logger.Error("Failed to initialize email notifier", err)
	} else if emailNotifier != nil {
		notifier = emailNotifier
	}

	publisher, err := queue.NewPublisher(cfg.AMQPURL)
	if err != nil {
		logger.Error("Failed to connect to the message broker, events disabled", err)
	}

	paymentClient := paymentHTTP.NewClient(cfg)

	bookingService := booking.NewService(db, checker, roomAssigner, notifier, publisher, paymentClient, cfg.RoomQuota)
	lifecycleService := lifecycle.NewService(db, publisher)
	reconciler := payment.NewReconciler(db, lifecycleService, notifier, cfg.WebhookSecret)

	scheduler.New(db, lifecycleService, cfg.SchedulerInterval).Start(context.Background())

	reservations := reservationController.NewReservationController(bookingService, lifecycleService, asyncLogger)
	availabilityCtrl := availabilityController.NewAvailabilityController(db, checker)
	webhooks := webhookController.NewWebhookController(reconciler, asyncLogger)
	catalog := catalogController.NewCatalogController(db)

	// Index route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"service": "venue-booking", "status": "ok"})
	})

	/*=============================================================================
	| Public Routes
	===============================================================================*/
	api := app.Group("/api")

	api.Get("/catalog/rooms", catalog.ListRooms)
	api.Get("/catalog/venues", catalog.ListVenues)
	api.Get("/catalog/massage-types", catalog.ListMassageTypes)

	api.Get("/availability", availabilityCtrl.Check)

	/*=============================================================================
	| Reservation Routes
	===============================================================================*/
	reservationGroup := api.Group("/reservations", auditLog(asyncLogger))

	reservationGroup.Post("/rooms", reservations.StoreRoom)
	reservationGroup.Post("/events", reservations.StoreEvent)
	reservationGroup.Post("/massages", reservations.StoreMassage)

	// Owner cancellation verifies the booking contact email in the body
	reservationGroup.Post("/:kind/:id/cancel", reservations.Cancel)

	reservationGroup.Get("/:kind/:id", middleware.RequireStaff(), reservations.Show)
	reservationGroup.Get("/:kind/:id/history", middleware.RequireStaff(), reservations.History)
	reservationGroup.Patch("/:kind/:id/status", middleware.RequirePermissions(
		constants.PermAdminFull,
		constants.PermManagerFull,
	), reservations.SetStatus)

	/*=============================================================================
	| Webhook Routes
	===============================================================================*/
	api.Post("/webhooks/payment", auditLog(asyncLogger), webhooks.HandlePayment)
}

// auditLog persists request/response pairs for the mutating endpoints
// through the async log pipeline.
func auditLog(asyncLogger *logger.AsyncLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		asyncLogger.Log(utils.CreateSanitizedLogEntry(c))
		return err
	}
}
