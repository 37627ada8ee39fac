package webhook

import (
	"errors"

	"venue-booking/logger"
	"venue-booking/services/payment"
	"venue-booking/types"
	"venue-booking/types/apperrors"

	"github.com/gofiber/fiber/v2"
)

// SignatureHeader carries the provider's HMAC over the raw request body.
const SignatureHeader = "X-Payment-Signature"

// WebhookController handles payment-provider callbacks
type WebhookController struct {
	Reconciler *payment.Reconciler
	Logger     *logger.AsyncLogger
}

// NewWebhookController creates a new webhook controller
func NewWebhookController(reconciler *payment.Reconciler, asyncLogger *logger.AsyncLogger) *WebhookController {
	return &WebhookController{Reconciler: reconciler, Logger: asyncLogger}
}

// HandlePayment processes one payment webhook delivery.
//
// Status codes steer the provider's retry loop: 2xx acknowledges (including
// duplicates and events we deliberately ignore), 4xx tells it the delivery
// is broken and retrying is pointless, 503 asks for a retry after a
// transient storage failure.
func (wc *WebhookController) HandlePayment(c *fiber.Ctx) error {
	body := c.Body()
	signature := c.Get(SignatureHeader)

	result, err := wc.Reconciler.Process(body, signature)
	if err != nil {
		if errors.Is(err, apperrors.ErrBadSignature) {
			logger.Warning("Rejected payment webhook with bad signature from " + c.IP())
			return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
				Status:  fiber.StatusBadRequest,
				Message: "Invalid signature",
				Data:    nil,
			})
		}
		if apperrors.IsValidation(err) {
			return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
				Status:  fiber.StatusBadRequest,
				Message: err.Error(),
				Data:    nil,
			})
		}
		if apperrors.IsTransient(err) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(types.ApiResponse{
				Status:  fiber.StatusServiceUnavailable,
				Message: "Temporarily unable to process, please retry",
				Data:    nil,
			})
		}
		logger.Error("Payment webhook processing failed", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Webhook processing failed",
			Data:    nil,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Webhook " + result.Outcome,
		Data:    fiber.Map{"outcome": result.Outcome},
	})
}
