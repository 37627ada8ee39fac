package middleware

import (
	"venue-booking/constants"

	"github.com/gofiber/fiber/v2"
)

// RequirePermissions creates a middleware gated on specific permissions
func RequirePermissions(permissions ...string) fiber.Handler {
	return IsAuthenticated(permissions)
}

// RequireAnyPermission allows access to any authenticated staff member
func RequireAnyPermission(permissions ...string) fiber.Handler {
	allPerms := append(permissions, constants.PermAny)
	return IsAuthenticated(allPerms)
}

// RequireStaff allows any of the front-desk roles
func RequireStaff() fiber.Handler {
	return IsAuthenticated(constants.StaffPermissions)
}
