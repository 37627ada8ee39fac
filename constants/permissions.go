package constants

// Organization permissions
const (
	// Admin permissions
	PermAdminFull     = "venue-booking.admin.full-permit"
	PermManagerFull   = "venue-booking.manager.full-permit"
	PermReceptionFull = "venue-booking.reception.full-permit"
	PermSpaFull       = "venue-booking.spa.full-permit"

	// Special permissions
	PermAny = "any"
)

// Permission groups for convenience
var (
	StaffPermissions = []string{
		PermAdminFull,
		PermManagerFull,
		PermReceptionFull,
	}
)
