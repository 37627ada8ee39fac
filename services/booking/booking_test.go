package booking

import (
	"strings"
	"testing"

	"venue-booking/models/room"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// dryRunDB opens a gorm handle that builds SQL without touching a server.
func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.Open("host=localhost user=venue dbname=venue_test"), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
	})
	if err != nil {
		t.Fatalf("failed to open dry-run handle: %v", err)
	}
	return db
}

func TestLockForBookingTakesRowLock(t *testing.T) {
	// Two concurrent bookings for the same room must serialize on the
	// catalog row; under READ COMMITTED an unlocked conflict scan would let
	// both commit. The catalog load therefore has to carry FOR UPDATE.
	db := dryRunDB(t)

	var r room.Room
	stmt := lockForBooking(db).Where("letter = ?", "G").Find(&r).Statement
	sql := stmt.SQL.String()

	if !strings.Contains(sql, "FOR UPDATE") {
		t.Errorf("catalog load must lock the row, generated %q", sql)
	}
}

func TestCreatesPaymentIntent(t *testing.T) {
	tests := []struct {
		method string
		want   bool
	}{
		{"tarjeta", true},
		{"efectivo", false},
		{"transferencia", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := createsPaymentIntent(tt.method); got != tt.want {
			t.Errorf("createsPaymentIntent(%q) = %v, want %v", tt.method, got, tt.want)
		}
	}
}
