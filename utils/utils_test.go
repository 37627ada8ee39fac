package utils

import (
	"regexp"
	"testing"

	"venue-booking/models/reservation"
)

func TestNewConfirmationNumberFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^(EVT|HAB|MAS)-\d{14}-[A-HJ-NP-Z2-9]{4}$`)

	tests := []struct {
		kind   reservation.Kind
		prefix string
	}{
		{reservation.KindEvento, "EVT-"},
		{reservation.KindHabitacion, "HAB-"},
		{reservation.KindMasaje, "MAS-"},
	}
	for _, tt := range tests {
		got := NewConfirmationNumber(tt.kind)
		if !pattern.MatchString(got) {
			t.Errorf("NewConfirmationNumber(%s) = %q, does not match expected format", tt.kind, got)
		}
		if got[:4] != tt.prefix {
			t.Errorf("NewConfirmationNumber(%s) = %q, want prefix %s", tt.kind, got, tt.prefix)
		}
	}
}

func TestNewConfirmationNumberDistinctPrefixes(t *testing.T) {
	// Prefixes are what keep confirmation numbers unique across kinds even
	// if timestamps and suffixes coincide.
	seen := map[string]bool{}
	for _, kind := range []reservation.Kind{reservation.KindEvento, reservation.KindHabitacion, reservation.KindMasaje} {
		p := NewConfirmationNumber(kind)[:4]
		if seen[p] {
			t.Errorf("prefix %q reused across kinds", p)
		}
		seen[p] = true
	}
}

func TestNewConfirmationNumberSuffixVaries(t *testing.T) {
	const samples = 50
	seen := map[string]bool{}
	for i := 0; i < samples; i++ {
		seen[NewConfirmationNumber(reservation.KindHabitacion)] = true
	}
	// All generated in under a second, so uniqueness rides on the random
	// suffix. A couple of collisions in 50 draws would be astronomical.
	if len(seen) < samples-1 {
		t.Errorf("got %d distinct numbers out of %d", len(seen), samples)
	}
}

func TestNormalizeRoomLetter(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"g", "G"},
		{" G ", "G"},
		{"n", "N"},
		{"A", "A"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeRoomLetter(tt.in); got != tt.want {
			t.Errorf("NormalizeRoomLetter(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
