package reservation

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		want  time.Time
		fails bool
	}{
		{"plain date", "2025-04-10", time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC), false},
		{"rfc3339", "2025-04-10T15:00:00Z", time.Date(2025, 4, 10, 15, 0, 0, 0, time.UTC), false},
		{"rfc3339 with offset", "2025-04-10T15:00:00-05:00", time.Date(2025, 4, 10, 20, 0, 0, 0, time.UTC), false},
		{"datetime without zone", "2025-04-10T15:00:00", time.Date(2025, 4, 10, 15, 0, 0, 0, time.UTC), false},
		{"empty", "", time.Time{}, true},
		{"garbage", "next tuesday", time.Time{}, true},
		{"wrong order", "10-04-2025", time.Time{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			if tt.fails {
				if err == nil {
					t.Fatalf("ParseDate(%q) succeeded, want error", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDate(%q) failed: %v", tt.in, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func validContact() ContactInput {
	return ContactInput{Name: "Ana Torres", Email: "ana@example.com", Phone: "+51 999 888 777"}
}

func TestRoomReservationRequestValidate(t *testing.T) {
	valid := RoomReservationRequest{
		RoomLetter: "G",
		CheckIn:    "2025-04-10",
		CheckOut:   "2025-04-12",
		Price:      240,
		Contact:    validContact(),
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid request rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*RoomReservationRequest)
	}{
		{"missing room letter", func(r *RoomReservationRequest) { r.RoomLetter = "" }},
		{"missing check-in", func(r *RoomReservationRequest) { r.CheckIn = "" }},
		{"negative price", func(r *RoomReservationRequest) { r.Price = -1 }},
		{"bad payment method", func(r *RoomReservationRequest) { r.PaymentMethod = "bitcoin" }},
		{"bad email", func(r *RoomReservationRequest) { r.Contact.Email = "not-an-email" }},
		{"missing phone", func(r *RoomReservationRequest) { r.Contact.Phone = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			if err := req.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestEventReservationRequestRoomModes(t *testing.T) {
	base := EventReservationRequest{
		VenueID:   1,
		EventDate: "2025-04-10",
		Price:     1500,
		Contact:   validContact(),
	}

	t.Run("explicit with rooms", func(t *testing.T) {
		req := base
		req.RoomMode = RoomModeExplicit
		req.Rooms = []EventRoomInput{{RoomLetter: "A"}, {RoomLetter: "B"}}
		if err := req.Validate(); err != nil {
			t.Errorf("rejected: %v", err)
		}
	})

	t.Run("explicit without rooms", func(t *testing.T) {
		req := base
		req.RoomMode = RoomModeExplicit
		if err := req.Validate(); err == nil {
			t.Error("explicit mode with no rooms must fail")
		}
	})

	t.Run("auto with rooms listed", func(t *testing.T) {
		req := base
		req.RoomMode = RoomModeAuto
		req.Rooms = []EventRoomInput{{RoomLetter: "A"}}
		if err := req.Validate(); err == nil {
			t.Error("auto mode with an explicit room list must fail")
		}
	})

	t.Run("auto without rooms", func(t *testing.T) {
		req := base
		req.RoomMode = RoomModeAuto
		if err := req.Validate(); err != nil {
			t.Errorf("rejected: %v", err)
		}
	})

	t.Run("none", func(t *testing.T) {
		req := base
		req.RoomMode = RoomModeNone
		if err := req.Validate(); err != nil {
			t.Errorf("rejected: %v", err)
		}
	})

	t.Run("unknown mode", func(t *testing.T) {
		req := base
		req.RoomMode = "pick-for-me"
		if err := req.Validate(); err == nil {
			t.Error("unknown room mode must fail")
		}
	})
}

func TestMassageReservationRequestValidate(t *testing.T) {
	valid := MassageReservationRequest{
		MassageTypeID: 2,
		StartsAt:      "2025-04-10T15:00:00Z",
		Contact:       validContact(),
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid request rejected: %v", err)
	}

	missingType := valid
	missingType.MassageTypeID = 0
	if err := missingType.Validate(); err == nil {
		t.Error("missing massage type must fail")
	}
}

func TestCancelRequestValidate(t *testing.T) {
	if err := (CancelRequest{Email: "ana@example.com"}).Validate(); err != nil {
		t.Errorf("valid cancel rejected: %v", err)
	}
	if err := (CancelRequest{}).Validate(); err == nil {
		t.Error("missing email must fail")
	}
}
