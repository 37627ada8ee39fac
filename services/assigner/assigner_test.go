package assigner

import (
	"testing"
	"time"

	"venue-booking/models/room"
)

func rooms(letters ...string) []room.Room {
	out := make([]room.Room, 0, len(letters))
	for i, l := range letters {
		out = append(out, room.Room{ID: uint(i + 1), Letter: l, Status: room.StatusDisponible})
	}
	return out
}

func letters(rs []room.Room) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.Letter)
	}
	return out
}

func TestSelectRoomsDeterministicOrder(t *testing.T) {
	// Same candidate set in a different order must yield the same selection.
	shuffled := rooms("G", "B", "N", "A", "D")
	selected := SelectRooms(shuffled, 3)

	want := []string{"A", "B", "D"}
	got := letters(selected)
	if len(got) != len(want) {
		t.Fatalf("selected %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("selected[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestSelectRoomsQuotaCap(t *testing.T) {
	all := rooms("A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L", "M", "N")

	selected := SelectRooms(all, 14)
	if len(selected) != 14 {
		t.Errorf("quota 14 over 14 free rooms selected %d", len(selected))
	}

	selected = SelectRooms(all, 5)
	if len(selected) != 5 {
		t.Errorf("quota 5 selected %d", len(selected))
	}
	if selected[len(selected)-1].Letter != "E" {
		t.Errorf("capped selection must keep lowest letters, last = %s", selected[len(selected)-1].Letter)
	}
}

func TestSelectRoomsPartialPool(t *testing.T) {
	// Only 10 of the 14 rooms are free: take all 10, never error.
	free := rooms("A", "B", "C", "D", "E", "F", "G", "H", "I", "J")
	selected := SelectRooms(free, 14)
	if len(selected) != 10 {
		t.Errorf("selected %d rooms, want all 10 available", len(selected))
	}
}

func TestSelectRoomsSkipsMaintenance(t *testing.T) {
	candidates := rooms("A", "B", "C")
	candidates[1].Status = room.StatusMantenimiento

	selected := SelectRooms(candidates, 14)
	got := letters(selected)
	if len(got) != 2 || got[0] != "A" || got[1] != "C" {
		t.Errorf("selected %v, want [A C]", got)
	}
}

func TestSelectRoomsEmpty(t *testing.T) {
	if got := SelectRooms(nil, 14); len(got) != 0 {
		t.Errorf("selected %d rooms from empty pool", len(got))
	}
}

func TestOneNightWindow(t *testing.T) {
	eventDate := time.Date(2025, 4, 10, 18, 30, 0, 0, time.UTC)
	w := OneNightWindow(eventDate)

	wantStart := time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC)
	if !w.Start.Equal(wantStart) {
		t.Errorf("Start = %v, want %v", w.Start, wantStart)
	}
	if !w.End.Equal(wantStart.AddDate(0, 0, 1)) {
		t.Errorf("End = %v, want next day", w.End)
	}
	if w.Nights() != 1 {
		t.Errorf("Nights() = %d, want 1", w.Nights())
	}
}
