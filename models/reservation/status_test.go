package reservation

import "testing"

func TestStatusCanTransitionTo(t *testing.T) {
	allowed := map[Status][]Status{
		StatusPendiente:   {StatusConfirmada, StatusPagoParcial, StatusPagada, StatusPagoFallido, StatusCancelada},
		StatusConfirmada:  {StatusPagada, StatusPagoFallido, StatusCancelada},
		StatusPagoParcial: {StatusPagada, StatusCancelada},
		StatusPagada:      {StatusCompletada, StatusCancelada},
		StatusPagoFallido: {StatusConfirmada, StatusPagada, StatusPagoParcial, StatusCancelada},
		StatusCancelada:   {},
		StatusCompletada:  {},
	}

	for _, from := range GetAllStatuses() {
		allowedSet := make(map[Status]bool)
		for _, to := range allowed[from] {
			allowedSet[to] = true
		}
		for _, to := range GetAllStatuses() {
			got := from.CanTransitionTo(to)
			if got != allowedSet[to] {
				t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", from, to, got, allowedSet[to])
			}
		}
	}
}

func TestStatusSameStateIsNotAnEdge(t *testing.T) {
	for _, s := range GetAllStatuses() {
		if s.CanTransitionTo(s) {
			t.Errorf("CanTransitionTo(%s -> %s) should be false; same-state changes are handled as no-ops", s, s)
		}
	}
}

func TestStatusTerminal(t *testing.T) {
	for _, s := range GetAllStatuses() {
		wantTerminal := s == StatusCancelada || s == StatusCompletada
		if s.IsTerminal() != wantTerminal {
			t.Errorf("IsTerminal(%s) = %v, want %v", s, s.IsTerminal(), wantTerminal)
		}
		if wantTerminal {
			for _, to := range GetAllStatuses() {
				if s.CanTransitionTo(to) {
					t.Errorf("terminal status %s must not transition to %s", s, to)
				}
			}
		}
	}
}

func TestStatusIsActive(t *testing.T) {
	for _, s := range GetAllStatuses() {
		wantActive := s != StatusCancelada
		if s.IsActive() != wantActive {
			t.Errorf("IsActive(%s) = %v, want %v", s, s.IsActive(), wantActive)
		}
	}
	// Completed stays occupy their historical window; only cancellation
	// frees the slot.
	if !StatusCompletada.IsActive() {
		t.Error("completada must still count toward availability")
	}
}

func TestStatusIsValid(t *testing.T) {
	for _, s := range GetAllStatuses() {
		if !s.IsValid() {
			t.Errorf("IsValid(%s) = false", s)
		}
	}
	for _, s := range []Status{"", "PAGADA", "reservada", "paid"} {
		if s.IsValid() {
			t.Errorf("IsValid(%q) = true, want false", s)
		}
	}
}

func TestParseKind(t *testing.T) {
	for _, valid := range []string{"evento", "habitacion", "masaje"} {
		if _, ok := ParseKind(valid); !ok {
			t.Errorf("ParseKind(%q) rejected", valid)
		}
	}
	for _, invalid := range []string{"", "room", "EVENTO", "spa"} {
		if _, ok := ParseKind(invalid); ok {
			t.Errorf("ParseKind(%q) accepted", invalid)
		}
	}
}
