package reservation

// Status is the lifecycle state shared by every reservation kind.
type Status string

const (
	StatusPendiente   Status = "pendiente"
	StatusConfirmada  Status = "confirmada"
	StatusPagoParcial Status = "pago_parcial"
	StatusPagada      Status = "pagada"
	StatusPagoFallido Status = "pago_fallido"
	StatusCancelada   Status = "cancelada"
	StatusCompletada  Status = "completada"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPendiente, StatusConfirmada, StatusPagoParcial, StatusPagada,
		StatusPagoFallido, StatusCancelada, StatusCompletada:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transition may leave this state.
func (s Status) IsTerminal() bool {
	return s == StatusCancelada || s == StatusCompletada
}

// IsActive reports whether the reservation still counts toward availability.
// Completed reservations remain historical occupancy; only cancellation
// frees the slot.
func (s Status) IsActive() bool {
	return s != StatusCancelada
}

// transitions holds the legal edges of the lifecycle graph.
var transitions = map[Status][]Status{
	StatusPendiente:   {StatusConfirmada, StatusPagoParcial, StatusPagada, StatusPagoFallido, StatusCancelada},
	StatusConfirmada:  {StatusPagada, StatusPagoFallido, StatusCancelada},
	StatusPagoParcial: {StatusPagada, StatusCancelada},
	StatusPagada:      {StatusCompletada, StatusCancelada},
	StatusPagoFallido: {StatusConfirmada, StatusPagada, StatusPagoParcial, StatusCancelada},
	StatusCancelada:   {},
	StatusCompletada:  {},
}

// CanTransitionTo reports whether the edge from s to target exists.
// A same-state "transition" is not an edge; callers treat it as a no-op.
func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range transitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// GetAllStatuses returns every valid status.
func GetAllStatuses() []Status {
	return []Status{
		StatusPendiente,
		StatusConfirmada,
		StatusPagoParcial,
		StatusPagada,
		StatusPagoFallido,
		StatusCancelada,
		StatusCompletada,
	}
}
