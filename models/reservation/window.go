package reservation

import (
	"fmt"
	"time"
)

// TimeWindow is a half-open interval [Start, End). A checkout equal to
// another booking's check-in does not conflict.
type TimeWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Validate rejects zero-length and inverted windows before any store
// interaction happens.
func (w TimeWindow) Validate() error {
	if w.Start.IsZero() || w.End.IsZero() {
		return fmt.Errorf("window start and end are required")
	}
	if !w.End.After(w.Start) {
		return fmt.Errorf("window end must be after start")
	}
	return nil
}

// Overlaps reports whether two half-open windows intersect:
// s1 < e2 && s2 < e1.
func (w TimeWindow) Overlaps(other TimeWindow) bool {
	return w.Start.Before(other.End) && other.Start.Before(w.End)
}

// Nights returns the number of whole nights the window spans, at least 1.
func (w TimeWindow) Nights() int {
	n := int(w.End.Sub(w.Start).Hours() / 24)
	if n < 1 {
		n = 1
	}
	return n
}
