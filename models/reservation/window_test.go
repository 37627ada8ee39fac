package reservation

import (
	"testing"
	"time"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestTimeWindowOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a    TimeWindow
		b    TimeWindow
		want bool
	}{
		{
			name: "identical windows",
			a:    TimeWindow{Start: day("2025-04-10"), End: day("2025-04-12")},
			b:    TimeWindow{Start: day("2025-04-10"), End: day("2025-04-12")},
			want: true,
		},
		{
			name: "second stay starts mid-way through first",
			a:    TimeWindow{Start: day("2025-04-10"), End: day("2025-04-12")},
			b:    TimeWindow{Start: day("2025-04-11"), End: day("2025-04-13")},
			want: true,
		},
		{
			name: "checkout day equals next check-in",
			a:    TimeWindow{Start: day("2025-04-10"), End: day("2025-04-12")},
			b:    TimeWindow{Start: day("2025-04-12"), End: day("2025-04-14")},
			want: false,
		},
		{
			name: "check-in day equals previous checkout",
			a:    TimeWindow{Start: day("2025-04-12"), End: day("2025-04-14")},
			b:    TimeWindow{Start: day("2025-04-10"), End: day("2025-04-12")},
			want: false,
		},
		{
			name: "fully contained",
			a:    TimeWindow{Start: day("2025-04-01"), End: day("2025-04-30")},
			b:    TimeWindow{Start: day("2025-04-10"), End: day("2025-04-11")},
			want: true,
		},
		{
			name: "disjoint",
			a:    TimeWindow{Start: day("2025-04-01"), End: day("2025-04-03")},
			b:    TimeWindow{Start: day("2025-04-20"), End: day("2025-04-22")},
			want: false,
		},
		{
			name: "one hour of shared time",
			a:    TimeWindow{Start: day("2025-04-10"), End: day("2025-04-10").Add(2 * time.Hour)},
			b:    TimeWindow{Start: day("2025-04-10").Add(time.Hour), End: day("2025-04-10").Add(3 * time.Hour)},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
			// Overlap is symmetric
			if got := tt.b.Overlaps(tt.a); got != tt.want {
				t.Errorf("reverse Overlaps() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTimeWindowValidate(t *testing.T) {
	valid := TimeWindow{Start: day("2025-04-10"), End: day("2025-04-12")}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid window rejected: %v", err)
	}

	tests := []struct {
		name string
		w    TimeWindow
	}{
		{"zero start", TimeWindow{End: day("2025-04-12")}},
		{"zero end", TimeWindow{Start: day("2025-04-10")}},
		{"inverted", TimeWindow{Start: day("2025-04-12"), End: day("2025-04-10")}},
		{"zero length", TimeWindow{Start: day("2025-04-10"), End: day("2025-04-10")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.w.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestTimeWindowNights(t *testing.T) {
	tests := []struct {
		name string
		w    TimeWindow
		want int
	}{
		{"two nights", TimeWindow{Start: day("2025-04-10"), End: day("2025-04-12")}, 2},
		{"one night", TimeWindow{Start: day("2025-04-10"), End: day("2025-04-11")}, 1},
		{"sub-day window counts as one night", TimeWindow{Start: day("2025-04-10"), End: day("2025-04-10").Add(3 * time.Hour)}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.w.Nights(); got != tt.want {
				t.Errorf("Nights() = %d, want %d", got, tt.want)
			}
		})
	}
}
