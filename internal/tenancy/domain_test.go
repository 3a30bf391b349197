package tenancy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name    string
		a, b    Assignment
		overlap bool
	}{
		{
			name:    "disjoint intervals",
			a:       Assignment{Start: date(2026, 1, 1), End: datePtr(2026, 6, 30)},
			b:       Assignment{Start: date(2026, 7, 1), End: datePtr(2026, 12, 31)},
			overlap: false,
		},
		{
			name:    "partial overlap",
			a:       Assignment{Start: date(2026, 1, 1), End: datePtr(2026, 6, 30)},
			b:       Assignment{Start: date(2026, 5, 1), End: datePtr(2026, 8, 1)},
			overlap: true,
		},
		{
			name:    "touching end dates collide",
			a:       Assignment{Start: date(2026, 1, 1), End: datePtr(2026, 6, 30)},
			b:       Assignment{Start: date(2026, 6, 30), End: datePtr(2026, 12, 31)},
			overlap: true,
		},
		{
			name:    "containment",
			a:       Assignment{Start: date(2026, 1, 1), End: datePtr(2026, 12, 31)},
			b:       Assignment{Start: date(2026, 3, 1), End: datePtr(2026, 4, 1)},
			overlap: true,
		},
		{
			name:    "open-ended lease blocks everything after its start",
			a:       Assignment{Start: date(2026, 1, 1)},
			b:       Assignment{Start: date(2030, 1, 1), End: datePtr(2030, 12, 31)},
			overlap: true,
		},
		{
			name:    "open-ended lease does not reach backwards",
			a:       Assignment{Start: date(2026, 1, 1)},
			b:       Assignment{Start: date(2020, 1, 1), End: datePtr(2025, 12, 31)},
			overlap: false,
		},
		{
			name:    "two open-ended leases always collide",
			a:       Assignment{Start: date(2026, 1, 1)},
			b:       Assignment{Start: date(2040, 1, 1)},
			overlap: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.overlap, Overlaps(tc.a, tc.b))
			// symmetric
			require.Equal(t, tc.overlap, Overlaps(tc.b, tc.a))
		})
	}
}

func TestEffectiveEnd(t *testing.T) {
	open := Assignment{Start: date(2026, 1, 1)}
	require.Equal(t, 9999, open.EffectiveEnd().Year())

	closed := Assignment{Start: date(2026, 1, 1), End: datePtr(2026, 6, 30)}
	require.Equal(t, date(2026, 6, 30), closed.EffectiveEnd())
}
