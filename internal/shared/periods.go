package shared

import (
	"math"
	"time"
)

// Parity classifies a billing month as odd or even. Ownerships with a
// matching alternation only collect rent in periods of their parity.
type Parity string

const (
	ParityOdd  Parity = "odd"
	ParityEven Parity = "even"
)

// DateMax is the sentinel used for open-ended assignments; an absent end
// date behaves as "forever" in interval comparisons.
var DateMax = time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)

// PeriodParity returns the parity of a billing period's calendar month.
func PeriodParity(period time.Time) Parity {
	if int(period.Month())%2 == 1 {
		return ParityOdd
	}
	return ParityEven
}

// YearOf returns the calendar year a billing period belongs to.
func YearOf(period time.Time) int {
	return period.Year()
}

// Round2 rounds a monetary amount half away from zero to two decimals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// CeilWhole rounds a tax figure up to the next whole unit. Fractions are
// never rounded in the taxpayer's favour.
func CeilWhole(v float64) float64 {
	return math.Ceil(v)
}
