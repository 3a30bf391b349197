package taxes

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComputeFiguresBelowFirstBracket(t *testing.T) {
	r := computeFigures(DefaultConfig(), 10000, 0, 0)

	require.Equal(t, 6000.0, r.Taxable)
	require.Equal(t, 0.0, r.Rate)
	require.Equal(t, 0.0, r.InitialTax)
	require.Equal(t, 10000.0, r.Withheld)
	require.Equal(t, 0.0, r.FinalTax)
}

func TestComputeFiguresWithholdingAbsorbsTax(t *testing.T) {
	// gross 100000, family of 2, 90000 actually received: the 10000
	// withheld exceeds the 1000 owed after the family deduction.
	r := computeFigures(DefaultConfig(), 100000, 90000, 2)

	require.Equal(t, 60000.0, r.Taxable)
	require.Equal(t, 0.10, r.Rate)
	require.Equal(t, 2000.0, r.InitialTax)
	require.Equal(t, 1000.0, r.FamilyDeduction)
	require.Equal(t, 1000.0, r.AfterFamily)
	require.Equal(t, 10000.0, r.Withheld)
	require.Equal(t, -9000.0, r.AfterWithholding)
	require.Equal(t, 0.0, r.FinalTax)
}

func TestComputeFiguresFullyReceived(t *testing.T) {
	r := computeFigures(DefaultConfig(), 100000, 100000, 0)

	require.Equal(t, 0.0, r.Withheld)
	require.Equal(t, 2000.0, r.FinalTax)
}

func TestComputeFiguresCeilsUpward(t *testing.T) {
	// taxable 60000.6 lands in the 20% bracket; 2000.12 owed rounds up.
	r := computeFigures(DefaultConfig(), 100001, 100001, 0)

	require.Equal(t, 60001.0, r.BracketMin)
	require.Equal(t, 2001.0, r.FinalTax)
}

func TestComputeFiguresFamilyDeductionCapped(t *testing.T) {
	r := computeFigures(DefaultConfig(), 100000, 100000, 10)

	require.Equal(t, 3000.0, r.FamilyDeduction)
	require.Equal(t, 0.0, r.AfterFamily-(r.InitialTax-3000))
}

func TestComputeFiguresTopBracketUnbounded(t *testing.T) {
	r := computeFigures(DefaultConfig(), 1000000, 1000000, 0)

	require.Equal(t, 180001.0, r.BracketMin)
	require.Nil(t, r.BracketMax)
	require.Equal(t, 0.37, r.Rate)
}

func TestComputeFiguresRASThresholds(t *testing.T) {
	low := computeFigures(DefaultConfig(), 30000, 30000, 0)
	require.Equal(t, 0.0, low.RASRate)
	require.Equal(t, 0.0, low.TheoreticalRAS)

	mid := computeFigures(DefaultConfig(), 100000, 100000, 0)
	require.Equal(t, 0.10, mid.RASRate)
	require.Equal(t, 10000.0, mid.TheoreticalRAS)

	high := computeFigures(DefaultConfig(), 200000, 200000, 0)
	require.Equal(t, 0.15, high.RASRate)
	require.Equal(t, 30000.0, high.TheoreticalRAS)
}

func TestComputeFiguresMonotoneInGross(t *testing.T) {
	cfg := DefaultConfig()
	prev := -1.0
	for gross := 0.0; gross <= 400000; gross += 5000 {
		r := computeFigures(cfg, gross, gross, 0)
		require.GreaterOrEqual(t, r.FinalTax, prev, "gross %v", gross)
		require.GreaterOrEqual(t, r.FinalTax, 0.0)
		prev = r.FinalTax
	}
}

func TestComputeFiguresBespokeScale(t *testing.T) {
	cfg := Config{
		AbatementFraction: 0,
		IRBrackets:        []Bracket{{Min: 0, Max: nil, Rate: 0.10, Deduction: 0}},
		RASThresholds:     []Threshold{{Min: 0, Max: nil, Rate: 0}},
	}

	r := computeFigures(cfg, 1000, 1000, 5)
	require.Equal(t, 1000.0, r.Taxable)
	require.Equal(t, 100.0, r.InitialTax)
	require.Equal(t, 0.0, r.FamilyDeduction) // per-person amount unset
	require.Equal(t, 100.0, r.FinalTax)
}
