package taxes

import (
	"math"

	"github.com/rentier-erp/rentier-erp/internal/shared"
)

// Result carries every intermediate of the annual computation so
// reports and the API can show the full derivation, not just the due
// amount.
type Result struct {
	OwnerID     int64  `json:"owner_id"`
	OwnerName   string `json:"owner_name"`
	Year        int    `json:"year"`
	FamilyCount int    `json:"family_count"`

	Gross   float64 `json:"gross"`
	Taxable float64 `json:"taxable"`

	BracketMin float64  `json:"bracket_min"`
	BracketMax *float64 `json:"bracket_max"`
	Rate       float64  `json:"rate"`
	Deduction  float64  `json:"deduction"`

	InitialTax       float64 `json:"initial_tax"`
	FamilyDeduction  float64 `json:"family_deduction"`
	AfterFamily      float64 `json:"after_family"`
	Received         float64 `json:"received"`
	Withheld         float64 `json:"withheld"`
	AfterWithholding float64 `json:"after_withholding"`
	FinalTax         float64 `json:"final_tax"`

	RASRate        float64 `json:"ras_rate"`
	TheoreticalRAS float64 `json:"theoretical_ras"`
}

// matchBracket walks the ascending scale and returns the first band the
// amount fits under; the last band's nil Max catches everything above.
func matchBracket(brackets []Bracket, amount float64) Bracket {
	for _, b := range brackets {
		if b.Max == nil || amount <= *b.Max {
			return b
		}
	}
	if len(brackets) == 0 {
		return Bracket{}
	}
	return brackets[len(brackets)-1]
}

func matchThreshold(thresholds []Threshold, amount float64) Threshold {
	for _, t := range thresholds {
		if t.Max == nil || amount <= *t.Max {
			return t
		}
	}
	if len(thresholds) == 0 {
		return Threshold{}
	}
	return thresholds[len(thresholds)-1]
}

// computeFigures runs the annual pipeline over already-loaded figures:
// abatement, bracket, family deduction, withholding reconciliation,
// then a ceil and a floor at zero. Intermediates keep full float
// precision; only the final due amount is rounded, upward.
func computeFigures(cfg Config, gross, received float64, familyCount int) Result {
	taxable := gross * (1 - cfg.AbatementFraction)
	bracket := matchBracket(cfg.IRBrackets, taxable)
	initialTax := taxable*bracket.Rate - bracket.Deduction

	familyDeduction := math.Min(cfg.FamilyDeductionPerPerson*float64(familyCount), cfg.FamilyDeductionMax)
	afterFamily := initialTax - familyDeduction

	withheld := gross - received
	afterWithholding := afterFamily - withheld
	finalTax := math.Max(0, shared.CeilWhole(afterWithholding))

	ras := matchThreshold(cfg.RASThresholds, gross)

	return Result{
		FamilyCount:      familyCount,
		Gross:            gross,
		Taxable:          taxable,
		BracketMin:       bracket.Min,
		BracketMax:       bracket.Max,
		Rate:             bracket.Rate,
		Deduction:        bracket.Deduction,
		InitialTax:       initialTax,
		FamilyDeduction:  familyDeduction,
		AfterFamily:      afterFamily,
		Received:         received,
		Withheld:         withheld,
		AfterWithholding: afterWithholding,
		FinalTax:         finalTax,
		RASRate:          ras.Rate,
		TheoreticalRAS:   shared.Round2(gross * ras.Rate),
	}
}
