package taxes

// Bracket is one progressive income-tax band. A nil Max means the band
// is unbounded above. Deduction is the fixed amount subtracted after
// applying the rate, the usual shortcut for progressive scales.
type Bracket struct {
	Min       float64
	Max       *float64
	Rate      float64
	Deduction float64
}

// Threshold is one withholding-at-source band over gross revenue.
type Threshold struct {
	Min  float64
	Max  *float64
	Rate float64
}

// Config carries the full tax scale. It is built once and passed by
// value; computations never mutate it and there is no package-level
// default in use.
type Config struct {
	AbatementFraction        float64
	IRBrackets               []Bracket
	RASThresholds            []Threshold
	FamilyDeductionPerPerson float64
	FamilyDeductionMax       float64
}

func f(v float64) *float64 { return &v }

// DefaultConfig returns the statutory scale: 40% rental abatement, the
// six IR brackets and the three RAS thresholds.
func DefaultConfig() Config {
	return Config{
		AbatementFraction: 0.40,
		IRBrackets: []Bracket{
			{Min: 0, Max: f(40000), Rate: 0, Deduction: 0},
			{Min: 40001, Max: f(60000), Rate: 0.10, Deduction: 4000},
			{Min: 60001, Max: f(80000), Rate: 0.20, Deduction: 10000},
			{Min: 80001, Max: f(100000), Rate: 0.30, Deduction: 18000},
			{Min: 100001, Max: f(180000), Rate: 0.34, Deduction: 22000},
			{Min: 180001, Max: nil, Rate: 0.37, Deduction: 27400},
		},
		RASThresholds: []Threshold{
			{Min: 0, Max: f(40000), Rate: 0},
			{Min: 40001, Max: f(119999), Rate: 0.10},
			{Min: 120000, Max: nil, Rate: 0.15},
		},
		FamilyDeductionPerPerson: 500,
		FamilyDeductionMax:       3000,
	}
}
