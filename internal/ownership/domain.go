package ownership

import (
	"fmt"

	"github.com/rentier-erp/rentier-erp/internal/shared"
)

// Alternation controls which billing periods an ownership collects in.
// "none" collects every month; "odd"/"even" only in months of that parity.
type Alternation string

const (
	AltNone Alternation = "none"
	AltOdd  Alternation = "odd"
	AltEven Alternation = "even"
)

func ValidAlternation(a Alternation) bool {
	return a == AltNone || a == AltOdd || a == AltEven
}

// Ownership is one owner's share of one unit.
type Ownership struct {
	ID           int64       `json:"id"`
	UnitID       int64       `json:"unit_id"`
	OwnerID      int64       `json:"owner_id"`
	SharePercent float64     `json:"share_percent"`
	Alternation  Alternation `json:"alternation"`
}

// AppliesTo reports whether this ownership collects rent in a period of
// the given parity.
func (o Ownership) AppliesTo(p shared.Parity) bool {
	switch o.Alternation {
	case AltOdd:
		return p == shared.ParityOdd
	case AltEven:
		return p == shared.ParityEven
	default:
		return true
	}
}

// OwnershipWithNames is an ownership row joined with its owner's name and
// unit reference for listings.
type OwnershipWithNames struct {
	Ownership
	OwnerName     string `json:"owner_name"`
	UnitReference string `json:"unit_reference"`
}

// Patch lists the fields of an update; nil fields are left unchanged.
// The unit is fixed at creation: moving a share between units is a
// delete plus a create, so both units get a full bucket check.
type Patch struct {
	OwnerID      *int64       `json:"owner_id"`
	SharePercent *float64     `json:"share_percent"`
	Alternation  *Alternation `json:"alternation"`
}

// shareEpsilon absorbs float drift when summing percentages; 33.33+66.67
// must count as exactly 100.
const shareEpsilon = 1e-9

func bucketTotals(rows []Ownership) (odd, even float64) {
	for _, r := range rows {
		switch r.Alternation {
		case AltOdd:
			odd += r.SharePercent
		case AltEven:
			even += r.SharePercent
		default:
			odd += r.SharePercent
			even += r.SharePercent
		}
	}
	return odd, even
}

// ValidateBuckets checks the period-bucket invariant over a unit's rows:
// the odd-month bucket (non-alternating plus odd shares) and the
// even-month bucket (non-alternating plus even shares) must each total
// more than 0 and at most 100 percent.
func ValidateBuckets(rows []Ownership) error {
	odd, even := bucketTotals(rows)
	if odd <= shareEpsilon {
		return shared.NewValidationError("share_percent", "odd-month bucket has no coverage")
	}
	if odd > 100+shareEpsilon {
		return shared.NewValidationError("share_percent",
			fmt.Sprintf("odd-month bucket totals %.2f%%, over 100%%", odd))
	}
	if even <= shareEpsilon {
		return shared.NewValidationError("share_percent", "even-month bucket has no coverage")
	}
	if even > 100+shareEpsilon {
		return shared.NewValidationError("share_percent",
			fmt.Sprintf("even-month bucket totals %.2f%%, over 100%%", even))
	}
	return nil
}

// ValidateShareAddition runs the bucket check as if candidate were added
// to existing. A non-zero excludeID drops that row first, so updates can
// check themselves against their unit without double counting.
func ValidateShareAddition(existing []Ownership, candidate Ownership, excludeID int64) error {
	rows := make([]Ownership, 0, len(existing)+1)
	for _, r := range existing {
		if excludeID != 0 && r.ID == excludeID {
			continue
		}
		rows = append(rows, r)
	}
	rows = append(rows, candidate)
	return ValidateBuckets(rows)
}
