package tenancy

import (
	"time"

	"github.com/rentier-erp/rentier-erp/internal/shared"
)

// Assignment is a lease of a unit to a client over a date interval. A
// nil End means the lease is open-ended. OwnerID and SharePercent name
// the primary collecting owner on newer contracts; both are optional
// and informational, the ownership ledger stays authoritative for
// splitting.
type Assignment struct {
	ID           int64      `json:"id"`
	UnitID       int64      `json:"unit_id"`
	ClientID     int64      `json:"client_id"`
	OwnerID      *int64     `json:"owner_id,omitempty"`
	SharePercent float64    `json:"share_percent,omitempty"`
	Start        time.Time  `json:"lease_start"`
	End          *time.Time `json:"lease_end,omitempty"`
	RentAmount   float64    `json:"rent_amount"`
	RasIR        bool       `json:"ras_ir"`
}

// EffectiveEnd returns the end date used in interval comparisons; open
// leases run to the sentinel max date.
func (a Assignment) EffectiveEnd() time.Time {
	if a.End == nil {
		return shared.DateMax
	}
	return *a.End
}

// Overlaps reports whether two assignments' intervals intersect. End
// dates are inclusive, so a lease ending the day another starts still
// collides. Symmetric in its arguments.
func Overlaps(a, b Assignment) bool {
	return !(a.EffectiveEnd().Before(b.Start) || a.Start.After(b.EffectiveEnd()))
}

// AssignmentWithNames is an assignment joined with unit and client
// labels for listings.
type AssignmentWithNames struct {
	Assignment
	UnitReference string `json:"unit_reference"`
	ClientName    string `json:"client_name"`
}

// Patch lists the fields of an update; nil fields are left unchanged.
// ClearEnd reopens the lease, and wins over End when both are set.
type Patch struct {
	UnitID       *int64     `json:"unit_id"`
	ClientID     *int64     `json:"client_id"`
	OwnerID      *int64     `json:"owner_id"`
	SharePercent *float64   `json:"share_percent"`
	Start        *time.Time `json:"lease_start"`
	End          *time.Time `json:"lease_end"`
	ClearEnd     bool       `json:"clear_end"`
	RentAmount   *float64   `json:"rent_amount"`
	RasIR        *bool      `json:"ras_ir"`
}
