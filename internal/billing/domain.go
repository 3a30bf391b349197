package billing

import (
	"time"

	"github.com/google/uuid"

	"github.com/rentier-erp/rentier-erp/internal/ownership"
	"github.com/rentier-erp/rentier-erp/internal/shared"
)

// Receipt heads a batch of ledger entries issued together for one
// assignment and period.
type Receipt struct {
	ID           int64  `json:"id"`
	AssignmentID int64  `json:"assignment_id"`
	BaseLabel    string `json:"base_label"`
}

// ReceiptLogEntry is one owner's share of a collected rent. Entries are
// immutable once written; corrections are new receipts.
type ReceiptLogEntry struct {
	UID          uuid.UUID `json:"uid"`
	ReceiptID    int64     `json:"receipt_id"`
	AssignmentID int64     `json:"assignment_id"`
	OwnerID      int64     `json:"owner_id"`
	ClientID     int64     `json:"client_id"`
	ReceiptNo    int       `json:"receipt_no"`
	Period       time.Time `json:"period"`
	IssueDate    time.Time `json:"issue_date"`
	Amount       float64   `json:"amount"`
}

// EntryWithNames is a ledger entry joined with its labels for listings.
type EntryWithNames struct {
	ReceiptLogEntry
	OwnerName     string `json:"owner_name"`
	ClientName    string `json:"client_name"`
	UnitReference string `json:"unit_reference"`
}

// OwnerShare is an ownership row projected for splitting, in ownership
// id order.
type OwnerShare struct {
	OwnershipID  int64
	OwnerID      int64
	OwnerName    string
	SharePercent float64
	Alternation  ownership.Alternation
}

// SplitEntry is one line of a computed split.
type SplitEntry struct {
	OwnerID      int64   `json:"owner_id"`
	OwnerName    string  `json:"owner_name"`
	SharePercent float64 `json:"share_percent"`
	Amount       float64 `json:"amount"`
}

// applicableShares keeps the shares that collect in a period of the
// given parity: non-alternating rows always, alternating rows only in
// their months.
func applicableShares(rows []OwnerShare, parity shared.Parity) []OwnerShare {
	var out []OwnerShare
	for _, r := range rows {
		o := ownership.Ownership{Alternation: r.Alternation}
		if o.AppliesTo(parity) {
			out = append(out, r)
		}
	}
	return out
}

// splitAmounts allocates total across shares so the emitted amounts sum
// to round2(total) exactly. Each line gets round2(total*share/100); the
// rounding remainder, positive or negative, lands wholly on the first
// share in ownership id order.
func splitAmounts(total float64, shares []OwnerShare) []SplitEntry {
	out := make([]SplitEntry, 0, len(shares))
	var allocated float64
	for _, s := range shares {
		amount := shared.Round2(total * s.SharePercent / 100)
		allocated += amount
		out = append(out, SplitEntry{
			OwnerID:      s.OwnerID,
			OwnerName:    s.OwnerName,
			SharePercent: s.SharePercent,
			Amount:       amount,
		})
	}
	remainder := shared.Round2(shared.Round2(total) - shared.Round2(allocated))
	if remainder != 0 {
		out[0].Amount = shared.Round2(out[0].Amount + remainder)
	}
	return out
}
