package reports

import (
	"time"

	"github.com/google/uuid"
)

// Report is a rendered tabular report: rows are aligned to Headers and
// already formatted as strings, ready for CSV or display.
type Report struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// Kind names one of the report shapes.
type Kind string

const (
	ReceiptsDetailed  Kind = "receipts_detailed"
	ReceiptsByOwner   Kind = "receipts_by_owner"
	ReceiptsMinimal   Kind = "receipts_minimal"
	TaxesDetailed     Kind = "taxes_detailed"
	TaxesByAssignment Kind = "taxes_by_assignment"
	TaxesMinimal      Kind = "taxes_minimal"
)

// Kinds lists every report shape, in warmup order.
var Kinds = []Kind{
	ReceiptsDetailed, ReceiptsByOwner, ReceiptsMinimal,
	TaxesDetailed, TaxesByAssignment, TaxesMinimal,
}

func ValidKind(k Kind) bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// EntryRow is a receipt ledger entry joined with its labels and the
// payments recorded against it.
type EntryRow struct {
	UID            uuid.UUID
	ReceiptID      int64
	AssignmentID   int64
	UnitReference  string
	OwnerID        int64
	OwnerName      string
	ClientName     string
	ReceiptNo      int
	Period         time.Time
	IssueDate      time.Time
	Amount         float64
	AmountReceived float64
}

// AssignmentGrossRow is one owner's collected total on one assignment,
// used by the by-assignment tax report.
type AssignmentGrossRow struct {
	OwnerID       int64
	OwnerName     string
	UnitReference string
	UnitCity      string
	ClientName    string
	ClientLegalID string
	AssignmentID  int64
	Gross         float64
}
