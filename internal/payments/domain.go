package payments

import (
	"time"

	"github.com/google/uuid"
)

// Payment records money actually received against one receipt ledger
// entry. Several partial payments per entry are allowed, and nothing
// caps the sum at the nominal amount; over- and underpayment are both
// facts to record, not errors.
type Payment struct {
	ID             int64     `json:"id"`
	EntryUID       uuid.UUID `json:"entry_uid"`
	AmountReceived float64   `json:"amount_received"`
	ReceivedAt     time.Time `json:"received_at"`
	Note           string    `json:"note"`
}
