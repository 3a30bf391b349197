package billing

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rentier-erp/rentier-erp/internal/platform/db"
	"github.com/rentier-erp/rentier-erp/internal/shared"
)

// AssignmentInfo is the slice of an assignment the splitter needs.
type AssignmentInfo struct {
	ID         int64
	UnitID     int64
	ClientID   int64
	RentAmount float64
}

type Repository interface {
	GetAssignment(ctx context.Context, id int64) (AssignmentInfo, error)
	ListOwnershipsForUnit(ctx context.Context, unitID int64) ([]OwnerShare, error)
	CreateReceipt(ctx context.Context, receipt Receipt, entries []ReceiptLogEntry) (Receipt, []ReceiptLogEntry, error)
	ListEntriesWithNames(ctx context.Context) ([]EntryWithNames, error)
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) GetAssignment(ctx context.Context, id int64) (AssignmentInfo, error) {
	var a AssignmentInfo
	err := r.pool.QueryRow(ctx,
		`SELECT id, unit_id, client_id, rent_amount FROM assignments WHERE id = $1`, id).
		Scan(&a.ID, &a.UnitID, &a.ClientID, &a.RentAmount)
	if errors.Is(err, pgx.ErrNoRows) {
		return AssignmentInfo{}, shared.NewNotFoundError("assignment", id)
	}
	if err != nil {
		return AssignmentInfo{}, err
	}
	return a, nil
}

func (r *repository) ListOwnershipsForUnit(ctx context.Context, unitID int64) ([]OwnerShare, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT o.id, o.owner_id, ow.name, o.share_percent, o.alternation
		 FROM ownerships o
		 JOIN owners ow ON ow.id = o.owner_id
		 WHERE o.unit_id = $1
		 ORDER BY o.id`, unitID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []OwnerShare
	for rows.Next() {
		var s OwnerShare
		if err := rows.Scan(&s.OwnershipID, &s.OwnerID, &s.OwnerName,
			&s.SharePercent, &s.Alternation); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// CreateReceipt assigns the next receipt number and writes the receipt
// with all its entries in one transaction, so numbering stays contiguous
// and a failure leaves no partial batch behind.
func (r *repository) CreateReceipt(ctx context.Context, receipt Receipt, entries []ReceiptLogEntry) (Receipt, []ReceiptLogEntry, error) {
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		var receiptNo int
		err := tx.QueryRow(ctx,
			`SELECT COALESCE(MAX(receipt_no), 0) + 1 FROM receipt_log WHERE assignment_id = $1`,
			receipt.AssignmentID).Scan(&receiptNo)
		if err != nil {
			return err
		}

		err = tx.QueryRow(ctx,
			`INSERT INTO receipts (assignment_id, base_label) VALUES ($1, $2) RETURNING id`,
			receipt.AssignmentID, receipt.BaseLabel).Scan(&receipt.ID)
		if err != nil {
			return err
		}

		for i := range entries {
			entries[i].ReceiptID = receipt.ID
			entries[i].ReceiptNo = receiptNo
			_, err := tx.Exec(ctx,
				`INSERT INTO receipt_log (uid, receipt_id, assignment_id, owner_id,
					client_id, receipt_no, period, issue_date, amount)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
				entries[i].UID, entries[i].ReceiptID, entries[i].AssignmentID,
				entries[i].OwnerID, entries[i].ClientID, entries[i].ReceiptNo,
				entries[i].Period, entries[i].IssueDate, entries[i].Amount)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return Receipt{}, nil, err
	}
	return receipt, entries, nil
}

func (r *repository) ListEntriesWithNames(ctx context.Context) ([]EntryWithNames, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT e.uid, e.receipt_id, e.assignment_id, e.owner_id, e.client_id,
			e.receipt_no, e.period, e.issue_date, e.amount,
			ow.name, c.name, u.reference
		 FROM receipt_log e
		 JOIN owners ow ON ow.id = e.owner_id
		 JOIN clients c ON c.id = e.client_id
		 JOIN assignments a ON a.id = e.assignment_id
		 JOIN units u ON u.id = a.unit_id
		 ORDER BY e.receipt_no, e.uid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []EntryWithNames
	for rows.Next() {
		var e EntryWithNames
		if err := rows.Scan(&e.UID, &e.ReceiptID, &e.AssignmentID, &e.OwnerID,
			&e.ClientID, &e.ReceiptNo, &e.Period, &e.IssueDate, &e.Amount,
			&e.OwnerName, &e.ClientName, &e.UnitReference); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
