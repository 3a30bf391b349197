package reports

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	ReceiptEntries(ctx context.Context, year int, ownerID int64) ([]EntryRow, error)
	AssignmentGross(ctx context.Context, year int, ownerID int64) ([]AssignmentGrossRow, error)
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

// ReceiptEntries loads the year's ledger with labels and per-entry
// received sums. ownerID 0 means all owners.
func (r *repository) ReceiptEntries(ctx context.Context, year int, ownerID int64) ([]EntryRow, error) {
	query := `SELECT e.uid, e.receipt_id, e.assignment_id, u.reference,
			e.owner_id, ow.name, c.name, e.receipt_no, e.period, e.issue_date,
			e.amount, COALESCE(p.received, 0)
		FROM receipt_log e
		JOIN owners ow ON ow.id = e.owner_id
		JOIN clients c ON c.id = e.client_id
		JOIN assignments a ON a.id = e.assignment_id
		JOIN units u ON u.id = a.unit_id
		LEFT JOIN (
			SELECT entry_uid, SUM(amount_received) AS received
			FROM payments GROUP BY entry_uid
		) p ON p.entry_uid = e.uid
		WHERE EXTRACT(YEAR FROM e.period) = $1`
	args := []any{year}
	if ownerID != 0 {
		query += ` AND e.owner_id = $2`
		args = append(args, ownerID)
	}
	query += ` ORDER BY e.receipt_no, e.uid`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []EntryRow
	for rows.Next() {
		var e EntryRow
		if err := rows.Scan(&e.UID, &e.ReceiptID, &e.AssignmentID, &e.UnitReference,
			&e.OwnerID, &e.OwnerName, &e.ClientName, &e.ReceiptNo, &e.Period,
			&e.IssueDate, &e.Amount, &e.AmountReceived); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// AssignmentGross sums the year's ledger per assignment. ownerID 0
// means all owners.
func (r *repository) AssignmentGross(ctx context.Context, year int, ownerID int64) ([]AssignmentGrossRow, error) {
	query := `SELECT e.owner_id, ow.name, u.reference, u.city, c.name, c.legal_id,
			e.assignment_id, SUM(e.amount)
		FROM receipt_log e
		JOIN owners ow ON ow.id = e.owner_id
		JOIN clients c ON c.id = e.client_id
		JOIN assignments a ON a.id = e.assignment_id
		JOIN units u ON u.id = a.unit_id
		WHERE EXTRACT(YEAR FROM e.period) = $1`
	args := []any{year}
	if ownerID != 0 {
		query += ` AND e.owner_id = $2`
		args = append(args, ownerID)
	}
	query += ` GROUP BY e.owner_id, ow.name, u.reference, u.city, c.name, c.legal_id, e.assignment_id
		ORDER BY e.owner_id, e.assignment_id`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AssignmentGrossRow
	for rows.Next() {
		var g AssignmentGrossRow
		if err := rows.Scan(&g.OwnerID, &g.OwnerName, &g.UnitReference, &g.UnitCity,
			&g.ClientName, &g.ClientLegalID, &g.AssignmentID, &g.Gross); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}
