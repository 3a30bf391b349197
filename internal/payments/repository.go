package payments

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	EntryExists(ctx context.Context, uid uuid.UUID) (bool, error)
	Create(ctx context.Context, p Payment) (Payment, error)
	SumReceivedForOwnerYear(ctx context.Context, ownerID int64, year int) (float64, error)
	ListForOwnerYear(ctx context.Context, ownerID int64, year int) ([]Payment, error)
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) EntryExists(ctx context.Context, uid uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM receipt_log WHERE uid = $1)`, uid).Scan(&exists)
	return exists, err
}

func (r *repository) Create(ctx context.Context, p Payment) (Payment, error) {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO payments (entry_uid, amount_received, received_at, note)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		p.EntryUID, p.AmountReceived, p.ReceivedAt, p.Note).Scan(&p.ID)
	if err != nil {
		return Payment{}, err
	}
	return p, nil
}

// SumReceivedForOwnerYear attributes payments to the owner and year of
// the ledger entry they settle, not the date the money arrived.
func (r *repository) SumReceivedForOwnerYear(ctx context.Context, ownerID int64, year int) (float64, error) {
	var sum float64
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(p.amount_received), 0)
		 FROM payments p
		 JOIN receipt_log e ON e.uid = p.entry_uid
		 WHERE e.owner_id = $1 AND EXTRACT(YEAR FROM e.period) = $2`,
		ownerID, year).Scan(&sum)
	return sum, err
}

func (r *repository) ListForOwnerYear(ctx context.Context, ownerID int64, year int) ([]Payment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT p.id, p.entry_uid, p.amount_received, p.received_at, p.note
		 FROM payments p
		 JOIN receipt_log e ON e.uid = p.entry_uid
		 WHERE e.owner_id = $1 AND EXTRACT(YEAR FROM e.period) = $2
		 ORDER BY p.id`,
		ownerID, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Payment
	for rows.Next() {
		var p Payment
		if err := rows.Scan(&p.ID, &p.EntryUID, &p.AmountReceived, &p.ReceivedAt, &p.Note); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
