package taxes

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rentier-erp/rentier-erp/internal/shared"
)

// OwnerInfo is the slice of an owner the calculator needs.
type OwnerInfo struct {
	ID          int64
	Name        string
	FamilyCount int
}

type Repository interface {
	GetOwner(ctx context.Context, id int64) (OwnerInfo, error)
	ListOwners(ctx context.Context) ([]OwnerInfo, error)
	GrossForOwnerYear(ctx context.Context, ownerID int64, year int) (float64, error)
	ReceivedForOwnerYear(ctx context.Context, ownerID int64, year int) (float64, error)
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) GetOwner(ctx context.Context, id int64) (OwnerInfo, error) {
	var o OwnerInfo
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, family_count FROM owners WHERE id = $1`, id).
		Scan(&o.ID, &o.Name, &o.FamilyCount)
	if errors.Is(err, pgx.ErrNoRows) {
		return OwnerInfo{}, shared.NewNotFoundError("owner", id)
	}
	if err != nil {
		return OwnerInfo{}, err
	}
	return o, nil
}

func (r *repository) ListOwners(ctx context.Context) ([]OwnerInfo, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, family_count FROM owners ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []OwnerInfo
	for rows.Next() {
		var o OwnerInfo
		if err := rows.Scan(&o.ID, &o.Name, &o.FamilyCount); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *repository) GrossForOwnerYear(ctx context.Context, ownerID int64, year int) (float64, error) {
	var sum float64
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0)
		 FROM receipt_log
		 WHERE owner_id = $1 AND EXTRACT(YEAR FROM period) = $2`,
		ownerID, year).Scan(&sum)
	return sum, err
}

func (r *repository) ReceivedForOwnerYear(ctx context.Context, ownerID int64, year int) (float64, error) {
	var sum float64
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(p.amount_received), 0)
		 FROM payments p
		 JOIN receipt_log e ON e.uid = p.entry_uid
		 WHERE e.owner_id = $1 AND EXTRACT(YEAR FROM e.period) = $2`,
		ownerID, year).Scan(&sum)
	return sum, err
}
