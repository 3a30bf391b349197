package tenancy

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rentier-erp/rentier-erp/internal/platform/db"
	"github.com/rentier-erp/rentier-erp/internal/shared"
)

type Repository interface {
	List(ctx context.Context) ([]Assignment, error)
	ListForUnit(ctx context.Context, unitID int64) ([]Assignment, error)
	ListWithNames(ctx context.Context) ([]AssignmentWithNames, error)
	Get(ctx context.Context, id int64) (Assignment, error)
	Create(ctx context.Context, a Assignment) (Assignment, error)
	Update(ctx context.Context, id int64, merged Assignment, patch Patch) error
	Delete(ctx context.Context, id int64) error
	UnitExists(ctx context.Context, id int64) (bool, error)
	ClientExists(ctx context.Context, id int64) (bool, error)
	OwnerExists(ctx context.Context, id int64) (bool, error)
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const selectColumns = `id, unit_id, client_id, owner_id, share_percent,
	lease_start, lease_end, rent_amount, ras_ir`

func scanAssignment(row pgx.Row) (Assignment, error) {
	var a Assignment
	err := row.Scan(&a.ID, &a.UnitID, &a.ClientID, &a.OwnerID, &a.SharePercent,
		&a.Start, &a.End, &a.RentAmount, &a.RasIR)
	return a, err
}

func scanRows(rows pgx.Rows) ([]Assignment, error) {
	defer rows.Close()
	var out []Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *repository) List(ctx context.Context) ([]Assignment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+selectColumns+` FROM assignments ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return scanRows(rows)
}

func (r *repository) ListForUnit(ctx context.Context, unitID int64) ([]Assignment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+selectColumns+` FROM assignments WHERE unit_id = $1 ORDER BY id`, unitID)
	if err != nil {
		return nil, err
	}
	return scanRows(rows)
}

func (r *repository) ListWithNames(ctx context.Context) ([]AssignmentWithNames, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT a.id, a.unit_id, a.client_id, a.owner_id, a.share_percent,
			a.lease_start, a.lease_end, a.rent_amount, a.ras_ir,
			u.reference, c.name
		 FROM assignments a
		 JOIN units u ON u.id = a.unit_id
		 JOIN clients c ON c.id = a.client_id
		 ORDER BY a.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AssignmentWithNames
	for rows.Next() {
		var a AssignmentWithNames
		if err := rows.Scan(&a.ID, &a.UnitID, &a.ClientID, &a.OwnerID,
			&a.SharePercent, &a.Start, &a.End, &a.RentAmount, &a.RasIR,
			&a.UnitReference, &a.ClientName); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Assignment, error) {
	a, err := scanAssignment(r.pool.QueryRow(ctx,
		`SELECT `+selectColumns+` FROM assignments WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Assignment{}, shared.NewNotFoundError("assignment", id)
	}
	if err != nil {
		return Assignment{}, err
	}
	return a, nil
}

func unitRowsTx(ctx context.Context, tx pgx.Tx, unitID int64) ([]Assignment, error) {
	rows, err := tx.Query(ctx,
		`SELECT `+selectColumns+` FROM assignments WHERE unit_id = $1 ORDER BY id`, unitID)
	if err != nil {
		return nil, err
	}
	return scanRows(rows)
}

func checkOverlap(existing []Assignment, candidate Assignment, excludeID int64) error {
	for _, other := range existing {
		if excludeID != 0 && other.ID == excludeID {
			continue
		}
		if Overlaps(candidate, other) {
			return shared.NewValidationError("lease_start",
				"interval overlaps an existing assignment on this unit")
		}
	}
	return nil
}

// Create re-runs the overlap check inside the transaction, so two
// concurrent inserts for the same unit cannot both pass on a stale read.
func (r *repository) Create(ctx context.Context, a Assignment) (Assignment, error) {
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		existing, err := unitRowsTx(ctx, tx, a.UnitID)
		if err != nil {
			return err
		}
		if err := checkOverlap(existing, a, 0); err != nil {
			return err
		}
		return tx.QueryRow(ctx,
			`INSERT INTO assignments (unit_id, client_id, owner_id, share_percent,
				lease_start, lease_end, rent_amount, ras_ir)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			 RETURNING id`,
			a.UnitID, a.ClientID, a.OwnerID, a.SharePercent,
			a.Start, a.End, a.RentAmount, a.RasIR).
			Scan(&a.ID)
	})
	if err != nil {
		return Assignment{}, err
	}
	return a, nil
}

func (r *repository) Update(ctx context.Context, id int64, merged Assignment, patch Patch) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		existing, err := unitRowsTx(ctx, tx, merged.UnitID)
		if err != nil {
			return err
		}
		if err := checkOverlap(existing, merged, id); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx,
			`UPDATE assignments SET
				unit_id = COALESCE($1, unit_id),
				client_id = COALESCE($2, client_id),
				owner_id = COALESCE($3, owner_id),
				share_percent = COALESCE($4, share_percent),
				lease_start = COALESCE($5, lease_start),
				lease_end = CASE WHEN $6 THEN NULL ELSE COALESCE($7, lease_end) END,
				rent_amount = COALESCE($8, rent_amount),
				ras_ir = COALESCE($9, ras_ir)
			 WHERE id = $10`,
			patch.UnitID, patch.ClientID, patch.OwnerID, patch.SharePercent,
			patch.Start, patch.ClearEnd, patch.End, patch.RentAmount, patch.RasIR, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return shared.NewNotFoundError("assignment", id)
		}
		return nil
	})
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM assignments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.NewNotFoundError("assignment", id)
	}
	return nil
}

func (r *repository) UnitExists(ctx context.Context, id int64) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM units WHERE id = $1)`, id)
}

func (r *repository) ClientExists(ctx context.Context, id int64) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM clients WHERE id = $1)`, id)
}

func (r *repository) OwnerExists(ctx context.Context, id int64) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM owners WHERE id = $1)`, id)
}

func (r *repository) exists(ctx context.Context, query string, id int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, query, id).Scan(&exists)
	return exists, err
}
