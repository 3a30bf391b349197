package ownership

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rentier-erp/rentier-erp/internal/platform/db"
	"github.com/rentier-erp/rentier-erp/internal/shared"
)

type Repository interface {
	List(ctx context.Context) ([]Ownership, error)
	ListForUnit(ctx context.Context, unitID int64) ([]Ownership, error)
	ListWithNames(ctx context.Context, unitID int64) ([]OwnershipWithNames, error)
	Get(ctx context.Context, id int64) (Ownership, error)
	Create(ctx context.Context, o Ownership) (Ownership, error)
	Update(ctx context.Context, id int64, merged Ownership, patch Patch) error
	Delete(ctx context.Context, id int64) error
	OwnerExists(ctx context.Context, id int64) (bool, error)
	UnitExists(ctx context.Context, id int64) (bool, error)
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const selectColumns = `id, unit_id, owner_id, share_percent, alternation`

func scanRows(rows pgx.Rows) ([]Ownership, error) {
	defer rows.Close()
	var out []Ownership
	for rows.Next() {
		var o Ownership
		if err := rows.Scan(&o.ID, &o.UnitID, &o.OwnerID, &o.SharePercent, &o.Alternation); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *repository) List(ctx context.Context) ([]Ownership, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+selectColumns+` FROM ownerships ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return scanRows(rows)
}

func (r *repository) ListForUnit(ctx context.Context, unitID int64) ([]Ownership, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+selectColumns+` FROM ownerships WHERE unit_id = $1 ORDER BY id`, unitID)
	if err != nil {
		return nil, err
	}
	return scanRows(rows)
}

func (r *repository) ListWithNames(ctx context.Context, unitID int64) ([]OwnershipWithNames, error) {
	query := `SELECT o.id, o.unit_id, o.owner_id, o.share_percent, o.alternation,
			ow.name, u.reference
		FROM ownerships o
		JOIN owners ow ON ow.id = o.owner_id
		JOIN units u ON u.id = o.unit_id`
	args := []any{}
	if unitID != 0 {
		query += ` WHERE o.unit_id = $1`
		args = append(args, unitID)
	}
	query += ` ORDER BY o.id`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []OwnershipWithNames
	for rows.Next() {
		var o OwnershipWithNames
		if err := rows.Scan(&o.ID, &o.UnitID, &o.OwnerID, &o.SharePercent,
			&o.Alternation, &o.OwnerName, &o.UnitReference); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Ownership, error) {
	var o Ownership
	err := r.pool.QueryRow(ctx,
		`SELECT `+selectColumns+` FROM ownerships WHERE id = $1`, id).
		Scan(&o.ID, &o.UnitID, &o.OwnerID, &o.SharePercent, &o.Alternation)
	if errors.Is(err, pgx.ErrNoRows) {
		return Ownership{}, shared.NewNotFoundError("ownership", id)
	}
	if err != nil {
		return Ownership{}, err
	}
	return o, nil
}

func unitRowsTx(ctx context.Context, tx pgx.Tx, unitID int64) ([]Ownership, error) {
	rows, err := tx.Query(ctx,
		`SELECT `+selectColumns+` FROM ownerships WHERE unit_id = $1 ORDER BY id`, unitID)
	if err != nil {
		return nil, err
	}
	return scanRows(rows)
}

// Create re-runs the bucket check against the unit's rows inside the
// transaction, so two concurrent inserts cannot both pass validation on
// a stale read and overfill a bucket together.
func (r *repository) Create(ctx context.Context, o Ownership) (Ownership, error) {
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		existing, err := unitRowsTx(ctx, tx, o.UnitID)
		if err != nil {
			return err
		}
		if err := ValidateShareAddition(existing, o, 0); err != nil {
			return err
		}
		return tx.QueryRow(ctx,
			`INSERT INTO ownerships (unit_id, owner_id, share_percent, alternation)
			 VALUES ($1, $2, $3, $4)
			 RETURNING id`,
			o.UnitID, o.OwnerID, o.SharePercent, o.Alternation).
			Scan(&o.ID)
	})
	if err != nil {
		return Ownership{}, err
	}
	return o, nil
}

func (r *repository) Update(ctx context.Context, id int64, merged Ownership, patch Patch) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		existing, err := unitRowsTx(ctx, tx, merged.UnitID)
		if err != nil {
			return err
		}
		if err := ValidateShareAddition(existing, merged, id); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx,
			`UPDATE ownerships SET
				owner_id = COALESCE($1, owner_id),
				share_percent = COALESCE($2, share_percent),
				alternation = COALESCE($3, alternation)
			 WHERE id = $4`,
			patch.OwnerID, patch.SharePercent, patch.Alternation, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return shared.NewNotFoundError("ownership", id)
		}
		return nil
	})
}

// Delete revalidates the remaining rows unless at most one would be
// left; a vacant unit or a lone unconstrained owner is always allowed.
func (r *repository) Delete(ctx context.Context, id int64) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		target, err := getTx(ctx, tx, id)
		if err != nil {
			return err
		}
		existing, err := unitRowsTx(ctx, tx, target.UnitID)
		if err != nil {
			return err
		}
		remaining := make([]Ownership, 0, len(existing))
		for _, row := range existing {
			if row.ID != id {
				remaining = append(remaining, row)
			}
		}
		if len(remaining) > 1 {
			if err := ValidateBuckets(remaining); err != nil {
				return err
			}
		}
		_, err = tx.Exec(ctx, `DELETE FROM ownerships WHERE id = $1`, id)
		return err
	})
}

func getTx(ctx context.Context, tx pgx.Tx, id int64) (Ownership, error) {
	var o Ownership
	err := tx.QueryRow(ctx,
		`SELECT `+selectColumns+` FROM ownerships WHERE id = $1`, id).
		Scan(&o.ID, &o.UnitID, &o.OwnerID, &o.SharePercent, &o.Alternation)
	if errors.Is(err, pgx.ErrNoRows) {
		return Ownership{}, shared.NewNotFoundError("ownership", id)
	}
	return o, err
}

func (r *repository) OwnerExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM owners WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

func (r *repository) UnitExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM units WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}
