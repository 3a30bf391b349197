package units

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rentier-erp/rentier-erp/internal/shared"
)

type Repository interface {
	List(ctx context.Context) ([]Unit, error)
	Get(ctx context.Context, id int64) (Unit, error)
	Create(ctx context.Context, unit Unit) (Unit, error)
	Update(ctx context.Context, id int64, patch Patch) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) List(ctx context.Context) ([]Unit, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, reference, city, neighborhood, floor, unit_type FROM units ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Unit
	for rows.Next() {
		var u Unit
		if err := rows.Scan(&u.ID, &u.Reference, &u.City, &u.Neighborhood, &u.Floor, &u.Type); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Unit, error) {
	var u Unit
	err := r.pool.QueryRow(ctx,
		`SELECT id, reference, city, neighborhood, floor, unit_type FROM units WHERE id = $1`, id).
		Scan(&u.ID, &u.Reference, &u.City, &u.Neighborhood, &u.Floor, &u.Type)
	if errors.Is(err, pgx.ErrNoRows) {
		return Unit{}, shared.NewNotFoundError("unit", id)
	}
	if err != nil {
		return Unit{}, err
	}
	return u, nil
}

func (r *repository) Create(ctx context.Context, unit Unit) (Unit, error) {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO units (reference, city, neighborhood, floor, unit_type)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		unit.Reference, unit.City, unit.Neighborhood, unit.Floor, unit.Type).
		Scan(&unit.ID)
	if err != nil {
		return Unit{}, err
	}
	return unit, nil
}

func (r *repository) Update(ctx context.Context, id int64, patch Patch) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE units SET
			reference = COALESCE($1, reference),
			city = COALESCE($2, city),
			neighborhood = COALESCE($3, neighborhood),
			floor = COALESCE($4, floor),
			unit_type = COALESCE($5, unit_type)
		 WHERE id = $6`,
		patch.Reference, patch.City, patch.Neighborhood, patch.Floor, patch.Type, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.NewNotFoundError("unit", id)
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM units WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.NewNotFoundError("unit", id)
	}
	return nil
}
