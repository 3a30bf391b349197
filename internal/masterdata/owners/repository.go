package owners

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rentier-erp/rentier-erp/internal/shared"
)

type Repository interface {
	List(ctx context.Context) ([]Owner, error)
	Get(ctx context.Context, id int64) (Owner, error)
	Create(ctx context.Context, owner Owner) (Owner, error)
	Update(ctx context.Context, id int64, patch Patch) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) List(ctx context.Context) ([]Owner, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, phone, legal_id, family_count FROM owners ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Owner
	for rows.Next() {
		var o Owner
		if err := rows.Scan(&o.ID, &o.Name, &o.Phone, &o.LegalID, &o.FamilyCount); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Owner, error) {
	var o Owner
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, phone, legal_id, family_count FROM owners WHERE id = $1`, id).
		Scan(&o.ID, &o.Name, &o.Phone, &o.LegalID, &o.FamilyCount)
	if errors.Is(err, pgx.ErrNoRows) {
		return Owner{}, shared.NewNotFoundError("owner", id)
	}
	if err != nil {
		return Owner{}, err
	}
	return o, nil
}

func (r *repository) Create(ctx context.Context, owner Owner) (Owner, error) {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO owners (name, phone, legal_id, family_count)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		owner.Name, owner.Phone, owner.LegalID, owner.FamilyCount).
		Scan(&owner.ID)
	if err != nil {
		return Owner{}, err
	}
	return owner, nil
}

func (r *repository) Update(ctx context.Context, id int64, patch Patch) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE owners SET
			name = COALESCE($1, name),
			phone = COALESCE($2, phone),
			legal_id = COALESCE($3, legal_id),
			family_count = COALESCE($4, family_count)
		 WHERE id = $5`,
		patch.Name, patch.Phone, patch.LegalID, patch.FamilyCount, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.NewNotFoundError("owner", id)
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM owners WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.NewNotFoundError("owner", id)
	}
	return nil
}
