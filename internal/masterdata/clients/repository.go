package clients

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rentier-erp/rentier-erp/internal/shared"
)

type Repository interface {
	List(ctx context.Context) ([]Client, error)
	Get(ctx context.Context, id int64) (Client, error)
	Create(ctx context.Context, client Client) (Client, error)
	Update(ctx context.Context, id int64, patch Patch) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) List(ctx context.Context) ([]Client, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, client_type, phone, legal_id FROM clients ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Client
	for rows.Next() {
		var c Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Type, &c.Phone, &c.LegalID); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Client, error) {
	var c Client
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, client_type, phone, legal_id FROM clients WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &c.Type, &c.Phone, &c.LegalID)
	if errors.Is(err, pgx.ErrNoRows) {
		return Client{}, shared.NewNotFoundError("client", id)
	}
	if err != nil {
		return Client{}, err
	}
	return c, nil
}

func (r *repository) Create(ctx context.Context, client Client) (Client, error) {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO clients (name, client_type, phone, legal_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		client.Name, client.Type, client.Phone, client.LegalID).
		Scan(&client.ID)
	if err != nil {
		return Client{}, err
	}
	return client, nil
}

func (r *repository) Update(ctx context.Context, id int64, patch Patch) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE clients SET
			name = COALESCE($1, name),
			client_type = COALESCE($2, client_type),
			phone = COALESCE($3, phone),
			legal_id = COALESCE($4, legal_id)
		 WHERE id = $5`,
		patch.Name, patch.Type, patch.Phone, patch.LegalID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.NewNotFoundError("client", id)
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.NewNotFoundError("client", id)
	}
	return nil
}
