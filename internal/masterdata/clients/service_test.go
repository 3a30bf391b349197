package clients

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rentier-erp/rentier-erp/internal/shared"
)

type fakeRepo struct {
	nextID int64
	rows   map[int64]Client
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{nextID: 1, rows: map[int64]Client{}}
}

func (f *fakeRepo) List(_ context.Context) ([]Client, error) {
	out := make([]Client, 0, len(f.rows))
	for _, c := range f.rows {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeRepo) Get(_ context.Context, id int64) (Client, error) {
	c, ok := f.rows[id]
	if !ok {
		return Client{}, shared.NewNotFoundError("client", id)
	}
	return c, nil
}

func (f *fakeRepo) Create(_ context.Context, client Client) (Client, error) {
	client.ID = f.nextID
	f.nextID++
	f.rows[client.ID] = client
	return client, nil
}

func (f *fakeRepo) Update(_ context.Context, id int64, patch Patch) error {
	c, ok := f.rows[id]
	if !ok {
		return shared.NewNotFoundError("client", id)
	}
	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.Type != nil {
		c.Type = *patch.Type
	}
	if patch.Phone != nil {
		c.Phone = *patch.Phone
	}
	if patch.LegalID != nil {
		c.LegalID = *patch.LegalID
	}
	f.rows[id] = c
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.rows[id]; !ok {
		return shared.NewNotFoundError("client", id)
	}
	delete(f.rows, id)
	return nil
}

func TestCreateClientValidatesType(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, Client{Name: "ACME", Type: "XX"})
	require.True(t, shared.IsValidation(err))

	created, err := svc.Create(ctx, Client{Name: "ACME", Type: TypeCorporate})
	require.NoError(t, err)
	require.Equal(t, TypeCorporate, created.Type)
}

func TestUpdateClientRejectsBadType(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	created, err := svc.Create(ctx, Client{Name: "Said", Type: TypeIndividual})
	require.NoError(t, err)

	bad := ClientType("corp")
	err = svc.Update(ctx, created.ID, Patch{Type: &bad})
	require.True(t, shared.IsValidation(err))
}
