package owners

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rentier-erp/rentier-erp/internal/shared"
)

type fakeRepo struct {
	nextID int64
	rows   map[int64]Owner
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{nextID: 1, rows: map[int64]Owner{}}
}

func (f *fakeRepo) List(_ context.Context) ([]Owner, error) {
	out := make([]Owner, 0, len(f.rows))
	for _, o := range f.rows {
		out = append(out, o)
	}
	return out, nil
}

func (f *fakeRepo) Get(_ context.Context, id int64) (Owner, error) {
	o, ok := f.rows[id]
	if !ok {
		return Owner{}, shared.NewNotFoundError("owner", id)
	}
	return o, nil
}

func (f *fakeRepo) Create(_ context.Context, owner Owner) (Owner, error) {
	owner.ID = f.nextID
	f.nextID++
	f.rows[owner.ID] = owner
	return owner, nil
}

func (f *fakeRepo) Update(_ context.Context, id int64, patch Patch) error {
	o, ok := f.rows[id]
	if !ok {
		return shared.NewNotFoundError("owner", id)
	}
	if patch.Name != nil {
		o.Name = *patch.Name
	}
	if patch.Phone != nil {
		o.Phone = *patch.Phone
	}
	if patch.LegalID != nil {
		o.LegalID = *patch.LegalID
	}
	if patch.FamilyCount != nil {
		o.FamilyCount = *patch.FamilyCount
	}
	f.rows[id] = o
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.rows[id]; !ok {
		return shared.NewNotFoundError("owner", id)
	}
	delete(f.rows, id)
	return nil
}

func TestCreateOwnerRequiresName(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.Create(context.Background(), Owner{Name: "  "})
	require.True(t, shared.IsValidation(err))
}

func TestCreateOwnerRejectsNegativeFamilyCount(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.Create(context.Background(), Owner{Name: "Amina", FamilyCount: -1})
	require.True(t, shared.IsValidation(err))
}

func TestOwnerLifecycle(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	created, err := svc.Create(ctx, Owner{Name: "Amina", Phone: "0600", FamilyCount: 2})
	require.NoError(t, err)
	require.Equal(t, int64(1), created.ID)

	name := "Amina B."
	require.NoError(t, svc.Update(ctx, created.ID, Patch{Name: &name}))

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "Amina B.", got.Name)
	require.Equal(t, 2, got.FamilyCount)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.Get(ctx, created.ID)
	require.True(t, shared.IsNotFound(err))
}

func TestUpdateOwnerEmptyPatchIsNoop(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, Owner{Name: "Karim"})
	require.NoError(t, err)

	// An all-nil patch must not reach the repository.
	require.NoError(t, svc.Update(ctx, created.ID, Patch{}))

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "Karim", got.Name)
}

func TestUpdateOwnerUnknownID(t *testing.T) {
	svc := NewService(newFakeRepo())

	name := "x"
	err := svc.Update(context.Background(), 99, Patch{Name: &name})
	require.True(t, shared.IsNotFound(err))
}
