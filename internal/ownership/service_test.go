package ownership

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rentier-erp/rentier-erp/internal/shared"
)

type fakeRepo struct {
	nextID int64
	rows   map[int64]Ownership
	owners map[int64]bool
	units  map[int64]bool
}

func newFakeRepo(ownerID, unitID int64) *fakeRepo {
	f := &fakeRepo{
		nextID: 1,
		rows:   map[int64]Ownership{},
		owners: map[int64]bool{},
		units:  map[int64]bool{},
	}
	f.owners[ownerID] = true
	f.units[unitID] = true
	return f
}

func (f *fakeRepo) List(_ context.Context) ([]Ownership, error) {
	return f.forUnit(0), nil
}

func (f *fakeRepo) ListForUnit(_ context.Context, unitID int64) ([]Ownership, error) {
	return f.forUnit(unitID), nil
}

func (f *fakeRepo) forUnit(unitID int64) []Ownership {
	var out []Ownership
	for id := int64(1); id < f.nextID; id++ {
		o, ok := f.rows[id]
		if !ok {
			continue
		}
		if unitID == 0 || o.UnitID == unitID {
			out = append(out, o)
		}
	}
	return out
}

func (f *fakeRepo) ListWithNames(_ context.Context, unitID int64) ([]OwnershipWithNames, error) {
	var out []OwnershipWithNames
	for _, o := range f.forUnit(unitID) {
		out = append(out, OwnershipWithNames{Ownership: o})
	}
	return out, nil
}

func (f *fakeRepo) Get(_ context.Context, id int64) (Ownership, error) {
	o, ok := f.rows[id]
	if !ok {
		return Ownership{}, shared.NewNotFoundError("ownership", id)
	}
	return o, nil
}

func (f *fakeRepo) Create(_ context.Context, o Ownership) (Ownership, error) {
	if err := ValidateShareAddition(f.forUnit(o.UnitID), o, 0); err != nil {
		return Ownership{}, err
	}
	o.ID = f.nextID
	f.nextID++
	f.rows[o.ID] = o
	return o, nil
}

func (f *fakeRepo) Update(_ context.Context, id int64, merged Ownership, _ Patch) error {
	if _, ok := f.rows[id]; !ok {
		return shared.NewNotFoundError("ownership", id)
	}
	if err := ValidateShareAddition(f.forUnit(merged.UnitID), merged, id); err != nil {
		return err
	}
	merged.ID = id
	f.rows[id] = merged
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id int64) error {
	target, ok := f.rows[id]
	if !ok {
		return shared.NewNotFoundError("ownership", id)
	}
	var remaining []Ownership
	for _, o := range f.forUnit(target.UnitID) {
		if o.ID != id {
			remaining = append(remaining, o)
		}
	}
	if len(remaining) > 1 {
		if err := ValidateBuckets(remaining); err != nil {
			return err
		}
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeRepo) OwnerExists(_ context.Context, id int64) (bool, error) {
	return f.owners[id], nil
}

func (f *fakeRepo) UnitExists(_ context.Context, id int64) (bool, error) {
	return f.units[id], nil
}

func TestCreateChecksForeignKeys(t *testing.T) {
	svc := NewService(newFakeRepo(1, 1))
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateInput{UnitID: 9, OwnerID: 1, SharePercent: 100})
	require.True(t, shared.IsNotFound(err))

	_, err = svc.Create(ctx, CreateInput{UnitID: 1, OwnerID: 9, SharePercent: 100})
	require.True(t, shared.IsNotFound(err))
}

func TestCreateValidatesShareBounds(t *testing.T) {
	svc := NewService(newFakeRepo(1, 1))
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateInput{UnitID: 1, OwnerID: 1, SharePercent: 0})
	require.True(t, shared.IsValidation(err))

	_, err = svc.Create(ctx, CreateInput{UnitID: 1, OwnerID: 1, SharePercent: 100.5})
	require.True(t, shared.IsValidation(err))

	_, err = svc.Create(ctx, CreateInput{UnitID: 1, OwnerID: 1, SharePercent: 50, Alternation: "weekly"})
	require.True(t, shared.IsValidation(err))
}

func TestCreateDefaultsAlternation(t *testing.T) {
	svc := NewService(newFakeRepo(1, 1))

	o, err := svc.Create(context.Background(), CreateInput{UnitID: 1, OwnerID: 1, SharePercent: 100})
	require.NoError(t, err)
	require.Equal(t, AltNone, o.Alternation)
}

func TestCreateRejectsBucketOverfill(t *testing.T) {
	repo := newFakeRepo(1, 1)
	svc := NewService(repo)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateInput{UnitID: 1, OwnerID: 1, SharePercent: 60})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateInput{UnitID: 1, OwnerID: 1, SharePercent: 41})
	require.True(t, shared.IsValidation(err))

	_, err = svc.Create(ctx, CreateInput{UnitID: 1, OwnerID: 1, SharePercent: 40})
	require.NoError(t, err)
}

func TestUpdateRevalidatesExcludingSelf(t *testing.T) {
	repo := newFakeRepo(1, 1)
	svc := NewService(repo)
	ctx := context.Background()

	a, err := svc.Create(ctx, CreateInput{UnitID: 1, OwnerID: 1, SharePercent: 60})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateInput{UnitID: 1, OwnerID: 1, SharePercent: 40})
	require.NoError(t, err)

	// Shrinking its own share is fine; growing past the bucket is not.
	smaller := 50.0
	require.NoError(t, svc.Update(ctx, a.ID, Patch{SharePercent: &smaller}))

	bigger := 70.0
	err = svc.Update(ctx, a.ID, Patch{SharePercent: &bigger})
	require.True(t, shared.IsValidation(err))
}

func TestDeleteBypassesCheckWhenOneRowLeft(t *testing.T) {
	repo := newFakeRepo(1, 1)
	svc := NewService(repo)
	ctx := context.Background()

	a, err := svc.Create(ctx, CreateInput{UnitID: 1, OwnerID: 1, SharePercent: 60})
	require.NoError(t, err)
	b, err := svc.Create(ctx, CreateInput{UnitID: 1, OwnerID: 1, SharePercent: 40})
	require.NoError(t, err)

	// Two rows, one remains after delete: allowed even though the
	// remainder no longer totals 100.
	require.NoError(t, svc.Delete(ctx, a.ID))
	require.NoError(t, svc.Delete(ctx, b.ID))
}

func TestDeleteChecksRemainderWithMultipleRows(t *testing.T) {
	repo := newFakeRepo(1, 1)
	svc := NewService(repo)
	ctx := context.Background()

	// A first row with an alternation leaves the other bucket uncovered.
	_, err := svc.Create(ctx, CreateInput{UnitID: 1, OwnerID: 1, SharePercent: 100, Alternation: AltEven})
	require.True(t, shared.IsValidation(err))

	a, err := svc.Create(ctx, CreateInput{UnitID: 1, OwnerID: 1, SharePercent: 60})
	require.NoError(t, err)
	b, err := svc.Create(ctx, CreateInput{UnitID: 1, OwnerID: 1, SharePercent: 40})
	require.NoError(t, err)
	require.NoError(t, svc.Update(ctx, a.ID, Patch{Alternation: altPtr(AltOdd)}))
	require.NoError(t, svc.Update(ctx, b.ID, Patch{Alternation: altPtr(AltEven)}))
	_, err = svc.Create(ctx, CreateInput{UnitID: 1, OwnerID: 1, SharePercent: 60, Alternation: AltEven})
	require.NoError(t, err)

	// Removing the only odd coverage would leave two even rows and an
	// empty odd bucket; with more than one row remaining there is no
	// bypass.
	err = svc.Delete(ctx, a.ID)
	require.True(t, shared.IsValidation(err))
}

func altPtr(a Alternation) *Alternation { return &a }
