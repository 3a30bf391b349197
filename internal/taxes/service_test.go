package taxes

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rentier-erp/rentier-erp/internal/shared"
)

type yearKey struct {
	ownerID int64
	year    int
}

type fakeRepo struct {
	owners   map[int64]OwnerInfo
	gross    map[yearKey]float64
	received map[yearKey]float64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		owners:   map[int64]OwnerInfo{},
		gross:    map[yearKey]float64{},
		received: map[yearKey]float64{},
	}
}

func (f *fakeRepo) GetOwner(_ context.Context, id int64) (OwnerInfo, error) {
	o, ok := f.owners[id]
	if !ok {
		return OwnerInfo{}, shared.NewNotFoundError("owner", id)
	}
	return o, nil
}

func (f *fakeRepo) ListOwners(_ context.Context) ([]OwnerInfo, error) {
	var out []OwnerInfo
	for id := int64(1); id <= int64(len(f.owners)); id++ {
		if o, ok := f.owners[id]; ok {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeRepo) GrossForOwnerYear(_ context.Context, ownerID int64, year int) (float64, error) {
	return f.gross[yearKey{ownerID, year}], nil
}

func (f *fakeRepo) ReceivedForOwnerYear(_ context.Context, ownerID int64, year int) (float64, error) {
	return f.received[yearKey{ownerID, year}], nil
}

func TestComputeLoadsOwnerFigures(t *testing.T) {
	repo := newFakeRepo()
	repo.owners[1] = OwnerInfo{ID: 1, Name: "Amina", FamilyCount: 2}
	repo.gross[yearKey{1, 2026}] = 100000
	repo.received[yearKey{1, 2026}] = 90000
	svc := NewService(repo, DefaultConfig())

	r, err := svc.Compute(context.Background(), 1, 2026)
	require.NoError(t, err)
	require.Equal(t, "Amina", r.OwnerName)
	require.Equal(t, 2026, r.Year)
	require.Equal(t, 100000.0, r.Gross)
	require.Equal(t, 10000.0, r.Withheld)
	require.Equal(t, 0.0, r.FinalTax)
}

func TestComputeUnknownOwner(t *testing.T) {
	svc := NewService(newFakeRepo(), DefaultConfig())

	_, err := svc.Compute(context.Background(), 7, 2026)
	require.True(t, shared.IsNotFound(err))
}

func TestComputeAllCoversEveryOwner(t *testing.T) {
	repo := newFakeRepo()
	repo.owners[1] = OwnerInfo{ID: 1, Name: "Amina"}
	repo.owners[2] = OwnerInfo{ID: 2, Name: "Karim"}
	repo.gross[yearKey{1, 2026}] = 100000
	repo.received[yearKey{1, 2026}] = 100000
	svc := NewService(repo, DefaultConfig())

	results, err := svc.ComputeAll(context.Background(), 2026)
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.Greater(t, results[0].FinalTax, 0.0)
	require.Equal(t, 0.0, results[1].FinalTax) // no activity, zero result
}
