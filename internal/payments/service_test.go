package payments

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/rentier-erp/rentier-erp/internal/shared"
)

type entryKey struct {
	ownerID int64
	year    int
}

type fakeRepo struct {
	nextID   int64
	entries  map[uuid.UUID]entryKey
	payments []Payment
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{nextID: 1, entries: map[uuid.UUID]entryKey{}}
}

func (f *fakeRepo) addEntry(ownerID int64, year int) uuid.UUID {
	uid := uuid.New()
	f.entries[uid] = entryKey{ownerID: ownerID, year: year}
	return uid
}

func (f *fakeRepo) EntryExists(_ context.Context, uid uuid.UUID) (bool, error) {
	_, ok := f.entries[uid]
	return ok, nil
}

func (f *fakeRepo) Create(_ context.Context, p Payment) (Payment, error) {
	p.ID = f.nextID
	f.nextID++
	f.payments = append(f.payments, p)
	return p, nil
}

func (f *fakeRepo) SumReceivedForOwnerYear(_ context.Context, ownerID int64, year int) (float64, error) {
	var sum float64
	for _, p := range f.payments {
		key := f.entries[p.EntryUID]
		if key.ownerID == ownerID && key.year == year {
			sum += p.AmountReceived
		}
	}
	return sum, nil
}

func (f *fakeRepo) ListForOwnerYear(_ context.Context, ownerID int64, year int) ([]Payment, error) {
	var out []Payment
	for _, p := range f.payments {
		key := f.entries[p.EntryUID]
		if key.ownerID == ownerID && key.year == year {
			out = append(out, p)
		}
	}
	return out, nil
}

func TestRecordValidates(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	_, err := svc.Record(ctx, RecordInput{AmountReceived: 100})
	require.True(t, shared.IsValidation(err))

	uid := repo.addEntry(1, 2026)
	_, err = svc.Record(ctx, RecordInput{EntryUID: uid, AmountReceived: 0})
	require.True(t, shared.IsValidation(err))

	_, err = svc.Record(ctx, RecordInput{EntryUID: uuid.New(), AmountReceived: 100})
	require.True(t, shared.IsNotFound(err))
}

func TestRecordDefaultsReceivedAt(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	svc.now = func() time.Time {
		return time.Date(2026, 3, 15, 18, 30, 0, 0, time.UTC)
	}

	uid := repo.addEntry(1, 2026)
	p, err := svc.Record(context.Background(), RecordInput{EntryUID: uid, AmountReceived: 600})
	require.NoError(t, err)
	require.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), p.ReceivedAt)
}

func TestSumReceivedForOwnerYear(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	a := repo.addEntry(1, 2026)
	b := repo.addEntry(1, 2026)
	other := repo.addEntry(2, 2026)
	lastYear := repo.addEntry(1, 2025)

	for _, in := range []RecordInput{
		{EntryUID: a, AmountReceived: 600},
		{EntryUID: a, AmountReceived: 150}, // partial top-up on the same entry
		{EntryUID: b, AmountReceived: 400},
		{EntryUID: other, AmountReceived: 999},
		{EntryUID: lastYear, AmountReceived: 500},
	} {
		_, err := svc.Record(ctx, in)
		require.NoError(t, err)
	}

	sum, err := svc.SumReceivedForOwnerYear(ctx, 1, 2026)
	require.NoError(t, err)
	require.Equal(t, 1150.0, sum)

	listed, err := svc.ListForOwnerYear(ctx, 1, 2026)
	require.NoError(t, err)
	require.Len(t, listed, 3)
}
