package reports

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/rentier-erp/rentier-erp/internal/shared"
	"github.com/rentier-erp/rentier-erp/internal/taxes"
	_ "github.com/rentier-erp/rentier-erp/internal/testing/guard"
)

type fakeRepo struct {
	entries []EntryRow
	calls   int
}

func (f *fakeRepo) ReceiptEntries(_ context.Context, _ int, _ int64) ([]EntryRow, error) {
	f.calls++
	return f.entries, nil
}

func (f *fakeRepo) AssignmentGross(_ context.Context, _ int, _ int64) ([]AssignmentGrossRow, error) {
	return nil, nil
}

type fakeTaxRepo struct {
	owners []taxes.OwnerInfo
}

func (f fakeTaxRepo) ownerList() []taxes.OwnerInfo {
	if len(f.owners) > 0 {
		return f.owners
	}
	return []taxes.OwnerInfo{{ID: 1, Name: "Amina"}}
}

func (f fakeTaxRepo) GetOwner(_ context.Context, id int64) (taxes.OwnerInfo, error) {
	for _, o := range f.ownerList() {
		if o.ID == id {
			return o, nil
		}
	}
	return taxes.OwnerInfo{}, shared.NewNotFoundError("owner", id)
}

func (f fakeTaxRepo) ListOwners(_ context.Context) ([]taxes.OwnerInfo, error) {
	return f.ownerList(), nil
}

func (fakeTaxRepo) GrossForOwnerYear(_ context.Context, _ int64, _ int) (float64, error) {
	return 100000, nil
}

func (fakeTaxRepo) ReceivedForOwnerYear(_ context.Context, _ int64, _ int) (float64, error) {
	return 100000, nil
}

func testService(t *testing.T, repo *fakeRepo) (*Service, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	taxSvc := taxes.NewService(fakeTaxRepo{}, taxes.DefaultConfig())
	return NewService(slog.Default(), repo, taxSvc, client, time.Minute), client
}

func TestGetCachesRenderedReports(t *testing.T) {
	repo := &fakeRepo{entries: sampleEntries()}
	svc, _ := testService(t, repo)
	ctx := context.Background()

	first, err := svc.Get(ctx, ReceiptsByOwner, 2026, 0)
	require.NoError(t, err)
	require.Len(t, first.Rows, 2)
	require.Equal(t, 1, repo.calls)

	second, err := svc.Get(ctx, ReceiptsByOwner, 2026, 0)
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, 1, repo.calls) // served from cache
}

func TestBumpInvalidatesCache(t *testing.T) {
	repo := &fakeRepo{entries: sampleEntries()}
	svc, _ := testService(t, repo)
	ctx := context.Background()

	_, err := svc.Get(ctx, ReceiptsMinimal, 2026, 0)
	require.NoError(t, err)
	require.Equal(t, 1, repo.calls)

	require.NoError(t, svc.Bump(ctx))

	_, err = svc.Get(ctx, ReceiptsMinimal, 2026, 0)
	require.NoError(t, err)
	require.Equal(t, 2, repo.calls) // re-rendered under the new version
}

func TestGetDistinguishesOwnerFilter(t *testing.T) {
	repo := &fakeRepo{entries: sampleEntries()}
	svc, _ := testService(t, repo)
	ctx := context.Background()

	_, err := svc.Get(ctx, ReceiptsDetailed, 2026, 0)
	require.NoError(t, err)
	_, err = svc.Get(ctx, ReceiptsDetailed, 2026, 1)
	require.NoError(t, err)
	require.Equal(t, 2, repo.calls) // different cache keys

	_, err = svc.Get(ctx, ReceiptsDetailed, 2026, 1)
	require.NoError(t, err)
	require.Equal(t, 2, repo.calls)
}

func TestGetFiltersTaxReportsByOwner(t *testing.T) {
	repo := &fakeRepo{}
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	taxSvc := taxes.NewService(fakeTaxRepo{owners: []taxes.OwnerInfo{
		{ID: 1, Name: "Amina"},
		{ID: 2, Name: "Karim"},
	}}, taxes.DefaultConfig())
	svc := NewService(slog.Default(), repo, taxSvc, client, time.Minute)
	ctx := context.Background()

	all, err := svc.Get(ctx, TaxesMinimal, 2026, 0)
	require.NoError(t, err)
	require.Len(t, all.Rows, 2)

	one, err := svc.Get(ctx, TaxesMinimal, 2026, 2)
	require.NoError(t, err)
	require.Len(t, one.Rows, 1)
	require.Equal(t, "Karim", one.Rows[0][0])

	_, err = svc.Get(ctx, TaxesDetailed, 2026, 99)
	require.True(t, shared.IsNotFound(err))
}

func TestGetTaxReportThroughCache(t *testing.T) {
	repo := &fakeRepo{}
	svc, _ := testService(t, repo)

	report, err := svc.Get(context.Background(), TaxesMinimal, 2026, 0)
	require.NoError(t, err)
	require.Len(t, report.Rows, 1)
	require.Equal(t, "Amina", report.Rows[0][0])
	require.Equal(t, "2000", report.Rows[0][3])
}

func TestGetValidatesInput(t *testing.T) {
	repo := &fakeRepo{}
	svc, _ := testService(t, repo)
	ctx := context.Background()

	_, err := svc.Get(ctx, Kind("nope"), 2026, 0)
	require.True(t, shared.IsValidation(err))

	_, err = svc.Get(ctx, ReceiptsMinimal, 0, 0)
	require.True(t, shared.IsValidation(err))
}

func TestGetWithoutCacheRendersFresh(t *testing.T) {
	repo := &fakeRepo{entries: sampleEntries()}
	taxSvc := taxes.NewService(fakeTaxRepo{}, taxes.DefaultConfig())
	svc := NewService(slog.Default(), repo, taxSvc, nil, time.Minute)
	ctx := context.Background()

	_, err := svc.Get(ctx, ReceiptsMinimal, 2026, 0)
	require.NoError(t, err)
	_, err = svc.Get(ctx, ReceiptsMinimal, 2026, 0)
	require.NoError(t, err)
	require.Equal(t, 2, repo.calls)
}
