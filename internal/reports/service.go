package reports

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/rentier-erp/rentier-erp/internal/shared"
	"github.com/rentier-erp/rentier-erp/internal/taxes"
)

const versionKey = "reports:version"

// Service renders reports and caches the results in redis. Invalidation
// is by version bump: every receipt or payment write increments one
// counter, which keys all cached entries, so stale renders are simply
// never read again and expire on their TTL.
type Service struct {
	logger *slog.Logger
	repo   Repository
	taxes  *taxes.Service
	cache  *redis.Client
	ttl    time.Duration
	group  singleflight.Group
}

// NewService wires the report generators behind the cache. cache may be
// nil, in which case every call renders fresh.
func NewService(logger *slog.Logger, repo Repository, taxSvc *taxes.Service, cache *redis.Client, ttl time.Duration) *Service {
	return &Service{
		logger: logger,
		repo:   repo,
		taxes:  taxSvc,
		cache:  cache,
		ttl:    ttl,
	}
}

// Bump invalidates all cached reports.
func (s *Service) Bump(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Incr(ctx, versionKey).Err()
}

// Get returns the requested report, from cache when possible. A
// non-zero ownerID restricts any shape to that owner.
func (s *Service) Get(ctx context.Context, kind Kind, year int, ownerID int64) (Report, error) {
	if !ValidKind(kind) {
		return Report{}, shared.NewValidationError("kind", "unknown report kind")
	}
	if year <= 0 {
		return Report{}, shared.NewValidationError("year", "must be positive")
	}

	if s.cache == nil {
		return s.build(ctx, kind, year, ownerID)
	}

	version, err := s.cache.Get(ctx, versionKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		s.logger.Warn("report cache unavailable, rendering fresh", "error", err)
		return s.build(ctx, kind, year, ownerID)
	}
	key := fmt.Sprintf("reports:v%d:%s:%d:%d", version, kind, year, ownerID)

	cached, err := s.cache.Get(ctx, key).Bytes()
	if err == nil {
		var report Report
		if err := json.Unmarshal(cached, &report); err == nil {
			return report, nil
		}
	}

	// Collapse concurrent renders of the same key into one.
	v, err, _ := s.group.Do(key, func() (any, error) {
		report, err := s.build(ctx, kind, year, ownerID)
		if err != nil {
			return Report{}, err
		}
		payload, err := json.Marshal(report)
		if err != nil {
			return Report{}, err
		}
		if err := s.cache.Set(ctx, key, payload, s.ttl).Err(); err != nil {
			s.logger.Warn("report cache write failed", "key", key, "error", err)
		}
		return report, nil
	})
	if err != nil {
		return Report{}, err
	}
	return v.(Report), nil
}

func (s *Service) build(ctx context.Context, kind Kind, year int, ownerID int64) (Report, error) {
	switch kind {
	case ReceiptsDetailed, ReceiptsByOwner, ReceiptsMinimal:
		entries, err := s.repo.ReceiptEntries(ctx, year, ownerID)
		if err != nil {
			return Report{}, err
		}
		switch kind {
		case ReceiptsByOwner:
			return BuildReceiptsByOwner(entries), nil
		case ReceiptsMinimal:
			return BuildReceiptsMinimal(entries), nil
		default:
			return BuildReceiptsDetailed(entries), nil
		}

	case TaxesDetailed, TaxesMinimal:
		results, err := s.taxResults(ctx, year, ownerID)
		if err != nil {
			return Report{}, err
		}
		if kind == TaxesMinimal {
			return BuildTaxesMinimal(results), nil
		}
		return BuildTaxesDetailed(results), nil

	case TaxesByAssignment:
		results, err := s.taxResults(ctx, year, ownerID)
		if err != nil {
			return Report{}, err
		}
		grossRows, err := s.repo.AssignmentGross(ctx, year, ownerID)
		if err != nil {
			return Report{}, err
		}
		return BuildTaxesByAssignment(results, grossRows), nil
	}
	return Report{}, shared.NewValidationError("kind", "unknown report kind")
}

// taxResults computes the year for every owner, or for just one when
// the filter is set.
func (s *Service) taxResults(ctx context.Context, year int, ownerID int64) ([]taxes.Result, error) {
	if ownerID != 0 {
		result, err := s.taxes.Compute(ctx, ownerID, year)
		if err != nil {
			return nil, err
		}
		return []taxes.Result{result}, nil
	}
	return s.taxes.ComputeAll(ctx, year)
}
