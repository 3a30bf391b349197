package taxes

import (
	"context"

	"github.com/rentier-erp/rentier-erp/internal/shared"
)

type Service struct {
	repo Repository
	cfg  Config
}

// NewService builds a calculator over an injected scale; callers that
// want the statutory one pass DefaultConfig().
func NewService(repo Repository, cfg Config) *Service {
	return &Service{repo: repo, cfg: cfg}
}

// Compute runs the annual pipeline for one owner: gross collected rent,
// abatement, bracket tax, family deduction, then reconciliation against
// what was actually received (withheld = gross − received).
func (s *Service) Compute(ctx context.Context, ownerID int64, year int) (Result, error) {
	if ownerID <= 0 {
		return Result{}, shared.NewValidationError("owner_id", "must be positive")
	}
	if year <= 0 {
		return Result{}, shared.NewValidationError("year", "must be positive")
	}

	owner, err := s.repo.GetOwner(ctx, ownerID)
	if err != nil {
		return Result{}, err
	}
	gross, err := s.repo.GrossForOwnerYear(ctx, ownerID, year)
	if err != nil {
		return Result{}, err
	}
	received, err := s.repo.ReceivedForOwnerYear(ctx, ownerID, year)
	if err != nil {
		return Result{}, err
	}

	result := computeFigures(s.cfg, gross, received, owner.FamilyCount)
	result.OwnerID = owner.ID
	result.OwnerName = owner.Name
	result.Year = year
	return result, nil
}

// ComputeAll runs Compute for every owner, skipping none; owners with
// no activity produce a zero result.
func (s *Service) ComputeAll(ctx context.Context, year int) ([]Result, error) {
	if year <= 0 {
		return nil, shared.NewValidationError("year", "must be positive")
	}
	owners, err := s.repo.ListOwners(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Result, 0, len(owners))
	for _, owner := range owners {
		result, err := s.Compute(ctx, owner.ID, year)
		if err != nil {
			return nil, err
		}
		out = append(out, result)
	}
	return out, nil
}
