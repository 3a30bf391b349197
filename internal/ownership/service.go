package ownership

import (
	"context"

	"github.com/rentier-erp/rentier-erp/internal/shared"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateInput is a new share for a unit. Alternation defaults to "none".
type CreateInput struct {
	UnitID       int64
	OwnerID      int64
	SharePercent float64
	Alternation  Alternation
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Ownership, error) {
	if in.Alternation == "" {
		in.Alternation = AltNone
	}
	if !ValidAlternation(in.Alternation) {
		return Ownership{}, shared.NewValidationError("alternation", `must be "none", "odd" or "even"`)
	}
	if in.SharePercent <= 0 || in.SharePercent > 100 {
		return Ownership{}, shared.NewValidationError("share_percent", "must be in (0, 100]")
	}
	if ok, err := s.repo.UnitExists(ctx, in.UnitID); err != nil {
		return Ownership{}, err
	} else if !ok {
		return Ownership{}, shared.NewNotFoundError("unit", in.UnitID)
	}
	if ok, err := s.repo.OwnerExists(ctx, in.OwnerID); err != nil {
		return Ownership{}, err
	} else if !ok {
		return Ownership{}, shared.NewNotFoundError("owner", in.OwnerID)
	}

	return s.repo.Create(ctx, Ownership{
		UnitID:       in.UnitID,
		OwnerID:      in.OwnerID,
		SharePercent: in.SharePercent,
		Alternation:  in.Alternation,
	})
}

func (s *Service) Update(ctx context.Context, id int64, patch Patch) error {
	if id <= 0 {
		return shared.NewValidationError("id", "must be positive")
	}
	if patch.SharePercent != nil && (*patch.SharePercent <= 0 || *patch.SharePercent > 100) {
		return shared.NewValidationError("share_percent", "must be in (0, 100]")
	}
	if patch.Alternation != nil && !ValidAlternation(*patch.Alternation) {
		return shared.NewValidationError("alternation", `must be "none", "odd" or "even"`)
	}
	if patch == (Patch{}) {
		return nil
	}

	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	merged := current
	if patch.OwnerID != nil {
		if ok, err := s.repo.OwnerExists(ctx, *patch.OwnerID); err != nil {
			return err
		} else if !ok {
			return shared.NewNotFoundError("owner", *patch.OwnerID)
		}
		merged.OwnerID = *patch.OwnerID
	}
	if patch.SharePercent != nil {
		merged.SharePercent = *patch.SharePercent
	}
	if patch.Alternation != nil {
		merged.Alternation = *patch.Alternation
	}

	return s.repo.Update(ctx, id, merged, patch)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return shared.NewValidationError("id", "must be positive")
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) Get(ctx context.Context, id int64) (Ownership, error) {
	if id <= 0 {
		return Ownership{}, shared.NewValidationError("id", "must be positive")
	}
	return s.repo.Get(ctx, id)
}

// ListWithNames returns ownerships joined with owner and unit labels.
// A zero unitID means all units.
func (s *Service) ListWithNames(ctx context.Context, unitID int64) ([]OwnershipWithNames, error) {
	return s.repo.ListWithNames(ctx, unitID)
}
