package owners

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

func (s *Service) List(ctx context.Context) ([]Owner, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (Owner, error) {
	if id <= 0 {
		return Owner{}, shared.NewValidationError("id", "must be positive")
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, owner Owner) (Owner, error) {
	if err := validate(owner.Name, owner.FamilyCount); err != nil {
		return Owner{}, err
	}
	return s.repo.Create(ctx, owner)
}

func (s *Service) Update(ctx context.Context, id int64, patch Patch) error {
	if id <= 0 {
		return shared.NewValidationError("id", "must be positive")
	}
	if patch.Name != nil && *patch.Name == "" {
		return shared.NewValidationError("name", "cannot be empty")
	}
	if patch.FamilyCount != nil && *patch.FamilyCount < 0 {
		return shared.NewValidationError("family_count", "cannot be negative")
	}
	if patch == (Patch{}) {
		return nil
	}
	return s.repo.Update(ctx, id, patch)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return shared.NewValidationError("id", "must be positive")
	}
	return s.repo.Delete(ctx, id)
}
