package units

import (
	"context"
	"strings"

	"github.com/rentier-erp/rentier-erp/internal/shared"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]Unit, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (Unit, error) {
	if id <= 0 {
		return Unit{}, shared.NewValidationError("id", "must be positive")
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, unit Unit) (Unit, error) {
	if err := validateReference(unit.Reference); err != nil {
		return Unit{}, err
	}
	if err := validateType(unit.Type); err != nil {
		return Unit{}, err
	}
	unit.Reference = strings.TrimSpace(unit.Reference)
	return s.repo.Create(ctx, unit)
}

func (s *Service) Update(ctx context.Context, id int64, patch Patch) error {
	if id <= 0 {
		return shared.NewValidationError("id", "must be positive")
	}
	if patch.Reference != nil {
		if err := validateReference(*patch.Reference); err != nil {
			return err
		}
		trimmed := strings.TrimSpace(*patch.Reference)
		patch.Reference = &trimmed
	}
	if patch.Type != nil {
		if err := validateType(*patch.Type); err != nil {
			return err
		}
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
