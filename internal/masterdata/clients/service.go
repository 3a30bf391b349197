package clients

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

func validType(t ClientType) bool {
	return t == TypeIndividual || t == TypeCorporate
}

func (s *Service) List(ctx context.Context) ([]Client, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (Client, error) {
	if id <= 0 {
		return Client{}, shared.NewValidationError("id", "must be positive")
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, client Client) (Client, error) {
	if strings.TrimSpace(client.Name) == "" {
		return Client{}, shared.NewValidationError("name", "is required")
	}
	if !validType(client.Type) {
		return Client{}, shared.NewValidationError("client_type", `must be "PP" or "PM"`)
	}
	return s.repo.Create(ctx, client)
}

func (s *Service) Update(ctx context.Context, id int64, patch Patch) error {
	if id <= 0 {
		return shared.NewValidationError("id", "must be positive")
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return shared.NewValidationError("name", "cannot be empty")
	}
	if patch.Type != nil && !validType(*patch.Type) {
		return shared.NewValidationError("client_type", `must be "PP" or "PM"`)
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
