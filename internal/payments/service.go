package payments

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/rentier-erp/rentier-erp/internal/shared"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// RecordInput is one received amount. ReceivedAt defaults to today.
type RecordInput struct {
	EntryUID       uuid.UUID
	AmountReceived float64
	ReceivedAt     time.Time
	Note           string
}

func (s *Service) Record(ctx context.Context, in RecordInput) (Payment, error) {
	if in.EntryUID == uuid.Nil {
		return Payment{}, shared.NewValidationError("entry_uid", "is required")
	}
	if in.AmountReceived <= 0 {
		return Payment{}, shared.NewValidationError("amount_received", "must be positive")
	}
	if in.ReceivedAt.IsZero() {
		in.ReceivedAt = s.now().UTC().Truncate(24 * time.Hour)
	}

	exists, err := s.repo.EntryExists(ctx, in.EntryUID)
	if err != nil {
		return Payment{}, err
	}
	if !exists {
		return Payment{}, shared.NewNotFoundError("receipt entry", in.EntryUID)
	}

	return s.repo.Create(ctx, Payment{
		EntryUID:       in.EntryUID,
		AmountReceived: in.AmountReceived,
		ReceivedAt:     in.ReceivedAt,
		Note:           in.Note,
	})
}

func (s *Service) SumReceivedForOwnerYear(ctx context.Context, ownerID int64, year int) (float64, error) {
	if ownerID <= 0 {
		return 0, shared.NewValidationError("owner_id", "must be positive")
	}
	return s.repo.SumReceivedForOwnerYear(ctx, ownerID, year)
}

func (s *Service) ListForOwnerYear(ctx context.Context, ownerID int64, year int) ([]Payment, error) {
	if ownerID <= 0 {
		return nil, shared.NewValidationError("owner_id", "must be positive")
	}
	return s.repo.ListForOwnerYear(ctx, ownerID, year)
}
