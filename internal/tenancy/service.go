package tenancy

import (
	"context"
	"time"

	"github.com/rentier-erp/rentier-erp/internal/shared"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateInput is a new lease. RentAmount is the monthly nominal and is
// never defaulted; a zero amount is a validation failure, not free rent.
type CreateInput struct {
	UnitID       int64
	ClientID     int64
	OwnerID      *int64
	SharePercent float64
	Start        time.Time
	End          *time.Time
	RentAmount   float64
	RasIR        bool
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Assignment, error) {
	if in.RentAmount <= 0 {
		return Assignment{}, shared.NewValidationError("rent_amount", "must be positive")
	}
	if in.Start.IsZero() {
		return Assignment{}, shared.NewValidationError("lease_start", "is required")
	}
	if in.End != nil && in.End.Before(in.Start) {
		return Assignment{}, shared.NewValidationError("lease_end", "must not precede lease_start")
	}
	if in.SharePercent < 0 || in.SharePercent > 100 {
		return Assignment{}, shared.NewValidationError("share_percent", "must be in [0, 100]")
	}
	if ok, err := s.repo.UnitExists(ctx, in.UnitID); err != nil {
		return Assignment{}, err
	} else if !ok {
		return Assignment{}, shared.NewNotFoundError("unit", in.UnitID)
	}
	if ok, err := s.repo.ClientExists(ctx, in.ClientID); err != nil {
		return Assignment{}, err
	} else if !ok {
		return Assignment{}, shared.NewNotFoundError("client", in.ClientID)
	}
	if in.OwnerID != nil {
		if ok, err := s.repo.OwnerExists(ctx, *in.OwnerID); err != nil {
			return Assignment{}, err
		} else if !ok {
			return Assignment{}, shared.NewNotFoundError("owner", *in.OwnerID)
		}
	}

	return s.repo.Create(ctx, Assignment{
		UnitID:       in.UnitID,
		ClientID:     in.ClientID,
		OwnerID:      in.OwnerID,
		SharePercent: in.SharePercent,
		Start:        in.Start,
		End:          in.End,
		RentAmount:   in.RentAmount,
		RasIR:        in.RasIR,
	})
}

func (s *Service) Update(ctx context.Context, id int64, patch Patch) error {
	if id <= 0 {
		return shared.NewValidationError("id", "must be positive")
	}
	if patch.RentAmount != nil && *patch.RentAmount <= 0 {
		return shared.NewValidationError("rent_amount", "must be positive")
	}
	if patch.SharePercent != nil && (*patch.SharePercent < 0 || *patch.SharePercent > 100) {
		return shared.NewValidationError("share_percent", "must be in [0, 100]")
	}
	if patch == (Patch{}) {
		return nil
	}

	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	merged := current
	if patch.UnitID != nil {
		if ok, err := s.repo.UnitExists(ctx, *patch.UnitID); err != nil {
			return err
		} else if !ok {
			return shared.NewNotFoundError("unit", *patch.UnitID)
		}
		merged.UnitID = *patch.UnitID
	}
	if patch.ClientID != nil {
		if ok, err := s.repo.ClientExists(ctx, *patch.ClientID); err != nil {
			return err
		} else if !ok {
			return shared.NewNotFoundError("client", *patch.ClientID)
		}
		merged.ClientID = *patch.ClientID
	}
	if patch.OwnerID != nil {
		if ok, err := s.repo.OwnerExists(ctx, *patch.OwnerID); err != nil {
			return err
		} else if !ok {
			return shared.NewNotFoundError("owner", *patch.OwnerID)
		}
		merged.OwnerID = patch.OwnerID
	}
	if patch.SharePercent != nil {
		merged.SharePercent = *patch.SharePercent
	}
	if patch.Start != nil {
		merged.Start = *patch.Start
	}
	if patch.ClearEnd {
		merged.End = nil
	} else if patch.End != nil {
		merged.End = patch.End
	}
	if patch.RentAmount != nil {
		merged.RentAmount = *patch.RentAmount
	}
	if patch.RasIR != nil {
		merged.RasIR = *patch.RasIR
	}
	if merged.End != nil && merged.End.Before(merged.Start) {
		return shared.NewValidationError("lease_end", "must not precede lease_start")
	}

	return s.repo.Update(ctx, id, merged, patch)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return shared.NewValidationError("id", "must be positive")
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) Get(ctx context.Context, id int64) (Assignment, error) {
	if id <= 0 {
		return Assignment{}, shared.NewValidationError("id", "must be positive")
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Assignment, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListWithNames(ctx context.Context) ([]AssignmentWithNames, error) {
	return s.repo.ListWithNames(ctx)
}
