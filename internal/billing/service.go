package billing

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/rentier-erp/rentier-erp/internal/shared"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ComputeSplit previews the per-owner allocation of totalAmount for an
// assignment's unit in the given billing period. No writes.
func (s *Service) ComputeSplit(ctx context.Context, assignmentID int64, period time.Time, totalAmount float64) ([]SplitEntry, error) {
	if totalAmount <= 0 {
		return nil, shared.NewValidationError("total_amount", "must be positive")
	}
	if period.IsZero() {
		return nil, shared.NewValidationError("period", "is required")
	}

	assignment, err := s.repo.GetAssignment(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	shares, err := s.repo.ListOwnershipsForUnit(ctx, assignment.UnitID)
	if err != nil {
		return nil, err
	}
	if len(shares) == 0 {
		return nil, shared.NewValidationError("assignment", "unit has no ownerships")
	}
	applicable := applicableShares(shares, shared.PeriodParity(period))
	if len(applicable) == 0 {
		return nil, shared.NewValidationError("period", "no ownership applies to this period")
	}
	return splitAmounts(totalAmount, applicable), nil
}

// CreateReceiptInput describes one receipt issuance. A zero TotalAmount
// is rejected, never defaulted from the rent. IssueDate defaults to
// today.
type CreateReceiptInput struct {
	AssignmentID int64
	Period       time.Time
	IssueDate    time.Time
	TotalAmount  float64
	BaseLabel    string
}

// CreateReceiptResult carries the written receipt and its ledger batch.
type CreateReceiptResult struct {
	Receipt Receipt           `json:"receipt"`
	Entries []ReceiptLogEntry `json:"entries"`
}

func (s *Service) CreateReceipt(ctx context.Context, in CreateReceiptInput) (CreateReceiptResult, error) {
	if in.TotalAmount <= 0 {
		return CreateReceiptResult{}, shared.NewValidationError("total_amount", "must be positive")
	}
	if in.Period.IsZero() {
		return CreateReceiptResult{}, shared.NewValidationError("period", "is required")
	}
	if in.IssueDate.IsZero() {
		in.IssueDate = time.Now().UTC().Truncate(24 * time.Hour)
	}

	assignment, err := s.repo.GetAssignment(ctx, in.AssignmentID)
	if err != nil {
		return CreateReceiptResult{}, err
	}
	shares, err := s.repo.ListOwnershipsForUnit(ctx, assignment.UnitID)
	if err != nil {
		return CreateReceiptResult{}, err
	}
	if len(shares) == 0 {
		return CreateReceiptResult{}, shared.NewValidationError("assignment", "unit has no ownerships")
	}
	applicable := applicableShares(shares, shared.PeriodParity(in.Period))
	if len(applicable) == 0 {
		return CreateReceiptResult{}, shared.NewValidationError("period", "no ownership applies to this period")
	}

	split := splitAmounts(in.TotalAmount, applicable)
	entries := make([]ReceiptLogEntry, 0, len(split))
	for _, line := range split {
		entries = append(entries, ReceiptLogEntry{
			UID:          uuid.New(),
			AssignmentID: in.AssignmentID,
			OwnerID:      line.OwnerID,
			ClientID:     assignment.ClientID,
			Period:       in.Period,
			IssueDate:    in.IssueDate,
			Amount:       line.Amount,
		})
	}

	receipt, written, err := s.repo.CreateReceipt(ctx, Receipt{
		AssignmentID: in.AssignmentID,
		BaseLabel:    in.BaseLabel,
	}, entries)
	if err != nil {
		return CreateReceiptResult{}, err
	}
	return CreateReceiptResult{Receipt: receipt, Entries: written}, nil
}

func (s *Service) ListEntriesWithNames(ctx context.Context) ([]EntryWithNames, error) {
	return s.repo.ListEntriesWithNames(ctx)
}
