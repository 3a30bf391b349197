package billing

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/rentier-erp/rentier-erp/internal/shared"
)

// CacheInvalidator is bumped after every successful receipt write so
// cached reports stop serving stale figures.
type CacheInvalidator interface {
	Bump(ctx context.Context) error
}

type Handler struct {
	logger      *slog.Logger
	service     *Service
	validate    *validator.Validate
	invalidator CacheInvalidator
}

// NewHandler wires the billing routes. invalidator may be nil when no
// report cache is configured.
func NewHandler(logger *slog.Logger, service *Service, invalidator CacheInvalidator) *Handler {
	return &Handler{
		logger:      logger,
		service:     service,
		validate:    validator.New(),
		invalidator: invalidator,
	}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/", h.create)
	r.Post("/preview", h.preview)
	r.Get("/entries", h.entries)
}

type createReceiptRequest struct {
	AssignmentID int64   `json:"assignment_id" validate:"required,gt=0"`
	Period       string  `json:"period" validate:"required,datetime=2006-01-02"`
	IssueDate    string  `json:"issue_date" validate:"omitempty,datetime=2006-01-02"`
	TotalAmount  float64 `json:"total_amount" validate:"required,gt=0"`
	BaseLabel    string  `json:"base_label"`
}

type previewRequest struct {
	AssignmentID int64   `json:"assignment_id" validate:"required,gt=0"`
	Period       string  `json:"period" validate:"required,datetime=2006-01-02"`
	TotalAmount  float64 `json:"total_amount" validate:"required,gt=0"`
}

func parseDate(s string) time.Time {
	t, _ := time.Parse(time.DateOnly, s)
	return t
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createReceiptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		shared.RespondError(w, h.logger, shared.NewValidationError("body", err.Error()))
		return
	}
	in := CreateReceiptInput{
		AssignmentID: req.AssignmentID,
		Period:       parseDate(req.Period),
		TotalAmount:  req.TotalAmount,
		BaseLabel:    req.BaseLabel,
	}
	if req.IssueDate != "" {
		in.IssueDate = parseDate(req.IssueDate)
	}
	result, err := h.service.CreateReceipt(r.Context(), in)
	if err != nil {
		shared.RespondError(w, h.logger, err)
		return
	}
	if h.invalidator != nil {
		if err := h.invalidator.Bump(r.Context()); err != nil {
			h.logger.Warn("report cache bump failed", "error", err)
		}
	}
	shared.RespondJSON(w, http.StatusCreated, result)
}

func (h *Handler) preview(w http.ResponseWriter, r *http.Request) {
	var req previewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		shared.RespondError(w, h.logger, shared.NewValidationError("body", err.Error()))
		return
	}
	split, err := h.service.ComputeSplit(r.Context(), req.AssignmentID, parseDate(req.Period), req.TotalAmount)
	if err != nil {
		shared.RespondError(w, h.logger, err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, split)
}

func (h *Handler) entries(w http.ResponseWriter, r *http.Request) {
	out, err := h.service.ListEntriesWithNames(r.Context())
	if err != nil {
		shared.RespondError(w, h.logger, err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, out)
}
