package payments

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/rentier-erp/rentier-erp/internal/shared"
)

// CacheInvalidator is bumped after every successful payment write so
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

func NewHandler(logger *slog.Logger, service *Service, invalidator CacheInvalidator) *Handler {
	return &Handler{
		logger:      logger,
		service:     service,
		validate:    validator.New(),
		invalidator: invalidator,
	}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/", h.record)
	r.Get("/", h.list)
}

type recordPaymentRequest struct {
	EntryUID       string  `json:"entry_uid" validate:"required,uuid4"`
	AmountReceived float64 `json:"amount_received" validate:"required,gt=0"`
	ReceivedAt     string  `json:"received_at" validate:"omitempty,datetime=2006-01-02"`
	Note           string  `json:"note"`
}

func (h *Handler) record(w http.ResponseWriter, r *http.Request) {
	var req recordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		shared.RespondError(w, h.logger, shared.NewValidationError("body", err.Error()))
		return
	}
	uid, err := uuid.Parse(req.EntryUID)
	if err != nil {
		shared.RespondError(w, h.logger, shared.NewValidationError("entry_uid", "must be a UUID"))
		return
	}
	in := RecordInput{
		EntryUID:       uid,
		AmountReceived: req.AmountReceived,
		Note:           req.Note,
	}
	if req.ReceivedAt != "" {
		in.ReceivedAt, _ = time.Parse(time.DateOnly, req.ReceivedAt)
	}
	payment, err := h.service.Record(r.Context(), in)
	if err != nil {
		shared.RespondError(w, h.logger, err)
		return
	}
	if h.invalidator != nil {
		if err := h.invalidator.Bump(r.Context()); err != nil {
			h.logger.Warn("report cache bump failed", "error", err)
		}
	}
	shared.RespondJSON(w, http.StatusCreated, payment)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	ownerID, err := strconv.ParseInt(r.URL.Query().Get("owner_id"), 10, 64)
	if err != nil {
		http.Error(w, "owner_id is required", http.StatusBadRequest)
		return
	}
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		http.Error(w, "year is required", http.StatusBadRequest)
		return
	}
	out, err := h.service.ListForOwnerYear(r.Context(), ownerID, year)
	if err != nil {
		shared.RespondError(w, h.logger, err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, out)
}
