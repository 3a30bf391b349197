package tenancy

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/rentier-erp/rentier-erp/internal/shared"
)

type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.show)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

// Dates travel as YYYY-MM-DD strings.
type createAssignmentRequest struct {
	UnitID       int64   `json:"unit_id" validate:"required,gt=0"`
	ClientID     int64   `json:"client_id" validate:"required,gt=0"`
	OwnerID      *int64  `json:"owner_id" validate:"omitempty,gt=0"`
	SharePercent float64 `json:"share_percent" validate:"gte=0,lte=100"`
	Start        string  `json:"lease_start" validate:"required,datetime=2006-01-02"`
	End          string  `json:"lease_end" validate:"omitempty,datetime=2006-01-02"`
	RentAmount   float64 `json:"rent_amount" validate:"required,gt=0"`
	RasIR        bool    `json:"ras_ir"`
}

type updateAssignmentRequest struct {
	UnitID       *int64   `json:"unit_id" validate:"omitempty,gt=0"`
	ClientID     *int64   `json:"client_id" validate:"omitempty,gt=0"`
	OwnerID      *int64   `json:"owner_id" validate:"omitempty,gt=0"`
	SharePercent *float64 `json:"share_percent" validate:"omitempty,gte=0,lte=100"`
	Start        *string  `json:"lease_start" validate:"omitempty,datetime=2006-01-02"`
	End          *string  `json:"lease_end" validate:"omitempty,datetime=2006-01-02"`
	ClearEnd     bool     `json:"clear_end"`
	RentAmount   *float64 `json:"rent_amount" validate:"omitempty,gt=0"`
	RasIR        *bool    `json:"ras_ir"`
}

func parseDate(s string) time.Time {
	t, _ := time.Parse(time.DateOnly, s)
	return t
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	out, err := h.service.ListWithNames(r.Context())
	if err != nil {
		shared.RespondError(w, h.logger, err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, out)
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid assignment ID", http.StatusBadRequest)
		return
	}
	a, err := h.service.Get(r.Context(), id)
	if err != nil {
		shared.RespondError(w, h.logger, err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, a)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createAssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		shared.RespondError(w, h.logger, shared.NewValidationError("body", err.Error()))
		return
	}
	in := CreateInput{
		UnitID:       req.UnitID,
		ClientID:     req.ClientID,
		OwnerID:      req.OwnerID,
		SharePercent: req.SharePercent,
		Start:        parseDate(req.Start),
		RentAmount:   req.RentAmount,
		RasIR:        req.RasIR,
	}
	if req.End != "" {
		end := parseDate(req.End)
		in.End = &end
	}
	a, err := h.service.Create(r.Context(), in)
	if err != nil {
		shared.RespondError(w, h.logger, err)
		return
	}
	shared.RespondJSON(w, http.StatusCreated, a)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid assignment ID", http.StatusBadRequest)
		return
	}
	var req updateAssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		shared.RespondError(w, h.logger, shared.NewValidationError("body", err.Error()))
		return
	}
	patch := Patch{
		UnitID:       req.UnitID,
		ClientID:     req.ClientID,
		OwnerID:      req.OwnerID,
		SharePercent: req.SharePercent,
		ClearEnd:     req.ClearEnd,
		RentAmount:   req.RentAmount,
		RasIR:        req.RasIR,
	}
	if req.Start != nil {
		start := parseDate(*req.Start)
		patch.Start = &start
	}
	if req.End != nil {
		end := parseDate(*req.End)
		patch.End = &end
	}
	if err := h.service.Update(r.Context(), id, patch); err != nil {
		shared.RespondError(w, h.logger, err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, nil)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid assignment ID", http.StatusBadRequest)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		shared.RespondError(w, h.logger, err)
		return
	}
	shared.RespondJSON(w, http.StatusNoContent, nil)
}
