package ownership

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

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

type createOwnershipRequest struct {
	UnitID       int64   `json:"unit_id" validate:"required,gt=0"`
	OwnerID      int64   `json:"owner_id" validate:"required,gt=0"`
	SharePercent float64 `json:"share_percent" validate:"required,gt=0,lte=100"`
	Alternation  string  `json:"alternation" validate:"omitempty,oneof=none odd even"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	var unitID int64
	if raw := r.URL.Query().Get("unit_id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			http.Error(w, "invalid unit_id filter", http.StatusBadRequest)
			return
		}
		unitID = parsed
	}
	out, err := h.service.ListWithNames(r.Context(), unitID)
	if err != nil {
		shared.RespondError(w, h.logger, err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, out)
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid ownership ID", http.StatusBadRequest)
		return
	}
	o, err := h.service.Get(r.Context(), id)
	if err != nil {
		shared.RespondError(w, h.logger, err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, o)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createOwnershipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		shared.RespondError(w, h.logger, shared.NewValidationError("body", err.Error()))
		return
	}
	o, err := h.service.Create(r.Context(), CreateInput{
		UnitID:       req.UnitID,
		OwnerID:      req.OwnerID,
		SharePercent: req.SharePercent,
		Alternation:  Alternation(req.Alternation),
	})
	if err != nil {
		shared.RespondError(w, h.logger, err)
		return
	}
	shared.RespondJSON(w, http.StatusCreated, o)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid ownership ID", http.StatusBadRequest)
		return
	}
	var patch Patch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
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
		http.Error(w, "invalid ownership ID", http.StatusBadRequest)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		shared.RespondError(w, h.logger, err)
		return
	}
	shared.RespondJSON(w, http.StatusNoContent, nil)
}
