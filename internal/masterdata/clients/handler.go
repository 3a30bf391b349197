package clients

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

type createClientRequest struct {
	Name    string `json:"name" validate:"required"`
	Type    string `json:"client_type" validate:"required,oneof=PP PM"`
	Phone   string `json:"phone"`
	LegalID string `json:"legal_id"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	out, err := h.service.List(r.Context())
	if err != nil {
		shared.RespondError(w, h.logger, err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, out)
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid client ID", http.StatusBadRequest)
		return
	}
	client, err := h.service.Get(r.Context(), id)
	if err != nil {
		shared.RespondError(w, h.logger, err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, client)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		shared.RespondError(w, h.logger, shared.NewValidationError("body", err.Error()))
		return
	}
	client, err := h.service.Create(r.Context(), Client{
		Name:    req.Name,
		Type:    ClientType(req.Type),
		Phone:   req.Phone,
		LegalID: req.LegalID,
	})
	if err != nil {
		shared.RespondError(w, h.logger, err)
		return
	}
	shared.RespondJSON(w, http.StatusCreated, client)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid client ID", http.StatusBadRequest)
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
		http.Error(w, "invalid client ID", http.StatusBadRequest)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		shared.RespondError(w, h.logger, err)
		return
	}
	shared.RespondJSON(w, http.StatusNoContent, nil)
}
