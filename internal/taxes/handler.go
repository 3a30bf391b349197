package taxes

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rentier-erp/rentier-erp/internal/shared"
)

type Handler struct {
	logger  *slog.Logger
	service *Service
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.computeAll)
	r.Get("/{ownerID}", h.compute)
}

func yearParam(r *http.Request) (int, bool) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	return year, err == nil && year > 0
}

func (h *Handler) compute(w http.ResponseWriter, r *http.Request) {
	ownerID, err := strconv.ParseInt(chi.URLParam(r, "ownerID"), 10, 64)
	if err != nil {
		http.Error(w, "invalid owner ID", http.StatusBadRequest)
		return
	}
	year, ok := yearParam(r)
	if !ok {
		http.Error(w, "year is required", http.StatusBadRequest)
		return
	}
	result, err := h.service.Compute(r.Context(), ownerID, year)
	if err != nil {
		shared.RespondError(w, h.logger, err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) computeAll(w http.ResponseWriter, r *http.Request) {
	year, ok := yearParam(r)
	if !ok {
		http.Error(w, "year is required", http.StatusBadRequest)
		return
	}
	results, err := h.service.ComputeAll(r.Context(), year)
	if err != nil {
		shared.RespondError(w, h.logger, err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, results)
}
