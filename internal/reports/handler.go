package reports

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

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
	r.Get("/receipts", h.receipts)
	r.Get("/taxes", h.taxes)
}

// variant picks the shape within a family; defaults to detailed.
func variantKind(family, variant string) (Kind, bool) {
	switch family + "/" + variant {
	case "receipts/", "receipts/detailed":
		return ReceiptsDetailed, true
	case "receipts/by_owner":
		return ReceiptsByOwner, true
	case "receipts/minimal":
		return ReceiptsMinimal, true
	case "taxes/", "taxes/detailed":
		return TaxesDetailed, true
	case "taxes/by_assignment":
		return TaxesByAssignment, true
	case "taxes/minimal":
		return TaxesMinimal, true
	}
	return "", false
}

func (h *Handler) receipts(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "receipts")
}

func (h *Handler) taxes(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "taxes")
}

func (h *Handler) serve(w http.ResponseWriter, r *http.Request, family string) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		http.Error(w, "year is required", http.StatusBadRequest)
		return
	}
	kind, ok := variantKind(family, r.URL.Query().Get("variant"))
	if !ok {
		http.Error(w, "unknown report variant", http.StatusBadRequest)
		return
	}
	var ownerID int64
	if raw := r.URL.Query().Get("owner_id"); raw != "" {
		ownerID, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			http.Error(w, "invalid owner_id", http.StatusBadRequest)
			return
		}
	}

	report, err := h.service.Get(r.Context(), kind, year, ownerID)
	if err != nil {
		shared.RespondError(w, h.logger, err)
		return
	}

	if wantsCSV(r) {
		text, err := WriteCSV("-", report)
		if err != nil {
			shared.RespondError(w, h.logger, err)
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition",
			`attachment; filename="`+string(kind)+"_"+strconv.Itoa(year)+`.csv"`)
		_, _ = w.Write([]byte(text))
		return
	}
	shared.RespondJSON(w, http.StatusOK, report)
}

func wantsCSV(r *http.Request) bool {
	if r.URL.Query().Get("format") == "csv" {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "text/csv")
}
