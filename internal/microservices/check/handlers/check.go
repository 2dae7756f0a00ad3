package handlers

import (
	"net/http"

	"restaurant-floor/internal/common/apperr"
	"restaurant-floor/internal/common/httpx"
	"restaurant-floor/internal/common/logger"
	"restaurant-floor/internal/microservices/check/service"
)

type CheckHandler struct {
	service service.CheckServiceInterface
	lg      *logger.Logger
}

func NewCheckHandler(s service.CheckServiceInterface, lg *logger.Logger) *CheckHandler {
	return &CheckHandler{service: s, lg: lg}
}

func (h *CheckHandler) Routes(mux *http.ServeMux) {
	mux.HandleFunc("GET /checks", h.ListOpen)
	mux.HandleFunc("GET /checks/{checkId}", h.Items)
}

func (h *CheckHandler) ListOpen(w http.ResponseWriter, r *http.Request) {
	checks, err := h.service.ListOpenChecks(r.Context())
	if err != nil {
		httpx.WriteError(w, r, h.lg, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, checks)
}

// Items serves the billed lines of a check. ?group=item folds them per menu
// item.
func (h *CheckHandler) Items(w http.ResponseWriter, r *http.Request) {
	checkID := r.PathValue("checkId")
	switch r.URL.Query().Get("group") {
	case "":
		items, err := h.service.GetCheckItems(r.Context(), checkID)
		if err != nil {
			httpx.WriteError(w, r, h.lg, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, items)
	case "item":
		groups, err := h.service.GetCheckSummary(r.Context(), checkID)
		if err != nil {
			httpx.WriteError(w, r, h.lg, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, groups)
	default:
		httpx.WriteError(w, r, h.lg, apperr.Validation("check.items", "group", "group must be empty or \"item\""))
	}
}
