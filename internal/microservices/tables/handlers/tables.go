package handlers

import (
	"net/http"

	"restaurant-floor/internal/common/apperr"
	"restaurant-floor/internal/common/httpx"
	"restaurant-floor/internal/common/logger"
	"restaurant-floor/internal/microservices/tables/repository"
)

// TablesHandler serves the floor plan. There are no rules to apply, so it
// reads the repository directly.
type TablesHandler struct {
	repo repository.TablesRepositoryInterface
	lg   *logger.Logger
}

func NewTablesHandler(repo repository.TablesRepositoryInterface, lg *logger.Logger) *TablesHandler {
	return &TablesHandler{repo: repo, lg: lg}
}

func (h *TablesHandler) Routes(mux *http.ServeMux) {
	mux.HandleFunc("GET /restaurant", h.List)
}

func (h *TablesHandler) List(w http.ResponseWriter, r *http.Request) {
	tables, err := h.repo.List(r.Context())
	if err != nil {
		httpx.WriteError(w, r, h.lg, apperr.Internal("tables.list", err))
		return
	}
	httpx.WriteJSON(w, http.StatusOK, tables)
}
