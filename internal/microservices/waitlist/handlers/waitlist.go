package handlers

import (
	"net/http"

	"restaurant-floor/internal/common/httpx"
	"restaurant-floor/internal/common/logger"
	"restaurant-floor/internal/domain"
	"restaurant-floor/internal/microservices/waitlist/service"
)

type WaitlistHandler struct {
	service service.WaitlistServiceInterface
	lg      *logger.Logger
}

func NewWaitlistHandler(s service.WaitlistServiceInterface, lg *logger.Logger) *WaitlistHandler {
	return &WaitlistHandler{service: s, lg: lg}
}

func (h *WaitlistHandler) Routes(mux *http.ServeMux) {
	mux.HandleFunc("GET /waitlist", h.List)
	mux.HandleFunc("POST /waitlist", h.Register)
	mux.HandleFunc("PATCH /waitlist/{waitId}", h.Seat)
}

func (h *WaitlistHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.ListQueue(r.Context())
	if err != nil {
		httpx.WriteError(w, r, h.lg, err)
		return
	}
	now := h.service.Now()
	views := make([]domain.WaitListEntryView, 0, len(entries))
	for _, e := range entries {
		views = append(views, service.View(e, now))
	}
	httpx.WriteJSON(w, http.StatusOK, views)
}

func (h *WaitlistHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterPartyRequest
	if err := httpx.DecodeJSON(r, "waitlist.register", &req); err != nil {
		httpx.WriteError(w, r, h.lg, err)
		return
	}
	e, err := h.service.RegisterParty(r.Context(), req)
	if err != nil {
		httpx.WriteError(w, r, h.lg, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, e)
}

func (h *WaitlistHandler) Seat(w http.ResponseWriter, r *http.Request) {
	e, err := h.service.SeatParty(r.Context(), r.PathValue("waitId"))
	if err != nil {
		httpx.WriteError(w, r, h.lg, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, e)
}
