package handlers

import (
	"net/http"

	"restaurant-floor/internal/common/httpx"
	"restaurant-floor/internal/common/logger"
	"restaurant-floor/internal/domain"
	"restaurant-floor/internal/microservices/order/service"
)

type OrderHandler struct {
	service service.OrderServiceInterface
	lg      *logger.Logger
}

func NewOrderHandler(s service.OrderServiceInterface, lg *logger.Logger) *OrderHandler {
	return &OrderHandler{service: s, lg: lg}
}

func (oh *OrderHandler) Routes(mux *http.ServeMux) {
	mux.HandleFunc("POST /orders", oh.AddOrder)
}

func (oh *OrderHandler) AddOrder(w http.ResponseWriter, r *http.Request) {
	var req domain.PlaceOrderRequest
	if err := httpx.DecodeJSON(r, "order.place", &req); err != nil {
		httpx.WriteError(w, r, oh.lg, err)
		return
	}

	resp, err := oh.service.PlaceOrder(r.Context(), req)
	if err != nil {
		httpx.WriteError(w, r, oh.lg, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, resp)
}
