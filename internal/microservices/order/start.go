package order

import (
	"net/http"
	"time"

	"restaurant-floor/internal/common/logger"
	"restaurant-floor/internal/connections/database"
	"restaurant-floor/internal/microservices/order/handlers"
	"restaurant-floor/internal/microservices/order/repository"
	"restaurant-floor/internal/microservices/order/service"
)

// Mount wires repository, service and handler and registers POST /orders.
func Mount(mux *http.ServeMux, db *database.DB, tickets service.TicketPublisher, lg *logger.Logger, now func() time.Time) {
	repo := repository.NewOrderRepository(db)
	svc := service.NewOrderService(repo, tickets, lg, now)
	handlers.NewOrderHandler(svc, lg).Routes(mux)
}
