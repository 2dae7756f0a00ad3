package waitlist

import (
	"net/http"
	"time"

	"restaurant-floor/internal/common/logger"
	"restaurant-floor/internal/connections/database"
	"restaurant-floor/internal/microservices/waitlist/handlers"
	"restaurant-floor/internal/microservices/waitlist/repository"
	"restaurant-floor/internal/microservices/waitlist/service"
)

func Mount(mux *http.ServeMux, db *database.DB, lg *logger.Logger, now func() time.Time) {
	repo := repository.NewWaitlistRepository(db)
	svc := service.NewWaitlistService(repo, lg.Named("waitlist"), now)
	handlers.NewWaitlistHandler(svc, lg).Routes(mux)
}
