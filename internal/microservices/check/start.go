package check

import (
	"net/http"

	"restaurant-floor/internal/common/logger"
	"restaurant-floor/internal/connections/database"
	"restaurant-floor/internal/microservices/check/handlers"
	"restaurant-floor/internal/microservices/check/repository"
	"restaurant-floor/internal/microservices/check/service"
)

func Mount(mux *http.ServeMux, db *database.DB, lg *logger.Logger) {
	repo := repository.NewCheckRepository(db)
	svc := service.NewCheckService(repo, lg.Named("check"))
	handlers.NewCheckHandler(svc, lg).Routes(mux)
}
