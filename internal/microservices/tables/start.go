package tables

import (
	"net/http"

	"restaurant-floor/internal/common/logger"
	"restaurant-floor/internal/connections/database"
	"restaurant-floor/internal/microservices/tables/handlers"
	"restaurant-floor/internal/microservices/tables/repository"
)

func Mount(mux *http.ServeMux, db *database.DB, lg *logger.Logger) {
	handlers.NewTablesHandler(repository.NewTablesRepository(db), lg).Routes(mux)
}
