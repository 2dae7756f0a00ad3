package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"restaurant-floor/internal/common/logger"
	"restaurant-floor/internal/connections/database/dbtest"
	"restaurant-floor/internal/domain"
	"restaurant-floor/internal/microservices/tables/repository"
)

func TestListTables(t *testing.T) {
	db := dbtest.Open(t)
	dbtest.SeedMenu(t, db)
	dbtest.Exec(t, db, "INSERT INTO dining_tables (table_id, label, seats) VALUES (?, ?, ?)", 1, "Patio 1", 2)

	mux := http.NewServeMux()
	NewTablesHandler(repository.NewTablesRepository(db), logger.NewWithWriter("test", io.Discard, "info")).Routes(mux)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/restaurant", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var tables []domain.Table
	if err := json.Unmarshal(rec.Body.Bytes(), &tables); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(tables) != 2 || tables[0].TableID != 1 || tables[0].Seats != 2 || tables[1].Label != "T3" {
		t.Fatalf("tables = %+v", tables)
	}
}
