package floor

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"restaurant-floor/internal/common/httpx"
	"restaurant-floor/internal/common/logger"
	"restaurant-floor/internal/config"
	"restaurant-floor/internal/connections/database"
	"restaurant-floor/internal/microservices/check"
	"restaurant-floor/internal/microservices/order"
	orderservice "restaurant-floor/internal/microservices/order/service"
	"restaurant-floor/internal/microservices/tables"
	"restaurant-floor/internal/microservices/waitlist"
)

type Deps struct {
	DB      *database.DB
	Tickets orderservice.TicketPublisher
	Logger  *logger.Logger
	Now     func() time.Time
}

// NewHandler builds the full route table. Every route is served both at the
// root and under /api.
func NewHandler(d Deps) http.Handler {
	if d.Now == nil {
		d.Now = time.Now
	}
	lg := d.Logger

	mux := http.NewServeMux()
	waitlist.Mount(mux, d.DB, lg, d.Now)
	order.Mount(mux, d.DB, d.Tickets, lg.Named("order"), d.Now)
	check.Mount(mux, d.DB, lg)
	tables.Mount(mux, d.DB, lg)
	mux.HandleFunc("GET /healthz", health(d.DB))
	mux.HandleFunc("/", httpx.NotFound)

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", mux))
	root.Handle("/", mux)
	return httpx.WithRequestLog(lg, root)
}

func health(db *database.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			httpx.WriteProblem(w, http.StatusServiceUnavailable, "unavailable", "database is unreachable")
			return
		}
		httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func Run(ctx context.Context, cfg config.HTTPConfig, d Deps) error {
	srv := httpx.New(":"+strconv.Itoa(cfg.Port), NewHandler(d), httpx.Options{
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		ShutdownTimeout: cfg.ShutdownTimeout,
	})
	d.Logger.Info("service_started", map[string]any{"port": cfg.Port})
	return srv.Run(ctx)
}
