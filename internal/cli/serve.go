package cli

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"restaurant-floor/internal/app/floor"
	"restaurant-floor/internal/common/telemetry"
	"restaurant-floor/internal/connections/database"
	"restaurant-floor/internal/connections/rabbitmq"
	"restaurant-floor/internal/microservices/order/service"
)

func serveCmd(f *rootFlags) *cobra.Command {
	var migrate bool

	c := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(f)
			if err != nil {
				return err
			}
			lg := newLogger("floor-service", cfg)

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			shutdown, err := telemetry.Setup(ctx, "floor-service", cfg.Telemetry.Endpoint)
			if err != nil {
				lg.Warn("telemetry_setup_failed", err, nil)
			}
			defer func() {
				sctx, scancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer scancel()
				_ = shutdown(sctx)
			}()

			db, err := database.Open(ctx, cfg.Database)
			if err != nil {
				lg.Error("db_connect_failed", err, nil)
				return err
			}
			defer db.Close()
			lg.Info("db_connected", map[string]any{"driver": cfg.Database.Driver})

			if migrate {
				n, err := db.Migrate(ctx)
				if err != nil {
					lg.Error("migration_failed", err, nil)
					return err
				}
				lg.Info("migrations_applied", map[string]any{"count": n})
			}

			var tickets service.TicketPublisher = service.NopTicketPublisher{}
			if cfg.RabbitMQ.Enabled {
				client, err := rabbitmq.DialRetry(ctx, cfg.RabbitMQ, lg)
				if err != nil {
					return err
				}
				defer client.Close()
				if err := client.DeclareTopology(); err != nil {
					lg.Error("rabbitmq_topology_failed", err, nil)
					return err
				}
				tickets = service.NewRabbitTicketPublisher(client)
			} else {
				lg.Info("kitchen_dispatch_disabled", nil)
			}

			return floor.Run(ctx, cfg.HTTP, floor.Deps{DB: db, Tickets: tickets, Logger: lg})
		},
	}

	c.Flags().BoolVar(&migrate, "migrate", false, "Apply pending migrations before serving")
	return c
}
