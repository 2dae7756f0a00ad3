package cli

import (
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"restaurant-floor/internal/app/kitchen"
	"restaurant-floor/internal/connections/database"
)

func kitchenCmd(f *rootFlags) *cobra.Command {
	var kc kitchen.Config

	c := &cobra.Command{
		Use:   "kitchen",
		Short: "Consume kitchen tickets from the broker",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(f)
			if err != nil {
				return err
			}
			if !cfg.RabbitMQ.Enabled {
				return errors.New("kitchen worker needs rabbitmq.enabled")
			}
			lg := newLogger("kitchen-worker", cfg)

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			db, err := database.Open(ctx, cfg.Database)
			if err != nil {
				lg.Error("db_connect_failed", err, nil)
				return err
			}
			defer db.Close()

			if err := kitchen.Run(ctx, kc, cfg.RabbitMQ, db, lg); err != nil {
				lg.Error("kitchen_stopped", err, nil)
				return err
			}
			return nil
		},
	}

	c.Flags().StringVar(&kc.WorkerName, "worker-name", "kitchen-1", "Unique consumer name")
	c.Flags().IntVar(&kc.Prefetch, "prefetch", 0, "Broker prefetch (defaults to rabbitmq.prefetch)")
	return c
}
