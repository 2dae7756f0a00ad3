package kitchen

import (
	"context"

	"restaurant-floor/internal/common/logger"
	"restaurant-floor/internal/config"
	"restaurant-floor/internal/connections/database"
	"restaurant-floor/internal/connections/rabbitmq"
	kitchensvc "restaurant-floor/internal/microservices/kitchen"
)

type Config struct {
	WorkerName string
	Prefetch   int
}

// Run dials the broker and consumes kitchen tickets until ctx is done.
func Run(ctx context.Context, cfg Config, mq config.RabbitMQConfig, db *database.DB, lg *logger.Logger) error {
	client, err := rabbitmq.DialRetry(ctx, mq, lg)
	if err != nil {
		return err
	}
	defer client.Close()

	prefetch := cfg.Prefetch
	if prefetch <= 0 {
		prefetch = mq.Prefetch
	}
	lg.Info("service_started", map[string]any{"worker": cfg.WorkerName, "prefetch": prefetch})
	return kitchensvc.Run(ctx, db, client, cfg.WorkerName, prefetch, lg)
}
