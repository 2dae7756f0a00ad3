package kitchen

import (
	"context"

	"restaurant-floor/internal/common/logger"
	"restaurant-floor/internal/connections/database"
	"restaurant-floor/internal/connections/rabbitmq"
	"restaurant-floor/internal/microservices/kitchen/repository"
	"restaurant-floor/internal/microservices/kitchen/service"
)

func Run(ctx context.Context, db *database.DB, rmqClient *rabbitmq.Client, workerName string, prefetch int, lg *logger.Logger) error {
	repo := repository.NewKitchenRepository(db)
	svc := service.NewKitchenService(repo, rmqClient, lg, workerName, prefetch)
	return svc.Run(ctx)
}
