package service

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"restaurant-floor/internal/common/apperr"
	"restaurant-floor/internal/common/logger"
	"restaurant-floor/internal/common/telemetry"
	"restaurant-floor/internal/common/validate"
	"restaurant-floor/internal/domain"
	"restaurant-floor/internal/microservices/check/repository"
)

type CheckServiceInterface interface {
	ListOpenChecks(ctx context.Context) ([]domain.Check, error)
	GetCheckItems(ctx context.Context, checkID string) ([]domain.CheckItem, error)
	GetCheckSummary(ctx context.Context, checkID string) ([]domain.CheckItemGroup, error)
}

type CheckService struct {
	db repository.CheckRepositoryInterface
	lg *logger.Logger
}

func NewCheckService(db repository.CheckRepositoryInterface, lg *logger.Logger) *CheckService {
	return &CheckService{db: db, lg: lg}
}

func (s *CheckService) ListOpenChecks(ctx context.Context) (out []domain.Check, err error) {
	const op = "check.list_open"
	ctx, span := telemetry.Start(ctx, op)
	defer func() { telemetry.End(span, err) }()

	out, err = s.db.ListOpen(ctx)
	if err != nil {
		return nil, apperr.Internal(op, err)
	}
	return out, nil
}

func (s *CheckService) GetCheckItems(ctx context.Context, checkID string) (out []domain.CheckItem, err error) {
	const op = "check.items"
	ctx, span := telemetry.Start(ctx, op)
	defer func() { telemetry.End(span, err) }()

	return s.items(ctx, op, checkID)
}

// GetCheckSummary groups the check's lines by menu item, keeping the order
// in which each item first appears.
func (s *CheckService) GetCheckSummary(ctx context.Context, checkID string) (out []domain.CheckItemGroup, err error) {
	const op = "check.summary"
	ctx, span := telemetry.Start(ctx, op)
	defer func() { telemetry.End(span, err) }()

	items, err := s.items(ctx, op, checkID)
	if err != nil {
		return nil, err
	}
	return GroupByItem(items), nil
}

func (s *CheckService) items(ctx context.Context, op, checkID string) ([]domain.CheckItem, error) {
	id, err := validate.ParseID(op, "checkId", checkID)
	if err != nil {
		return nil, err
	}
	trace.SpanFromContext(ctx).SetAttributes(attribute.Int64("check_id", id))

	ok, err := s.db.Exists(ctx, id)
	if err != nil {
		return nil, apperr.Internal(op, err)
	}
	if !ok {
		return nil, apperr.NotFound(op, "checkId is invalid: number not in DB")
	}

	items, err := s.db.Items(ctx, id)
	if err != nil {
		return nil, apperr.Internal(op, err)
	}
	s.lg.WithContext(ctx).Debug("check_items_loaded", map[string]any{"check_id": id, "lines": len(items)})
	return items, nil
}

func GroupByItem(items []domain.CheckItem) []domain.CheckItemGroup {
	out := make([]domain.CheckItemGroup, 0)
	index := make(map[int64]int)
	for _, it := range items {
		i, ok := index[it.ItemID]
		if !ok {
			i = len(out)
			index[it.ItemID] = i
			out = append(out, domain.CheckItemGroup{
				ItemID:    it.ItemID,
				Name:      it.Name,
				SalePrice: it.SalePrice,
				ImageURL:  it.ImageURL,
			})
		}
		g := &out[i]
		g.Quantity += it.Quantity
		g.Discount = g.Discount.Add(it.Discount)
		g.Total = g.Total.Add(it.LineTotal)
	}
	return out
}
