package service

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"restaurant-floor/internal/common/apperr"
	"restaurant-floor/internal/common/logger"
	"restaurant-floor/internal/common/telemetry"
	"restaurant-floor/internal/common/validate"
	"restaurant-floor/internal/connections/database"
	"restaurant-floor/internal/domain"
	"restaurant-floor/internal/microservices/order/repository"
)

type OrderServiceInterface interface {
	PlaceOrder(ctx context.Context, req domain.PlaceOrderRequest) (domain.PlaceOrderResponse, error)
}

type OrderService struct {
	db      repository.OrderRepositoryInterface
	tickets TicketPublisher
	lg      *logger.Logger
	now     func() time.Time
}

func NewOrderService(db repository.OrderRepositoryInterface, tickets TicketPublisher, lg *logger.Logger, now func() time.Time) *OrderService {
	if tickets == nil {
		tickets = NopTicketPublisher{}
	}
	if now == nil {
		now = time.Now
	}
	return &OrderService{db: db, tickets: tickets, lg: lg, now: now}
}

func (s *OrderService) PlaceOrder(ctx context.Context, req domain.PlaceOrderRequest) (resp domain.PlaceOrderResponse, err error) {
	const op = "order.place"
	ctx, span := telemetry.Start(ctx, op)
	defer func() { telemetry.End(span, err) }()

	// 1. Validation
	tableID, lines, err := parseOrder(op, req)
	if err != nil {
		return domain.PlaceOrderResponse{}, err
	}
	span.SetAttributes(attribute.Int64("table_id", tableID), attribute.Int("lines", len(lines)))

	// 2. Order and its items, all or nothing
	now := s.now().UTC()
	orderID, itemIDs, err := s.db.CreateOrderTx(ctx, tableID, lines, now)
	if err != nil {
		lg := s.lg.WithContext(ctx)
		if database.IsForeignKeyViolation(err) {
			lg.Warn("order_rejected_unknown_reference", err, map[string]any{"table_id": tableID})
		}
		return domain.PlaceOrderResponse{}, apperr.Internal(op, err)
	}
	s.lg.WithContext(ctx).Info("order_placed", map[string]any{"order_id": orderID, "table_id": tableID, "lines": len(itemIDs)})

	// 3. Kitchen ticket. The order is already committed, so a failed
	// publish is only logged.
	msg := domain.OrderPlacedMessage{OrderID: orderID, TableID: tableID, OrderedAt: now}
	for i, l := range lines {
		msg.Items = append(msg.Items, domain.OrderPlacedLineItem{OrderItemID: itemIDs[i], ItemID: l.ItemID, Quantity: l.Quantity})
	}
	if perr := s.tickets.PublishOrderPlaced(ctx, msg); perr != nil {
		s.lg.WithContext(ctx).Error("kitchen_ticket_publish_failed", perr, map[string]any{"order_id": orderID})
	}

	return domain.PlaceOrderResponse{OrderID: orderID, OrderItemIDs: itemIDs}, nil
}

func parseOrder(op string, req domain.PlaceOrderRequest) (int64, []domain.OrderLine, error) {
	if !req.TableID.Present {
		return 0, nil, apperr.Validation(op, "tableId", "tableId is required")
	}
	tableID, err := validate.ParseID(op, "tableId", req.TableID.Text)
	if err != nil {
		return 0, nil, err
	}
	if len(req.Items) == 0 {
		return 0, nil, apperr.Validation(op, "items", "Sorry, your order information is incomplete: items is empty")
	}
	lines := make([]domain.OrderLine, 0, len(req.Items))
	for i, it := range req.Items {
		itemID, err := validate.ParseID(op, fmt.Sprintf("items[%d].itemId", i), it.ItemID.Text)
		if err != nil {
			return 0, nil, err
		}
		qty, err := validate.ParseCount(op, fmt.Sprintf("items[%d].quantity", i), it.Quantity.Text, it.Quantity.Present)
		if err != nil {
			return 0, nil, err
		}
		lines = append(lines, domain.OrderLine{ItemID: itemID, Quantity: qty})
	}
	return tableID, lines, nil
}
