package domain

import "time"

// OrderPlacedMessage is the kitchen ticket published after an order commits.
type OrderPlacedMessage struct {
	OrderID   int64                 `json:"order_id"`
	TableID   int64                 `json:"table_id"`
	OrderedAt time.Time             `json:"ordered_at"`
	Items     []OrderPlacedLineItem `json:"items"`
}

type OrderPlacedLineItem struct {
	OrderItemID int64 `json:"order_item_id"`
	ItemID      int64 `json:"item_id"`
	Quantity    int   `json:"quantity"`
}
