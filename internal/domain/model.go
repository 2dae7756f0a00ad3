package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// WaitListEntry is a party waiting for, or already given, a table.
// RegisteredAt is fixed at creation; IsSeated only ever goes from false to true.
type WaitListEntry struct {
	WaitID       int64      `json:"waitId"`
	Name         string     `json:"name"`
	PartySize    int        `json:"partySize"`
	Comment      *string    `json:"comment"`
	RegisteredAt time.Time  `json:"registeredAt"`
	IsSeated     bool       `json:"isSeated"`
	SeatedAt     *time.Time `json:"seatedAt,omitempty"`
}

type Order struct {
	OrderID   int64     `json:"orderId"`
	TableID   int64     `json:"tableId"`
	OrderedAt time.Time `json:"orderedAt"`
}

type OrderItem struct {
	OrderItemID int64           `json:"orderItemId"`
	OrderID     int64           `json:"orderId"`
	ItemID      int64           `json:"itemId"`
	Quantity    int             `json:"quantity"`
	Discount    decimal.Decimal `json:"discount"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// OrderLine is one submitted (itemId, quantity) pair.
type OrderLine struct {
	ItemID   int64
	Quantity int
}

// MenuItem is owned by the catalog; this service only reads it.
type MenuItem struct {
	ItemID    int64           `json:"itemId"`
	Name      string          `json:"name"`
	Cost      decimal.Decimal `json:"cost"`
	SalePrice decimal.Decimal `json:"salePrice"`
	ImageURL  *string         `json:"imageUrl"`
}

type Check struct {
	CheckID   int64     `json:"checkId"`
	IsPaid    bool      `json:"isPaid"`
	CreatedAt time.Time `json:"createdAt"`
}

// CheckItem is one billed order line resolved to its menu item.
type CheckItem struct {
	OrderItemID int64           `json:"orderItemId"`
	OrderID     int64           `json:"orderId"`
	ItemID      int64           `json:"itemId"`
	Name        string          `json:"name"`
	SalePrice   decimal.Decimal `json:"salePrice"`
	ImageURL    *string         `json:"imageUrl"`
	Quantity    int             `json:"quantity"`
	Discount    decimal.Decimal `json:"discount"`
	LineTotal   decimal.Decimal `json:"lineTotal"`
}

// CheckItemGroup sums every line of one menu item on a check.
type CheckItemGroup struct {
	ItemID    int64           `json:"itemId"`
	Name      string          `json:"name"`
	SalePrice decimal.Decimal `json:"salePrice"`
	ImageURL  *string         `json:"imageUrl"`
	Quantity  int             `json:"quantity"`
	Discount  decimal.Decimal `json:"discount"`
	Total     decimal.Decimal `json:"total"`
}

// Bill returns salePrice * quantity - discount.
func Bill(salePrice decimal.Decimal, quantity int, discount decimal.Decimal) decimal.Decimal {
	return salePrice.Mul(decimal.NewFromInt(int64(quantity))).Sub(discount)
}

// Table is a dining table on the floor plan. Read-only here.
type Table struct {
	TableID int64  `json:"tableId"`
	Label   string `json:"label"`
	Seats   int    `json:"seats"`
}
