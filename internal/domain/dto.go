package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// RawValue keeps a scalar JSON value as text so the validation layer, not
// the decoder, decides whether it is acceptable. Numbers and strings are
// both accepted: 3 and "3" read the same.
type RawValue struct {
	Text    string
	Present bool
}

func (r *RawValue) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*r = RawValue{}
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*r = RawValue{Text: strings.TrimSpace(s), Present: true}
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("expected a number or a string, got %s", b)
	}
	*r = RawValue{Text: n.String(), Present: true}
	return nil
}

func (r RawValue) MarshalJSON() ([]byte, error) {
	if !r.Present {
		return []byte("null"), nil
	}
	return json.Marshal(r.Text)
}

func Raw(v any) RawValue { return RawValue{Text: fmt.Sprint(v), Present: true} }

type RegisterPartyRequest struct {
	Name      string   `json:"name"`
	PartySize RawValue `json:"partySize"`
	Comment   *string  `json:"comment,omitempty"`
}

// WaitListEntryView is an entry plus its wait projection at response time.
type WaitListEntryView struct {
	WaitListEntry
	WaitLabel   string `json:"waitLabel"`
	WaitMinutes *int   `json:"waitMinutes,omitempty"`
}

// OrderLineRequest decodes either [itemId, quantity] or
// {"itemId": .., "quantity": ..}.
type OrderLineRequest struct {
	ItemID   RawValue `json:"itemId"`
	Quantity RawValue `json:"quantity"`
}

func (l *OrderLineRequest) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '[' {
		var pair []RawValue
		if err := json.Unmarshal(b, &pair); err != nil {
			return err
		}
		if len(pair) != 2 {
			return errors.New("order line must be [itemId, quantity]")
		}
		l.ItemID, l.Quantity = pair[0], pair[1]
		return nil
	}
	type plain OrderLineRequest
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*l = OrderLineRequest(p)
	return nil
}

type PlaceOrderRequest struct {
	TableID RawValue           `json:"tableId"`
	Items   []OrderLineRequest `json:"items"`
}

type PlaceOrderResponse struct {
	OrderID      int64   `json:"orderId"`
	OrderItemIDs []int64 `json:"orderItemIds"`
}
