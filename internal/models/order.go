package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderSide is the direction of an order.
type OrderSide string

const (
	OrderSideBuy  OrderSide = "Buy"
	OrderSideSell OrderSide = "Sell"
)

// OrderTypeKind discriminates Market from Limit orders.
type OrderTypeKind string

const (
	OrderTypeMarket OrderTypeKind = "Market"
	OrderTypeLimit  OrderTypeKind = "Limit"
)

// OrderType is a tagged union: Market carries no payload, Limit carries a
// price. It marshals to the wire shape the submission API uses: a bare
// string "Market", or an object {"Limit": price}.
type OrderType struct {
	Kind  OrderTypeKind
	Price decimal.Decimal // only meaningful when Kind == OrderTypeLimit
}

func NewMarketOrder() OrderType {
	return OrderType{Kind: OrderTypeMarket}
}

func NewLimitOrder(price decimal.Decimal) OrderType {
	return OrderType{Kind: OrderTypeLimit, Price: price}
}

func (t OrderType) MarshalJSON() ([]byte, error) {
	if t.Kind == OrderTypeMarket {
		return json.Marshal(string(OrderTypeMarket))
	}
	return json.Marshal(map[string]decimal.Decimal{string(OrderTypeLimit): t.Price})
}

func (t *OrderType) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if OrderTypeKind(s) != OrderTypeMarket {
			return fmt.Errorf("order_type: unrecognized bare variant %q", s)
		}
		*t = OrderType{Kind: OrderTypeMarket}
		return nil
	}

	var payload struct {
		Limit *decimal.Decimal `json:"Limit"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return err
	}
	if payload.Limit == nil {
		return fmt.Errorf("order_type: expected {\"Limit\": price}")
	}
	*t = OrderType{Kind: OrderTypeLimit, Price: *payload.Limit}
	return nil
}

// Order status tags. Terminal statuses are sinks: no transition leaves
// them. Status and StatusDate are top-level fields of the stored JSON
// document (not a nested payload object) so the repository's field lookup
// and the startup-recovery query can address the tag directly.
const (
	StatusQueued        = "Queued"
	StatusPending       = "Pending"
	StatusFilled        = "Filled"
	StatusPendingCancel = "PendingCancel"
	StatusCancelled     = "Cancelled"
	StatusExpired       = "Expired"
	StatusRejected      = "Rejected"
)

// NonTerminalStatuses are the statuses startup recovery re-queues.
var NonTerminalStatuses = []string{StatusQueued, StatusPending, StatusPendingCancel}

func IsTerminalStatus(status string) bool {
	switch status {
	case StatusFilled, StatusCancelled, StatusExpired, StatusRejected:
		return true
	default:
		return false
	}
}

// Order is a client's request to buy or sell a quantity of a symbol.
// Quantity and, for Limit orders, Price are immutable after creation.
type Order struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	ClientID    uuid.UUID  `json:"client_id" db:"client_id"`
	SubmittedAt time.Time  `json:"submitted_at" db:"submitted_at"`
	Symbol      string     `json:"symbol" db:"symbol"`
	Quantity    uint64     `json:"quantity" db:"quantity"`
	Side        OrderSide  `json:"order_side" db:"order_side"`
	Type        OrderType  `json:"order_type" db:"order_type"`
	Status      string     `json:"status" db:"status"`
	StatusDate  *time.Time `json:"status_date,omitempty" db:"status_date"`
}

func (o *Order) IsTerminal() bool {
	return IsTerminalStatus(o.Status)
}

// TransitionTo mutates the order's status tag and, for the timestamped
// terminal variants, its status date. Callers are responsible for holding
// whatever lock the caller's concurrency model requires before calling
// this — it performs no synchronization itself.
func (o *Order) TransitionTo(status string, at time.Time) {
	o.Status = status
	switch status {
	case StatusFilled, StatusExpired, StatusRejected:
		t := at
		o.StatusDate = &t
	default:
		o.StatusDate = nil
	}
}
