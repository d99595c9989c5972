//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"encoding/json"
	"time"
)

// Order is a customer order as listed on the orders page.
type Order struct {
	Ref
	Customer  NamedRef    `json:"userId"`
	Items     []OrderItem `json:"items"`
	Total     Number      `json:"total"`
	Status    string      `json:"status"`
	CreatedAt time.Time   `json:"createdAt"`
}

// ItemCount returns the number of line items.
func (o Order) ItemCount() int { return len(o.Items) }

// OrderItem is a single order line.
type OrderItem struct {
	Product  NamedRef `json:"productId"`
	Name     string   `json:"name,omitempty"`
	Quantity Number   `json:"quantity"`
	Price    Number   `json:"price"`
}

// OrderStatus is an entry of GET /orders/statuses. The API returns either bare
// strings or {value,label} objects; both decode here.
type OrderStatus struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *OrderStatus) UnmarshalJSON(b []byte) error {
	var v string
	if err := json.Unmarshal(b, &v); err == nil {
		*s = OrderStatus{Value: v, Label: v}
		return nil
	}
	type plain OrderStatus
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	if p.Label == "" {
		p.Label = p.Value
	}
	*s = OrderStatus(p)
	return nil
}
