package models

import (
	"github.com/stripe/stripe-go/v79"
)

// Product is the read-only catalog snapshot attached to a line item for
// display. It is carried opaquely and never enters the cart invariants.
type Product struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Images       []string        `json:"images,omitempty"`
	InStock      bool            `json:"in_stock"`
	CatalogPrice float64         `json:"catalog_price"`
	Currency     stripe.Currency `json:"currency,omitempty"`
}

// LineItem is one entry in the cart: a quantity of one product at a given
// unit price. ID identifies the line itself and is distinct from ProductID.
type LineItem struct {
	ID         string   `json:"id"`
	ProductID  string   `json:"product_id"`
	Quantity   int64    `json:"quantity"`
	UnitPrice  float64  `json:"unit_price"`
	TotalPrice float64  `json:"total_price"`
	Product    *Product `json:"product,omitempty"`
}

// CartState holds the ordered line items plus the three derived scalars.
// Item order is insertion order and matters for display only. Currency is
// display metadata, excluded from the invariants like the product snapshot.
type CartState struct {
	Items      []LineItem      `json:"items"`
	TotalItems int64           `json:"total_items"`
	Subtotal   float64         `json:"subtotal"`
	ItemCount  int             `json:"item_count"`
	Currency   stripe.Currency `json:"currency,omitempty"`
}

func NewCartState() CartState {
	return CartState{Items: []LineItem{}}
}

func (p Product) Clone() Product {
	out := p
	if p.Images != nil {
		out.Images = append([]string(nil), p.Images...)
	}
	return out
}

func (li LineItem) Clone() LineItem {
	out := li
	if li.Product != nil {
		p := li.Product.Clone()
		out.Product = &p
	}
	return out
}

// Clone returns a deep copy so callers can hand out snapshots without
// sharing the underlying item slice.
func (s CartState) Clone() CartState {
	out := s
	out.Items = make([]LineItem, len(s.Items))
	for i, item := range s.Items {
		out.Items[i] = item.Clone()
	}
	return out
}
