package order

import (
	"github.com/shopspring/decimal"

	"github.com/shoplane/shop-backend/internal/sequence"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// IDPolicy yields Order01, Order02, ... and grows past the pad width once the
// counter reaches Order100.
var IDPolicy = sequence.Policy{Prefix: "Order", Width: 2, Seed: 1}

// Order is a standalone purchase record. It carries a denormalized snapshot of
// the purchased item rather than a reference into the catalog, so later product
// edits never rewrite order history.
type Order struct {
	ID        string          `json:"OID"`
	Name      string          `json:"OName"`
	Price     decimal.Decimal `json:"OPrice"`
	Quantity  int             `json:"OQuantity"`
	Category  string          `json:"OCategory"`
	CreatedAt string          `json:"createdAt,omitempty"`
	UpdatedAt string          `json:"updatedAt,omitempty"`
}

// Update carries the mutable fields of an update request; OID is not part of
// the schema.
type Update struct {
	Name     *string
	Price    *decimal.Decimal
	Quantity *int
	Category *string
}
