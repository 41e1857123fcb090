package product

import (
	"github.com/shopspring/decimal"

	"github.com/shoplane/shop-backend/internal/sequence"
)

func init() {
	// price fields go over the wire as JSON numbers, not strings
	decimal.MarshalJSONWithoutQuotes = true
}

// IDPolicy yields Product001, Product002, ... when the sequential scheme is
// configured.
var IDPolicy = sequence.Policy{Prefix: "Product", Width: 3, Seed: 1}

// RandomIDPrefix and RandomIDDigits shape the alternative randomized scheme
// (PRD-483920).
const (
	RandomIDPrefix = "PRD-"
	RandomIDDigits = 6
)

// Product is a catalog item. PID is assigned once at first persistence and
// never mutated. The price is a decimal so values like 19.99 survive the
// store boundary exactly.
type Product struct {
	ID          string          `json:"PID"`
	Name        string          `json:"PName"`
	Description string          `json:"PDescription"`
	Price       decimal.Decimal `json:"PPrice"`
	Quantity    int             `json:"PQuantity"`
	Category    string          `json:"PCategory"`
	Image       string          `json:"PImage"`
	CreatedAt   string          `json:"createdAt,omitempty"`
	UpdatedAt   string          `json:"updatedAt,omitempty"`
}

// Update carries the mutable fields of an update request; PID is not part of
// the schema.
type Update struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Quantity    *int
	Category    *string
	Image       *string
}
