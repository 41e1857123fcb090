package customer

import "github.com/shoplane/shop-backend/internal/sequence"

// IDPolicy yields Cus0001M, Cus0002M, ...
var IDPolicy = sequence.Policy{Prefix: "Cus", Suffix: "M", Width: 4, Seed: 1}

// Customer is a storefront account. The business ID (CusID) is assigned once
// at first persistence and never changes; the password digest is never
// serialized.
type Customer struct {
	ID        string `json:"CusID"`
	Name      string `json:"CusName"`
	Email     string `json:"CusEmail"`
	Password  string `json:"-"`
	Phone     string `json:"CusPhone"`
	Address   string `json:"CusAddress"`
	Age       int    `json:"CusAge"`
	Gender    string `json:"CusGender"`
	Profile   string `json:"CusProfile"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// Update carries the mutable fields of an update request. The business ID is
// not part of the schema, so it cannot be changed through the API.
type Update struct {
	Name    *string
	Email   *string
	Phone   *string
	Address *string
	Age     *int
	Gender  *string
	Profile *string
}
