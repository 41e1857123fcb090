package employee

import "github.com/shoplane/shop-backend/internal/sequence"

// IDPolicy yields Emp001, Emp002, ...
var IDPolicy = sequence.Policy{Prefix: "Emp", Width: 3, Seed: 1}

// Employee is a staff account managed through the admin UI. EmpID is
// assigned at first persistence and immutable; the password digest never
// appears in responses.
type Employee struct {
	ID        string `json:"EmpID"`
	Name      string `json:"EmpName"`
	Email     string `json:"EmpEmail"`
	Password  string `json:"-"`
	Phone     string `json:"EmpPhone"`
	Address   string `json:"EmpAddress"`
	Age       int    `json:"EmpAge"`
	Gender    string `json:"EmpGender"`
	Profile   string `json:"EmpProfile,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// Update carries the mutable fields of an update request; EmpID and the
// password are not part of the schema.
type Update struct {
	Name    *string
	Email   *string
	Phone   *string
	Address *string
	Age     *int
	Gender  *string
	Profile *string
}
