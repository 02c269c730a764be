// internal/lending/domain.go
package lending

import (
	"bookledger/internal/validate"
)

// Loan is the archived payload for a checkout or return.
type Loan struct {
	ISBN   string `json:"isbn"`
	Patron string `json:"patron"`
}

// Holdings lists the identifiers a patron currently holds.
type Holdings struct {
	Patron string   `json:"patron"`
	ISBNs  []string `json:"isbns"`
}

var checkoutSchema = validate.Schema{
	Name: "checkout",
	Fields: []validate.Field{
		{Name: "isbn", Type: validate.String, Required: true},
		{Name: "patron", Type: validate.String, Required: true},
	},
}
