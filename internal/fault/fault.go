// Package fault defines the domain error model shared by the validator, the
// catalog and the lending ledger. Operations report an ordered List of
// errors; callers are expected to surface every entry, not just the first.
package fault

import (
	"errors"
	"strings"
)

// Kind classifies a domain error.
type Kind string

const (
	KindMissing  Kind = "MISSING"
	KindBadType  Kind = "BAD_TYPE"
	KindBadReq   Kind = "BAD_REQ"
	KindNotFound Kind = "NOT_FOUND"
)

// Error is a single domain error. Field is set when the error targets a
// specific input field.
type Error struct {
	Kind    Kind   `json:"kind"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (e Error) Error() string { return e.Message }

// List is an ordered collection of domain errors.
type List []Error

func (l List) Error() string {
	msgs := make([]string, len(l))
	for i, e := range l {
		msgs[i] = e.Message
	}
	return strings.Join(msgs, "; ")
}

// Has reports whether any error in the list is of the given kind.
func (l List) Has(kind Kind) bool {
	for _, e := range l {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

// As extracts a List from err.
func As(err error) (List, bool) {
	var l List
	if errors.As(err, &l) {
		return l, true
	}
	return nil, false
}

// Missing reports a required field absent from the input.
func Missing(field string) Error {
	return Error{Kind: KindMissing, Field: field, Message: "missing required field: " + field}
}

// BadType reports a present field whose value has the wrong shape.
func BadType(field, want string) Error {
	return Error{Kind: KindBadType, Field: field, Message: "field " + field + " must be " + want}
}

// BadReq reports a business-rule violation not tied to a single field.
func BadReq(msg string) Error {
	return Error{Kind: KindBadReq, Message: msg}
}

// BadReqField reports a business-rule violation on a specific field.
func BadReqField(field, msg string) Error {
	return Error{Kind: KindBadReq, Field: field, Message: msg}
}

// NotFound reports a lookup of an identifier with no matching record.
func NotFound(msg string) Error {
	return Error{Kind: KindNotFound, Message: msg}
}
