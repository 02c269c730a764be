// Package validate checks raw field-to-value mappings against named schemas
// before they reach the catalog or the lending ledger. Validation runs in
// three sequenced phases: required fields, then types, then business rules.
// Each phase accumulates every error it finds and, if it found any, returns
// them without running the later phases.
package validate

import (
	"math"
	"strings"

	"bookledger/internal/fault"
)

// Type is the primitive shape a schema field expects.
type Type int

const (
	String Type = iota
	Number
	Bool
	StringList
	Object
)

func (t Type) String() string {
	switch t {
	case String:
		return "a string"
	case Number:
		return "a number"
	case Bool:
		return "a boolean"
	case StringList:
		return "a non-empty array of strings"
	case Object:
		return "an object"
	}
	return "an unknown type"
}

// Rule is a business-rule predicate attached to a schema field. Violates
// returns true when the present, non-null value breaks the rule.
type Rule struct {
	Violates func(v any) bool
	Message  string
}

// Field describes one schema field.
type Field struct {
	Name     string
	Type     Type
	Required bool
	Rules    []Rule
}

// Schema is the ordered field list a raw input record is checked against.
type Schema struct {
	Name   string
	Fields []Field
}

// Check validates in against the schema and returns nil when it passes.
// A field explicitly set to null counts as absent.
func (s Schema) Check(in map[string]any) fault.List {
	var errs fault.List

	for _, f := range s.Fields {
		if !f.Required {
			continue
		}
		if v, ok := in[f.Name]; !ok || v == nil {
			errs = append(errs, fault.Missing(f.Name))
		}
	}
	if len(errs) > 0 {
		return errs
	}

	for _, f := range s.Fields {
		v, ok := in[f.Name]
		if !ok || v == nil {
			continue
		}
		if !matches(f.Type, v) {
			errs = append(errs, fault.BadType(f.Name, f.Type.String()))
		}
	}
	if len(errs) > 0 {
		return errs
	}

	for _, f := range s.Fields {
		v, ok := in[f.Name]
		if !ok || v == nil {
			continue
		}
		for _, r := range f.Rules {
			if r.Violates(v) {
				errs = append(errs, fault.BadReqField(f.Name, r.Message))
			}
		}
	}
	return errs
}

func matches(t Type, v any) bool {
	switch t {
	case String:
		_, ok := v.(string)
		return ok
	case Number:
		_, ok := AsNumber(v)
		return ok
	case Bool:
		_, ok := v.(bool)
		return ok
	case StringList:
		_, ok := AsStrings(v)
		return ok
	case Object:
		_, ok := v.(map[string]any)
		return ok
	}
	return false
}

// AsNumber normalizes the numeric representations a decoded JSON body or an
// embedding caller can produce.
func AsNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// AsStrings converts a homogeneous non-empty string array into a fresh
// []string, so callers never alias the input value.
func AsStrings(v any) ([]string, bool) {
	switch list := v.(type) {
	case []string:
		if len(list) == 0 {
			return nil, false
		}
		return append([]string(nil), list...), true
	case []any:
		if len(list) == 0 {
			return nil, false
		}
		out := make([]string, len(list))
		for i, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out[i] = s
		}
		return out, true
	}
	return nil, false
}

// PositiveInt flags values that are not positive whole numbers.
func PositiveInt(v any) bool {
	n, ok := AsNumber(v)
	return !ok || n != math.Trunc(n) || n <= 0
}

// BlankString flags strings that are empty after trimming.
func BlankString(v any) bool {
	s, ok := v.(string)
	return !ok || strings.TrimSpace(s) == ""
}
