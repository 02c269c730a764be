// internal/catalog/schema.go
package catalog

import (
	"bookledger/internal/validate"
)

var bookSchema = validate.Schema{
	Name: "book",
	Fields: []validate.Field{
		{Name: "isbn", Type: validate.String, Required: true},
		{Name: "title", Type: validate.String, Required: true},
		{Name: "authors", Type: validate.StringList, Required: true},
		{Name: "pages", Type: validate.Number, Required: true, Rules: []validate.Rule{
			{Violates: validate.PositiveInt, Message: "pages must be a positive integer"},
		}},
		{Name: "year", Type: validate.Number, Required: true, Rules: []validate.Rule{
			{Violates: validate.PositiveInt, Message: "year must be a positive integer"},
		}},
		{Name: "publisher", Type: validate.String, Required: true},
		{Name: "copies", Type: validate.Number, Rules: []validate.Rule{
			{Violates: validate.PositiveInt, Message: "copies must be a positive integer"},
		}},
	},
}

var searchSchema = validate.Schema{
	Name: "search",
	Fields: []validate.Field{
		{Name: "query", Type: validate.String, Required: true, Rules: []validate.Rule{
			{Violates: validate.BlankString, Message: "query must not be blank"},
		}},
	},
}

// decodeBook converts a schema-checked field map into a Book. Copies
// defaults to 1 when unspecified.
func decodeBook(in map[string]any) *Book {
	b := &Book{
		ISBN:      in["isbn"].(string),
		Title:     in["title"].(string),
		Publisher: in["publisher"].(string),
		Copies:    1,
	}
	b.Authors, _ = validate.AsStrings(in["authors"])
	pages, _ := validate.AsNumber(in["pages"])
	b.Pages = int(pages)
	year, _ := validate.AsNumber(in["year"])
	b.Year = int(year)
	if raw, ok := in["copies"]; ok && raw != nil {
		copies, _ := validate.AsNumber(raw)
		b.Copies = int(copies)
	}
	return b
}
