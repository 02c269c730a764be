// internal/catalog/domain.go
package catalog

// Book is the canonical record for one catalogued title. The identifier is
// externally assigned and immutable; every other field except Copies is
// fixed at first registration.
type Book struct {
	ISBN      string   `json:"isbn"`
	Title     string   `json:"title"`
	Authors   []string `json:"authors"`
	Pages     int      `json:"pages"`
	Year      int      `json:"year"`
	Publisher string   `json:"publisher"`
	Copies    int      `json:"copies"`
}

// Clone returns a copy sharing no memory with the receiver, so a caller can
// never alias the stored record.
func (b *Book) Clone() *Book {
	dup := *b
	dup.Authors = append([]string(nil), b.Authors...)
	return &dup
}
