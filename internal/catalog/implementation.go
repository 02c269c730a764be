// internal/catalog/implementation.go
package catalog

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"
	"unicode/utf8"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"bookledger/internal/fault"
	"bookledger/internal/index"
)

// service implements the Service interface over process-local state. The
// write lock covers registration, which must populate the word index and the
// record map together; searches and gets share the read lock.
type service struct {
	mu    sync.RWMutex
	books map[string]*Book
	idx   *index.WordIndex
}

// NewService creates an empty in-memory catalog.
func NewService() Service {
	return &service{
		books: make(map[string]*Book),
		idx:   index.New(),
	}
}

// Register stores a new record or adds copies to an existing one. Either the
// whole effect commits or an error list is returned with no mutation.
func (s *service) Register(ctx context.Context, in map[string]any) (*Book, error) {
	if errs := bookSchema.Check(in); len(errs) > 0 {
		return nil, errs
	}
	rec := decodeBook(in)

	s.mu.Lock()
	defer s.mu.Unlock()

	if stored, ok := s.books[rec.ISBN]; ok {
		if errs := diffRequired(stored, rec); len(errs) > 0 {
			return nil, errs
		}
		stored.Copies += rec.Copies
		return stored.Clone(), nil
	}

	s.idx.Add(rec.ISBN, append([]string{rec.Title}, rec.Authors...)...)
	s.books[rec.ISBN] = rec
	return rec.Clone(), nil
}

// diffRequired compares every required field of an incoming record against
// the stored one. Re-registration must repeat the original data exactly;
// only the copy count may differ. All mismatches are reported, not just the
// first.
func diffRequired(stored, next *Book) fault.List {
	var errs fault.List
	mismatch := func(field string) {
		errs = append(errs, fault.BadReqField(field,
			fmt.Sprintf("book %s already registered with a different %s", stored.ISBN, field)))
	}
	if next.Title != stored.Title {
		mismatch("title")
	}
	if !slices.Equal(next.Authors, stored.Authors) {
		mismatch("authors")
	}
	if next.Pages != stored.Pages {
		mismatch("pages")
	}
	if next.Year != stored.Year {
		mismatch("year")
	}
	if next.Publisher != stored.Publisher {
		mismatch("publisher")
	}
	return errs
}

// Search intersects the index postings of every query token longer than one
// character and returns the matches sorted by title. Only indexed lookups
// participate; the full catalog is never scanned.
func (s *service) Search(ctx context.Context, in map[string]any) ([]*Book, error) {
	if errs := searchSchema.Check(in); len(errs) > 0 {
		return nil, errs
	}
	query := in["query"].(string)

	var tokens []string
	for _, tok := range index.Tokenize(query) {
		if utf8.RuneCountInString(tok) > 1 {
			tokens = append(tokens, tok)
		}
	}
	if len(tokens) == 0 {
		return nil, fault.List{fault.BadReq("empty search")}
	}

	s.mu.RLock()
	matches := s.idx.Lookup(tokens[0])
	for _, tok := range tokens[1:] {
		if len(matches) == 0 {
			break
		}
		next := s.idx.Lookup(tok)
		for isbn := range matches {
			if _, ok := next[isbn]; !ok {
				delete(matches, isbn)
			}
		}
	}
	books := make([]*Book, 0, len(matches))
	for isbn := range matches {
		books = append(books, s.books[isbn].Clone())
	}
	s.mu.RUnlock()

	// Collators are not safe for concurrent use, so each search builds its
	// own.
	c := collate.New(language.Und, collate.Loose)
	sort.Slice(books, func(i, j int) bool {
		return c.CompareString(books[i].Title, books[j].Title) < 0
	})
	return books, nil
}

// Get retrieves a record by identifier.
func (s *service) Get(ctx context.Context, isbn string) (*Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.books[isbn]
	if !ok {
		return nil, fault.List{fault.NotFound(fmt.Sprintf("no book with isbn %s", isbn))}
	}
	return stored.Clone(), nil
}
