// internal/lending/implementation.go
package lending

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"bookledger/internal/catalog"
	"bookledger/internal/fault"
)

// service keeps the two holdings maps as exact inverses of one another:
// patron ∈ byBook[isbn] if and only if isbn ∈ byPatron[patron]. insertPair
// and removePair are the only code allowed to touch either map.
type service struct {
	mu       sync.Mutex
	byPatron map[string]map[string]struct{}
	byBook   map[string]map[string]struct{}
	catalog  catalog.Service
}

// NewService creates an empty ledger that consults cat for copy counts.
func NewService(cat catalog.Service) Service {
	return &service{
		byPatron: make(map[string]map[string]struct{}),
		byBook:   make(map[string]map[string]struct{}),
		catalog:  cat,
	}
}

// Checkout lends one copy of isbn to patron. The number of active holders of
// an identifier never exceeds its copy count, and a (patron, isbn) pair is
// never active twice.
func (s *service) Checkout(ctx context.Context, in map[string]any) error {
	if errs := checkoutSchema.Check(in); len(errs) > 0 {
		return errs
	}
	isbn := in["isbn"].(string)
	patron := in["patron"].(string)

	book, err := s.catalog.Get(ctx, isbn)
	if err != nil {
		return fault.List{fault.BadReq(fmt.Sprintf("unknown book %s", isbn))}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.byBook[isbn]) >= book.Copies {
		return fault.List{fault.BadReq(fmt.Sprintf("no available copies of %s", isbn))}
	}
	if _, held := s.byBook[isbn][patron]; held {
		return fault.List{fault.BadReq(fmt.Sprintf("book %s already checked out by patron %s", isbn, patron))}
	}

	s.insertPair(patron, isbn)
	return nil
}

// Return ends patron's checkout of isbn.
func (s *service) Return(ctx context.Context, in map[string]any) error {
	if errs := checkoutSchema.Check(in); len(errs) > 0 {
		return errs
	}
	isbn := in["isbn"].(string)
	patron := in["patron"].(string)

	if _, err := s.catalog.Get(ctx, isbn); err != nil {
		return fault.List{fault.BadReq(fmt.Sprintf("unknown book %s", isbn))}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, held := s.byPatron[patron][isbn]; !held {
		return fault.List{fault.BadReq(fmt.Sprintf("no checkout of %s by patron %s", isbn, patron))}
	}

	s.removePair(patron, isbn)
	return nil
}

// Holdings reports the identifiers patron currently holds.
func (s *service) Holdings(ctx context.Context, patron string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, 0, len(s.byPatron[patron]))
	for isbn := range s.byPatron[patron] {
		out = append(out, isbn)
	}
	sort.Strings(out)
	return out, nil
}

func (s *service) insertPair(patron, isbn string) {
	if s.byPatron[patron] == nil {
		s.byPatron[patron] = make(map[string]struct{})
	}
	if s.byBook[isbn] == nil {
		s.byBook[isbn] = make(map[string]struct{})
	}
	s.byPatron[patron][isbn] = struct{}{}
	s.byBook[isbn][patron] = struct{}{}
}

func (s *service) removePair(patron, isbn string) {
	delete(s.byPatron[patron], isbn)
	if len(s.byPatron[patron]) == 0 {
		delete(s.byPatron, patron)
	}
	delete(s.byBook[isbn], patron)
	if len(s.byBook[isbn]) == 0 {
		delete(s.byBook, isbn)
	}
}
