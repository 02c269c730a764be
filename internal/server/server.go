// Package server assembles the HTTP transport over the core services. The
// transport is a thin adapter: it decodes request bodies into raw field
// maps, dispatches to the catalog or the ledger, and translates error kinds
// into status codes.
package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"bookledger/internal/archive"
	"bookledger/internal/catalog"
	"bookledger/internal/lending"
)

// New builds the router over the catalog and ledger services. A nil limiter
// disables rate limiting.
func New(cat catalog.Service, ledger lending.Service, recorder archive.Recorder, logger *slog.Logger, limiter *rate.Limiter) http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)
	if limiter != nil {
		r.Use(rateLimit(limiter))
	}

	books := catalog.NewHandler(cat, recorder, logger)
	loans := lending.NewHandler(ledger, recorder, logger)

	r.Post("/books", books.HandleRegister)
	r.Get("/books/{isbn}", books.HandleGet)
	r.Get("/search", books.HandleSearch)
	r.Post("/checkout", loans.HandleCheckout)
	r.Post("/return", loans.HandleReturn)
	r.Get("/patrons/{patron}/books", loans.HandleHoldings)

	return r
}
