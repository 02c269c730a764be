// internal/lending/handler.go
package lending

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"bookledger/internal/archive"
	"bookledger/internal/fault"
	"bookledger/internal/httpx"
)

type Handler struct {
	service  Service
	recorder archive.Recorder
	logger   *slog.Logger
}

func NewHandler(service Service, recorder archive.Recorder, logger *slog.Logger) *Handler {
	return &Handler{service: service, recorder: recorder, logger: logger}
}

func (h *Handler) HandleCheckout(w http.ResponseWriter, r *http.Request) {
	h.handleLoanOp(w, r, archive.BookCheckedOut, h.service.Checkout)
}

func (h *Handler) HandleReturn(w http.ResponseWriter, r *http.Request) {
	h.handleLoanOp(w, r, archive.BookReturned, h.service.Return)
}

func (h *Handler) handleLoanOp(w http.ResponseWriter, r *http.Request, kind archive.Kind, op func(context.Context, map[string]any) error) {
	in, err := httpx.DecodeFields(r)
	if err != nil {
		httpx.WriteError(w, fault.List{fault.BadReq("request body must be a JSON object")})
		return
	}

	if err := op(r.Context(), in); err != nil {
		httpx.WriteError(w, err)
		return
	}

	isbn, _ := in["isbn"].(string)
	patron, _ := in["patron"].(string)
	h.record(r.Context(), kind, isbn, patron)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleHoldings(w http.ResponseWriter, r *http.Request) {
	patron := chi.URLParam(r, "patron")

	isbns, err := h.service.Holdings(r.Context(), patron)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, Holdings{Patron: patron, ISBNs: isbns})
}

// record archives a committed loan operation. Archiving is best-effort: a
// failure is logged and never surfaced to the client.
func (h *Handler) record(ctx context.Context, kind archive.Kind, isbn, patron string) {
	if err := h.recorder.Record(ctx, kind, isbn, patron, Loan{ISBN: isbn, Patron: patron}); err != nil {
		h.logger.Warn("archive write failed",
			"kind", string(kind),
			"isbn", isbn,
			"patron", patron,
			"error", err,
		)
	}
}
