// internal/catalog/handler.go
package catalog

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

func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	in, err := httpx.DecodeFields(r)
	if err != nil {
		httpx.WriteError(w, fault.List{fault.BadReq("request body must be a JSON object")})
		return
	}

	book, err := h.service.Register(r.Context(), in)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	h.record(r.Context(), book)
	httpx.WriteJSON(w, http.StatusCreated, book)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	isbn := chi.URLParam(r, "isbn")

	book, err := h.service.Get(r.Context(), isbn)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, book)
}

func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	in := map[string]any{}
	if r.URL.Query().Has("q") {
		in["query"] = r.URL.Query().Get("q")
	}

	books, err := h.service.Search(r.Context(), in)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, books)
}

// record archives a committed registration. Archiving is best-effort: a
// failure is logged and never surfaced to the client.
func (h *Handler) record(ctx context.Context, book *Book) {
	if err := h.recorder.Record(ctx, archive.BookRegistered, book.ISBN, "", book); err != nil {
		h.logger.Warn("archive write failed",
			"kind", string(archive.BookRegistered),
			"isbn", book.ISBN,
			"error", err,
		)
	}
}
