// Package archive persists committed catalog and ledger operations to an
// append-only Postgres log. The archive sits outside the core: the transport
// layer records an entry after an operation commits, and a failed write
// never affects in-memory state.
package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Kind names the operation an entry records.
type Kind string

const (
	BookRegistered Kind = "book_registered"
	BookCheckedOut Kind = "book_checked_out"
	BookReturned   Kind = "book_returned"
)

// Entry is one archived operation.
type Entry struct {
	ID         uuid.UUID       `json:"id"`
	Kind       Kind            `json:"kind"`
	ISBN       string          `json:"isbn"`
	Patron     string          `json:"patron,omitempty"`
	Payload    json.RawMessage `json:"payload"`
	RecordedAt time.Time       `json:"recorded_at"`
}

// Recorder is the write side of the archive.
type Recorder interface {
	Record(ctx context.Context, kind Kind, isbn, patron string, payload any) error
}

// Archive is a Postgres-backed Recorder with a replay cursor.
type Archive struct {
	db     *sql.DB
	tracer trace.Tracer
}

// New creates an archive over an open database handle.
func New(db *sql.DB) *Archive {
	return &Archive{
		db:     db,
		tracer: otel.Tracer("bookledger/archive"),
	}
}

// EnsureSchema creates the archive table when it does not exist.
func (a *Archive) EnsureSchema(ctx context.Context) error {
	_, err := a.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS ledger_entries (
			id UUID PRIMARY KEY,
			kind TEXT NOT NULL,
			isbn TEXT NOT NULL,
			patron TEXT NOT NULL DEFAULT '',
			payload JSONB NOT NULL,
			recorded_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
	if err != nil {
		return fmt.Errorf("create archive schema: %w", err)
	}
	return nil
}

// Record appends one entry to the log.
func (a *Archive) Record(ctx context.Context, kind Kind, isbn, patron string, payload any) error {
	ctx, span := a.tracer.Start(ctx, "archive.record",
		trace.WithAttributes(
			attribute.String("entry.kind", string(kind)),
			attribute.String("book.isbn", isbn),
		),
	)
	defer span.End()

	body, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	_, err = a.db.ExecContext(ctx, `
		INSERT INTO ledger_entries (id, kind, isbn, patron, payload, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, uuid.New(), string(kind), isbn, patron, body, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("insert archive entry: %w", err)
	}

	span.SetAttributes(attribute.Bool("record.success", true))
	return nil
}

// Recent returns up to limit entries recorded at or after since, oldest
// first.
func (a *Archive) Recent(ctx context.Context, since time.Time, limit int) ([]Entry, error) {
	ctx, span := a.tracer.Start(ctx, "archive.recent",
		trace.WithAttributes(attribute.Int("batch.size", limit)),
	)
	defer span.End()

	rows, err := a.db.QueryContext(ctx, `
		SELECT id, kind, isbn, patron, payload, recorded_at
		FROM ledger_entries
		WHERE recorded_at >= $1
		ORDER BY recorded_at ASC
		LIMIT $2
	`, since, limit)
	if err != nil {
		return nil, fmt.Errorf("query archive entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var kind string
		if err := rows.Scan(&e.ID, &kind, &e.ISBN, &e.Patron, &e.Payload, &e.RecordedAt); err != nil {
			return nil, fmt.Errorf("scan archive entry: %w", err)
		}
		e.Kind = Kind(kind)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate archive entries: %w", err)
	}

	span.SetAttributes(attribute.Int("entries.loaded", len(entries)))
	return entries, nil
}

// NopRecorder discards entries. It is wired when no database is configured.
type NopRecorder struct{}

func (NopRecorder) Record(context.Context, Kind, string, string, any) error { return nil }
