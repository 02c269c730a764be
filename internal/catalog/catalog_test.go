package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookledger/internal/fault"
)

func bookFields(isbn, title string, authors ...string) map[string]any {
	if len(authors) == 0 {
		authors = []string{"Ann Onym"}
	}
	list := make([]any, len(authors))
	for i, a := range authors {
		list[i] = a
	}
	return map[string]any{
		"isbn":      isbn,
		"title":     title,
		"authors":   list,
		"pages":     float64(240),
		"year":      float64(1999),
		"publisher": "Tidal House",
	}
}

func searchFields(query string) map[string]any {
	return map[string]any{"query": query}
}

func TestRegisterAndSearchRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := NewService()

	_, err := svc.Register(ctx, bookFields("111", "Sea Water Stories"))
	require.NoError(t, err)
	_, err = svc.Register(ctx, bookFields("222", "Water Only"))
	require.NoError(t, err)

	books, err := svc.Search(ctx, searchFields("water sea"))
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "111", books[0].ISBN)

	books, err = svc.Search(ctx, searchFields("WATER"))
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, "Sea Water Stories", books[0].Title)
	assert.Equal(t, "Water Only", books[1].Title)

	books, err = svc.Search(ctx, searchFields("zeppelin"))
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestSearchMatchesAuthorTokens(t *testing.T) {
	ctx := context.Background()
	svc := NewService()

	_, err := svc.Register(ctx, bookFields("111", "Sea Water Stories", "Jane Austen"))
	require.NoError(t, err)

	books, err := svc.Search(ctx, searchFields("austen"))
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "111", books[0].ISBN)
}

func TestRegisterDefaultsCopiesToOne(t *testing.T) {
	svc := NewService()

	book, err := svc.Register(context.Background(), bookFields("111", "Sea Water Stories"))
	require.NoError(t, err)
	assert.Equal(t, 1, book.Copies)
}

func TestReRegisterAddsCopies(t *testing.T) {
	ctx := context.Background()
	svc := NewService()

	first := bookFields("111", "Sea Water Stories")
	first["copies"] = float64(2)
	_, err := svc.Register(ctx, first)
	require.NoError(t, err)

	second := bookFields("111", "Sea Water Stories")
	second["copies"] = float64(3)
	book, err := svc.Register(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, 5, book.Copies)
	assert.Equal(t, "Sea Water Stories", book.Title)

	// Re-registration must not duplicate the index entries.
	books, err := svc.Search(ctx, searchFields("water stories"))
	require.NoError(t, err)
	assert.Len(t, books, 1)
}

func TestReRegisterMismatchRejected(t *testing.T) {
	ctx := context.Background()
	svc := NewService()

	_, err := svc.Register(ctx, bookFields("111", "Sea Water Stories"))
	require.NoError(t, err)

	_, err = svc.Register(ctx, bookFields("111", "Fresh Water Stories"))
	require.Error(t, err)
	errs, ok := fault.As(err)
	require.True(t, ok)
	require.Len(t, errs, 1)
	assert.Equal(t, fault.KindBadReq, errs[0].Kind)
	assert.Equal(t, "title", errs[0].Field)

	stored, err := svc.Get(ctx, "111")
	require.NoError(t, err)
	assert.Equal(t, "Sea Water Stories", stored.Title)
	assert.Equal(t, 1, stored.Copies)
}

func TestReRegisterReportsEveryMismatchedField(t *testing.T) {
	ctx := context.Background()
	svc := NewService()

	_, err := svc.Register(ctx, bookFields("111", "Sea Water Stories", "Ann Onym"))
	require.NoError(t, err)

	next := bookFields("111", "Fresh Water Stories", "Someone Else")
	next["pages"] = float64(512)
	_, err = svc.Register(ctx, next)
	require.Error(t, err)
	errs, ok := fault.As(err)
	require.True(t, ok)
	require.Len(t, errs, 3)
	assert.Equal(t, "title", errs[0].Field)
	assert.Equal(t, "authors", errs[1].Field)
	assert.Equal(t, "pages", errs[2].Field)
}

func TestRegisterValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewService()

	_, err := svc.Register(ctx, map[string]any{})
	require.Error(t, err)
	errs, ok := fault.As(err)
	require.True(t, ok)
	require.Len(t, errs, 6)
	for _, e := range errs {
		assert.Equal(t, fault.KindMissing, e.Kind)
	}
	assert.Equal(t, "isbn", errs[0].Field)
	assert.Equal(t, "publisher", errs[5].Field)

	bad := bookFields("111", "Sea Water Stories")
	bad["year"] = float64(0)
	_, err = svc.Register(ctx, bad)
	require.Error(t, err)
	errs, ok = fault.As(err)
	require.True(t, ok)
	require.Len(t, errs, 1)
	assert.Equal(t, fault.KindBadReq, errs[0].Kind)
	assert.Equal(t, "year", errs[0].Field)

	// A rejected registration must leave no trace.
	_, err = svc.Get(ctx, "111")
	require.Error(t, err)
}

func TestSearchRejectsShortTokenQueries(t *testing.T) {
	ctx := context.Background()
	svc := NewService()
	_, err := svc.Register(ctx, bookFields("111", "Sea Water Stories"))
	require.NoError(t, err)

	_, err = svc.Search(ctx, searchFields("a b"))
	require.Error(t, err)
	errs, ok := fault.As(err)
	require.True(t, ok)
	require.Len(t, errs, 1)
	assert.Equal(t, fault.KindBadReq, errs[0].Kind)
	assert.Equal(t, "empty search", errs[0].Message)

	_, err = svc.Search(ctx, map[string]any{})
	require.Error(t, err)
	errs, ok = fault.As(err)
	require.True(t, ok)
	assert.Equal(t, fault.KindMissing, errs[0].Kind)
	assert.Equal(t, "query", errs[0].Field)

	_, err = svc.Search(ctx, searchFields("   "))
	require.Error(t, err)
	errs, ok = fault.As(err)
	require.True(t, ok)
	assert.Equal(t, fault.KindBadReq, errs[0].Kind)
}

func TestGetUnknownIsNotFound(t *testing.T) {
	svc := NewService()

	_, err := svc.Get(context.Background(), "999")
	require.Error(t, err)
	errs, ok := fault.As(err)
	require.True(t, ok)
	assert.True(t, errs.Has(fault.KindNotFound))
}

func TestReturnedRecordsAreDetached(t *testing.T) {
	ctx := context.Background()
	svc := NewService()

	book, err := svc.Register(ctx, bookFields("111", "Sea Water Stories", "Ann Onym"))
	require.NoError(t, err)
	book.Title = "Tampered"
	book.Authors[0] = "Tampered"

	stored, err := svc.Get(ctx, "111")
	require.NoError(t, err)
	assert.Equal(t, "Sea Water Stories", stored.Title)
	assert.Equal(t, []string{"Ann Onym"}, stored.Authors)
}
