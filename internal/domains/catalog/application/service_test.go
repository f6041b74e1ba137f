package application

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-labs/bookstore-api/internal/domains/catalog/adapters/memory"
	"github.com/inkwell-labs/bookstore-api/internal/domains/catalog/domain"
	"github.com/inkwell-labs/bookstore-api/internal/domains/catalog/ports"
)

func newCatalogService() *Service {
	return NewService(memory.NewRepository())
}

func TestCreateBook_PersistsAndKeepsPrice(t *testing.T) {
	svc := newCatalogService()

	book, err := domain.NewBook("The Go Programming Language", 39.99)
	require.NoError(t, err)

	saved, err := svc.CreateBook(context.Background(), book)
	require.NoError(t, err)
	require.Equal(t, 39.99, saved.NewPrice)
	require.NotEqual(t, uuid.Nil, saved.ID)
}

func TestCreateBook_UniqueIdentities(t *testing.T) {
	svc := newCatalogService()

	first, err := domain.NewBook("Book One", 10)
	require.NoError(t, err)
	second, err := domain.NewBook("Book Two", 10)
	require.NoError(t, err)

	savedFirst, err := svc.CreateBook(context.Background(), first)
	require.NoError(t, err)
	savedSecond, err := svc.CreateBook(context.Background(), second)
	require.NoError(t, err)
	require.NotEqual(t, savedFirst.ID, savedSecond.ID)
}

func TestCreateBook_EmptyTitle(t *testing.T) {
	svc := newCatalogService()

	book := &domain.Book{Title: "   ", NewPrice: 5}
	_, err := svc.CreateBook(context.Background(), book)
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrEmptyTitle)
}

func TestUpdateBook_EmptyPatchKeepsFields(t *testing.T) {
	svc := newCatalogService()

	book, err := domain.NewBook("Unchanged", 12.50)
	require.NoError(t, err)
	book.Describe("a description")
	saved, err := svc.CreateBook(context.Background(), book)
	require.NoError(t, err)

	updated, err := svc.UpdateBook(context.Background(), saved.ID, ports.BookPatch{})
	require.NoError(t, err)
	require.Equal(t, saved.Title, updated.Title)
	require.Equal(t, saved.Description, updated.Description)
	require.Equal(t, saved.NewPrice, updated.NewPrice)
	require.Equal(t, saved.CreatedAt, updated.CreatedAt)
}

func TestUpdateBook_PartialPatch(t *testing.T) {
	svc := newCatalogService()

	book, err := domain.NewBook("Original Title", 20)
	require.NoError(t, err)
	saved, err := svc.CreateBook(context.Background(), book)
	require.NoError(t, err)

	trending := true
	newPrice := 15.0
	updated, err := svc.UpdateBook(context.Background(), saved.ID, ports.BookPatch{
		Trending: &trending,
		NewPrice: &newPrice,
	})
	require.NoError(t, err)
	require.True(t, updated.Trending)
	require.Equal(t, 15.0, updated.NewPrice)
	require.Equal(t, "Original Title", updated.Title)
}

func TestUpdateBook_RejectsNegativePrice(t *testing.T) {
	svc := newCatalogService()

	book, err := domain.NewBook("Priced", 20)
	require.NoError(t, err)
	saved, err := svc.CreateBook(context.Background(), book)
	require.NoError(t, err)

	bad := -1.0
	_, err = svc.UpdateBook(context.Background(), saved.ID, ports.BookPatch{NewPrice: &bad})
	require.ErrorIs(t, err, domain.ErrNegativePrice)
}

func TestDeleteBook_ReturnsRecordThenNotFound(t *testing.T) {
	svc := newCatalogService()

	book, err := domain.NewBook("Doomed", 8)
	require.NoError(t, err)
	saved, err := svc.CreateBook(context.Background(), book)
	require.NoError(t, err)

	deleted, err := svc.DeleteBook(context.Background(), saved.ID)
	require.NoError(t, err)
	require.Equal(t, saved.ID, deleted.ID)

	_, err = svc.GetBook(context.Background(), saved.ID)
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestDeleteBook_UnknownID(t *testing.T) {
	svc := newCatalogService()

	_, err := svc.DeleteBook(context.Background(), uuid.New())
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestListBooks_NewestFirst(t *testing.T) {
	svc := newCatalogService()

	older, err := domain.NewBook("Older", 5)
	require.NoError(t, err)
	older.CreatedAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	newer, err := domain.NewBook("Newer", 5)
	require.NoError(t, err)
	newer.CreatedAt = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	_, err = svc.CreateBook(context.Background(), older)
	require.NoError(t, err)
	_, err = svc.CreateBook(context.Background(), newer)
	require.NoError(t, err)

	books, err := svc.ListBooks(context.Background())
	require.NoError(t, err)
	require.Len(t, books, 2)
	require.Equal(t, "Newer", books[0].Title)
	require.Equal(t, "Older", books[1].Title)
}

func TestCountTrendingBooks(t *testing.T) {
	svc := newCatalogService()

	trending, err := domain.NewBook("Hot", 5)
	require.NoError(t, err)
	trending.MarkTrending(true)
	plain, err := domain.NewBook("Cold", 5)
	require.NoError(t, err)

	_, err = svc.CreateBook(context.Background(), trending)
	require.NoError(t, err)
	_, err = svc.CreateBook(context.Background(), plain)
	require.NoError(t, err)

	count, err := svc.CountTrendingBooks(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(1), count)

	total, err := svc.CountBooks(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
}
