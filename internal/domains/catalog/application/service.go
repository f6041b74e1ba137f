package application

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"

	"github.com/inkwell-labs/bookstore-api/internal/domains/catalog/domain"
	"github.com/inkwell-labs/bookstore-api/internal/domains/catalog/ports"
)

// Service orchestrates the catalog bounded context use cases.
type Service struct {
	repo ports.Repository
}

// NewService wires the catalog service with its dependencies.
func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// CreateBook persists a new book aggregate.
func (s *Service) CreateBook(ctx context.Context, book *domain.Book) (*domain.Book, error) {
	if book == nil {
		return nil, errors.New("book is nil")
	}
	if book.ID == uuid.Nil {
		book.ID = uuid.New()
	}
	if err := book.Validate(); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, book)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// ListBooks returns the whole catalog, newest first.
func (s *Service) ListBooks(ctx context.Context) ([]*domain.Book, error) {
	books, err := s.repo.List(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	sort.SliceStable(books, func(i, j int) bool {
		return books[i].CreatedAt.After(books[j].CreatedAt)
	})
	return books, nil
}

// GetBook loads a single book aggregate.
func (s *Service) GetBook(ctx context.Context, id uuid.UUID) (*domain.Book, error) {
	book, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return book, nil
}

// UpdateBook merges the provided fields over the existing record and re-validates.
func (s *Service) UpdateBook(ctx context.Context, id uuid.UUID, patch ports.BookPatch) (*domain.Book, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	if err := applyPatch(existing, patch); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, existing)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// DeleteBook removes a book and returns the deleted record.
func (s *Service) DeleteBook(ctx context.Context, id uuid.UUID) (*domain.Book, error) {
	book, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, mapError(err)
	}
	return book, nil
}

// CountBooks exposes the catalog size for reporting.
func (s *Service) CountBooks(ctx context.Context) (int64, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return 0, mapError(err)
	}
	return count, nil
}

// CountTrendingBooks counts books currently flagged as trending.
func (s *Service) CountTrendingBooks(ctx context.Context) (int64, error) {
	count, err := s.repo.CountTrending(ctx)
	if err != nil {
		return 0, mapError(err)
	}
	return count, nil
}

func applyPatch(target *domain.Book, patch ports.BookPatch) error {
	if patch.Title != nil {
		if err := target.Rename(*patch.Title); err != nil {
			return err
		}
	}
	if patch.Description != nil {
		target.Describe(*patch.Description)
	}
	if patch.Category != nil {
		target.Categorize(*patch.Category)
	}
	if patch.Trending != nil {
		target.MarkTrending(*patch.Trending)
	}
	if patch.OldPrice != nil {
		if err := target.SetOldPrice(patch.OldPrice); err != nil {
			return err
		}
	}
	if patch.NewPrice != nil {
		if err := target.SetNewPrice(*patch.NewPrice); err != nil {
			return err
		}
	}
	if patch.CoverImage != nil {
		target.AttachCover(*patch.CoverImage)
	}
	return target.Validate()
}

var _ ports.Service = (*Service)(nil)
