package services

import (
	"context"
	"errors"

	"liblend/internal/adapters/persistence/repositories"
	"liblend/internal/core/domain"

	"gorm.io/gorm"
)

// Book service errors
var (
	ErrBookNotFound       = errors.New("book not found")
	ErrDuplicateISBN      = errors.New("a book with this ISBN already exists")
	ErrBookHasActiveLoans = errors.New("book has active loans")
)

// BookService handles catalog business logic
type BookService struct {
	bookRepo repositories.BookRepository
	loanRepo repositories.LoanRepository
}

// NewBookService creates a new book service
func NewBookService(bookRepo repositories.BookRepository, loanRepo repositories.LoanRepository) *BookService {
	return &BookService{
		bookRepo: bookRepo,
		loanRepo: loanRepo,
	}
}

// CreateBookInput represents create book input
type CreateBookInput struct {
	Title           string `json:"title" validate:"required"`
	Author          string `json:"author" validate:"required"`
	ISBN            string `json:"isbn" validate:"required"`
	PublicationYear int    `json:"publication_year" validate:"required"`
	Category        string `json:"category,omitempty"`
	TotalCopies     int    `json:"total_copies" validate:"required,gte=1"`
}

// Create registers a new book. The ISBN must be valid and not already
// in the catalog.
func (s *BookService) Create(ctx context.Context, input *CreateBookInput) (*domain.Book, error) {
	isbn, err := domain.NewISBN(input.ISBN)
	if err != nil {
		return nil, err
	}

	exists, err := s.bookRepo.ExistsByISBN(ctx, isbn)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateISBN
	}

	book, err := domain.NewBook(input.Title, input.Author, isbn, input.PublicationYear, input.Category, input.TotalCopies)
	if err != nil {
		return nil, err
	}

	if err := s.bookRepo.Create(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

// GetByID gets a book by ID
func (s *BookService) GetByID(ctx context.Context, id string) (*domain.Book, error) {
	book, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}
	return book, nil
}

// GetByISBN gets a book by ISBN
func (s *BookService) GetByISBN(ctx context.Context, rawISBN string) (*domain.Book, error) {
	isbn, err := domain.NewISBN(rawISBN)
	if err != nil {
		return nil, err
	}

	book, err := s.bookRepo.GetByISBN(ctx, isbn)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}
	return book, nil
}

// List lists books with pagination
func (s *BookService) List(ctx context.Context, offset, limit int) ([]*domain.Book, int64, error) {
	return s.bookRepo.List(ctx, offset, limit)
}

// SearchByTitle finds books by title fragment
func (s *BookService) SearchByTitle(ctx context.Context, title string) ([]*domain.Book, error) {
	return s.bookRepo.SearchByTitle(ctx, title)
}

// SearchByAuthor finds books by author fragment
func (s *BookService) SearchByAuthor(ctx context.Context, author string) ([]*domain.Book, error) {
	return s.bookRepo.SearchByAuthor(ctx, author)
}

// GetByCategory gets books in a category
func (s *BookService) GetByCategory(ctx context.Context, category string) ([]*domain.Book, error) {
	return s.bookRepo.GetByCategory(ctx, category)
}

// GetAvailable gets books with at least one available copy
func (s *BookService) GetAvailable(ctx context.Context) ([]*domain.Book, error) {
	return s.bookRepo.GetAvailable(ctx)
}

// UpdateDetailsInput represents update book input. Empty or zero
// fields keep their current value.
type UpdateDetailsInput struct {
	Title           string `json:"title,omitempty"`
	Author          string `json:"author,omitempty"`
	PublicationYear int    `json:"publication_year,omitempty"`
	Category        string `json:"category,omitempty"`
}

// UpdateDetails patches a book's descriptive fields
func (s *BookService) UpdateDetails(ctx context.Context, id string, input *UpdateDetailsInput) (*domain.Book, error) {
	book, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	book.UpdateDetails(input.Title, input.Author, input.PublicationYear, input.Category)

	if err := s.bookRepo.Update(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

// AddCopies increases a book's stock
func (s *BookService) AddCopies(ctx context.Context, id string, quantity int) (*domain.Book, error) {
	book, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := book.AddCopies(quantity); err != nil {
		return nil, err
	}

	if err := s.bookRepo.Update(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

// Delete removes a book from the catalog. Books with active loans
// cannot be removed.
func (s *BookService) Delete(ctx context.Context, id string) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	active, err := s.loanRepo.CountActiveByBookID(ctx, id)
	if err != nil {
		return err
	}
	if active > 0 {
		return ErrBookHasActiveLoans
	}

	return s.bookRepo.Delete(ctx, id)
}
