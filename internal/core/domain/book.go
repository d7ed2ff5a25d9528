package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Book is the catalog aggregate. Its copy-count invariant
// (0 <= available <= total, total >= 1) is enforced by every mutator;
// a rejected operation leaves the counts untouched.
type Book struct {
	id              string
	title           string
	author          string
	isbn            ISBN
	publicationYear int
	category        string
	totalCopies     int
	availableCopies int
	version         int64
	createdAt       time.Time
	updatedAt       *time.Time
}

// NewBook creates a catalog entry. All copies start available.
func NewBook(title, author string, isbn ISBN, publicationYear int, category string, totalCopies int) (*Book, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrEmptyTitle
	}
	if strings.TrimSpace(author) == "" {
		return nil, ErrEmptyAuthor
	}
	if publicationYear < 1000 || publicationYear > nowFunc().UTC().Year()+1 {
		return nil, ErrInvalidYear
	}
	if totalCopies < 1 {
		return nil, ErrNotEnoughCopies
	}

	return &Book{
		id:              uuid.New().String(),
		title:           title,
		author:          author,
		isbn:            isbn,
		publicationYear: publicationYear,
		category:        category,
		totalCopies:     totalCopies,
		availableCopies: totalCopies,
		createdAt:       nowFunc().UTC(),
	}, nil
}

func (b *Book) ID() string { return b.id }
func (b *Book) Title() string { return b.title }
func (b *Book) Author() string { return b.author }
func (b *Book) ISBN() ISBN { return b.isbn }
func (b *Book) PublicationYear() int { return b.publicationYear }
func (b *Book) Category() string { return b.category }
func (b *Book) TotalCopies() int { return b.totalCopies }
func (b *Book) AvailableCopies() int { return b.availableCopies }
func (b *Book) Version() int64 { return b.version }
func (b *Book) CreatedAt() time.Time { return b.createdAt }
func (b *Book) UpdatedAt() *time.Time { return b.updatedAt }

// AddCopies registers newly acquired copies. Total copies never
// decrease.
func (b *Book) AddCopies(quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	b.totalCopies += quantity
	b.availableCopies += quantity
	b.markUpdated()
	return nil
}

// CanBeBorrowed reports whether at least one copy is on the shelf.
func (b *Book) CanBeBorrowed() bool {
	return b.availableCopies > 0
}

// BorrowCopy takes one copy off the shelf.
func (b *Book) BorrowCopy() error {
	if !b.CanBeBorrowed() {
		return ErrNoCopiesAvailable
	}

	b.availableCopies--
	b.markUpdated()
	return nil
}

// ReturnCopy puts one copy back. Guards against returning more copies
// than exist.
func (b *Book) ReturnCopy() error {
	if b.availableCopies >= b.totalCopies {
		return ErrAllCopiesReturned
	}

	b.availableCopies++
	b.markUpdated()
	return nil
}

// UpdateDetails applies a best-effort patch: each field is updated
// only when the supplied value is non-empty and in range, otherwise it
// is silently left unchanged.
func (b *Book) UpdateDetails(title, author string, publicationYear int, category string) {
	if strings.TrimSpace(title) != "" {
		b.title = title
	}
	if strings.TrimSpace(author) != "" {
		b.author = author
	}
	if publicationYear >= 1000 && publicationYear <= nowFunc().UTC().Year()+1 {
		b.publicationYear = publicationYear
	}
	if strings.TrimSpace(category) != "" {
		b.category = category
	}
	b.markUpdated()
}

func (b *Book) markUpdated() {
	now := nowFunc().UTC()
	b.updatedAt = &now
}

// BookSnapshot is the persistence view of a Book.
type BookSnapshot struct {
	ID              string
	Title           string
	Author          string
	ISBN            string
	PublicationYear int
	Category        string
	TotalCopies     int
	AvailableCopies int
	Version         int64
	CreatedAt       time.Time
	UpdatedAt       *time.Time
}

// Snapshot exports the aggregate state for storage.
func (b *Book) Snapshot() BookSnapshot {
	return BookSnapshot{
		ID:              b.id,
		Title:           b.title,
		Author:          b.author,
		ISBN:            b.isbn.String(),
		PublicationYear: b.publicationYear,
		Category:        b.category,
		TotalCopies:     b.totalCopies,
		AvailableCopies: b.availableCopies,
		Version:         b.version,
		CreatedAt:       b.createdAt,
		UpdatedAt:       b.updatedAt,
	}
}

// RestoreBook rebuilds a Book from stored state without re-validation.
func RestoreBook(s BookSnapshot) *Book {
	return &Book{
		id:              s.ID,
		title:           s.Title,
		author:          s.Author,
		isbn:            restoreISBN(s.ISBN),
		publicationYear: s.PublicationYear,
		category:        s.Category,
		totalCopies:     s.TotalCopies,
		availableCopies: s.AvailableCopies,
		version:         s.Version,
		createdAt:       s.CreatedAt,
		updatedAt:       s.UpdatedAt,
	}
}
