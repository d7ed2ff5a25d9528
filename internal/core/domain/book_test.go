package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustISBN(t *testing.T, raw string) ISBN {
	t.Helper()
	isbn, err := NewISBN(raw)
	require.NoError(t, err)
	return isbn
}

func newTestBook(t *testing.T, totalCopies int) *Book {
	t.Helper()
	book, err := NewBook("Clean Code", "Robert C. Martin", mustISBN(t, "9780132350884"), 2008, "Software", totalCopies)
	require.NoError(t, err)
	return book
}

func TestNewBook_AllCopiesAvailable(t *testing.T) {
	for _, total := range []int{1, 3, 10} {
		book := newTestBook(t, total)
		assert.Equal(t, total, book.TotalCopies())
		assert.Equal(t, total, book.AvailableCopies())
		assert.NotEmpty(t, book.ID())
		assert.Nil(t, book.UpdatedAt())
	}
}

func TestNewBook_Validation(t *testing.T) {
	isbn := mustISBN(t, "9780132350884")

	tests := []struct {
		name  string
		fn    func() (*Book, error)
		want  error
	}{
		{"empty_title", func() (*Book, error) {
			return NewBook("", "Author", isbn, 2008, "Software", 1)
		}, ErrEmptyTitle},
		{"blank_author", func() (*Book, error) {
			return NewBook("Title", "   ", isbn, 2008, "Software", 1)
		}, ErrEmptyAuthor},
		{"year_too_old", func() (*Book, error) {
			return NewBook("Title", "Author", isbn, 999, "Software", 1)
		}, ErrInvalidYear},
		{"year_too_far_ahead", func() (*Book, error) {
			return NewBook("Title", "Author", isbn, time.Now().UTC().Year()+2, "Software", 1)
		}, ErrInvalidYear},
		{"zero_copies", func() (*Book, error) {
			return NewBook("Title", "Author", isbn, 2008, "Software", 0)
		}, ErrNotEnoughCopies},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.fn()
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestBook_BorrowCopy_LastCopy(t *testing.T) {
	book := newTestBook(t, 1)

	require.True(t, book.CanBeBorrowed())
	require.NoError(t, book.BorrowCopy())

	assert.Equal(t, 0, book.AvailableCopies())
	assert.False(t, book.CanBeBorrowed())

	err := book.BorrowCopy()
	assert.ErrorIs(t, err, ErrNoCopiesAvailable)
	assert.ErrorIs(t, err, ErrInvariant)
	assert.Equal(t, 0, book.AvailableCopies(), "rejected borrow must not change counts")
}

func TestBook_ReturnCopy_OverReturnGuard(t *testing.T) {
	book := newTestBook(t, 2)

	err := book.ReturnCopy()
	assert.ErrorIs(t, err, ErrAllCopiesReturned)
	assert.Equal(t, 2, book.AvailableCopies())

	require.NoError(t, book.BorrowCopy())
	require.NoError(t, book.ReturnCopy())
	assert.Equal(t, 2, book.AvailableCopies())
}

func TestBook_AddCopies(t *testing.T) {
	book := newTestBook(t, 2)
	require.NoError(t, book.BorrowCopy())

	require.NoError(t, book.AddCopies(3))
	assert.Equal(t, 5, book.TotalCopies())
	assert.Equal(t, 4, book.AvailableCopies())

	err := book.AddCopies(0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	assert.Equal(t, 5, book.TotalCopies())
}

func TestBook_UpdateDetails_BestEffortPatch(t *testing.T) {
	book := newTestBook(t, 1)

	// Empty title and out-of-range year are skipped, not rejected.
	book.UpdateDetails("", "Uncle Bob", 999, "")

	assert.Equal(t, "Clean Code", book.Title())
	assert.Equal(t, "Uncle Bob", book.Author())
	assert.Equal(t, 2008, book.PublicationYear())
	assert.Equal(t, "Software", book.Category())

	book.UpdateDetails("The Clean Coder", "", 2011, "Craftsmanship")
	assert.Equal(t, "The Clean Coder", book.Title())
	assert.Equal(t, "Uncle Bob", book.Author())
	assert.Equal(t, 2011, book.PublicationYear())
	assert.Equal(t, "Craftsmanship", book.Category())
}

func TestBook_SnapshotRoundTrip(t *testing.T) {
	book := newTestBook(t, 3)
	require.NoError(t, book.BorrowCopy())

	restored := RestoreBook(book.Snapshot())

	assert.Equal(t, book.ID(), restored.ID())
	assert.Equal(t, book.ISBN(), restored.ISBN())
	assert.Equal(t, book.TotalCopies(), restored.TotalCopies())
	assert.Equal(t, book.AvailableCopies(), restored.AvailableCopies())
}
