package services

import (
	"context"
	"testing"

	"liblend/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBookServiceFixture() (*BookService, *memBookRepo, *memLoanRepo) {
	bookRepo := newMemBookRepo()
	loanRepo := newMemLoanRepo()
	return NewBookService(bookRepo, loanRepo), bookRepo, loanRepo
}

func TestBookService_Create(t *testing.T) {
	svc, _, _ := newBookServiceFixture()

	book, err := svc.Create(context.Background(), &CreateBookInput{
		Title:           "Clean Architecture",
		Author:          "Robert C. Martin",
		ISBN:            "978-0-13-449416-6",
		PublicationYear: 2017,
		Category:        "Software",
		TotalCopies:     3,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, book.ID())
	assert.Equal(t, "9780134494166", book.ISBN().String())
	assert.Equal(t, 3, book.AvailableCopies())
}

func TestBookService_Create_InvalidISBN(t *testing.T) {
	svc, _, _ := newBookServiceFixture()

	_, err := svc.Create(context.Background(), &CreateBookInput{
		Title:           "Clean Architecture",
		Author:          "Robert C. Martin",
		ISBN:            "978-0-13-449416-0",
		PublicationYear: 2017,
		TotalCopies:     1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidISBN)
}

func TestBookService_Create_DuplicateISBN(t *testing.T) {
	svc, _, _ := newBookServiceFixture()

	input := &CreateBookInput{
		Title:           "Clean Architecture",
		Author:          "Robert C. Martin",
		ISBN:            "978-0-13-449416-6",
		PublicationYear: 2017,
		TotalCopies:     1,
	}
	_, err := svc.Create(context.Background(), input)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), input)
	assert.ErrorIs(t, err, ErrDuplicateISBN)
}

func TestBookService_GetByID_NotFound(t *testing.T) {
	svc, _, _ := newBookServiceFixture()

	_, err := svc.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrBookNotFound)
}

func TestBookService_UpdateDetails(t *testing.T) {
	svc, _, _ := newBookServiceFixture()

	book, err := svc.Create(context.Background(), &CreateBookInput{
		Title:           "Clean Architecture",
		Author:          "Robert C. Martin",
		ISBN:            "978-0-13-449416-6",
		PublicationYear: 2017,
		TotalCopies:     1,
	})
	require.NoError(t, err)

	updated, err := svc.UpdateDetails(context.Background(), book.ID(), &UpdateDetailsInput{
		Title:    "Clean Architecture, 2nd ed.",
		Category: "Architecture",
	})
	require.NoError(t, err)

	assert.Equal(t, "Clean Architecture, 2nd ed.", updated.Title())
	assert.Equal(t, "Robert C. Martin", updated.Author())
	assert.Equal(t, "Architecture", updated.Category())
}

func TestBookService_AddCopies(t *testing.T) {
	svc, _, _ := newBookServiceFixture()

	book, err := svc.Create(context.Background(), &CreateBookInput{
		Title:           "Clean Architecture",
		Author:          "Robert C. Martin",
		ISBN:            "978-0-13-449416-6",
		PublicationYear: 2017,
		TotalCopies:     1,
	})
	require.NoError(t, err)

	updated, err := svc.AddCopies(context.Background(), book.ID(), 4)
	require.NoError(t, err)

	assert.Equal(t, 5, updated.TotalCopies())
	assert.Equal(t, 5, updated.AvailableCopies())
}

func TestBookService_Delete_WithActiveLoans(t *testing.T) {
	svc, bookRepo, loanRepo := newBookServiceFixture()

	book, err := svc.Create(context.Background(), &CreateBookInput{
		Title:           "Clean Architecture",
		Author:          "Robert C. Martin",
		ISBN:            "978-0-13-449416-6",
		PublicationYear: 2017,
		TotalCopies:     1,
	})
	require.NoError(t, err)

	loan, err := domain.NewLoan(book.ID(), "member-1")
	require.NoError(t, err)
	require.NoError(t, loanRepo.Create(context.Background(), loan))

	err = svc.Delete(context.Background(), book.ID())
	assert.ErrorIs(t, err, ErrBookHasActiveLoans)

	// Still present.
	_, err = bookRepo.GetByID(context.Background(), book.ID())
	assert.NoError(t, err)
}

func TestBookService_Delete(t *testing.T) {
	svc, _, _ := newBookServiceFixture()

	book, err := svc.Create(context.Background(), &CreateBookInput{
		Title:           "Clean Architecture",
		Author:          "Robert C. Martin",
		ISBN:            "978-0-13-449416-6",
		PublicationYear: 2017,
		TotalCopies:     1,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), book.ID()))

	_, err = svc.GetByID(context.Background(), book.ID())
	assert.ErrorIs(t, err, ErrBookNotFound)
}
