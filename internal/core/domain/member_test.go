package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMember(t *testing.T) *Member {
	t.Helper()
	email, err := NewEmail("jane.doe@example.com")
	require.NoError(t, err)
	member, err := NewMember("Jane Doe", email, "+66-81-000-0000")
	require.NoError(t, err)
	return member
}

func TestNewMember_StartsActiveWithNoBooks(t *testing.T) {
	member := newTestMember(t)

	assert.Equal(t, MemberActive, member.Status())
	assert.Equal(t, 0, member.BorrowedBooksCount())
	assert.True(t, member.CanBorrowBooks())
	assert.NotEmpty(t, member.ID())
}

func TestNewMember_Validation(t *testing.T) {
	email, err := NewEmail("jane.doe@example.com")
	require.NoError(t, err)

	_, err = NewMember("   ", email, "+66-81-000-0000")
	assert.ErrorIs(t, err, ErrEmptyName)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = NewMember("Jane Doe", Email{}, "+66-81-000-0000")
	assert.ErrorIs(t, err, ErrEmptyEmail)

	_, err = NewMember("Jane Doe", email, "")
	assert.ErrorIs(t, err, ErrEmptyPhone)
}

func TestMember_BorrowLimit(t *testing.T) {
	member := newTestMember(t)

	for i := 0; i < MaxBorrowedBooks; i++ {
		require.NoError(t, member.BorrowBook(fmt.Sprintf("book-%d", i)))
	}
	assert.Equal(t, MaxBorrowedBooks, member.BorrowedBooksCount())
	assert.False(t, member.CanBorrowBooks())

	err := member.BorrowBook("book-over-limit")
	assert.ErrorIs(t, err, ErrBorrowLimitReached)
	assert.ErrorIs(t, err, ErrInvariant)
	assert.Equal(t, MaxBorrowedBooks, member.BorrowedBooksCount())

	require.NoError(t, member.ReturnBook("book-0"))
	assert.True(t, member.CanBorrowBooks())
	assert.NoError(t, member.BorrowBook("book-over-limit"))
}

func TestMember_BorrowDuplicate(t *testing.T) {
	member := newTestMember(t)
	require.NoError(t, member.BorrowBook("book-1"))

	err := member.BorrowBook("book-1")
	assert.ErrorIs(t, err, ErrBookAlreadyBorrowed)
	assert.Equal(t, 1, member.BorrowedBooksCount())
}

func TestMember_ReturnNotBorrowed(t *testing.T) {
	member := newTestMember(t)

	err := member.ReturnBook("book-unknown")
	assert.ErrorIs(t, err, ErrBookNotBorrowed)
	assert.ErrorIs(t, err, ErrInvariant)
}

func TestMember_SuspendBlocksBorrowing(t *testing.T) {
	member := newTestMember(t)
	require.NoError(t, member.BorrowBook("book-1"))

	member.Suspend()
	assert.Equal(t, MemberSuspended, member.Status())
	assert.False(t, member.CanBorrowBooks())

	err := member.BorrowBook("book-2")
	assert.ErrorIs(t, err, ErrBorrowLimitReached)

	// Returning while suspended still works.
	assert.NoError(t, member.ReturnBook("book-1"))

	member.Reactivate()
	assert.Equal(t, MemberActive, member.Status())
	assert.NoError(t, member.BorrowBook("book-2"))
}

func TestMember_BorrowedBookIDsIsCopy(t *testing.T) {
	member := newTestMember(t)
	require.NoError(t, member.BorrowBook("book-1"))

	ids := member.BorrowedBookIDs()
	ids[0] = "mutated"

	assert.Equal(t, []string{"book-1"}, member.BorrowedBookIDs())
}

func TestMember_SnapshotRoundTrip(t *testing.T) {
	member := newTestMember(t)
	require.NoError(t, member.BorrowBook("book-1"))
	member.Suspend()

	restored := RestoreMember(member.Snapshot())

	assert.Equal(t, member.ID(), restored.ID())
	assert.Equal(t, member.Email(), restored.Email())
	assert.Equal(t, MemberSuspended, restored.Status())
	assert.Equal(t, []string{"book-1"}, restored.BorrowedBookIDs())
}
