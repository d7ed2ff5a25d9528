package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setNow pins the package clock for a test and restores it afterwards.
func setNow(t *testing.T, at time.Time) {
	t.Helper()
	nowFunc = func() time.Time { return at }
	t.Cleanup(func() { nowFunc = time.Now })
}

func newTestLoan(t *testing.T) *Loan {
	t.Helper()
	loan, err := NewLoan("book-1", "member-1")
	require.NoError(t, err)
	return loan
}

func TestNewLoan_DueFourteenDaysOut(t *testing.T) {
	start := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	setNow(t, start)

	loan := newTestLoan(t)

	assert.Equal(t, LoanActive, loan.Status())
	assert.Equal(t, start, loan.LoanDate())
	assert.Equal(t, start.AddDate(0, 0, 14), loan.DueDate())
	assert.Nil(t, loan.ReturnDate())
	assert.Nil(t, loan.LateFee())
}

func TestNewLoan_Validation(t *testing.T) {
	_, err := NewLoan("", "member-1")
	assert.ErrorIs(t, err, ErrEmptyBookID)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = NewLoan("book-1", "  ")
	assert.ErrorIs(t, err, ErrEmptyMemberID)
}

func TestLoan_OverdueAccrual(t *testing.T) {
	start := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	setNow(t, start)
	loan := newTestLoan(t)

	// On the due date it is not overdue yet.
	setNow(t, start.AddDate(0, 0, 14))
	assert.False(t, loan.IsOverdue())
	assert.Equal(t, 0, loan.DaysOverdue())
	assert.Equal(t, 0.0, loan.CurrentLateFee())

	// Three whole days late: 3 * 2.00.
	setNow(t, start.AddDate(0, 0, 17))
	assert.True(t, loan.IsOverdue())
	assert.Equal(t, 3, loan.DaysOverdue())
	assert.Equal(t, 6.0, loan.CurrentLateFee())
	assert.Nil(t, loan.LateFee(), "fee must stay unset until return")
}

func TestLoan_ReturnOnTime(t *testing.T) {
	start := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	setNow(t, start)
	loan := newTestLoan(t)

	returnedAt := start.AddDate(0, 0, 10)
	setNow(t, returnedAt)
	require.NoError(t, loan.Return())

	assert.Equal(t, LoanReturned, loan.Status())
	require.NotNil(t, loan.ReturnDate())
	assert.Equal(t, returnedAt, *loan.ReturnDate())
	assert.Nil(t, loan.LateFee())
}

func TestLoan_ReturnLate_FreezesFee(t *testing.T) {
	start := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	setNow(t, start)
	loan := newTestLoan(t)

	setNow(t, start.AddDate(0, 0, 17))
	require.NoError(t, loan.Return())

	require.NotNil(t, loan.LateFee())
	assert.Equal(t, 6.0, *loan.LateFee())

	// The frozen fee does not keep accruing.
	setNow(t, start.AddDate(0, 0, 30))
	assert.Equal(t, 6.0, *loan.LateFee())
	assert.Equal(t, 0.0, loan.CurrentLateFee())
}

func TestLoan_DoubleReturn(t *testing.T) {
	loan := newTestLoan(t)
	require.NoError(t, loan.Return())

	err := loan.Return()
	assert.ErrorIs(t, err, ErrLoanNotActive)
	assert.ErrorIs(t, err, ErrInvariant)
}

func TestLoan_Renew(t *testing.T) {
	start := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	setNow(t, start)
	loan := newTestLoan(t)

	require.NoError(t, loan.Renew(7))
	assert.Equal(t, start.AddDate(0, 0, 21), loan.DueDate())

	err := loan.Renew(0)
	assert.ErrorIs(t, err, ErrInvalidRenewalDays)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestLoan_RenewOverdue(t *testing.T) {
	start := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	setNow(t, start)
	loan := newTestLoan(t)

	setNow(t, start.AddDate(0, 0, 15))
	err := loan.Renew(7)
	assert.ErrorIs(t, err, ErrLoanOverdue)
	assert.Equal(t, start.AddDate(0, 0, 14), loan.DueDate(), "failed renewal must not move the due date")
}

func TestLoan_RenewAfterReturn(t *testing.T) {
	loan := newTestLoan(t)
	require.NoError(t, loan.Return())

	err := loan.Renew(7)
	assert.ErrorIs(t, err, ErrLoanNotActive)
}

func TestLoan_MarkLost(t *testing.T) {
	loan := newTestLoan(t)

	require.NoError(t, loan.MarkLost())
	assert.Equal(t, LoanLost, loan.Status())

	// Marking lost twice is accepted.
	assert.NoError(t, loan.MarkLost())
	assert.Equal(t, LoanLost, loan.Status())
}

func TestLoan_MarkLostAfterReturn(t *testing.T) {
	loan := newTestLoan(t)
	require.NoError(t, loan.Return())

	err := loan.MarkLost()
	assert.ErrorIs(t, err, ErrLoanAlreadyReturned)
	assert.Equal(t, LoanReturned, loan.Status())
}

func TestLoan_SnapshotRoundTrip(t *testing.T) {
	start := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	setNow(t, start)
	loan := newTestLoan(t)

	setNow(t, start.AddDate(0, 0, 17))
	require.NoError(t, loan.Return())

	restored := RestoreLoan(loan.Snapshot())

	assert.Equal(t, loan.ID(), restored.ID())
	assert.Equal(t, loan.DueDate(), restored.DueDate())
	assert.Equal(t, LoanReturned, restored.Status())
	require.NotNil(t, restored.LateFee())
	assert.Equal(t, 6.0, *restored.LateFee())
}
