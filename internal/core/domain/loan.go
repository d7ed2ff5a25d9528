package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// LoanStatus is a loan's position in its lifecycle. Returned and Lost
// are terminal.
type LoanStatus string

const (
	LoanActive   LoanStatus = "ACTIVE"
	LoanReturned LoanStatus = "RETURNED"
	LoanLost     LoanStatus = "LOST"
)

const (
	// DefaultLoanDays is the standard lending period.
	DefaultLoanDays = 14

	// LateFeePerDay is the fixed penalty per whole day overdue.
	LateFeePerDay = 2.00
)

// Loan tracks one lending of one book copy to one member. The book and
// member references are immutable after creation; the due date moves
// only through renewal; the late fee is frozen at return time.
type Loan struct {
	id         string
	bookID     string
	memberID   string
	loanDate   time.Time
	dueDate    time.Time
	returnDate *time.Time
	status     LoanStatus
	lateFee    *float64
	version    int64
	createdAt  time.Time
	updatedAt  *time.Time
}

// NewLoan starts an Active loan due DefaultLoanDays from now.
func NewLoan(bookID, memberID string) (*Loan, error) {
	if strings.TrimSpace(bookID) == "" {
		return nil, ErrEmptyBookID
	}
	if strings.TrimSpace(memberID) == "" {
		return nil, ErrEmptyMemberID
	}

	now := nowFunc().UTC()
	return &Loan{
		id:        uuid.New().String(),
		bookID:    bookID,
		memberID:  memberID,
		loanDate:  now,
		dueDate:   now.AddDate(0, 0, DefaultLoanDays),
		status:    LoanActive,
		createdAt: now,
	}, nil
}

func (l *Loan) ID() string { return l.id }
func (l *Loan) BookID() string { return l.bookID }
func (l *Loan) MemberID() string { return l.memberID }
func (l *Loan) LoanDate() time.Time { return l.loanDate }
func (l *Loan) DueDate() time.Time { return l.dueDate }
func (l *Loan) ReturnDate() *time.Time { return l.returnDate }
func (l *Loan) Status() LoanStatus { return l.status }
func (l *Loan) LateFee() *float64 { return l.lateFee }
func (l *Loan) Version() int64 { return l.version }
func (l *Loan) CreatedAt() time.Time { return l.createdAt }
func (l *Loan) UpdatedAt() *time.Time { return l.updatedAt }

// IsOverdue reports whether the loan is Active past its due date.
// Pure query, no mutation.
func (l *Loan) IsOverdue() bool {
	return l.status == LoanActive && nowFunc().UTC().After(l.dueDate)
}

// DaysOverdue returns the number of whole days past the due date, or
// 0 when the loan is not overdue.
func (l *Loan) DaysOverdue() int {
	if !l.IsOverdue() {
		return 0
	}
	return wholeDaysBetween(l.dueDate, nowFunc().UTC())
}

// Return closes an Active loan. When the loan is overdue at the moment
// of return the late fee is computed from that same moment and frozen;
// otherwise the fee stays unset.
func (l *Loan) Return() error {
	if l.status != LoanActive {
		return ErrLoanNotActive
	}

	now := nowFunc().UTC()
	l.returnDate = &now
	l.status = LoanReturned

	// The overdue check compares the return instant against the due
	// date, not a later recomputation.
	if now.After(l.dueDate) {
		fee := float64(wholeDaysBetween(l.dueDate, now)) * LateFeePerDay
		l.lateFee = &fee
	}

	l.markUpdated()
	return nil
}

// Renew extends the due date of a timely Active loan. A loan that has
// already lapsed cannot be renewed.
func (l *Loan) Renew(additionalDays int) error {
	if additionalDays < 1 {
		return ErrInvalidRenewalDays
	}
	if l.status != LoanActive {
		return ErrLoanNotActive
	}
	if l.IsOverdue() {
		return ErrLoanOverdue
	}

	l.dueDate = l.dueDate.AddDate(0, 0, additionalDays)
	l.markUpdated()
	return nil
}

// MarkLost flags the book as lost. Re-marking an already lost loan is
// a no-op; only Returned loans are protected.
func (l *Loan) MarkLost() error {
	if l.status == LoanReturned {
		return ErrLoanAlreadyReturned
	}

	l.status = LoanLost
	l.markUpdated()
	return nil
}

// CurrentLateFee returns a live estimate of the accrued fee for an
// overdue Active loan. Distinct from the frozen fee set at return.
func (l *Loan) CurrentLateFee() float64 {
	if !l.IsOverdue() {
		return 0
	}
	return float64(l.DaysOverdue()) * LateFeePerDay
}

func (l *Loan) markUpdated() {
	now := nowFunc().UTC()
	l.updatedAt = &now
}

func wholeDaysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

// LoanSnapshot is the persistence view of a Loan.
type LoanSnapshot struct {
	ID         string
	BookID     string
	MemberID   string
	LoanDate   time.Time
	DueDate    time.Time
	ReturnDate *time.Time
	Status     string
	LateFee    *float64
	Version    int64
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}

// Snapshot exports the aggregate state for storage.
func (l *Loan) Snapshot() LoanSnapshot {
	return LoanSnapshot{
		ID:         l.id,
		BookID:     l.bookID,
		MemberID:   l.memberID,
		LoanDate:   l.loanDate,
		DueDate:    l.dueDate,
		ReturnDate: l.returnDate,
		Status:     string(l.status),
		LateFee:    l.lateFee,
		Version:    l.version,
		CreatedAt:  l.createdAt,
		UpdatedAt:  l.updatedAt,
	}
}

// RestoreLoan rebuilds a Loan from stored state without re-validation.
func RestoreLoan(s LoanSnapshot) *Loan {
	return &Loan{
		id:         s.ID,
		bookID:     s.BookID,
		memberID:   s.MemberID,
		loanDate:   s.LoanDate,
		dueDate:    s.DueDate,
		returnDate: s.ReturnDate,
		status:     LoanStatus(s.Status),
		lateFee:    s.LateFee,
		version:    s.Version,
		createdAt:  s.CreatedAt,
		updatedAt:  s.UpdatedAt,
	}
}
