package domain

import (
	"errors"
	"fmt"
)

// Error categories. Every domain failure wraps one of these two, so
// callers can classify an error without matching the concrete rule.
var (
	// ErrValidation marks malformed or out-of-range input detected at
	// the boundary of a constructor or setter.
	ErrValidation = errors.New("validation failed")

	// ErrInvariant marks an operation attempted in a state that
	// forbids it.
	ErrInvariant = errors.New("invariant violated")
)

// Validation rule errors.
var (
	ErrEmptyTitle         = fmt.Errorf("%w: title cannot be empty", ErrValidation)
	ErrEmptyAuthor        = fmt.Errorf("%w: author cannot be empty", ErrValidation)
	ErrInvalidYear        = fmt.Errorf("%w: invalid publication year", ErrValidation)
	ErrNotEnoughCopies    = fmt.Errorf("%w: total copies must be at least 1", ErrValidation)
	ErrInvalidQuantity    = fmt.Errorf("%w: quantity must be positive", ErrValidation)
	ErrEmptyISBN          = fmt.Errorf("%w: ISBN cannot be empty", ErrValidation)
	ErrInvalidISBN        = fmt.Errorf("%w: invalid ISBN format", ErrValidation)
	ErrEmptyEmail         = fmt.Errorf("%w: email cannot be empty", ErrValidation)
	ErrInvalidEmail       = fmt.Errorf("%w: invalid email format", ErrValidation)
	ErrEmptyName          = fmt.Errorf("%w: name cannot be empty", ErrValidation)
	ErrEmptyPhone         = fmt.Errorf("%w: phone number cannot be empty", ErrValidation)
	ErrEmptyBookID        = fmt.Errorf("%w: book ID cannot be empty", ErrValidation)
	ErrEmptyMemberID      = fmt.Errorf("%w: member ID cannot be empty", ErrValidation)
	ErrInvalidRenewalDays = fmt.Errorf("%w: renewal days must be positive", ErrValidation)
)

// Invariant rule errors.
var (
	ErrNoCopiesAvailable   = fmt.Errorf("%w: no copies available for borrowing", ErrInvariant)
	ErrAllCopiesReturned   = fmt.Errorf("%w: all copies are already returned", ErrInvariant)
	ErrBorrowLimitReached  = fmt.Errorf("%w: member cannot borrow more books", ErrInvariant)
	ErrBookAlreadyBorrowed = fmt.Errorf("%w: book already borrowed by this member", ErrInvariant)
	ErrBookNotBorrowed     = fmt.Errorf("%w: book was not borrowed by this member", ErrInvariant)
	ErrLoanNotActive       = fmt.Errorf("%w: loan is not active", ErrInvariant)
	ErrLoanOverdue         = fmt.Errorf("%w: overdue loans cannot be renewed", ErrInvariant)
	ErrLoanAlreadyReturned = fmt.Errorf("%w: returned loans cannot be marked as lost", ErrInvariant)
)
