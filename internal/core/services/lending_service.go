package services

import (
	"context"
	"errors"
	"time"

	"liblend/internal/adapters/persistence/repositories"
	"liblend/internal/core/domain"

	"gorm.io/gorm"
)

// Lending service errors
var (
	ErrLoanNotFound     = errors.New("loan not found")
	ErrConcurrentUpdate = errors.New("record was modified concurrently, please retry")
)

// maxLendingRetries bounds the reload-and-retry loop used when a
// version check fails mid-checkout or mid-return.
const maxLendingRetries = 3

// LendingService orchestrates the loan lifecycle across the book,
// member and loan aggregates. The three writes are not atomic, so
// each mutation goes through optimistic version checks with bounded
// retries and compensation on partial failure.
type LendingService struct {
	loanRepo   repositories.LoanRepository
	bookRepo   repositories.BookRepository
	memberRepo repositories.MemberRepository
}

// NewLendingService creates a new lending service
func NewLendingService(
	loanRepo repositories.LoanRepository,
	bookRepo repositories.BookRepository,
	memberRepo repositories.MemberRepository,
) *LendingService {
	return &LendingService{
		loanRepo:   loanRepo,
		bookRepo:   bookRepo,
		memberRepo: memberRepo,
	}
}

// CheckoutInput represents checkout input
type CheckoutInput struct {
	BookID   string `json:"book_id" validate:"required"`
	MemberID string `json:"member_id" validate:"required"`
}

// Checkout lends a copy of a book to a member. The book must have an
// available copy and the member must be in good standing, under the
// borrow limit and not already holding this title.
func (s *LendingService) Checkout(ctx context.Context, input *CheckoutInput) (*domain.Loan, error) {
	for attempt := 0; attempt < maxLendingRetries; attempt++ {
		book, err := s.getBook(ctx, input.BookID)
		if err != nil {
			return nil, err
		}
		member, err := s.getMember(ctx, input.MemberID)
		if err != nil {
			return nil, err
		}

		if err := book.BorrowCopy(); err != nil {
			return nil, err
		}
		if err := member.BorrowBook(book.ID()); err != nil {
			return nil, err
		}

		loan, err := domain.NewLoan(book.ID(), member.ID())
		if err != nil {
			return nil, err
		}

		if err := s.bookRepo.Update(ctx, book); err != nil {
			if errors.Is(err, repositories.ErrVersionConflict) {
				continue
			}
			return nil, err
		}
		if err := s.memberRepo.Update(ctx, member); err != nil {
			s.releaseCopy(ctx, book.ID())
			if errors.Is(err, repositories.ErrVersionConflict) {
				continue
			}
			return nil, err
		}
		if err := s.loanRepo.Create(ctx, loan); err != nil {
			s.releaseCopy(ctx, book.ID())
			s.releaseMemberSlot(ctx, member.ID(), book.ID())
			return nil, err
		}
		return loan, nil
	}
	return nil, ErrConcurrentUpdate
}

// Return closes a loan, puts the copy back on the shelf and frees the
// member's borrow slot. Any late fee is computed and frozen at this
// instant.
func (s *LendingService) Return(ctx context.Context, loanID string) (*domain.Loan, error) {
	for attempt := 0; attempt < maxLendingRetries; attempt++ {
		loan, err := s.GetByID(ctx, loanID)
		if err != nil {
			return nil, err
		}

		if err := loan.Return(); err != nil {
			return nil, err
		}

		if err := s.loanRepo.Update(ctx, loan); err != nil {
			if errors.Is(err, repositories.ErrVersionConflict) {
				continue
			}
			return nil, err
		}

		// The loan is closed; the inventory and member bookkeeping
		// below retry independently.
		if err := s.restoreCopy(ctx, loan.BookID()); err != nil {
			return nil, err
		}
		if err := s.freeMemberSlot(ctx, loan.MemberID(), loan.BookID()); err != nil {
			return nil, err
		}
		return loan, nil
	}
	return nil, ErrConcurrentUpdate
}

// Renew extends an active, timely loan's due date.
func (s *LendingService) Renew(ctx context.Context, loanID string, additionalDays int) (*domain.Loan, error) {
	for attempt := 0; attempt < maxLendingRetries; attempt++ {
		loan, err := s.GetByID(ctx, loanID)
		if err != nil {
			return nil, err
		}

		if err := loan.Renew(additionalDays); err != nil {
			return nil, err
		}

		if err := s.loanRepo.Update(ctx, loan); err != nil {
			if errors.Is(err, repositories.ErrVersionConflict) {
				continue
			}
			return nil, err
		}
		return loan, nil
	}
	return nil, ErrConcurrentUpdate
}

// MarkLost flags a loan's book as lost. The member's borrow slot is
// freed; the copy stays off the shelf since it is not coming back.
func (s *LendingService) MarkLost(ctx context.Context, loanID string) (*domain.Loan, error) {
	for attempt := 0; attempt < maxLendingRetries; attempt++ {
		loan, err := s.GetByID(ctx, loanID)
		if err != nil {
			return nil, err
		}

		wasActive := loan.Status() == domain.LoanActive

		if err := loan.MarkLost(); err != nil {
			return nil, err
		}

		if err := s.loanRepo.Update(ctx, loan); err != nil {
			if errors.Is(err, repositories.ErrVersionConflict) {
				continue
			}
			return nil, err
		}

		if wasActive {
			if err := s.freeMemberSlot(ctx, loan.MemberID(), loan.BookID()); err != nil {
				return nil, err
			}
		}
		return loan, nil
	}
	return nil, ErrConcurrentUpdate
}

// GetByID gets a loan by ID
func (s *LendingService) GetByID(ctx context.Context, id string) (*domain.Loan, error) {
	loan, err := s.loanRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLoanNotFound
		}
		return nil, err
	}
	return loan, nil
}

// List lists loans with pagination
func (s *LendingService) List(ctx context.Context, offset, limit int) ([]*domain.Loan, int64, error) {
	return s.loanRepo.List(ctx, offset, limit)
}

// GetActive gets all active loans
func (s *LendingService) GetActive(ctx context.Context) ([]*domain.Loan, error) {
	return s.loanRepo.GetActive(ctx)
}

// GetOverdue gets all active loans past their due date
func (s *LendingService) GetOverdue(ctx context.Context) ([]*domain.Loan, error) {
	return s.loanRepo.GetOverdue(ctx, time.Now().UTC())
}

// GetByMember gets a member's loan history
func (s *LendingService) GetByMember(ctx context.Context, memberID string) ([]*domain.Loan, error) {
	return s.loanRepo.GetByMemberID(ctx, memberID)
}

// GetByBook gets a book's loan history
func (s *LendingService) GetByBook(ctx context.Context, bookID string) ([]*domain.Loan, error) {
	return s.loanRepo.GetByBookID(ctx, bookID)
}

func (s *LendingService) getBook(ctx context.Context, id string) (*domain.Book, error) {
	book, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}
	return book, nil
}

func (s *LendingService) getMember(ctx context.Context, id string) (*domain.Member, error) {
	member, err := s.memberRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return member, nil
}

// restoreCopy reloads the book and puts one copy back, retrying on
// version conflicts.
func (s *LendingService) restoreCopy(ctx context.Context, bookID string) error {
	for attempt := 0; attempt < maxLendingRetries; attempt++ {
		book, err := s.getBook(ctx, bookID)
		if err != nil {
			return err
		}
		if err := book.ReturnCopy(); err != nil {
			return err
		}
		err = s.bookRepo.Update(ctx, book)
		if err == nil {
			return nil
		}
		if !errors.Is(err, repositories.ErrVersionConflict) {
			return err
		}
	}
	return ErrConcurrentUpdate
}

// freeMemberSlot reloads the member and drops the book from their
// held set, retrying on version conflicts.
func (s *LendingService) freeMemberSlot(ctx context.Context, memberID, bookID string) error {
	for attempt := 0; attempt < maxLendingRetries; attempt++ {
		member, err := s.getMember(ctx, memberID)
		if err != nil {
			return err
		}
		if err := member.ReturnBook(bookID); err != nil {
			return err
		}
		err = s.memberRepo.Update(ctx, member)
		if err == nil {
			return nil
		}
		if !errors.Is(err, repositories.ErrVersionConflict) {
			return err
		}
	}
	return ErrConcurrentUpdate
}

// releaseCopy undoes a provisional borrow after a later write in the
// checkout sequence failed. Best effort: the copy count is left
// inconsistent only when every retry loses its race.
func (s *LendingService) releaseCopy(ctx context.Context, bookID string) {
	_ = s.restoreCopy(ctx, bookID)
}

// releaseMemberSlot undoes a provisional member borrow. Best effort.
func (s *LendingService) releaseMemberSlot(ctx context.Context, memberID, bookID string) {
	_ = s.freeMemberSlot(ctx, memberID, bookID)
}
