package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"liblend/internal/adapters/persistence/repositories"
	"liblend/internal/core/domain"

	"gorm.io/gorm"
)

// In-memory repositories backed by aggregate snapshots. Update applies
// the same version check the MySQL repositories do, so the retry and
// compensation paths in the services are exercised for real.

type memBookRepo struct {
	mu    sync.Mutex
	books map[string]domain.BookSnapshot
}

func newMemBookRepo() *memBookRepo {
	return &memBookRepo{books: make(map[string]domain.BookSnapshot)}
}

func (r *memBookRepo) Create(ctx context.Context, book *domain.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.books[book.ID()] = book.Snapshot()
	return nil
}

func (r *memBookRepo) GetByID(ctx context.Context, id string) (*domain.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.books[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return domain.RestoreBook(s), nil
}

func (r *memBookRepo) GetByISBN(ctx context.Context, isbn domain.ISBN) (*domain.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.books {
		if s.ISBN == isbn.String() {
			return domain.RestoreBook(s), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memBookRepo) List(ctx context.Context, offset, limit int) ([]*domain.Book, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	books := make([]*domain.Book, 0, len(r.books))
	for _, s := range r.books {
		books = append(books, domain.RestoreBook(s))
	}
	return books, int64(len(books)), nil
}

func (r *memBookRepo) SearchByTitle(ctx context.Context, title string) ([]*domain.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Book
	for _, s := range r.books {
		if strings.Contains(strings.ToLower(s.Title), strings.ToLower(title)) {
			out = append(out, domain.RestoreBook(s))
		}
	}
	return out, nil
}

func (r *memBookRepo) SearchByAuthor(ctx context.Context, author string) ([]*domain.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Book
	for _, s := range r.books {
		if strings.Contains(strings.ToLower(s.Author), strings.ToLower(author)) {
			out = append(out, domain.RestoreBook(s))
		}
	}
	return out, nil
}

func (r *memBookRepo) GetByCategory(ctx context.Context, category string) ([]*domain.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Book
	for _, s := range r.books {
		if strings.EqualFold(s.Category, category) {
			out = append(out, domain.RestoreBook(s))
		}
	}
	return out, nil
}

func (r *memBookRepo) GetAvailable(ctx context.Context) ([]*domain.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Book
	for _, s := range r.books {
		if s.AvailableCopies > 0 {
			out = append(out, domain.RestoreBook(s))
		}
	}
	return out, nil
}

func (r *memBookRepo) Update(ctx context.Context, book *domain.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.books[book.ID()]
	if !ok {
		return repositories.ErrVersionConflict
	}
	s := book.Snapshot()
	if s.Version != stored.Version {
		return repositories.ErrVersionConflict
	}
	s.Version = stored.Version + 1
	r.books[book.ID()] = s
	return nil
}

func (r *memBookRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.books, id)
	return nil
}

func (r *memBookRepo) ExistsByISBN(ctx context.Context, isbn domain.ISBN) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.books {
		if s.ISBN == isbn.String() {
			return true, nil
		}
	}
	return false, nil
}

type memMemberRepo struct {
	mu      sync.Mutex
	members map[string]domain.MemberSnapshot
}

func newMemMemberRepo() *memMemberRepo {
	return &memMemberRepo{members: make(map[string]domain.MemberSnapshot)}
}

func (r *memMemberRepo) Create(ctx context.Context, member *domain.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.members[member.ID()] = member.Snapshot()
	return nil
}

func (r *memMemberRepo) GetByID(ctx context.Context, id string) (*domain.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.members[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return domain.RestoreMember(s), nil
}

func (r *memMemberRepo) GetByEmail(ctx context.Context, email domain.Email) (*domain.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.members {
		if s.Email == email.String() {
			return domain.RestoreMember(s), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memMemberRepo) List(ctx context.Context, offset, limit int) ([]*domain.Member, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	members := make([]*domain.Member, 0, len(r.members))
	for _, s := range r.members {
		members = append(members, domain.RestoreMember(s))
	}
	return members, int64(len(members)), nil
}

func (r *memMemberRepo) GetActive(ctx context.Context) ([]*domain.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Member
	for _, s := range r.members {
		if s.Status == string(domain.MemberActive) {
			out = append(out, domain.RestoreMember(s))
		}
	}
	return out, nil
}

func (r *memMemberRepo) SearchByName(ctx context.Context, name string) ([]*domain.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Member
	for _, s := range r.members {
		if strings.Contains(strings.ToLower(s.Name), strings.ToLower(name)) {
			out = append(out, domain.RestoreMember(s))
		}
	}
	return out, nil
}

func (r *memMemberRepo) Update(ctx context.Context, member *domain.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.members[member.ID()]
	if !ok {
		return repositories.ErrVersionConflict
	}
	s := member.Snapshot()
	if s.Version != stored.Version {
		return repositories.ErrVersionConflict
	}
	s.Version = stored.Version + 1
	r.members[member.ID()] = s
	return nil
}

func (r *memMemberRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.members, id)
	return nil
}

func (r *memMemberRepo) ExistsByEmail(ctx context.Context, email domain.Email) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.members {
		if s.Email == email.String() {
			return true, nil
		}
	}
	return false, nil
}

type memLoanRepo struct {
	mu    sync.Mutex
	loans map[string]domain.LoanSnapshot
}

func newMemLoanRepo() *memLoanRepo {
	return &memLoanRepo{loans: make(map[string]domain.LoanSnapshot)}
}

func (r *memLoanRepo) Create(ctx context.Context, loan *domain.Loan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loans[loan.ID()] = loan.Snapshot()
	return nil
}

func (r *memLoanRepo) GetByID(ctx context.Context, id string) (*domain.Loan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.loans[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return domain.RestoreLoan(s), nil
}

func (r *memLoanRepo) List(ctx context.Context, offset, limit int) ([]*domain.Loan, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	loans := make([]*domain.Loan, 0, len(r.loans))
	for _, s := range r.loans {
		loans = append(loans, domain.RestoreLoan(s))
	}
	return loans, int64(len(loans)), nil
}

func (r *memLoanRepo) GetActive(ctx context.Context) ([]*domain.Loan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Loan
	for _, s := range r.loans {
		if s.Status == string(domain.LoanActive) {
			out = append(out, domain.RestoreLoan(s))
		}
	}
	return out, nil
}

func (r *memLoanRepo) GetOverdue(ctx context.Context, asOf time.Time) ([]*domain.Loan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Loan
	for _, s := range r.loans {
		if s.Status == string(domain.LoanActive) && asOf.After(s.DueDate) {
			out = append(out, domain.RestoreLoan(s))
		}
	}
	return out, nil
}

func (r *memLoanRepo) GetByMemberID(ctx context.Context, memberID string) ([]*domain.Loan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Loan
	for _, s := range r.loans {
		if s.MemberID == memberID {
			out = append(out, domain.RestoreLoan(s))
		}
	}
	return out, nil
}

func (r *memLoanRepo) GetByBookID(ctx context.Context, bookID string) ([]*domain.Loan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Loan
	for _, s := range r.loans {
		if s.BookID == bookID {
			out = append(out, domain.RestoreLoan(s))
		}
	}
	return out, nil
}

func (r *memLoanRepo) CountActiveByBookID(ctx context.Context, bookID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, s := range r.loans {
		if s.BookID == bookID && s.Status == string(domain.LoanActive) {
			n++
		}
	}
	return n, nil
}

func (r *memLoanRepo) CountActiveByMemberID(ctx context.Context, memberID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, s := range r.loans {
		if s.MemberID == memberID && s.Status == string(domain.LoanActive) {
			n++
		}
	}
	return n, nil
}

func (r *memLoanRepo) Update(ctx context.Context, loan *domain.Loan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.loans[loan.ID()]
	if !ok {
		return repositories.ErrVersionConflict
	}
	s := loan.Snapshot()
	if s.Version != stored.Version {
		return repositories.ErrVersionConflict
	}
	s.Version = stored.Version + 1
	r.loans[loan.ID()] = s
	return nil
}

// conflictingBookRepo fails Update with a version conflict a fixed
// number of times before delegating.
type conflictingBookRepo struct {
	repositories.BookRepository
	conflictsLeft int
}

func (r *conflictingBookRepo) Update(ctx context.Context, book *domain.Book) error {
	if r.conflictsLeft > 0 {
		r.conflictsLeft--
		return repositories.ErrVersionConflict
	}
	return r.BookRepository.Update(ctx, book)
}
