package repositories

import (
	"context"
	"errors"
	"time"

	"liblend/internal/adapters/persistence/models"
	"liblend/internal/core/domain"
)

// ErrVersionConflict is returned by Update when the row changed since
// the aggregate was loaded. Callers reload and retry.
var ErrVersionConflict = errors.New("version conflict")

// BookRepository defines book repository interface
type BookRepository interface {
	Create(ctx context.Context, book *domain.Book) error
	GetByID(ctx context.Context, id string) (*domain.Book, error)
	GetByISBN(ctx context.Context, isbn domain.ISBN) (*domain.Book, error)
	List(ctx context.Context, offset, limit int) ([]*domain.Book, int64, error)
	SearchByTitle(ctx context.Context, title string) ([]*domain.Book, error)
	SearchByAuthor(ctx context.Context, author string) ([]*domain.Book, error)
	GetByCategory(ctx context.Context, category string) ([]*domain.Book, error)
	GetAvailable(ctx context.Context) ([]*domain.Book, error)
	Update(ctx context.Context, book *domain.Book) error
	Delete(ctx context.Context, id string) error
	ExistsByISBN(ctx context.Context, isbn domain.ISBN) (bool, error)
}

// MemberRepository defines member repository interface
type MemberRepository interface {
	Create(ctx context.Context, member *domain.Member) error
	GetByID(ctx context.Context, id string) (*domain.Member, error)
	GetByEmail(ctx context.Context, email domain.Email) (*domain.Member, error)
	List(ctx context.Context, offset, limit int) ([]*domain.Member, int64, error)
	GetActive(ctx context.Context) ([]*domain.Member, error)
	SearchByName(ctx context.Context, name string) ([]*domain.Member, error)
	Update(ctx context.Context, member *domain.Member) error
	Delete(ctx context.Context, id string) error
	ExistsByEmail(ctx context.Context, email domain.Email) (bool, error)
}

// LoanRepository defines loan repository interface
type LoanRepository interface {
	Create(ctx context.Context, loan *domain.Loan) error
	GetByID(ctx context.Context, id string) (*domain.Loan, error)
	List(ctx context.Context, offset, limit int) ([]*domain.Loan, int64, error)
	GetActive(ctx context.Context) ([]*domain.Loan, error)
	GetOverdue(ctx context.Context, asOf time.Time) ([]*domain.Loan, error)
	GetByMemberID(ctx context.Context, memberID string) ([]*domain.Loan, error)
	GetByBookID(ctx context.Context, bookID string) ([]*domain.Loan, error)
	CountActiveByBookID(ctx context.Context, bookID string) (int64, error)
	CountActiveByMemberID(ctx context.Context, memberID string) (int64, error)
	Update(ctx context.Context, loan *domain.Loan) error
}

// StaffUserRepository defines staff user repository interface
type StaffUserRepository interface {
	Create(ctx context.Context, user *models.StaffUser) error
	GetByID(ctx context.Context, id uint) (*models.StaffUser, error)
	GetByUsername(ctx context.Context, username string) (*models.StaffUser, error)
	Update(ctx context.Context, user *models.StaffUser) error
	List(ctx context.Context, offset, limit int) ([]*models.StaffUser, int64, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) error
}
