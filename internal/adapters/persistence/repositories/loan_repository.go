package repositories

import (
	"context"
	"time"

	"liblend/internal/adapters/persistence/models"
	"liblend/internal/core/domain"

	"gorm.io/gorm"
)

// loanRepository implements LoanRepository interface
type loanRepository struct {
	db *gorm.DB
}

// NewLoanRepository creates a new loan repository
func NewLoanRepository(db *gorm.DB) LoanRepository {
	return &loanRepository{db: db}
}

// Create inserts a new loan
func (r *loanRepository) Create(ctx context.Context, loan *domain.Loan) error {
	return r.db.WithContext(ctx).Create(models.FromLoan(loan)).Error
}

// GetByID gets a loan by ID
func (r *loanRepository) GetByID(ctx context.Context, id string) (*domain.Loan, error) {
	var record models.Loan
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return record.ToDomain(), nil
}

// List lists loans with pagination, newest first
func (r *loanRepository) List(ctx context.Context, offset, limit int) ([]*domain.Loan, int64, error) {
	var records []*models.Loan
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Loan{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Order("loan_date DESC").
		Offset(offset).
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, 0, err
	}
	return toDomainLoans(records), total, nil
}

// GetActive gets all ACTIVE loans
func (r *loanRepository) GetActive(ctx context.Context) ([]*domain.Loan, error) {
	var records []*models.Loan
	err := r.db.WithContext(ctx).
		Where("status = ?", string(domain.LoanActive)).
		Order("due_date ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return toDomainLoans(records), nil
}

// GetOverdue gets ACTIVE loans whose due date has passed as of the
// given instant
func (r *loanRepository) GetOverdue(ctx context.Context, asOf time.Time) ([]*domain.Loan, error) {
	var records []*models.Loan
	err := r.db.WithContext(ctx).
		Where("status = ? AND due_date < ?", string(domain.LoanActive), asOf).
		Order("due_date ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return toDomainLoans(records), nil
}

// GetByMemberID gets a member's full loan history
func (r *loanRepository) GetByMemberID(ctx context.Context, memberID string) ([]*domain.Loan, error) {
	var records []*models.Loan
	err := r.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Order("loan_date DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return toDomainLoans(records), nil
}

// GetByBookID gets a book's full loan history
func (r *loanRepository) GetByBookID(ctx context.Context, bookID string) ([]*domain.Loan, error) {
	var records []*models.Loan
	err := r.db.WithContext(ctx).
		Where("book_id = ?", bookID).
		Order("loan_date DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return toDomainLoans(records), nil
}

// CountActiveByBookID counts ACTIVE loans on a book
func (r *loanRepository) CountActiveByBookID(ctx context.Context, bookID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Loan{}).
		Where("book_id = ? AND status = ?", bookID, string(domain.LoanActive)).
		Count(&count).Error
	return count, err
}

// CountActiveByMemberID counts ACTIVE loans held by a member
func (r *loanRepository) CountActiveByMemberID(ctx context.Context, memberID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Loan{}).
		Where("member_id = ? AND status = ?", memberID, string(domain.LoanActive)).
		Count(&count).Error
	return count, err
}

// Update saves the aggregate with an optimistic version check
func (r *loanRepository) Update(ctx context.Context, loan *domain.Loan) error {
	record := models.FromLoan(loan)
	loadedVersion := record.Version
	record.Version = loadedVersion + 1

	result := r.db.WithContext(ctx).
		Model(&models.Loan{}).
		Where("id = ? AND version = ?", record.ID, loadedVersion).
		Updates(map[string]interface{}{
			"due_date":    record.DueDate,
			"return_date": record.ReturnDate,
			"status":      record.Status,
			"late_fee":    record.LateFee,
			"version":     record.Version,
			"updated_at":  record.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrVersionConflict
	}
	return nil
}

func toDomainLoans(records []*models.Loan) []*domain.Loan {
	loans := make([]*domain.Loan, 0, len(records))
	for _, record := range records {
		loans = append(loans, record.ToDomain())
	}
	return loans
}
