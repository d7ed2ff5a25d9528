package services

import (
	"context"
	"time"

	"liblend/internal/adapters/persistence/models"
	"liblend/internal/core/domain"

	"gorm.io/gorm"
)

// DashboardService handles library dashboard aggregation. It reads
// straight from the database since every figure here is a count or
// sum, not a domain mutation.
type DashboardService struct {
	db *gorm.DB
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

// DashboardData represents library dashboard data
type DashboardData struct {
	// Catalog
	TotalBooks      int64 `json:"total_books"`
	TotalCopies     int64 `json:"total_copies"`
	AvailableCopies int64 `json:"available_copies"`

	// Membership
	TotalMembers     int64 `json:"total_members"`
	ActiveMembers    int64 `json:"active_members"`
	SuspendedMembers int64 `json:"suspended_members"`

	// Lending
	ActiveLoans    int64   `json:"active_loans"`
	OverdueLoans   int64   `json:"overdue_loans"`
	LoansThisMonth int64   `json:"loans_this_month"`
	CollectedFees  float64 `json:"collected_fees"`
}

// GetDashboard builds the library dashboard
func (s *DashboardService) GetDashboard(ctx context.Context) (*DashboardData, error) {
	data := &DashboardData{}
	db := s.db.WithContext(ctx)

	if err := db.Model(&models.Book{}).Count(&data.TotalBooks).Error; err != nil {
		return nil, err
	}

	type copyTotals struct {
		Total     int64
		Available int64
	}
	var copies copyTotals
	err := db.Model(&models.Book{}).
		Select("COALESCE(SUM(total_copies), 0) AS total, COALESCE(SUM(available_copies), 0) AS available").
		Scan(&copies).Error
	if err != nil {
		return nil, err
	}
	data.TotalCopies = copies.Total
	data.AvailableCopies = copies.Available

	if err := db.Model(&models.Member{}).Count(&data.TotalMembers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Member{}).
		Where("status = ?", string(domain.MemberActive)).
		Count(&data.ActiveMembers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Member{}).
		Where("status = ?", string(domain.MemberSuspended)).
		Count(&data.SuspendedMembers).Error; err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := db.Model(&models.Loan{}).
		Where("status = ?", string(domain.LoanActive)).
		Count(&data.ActiveLoans).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Loan{}).
		Where("status = ? AND due_date < ?", string(domain.LoanActive), now).
		Count(&data.OverdueLoans).Error; err != nil {
		return nil, err
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	if err := db.Model(&models.Loan{}).
		Where("loan_date >= ?", monthStart).
		Count(&data.LoansThisMonth).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&models.Loan{}).
		Select("COALESCE(SUM(late_fee), 0)").
		Where("late_fee IS NOT NULL").
		Scan(&data.CollectedFees).Error; err != nil {
		return nil, err
	}

	return data, nil
}
