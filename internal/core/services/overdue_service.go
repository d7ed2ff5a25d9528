package services

import (
	"context"
	"log"
	"time"

	"liblend/internal/adapters/persistence/repositories"
	"liblend/internal/core/domain"

	"github.com/robfig/cron/v3"
)

// ============================================================
// Overdue sweep + refresh token cleanup cron
// ============================================================

// OverdueService runs scheduled jobs: a morning overdue report and a
// nightly expired-token cleanup.
type OverdueService struct {
	loanRepo  repositories.LoanRepository
	tokenRepo repositories.RefreshTokenRepository
	cron      *cron.Cron
}

// NewOverdueService creates a new overdue service
func NewOverdueService(loanRepo repositories.LoanRepository, tokenRepo repositories.RefreshTokenRepository) *OverdueService {
	return &OverdueService{
		loanRepo:  loanRepo,
		tokenRepo: tokenRepo,
		cron:      cron.New(),
	}
}

// Start registers and launches the scheduled jobs
func (s *OverdueService) Start() error {
	// Overdue report every morning at 08:30
	if _, err := s.cron.AddFunc("30 8 * * *", s.reportOverdueLoans); err != nil {
		return err
	}

	// Expired refresh tokens swept nightly at 02:00
	if _, err := s.cron.AddFunc("0 2 * * *", s.cleanupExpiredTokens); err != nil {
		return err
	}

	s.cron.Start()
	log.Println("🚀 OverdueService started")
	return nil
}

// Stop stops the scheduler and waits for running jobs
func (s *OverdueService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("🛑 OverdueService stopped")
}

func (s *OverdueService) reportOverdueLoans() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	loans, err := s.loanRepo.GetOverdue(ctx, time.Now().UTC())
	if err != nil {
		log.Printf("❌ Overdue sweep query error: %v", err)
		return
	}
	if len(loans) == 0 {
		return
	}

	var accrued float64
	for _, loan := range loans {
		accrued += loan.CurrentLateFee()
	}
	log.Printf("📋 Overdue sweep: %d loans overdue, %.2f in accrued fees (%.2f/day rate)",
		len(loans), accrued, domain.LateFeePerDay)
}

func (s *OverdueService) cleanupExpiredTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.tokenRepo.DeleteExpired(ctx); err != nil {
		log.Printf("❌ Token cleanup error: %v", err)
	}
}
