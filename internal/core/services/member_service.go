package services

import (
	"context"
	"errors"

	"liblend/internal/adapters/persistence/repositories"
	"liblend/internal/core/domain"

	"gorm.io/gorm"
)

// Member service errors
var (
	ErrMemberNotFound       = errors.New("member not found")
	ErrDuplicateEmail       = errors.New("a member with this email already exists")
	ErrMemberHasActiveLoans = errors.New("member has active loans")
)

// MemberService handles membership business logic
type MemberService struct {
	memberRepo repositories.MemberRepository
	loanRepo   repositories.LoanRepository
}

// NewMemberService creates a new member service
func NewMemberService(memberRepo repositories.MemberRepository, loanRepo repositories.LoanRepository) *MemberService {
	return &MemberService{
		memberRepo: memberRepo,
		loanRepo:   loanRepo,
	}
}

// RegisterMemberInput represents member registration input
type RegisterMemberInput struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phone_number" validate:"required"`
}

// Register creates a new member. The email is canonicalized and must
// be unique.
func (s *MemberService) Register(ctx context.Context, input *RegisterMemberInput) (*domain.Member, error) {
	email, err := domain.NewEmail(input.Email)
	if err != nil {
		return nil, err
	}

	exists, err := s.memberRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateEmail
	}

	member, err := domain.NewMember(input.Name, email, input.PhoneNumber)
	if err != nil {
		return nil, err
	}

	if err := s.memberRepo.Create(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

// GetByID gets a member by ID
func (s *MemberService) GetByID(ctx context.Context, id string) (*domain.Member, error) {
	member, err := s.memberRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return member, nil
}

// GetByEmail gets a member by email
func (s *MemberService) GetByEmail(ctx context.Context, rawEmail string) (*domain.Member, error) {
	email, err := domain.NewEmail(rawEmail)
	if err != nil {
		return nil, err
	}

	member, err := s.memberRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return member, nil
}

// List lists members with pagination
func (s *MemberService) List(ctx context.Context, offset, limit int) ([]*domain.Member, int64, error) {
	return s.memberRepo.List(ctx, offset, limit)
}

// GetActive gets members in ACTIVE standing
func (s *MemberService) GetActive(ctx context.Context) ([]*domain.Member, error) {
	return s.memberRepo.GetActive(ctx)
}

// SearchByName finds members by name fragment
func (s *MemberService) SearchByName(ctx context.Context, name string) ([]*domain.Member, error) {
	return s.memberRepo.SearchByName(ctx, name)
}

// UpdateContactInfo replaces a member's phone number
func (s *MemberService) UpdateContactInfo(ctx context.Context, id, phoneNumber string) (*domain.Member, error) {
	member, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	member.UpdateContactInfo(phoneNumber)

	if err := s.memberRepo.Update(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

// Suspend sets a member's standing to SUSPENDED
func (s *MemberService) Suspend(ctx context.Context, id string) (*domain.Member, error) {
	member, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	member.Suspend()

	if err := s.memberRepo.Update(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

// Reactivate sets a member's standing back to ACTIVE
func (s *MemberService) Reactivate(ctx context.Context, id string) (*domain.Member, error) {
	member, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	member.Reactivate()

	if err := s.memberRepo.Update(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

// Delete removes a member. Members holding active loans cannot be
// removed.
func (s *MemberService) Delete(ctx context.Context, id string) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	active, err := s.loanRepo.CountActiveByMemberID(ctx, id)
	if err != nil {
		return err
	}
	if active > 0 {
		return ErrMemberHasActiveLoans
	}

	return s.memberRepo.Delete(ctx, id)
}
