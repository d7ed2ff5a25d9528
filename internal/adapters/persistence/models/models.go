package models

import (
	"time"

	"liblend/internal/core/domain"
)

// ============================================================
// Catalog & Lending Tables
// ============================================================

// Book represents books table
type Book struct {
	ID              string     `gorm:"primaryKey;size:36" json:"id"`
	Title           string     `gorm:"size:255;not null;index" json:"title"`
	Author          string     `gorm:"size:255;not null;index" json:"author"`
	ISBN            string     `gorm:"uniqueIndex;size:13;not null" json:"isbn"`
	PublicationYear int        `gorm:"not null" json:"publication_year"`
	Category        string     `gorm:"size:100;index" json:"category"`
	TotalCopies     int        `gorm:"not null" json:"total_copies"`
	AvailableCopies int        `gorm:"not null" json:"available_copies"`
	Version         int64      `gorm:"not null;default:0" json:"-"`
	CreatedAt       time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at"`
}

func (Book) TableName() string {
	return "books"
}

// FromBook maps a domain aggregate onto the record shape.
func FromBook(b *domain.Book) *Book {
	s := b.Snapshot()
	return &Book{
		ID:              s.ID,
		Title:           s.Title,
		Author:          s.Author,
		ISBN:            s.ISBN,
		PublicationYear: s.PublicationYear,
		Category:        s.Category,
		TotalCopies:     s.TotalCopies,
		AvailableCopies: s.AvailableCopies,
		Version:         s.Version,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

// ToDomain rehydrates the aggregate without re-running construction
// checks.
func (b *Book) ToDomain() *domain.Book {
	return domain.RestoreBook(domain.BookSnapshot{
		ID:              b.ID,
		Title:           b.Title,
		Author:          b.Author,
		ISBN:            b.ISBN,
		PublicationYear: b.PublicationYear,
		Category:        b.Category,
		TotalCopies:     b.TotalCopies,
		AvailableCopies: b.AvailableCopies,
		Version:         b.Version,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	})
}

// BookResponse DTO
type BookResponse struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Author          string     `json:"author"`
	ISBN            string     `json:"isbn"`
	PublicationYear int        `json:"publication_year"`
	Category        string     `json:"category"`
	TotalCopies     int        `json:"total_copies"`
	AvailableCopies int        `json:"available_copies"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`
}

func NewBookResponse(b *domain.Book) *BookResponse {
	return &BookResponse{
		ID:              b.ID(),
		Title:           b.Title(),
		Author:          b.Author(),
		ISBN:            b.ISBN().String(),
		PublicationYear: b.PublicationYear(),
		Category:        b.Category(),
		TotalCopies:     b.TotalCopies(),
		AvailableCopies: b.AvailableCopies(),
		CreatedAt:       b.CreatedAt(),
		UpdatedAt:       b.UpdatedAt(),
	}
}

func NewBookResponses(books []*domain.Book) []*BookResponse {
	out := make([]*BookResponse, 0, len(books))
	for _, b := range books {
		out = append(out, NewBookResponse(b))
	}
	return out
}

// Member represents members table
type Member struct {
	ID              string     `gorm:"primaryKey;size:36" json:"id"`
	Name            string     `gorm:"size:255;not null;index" json:"name"`
	Email           string     `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PhoneNumber     string     `gorm:"size:50;not null" json:"phone_number"`
	MembershipDate  time.Time  `gorm:"not null" json:"membership_date"`
	Status          string     `gorm:"size:20;not null;index" json:"status"`
	BorrowedBookIDs []string   `gorm:"serializer:json;type:json" json:"borrowed_book_ids"`
	Version         int64      `gorm:"not null;default:0" json:"-"`
	CreatedAt       time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at"`
}

func (Member) TableName() string {
	return "members"
}

func FromMember(m *domain.Member) *Member {
	s := m.Snapshot()
	return &Member{
		ID:              s.ID,
		Name:            s.Name,
		Email:           s.Email,
		PhoneNumber:     s.PhoneNumber,
		MembershipDate:  s.MembershipDate,
		Status:          s.Status,
		BorrowedBookIDs: s.BorrowedBookIDs,
		Version:         s.Version,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

func (m *Member) ToDomain() *domain.Member {
	return domain.RestoreMember(domain.MemberSnapshot{
		ID:              m.ID,
		Name:            m.Name,
		Email:           m.Email,
		PhoneNumber:     m.PhoneNumber,
		MembershipDate:  m.MembershipDate,
		Status:          m.Status,
		BorrowedBookIDs: m.BorrowedBookIDs,
		Version:         m.Version,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	})
}

// MemberResponse DTO. Exposes the held-book count only, not the raw
// id list.
type MemberResponse struct {
	ID                 string     `json:"id"`
	Name               string     `json:"name"`
	Email              string     `json:"email"`
	PhoneNumber        string     `json:"phone_number"`
	MembershipDate     time.Time  `json:"membership_date"`
	Status             string     `json:"status"`
	BorrowedBooksCount int        `json:"borrowed_books_count"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          *time.Time `json:"updated_at,omitempty"`
}

func NewMemberResponse(m *domain.Member) *MemberResponse {
	return &MemberResponse{
		ID:                 m.ID(),
		Name:               m.Name(),
		Email:              m.Email().String(),
		PhoneNumber:        m.PhoneNumber(),
		MembershipDate:     m.MembershipDate(),
		Status:             string(m.Status()),
		BorrowedBooksCount: m.BorrowedBooksCount(),
		CreatedAt:          m.CreatedAt(),
		UpdatedAt:          m.UpdatedAt(),
	}
}

func NewMemberResponses(members []*domain.Member) []*MemberResponse {
	out := make([]*MemberResponse, 0, len(members))
	for _, m := range members {
		out = append(out, NewMemberResponse(m))
	}
	return out
}

// Loan represents loans table
type Loan struct {
	ID         string     `gorm:"primaryKey;size:36" json:"id"`
	BookID     string     `gorm:"size:36;not null;index" json:"book_id"`
	MemberID   string     `gorm:"size:36;not null;index" json:"member_id"`
	LoanDate   time.Time  `gorm:"not null" json:"loan_date"`
	DueDate    time.Time  `gorm:"not null;index" json:"due_date"`
	ReturnDate *time.Time `json:"return_date"`
	Status     string     `gorm:"size:20;not null;index" json:"status"`
	LateFee    *float64   `json:"late_fee"`
	Version    int64      `gorm:"not null;default:0" json:"-"`
	CreatedAt  time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at"`
}

func (Loan) TableName() string {
	return "loans"
}

func FromLoan(l *domain.Loan) *Loan {
	s := l.Snapshot()
	return &Loan{
		ID:         s.ID,
		BookID:     s.BookID,
		MemberID:   s.MemberID,
		LoanDate:   s.LoanDate,
		DueDate:    s.DueDate,
		ReturnDate: s.ReturnDate,
		Status:     s.Status,
		LateFee:    s.LateFee,
		Version:    s.Version,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

func (l *Loan) ToDomain() *domain.Loan {
	return domain.RestoreLoan(domain.LoanSnapshot{
		ID:         l.ID,
		BookID:     l.BookID,
		MemberID:   l.MemberID,
		LoanDate:   l.LoanDate,
		DueDate:    l.DueDate,
		ReturnDate: l.ReturnDate,
		Status:     l.Status,
		LateFee:    l.LateFee,
		Version:    l.Version,
		CreatedAt:  l.CreatedAt,
		UpdatedAt:  l.UpdatedAt,
	})
}

// LoanResponse DTO
type LoanResponse struct {
	ID          string     `json:"id"`
	BookID      string     `json:"book_id"`
	MemberID    string     `json:"member_id"`
	LoanDate    time.Time  `json:"loan_date"`
	DueDate     time.Time  `json:"due_date"`
	ReturnDate  *time.Time `json:"return_date,omitempty"`
	Status      string     `json:"status"`
	LateFee     *float64   `json:"late_fee,omitempty"`
	DaysOverdue int        `json:"days_overdue"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

func NewLoanResponse(l *domain.Loan) *LoanResponse {
	return &LoanResponse{
		ID:          l.ID(),
		BookID:      l.BookID(),
		MemberID:    l.MemberID(),
		LoanDate:    l.LoanDate(),
		DueDate:     l.DueDate(),
		ReturnDate:  l.ReturnDate(),
		Status:      string(l.Status()),
		LateFee:     l.LateFee(),
		DaysOverdue: l.DaysOverdue(),
		CreatedAt:   l.CreatedAt(),
		UpdatedAt:   l.UpdatedAt(),
	}
}

func NewLoanResponses(loans []*domain.Loan) []*LoanResponse {
	out := make([]*LoanResponse, 0, len(loans))
	for _, l := range loans {
		out = append(out, NewLoanResponse(l))
	}
	return out
}

// ============================================================
// Auth & Staff Tables
// ============================================================

// StaffUser represents staff_users table
type StaffUser struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Email     string    `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	Role      string    `gorm:"size:20;default:'LIBRARIAN'" json:"role"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (StaffUser) TableName() string {
	return "staff_users"
}

// StaffUserResponse DTO
type StaffUserResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *StaffUser) ToResponse() *StaffUserResponse {
	return &StaffUserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      StaffUser  `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}
