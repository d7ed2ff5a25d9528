package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// MembershipStatus is a member's standing with the library.
type MembershipStatus string

const (
	MemberActive    MembershipStatus = "ACTIVE"
	MemberSuspended MembershipStatus = "SUSPENDED"
	MemberExpired   MembershipStatus = "EXPIRED"
)

// MaxBorrowedBooks is the per-member concurrent borrow limit.
const MaxBorrowedBooks = 5

// Member is the borrower aggregate. The borrowed-book set holds at
// most MaxBorrowedBooks ids, each at most once, and is maintained in
// lockstep with the member's active loans.
type Member struct {
	id              string
	name            string
	email           Email
	phoneNumber     string
	membershipDate  time.Time
	status          MembershipStatus
	borrowedBookIDs []string
	version         int64
	createdAt       time.Time
	updatedAt       *time.Time
}

// NewMember registers a member. New members start Active with no
// borrowed books.
func NewMember(name string, email Email, phoneNumber string) (*Member, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	if email.IsZero() {
		return nil, ErrEmptyEmail
	}
	if strings.TrimSpace(phoneNumber) == "" {
		return nil, ErrEmptyPhone
	}

	now := nowFunc().UTC()
	return &Member{
		id:             uuid.New().String(),
		name:           name,
		email:          email,
		phoneNumber:    phoneNumber,
		membershipDate: now,
		status:         MemberActive,
		createdAt:      now,
	}, nil
}

func (m *Member) ID() string { return m.id }
func (m *Member) Name() string { return m.name }
func (m *Member) Email() Email { return m.email }
func (m *Member) PhoneNumber() string { return m.phoneNumber }
func (m *Member) MembershipDate() time.Time { return m.membershipDate }
func (m *Member) Status() MembershipStatus { return m.status }
func (m *Member) Version() int64 { return m.version }
func (m *Member) CreatedAt() time.Time { return m.createdAt }
func (m *Member) UpdatedAt() *time.Time { return m.updatedAt }

// BorrowedBookIDs returns a copy of the held book id set.
func (m *Member) BorrowedBookIDs() []string {
	ids := make([]string, len(m.borrowedBookIDs))
	copy(ids, m.borrowedBookIDs)
	return ids
}

// BorrowedBooksCount returns how many books the member currently holds.
func (m *Member) BorrowedBooksCount() int {
	return len(m.borrowedBookIDs)
}

// CanBorrowBooks reports whether the member is Active and under the
// borrow limit.
func (m *Member) CanBorrowBooks() bool {
	return m.status == MemberActive && len(m.borrowedBookIDs) < MaxBorrowedBooks
}

// BorrowBook records that the member took a copy of the given book.
// The same title cannot be held twice by the same member.
func (m *Member) BorrowBook(bookID string) error {
	if !m.CanBorrowBooks() {
		return ErrBorrowLimitReached
	}
	if m.holdsBook(bookID) {
		return ErrBookAlreadyBorrowed
	}

	m.borrowedBookIDs = append(m.borrowedBookIDs, bookID)
	m.markUpdated()
	return nil
}

// ReturnBook removes a book from the member's held set.
func (m *Member) ReturnBook(bookID string) error {
	for i, id := range m.borrowedBookIDs {
		if id == bookID {
			m.borrowedBookIDs = append(m.borrowedBookIDs[:i], m.borrowedBookIDs[i+1:]...)
			m.markUpdated()
			return nil
		}
	}
	return ErrBookNotBorrowed
}

// Suspend sets the member Suspended. No guard: suspending an already
// suspended member is allowed.
func (m *Member) Suspend() {
	m.status = MemberSuspended
	m.markUpdated()
}

// Reactivate sets the member Active.
func (m *Member) Reactivate() {
	m.status = MemberActive
	m.markUpdated()
}

// UpdateContactInfo replaces the phone number when the supplied value
// is non-empty; otherwise it is a no-op.
func (m *Member) UpdateContactInfo(phoneNumber string) {
	if strings.TrimSpace(phoneNumber) != "" {
		m.phoneNumber = phoneNumber
		m.markUpdated()
	}
}

func (m *Member) holdsBook(bookID string) bool {
	for _, id := range m.borrowedBookIDs {
		if id == bookID {
			return true
		}
	}
	return false
}

func (m *Member) markUpdated() {
	now := nowFunc().UTC()
	m.updatedAt = &now
}

// MemberSnapshot is the persistence view of a Member.
type MemberSnapshot struct {
	ID              string
	Name            string
	Email           string
	PhoneNumber     string
	MembershipDate  time.Time
	Status          string
	BorrowedBookIDs []string
	Version         int64
	CreatedAt       time.Time
	UpdatedAt       *time.Time
}

// Snapshot exports the aggregate state for storage.
func (m *Member) Snapshot() MemberSnapshot {
	return MemberSnapshot{
		ID:              m.id,
		Name:            m.name,
		Email:           m.email.String(),
		PhoneNumber:     m.phoneNumber,
		MembershipDate:  m.membershipDate,
		Status:          string(m.status),
		BorrowedBookIDs: m.BorrowedBookIDs(),
		Version:         m.version,
		CreatedAt:       m.createdAt,
		UpdatedAt:       m.updatedAt,
	}
}

// RestoreMember rebuilds a Member from stored state without
// re-validation.
func RestoreMember(s MemberSnapshot) *Member {
	ids := make([]string, len(s.BorrowedBookIDs))
	copy(ids, s.BorrowedBookIDs)

	return &Member{
		id:              s.ID,
		name:            s.Name,
		email:           restoreEmail(s.Email),
		phoneNumber:     s.PhoneNumber,
		membershipDate:  s.MembershipDate,
		status:          MembershipStatus(s.Status),
		borrowedBookIDs: ids,
		version:         s.Version,
		createdAt:       s.CreatedAt,
		updatedAt:       s.UpdatedAt,
	}
}
