package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"liblend/internal/core/domain"
)

func marshalToMap(t *testing.T, v interface{}) map[string]interface{} {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func TestNewLoanResponse_JSONShape(t *testing.T) {
	now := time.Now().UTC()
	updated := now.Add(time.Hour)
	fee := 4.0
	loan := domain.RestoreLoan(domain.LoanSnapshot{
		ID:        "loan-1",
		BookID:    "book-1",
		MemberID:  "member-1",
		LoanDate:  now.AddDate(0, 0, -16),
		DueDate:   now.AddDate(0, 0, -2),
		Status:    string(domain.LoanActive),
		LateFee:   &fee,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: &updated,
	})

	out := marshalToMap(t, NewLoanResponse(loan))

	for _, key := range []string{
		"id", "book_id", "member_id", "loan_date", "due_date",
		"status", "late_fee", "days_overdue", "created_at", "updated_at",
	} {
		assert.Contains(t, out, key)
	}
	assert.NotContains(t, out, "return_date")
	assert.Equal(t, "ACTIVE", out["status"])
	assert.Equal(t, float64(2), out["days_overdue"])
}

func TestNewMemberResponse_JSONShape(t *testing.T) {
	now := time.Now().UTC()
	updated := now.Add(time.Hour)
	member := domain.RestoreMember(domain.MemberSnapshot{
		ID:              "member-1",
		Name:            "Jane Doe",
		Email:           "jane.doe@example.com",
		PhoneNumber:     "+66-81-000-0000",
		MembershipDate:  now,
		Status:          string(domain.MemberActive),
		BorrowedBookIDs: []string{"book-1"},
		Version:         1,
		CreatedAt:       now,
		UpdatedAt:       &updated,
	})

	out := marshalToMap(t, NewMemberResponse(member))

	for _, key := range []string{
		"id", "name", "email", "phone_number", "membership_date",
		"status", "borrowed_books_count", "created_at", "updated_at",
	} {
		assert.Contains(t, out, key)
	}
	assert.NotContains(t, out, "borrowed_book_ids")
	assert.Equal(t, float64(1), out["borrowed_books_count"])
}
