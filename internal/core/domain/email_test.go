package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmail_CanonicalizesCase(t *testing.T) {
	upper, err := NewEmail("Test@EXAMPLE.com")
	require.NoError(t, err)
	lower, err := NewEmail("test@example.com")
	require.NoError(t, err)

	assert.Equal(t, "test@example.com", upper.String())
	assert.True(t, upper.Equal(lower))
	assert.Equal(t, upper, lower)
}

func TestNewEmail_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want error
	}{
		{"empty", "", ErrEmptyEmail},
		{"whitespace_only", "  ", ErrEmptyEmail},
		{"no_at", "testexample.com", ErrInvalidEmail},
		{"two_ats", "a@b@c.com", ErrInvalidEmail},
		{"no_dot_after_at", "test@example", ErrInvalidEmail},
		{"space_in_local", "te st@example.com", ErrInvalidEmail},
		{"space_in_domain", "test@exa mple.com", ErrInvalidEmail},
		{"missing_local", "@example.com", ErrInvalidEmail},
		{"missing_tld", "test@example.", ErrInvalidEmail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEmail(tt.raw)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}
