package domain

import "strings"

// ISBN is a validated book identifier in ISBN-10 or ISBN-13 form.
// The value is stored normalized (hyphens and spaces stripped), and
// equality compares normalized values.
type ISBN struct {
	value string
}

// NewISBN validates and normalizes a raw ISBN string.
func NewISBN(raw string) (ISBN, error) {
	if strings.TrimSpace(raw) == "" {
		return ISBN{}, ErrEmptyISBN
	}

	clean := strings.NewReplacer("-", "", " ", "").Replace(raw)

	switch len(clean) {
	case 10:
		if !validISBN10(clean) {
			return ISBN{}, ErrInvalidISBN
		}
	case 13:
		if !validISBN13(clean) {
			return ISBN{}, ErrInvalidISBN
		}
	default:
		return ISBN{}, ErrInvalidISBN
	}

	return ISBN{value: clean}, nil
}

// validISBN10 checks the mod-11 checksum. The last character may be
// 'X', which counts as 10.
func validISBN10(isbn string) bool {
	for i, c := range isbn {
		if c >= '0' && c <= '9' {
			continue
		}
		if c == 'X' && i == 9 {
			continue
		}
		return false
	}

	sum := 0
	for i := 0; i < 9; i++ {
		sum += int(isbn[i]-'0') * (10 - i)
	}

	if isbn[9] == 'X' {
		sum += 10
	} else {
		sum += int(isbn[9] - '0')
	}

	return sum%11 == 0
}

// validISBN13 checks the alternating 1/3-weighted checksum.
func validISBN13(isbn string) bool {
	for _, c := range isbn {
		if c < '0' || c > '9' {
			return false
		}
	}

	sum := 0
	for i := 0; i < 12; i++ {
		digit := int(isbn[i] - '0')
		if i%2 == 0 {
			sum += digit
		} else {
			sum += digit * 3
		}
	}

	check := (10 - sum%10) % 10
	return check == int(isbn[12]-'0')
}

// String returns the normalized value.
func (i ISBN) String() string {
	return i.value
}

// Equal reports whether two ISBNs have the same normalized value.
func (i ISBN) Equal(other ISBN) bool {
	return i.value == other.value
}

// IsZero reports whether the ISBN is the zero value (never produced
// by NewISBN).
func (i ISBN) IsZero() bool {
	return i.value == ""
}

// restoreISBN rebuilds an ISBN from trusted storage without
// re-running validation.
func restoreISBN(value string) ISBN {
	return ISBN{value: value}
}
