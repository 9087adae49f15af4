package keys

import (
	"errors"
	"strings"
	"testing"

	suberrors "github.com/Conte777/MinaAlerts/internal/domain/subscription/errors"
)

func validKey() string {
	return "B62" + strings.Repeat("a", 52)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		candidate string
		expected  error
	}{
		{name: "valid key", candidate: validKey(), expected: nil},
		{name: "valid mixed case and digits", candidate: "B62qrPN5Y5yq8kGE3FbVKbGTdTAJNdtNtB5sNVpxyRwWGcDEhpMzc8g", expected: nil},
		{name: "empty", candidate: "", expected: suberrors.ErrBadLength},
		{name: "too short", candidate: "B62" + strings.Repeat("a", 51), expected: suberrors.ErrBadLength},
		{name: "too long", candidate: "B62" + strings.Repeat("a", 53), expected: suberrors.ErrBadLength},
		{name: "punctuation", candidate: "B62" + strings.Repeat("a", 51) + ";", expected: suberrors.ErrBadCharacters},
		{name: "whitespace", candidate: "B62" + strings.Repeat("a", 51) + " ", expected: suberrors.ErrBadCharacters},
		{name: "unicode letter", candidate: "B62" + strings.Repeat("a", 51) + "é", expected: suberrors.ErrBadCharacters},
		{name: "unicode digit", candidate: "B62" + strings.Repeat("a", 51) + "٣", expected: suberrors.ErrBadCharacters},
		{name: "cyrillic lookalike", candidate: "B62" + strings.Repeat("a", 51) + "а", expected: suberrors.ErrBadCharacters},
		{name: "wrong prefix", candidate: "B63" + strings.Repeat("a", 52), expected: suberrors.ErrBadPrefix},
		{name: "prefix not at start", candidate: "xB62" + strings.Repeat("a", 51), expected: suberrors.ErrBadPrefix},
		{name: "lowercase prefix", candidate: "b62" + strings.Repeat("a", 52), expected: suberrors.ErrBadPrefix},
		{name: "reserved drop", candidate: "B62qdropxyz" + strings.Repeat("a", 44), expected: suberrors.ErrReservedWord},
		{name: "reserved uppercase", candidate: "B62" + "TRUNC" + strings.Repeat("a", 47), expected: suberrors.ErrReservedWord},
		{name: "reserved mixed case", candidate: "B62" + strings.Repeat("a", 46) + "DeLeTe", expected: suberrors.ErrReservedWord},
		{name: "reserved insert", candidate: "B62" + "insert" + strings.Repeat("a", 46), expected: suberrors.ErrReservedWord},
		{name: "first violation wins", candidate: "x;drop", expected: suberrors.ErrBadLength},
		{name: "characters before prefix", candidate: "X62" + strings.Repeat("a", 51) + "!", expected: suberrors.ErrBadCharacters},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.candidate)
			if !errors.Is(err, tt.expected) {
				t.Errorf("Validate(%q) = %v, want %v", tt.candidate, err, tt.expected)
			}
		})
	}
}

func TestValidateLengthProperty(t *testing.T) {
	source := "B62" + strings.Repeat("a", 120)
	for n := 0; n <= 120; n++ {
		if n == Length {
			continue
		}
		if err := Validate(source[:n]); !errors.Is(err, suberrors.ErrBadLength) {
			t.Fatalf("length %d: Validate() = %v, want ErrBadLength", n, err)
		}
	}
}

func TestValidatePrefixProperty(t *testing.T) {
	alphabet := "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	for i := 0; i < len(alphabet); i++ {
		candidate := string(alphabet[i]) + strings.Repeat("k", Length-1)
		if err := Validate(candidate); !errors.Is(err, suberrors.ErrBadPrefix) {
			t.Fatalf("Validate(%q) = %v, want ErrBadPrefix", candidate, err)
		}
	}
}

func TestValidateAll(t *testing.T) {
	errs := ValidateAll("x;")
	if len(errs) != 3 {
		t.Fatalf("ValidateAll() returned %d errors, want 3: %v", len(errs), errs)
	}
	if !errors.Is(errs[0], suberrors.ErrBadLength) ||
		!errors.Is(errs[1], suberrors.ErrBadCharacters) ||
		!errors.Is(errs[2], suberrors.ErrBadPrefix) {
		t.Errorf("unexpected errors order: %v", errs)
	}

	if errs := ValidateAll(validKey()); len(errs) != 0 {
		t.Errorf("ValidateAll(valid) = %v, want none", errs)
	}
}
