// Package keys validates Mina public keys supplied by users.
//
// A key is accepted when it is exactly 55 ASCII letters or digits, starts
// with "B62" and contains none of the reserved words. Rules are checked in
// that order and Validate reports the first one that fails.
package keys

import (
	"strings"
	"unicode/utf8"

	suberrors "github.com/Conte777/MinaAlerts/internal/domain/subscription/errors"
)

const (
	// Length is the exact length of a Mina public key
	Length = 55

	// Prefix every Mina public key starts with
	Prefix = "B62"
)

// ReservedWords must not appear in a key, compared case-insensitively
var ReservedWords = []string{"drop", "trunc", "delete", "insert"}

type rule struct {
	check func(string) bool
	err   error
}

var rules = []rule{
	{check: hasValidLength, err: suberrors.ErrBadLength},
	{check: isAlphanumeric, err: suberrors.ErrBadCharacters},
	{check: hasPrefix, err: suberrors.ErrBadPrefix},
	{check: hasNoReservedWord, err: suberrors.ErrReservedWord},
}

// Validate returns nil if candidate is an acceptable public key,
// otherwise the error of the first violated rule.
func Validate(candidate string) error {
	for _, r := range rules {
		if !r.check(candidate) {
			return r.err
		}
	}
	return nil
}

// ValidateAll returns the errors of every violated rule, in rule order
func ValidateAll(candidate string) []error {
	var errs []error
	for _, r := range rules {
		if !r.check(candidate) {
			errs = append(errs, r.err)
		}
	}
	return errs
}

func hasValidLength(s string) bool {
	return utf8.RuneCountInString(s) == Length
}

// isAlphanumeric accepts ASCII letters and digits only, matching the base58 key alphabet superset
func isAlphanumeric(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		default:
			return false
		}
	}
	return true
}

func hasPrefix(s string) bool {
	return strings.HasPrefix(s, Prefix)
}

func hasNoReservedWord(s string) bool {
	lower := strings.ToLower(s)
	for _, word := range ReservedWords {
		if strings.Contains(lower, word) {
			return false
		}
	}
	return true
}
