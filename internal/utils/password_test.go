package utils

import (
	"strings"
	"testing"
)

func TestGenerateRandomPasswordComposition(t *testing.T) {
	for i := 0; i < 50; i++ {
		pw, err := GenerateRandomPassword(DefaultPasswordLength)
		if err != nil {
			t.Fatalf("generate error: %v", err)
		}
		if len(pw) != DefaultPasswordLength {
			t.Fatalf("expected length %d, got %d", DefaultPasswordLength, len(pw))
		}

		var upper, lower, digit, symbol bool
		for _, r := range pw {
			switch {
			case r >= 'A' && r <= 'Z':
				upper = true
			case r >= 'a' && r <= 'z':
				lower = true
			case r >= '0' && r <= '9':
				digit = true
			case strings.ContainsRune("!@#$%^&*", r):
				symbol = true
			default:
				t.Fatalf("unexpected character %q in %q", r, pw)
			}
		}
		if !upper || !lower || !digit || !symbol {
			t.Fatalf("password %q missing a required character class", pw)
		}
	}
}

func TestGenerateRandomPasswordShortLengthFallsBack(t *testing.T) {
	pw, err := GenerateRandomPassword(2)
	if err != nil {
		t.Fatalf("generate error: %v", err)
	}
	if len(pw) != DefaultPasswordLength {
		t.Fatalf("expected fallback to %d chars, got %d", DefaultPasswordLength, len(pw))
	}
}

func TestGenerateRandomPasswordVaries(t *testing.T) {
	a, err := GenerateRandomPassword(DefaultPasswordLength)
	if err != nil {
		t.Fatalf("generate error: %v", err)
	}
	b, err := GenerateRandomPassword(DefaultPasswordLength)
	if err != nil {
		t.Fatalf("generate error: %v", err)
	}
	if a == b {
		t.Fatalf("two generated passwords were identical: %q", a)
	}
}
