package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	passwordUppercase = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	passwordLowercase = "abcdefghijklmnopqrstuvwxyz"
	passwordDigits    = "0123456789"
	passwordSymbols   = "!@#$%^&*"

	// DefaultPasswordLength is used for auto-provisioned traveler
	// accounts.
	DefaultPasswordLength = 12
)

// GenerateRandomPassword returns a temporary password of the given
// length containing at least one uppercase letter, one lowercase
// letter, one digit and one symbol. The guaranteed characters are
// shuffled so they never sit at fixed positions. Lengths below 4 are
// raised to the default.
func GenerateRandomPassword(length int) (string, error) {
	if length < 4 {
		length = DefaultPasswordLength
	}

	all := passwordUppercase + passwordLowercase + passwordDigits + passwordSymbols

	chars := make([]byte, 0, length)
	for _, class := range []string{passwordUppercase, passwordLowercase, passwordDigits, passwordSymbols} {
		c, err := randomByte(class)
		if err != nil {
			return "", err
		}
		chars = append(chars, c)
	}
	for len(chars) < length {
		c, err := randomByte(all)
		if err != nil {
			return "", err
		}
		chars = append(chars, c)
	}

	// Fisher-Yates shuffle.
	for i := len(chars) - 1; i > 0; i-- {
		j, err := randomInt(i + 1)
		if err != nil {
			return "", err
		}
		chars[i], chars[j] = chars[j], chars[i]
	}

	return string(chars), nil
}

func randomByte(set string) (byte, error) {
	i, err := randomInt(len(set))
	if err != nil {
		return 0, err
	}
	return set[i], nil
}

func randomInt(n int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("random source: %w", err)
	}
	return int(v.Int64()), nil
}
