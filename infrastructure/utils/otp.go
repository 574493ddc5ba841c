package utils

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
)

// GenerateOTP mints a 4-digit delivery confirmation code, zero padded.
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%04d", n.Int64()), nil
}

// VerifyOTP compares a candidate code against the minted one in constant
// time so the comparison leaks nothing about matching prefixes.
func VerifyOTP(minted, candidate string) bool {
	if len(minted) == 0 {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(minted), []byte(candidate)) == 1
}
