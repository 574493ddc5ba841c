package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateOTP(t *testing.T) {
	seen := make(map[string]bool, 64)
	for i := 0; i < 64; i++ {
		otp, err := GenerateOTP()
		require.Nil(t, err)
		require.Len(t, otp, 4)
		for _, c := range otp {
			require.True(t, c >= '0' && c <= '9')
		}
		seen[otp] = true
	}
	// 64 draws from 10000 codes collide sometimes but never collapse to one
	require.Greater(t, len(seen), 1)
}

func TestVerifyOTP(t *testing.T) {
	require.True(t, VerifyOTP("4821", "4821"))
	require.False(t, VerifyOTP("4821", "0000"))
	require.False(t, VerifyOTP("4821", "482"))
	require.False(t, VerifyOTP("", ""))
	require.False(t, VerifyOTP("", "0000"))
}
