package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hashed, err := HashPassword("pw1", bcrypt.MinCost)
	require.NoError(t, err)
	require.NotEqual(t, "pw1", hashed)

	require.True(t, VerifyPassword(hashed, "pw1"))
	require.False(t, VerifyPassword(hashed, "pw2"))
}

func TestHashPassword_OutOfRangeCostFallsBack(t *testing.T) {
	hashed, err := HashPassword("pw", 99)
	require.NoError(t, err)
	cost, err := bcrypt.Cost([]byte(hashed))
	require.NoError(t, err)
	require.Equal(t, bcrypt.DefaultCost, cost)
}

func TestVerifyPassword_Werkzeug(t *testing.T) {
	const (
		pbkdf2Hash = "pbkdf2:sha256:1000$NaClNaCl$5c5043f0bff66b530bdf9483a7472fb802cf7f13015f55e83d5ff9610862dcdf"
		scryptHash = "scrypt:16384:8:1$NaClNaCl$9558d23710884fdf1b661ce8409831ebfe40323596deff2758abb072eed85bf1c8eea2336970b400ba117ec128c9f39d8bf41fda7b6ec41e39d4664cd691007b"
	)

	require.True(t, VerifyPassword(pbkdf2Hash, "secret-pw"))
	require.False(t, VerifyPassword(pbkdf2Hash, "wrong"))
	require.True(t, VerifyPassword(scryptHash, "secret-pw"))
	require.False(t, VerifyPassword(scryptHash, "wrong"))
}

func TestVerifyPassword_Garbage(t *testing.T) {
	for _, stored := range []string{
		"",
		"plaintext",
		"pbkdf2:sha256:1000$salt",
		"pbkdf2:md5:1000$salt$abcd",
		"pbkdf2:sha256:x$salt$abcd",
		"scrypt:a:8:1$salt$abcd",
		"pbkdf2:sha256:1000$salt$nothex",
	} {
		require.False(t, VerifyPassword(stored, "anything"), stored)
	}
}
