package auth

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"hash"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/crypto/scrypt"
)

// werkzeug stores "method$salt$hexdigest", where method is either
// "pbkdf2:<hash>[:<iterations>]" or "scrypt:<n>:<r>:<p>".
func verifyWerkzeug(stored, plain string) bool {
	parts := strings.SplitN(stored, "$", 3)
	if len(parts) != 3 {
		return false
	}
	method, salt, digest := parts[0], parts[1], parts[2]
	want, err := hex.DecodeString(digest)
	if err != nil || len(want) == 0 {
		return false
	}

	var got []byte
	params := strings.Split(method, ":")
	switch params[0] {
	case "pbkdf2":
		got = werkzeugPBKDF2(params[1:], []byte(plain), []byte(salt), len(want))
	case "scrypt":
		got = werkzeugScrypt(params[1:], []byte(plain), []byte(salt), len(want))
	}
	if got == nil {
		return false
	}
	return subtle.ConstantTimeCompare(got, want) == 1
}

func werkzeugPBKDF2(params []string, password, salt []byte, keyLen int) []byte {
	hashName := "sha256"
	iterations := 600000
	if len(params) > 0 && params[0] != "" {
		hashName = params[0]
	}
	if len(params) > 1 {
		n, err := strconv.Atoi(params[1])
		if err != nil || n <= 0 {
			return nil
		}
		iterations = n
	}

	var h func() hash.Hash
	switch hashName {
	case "sha1":
		h = sha1.New
	case "sha256":
		h = sha256.New
	case "sha512":
		h = sha512.New
	default:
		return nil
	}
	return pbkdf2.Key(password, salt, iterations, keyLen, h)
}

func werkzeugScrypt(params []string, password, salt []byte, keyLen int) []byte {
	n, r, p := 32768, 8, 1
	if len(params) == 3 {
		var err error
		if n, err = strconv.Atoi(params[0]); err != nil {
			return nil
		}
		if r, err = strconv.Atoi(params[1]); err != nil {
			return nil
		}
		if p, err = strconv.Atoi(params[2]); err != nil {
			return nil
		}
	}
	key, err := scrypt.Key(password, salt, n, r, p, keyLen)
	if err != nil {
		return nil
	}
	return key
}
