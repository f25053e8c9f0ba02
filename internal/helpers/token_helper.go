package helpers

import (
	"crypto/rand"
	"encoding/hex"
)

const sessionTokenBytes = 32

// GenerateSessionToken returns a 256-bit random token, hex encoded.
// The token is the only credential a session cookie carries, so it must
// come from the OS CSPRNG.
func GenerateSessionToken() (string, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
