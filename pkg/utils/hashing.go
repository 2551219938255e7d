package utils

import (
	"crypto/rand"
	"encoding/hex"
	"errors"

	"golang.org/x/crypto/sha3"
)

// GenerateSecureToken returns a random hex token, used for quiz session ids.
func GenerateSecureToken(length int) (string, error) {
	if length <= 0 {
		return "", errors.New("invalid token length")
	}

	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// SignPayload computes the X-Body-Signature value for outgoing webhook bodies:
// hex(SHA3-256(secret || body)). The receiving legacy endpoint recomputes the
// same digest to verify the payload was not tampered with in transit.
func SignPayload(secret string, body []byte) string {
	h := sha3.New256()
	h.Write([]byte(secret))
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}
