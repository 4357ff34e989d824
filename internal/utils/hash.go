package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// signatureSeparator splits a signed value from its signature.
const signatureSeparator = "."

// HashString computes an HMAC-SHA256 signature over the given string
// using the provided hash key and returns the result as a hex-encoded string.
//
// A new HMAC instance is created on each call.
//
// Example usage:
//
//	signature := utils.HashString("some data", "my-secret-key")
func HashString(data string, hashKey string) string {
	return hex.EncodeToString(hashString([]byte(data), hashKey))
}

// hashString computes an HMAC-SHA256 digest over the given byte slice
// using the provided hash key.
func hashString(data []byte, hashKey string) []byte {
	hasher := hmac.New(sha256.New, []byte(hashKey))
	hasher.Write(data)
	return hasher.Sum(nil)
}

// Sign returns value followed by "." and its hex HMAC-SHA256 signature.
//
//	utils.Sign("abc", key) // "abc.5f0c..."
func Sign(value, hashKey string) string {
	return value + signatureSeparator + HashString(value, hashKey)
}

// Unsign verifies a value produced by [Sign] and returns the original value.
// ok is false when the signature is missing or does not match.
func Unsign(signed, hashKey string) (value string, ok bool) {
	idx := strings.LastIndex(signed, signatureSeparator)
	if idx <= 0 || idx == len(signed)-1 {
		return "", false
	}

	value, signature := signed[:idx], signed[idx+1:]
	got, err := hex.DecodeString(signature)
	if err != nil {
		return "", false
	}

	if !hmac.Equal(got, hashString([]byte(value), hashKey)) {
		return "", false
	}
	return value, true
}
