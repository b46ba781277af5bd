package util

import (
	"crypto/rand"
	"encoding/hex"
)

// idByteLength sets the number of random bytes in an image ID (16,
// yielding 32 hexadecimal characters).
const idByteLength = 16

// RandID generates a 32-character random hexadecimal image identifier.
//
// Returns:
//   - string: Random lowercase hexadecimal ID.
func RandID() string {
	idBuffer := make([]byte, idByteLength)
	// crypto/rand never fails on supported platforms.
	_, _ = rand.Read(idBuffer)

	return hex.EncodeToString(idBuffer)
}
