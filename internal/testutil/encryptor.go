package testutil

import (
	"lignee/internal/encryption"
)

// NewTestEncryptor creates a configured test encryptor unlocked by the empty passphrase.
func NewTestEncryptor() *encryption.TestEncryptor {
	return encryption.NewTestEncryptor()
}
