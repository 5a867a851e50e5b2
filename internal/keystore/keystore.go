// Package keystore abstracts the platform secure blob store as an opaque
// get/set/remove contract keyed by string. The core never assumes how the
// bytes are protected at rest; that is the implementation's job.
package keystore

import "errors"

// ErrNotFound is returned when no blob exists for a key.
var ErrNotFound = errors.New("keystore: key not found")

// Store is a secure key-value blob store.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
}

// Well-known keys used by the auth/crypto layer.
const (
	KeyPINHash       = "pin_hash"
	KeyEncryptionKey = "enc_key"
)
