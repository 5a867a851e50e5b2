package auth

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"sync"

	apperrors "github.com/hetpatel672/BudgetWise/internal/errors"
	"github.com/hetpatel672/BudgetWise/internal/keystore"
	"github.com/hetpatel672/BudgetWise/internal/logger"
)

// envelopePrefix marks a ciphertext envelope. Blobs without it are treated
// as plain JSON written before encryption was introduced.
const envelopePrefix = "gcm:"

const keySize = 32 // AES-256

// Cipher encrypts arbitrary JSON-serializable payloads with a locally
// generated 256-bit key held in the keystore. The key is created lazily on
// first use and reused thereafter.
type Cipher struct {
	keys keystore.Store

	// allowPlaintext preserves the legacy silent downgrade: on encryption
	// failure the plain serialization is returned instead of an error.
	allowPlaintext bool

	mu   sync.Mutex
	aead cipher.AEAD
}

// NewCipher creates a Cipher backed by the given keystore.
func NewCipher(keys keystore.Store, allowPlaintext bool) *Cipher {
	return &Cipher{keys: keys, allowPlaintext: allowPlaintext}
}

// Encrypt serializes the value and seals it with AES-256-GCM. The random
// nonce is prepended to the ciphertext and the whole envelope is base64
// encoded behind the "gcm:" prefix.
func (c *Cipher) Encrypt(value interface{}) (string, error) {
	plain, err := json.Marshal(value)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrEncryptionFailed, err)
	}

	aead, err := c.loadAEAD()
	if err != nil {
		if c.allowPlaintext {
			logger.Get().Warnw("encryption unavailable, storing plaintext", "error", err)
			return string(plain), nil
		}
		return "", apperrors.Wrap(apperrors.ErrEncryptionFailed, err)
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		if c.allowPlaintext {
			logger.Get().Warnw("nonce generation failed, storing plaintext", "error", err)
			return string(plain), nil
		}
		return "", apperrors.Wrap(apperrors.ErrEncryptionFailed, err)
	}

	sealed := aead.Seal(nonce, nonce, plain, nil)
	return envelopePrefix + base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt reverses Encrypt. When the blob is not a valid envelope, or the
// envelope cannot be opened, it falls back to parsing the blob as plain
// JSON so data written before encryption (or during a plaintext fallback
// event) stays readable.
func (c *Cipher) Decrypt(blob string, out interface{}) error {
	if !strings.HasPrefix(blob, envelopePrefix) {
		if err := json.Unmarshal([]byte(blob), out); err != nil {
			return apperrors.Wrap(apperrors.ErrDecryptionFailed, err)
		}
		return nil
	}

	plain, err := c.open(strings.TrimPrefix(blob, envelopePrefix))
	if err != nil {
		// Legacy fallback: the blob may be plain JSON that happens to
		// start with the prefix characters.
		if jsonErr := json.Unmarshal([]byte(blob), out); jsonErr == nil {
			return nil
		}
		return apperrors.Wrap(apperrors.ErrDecryptionFailed, err)
	}

	if err := json.Unmarshal(plain, out); err != nil {
		return apperrors.Wrap(apperrors.ErrDecryptionFailed, err)
	}
	return nil
}

func (c *Cipher) open(encoded string) ([]byte, error) {
	sealed, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, err
	}

	aead, err := c.loadAEAD()
	if err != nil {
		return nil, err
	}

	if len(sealed) < aead.NonceSize() {
		return nil, errors.New("ciphertext shorter than nonce")
	}
	nonce, ciphertext := sealed[:aead.NonceSize()], sealed[aead.NonceSize():]
	return aead.Open(nil, nonce, ciphertext, nil)
}

// loadAEAD returns the AEAD for the persisted key, generating and
// persisting a fresh 256-bit key on first use.
func (c *Cipher) loadAEAD() (cipher.AEAD, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.aead != nil {
		return c.aead, nil
	}

	key, err := c.keys.Get(keystore.KeyEncryptionKey)
	if errors.Is(err, keystore.ErrNotFound) {
		key = make([]byte, keySize)
		if _, err := rand.Read(key); err != nil {
			return nil, err
		}
		if err := c.keys.Set(keystore.KeyEncryptionKey, key); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	if len(key) != keySize {
		return nil, errors.New("stored encryption key has wrong size")
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	c.aead = aead
	return aead, nil
}
