// Package crypto encrypts task blobs written by gitstore.
package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/runoshun/taskflow/internal/domain"
)

const (
	// NonceSize is the size of the nonce for AES-GCM (12 bytes).
	NonceSize = 12
	// KeySize is the size of the AES-256 key (32 bytes).
	KeySize = 32
)

var (
	// ErrDecryptionFailed is returned when decryption fails.
	ErrDecryptionFailed = errors.New("decryption failed: invalid ciphertext or key")
	// ErrCiphertextTooShort is returned when the ciphertext is too short.
	ErrCiphertextTooShort = errors.New("ciphertext too short")
)

// Encryptor handles AES-256-GCM encryption of a single slot.
// The slot name is bound to every ciphertext as associated data, so a blob
// copied to another slot fails to decrypt.
//
// The last plaintext/ciphertext pair is remembered so saving an unchanged
// list produces the same blob and no new git object.
type Encryptor struct {
	gcm        cipher.AEAD
	label      []byte
	lastPlain  []byte
	lastCipher []byte
	mu         sync.Mutex
}

// NewEncryptor creates an Encryptor from a hex-encoded key (64 characters).
// label identifies the slot and is authenticated with every blob.
func NewEncryptor(hexKey, label string) (*Encryptor, error) {
	key, err := hex.DecodeString(strings.TrimSpace(hexKey))
	if err != nil || len(key) != KeySize {
		return nil, fmt.Errorf("%w: must be %d bytes (%d hex characters)", domain.ErrEncryptionKey, KeySize, KeySize*2)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create GCM: %w", err)
	}

	return &Encryptor{
		gcm:   gcm,
		label: []byte(label),
	}, nil
}

// GenerateKey returns a random hex-encoded key suitable for NewEncryptor.
func GenerateKey() (string, error) {
	key := make([]byte, KeySize)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return "", fmt.Errorf("generate key: %w", err)
	}
	return hex.EncodeToString(key), nil
}

// Encrypt encrypts plaintext using AES-256-GCM.
// Returns: nonce (12 bytes) + ciphertext + auth tag
func (e *Encryptor) Encrypt(plaintext []byte) ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.lastCipher != nil && bytes.Equal(e.lastPlain, plaintext) {
		return e.lastCipher, nil
	}

	nonce := make([]byte, NonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	ciphertext := e.gcm.Seal(nonce, nonce, plaintext, e.label)
	e.remember(plaintext, ciphertext)
	return ciphertext, nil
}

// Decrypt decrypts ciphertext produced by Encrypt.
func (e *Encryptor) Decrypt(ciphertext []byte) ([]byte, error) {
	if len(ciphertext) < NonceSize {
		return nil, ErrCiphertextTooShort
	}

	nonce := ciphertext[:NonceSize]
	encrypted := ciphertext[NonceSize:]

	plaintext, err := e.gcm.Open(nil, nonce, encrypted, e.label)
	if err != nil {
		return nil, ErrDecryptionFailed
	}

	e.mu.Lock()
	e.remember(plaintext, ciphertext)
	e.mu.Unlock()

	return plaintext, nil
}

// remember stores the pair for reuse by Encrypt. Caller must hold e.mu.
func (e *Encryptor) remember(plaintext, ciphertext []byte) {
	e.lastPlain = bytes.Clone(plaintext)
	e.lastCipher = bytes.Clone(ciphertext)
}
