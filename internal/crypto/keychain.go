// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"

	"github.com/MKhiriev/go-dataset-keeper/models"
)

const (
	cipherName = "AES-GCM"
	kdfName    = "PBKDF2"

	saltLen = 16
	keyLen  = 32 // 256 bits

	// metaSchemaVersion is bumped whenever the CryptoParams layout changes.
	metaSchemaVersion = 1
)

// keyChainService is the private implementation of [KeyChainService].
type keyChainService struct {
	// PBKDF2 iteration count. Stored in the struct so it can be adjusted per
	// deployment target (e.g. mobile vs. desktop).
	iterations int
}

// NewKeyChainService constructs a [KeyChainService] deriving 256-bit keys
// with PBKDF2-SHA256 at the given iteration count. Counts below 100000 are
// raised to 100000 so that sealed payloads always pass server-side strict
// meta validation.
func NewKeyChainService(iterations int) KeyChainService {
	if iterations < 100000 {
		iterations = 100000
	}
	return &keyChainService{iterations: iterations}
}

// Seal implements [KeyChainService]. It reads a fresh 16-byte salt and a
// fresh GCM nonce from the OS CSPRNG, derives the key with PBKDF2-SHA256,
// and encrypts plaintext with AES-256-GCM. Salt and nonce are returned
// Base64-encoded inside the [models.CryptoParams] rather than being
// prepended to the ciphertext: the dataset meta carries them on the wire.
func (k *keyChainService) Seal(plaintext []byte, password string) (string, models.CryptoParams, error) {
	salt := make([]byte, saltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", models.CryptoParams{}, fmt.Errorf("generate salt: %w", err)
	}

	gcm, err := k.newGCM(password, salt)
	if err != nil {
		return "", models.CryptoParams{}, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", models.CryptoParams{}, fmt.Errorf("generate nonce: %w", err)
	}

	ciphertext := gcm.Seal(nil, nonce, plaintext, nil)

	params := models.CryptoParams{
		Enc:           cipherName,
		KDF:           kdfName,
		Iterations:    k.iterations,
		Salt:          base64.StdEncoding.EncodeToString(salt),
		IV:            base64.StdEncoding.EncodeToString(nonce),
		SchemaVersion: metaSchemaVersion,
	}

	return base64.StdEncoding.EncodeToString(ciphertext), params, nil
}

// Open implements [KeyChainService]. It decodes the salt and nonce from
// params, re-derives the key at params.Iterations, and decrypts the
// ciphertext. An authentication-tag mismatch almost always means the user
// entered the wrong password.
func (k *keyChainService) Open(ciphertextB64 string, password string, params models.CryptoParams) ([]byte, error) {
	if params.Enc != cipherName {
		return nil, fmt.Errorf("unsupported cipher %q", params.Enc)
	}
	if params.KDF != kdfName {
		return nil, fmt.Errorf("unsupported kdf %q", params.KDF)
	}

	salt, err := base64.StdEncoding.DecodeString(params.Salt)
	if err != nil {
		return nil, fmt.Errorf("decode salt: %w", err)
	}
	nonce, err := base64.StdEncoding.DecodeString(params.IV)
	if err != nil {
		return nil, fmt.Errorf("decode iv: %w", err)
	}
	ciphertext, err := base64.StdEncoding.DecodeString(ciphertextB64)
	if err != nil {
		return nil, fmt.Errorf("decode ciphertext: %w", err)
	}

	key := pbkdf2.Key([]byte(password), salt, params.Iterations, keyLen, sha256.New)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}

	if len(nonce) != gcm.NonceSize() {
		return nil, fmt.Errorf("invalid nonce length %d", len(nonce))
	}

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("decryption failed: %w", err)
	}

	return plaintext, nil
}

func (k *keyChainService) newGCM(password string, salt []byte) (cipher.AEAD, error) {
	key := pbkdf2.Key([]byte(password), salt, k.iterations, keyLen, sha256.New)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}

	return gcm, nil
}
