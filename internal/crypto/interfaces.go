// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package crypto implements the client-side keychain used to seal dataset
// payloads before they are uploaded.
//
// The server never sees plaintext: payloads arrive as opaque Base64 blobs
// accompanied by the key-derivation parameters ([models.CryptoParams]) the
// client needs to decrypt them later.
package crypto

import "github.com/MKhiriev/go-dataset-keeper/models"

// KeyChainService derives encryption keys from a password and seals and opens
// dataset payloads with them.
type KeyChainService interface {
	// Seal encrypts plaintext under a key derived from password with fresh
	// random salt and nonce. It returns the Base64 ciphertext for the dataset
	// payload field and the derivation parameters for the meta field.
	Seal(plaintext []byte, password string) (string, models.CryptoParams, error)

	// Open reverses Seal: it re-derives the key from password and params and
	// decrypts ciphertextB64. Returns an error if the password is wrong, the
	// params are malformed, or the ciphertext is corrupted.
	Open(ciphertextB64 string, password string, params models.CryptoParams) ([]byte, error)
}
