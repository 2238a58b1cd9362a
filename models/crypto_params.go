// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// CryptoParams is the non-secret parameter set an encrypted-sync client
// stores in a dataset's meta so the payload can be decrypted later on any of
// the user's devices. The server validates its shape in strict mode and
// nothing else; all values are produced and consumed client-side.
type CryptoParams struct {
	// Enc is the symmetric cipher name, e.g. "AES-GCM".
	Enc string `json:"enc"`

	// KDF is the key-derivation function name, e.g. "PBKDF2".
	KDF string `json:"kdf"`

	// Iterations is the KDF iteration count. Strict mode rejects values
	// below the configured minimum.
	Iterations int `json:"iterations"`

	// Salt is the base64-encoded KDF salt.
	Salt string `json:"salt"`

	// IV is the base64-encoded cipher initialization vector (GCM nonce).
	IV string `json:"iv"`

	// SchemaVersion versions the meta layout itself.
	SchemaVersion int `json:"schemaVersion"`
}
