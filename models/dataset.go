// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"time"
)

// Dataset is the single stored entity of the service: an opaque payload
// addressed by a server-generated key.
//
// The server never inspects Payload. Meta is stored and returned verbatim;
// in strict validation mode it must carry the crypto parameters described by
// [CryptoParams], but the server still does not interpret them beyond that
// structural check.
type Dataset struct {
	// KeyID uniquely identifies the dataset for its whole lifetime.
	// Generated by the server at creation time and immutable afterwards.
	KeyID string `json:"keyId"`

	// Version starts at 1 and is incremented by exactly 1 on every
	// successful update. The increment happens inside a single conditional
	// write in the storage backend, so no two writes to the same KeyID can
	// produce the same version.
	Version int64 `json:"version"`

	// Payload is the opaque client data. Never parsed by the server.
	Payload string `json:"payload"`

	// Meta is an optional opaque structured value (JSON object or null).
	// A nil RawMessage marshals as null on the wire.
	Meta json.RawMessage `json:"meta"`

	// UpdatedAt is set by the server on every create or update.
	// Marshalled as RFC 3339 (ISO-8601) in UTC.
	UpdatedAt time.Time `json:"updatedAt"`
}
