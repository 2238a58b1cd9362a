// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/MKhiriev/go-dataset-keeper/internal/config"
)

// validateMeta checks the structural shape of a dataset's meta value and
// returns the list of violated fields (empty when valid).
//
// In opaque mode, meta may be absent, JSON null, or any JSON object; its
// contents are never inspected. In strict mode, meta must be present and
// carry the encrypted-sync crypto parameters:
//
//   - enc           — must equal the configured cipher name;
//   - kdf           — must equal the configured KDF name;
//   - iterations    — number, at least the configured minimum;
//   - salt, iv      — non-empty strings;
//   - schemaVersion — number.
//
// The server validates shape only; it never uses the values.
func validateMeta(meta json.RawMessage, strict bool, cfg config.App) []string {
	if len(meta) == 0 || isJSONNull(meta) {
		if strict {
			return []string{"meta"}
		}
		return nil
	}

	var object map[string]any
	if err := json.Unmarshal(meta, &object); err != nil {
		// not a JSON object: structurally invalid in either mode
		return []string{"meta"}
	}

	if !strict {
		return nil
	}

	var violations []string

	if enc, ok := object["enc"].(string); !ok || enc != cfg.CipherName {
		violations = append(violations, "meta.enc")
	}
	if kdf, ok := object["kdf"].(string); !ok || kdf != cfg.KDFName {
		violations = append(violations, "meta.kdf")
	}
	if iterations, ok := object["iterations"].(float64); !ok || iterations < float64(cfg.MinKDFIterations) {
		violations = append(violations, "meta.iterations")
	}
	if salt, ok := object["salt"].(string); !ok || salt == "" {
		violations = append(violations, "meta.salt")
	}
	if iv, ok := object["iv"].(string); !ok || iv == "" {
		violations = append(violations, "meta.iv")
	}
	if _, ok := object["schemaVersion"].(float64); !ok {
		violations = append(violations, "meta.schemaVersion")
	}

	return violations
}

// normalizeMeta maps an explicit JSON null to an absent meta so every
// backend stores the two spellings identically.
func normalizeMeta(meta json.RawMessage) json.RawMessage {
	if len(meta) == 0 || isJSONNull(meta) {
		return nil
	}
	return meta
}

func isJSONNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func joinFields(fields []string) string {
	return strings.Join(fields, ", ")
}
