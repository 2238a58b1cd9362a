// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// postgresErrorCode extracts the PostgreSQL error code from err, or returns
// an empty string when err does not wrap a *pgconn.PgError.
func postgresErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	return ""
}

// isUniqueViolation reports whether err is the backend's conditional-failure
// signal for "record already exists": a unique or primary-key constraint
// violation (class 23505).
//
// The create query uses ON CONFLICT DO NOTHING, so in practice a duplicate
// surfaces as zero affected rows rather than an error; this check covers the
// remaining paths (e.g. a concurrent insert racing the conflict target).
func isUniqueViolation(err error) bool {
	return postgresErrorCode(err) == pgerrcode.UniqueViolation
}
