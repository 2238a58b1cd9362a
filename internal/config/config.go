// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// Meta validation modes accepted by [App.MetaValidation].
const (
	// MetaOpaque accepts any JSON object (or null) as dataset meta.
	MetaOpaque = "opaque"

	// MetaStrict additionally requires the encrypted-sync crypto parameter
	// shape: enc, kdf, iterations, salt, iv, schemaVersion.
	MetaStrict = "strict"
)

// StructuredConfig is the top-level configuration container for the
// go-dataset-keeper application. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line flags,
// and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings: the meta validation mode and
	// the crypto parameter bounds enforced in strict mode.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the persistence backend.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the HTTP server.
	Server Server `envPrefix:"SERVER_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values that control how dataset
// meta is validated.
type App struct {
	// MetaValidation selects the meta validation mode: [MetaOpaque]
	// (default) or [MetaStrict].
	// Env: APP_META_VALIDATION
	MetaValidation string `env:"META_VALIDATION"`

	// CipherName is the algorithm name strict mode requires in meta.enc.
	// Defaults to "AES-GCM".
	// Env: APP_CIPHER_NAME
	CipherName string `env:"CIPHER_NAME"`

	// KDFName is the key-derivation name strict mode requires in meta.kdf.
	// Defaults to "PBKDF2".
	// Env: APP_KDF_NAME
	KDFName string `env:"KDF_NAME"`

	// MinKDFIterations is the lowest meta.iterations value strict mode
	// accepts. Defaults to 100000.
	// Env: APP_MIN_KDF_ITERATIONS
	MinKDFIterations int `env:"MIN_KDF_ITERATIONS"`
}

// Storage groups the configuration for the persistence backend.
type Storage struct {
	// DB holds the database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the dataset storage backend.
type DB struct {
	// DSN selects and configures the backend:
	//   - "postgres://..." / "postgresql://..." — PostgreSQL via pgx;
	//   - "memory" — non-durable in-process store (local runs, tests);
	//   - anything else — SQLite database file path.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`

	// Table is the table the datasets live in. Defaults to "datasets".
	// Tables other than the default are assumed to be provisioned
	// externally; migrations only manage the default one.
	// Env: STORAGE_DB_TABLE
	Table string `env:"TABLE"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it (e.g. "30s", "1m").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (first non-zero value wins per field):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
