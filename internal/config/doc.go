// Package config loads the application configuration from environment
// variables, command-line flags, and an optional JSON file, merges the
// sources with mergo (first non-zero value per field wins), applies
// defaults, and validates the result.
package config
