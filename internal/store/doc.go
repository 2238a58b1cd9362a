// Package store contains the dataset persistence layer: the
// DatasetRepository contract with its sentinel conditional-write outcomes,
// and the PostgreSQL, SQLite, and in-memory implementations of it.
package store
