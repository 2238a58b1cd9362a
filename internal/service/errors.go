package service

import "errors"

var (
	// ErrValidation is wrapped around every structural validation failure;
	// the wrapping message enumerates the violated fields.
	ErrValidation = errors.New("invalid dataset provided")

	// ErrNoKeyID is returned when an operation that addresses an existing
	// dataset is called without a key.
	ErrNoKeyID = errors.New("no keyId provided")
)
