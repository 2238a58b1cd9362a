// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "errors"

var (
	ErrBadRequest          = errors.New("bad request")
	ErrNotFound            = errors.New("dataset not found")
	ErrConflict            = errors.New("dataset conflict")
	ErrInternalServerError = errors.New("internal server error")
)
