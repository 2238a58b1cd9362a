package models

import "time"

// WriteResponse is returned by the create (201) and update (200) operations.
// It confirms the server-assigned key, the resulting version, and the new
// timestamp without echoing the payload back.
type WriteResponse struct {
	KeyID     string    `json:"keyId"`
	Version   int64     `json:"version"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DeleteResponse is returned by a successful delete operation.
type DeleteResponse struct {
	Message string `json:"message"`
	KeyID   string `json:"keyId"`
}

// ErrorResponse is the uniform error body: every failed request carries a
// single human-readable error string.
type ErrorResponse struct {
	Error string `json:"error"`
}
