package models

import "encoding/json"

// DatasetInput is the request body shared by the create and update
// operations: an opaque payload plus an optional meta value.
//
// Payload is a pointer so a missing field can be told apart from an empty
// string; both are rejected by validation.
type DatasetInput struct {
	Payload *string         `json:"payload"`
	Meta    json.RawMessage `json:"meta,omitempty"`
}
