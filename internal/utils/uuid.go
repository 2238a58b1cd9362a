package utils

import "github.com/google/uuid"

// UUIDGenerator produces the opaque keys that identify datasets.
// UUIDv7 keeps keys roughly time-ordered which helps index locality;
// a random v4 is the fallback when the v7 source fails.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
