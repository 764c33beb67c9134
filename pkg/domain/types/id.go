package types

import (
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// PublicID is the opaque identifier an entity is addressed by externally.
// It is assigned once at creation, never reused, and distinct from the
// internal numeric ID used by storage.
type PublicID string

// NewPublicID generates a new random public ID
func NewPublicID() PublicID {
	return PublicID(uuid.New().String())
}

// Validate checks if the PublicID is a well-formed UUID
func (id PublicID) Validate() error {
	if id == "" {
		return goerr.New("public ID cannot be empty")
	}
	if _, err := uuid.Parse(string(id)); err != nil {
		return goerr.Wrap(err, "public ID must be a UUID", goerr.V("id", id))
	}
	return nil
}

// String returns the string representation of the PublicID
func (id PublicID) String() string {
	return string(id)
}
