// Package store persists the saved-pattern library used by the HTTP
// server.
//
// A saved pattern is a named configuration, not a generated grid: grids
// are deterministic and cheap to regenerate, so only the interchange
// JSON is stored. Two backends exist:
//
//   - memory: single-instance deployments and tests
//   - mongo: durable, multi-instance deployments
//
// The engine itself never touches this package; persistence is strictly
// a server concern.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/HamletDuFromage/x-stitch/pkg/errors"
)

// SavedPattern is one library entry. ConfigJSON holds the pattern
// configuration in the interchange format (see pkg/io).
type SavedPattern struct {
	ID         string    `json:"id" bson:"_id"`
	Name       string    `json:"name" bson:"name"`
	ConfigJSON []byte    `json:"config" bson:"config_json"`
	CreatedAt  time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" bson:"updated_at"`
}

// Store is the interface both backends implement.
type Store interface {
	// Save inserts a pattern, assigning ID and timestamps.
	Save(ctx context.Context, p *SavedPattern) error

	// Get retrieves a pattern by ID. Missing patterns return a
	// PATTERN_NOT_FOUND error.
	Get(ctx context.Context, id string) (*SavedPattern, error)

	// List returns all patterns, newest first.
	List(ctx context.Context) ([]*SavedPattern, error)

	// Delete removes a pattern by ID. Missing patterns return a
	// PATTERN_NOT_FOUND error.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// NewID generates a pattern ID.
func NewID() string {
	return uuid.NewString()
}

// prepare fills in the ID and timestamps for a new entry and validates
// the name.
func prepare(p *SavedPattern) error {
	if err := errors.ValidatePatternName(p.Name); err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = NewID()
	}
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	return nil
}

// notFound builds the canonical missing-pattern error.
func notFound(id string) error {
	return errors.New(errors.ErrCodePatternNotFound, "pattern %s not found", id)
}
