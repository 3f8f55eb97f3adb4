// Package session keeps computed estimates retrievable by id so the results
// screen and the report download can be served after the calculation.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/revaya/roicalc/internal/roi"
)

// ErrNotFound is returned for unknown or expired ids.
var ErrNotFound = errors.New("session: result not found")

// Entry is one stored calculation.
type Entry struct {
	ID        string      `json:"id"`
	Answers   roi.Answers `json:"answers"`
	Results   roi.Results `json:"results"`
	CreatedAt time.Time   `json:"createdAt"`
}

// Store persists entries for a limited time.
type Store interface {
	// Put assigns a fresh id to e, stores it and returns the id.
	Put(ctx context.Context, e Entry) (string, error)
	Get(ctx context.Context, id string) (Entry, error)
}

func newID() string {
	return uuid.NewString()
}

// validID rejects ids that could never have been issued, so lookups for
// garbage don't reach the backend.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
