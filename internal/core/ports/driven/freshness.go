package driven

import (
	"context"
	"time"
)

// FreshnessStore records when a piece of content was last modified.
// The fusion ranker reads it to derive the recency signal; content with
// no recorded timestamp receives a neutral factor rather than a penalty.
//
// This is an optional service - when nil, every candidate scores the
// neutral recency constant.
type FreshnessStore interface {
	// Touch records the modification time for a candidate ID.
	Touch(ctx context.Context, id string, modifiedAt time.Time) error

	// ModifiedAt returns the recorded modification time. The boolean
	// reports whether a timestamp exists for the ID.
	ModifiedAt(ctx context.Context, id string) (time.Time, bool, error)

	// Close releases resources.
	Close() error
}
