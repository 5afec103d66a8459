package store

import (
	"context"

	"github.com/BALASANKARP/Edurecap/internal/recording"
)

// Store persists the whole recording sequence under one well-known key.
// SaveAll replaces everything previously stored; it is the only write.
type Store interface {
	LoadAll(ctx context.Context) ([]recording.Recording, error)
	SaveAll(ctx context.Context, recs []recording.Recording) error
	Close() error
}
