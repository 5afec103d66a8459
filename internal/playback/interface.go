package playback

import (
	"context"
	"time"
)

// Output opens native playback handles.
type Output interface {
	Open(ctx context.Context, uri string) (Sound, error)
}

// Sound is one native playback handle. The engine serializes all calls.
type Sound interface {
	Duration() time.Duration
	Position() time.Duration
	// Play starts or resumes from the current position.
	Play() error
	Pause() error
	Seek(pos time.Duration) error
	// Finished reports whether playback reached the end on its own.
	Finished() bool
	Close() error
}

// State is what observers see. The zero State means nothing is playing.
type State struct {
	URI      string
	Position time.Duration
	Duration time.Duration
	Playing  bool
	Finished bool
}

func (s State) Active() bool {
	return s.URI != ""
}
