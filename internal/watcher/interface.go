package watcher

import "context"

// Watcher imports audio files dropped into an inbox directory.
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler processes one audio file found in the inbox.
type EventHandler func(ctx context.Context, filePath string) error
