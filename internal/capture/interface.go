package capture

import "context"

// Permission grants or denies microphone access.
type Permission interface {
	Request(ctx context.Context) (bool, error)
}

// Device acquires the native recorder. Open must either return a live
// Handle or leave nothing running.
type Device interface {
	Open(ctx context.Context, path string) (Handle, error)
}

// Handle is one open native recording.
type Handle interface {
	// Finalize stops capturing and flushes the audio file.
	Finalize() error
	// Release frees the native resources. Safe after Finalize or on failure.
	Release() error
}

// Picker lets the user choose an existing audio file. ok is false when the
// user cancelled.
type Picker interface {
	Pick(ctx context.Context) (path string, ok bool, err error)
}
