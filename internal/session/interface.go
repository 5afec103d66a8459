package session

import (
	"context"

	"github.com/BALASANKARP/Edurecap/internal/capture"
)

// Remote runs the processing stages. *pipeline.Client satisfies it.
type Remote interface {
	Transcribe(ctx context.Context, audioPath, name string) (string, error)
	Summarize(ctx context.Context, transcription string) (string, error)
	Flashcards(ctx context.Context, transcription string) (string, error)
}

// Recorder produces audio for the session. *capture.Controller satisfies it.
type Recorder interface {
	Start(ctx context.Context) (*capture.Session, error)
	Stop(ctx context.Context) (string, error)
	Import(ctx context.Context) (string, bool, error)
}

// Notifier shows the user one notice per failed operation.
type Notifier interface {
	Notify(ctx context.Context, err error)
}

type NotifierFunc func(ctx context.Context, err error)

func (f NotifierFunc) Notify(ctx context.Context, err error) {
	f(ctx, err)
}
