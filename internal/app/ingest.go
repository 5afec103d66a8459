package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/BALASANKARP/Edurecap/internal/recording"
)

var errNoAudio = errors.New("inbox file vanished")

// Ingest saves an audio file found in the inbox as a new recording named
// after the file. With auto-transcribe on, a transcription is requested
// first; a remote failure still saves the audio without one.
func (a *App) Ingest(ctx context.Context, path string) (recording.Recording, error) {
	if _, err := os.Stat(path); err != nil {
		return recording.Recording{}, fmt.Errorf("%w: %v", errNoAudio, err)
	}

	s := a.NewSession()
	if err := s.UseAudio(ctx, path); err != nil {
		return recording.Recording{}, err
	}
	s.SetName(a.UniqueName(recording.Stem(path)))

	if a.Config.Inbox.AutoTranscribe {
		if err := s.Transcribe(ctx); err != nil {
			a.Logger.Warn(ctx, "Saving %s without a transcription: %v", path, err)
		}
	}

	rec, err := s.Save(ctx)
	if err != nil {
		s.Discard(ctx)
		return recording.Recording{}, err
	}
	a.Logger.Info(ctx, "Imported %s as %q", path, rec.Name)
	return rec, nil
}

// UniqueName returns base, or base with a numeric suffix, so that it names
// neither a catalog entry nor an existing vault file.
func (a *App) UniqueName(base string) string {
	taken := func(name string) bool {
		if a.Catalog.Contains(name) {
			return true
		}
		_, err := os.Stat(a.Vault.PathFor(name))
		return err == nil
	}

	if !taken(base) {
		return base
	}
	for n := 2; ; n++ {
		name := fmt.Sprintf("%s (%d)", base, n)
		if !taken(name) {
			return name
		}
	}
}
