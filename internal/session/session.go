package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/atotto/clipboard"
	"github.com/google/uuid"

	"github.com/BALASANKARP/Edurecap/internal/catalog"
	"github.com/BALASANKARP/Edurecap/internal/logger"
	"github.com/BALASANKARP/Edurecap/internal/recording"
	"github.com/BALASANKARP/Edurecap/internal/vault"
)

// View is a read-only copy of the session state.
type View struct {
	ID        string
	Audio     string
	Name      string
	Artifacts Artifacts
	Recording bool
	Busy      bool
	Closed    bool
}

type Dependencies struct {
	Remote   Remote
	Recorder Recorder
	Catalog  *catalog.Catalog
	Vault    *vault.Vault
	Notifier Notifier
	Logger   logger.Logger
	// Clipboard defaults to the system clipboard.
	Clipboard func(text string) error
}

// Session is one audio file being prepared for save. At most one remote
// stage runs at a time; results that arrive after the audio was replaced or
// the session was closed are dropped.
type Session struct {
	mu   sync.Mutex
	id   string
	deps Dependencies

	audio      string
	name       string
	artifacts  Artifacts
	recording  bool
	busy       bool
	closed     bool
	generation uint64
}

func New(deps Dependencies) *Session {
	if deps.Clipboard == nil {
		deps.Clipboard = clipboard.WriteAll
	}
	if deps.Notifier == nil {
		deps.Notifier = NotifierFunc(func(context.Context, error) {})
	}
	return &Session{id: uuid.NewString(), deps: deps}
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) ctx(ctx context.Context) context.Context {
	return logger.WithSession(ctx, s.id)
}

func (s *Session) fail(ctx context.Context, err error) error {
	s.deps.Notifier.Notify(ctx, err)
	return err
}

func (s *Session) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return View{
		ID:        s.id,
		Audio:     s.audio,
		Name:      s.name,
		Artifacts: s.artifacts,
		Recording: s.recording,
		Busy:      s.busy,
		Closed:    s.closed,
	}
}

func (s *Session) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = strings.TrimSpace(name)
}

// UseAudio makes path the session's audio, e.g. a file dropped in the inbox.
func (s *Session) UseAudio(ctx context.Context, path string) error {
	ctx = s.ctx(ctx)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return s.fail(ctx, fmt.Errorf("%w: cannot read %s", recording.ErrValidation, path))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return s.fail(ctx, recording.ErrSessionClosed)
	}
	s.replaceAudio(path)
	return nil
}

// replaceAudio must be called with mu held. Artifacts derived from the old
// audio are dropped.
func (s *Session) replaceAudio(path string) {
	s.audio = path
	s.artifacts = Artifacts{}
	s.generation++
}

func (s *Session) StartRecording(ctx context.Context) error {
	ctx = s.ctx(ctx)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return s.fail(ctx, recording.ErrSessionClosed)
	}
	s.mu.Unlock()

	if _, err := s.deps.Recorder.Start(ctx); err != nil {
		return s.fail(ctx, err)
	}

	s.mu.Lock()
	s.recording = true
	s.mu.Unlock()
	return nil
}

func (s *Session) StopRecording(ctx context.Context) error {
	ctx = s.ctx(ctx)

	path, err := s.deps.Recorder.Stop(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.recording = false

	if err != nil {
		return s.fail(ctx, err)
	}
	if s.closed {
		os.Remove(path)
		return recording.ErrSessionClosed
	}
	s.replaceAudio(path)
	return nil
}

// Import asks the recorder's picker for a file. ok is false when the user
// cancelled, which leaves the session unchanged.
func (s *Session) Import(ctx context.Context) (bool, error) {
	ctx = s.ctx(ctx)

	path, ok, err := s.deps.Recorder.Import(ctx)
	if err != nil {
		return false, s.fail(ctx, err)
	}
	if !ok {
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false, s.fail(ctx, recording.ErrSessionClosed)
	}
	s.replaceAudio(path)
	return true, nil
}

func (s *Session) Transcribe(ctx context.Context) error {
	return s.run(s.ctx(ctx), StageTranscription)
}

func (s *Session) Summarize(ctx context.Context) error {
	return s.run(s.ctx(ctx), StageSummary)
}

func (s *Session) Flashcards(ctx context.Context) error {
	return s.run(s.ctx(ctx), StageFlashcards)
}

// run executes one stage. The busy flag is held for the duration of the
// network call and cleared on every path.
func (s *Session) run(ctx context.Context, stage Stage) error {
	s.mu.Lock()
	if err := s.checkRunnable(stage); err != nil {
		s.mu.Unlock()
		return s.fail(ctx, err)
	}
	s.busy = true
	generation := s.generation
	audio, name, transcription := s.audio, s.name, s.artifacts.Transcription.Text
	s.mu.Unlock()

	s.deps.Logger.Info(ctx, "Running %s", stage)

	var (
		text string
		err  error
	)
	switch stage {
	case StageTranscription:
		text, err = s.deps.Remote.Transcribe(ctx, audio, name)
	case StageSummary:
		text, err = s.deps.Remote.Summarize(ctx, transcription)
	case StageFlashcards:
		text, err = s.deps.Remote.Flashcards(ctx, transcription)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false

	if s.closed || s.generation != generation {
		s.deps.Logger.Debug(ctx, "Dropping stale %s result", stage)
		return recording.ErrSessionClosed
	}
	if err != nil {
		s.deps.Logger.Warn(ctx, "%s failed: %v", stage, err)
		return s.fail(ctx, err)
	}

	if stage == StageTranscription {
		s.artifacts.setTranscription(text)
	} else {
		s.artifacts.get(stage).Text = text
	}
	return nil
}

// checkRunnable must be called with mu held.
func (s *Session) checkRunnable(stage Stage) error {
	switch {
	case s.closed:
		return recording.ErrSessionClosed
	case s.busy:
		return recording.ErrBusy
	case s.recording:
		return fmt.Errorf("%w: stop the recording first", recording.ErrValidation)
	case stage == StageTranscription && s.audio == "":
		return fmt.Errorf("%w: no audio selected", recording.ErrValidation)
	case stage != StageTranscription && !s.artifacts.Transcription.Present():
		return fmt.Errorf("%w: transcribe the audio first", recording.ErrValidation)
	}
	return nil
}

// ToggleVisibility flips whether stage is shown and returns the new value.
func (s *Session) ToggleVisibility(stage Stage) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.artifacts.get(stage)
	if a == nil {
		return false, fmt.Errorf("%w: unknown stage %q", recording.ErrValidation, stage)
	}
	a.Hidden = !a.Hidden
	return !a.Hidden, nil
}

// Copy puts the text of stage on the clipboard.
func (s *Session) Copy(ctx context.Context, stage Stage) error {
	ctx = s.ctx(ctx)

	s.mu.Lock()
	a := s.artifacts.get(stage)
	var text string
	if a != nil {
		text = a.Text
	}
	s.mu.Unlock()

	if a == nil {
		return s.fail(ctx, fmt.Errorf("%w: unknown stage %q", recording.ErrValidation, stage))
	}
	if text == "" {
		return s.fail(ctx, fmt.Errorf("%w: no %s to copy", recording.ErrValidation, stage))
	}
	if err := s.deps.Clipboard(text); err != nil {
		return s.fail(ctx, fmt.Errorf("copy to clipboard: %w", err))
	}
	return nil
}

// Save moves the audio into the vault and appends the recording to the
// catalog. Either both happen or neither does; on failure the session keeps
// its state so the save can be retried. The session is busy while saving and
// mu is not held across the commit, so catalog observers may read it.
func (s *Session) Save(ctx context.Context) (recording.Recording, error) {
	ctx = s.ctx(ctx)

	s.mu.Lock()
	if err := s.checkSavable(); err != nil {
		s.mu.Unlock()
		return recording.Recording{}, s.fail(ctx, err)
	}
	s.busy = true
	src := s.audio
	rec := recording.Recording{
		Name:          s.name,
		Transcription: s.artifacts.Transcription.Text,
	}
	s.mu.Unlock()

	err := s.commit(ctx, src, &rec)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false
	if err != nil {
		return recording.Recording{}, s.fail(ctx, err)
	}

	s.deps.Logger.Info(ctx, "Saved recording %q to %s", rec.Name, rec.URI)
	s.close()
	return rec, nil
}

func (s *Session) commit(ctx context.Context, src string, rec *recording.Recording) error {
	dst, err := s.deps.Vault.Commit(src, rec.Name)
	if err != nil {
		return err
	}
	rec.URI = dst

	if err := s.deps.Catalog.Append(ctx, *rec); err != nil {
		if rerr := s.deps.Vault.Restore(dst, src); rerr != nil {
			s.deps.Logger.Error(ctx, "Failed to restore %s after save failure: %v", src, rerr)
		}
		if !errors.Is(err, recording.ErrStorage) {
			err = fmt.Errorf("%w: %v", recording.ErrStorage, err)
		}
		return err
	}
	return nil
}

// checkSavable must be called with mu held.
func (s *Session) checkSavable() error {
	switch {
	case s.closed:
		return recording.ErrSessionClosed
	case s.busy:
		return recording.ErrBusy
	case s.recording:
		return fmt.Errorf("%w: stop the recording first", recording.ErrValidation)
	case s.audio == "":
		return fmt.Errorf("%w: no audio selected", recording.ErrValidation)
	}
	if err := vault.ValidateName(s.name); err != nil {
		return err
	}
	if s.deps.Catalog.Contains(s.name) {
		return fmt.Errorf("%w: a recording named %q already exists", recording.ErrValidation, s.name)
	}
	return nil
}

// Discard abandons the session. Any capture in progress is stopped and its
// file removed; in-flight results will be dropped.
func (s *Session) Discard(ctx context.Context) {
	ctx = s.ctx(ctx)

	s.mu.Lock()
	wasRecording := s.recording
	s.recording = false
	s.close()
	s.mu.Unlock()

	if wasRecording {
		if path, err := s.deps.Recorder.Stop(ctx); err == nil {
			os.Remove(path)
		}
	}
}

// close must be called with mu held.
func (s *Session) close() {
	s.closed = true
	s.artifacts = Artifacts{}
	s.generation++
}
