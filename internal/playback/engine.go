package playback

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/BALASANKARP/Edurecap/internal/logger"
	"github.com/BALASANKARP/Edurecap/internal/recording"
)

type session struct {
	uri     string
	sound   Sound
	playing bool
	stop    chan struct{}
}

// Engine keeps at most one playback session alive and reports its progress
// to observers while it is active.
type Engine struct {
	mu        sync.Mutex
	output    Output
	interval  time.Duration
	logger    logger.Logger
	active    *session
	observers []func(State)
}

func New(output Output, interval time.Duration, log logger.Logger) *Engine {
	if interval <= 0 {
		interval = 250 * time.Millisecond
	}
	return &Engine{output: output, interval: interval, logger: log}
}

func (e *Engine) OnStatus(fn func(State)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.observers = append(e.observers, fn)
}

func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state()
}

// TogglePlay pauses uri if it is playing, resumes it if paused, and otherwise
// replaces whatever is active with a new session for uri.
func (e *Engine) TogglePlay(ctx context.Context, uri string) error {
	e.mu.Lock()

	if a := e.active; a != nil && a.uri == uri {
		var err error
		if a.playing {
			err = a.sound.Pause()
		} else {
			err = a.sound.Play()
		}
		if err != nil {
			e.dispose()
			e.unlock(State{})
			return fmt.Errorf("%w: %v", recording.ErrPlaybackUnavailable, err)
		}
		a.playing = !a.playing
		e.unlock(e.state())
		return nil
	}

	e.dispose()

	sound, err := e.output.Open(ctx, uri)
	if err != nil {
		e.unlock(State{})
		return fmt.Errorf("%w: %v", recording.ErrPlaybackUnavailable, err)
	}
	if err := sound.Play(); err != nil {
		sound.Close()
		e.unlock(State{})
		return fmt.Errorf("%w: %v", recording.ErrPlaybackUnavailable, err)
	}

	a := &session{uri: uri, sound: sound, playing: true, stop: make(chan struct{})}
	e.active = a
	go e.poll(a)

	e.unlock(e.state())
	e.logger.Debug(ctx, "Playing %s", uri)
	return nil
}

// Seek moves the active session to pos, clamped to [0, duration].
func (e *Engine) Seek(pos time.Duration) error {
	e.mu.Lock()

	a := e.active
	if a == nil {
		e.mu.Unlock()
		return recording.ErrNoPlayback
	}

	if d := a.sound.Duration(); pos > d {
		pos = d
	}
	if pos < 0 {
		pos = 0
	}

	if err := a.sound.Seek(pos); err != nil {
		e.dispose()
		e.unlock(State{})
		return fmt.Errorf("%w: %v", recording.ErrPlaybackUnavailable, err)
	}
	e.unlock(e.state())
	return nil
}

// Stop disposes the active session, if any.
func (e *Engine) Stop() {
	e.mu.Lock()
	if e.active == nil {
		e.mu.Unlock()
		return
	}
	e.dispose()
	e.unlock(State{})
}

func (e *Engine) poll(a *session) {
	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		select {
		case <-a.stop:
			return
		case <-ticker.C:
		}

		e.mu.Lock()
		if e.active != a {
			e.mu.Unlock()
			return
		}

		if a.sound.Finished() {
			final := e.state()
			final.Position = final.Duration
			final.Playing = false
			final.Finished = true
			e.dispose()
			e.unlock(final, State{})
			return
		}
		e.unlock(e.state())
	}
}

// dispose closes the active handle. Must be called with mu held.
func (e *Engine) dispose() {
	a := e.active
	if a == nil {
		return
	}
	e.active = nil
	close(a.stop)
	if err := a.sound.Close(); err != nil {
		e.logger.Warn(context.Background(), "Failed to close playback of %s: %v", a.uri, err)
	}
}

func (e *Engine) state() State {
	a := e.active
	if a == nil {
		return State{}
	}
	return State{
		URI:      a.uri,
		Position: a.sound.Position(),
		Duration: a.sound.Duration(),
		Playing:  a.playing,
	}
}

// unlock releases mu and then delivers states to observers in order.
func (e *Engine) unlock(states ...State) {
	fns := append([]func(State){}, e.observers...)
	e.mu.Unlock()

	for _, s := range states {
		for _, fn := range fns {
			fn(s)
		}
	}
}
