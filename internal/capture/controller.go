package capture

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/BALASANKARP/Edurecap/internal/logger"
	"github.com/BALASANKARP/Edurecap/internal/recording"
)

type Status int

const (
	StatusIdle Status = iota
	StatusRecording
)

func (s Status) String() string {
	if s == StatusRecording {
		return "recording"
	}
	return "idle"
}

// Session describes the capture in progress.
type Session struct {
	ID        string
	Path      string
	StartedAt time.Time
}

// Controller owns the microphone. At most one capture session is open.
type Controller struct {
	mu        sync.Mutex
	perm      Permission
	granted   bool
	device    Device
	picker    Picker
	tempDir   string
	logger    logger.Logger
	status    Status
	handle    Handle
	session   *Session
	observers []func(Status)
}

func NewController(perm Permission, device Device, picker Picker, tempDir string, log logger.Logger) *Controller {
	return &Controller{
		perm:    perm,
		device:  device,
		picker:  picker,
		tempDir: tempDir,
		logger:  log,
	}
}

// OnStatus registers fn to be told about every status change.
func (c *Controller) OnStatus(fn func(Status)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, fn)
}

func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// RequestPermission asks for microphone access and remembers a grant.
func (c *Controller) RequestPermission(ctx context.Context) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.requestPermission(ctx)
}

func (c *Controller) requestPermission(ctx context.Context) (bool, error) {
	if c.granted {
		return true, nil
	}
	ok, err := c.perm.Request(ctx)
	if err != nil {
		return false, fmt.Errorf("request permission: %w", err)
	}
	c.granted = ok
	return ok, nil
}

func (c *Controller) Start(ctx context.Context) (*Session, error) {
	c.mu.Lock()

	if c.status == StatusRecording {
		c.unlock()
		return nil, recording.ErrAlreadyRecording
	}

	granted, err := c.requestPermission(ctx)
	if err != nil {
		c.unlock()
		return nil, err
	}
	if !granted {
		c.unlock()
		return nil, recording.ErrPermissionDenied
	}

	c.status = StatusRecording

	sess := &Session{ID: uuid.NewString(), StartedAt: time.Now()}
	sess.Path = filepath.Join(c.tempDir, "capture-"+sess.ID+recording.Extension)

	handle, err := c.open(ctx, sess.Path)
	if err != nil {
		c.status = StatusIdle
		c.unlock(StatusRecording, StatusIdle)
		return nil, fmt.Errorf("%w: %v", recording.ErrDeviceUnavailable, err)
	}

	c.handle = handle
	c.session = sess
	c.unlock(StatusRecording)

	c.logger.Info(ctx, "Recording started: %s", sess.Path)
	return sess, nil
}

func (c *Controller) open(ctx context.Context, path string) (Handle, error) {
	if err := os.MkdirAll(c.tempDir, 0755); err != nil {
		return nil, err
	}
	return c.device.Open(ctx, path)
}

// Stop finalizes the open session and returns the captured file. The native
// handle is released on every path.
func (c *Controller) Stop(ctx context.Context) (string, error) {
	c.mu.Lock()

	if c.status != StatusRecording || c.handle == nil {
		c.unlock()
		return "", recording.ErrNotRecording
	}

	handle, sess := c.handle, c.session
	c.handle, c.session = nil, nil

	finalizeErr := handle.Finalize()
	if err := handle.Release(); err != nil {
		c.logger.Warn(ctx, "Failed to release recorder: %v", err)
	}

	c.status = StatusIdle
	c.unlock(StatusIdle)

	if finalizeErr != nil {
		return "", fmt.Errorf("%w: %v", recording.ErrFinalize, finalizeErr)
	}

	c.logger.Info(ctx, "Recording stopped after %s: %s", time.Since(sess.StartedAt).Round(time.Second), sess.Path)
	return sess.Path, nil
}

// Import lets the user pick an audio file. A cancelled pick returns ok=false
// and no error.
func (c *Controller) Import(ctx context.Context) (string, bool, error) {
	path, ok, err := c.picker.Pick(ctx)
	if err != nil {
		return "", false, err
	}
	if !ok {
		return "", false, nil
	}

	if !IsAudio(path) {
		return "", false, fmt.Errorf("%w: %s is not an audio file", recording.ErrValidation, filepath.Base(path))
	}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", false, fmt.Errorf("%w: cannot read %s", recording.ErrValidation, path)
	}

	return path, true, nil
}

// unlock releases mu and then reports each status change to the observers.
func (c *Controller) unlock(changes ...Status) {
	fns := append([]func(Status){}, c.observers...)
	c.mu.Unlock()

	for _, s := range changes {
		for _, fn := range fns {
			fn(s)
		}
	}
}
