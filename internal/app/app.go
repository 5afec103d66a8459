package app

import (
	"context"
	"fmt"
	"os"

	"github.com/BALASANKARP/Edurecap/internal/capture"
	"github.com/BALASANKARP/Edurecap/internal/catalog"
	"github.com/BALASANKARP/Edurecap/internal/config"
	"github.com/BALASANKARP/Edurecap/internal/logger"
	"github.com/BALASANKARP/Edurecap/internal/pipeline"
	"github.com/BALASANKARP/Edurecap/internal/playback"
	"github.com/BALASANKARP/Edurecap/internal/recording"
	"github.com/BALASANKARP/Edurecap/internal/session"
	"github.com/BALASANKARP/Edurecap/internal/store"
	"github.com/BALASANKARP/Edurecap/internal/vault"
	"github.com/BALASANKARP/Edurecap/pkg/executor"
)

// Options are the interactive pieces chosen by the caller.
type Options struct {
	Permission capture.Permission
	Picker     capture.Picker
	Notifier   session.Notifier
	// Remote overrides the HTTP pipeline client, e.g. in tests.
	Remote session.Remote
	// Device and Output override the ffmpeg/ffplay backends.
	Device capture.Device
	Output playback.Output
}

// App is the client-side object graph.
type App struct {
	Config   *config.Config
	Logger   logger.Logger
	Store    store.Store
	Catalog  *catalog.Catalog
	Vault    *vault.Vault
	Capture  *capture.Controller
	Playback *playback.Engine
	Remote   session.Remote
	Notifier session.Notifier
}

// New builds the graph and loads the catalog once.
func New(ctx context.Context, cfg *config.Config, log logger.Logger, opts Options) (*App, error) {
	if err := ensureDirectories(cfg); err != nil {
		return nil, err
	}

	exec := executor.New()

	st, err := store.New(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	cat := catalog.New(st, log)
	if err := cat.Load(ctx); err != nil {
		st.Close()
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	if opts.Permission == nil {
		opts.Permission = capture.StaticPermission(cfg.Capture.AssumePermitted)
	}
	if opts.Picker == nil {
		opts.Picker = capture.PathPicker("")
	}
	if opts.Device == nil {
		opts.Device = capture.NewFFmpegDevice(exec, cfg.Capture)
	}
	if opts.Output == nil {
		opts.Output = playback.NewFFplayOutput(exec, cfg.Playback.FFplayPath, cfg.Playback.FFprobePath)
	}
	if opts.Remote == nil {
		opts.Remote = pipeline.NewClient(cfg.Remote.BaseURL, cfg.Remote.Timeout, log)
	}
	if opts.Notifier == nil {
		opts.Notifier = session.NotifierFunc(func(ctx context.Context, err error) {
			log.Warn(ctx, "%v", err)
		})
	}

	return &App{
		Config:   cfg,
		Logger:   log,
		Store:    st,
		Catalog:  cat,
		Vault:    vault.New(cfg.Storage.DocumentsDir),
		Capture:  capture.NewController(opts.Permission, opts.Device, opts.Picker, cfg.Storage.TempDir, log),
		Playback: playback.New(opts.Output, cfg.Playback.PollInterval, log),
		Remote:   opts.Remote,
		Notifier: opts.Notifier,
	}, nil
}

// NewSession starts an empty editing session.
func (a *App) NewSession() *session.Session {
	return session.New(session.Dependencies{
		Remote:   a.Remote,
		Recorder: a.Capture,
		Catalog:  a.Catalog,
		Vault:    a.Vault,
		Notifier: a.Notifier,
		Logger:   a.Logger,
	})
}

// Delete removes entry i from the catalog, then its audio payload. A failure
// to remove the payload is only logged.
func (a *App) Delete(ctx context.Context, i int) (recording.Recording, error) {
	rec, err := a.Catalog.RemoveAt(ctx, i)
	if err != nil {
		return recording.Recording{}, err
	}

	if a.Playback.State().URI == rec.URI {
		a.Playback.Stop()
	}
	if err := a.Vault.Remove(rec.URI); err != nil {
		a.Logger.Warn(ctx, "Could not remove audio for %q: %v", rec.Name, err)
	}
	return rec, nil
}

func (a *App) Close() error {
	a.Playback.Stop()
	return a.Store.Close()
}

func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Storage.DocumentsDir,
		cfg.Storage.DataDir,
		cfg.Storage.TempDir,
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("%w: create directory %s: %v", recording.ErrStorage, dir, err)
		}
	}
	return nil
}
