package capture

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/BALASANKARP/Edurecap/internal/config"
	"github.com/BALASANKARP/Edurecap/pkg/executor"
)

const (
	defaultSettle   = 500 * time.Millisecond
	finalizeTimeout = 5 * time.Second
)

// FFmpegDevice records from the system microphone with ffmpeg, encoding AAC
// into an .m4a container.
type FFmpegDevice struct {
	exec   executor.Executor
	cfg    config.CaptureConfig
	settle time.Duration
}

func NewFFmpegDevice(exec executor.Executor, cfg config.CaptureConfig) *FFmpegDevice {
	return &FFmpegDevice{exec: exec, cfg: cfg, settle: defaultSettle}
}

func (d *FFmpegDevice) args(path string) []string {
	format, input := d.cfg.InputFormat, d.cfg.InputDevice
	if format == "" {
		format, input = defaultInput(runtime.GOOS, input)
	}

	return []string{
		"-hide_banner",
		"-loglevel", "error",
		"-y",
		"-f", format,
		"-i", input,
		"-ac", strconv.Itoa(d.cfg.Channels),
		"-ar", strconv.Itoa(d.cfg.SampleRate),
		"-c:a", "aac",
		"-b:a", d.cfg.Bitrate,
		path,
	}
}

func defaultInput(goos, device string) (string, string) {
	switch goos {
	case "darwin":
		if device == "" {
			device = ":default"
		}
		return "avfoundation", device
	case "windows":
		if device == "" {
			device = "audio=default"
		}
		return "dshow", device
	default:
		if device == "" {
			device = "default"
		}
		return "pulse", device
	}
}

// Open starts ffmpeg and waits a short settle window. A recorder that exits
// inside the window could not acquire the device.
func (d *FFmpegDevice) Open(ctx context.Context, path string) (Handle, error) {
	proc, err := d.exec.Start(d.cfg.FFmpegPath, d.args(path)...)
	if err != nil {
		return nil, err
	}

	timer := time.NewTimer(d.settle)
	defer timer.Stop()

	select {
	case <-proc.Done():
		if err := proc.Wait(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("recorder exited immediately")
	case <-ctx.Done():
		proc.Kill()
		<-proc.Done()
		return nil, ctx.Err()
	case <-timer.C:
	}

	return &ffmpegHandle{proc: proc, path: path}, nil
}

type ffmpegHandle struct {
	proc executor.Process
	path string
}

// Finalize interrupts ffmpeg so it writes the container trailer.
func (h *ffmpegHandle) Finalize() error {
	if err := h.proc.Signal(os.Interrupt); err != nil && err != os.ErrProcessDone {
		return fmt.Errorf("interrupt recorder: %w", err)
	}

	select {
	case <-h.proc.Done():
	case <-time.After(finalizeTimeout):
		return fmt.Errorf("recorder did not exit within %s", finalizeTimeout)
	}

	info, err := os.Stat(h.path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", h.path, err)
	}
	if info.Size() == 0 {
		return fmt.Errorf("%s is empty", h.path)
	}
	return nil
}

func (h *ffmpegHandle) Release() error {
	if err := h.proc.Kill(); err != nil {
		return err
	}
	<-h.proc.Done()
	return nil
}
