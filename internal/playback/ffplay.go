package playback

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BALASANKARP/Edurecap/pkg/executor"
)

const ffplaySettle = 150 * time.Millisecond

// FFplayOutput plays files through ffplay and measures them with ffprobe.
type FFplayOutput struct {
	exec        executor.Executor
	ffplayPath  string
	ffprobePath string
	settle      time.Duration
}

func NewFFplayOutput(exec executor.Executor, ffplayPath, ffprobePath string) *FFplayOutput {
	return &FFplayOutput{
		exec:        exec,
		ffplayPath:  ffplayPath,
		ffprobePath: ffprobePath,
		settle:      ffplaySettle,
	}
}

func (o *FFplayOutput) Open(ctx context.Context, uri string) (Sound, error) {
	if _, err := os.Stat(uri); err != nil {
		return nil, fmt.Errorf("open %s: %w", uri, err)
	}

	out, err := o.exec.Execute(ctx, o.ffprobePath,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		uri,
	)
	if err != nil {
		return nil, fmt.Errorf("probe duration: %w", err)
	}

	secs, err := strconv.ParseFloat(strings.TrimSpace(out), 64)
	if err != nil {
		return nil, fmt.Errorf("parse duration %q: %w", strings.TrimSpace(out), err)
	}

	return &ffplaySound{
		output:   o,
		uri:      uri,
		duration: time.Duration(secs * float64(time.Second)),
	}, nil
}

// ffplaySound has no native pause; pausing stops the process and playing
// restarts it at the remembered offset.
type ffplaySound struct {
	output    *FFplayOutput
	uri       string
	duration  time.Duration
	offset    time.Duration
	startedAt time.Time
	proc      executor.Process
}

func (s *ffplaySound) Duration() time.Duration {
	return s.duration
}

func (s *ffplaySound) Position() time.Duration {
	if s.proc == nil {
		return s.offset
	}
	pos := s.offset + time.Since(s.startedAt)
	if pos > s.duration {
		pos = s.duration
	}
	return pos
}

func (s *ffplaySound) Play() error {
	if s.proc != nil {
		return nil
	}

	proc, err := s.output.exec.Start(s.output.ffplayPath,
		"-nodisp",
		"-autoexit",
		"-loglevel", "error",
		"-ss", strconv.FormatFloat(s.offset.Seconds(), 'f', 3, 64),
		s.uri,
	)
	if err != nil {
		return err
	}

	// ffplay exits at once with an error when it cannot open the audio
	// device. A clean early exit means the offset was at or near the end,
	// and the kept process reports Finished.
	select {
	case <-proc.Done():
		if err := proc.Wait(); err != nil {
			return fmt.Errorf("player exited immediately: %w", err)
		}
	case <-time.After(s.output.settle):
	}

	s.proc = proc
	s.startedAt = time.Now()
	return nil
}

func (s *ffplaySound) Pause() error {
	if s.proc == nil {
		return nil
	}
	s.offset = s.Position()
	return s.halt()
}

func (s *ffplaySound) Seek(pos time.Duration) error {
	playing := s.proc != nil
	if playing {
		if err := s.halt(); err != nil {
			return err
		}
	}
	s.offset = pos
	if playing {
		return s.Play()
	}
	return nil
}

func (s *ffplaySound) Finished() bool {
	if s.proc == nil {
		return false
	}
	select {
	case <-s.proc.Done():
		return true
	default:
		return false
	}
}

func (s *ffplaySound) Close() error {
	return s.halt()
}

func (s *ffplaySound) halt() error {
	if s.proc == nil {
		return nil
	}
	proc := s.proc
	s.proc = nil
	if err := proc.Kill(); err != nil {
		return err
	}
	<-proc.Done()
	return nil
}
