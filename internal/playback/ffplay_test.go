package playback

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BALASANKARP/Edurecap/internal/logger"
	"github.com/BALASANKARP/Edurecap/internal/recording"
	"github.com/BALASANKARP/Edurecap/pkg/executor"
)

type stubProcess struct {
	once sync.Once
	done chan struct{}
	err  error
}

func (p *stubProcess) Pid() int                   { return 1 }
func (p *stubProcess) Signal(sig os.Signal) error { return nil }
func (p *stubProcess) Kill() error                { p.once.Do(func() { close(p.done) }); return nil }
func (p *stubProcess) Wait() error                { <-p.done; return p.err }
func (p *stubProcess) Done() <-chan struct{}      { return p.done }
func (p *stubProcess) Stderr() string             { return "" }

// stubExecutor starts processes that run until killed. A process started
// at offset exitAt exits at once with exitErr.
type stubExecutor struct {
	probe   string
	exitAt  string
	exitErr error
	starts  [][]string
	procs   []*stubProcess
}

func (e *stubExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	return e.probe, nil
}

func (e *stubExecutor) ExecuteInDir(ctx context.Context, dir, name string, args ...string) (string, error) {
	return e.probe, nil
}

func (e *stubExecutor) Start(name string, args ...string) (executor.Process, error) {
	e.starts = append(e.starts, append([]string{name}, args...))
	p := &stubProcess{done: make(chan struct{})}
	for i, a := range args {
		if a == "-ss" && i+1 < len(args) && args[i+1] == e.exitAt {
			p.err = e.exitErr
			p.Kill()
		}
	}
	e.procs = append(e.procs, p)
	return p, nil
}

func TestFFplaySound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Lecture1.m4a")
	require.NoError(t, os.WriteFile(path, []byte("aac"), 0644))

	exec := &stubExecutor{probe: "125.500000\n"}
	out := NewFFplayOutput(exec, "ffplay", "ffprobe")
	out.settle = time.Millisecond

	s, err := out.Open(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 125500*time.Millisecond, s.Duration())

	require.NoError(t, s.Play())
	assert.Equal(t, []string{"ffplay", "-nodisp", "-autoexit", "-loglevel", "error", "-ss", "0.000", path}, exec.starts[0])
	assert.False(t, s.Finished())

	require.NoError(t, s.Pause())
	paused := s.Position()
	assert.Equal(t, paused, s.Position())

	require.NoError(t, s.Seek(30*time.Second))
	assert.Equal(t, 30*time.Second, s.Position())
	assert.Len(t, exec.starts, 1, "seek while paused does not start the player")

	require.NoError(t, s.Play())
	assert.Equal(t, "30.000", exec.starts[1][6])

	exec.procs[1].Kill()
	assert.True(t, s.Finished())
	require.NoError(t, s.Close())
}

func TestFFplayOpenMissingFile(t *testing.T) {
	out := NewFFplayOutput(&stubExecutor{}, "ffplay", "ffprobe")
	_, err := out.Open(context.Background(), filepath.Join(t.TempDir(), "missing.m4a"))
	assert.Error(t, err)
}

func TestFFplayOpenBadProbe(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.m4a")
	require.NoError(t, os.WriteFile(path, []byte("aac"), 0644))

	out := NewFFplayOutput(&stubExecutor{probe: "N/A"}, "ffplay", "ffprobe")
	_, err := out.Open(context.Background(), path)
	assert.Error(t, err)
}

func TestFFplayCleanExitAtEndIsFinished(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.m4a")
	require.NoError(t, os.WriteFile(path, []byte("aac"), 0644))

	exec := &stubExecutor{probe: "60.000000\n", exitAt: "60.000"}
	out := NewFFplayOutput(exec, "ffplay", "ffprobe")
	out.settle = time.Second

	s, err := out.Open(context.Background(), path)
	require.NoError(t, err)
	require.NoError(t, s.Play())

	require.NoError(t, s.Seek(60*time.Second))
	assert.True(t, s.Finished())
	assert.Equal(t, 60*time.Second, s.Position())
	require.NoError(t, s.Close())
}

func TestFFplayFailedStartIsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.m4a")
	require.NoError(t, os.WriteFile(path, []byte("aac"), 0644))

	exec := &stubExecutor{probe: "60.000000\n", exitAt: "0.000", exitErr: errors.New("exit status 1")}
	out := NewFFplayOutput(exec, "ffplay", "ffprobe")
	out.settle = time.Second

	s, err := out.Open(context.Background(), path)
	require.NoError(t, err)
	assert.Error(t, s.Play())
	assert.False(t, s.Finished())
}

func TestSeekToEndReportsFinished(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.m4a")
	require.NoError(t, os.WriteFile(path, []byte("aac"), 0644))

	exec := &stubExecutor{probe: "60.000000\n", exitAt: "60.000"}
	out := NewFFplayOutput(exec, "ffplay", "ffprobe")
	out.settle = 50 * time.Millisecond

	e := New(out, 5*time.Millisecond, logger.NewNop())
	states := make(chan State, 64)
	e.OnStatus(func(s State) { states <- s })

	require.NoError(t, e.TogglePlay(context.Background(), path))
	err := e.Seek(90 * time.Second)
	require.NoError(t, err)
	assert.False(t, errors.Is(err, recording.ErrPlaybackUnavailable))

	deadline := time.After(2 * time.Second)
	sawFinished := false
	for {
		select {
		case s := <-states:
			if s.Finished {
				sawFinished = true
				assert.Equal(t, 60*time.Second, s.Position)
				continue
			}
			if sawFinished && !s.Active() {
				assert.False(t, e.State().Active())
				return
			}
		case <-deadline:
			t.Fatal("no finished status reported")
		}
	}
}
