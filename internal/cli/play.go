package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/BALASANKARP/Edurecap/internal/app"
	"github.com/BALASANKARP/Edurecap/internal/output"
	"github.com/BALASANKARP/Edurecap/internal/playback"
	"github.com/BALASANKARP/Edurecap/internal/recording"
)

const skipStep = 10 * time.Second

func NewPlayCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "play <number>",
		Short: "Play a recording",
		Long: `Play a recording from the catalog. While playing, type a command and press Enter:

  (empty) or p   pause / resume
  f / b          skip forward / back 10 seconds
  m:ss           jump to a position
  n              play the next recording
  q              quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			formatter := output.NewFormatter(deps.Out)

			i, err := parseIndex(args[0])
			if err != nil {
				return err
			}

			a, err := deps.NewApp(ctx, app.Options{Notifier: formatter})
			if err != nil {
				return err
			}
			defer a.Close()

			rec, err := a.Catalog.At(i)
			if err != nil {
				return err
			}
			return runPlayer(ctx, deps, a, i, rec, formatter)
		},
	}
}

func runPlayer(ctx context.Context, deps *Dependencies, a *app.App, i int, rec recording.Recording, formatter *output.Formatter) error {
	ended := make(chan struct{}, 1)
	current := rec

	var (
		mu     sync.Mutex
		title  = rec.Name
		closed bool
	)
	a.Playback.OnStatus(func(st playback.State) {
		mu.Lock()
		defer mu.Unlock()
		if closed {
			return
		}
		if st.Finished {
			formatter.Progress(title, st.Duration, st.Duration, false)
			select {
			case ended <- struct{}{}:
			default:
			}
			return
		}
		if st.Active() {
			formatter.Progress(title, st.Position, st.Duration, st.Playing)
		}
	})
	defer func() {
		mu.Lock()
		closed = true
		formatter.ProgressDone()
		mu.Unlock()
	}()

	if err := a.Playback.TogglePlay(ctx, current.URI); err != nil {
		return err
	}

	lines := deps.lines.Next()
	for {
		select {
		case <-ctx.Done():
			a.Playback.Stop()
			return nil
		case <-ended:
			return nil
		case line, ok := <-lines:
			if !ok {
				// input closed; let playback run to the end
				lines = nil
				continue
			}
			deps.lines.Next()

			cmd := strings.TrimSpace(line)
			var err error
			switch cmd {
			case "", "p":
				err = a.Playback.TogglePlay(ctx, current.URI)
			case "f":
				err = a.Playback.Seek(a.Playback.State().Position + skipStep)
			case "b":
				err = a.Playback.Seek(a.Playback.State().Position - skipStep)
			case "n":
				i = (i + 1) % a.Catalog.Len()
				current, err = a.Catalog.At(i)
				if err == nil {
					mu.Lock()
					title = current.Name
					mu.Unlock()
					err = a.Playback.TogglePlay(ctx, current.URI)
				}
			case "q":
				a.Playback.Stop()
				return nil
			default:
				var pos time.Duration
				pos, err = parsePosition(cmd)
				if err == nil {
					err = a.Playback.Seek(pos)
				}
			}
			if err != nil {
				mu.Lock()
				formatter.ProgressDone()
				formatter.Notify(ctx, err)
				mu.Unlock()
			}
		}
	}
}

// parsePosition reads "m:ss" or plain seconds.
func parsePosition(s string) (time.Duration, error) {
	invalid := fmt.Errorf("%w: %q is not a position (use m:ss)", recording.ErrValidation, s)

	mins, secs, found := strings.Cut(s, ":")
	if !found {
		mins, secs = "0", s
	}
	m, err := strconv.Atoi(mins)
	if err != nil || m < 0 {
		return 0, invalid
	}
	n, err := strconv.Atoi(secs)
	if err != nil || n < 0 || (found && n > 59) {
		return 0, invalid
	}
	return time.Duration(m)*time.Minute + time.Duration(n)*time.Second, nil
}
