package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BALASANKARP/Edurecap/internal/app"
	"github.com/BALASANKARP/Edurecap/internal/output"
	"github.com/BALASANKARP/Edurecap/internal/watcher"
)

func NewWatchCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Import audio files dropped into the inbox directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			formatter := output.NewFormatter(deps.Out)

			a, err := deps.NewApp(ctx, app.Options{})
			if err != nil {
				return err
			}
			defer a.Close()

			handler := func(ctx context.Context, path string) error {
				rec, err := a.Ingest(ctx, path)
				if err != nil {
					return err
				}
				formatter.Saved(rec)
				return nil
			}

			inbox := deps.Config.Inbox
			w, err := watcher.New(inbox.Dir, handler, deps.Logger, inbox.MaxConcurrent)
			if err != nil {
				return err
			}
			defer w.Stop()

			formatter.Info(fmt.Sprintf("Watching %s for audio files. Press Ctrl+C to stop.", inbox.Dir))
			if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
}
