package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/BALASANKARP/Edurecap/internal/app"
	"github.com/BALASANKARP/Edurecap/internal/config"
	"github.com/BALASANKARP/Edurecap/internal/logger"
	"github.com/BALASANKARP/Edurecap/internal/recording"
	"github.com/BALASANKARP/Edurecap/internal/version"
)

type Dependencies struct {
	Config *config.Config
	Logger logger.Logger
	In     io.Reader
	Out    io.Writer
	// NewApp builds the client graph for one command.
	NewApp func(ctx context.Context, opts app.Options) (*app.App, error)

	lines *lineReader
}

// Close stops the input reader started for the command.
func (d *Dependencies) Close() {
	if d.lines != nil {
		d.lines.Close()
	}
}

func NewRootCmd(deps *Dependencies) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "edurecap",
		Short:         "Record lectures, transcribe, summarize and make flashcards",
		Long:          "Edurecap records or imports lecture audio, keeps a local catalog of recordings and sends audio through a remote pipeline for transcription, summaries and flashcards.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate(version.Full() + "\n")
	rootCmd.SetOut(deps.Out)
	deps.lines = newLineReader(deps.In)

	rootCmd.AddCommand(NewRecordCmd(deps))
	rootCmd.AddCommand(NewImportCmd(deps))
	rootCmd.AddCommand(NewListCmd(deps))
	rootCmd.AddCommand(NewShowCmd(deps))
	rootCmd.AddCommand(NewDeleteCmd(deps))
	rootCmd.AddCommand(NewPlayCmd(deps))
	rootCmd.AddCommand(NewExportCmd(deps))
	rootCmd.AddCommand(NewChatCmd(deps))
	rootCmd.AddCommand(NewServeCmd(deps))
	rootCmd.AddCommand(NewWatchCmd(deps))
	rootCmd.AddCommand(NewBackupCmd(deps))
	rootCmd.AddCommand(NewVersionCmd(deps))

	return rootCmd
}

// reportedError marks an error the user has already been told about.
type reportedError struct {
	err error
}

func (e reportedError) Error() string { return e.err.Error() }
func (e reportedError) Unwrap() error { return e.err }

func reported(err error) error {
	if err == nil {
		return nil
	}
	return reportedError{err: err}
}

// Reported reports whether err was already shown to the user.
func Reported(err error) bool {
	var r reportedError
	return errors.As(err, &r)
}

// parseIndex turns the 1-based number shown by `list` into a catalog index.
func parseIndex(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: %q is not a recording number", recording.ErrValidation, arg)
	}
	return n - 1, nil
}
