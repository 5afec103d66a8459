package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/BALASANKARP/Edurecap/internal/app"
	"github.com/BALASANKARP/Edurecap/internal/capture"
	"github.com/BALASANKARP/Edurecap/internal/exporter"
	"github.com/BALASANKARP/Edurecap/internal/output"
	"github.com/BALASANKARP/Edurecap/internal/recording"
	"github.com/BALASANKARP/Edurecap/internal/session"
)

// stageFlags drive one editing session from the command line.
type stageFlags struct {
	name       string
	transcribe bool
	summarize  bool
	flashcards bool
	hide       []string
	copy       string
	export     string
	save       bool
}

func (f *stageFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.name, "name", "n", "", "Name to save the recording under")
	cmd.Flags().BoolVarP(&f.transcribe, "transcribe", "t", false, "Transcribe the audio")
	cmd.Flags().BoolVarP(&f.summarize, "summarize", "s", false, "Summarize the transcription (implies --transcribe)")
	cmd.Flags().BoolVarP(&f.flashcards, "flashcards", "f", false, "Generate flashcards (implies --transcribe)")
	cmd.Flags().StringSliceVar(&f.hide, "hide", nil, "Hide these results: transcription, summary, flashcards")
	cmd.Flags().StringVar(&f.copy, "copy", "", "Copy one result to the clipboard")
	cmd.Flags().StringVarP(&f.export, "export", "o", "", "Write the results to a .docx file")
	cmd.Flags().BoolVar(&f.save, "save", false, "Save the audio and transcription to the catalog")
}

func (f *stageFlags) wantsTranscription() bool {
	return f.transcribe || f.summarize || f.flashcards
}

func NewRecordCmd(deps *Dependencies) *cobra.Command {
	var flags stageFlags

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record a lecture from the microphone",
		Long:  "Record from the default microphone until Enter is pressed, then optionally transcribe, summarize, generate flashcards and save.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			formatter := output.NewFormatter(deps.Out)

			var perm capture.Permission = capture.PromptPermission{In: deps.lines, Out: deps.Out}
			if deps.Config.Capture.AssumePermitted {
				perm = capture.StaticPermission(true)
			}

			a, err := deps.NewApp(ctx, app.Options{Permission: perm, Notifier: formatter})
			if err != nil {
				return err
			}
			defer a.Close()

			s := a.NewSession()
			if err := s.StartRecording(ctx); err != nil {
				return reported(err)
			}
			started := time.Now()
			formatter.RecordingStarted()

			select {
			case <-deps.lines.Next():
			case <-ctx.Done():
				s.Discard(context.WithoutCancel(ctx))
				formatter.Warning("Recording cancelled")
				return ctx.Err()
			}

			if err := s.StopRecording(ctx); err != nil {
				return reported(err)
			}
			formatter.RecordingStopped(time.Since(started))

			captured := s.Snapshot().Audio
			err = runStages(ctx, s, &flags, formatter)
			if !s.Snapshot().Closed {
				s.Discard(ctx)
				formatter.Info(fmt.Sprintf("Recording kept at %s. Run `edurecap import %s --save --name <name>` to keep it.", captured, captured))
			}
			return err
		},
	}

	flags.register(cmd)
	return cmd
}

func NewImportCmd(deps *Dependencies) *cobra.Command {
	var flags stageFlags

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import an existing audio file",
		Long:  "Import an audio file, given as an argument or typed at the prompt, then optionally transcribe, summarize, generate flashcards and save.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			formatter := output.NewFormatter(deps.Out)

			var picker capture.Picker = capture.PromptPicker{In: deps.lines, Out: deps.Out}
			if len(args) == 1 {
				picker = capture.PathPicker(args[0])
			}

			a, err := deps.NewApp(ctx, app.Options{Picker: picker, Notifier: formatter})
			if err != nil {
				return err
			}
			defer a.Close()

			s := a.NewSession()
			defer s.Discard(ctx)

			ok, err := s.Import(ctx)
			if err != nil {
				return reported(err)
			}
			if !ok {
				formatter.Info("Import cancelled")
				return nil
			}
			path := s.Snapshot().Audio
			formatter.Imported(path)

			if flags.name == "" {
				flags.name = a.UniqueName(recording.Stem(path))
			}
			return runStages(ctx, s, &flags, formatter)
		},
	}

	flags.register(cmd)
	return cmd
}

// runStages applies the flags to a session that has audio. A failed stage
// skips the stages that depend on it; the remaining steps still run and the
// first failure is returned.
func runStages(ctx context.Context, s *session.Session, flags *stageFlags, formatter *output.Formatter) error {
	var firstErr error
	record := func(err error) {
		if firstErr == nil {
			firstErr = err
		}
	}

	if flags.name != "" {
		s.SetName(flags.name)
	}

	if flags.wantsTranscription() {
		formatter.Transcribing()
		if err := s.Transcribe(ctx); err != nil {
			record(err)
		} else {
			if flags.summarize {
				formatter.Summarizing()
				if err := s.Summarize(ctx); err != nil {
					record(err)
				}
			}
			if flags.flashcards {
				formatter.GeneratingFlashcards()
				if err := s.Flashcards(ctx); err != nil {
					record(err)
				}
			}
		}
	}

	for _, name := range flags.hide {
		stage, err := session.ParseStage(strings.TrimSpace(name))
		if err != nil {
			return err
		}
		if _, err := s.ToggleVisibility(stage); err != nil {
			return err
		}
	}

	view := s.Snapshot()
	arts := view.Artifacts
	formatter.Artifact("Transcription", arts.Transcription.Text, arts.Transcription.Hidden)
	formatter.Artifact("Summary", arts.Summary.Text, arts.Summary.Hidden)
	formatter.Artifact("Flashcards", arts.Flashcards.Text, arts.Flashcards.Hidden)

	if flags.copy != "" {
		stage, err := session.ParseStage(flags.copy)
		if err != nil {
			return err
		}
		if err := s.Copy(ctx, stage); err != nil {
			record(err)
		} else {
			formatter.Copied()
		}
	}

	if flags.export != "" {
		name := view.Name
		if name == "" {
			name = recording.Stem(view.Audio)
		}
		doc := exporter.FromArtifacts(name, arts, time.Now())
		if err := exporter.Save(doc, flags.export); err != nil {
			formatter.Notify(ctx, err)
			record(err)
		} else {
			abs, _ := filepath.Abs(flags.export)
			formatter.Exported(abs)
		}
	}

	if flags.save {
		rec, err := s.Save(ctx)
		if err != nil {
			record(err)
		} else {
			formatter.Saved(rec)
		}
	}

	return reported(firstErr)
}
