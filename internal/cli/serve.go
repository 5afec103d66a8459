package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BALASANKARP/Edurecap/internal/server"
	"github.com/BALASANKARP/Edurecap/internal/summarizer"
	"github.com/BALASANKARP/Edurecap/internal/transcriber"
	"github.com/BALASANKARP/Edurecap/pkg/executor"
)

func NewServeCmd(deps *Dependencies) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the processing service (transcribe, summarize, flashcards, chat)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := deps.Config
			log := deps.Logger

			if addr != "" {
				cfg.Server.Addr = addr
			}
			if len(cfg.Server.Gemini.APIKeys) == 0 {
				log.Warn(ctx, "No Gemini API keys configured; summarize, flashcards and chat will fail")
			}

			exec := executor.New()
			tr := transcriber.New(cfg, exec, log)
			gen := summarizer.New(cfg.Server.Gemini, log)

			log.Info(ctx, "Whisper model: %s (%d threads, language %s)", cfg.Server.Whisper.ModelPath, cfg.Server.Whisper.Threads, cfg.Server.Whisper.Language)
			log.Info(ctx, "Gemini model: %s (%d keys)", cfg.Server.Gemini.Model, len(cfg.Server.Gemini.APIKeys))

			srv := server.New(cfg.Server.Addr, cfg.Storage.TempDir, tr, gen, log)
			if err := srv.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("processing service: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")
	return cmd
}
