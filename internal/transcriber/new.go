package transcriber

import (
	"golang.org/x/sync/semaphore"

	"github.com/BALASANKARP/Edurecap/internal/config"
	"github.com/BALASANKARP/Edurecap/internal/logger"
	"github.com/BALASANKARP/Edurecap/pkg/executor"
)

type implTranscriber struct {
	whisper    config.WhisperConfig
	ffmpegPath string
	tempDir    string
	executor   executor.Executor
	logger     logger.Logger
	sem        *semaphore.Weighted
}

// New creates a Transcriber backed by ffmpeg and whisper.cpp. At most
// maxConcurrent transcriptions run at once.
func New(cfg *config.Config, exec executor.Executor, log logger.Logger) Transcriber {
	maxConcurrent := cfg.Server.MaxConcurrent
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &implTranscriber{
		whisper:    cfg.Server.Whisper,
		ffmpegPath: cfg.Capture.FFmpegPath,
		tempDir:    cfg.Storage.TempDir,
		executor:   exec,
		logger:     log,
		sem:        semaphore.NewWeighted(int64(maxConcurrent)),
	}
}
