package transcriber

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"
)

// Transcribe converts the upload to 16kHz mono WAV, runs whisper.cpp on it
// and returns the text. Intermediate files are always removed.
func (t *implTranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	if err := t.sem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer t.sem.Release(1)

	startTime := time.Now()
	t.logger.Info(ctx, "Starting transcription: %s", audioPath)

	wavPath, err := t.extractAudio(ctx, audioPath)
	if err != nil {
		return "", fmt.Errorf("extract audio: %w", err)
	}
	defer t.cleanupTempFile(ctx, wavPath)

	txtPath, err := t.runWhisper(ctx, wavPath)
	if txtPath != "" {
		defer t.cleanupTempFile(ctx, txtPath)
	}
	if err != nil {
		return "", fmt.Errorf("transcribe: %w", err)
	}

	data, err := os.ReadFile(txtPath)
	if err != nil {
		return "", fmt.Errorf("read transcript: %w", err)
	}

	text := normalize(string(data))
	t.logger.Info(ctx, "Transcription completed in %s (%d chars)", time.Since(startTime).Round(time.Millisecond), len(text))
	return text, nil
}

// normalize joins whisper's per-segment lines into one paragraph.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
