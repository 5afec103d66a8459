package transcriber

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// extractAudio converts the input to 16kHz mono WAV, the format whisper.cpp
// expects.
func (t *implTranscriber) extractAudio(ctx context.Context, audioPath string) (string, error) {
	if err := os.MkdirAll(t.tempDir, 0755); err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}
	wavPath := filepath.Join(t.tempDir, "transcribe-"+uuid.NewString()+".wav")

	t.logger.Debug(ctx, "Extracting audio: %s -> %s", audioPath, wavPath)

	// -vn: drop any video/cover-art stream
	// -ar 16000 -ac 1: 16kHz mono
	// -c:a pcm_s16le: 16-bit PCM
	args := []string{
		"-i", audioPath,
		"-vn",
		"-ar", "16000",
		"-ac", "1",
		"-c:a", "pcm_s16le",
		"-threads", "0",
		"-y",
		wavPath,
	}

	if _, err := t.executor.Execute(ctx, t.ffmpegPath, args...); err != nil {
		os.Remove(wavPath)
		return "", fmt.Errorf("ffmpeg extract audio: %w", err)
	}

	return wavPath, nil
}
