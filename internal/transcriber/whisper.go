package transcriber

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// runWhisper writes a plain-text transcript next to wavPath and returns its
// path. The path is returned even on failure so the caller can clean up.
func (t *implTranscriber) runWhisper(ctx context.Context, wavPath string) (string, error) {
	outputPrefix := strings.TrimSuffix(wavPath, filepath.Ext(wavPath))
	txtPath := outputPrefix + ".txt"

	// -otxt: plain text output
	// -nt: no timestamps
	// -l: force language, avoids hallucinated translations
	// -bo 5: best of 5
	args := []string{
		"-m", t.whisper.ModelPath,
		"-f", wavPath,
		"-otxt",
		"-nt",
		"-l", t.whisper.Language,
		"-t", strconv.Itoa(t.whisper.Threads),
		"-bo", "5",
		"--output-file", outputPrefix,
	}
	if t.whisper.Prompt != "" {
		args = append(args, "--prompt", t.whisper.Prompt)
	}

	if _, err := t.executor.Execute(ctx, t.whisper.BinaryPath, args...); err != nil {
		return txtPath, fmt.Errorf("whisper: %w", err)
	}

	return txtPath, nil
}
