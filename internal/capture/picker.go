package capture

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"
)

// audioExtensions backs up mime.TypeByExtension, which depends on the host's
// mime tables.
var audioExtensions = map[string]bool{
	".m4a":  true,
	".mp3":  true,
	".wav":  true,
	".aac":  true,
	".flac": true,
	".ogg":  true,
	".oga":  true,
	".opus": true,
	".wma":  true,
	".aiff": true,
	".aif":  true,
	".caf":  true,
	".amr":  true,
}

// IsAudio reports whether path names a file with an audio MIME type.
func IsAudio(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return false
	}
	if audioExtensions[ext] {
		return true
	}
	return strings.HasPrefix(mime.TypeByExtension(ext), "audio/")
}

// PathPicker returns a path chosen up front, e.g. a command-line argument.
// An empty path counts as a cancelled pick.
type PathPicker string

func (p PathPicker) Pick(ctx context.Context) (string, bool, error) {
	if strings.TrimSpace(string(p)) == "" {
		return "", false, nil
	}
	return string(p), true, nil
}

// PromptPicker reads a path from a terminal. An empty line cancels.
type PromptPicker struct {
	In  io.Reader
	Out io.Writer
}

func (p PromptPicker) Pick(ctx context.Context) (string, bool, error) {
	fmt.Fprint(p.Out, "Audio file (empty to cancel): ")

	line, err := bufio.NewReader(p.In).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", false, err
	}

	path := strings.Trim(strings.TrimSpace(line), `"'`)
	if path == "" {
		return "", false, nil
	}
	return path, true, nil
}
