package recording

import (
	"path/filepath"
	"strings"
)

// Extension is the file extension of every committed audio payload.
const Extension = ".m4a"

// Recording is a saved lecture: its display name, the location of the audio
// payload in permanent storage and the transcription captured before save.
type Recording struct {
	Name          string `json:"name"`
	URI           string `json:"uri"`
	Transcription string `json:"transcription"`
}

// Stem returns the file name of path without directory and extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
