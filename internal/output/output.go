package output

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/BALASANKARP/Edurecap/internal/recording"
)

type Formatter struct {
	w io.Writer
}

func NewFormatter(w io.Writer) *Formatter {
	return &Formatter{w: w}
}

// Notify prints the notice for a failed operation.
func (f *Formatter) Notify(ctx context.Context, err error) {
	f.Error(Describe(err))
}

func (f *Formatter) RecordingStarted() {
	fmt.Fprintf(f.w, "🎙️  Recording... press Enter to stop\n")
}

func (f *Formatter) RecordingStopped(duration time.Duration) {
	fmt.Fprintf(f.w, "⏹️  Recording stopped (%s)\n", formatDuration(duration))
}

func (f *Formatter) Imported(path string) {
	fmt.Fprintf(f.w, "📥 Imported %s\n", path)
}

func (f *Formatter) Transcribing() {
	fmt.Fprintf(f.w, "📝 Transcribing audio...\n")
}

func (f *Formatter) Summarizing() {
	fmt.Fprintf(f.w, "🤖 Generating summary...\n")
}

func (f *Formatter) GeneratingFlashcards() {
	fmt.Fprintf(f.w, "🃏 Generating flashcards...\n")
}

func (f *Formatter) Artifact(title, text string, hidden bool) {
	if text == "" {
		return
	}
	if hidden {
		fmt.Fprintf(f.w, "\n%s: (hidden)\n", title)
		return
	}
	fmt.Fprintf(f.w, "\n%s:\n%s\n", title, indent(text))
}

func (f *Formatter) Copied() {
	fmt.Fprintf(f.w, "📋 Text has been copied to clipboard.\n")
}

func (f *Formatter) Saved(rec recording.Recording) {
	fmt.Fprintf(f.w, "✅ Audio saved locally with the name: %s\n", rec.Name)
}

func (f *Formatter) Deleted(rec recording.Recording) {
	fmt.Fprintf(f.w, "🗑️  Deleted %s\n", rec.Name)
}

func (f *Formatter) Exported(path string) {
	fmt.Fprintf(f.w, "📄 Exported %s\n", path)
}

func (f *Formatter) Error(msg string) {
	fmt.Fprintf(f.w, "❌ %s\n", msg)
}

func (f *Formatter) Info(msg string) {
	fmt.Fprintf(f.w, "ℹ️  %s\n", msg)
}

func (f *Formatter) Success(msg string) {
	fmt.Fprintf(f.w, "✅ %s\n", msg)
}

func (f *Formatter) Warning(msg string) {
	fmt.Fprintf(f.w, "⚠️  %s\n", msg)
}

func (f *Formatter) RecordingListHeader(n int) {
	if n == 0 {
		fmt.Fprintf(f.w, "No recordings yet.\n")
		return
	}
	fmt.Fprintf(f.w, "🎧 Recordings:\n\n")
}

func (f *Formatter) RecordingListItem(i int, rec recording.Recording) {
	status := ""
	if rec.Transcription != "" {
		status = " 📝"
	}
	fmt.Fprintf(f.w, "  %2d. %s%s\n", i, rec.Name, status)
}

// RecordingDetail prints a recording with its transcription expanded.
func (f *Formatter) RecordingDetail(i int, rec recording.Recording) {
	fmt.Fprintf(f.w, "%d. %s\n   %s\n", i, rec.Name, rec.URI)
	if rec.Transcription == "" {
		fmt.Fprintf(f.w, "\n   (no transcription)\n")
		return
	}
	fmt.Fprintf(f.w, "\nTranscription:\n%s\n", indent(rec.Transcription))
}

// Progress redraws the playback line in place.
func (f *Formatter) Progress(name string, pos, dur time.Duration, playing bool) {
	icon := "⏸️ "
	if playing {
		icon = "▶️ "
	}
	fmt.Fprintf(f.w, "\r%s %s  %s / %s   ", icon, name, FormatTime(pos), FormatTime(dur))
}

func (f *Formatter) ProgressDone() {
	fmt.Fprintln(f.w)
}

func indent(text string) string {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	for i, l := range lines {
		lines[i] = "   " + l
	}
	return strings.Join(lines, "\n")
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm%02ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}
