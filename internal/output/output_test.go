package output

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/BALASANKARP/Edurecap/internal/pipeline"
	"github.com/BALASANKARP/Edurecap/internal/recording"
)

func TestDescribe(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"permission", recording.ErrPermissionDenied, "Permission to access microphone is required!"},
		{"remote detail", &pipeline.RemoteError{Stage: pipeline.StageTranscribe, Kind: pipeline.KindStatus, StatusCode: 500, Detail: "bad audio"}, "Failed to transcribe audio: bad audio"},
		{"remote timeout", &pipeline.RemoteError{Stage: pipeline.StageSummarize, Kind: pipeline.KindTimeout}, "Failed to summarize transcription: the server did not answer in time"},
		{"empty transcription", fmt.Errorf("%w: transcribe the audio first", recording.ErrValidation), "Transcription is empty. Please transcribe audio first."},
		{"other validation", fmt.Errorf("%w: a recording named %q already exists", recording.ErrValidation, "x"), `A recording named "x" already exists`},
		{"storage", fmt.Errorf("%w: disk full", recording.ErrStorage), "Failed to save audio locally: disk full"},
		{"device", fmt.Errorf("%w: device busy", recording.ErrDeviceUnavailable), "Microphone is unavailable: device busy"},
		{"busy", recording.ErrBusy, "Please wait for the current request to finish"},
		{"plain", errors.New("boom"), "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Describe(tt.err))
		})
	}
}

func TestNotifyPrintsOneLine(t *testing.T) {
	var buf bytes.Buffer
	NewFormatter(&buf).Notify(context.Background(), recording.ErrPermissionDenied)
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
	assert.Contains(t, buf.String(), "microphone")
}

func TestFormatTime(t *testing.T) {
	assert.Equal(t, "0:00", FormatTime(0))
	assert.Equal(t, "0:07", FormatTime(7*time.Second+900*time.Millisecond))
	assert.Equal(t, "2:05", FormatTime(125*time.Second))
	assert.Equal(t, "61:01", FormatTime(time.Hour+61*time.Second))
	assert.Equal(t, "0:00", FormatTime(-time.Second))
}

func TestArtifactHidden(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(&buf)
	f.Artifact("Summary", "S1", true)
	f.Artifact("Flashcards", "", false)
	assert.Equal(t, "\nSummary: (hidden)\n", buf.String())
}
