package output

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BALASANKARP/Edurecap/internal/pipeline"
	"github.com/BALASANKARP/Edurecap/internal/recording"
)

var stageFailures = map[string]string{
	pipeline.StageTranscribe: "Failed to transcribe audio",
	pipeline.StageSummarize:  "Failed to summarize transcription",
	pipeline.StageFlashcards: "Failed to generate flashcards",
	pipeline.StageChat:       "Failed to get response",
}

// Describe turns an error into the one-line notice shown to the user.
func Describe(err error) string {
	if err == nil {
		return ""
	}

	var re *pipeline.RemoteError
	if errors.As(err, &re) {
		prefix, ok := stageFailures[re.Stage]
		if !ok {
			prefix = "Request failed"
		}
		if re.Kind == pipeline.KindTimeout {
			return prefix + ": the server did not answer in time"
		}
		return prefix + ": " + re.Message()
	}

	switch {
	case errors.Is(err, recording.ErrPermissionDenied):
		return "Permission to access microphone is required!"
	case errors.Is(err, recording.ErrDeviceUnavailable):
		return "Microphone is unavailable: " + reason(err, recording.ErrDeviceUnavailable)
	case errors.Is(err, recording.ErrFinalize):
		return "Failed to stop recording: " + reason(err, recording.ErrFinalize)
	case errors.Is(err, recording.ErrPlaybackUnavailable):
		return "Cannot play audio: " + reason(err, recording.ErrPlaybackUnavailable)
	case errors.Is(err, recording.ErrStorage):
		return "Failed to save audio locally: " + reason(err, recording.ErrStorage)
	case errors.Is(err, recording.ErrValidation):
		return validationNotice(reason(err, recording.ErrValidation))
	case errors.Is(err, recording.ErrBusy):
		return "Please wait for the current request to finish"
	case errors.Is(err, recording.ErrAlreadyRecording):
		return "A recording is already in progress"
	case errors.Is(err, recording.ErrNotRecording):
		return "Nothing is being recorded"
	case errors.Is(err, recording.ErrNoPlayback):
		return "Nothing is playing"
	case errors.Is(err, recording.ErrSessionClosed):
		return "This recording session has ended"
	}
	return err.Error()
}

func validationNotice(msg string) string {
	switch msg {
	case "no audio selected":
		return "Please provide an audio file for transcription"
	case "transcription is empty", "transcribe the audio first":
		return "Transcription is empty. Please transcribe audio first."
	case "name is required":
		return "Please provide an audio file and a name for it"
	case "question is empty":
		return "Please enter a question"
	}
	if msg == "" {
		return "Invalid input"
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}

// reason strips the sentinel prefix added by fmt.Errorf("%w: ...").
func reason(err, sentinel error) string {
	msg := err.Error()
	if rest, ok := strings.CutPrefix(msg, sentinel.Error()+": "); ok {
		return rest
	}
	if msg == sentinel.Error() {
		return ""
	}
	return msg
}

// FormatTime renders a playback position as m:ss.
func FormatTime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
