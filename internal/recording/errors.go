package recording

import "errors"

var (
	ErrPermissionDenied    = errors.New("microphone permission denied")
	ErrDeviceUnavailable   = errors.New("audio device unavailable")
	ErrFinalize            = errors.New("failed to finalize recording")
	ErrValidation          = errors.New("validation failed")
	ErrRemote              = errors.New("remote processing failed")
	ErrStorage             = errors.New("storage failure")
	ErrPlaybackUnavailable = errors.New("playback unavailable")

	ErrAlreadyRecording = errors.New("a recording is already in progress")
	ErrNotRecording     = errors.New("no recording in progress")
	ErrBusy             = errors.New("another stage is in progress")
	ErrNoPlayback       = errors.New("nothing is playing")
	ErrSessionClosed    = errors.New("editing session is closed")
)
