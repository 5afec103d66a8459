package session

import (
	"fmt"

	"github.com/BALASANKARP/Edurecap/internal/recording"
)

type Stage string

const (
	StageTranscription Stage = "transcription"
	StageSummary       Stage = "summary"
	StageFlashcards    Stage = "flashcards"
)

func ParseStage(s string) (Stage, error) {
	switch Stage(s) {
	case StageTranscription, StageSummary, StageFlashcards:
		return Stage(s), nil
	}
	return "", fmt.Errorf("%w: unknown stage %q", recording.ErrValidation, s)
}

// Artifact is one pipeline output. Hidden is the user's visibility toggle.
type Artifact struct {
	Text   string
	Hidden bool
}

func (a Artifact) Present() bool {
	return a.Text != ""
}

// Artifacts holds the outputs derived from the session's audio. Summary and
// Flashcards are only valid for the Transcription they were produced from.
type Artifacts struct {
	Transcription Artifact
	Summary       Artifact
	Flashcards    Artifact
}

func (a *Artifacts) get(stage Stage) *Artifact {
	switch stage {
	case StageTranscription:
		return &a.Transcription
	case StageSummary:
		return &a.Summary
	case StageFlashcards:
		return &a.Flashcards
	}
	return nil
}

func (a *Artifacts) setTranscription(text string) {
	a.Transcription.Text = text
	a.Summary.Text = ""
	a.Flashcards.Text = ""
}
