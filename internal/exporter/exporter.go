package exporter

import (
	"time"

	"github.com/BALASANKARP/Edurecap/internal/recording"
	"github.com/BALASANKARP/Edurecap/internal/session"
)

// Document is the export-neutral shape of a lecture write-up.
type Document struct {
	Title    string
	Subtitle string
	Sections []Section
}

type Section struct {
	Heading  string
	Body     string
	Markdown bool
}

// FromRecording builds a document for a saved recording.
func FromRecording(rec recording.Recording, now time.Time) Document {
	doc := Document{
		Title:    rec.Name,
		Subtitle: now.Format("2006-01-02 15:04"),
	}
	if rec.Transcription != "" {
		doc.Sections = append(doc.Sections, Section{Heading: "Transcription", Body: rec.Transcription})
	}
	return doc
}

// FromArtifacts builds a document from an editing session. Hidden artifacts
// are left out.
func FromArtifacts(name string, a session.Artifacts, now time.Time) Document {
	if name == "" {
		name = "Untitled lecture"
	}
	doc := Document{
		Title:    name,
		Subtitle: now.Format("2006-01-02 15:04"),
	}

	add := func(heading string, art session.Artifact, markdown bool) {
		if art.Present() && !art.Hidden {
			doc.Sections = append(doc.Sections, Section{Heading: heading, Body: art.Text, Markdown: markdown})
		}
	}
	add("Transcription", a.Transcription, false)
	add("Summary", a.Summary, true)
	add("Flashcards", a.Flashcards, true)

	return doc
}
