package summarizer

import "context"

// Generator produces the text artifacts served by the processing service.
type Generator interface {
	Summarize(ctx context.Context, transcript string) (string, error)
	Flashcards(ctx context.Context, text string) (string, error)
	// Answer responds to question using only passage as context.
	Answer(ctx context.Context, question, passage string) (string, error)
}
