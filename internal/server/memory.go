package server

import (
	"math"
	"strings"
	"sync"
	"unicode"
)

const maxParagraphs = 1000

// paragraphMemory remembers chat paragraphs and picks the one that best
// matches a question by word overlap.
type paragraphMemory struct {
	mu         sync.Mutex
	limit      int
	paragraphs []string
	tokens     []map[string]struct{}
}

func newParagraphMemory(limit int) *paragraphMemory {
	return &paragraphMemory{limit: limit}
}

func (m *paragraphMemory) Add(paragraph string) {
	paragraph = strings.TrimSpace(paragraph)
	if paragraph == "" {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.paragraphs = append(m.paragraphs, paragraph)
	m.tokens = append(m.tokens, tokenize(paragraph))
	if len(m.paragraphs) > m.limit {
		m.paragraphs = m.paragraphs[1:]
		m.tokens = m.tokens[1:]
	}
}

func (m *paragraphMemory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.paragraphs)
}

// Best returns the stored paragraph most similar to question. Ties go to the
// most recent paragraph; an empty memory yields "".
func (m *paragraphMemory) Best(question string) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.paragraphs) == 0 {
		return ""
	}

	q := tokenize(question)
	best, bestScore := len(m.paragraphs)-1, -1.0
	for i := len(m.paragraphs) - 1; i >= 0; i-- {
		if score := similarity(q, m.tokens[i]); score > bestScore {
			best, bestScore = i, score
		}
	}
	return m.paragraphs[best]
}

// similarity is the cosine similarity of two word sets.
func similarity(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	shared := 0
	for w := range a {
		if _, ok := b[w]; ok {
			shared++
		}
	}
	return float64(shared) / math.Sqrt(float64(len(a)*len(b)))
}

func tokenize(s string) map[string]struct{} {
	words := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		if len(w) > 1 {
			set[w] = struct{}{}
		}
	}
	return set
}
