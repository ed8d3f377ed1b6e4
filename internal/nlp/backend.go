//go:generate go run go.uber.org/mock/mockgen -source=backend.go -destination=../../mocks/mock_backend.go -package=mocks

package nlp

import "context"

// POSNoun is the Universal POS tag for common nouns.
const POSNoun = "NOUN"

// Backend abstracts the language model used to parse text.
type Backend interface {
	// Name identifies the backend in logs and metrics.
	Name() string
	// Analyze parses text into entities, tagged tokens and noun chunks.
	Analyze(ctx context.Context, text string) (Document, error)
	// Close releases resources held by the backend.
	Close() error
}

// Span is a contiguous region of the input text.
// Start and End are byte offsets into the input; both are -1 when the
// backend could not locate the span.
type Span struct {
	Text  string
	Label string
	Start int
	End   int
}

// Token is a single token with its coarse (Universal) and fine-grained tags.
type Token struct {
	Text  string
	POS   string
	Tag   string
	Start int
	End   int
}

// Document is the parsed form of one input text.
type Document struct {
	Entities   []Span
	Tokens     []Token
	NounChunks []Span
}
