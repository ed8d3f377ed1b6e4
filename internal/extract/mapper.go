package extract

import (
	"github.com/samber/lo"

	"entityd/internal/nlp"
	"entityd/pkg/types"
)

// Flags selects the optional parts of a response.
type Flags struct {
	Nouns      bool
	NounChunks bool
}

// BuildResponse maps a parsed document to the wire response. Entities are
// always present; nouns and noun chunks only when requested, in which case
// they are never nil. Order and duplicates are kept as produced by the model.
func BuildResponse(doc nlp.Document, flags Flags) types.ExtractionResponse {
	resp := types.ExtractionResponse{
		Entities: lo.Map(doc.Entities, func(s nlp.Span, _ int) types.Entity {
			return types.Entity{Text: s.Text, Label: s.Label}
		}),
	}
	if flags.Nouns {
		resp.Nouns = lo.FilterMap(doc.Tokens, func(t nlp.Token, _ int) (string, bool) {
			return t.Text, t.POS == nlp.POSNoun
		})
		if resp.Nouns == nil {
			resp.Nouns = []string{}
		}
	}
	if flags.NounChunks {
		resp.NounChunks = lo.Map(doc.NounChunks, func(s nlp.Span, _ int) string {
			return s.Text
		})
	}
	return resp
}
