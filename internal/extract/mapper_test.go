package extract

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"entityd/internal/nlp"
	"entityd/pkg/types"
)

func appleDoc() nlp.Document {
	return nlp.Document{
		Entities: []nlp.Span{
			{Text: "Apple", Label: "ORG", Start: 0, End: 5},
			{Text: "Steve Jobs", Label: "PERSON", Start: 21, End: 31},
			{Text: "California", Label: "GPE", Start: 35, End: 45},
		},
		Tokens: []nlp.Token{
			{Text: "Apple", POS: "PROPN", Tag: "NNP"},
			{Text: "was", POS: "AUX", Tag: "VBD"},
			{Text: "founded", POS: "VERB", Tag: "VBN"},
			{Text: "by", POS: "ADP", Tag: "IN"},
			{Text: "Steve", POS: "PROPN", Tag: "NNP"},
			{Text: "Jobs", POS: "PROPN", Tag: "NNP"},
			{Text: "in", POS: "ADP", Tag: "IN"},
			{Text: "California", POS: "PROPN", Tag: "NNP"},
			{Text: ".", POS: "PUNCT", Tag: "."},
		},
		NounChunks: []nlp.Span{{Text: "Apple"}, {Text: "Steve Jobs"}, {Text: "California"}},
	}
}

func TestBuildResponse_EntitiesOnly(t *testing.T) {
	resp := BuildResponse(appleDoc(), Flags{})
	assert.Equal(t, []types.Entity{
		{Text: "Apple", Label: "ORG"},
		{Text: "Steve Jobs", Label: "PERSON"},
		{Text: "California", Label: "GPE"},
	}, resp.Entities)
	assert.Nil(t, resp.Nouns)
	assert.Nil(t, resp.NounChunks)

	b, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"nouns":null`)
	assert.Contains(t, string(b), `"noun_chunks":null`)
}

func TestBuildResponse_NounsExcludeProperNouns(t *testing.T) {
	resp := BuildResponse(appleDoc(), Flags{Nouns: true})
	require.NotNil(t, resp.Nouns)
	assert.Empty(t, resp.Nouns)

	b, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"nouns":[]`)
}

func TestBuildResponse_NounsKeepOrderAndDuplicates(t *testing.T) {
	doc := nlp.Document{Tokens: []nlp.Token{
		{Text: "cats", POS: "NOUN"},
		{Text: "chase", POS: "VERB"},
		{Text: "Mice", POS: "NOUN"},
		{Text: "and", POS: "CCONJ"},
		{Text: "cats", POS: "NOUN"},
		{Text: "Tom", POS: "PROPN"},
		{Text: "they", POS: "PRON"},
	}}
	resp := BuildResponse(doc, Flags{Nouns: true})
	assert.Equal(t, []string{"cats", "Mice", "cats"}, resp.Nouns)
}

func TestBuildResponse_NounChunksAsProduced(t *testing.T) {
	doc := nlp.Document{NounChunks: []nlp.Span{{Text: "the dog"}, {Text: "dog"}, {Text: "the dog"}}}
	resp := BuildResponse(doc, Flags{NounChunks: true})
	assert.Equal(t, []string{"the dog", "dog", "the dog"}, resp.NounChunks)
	assert.Nil(t, resp.Nouns)
}

func TestBuildResponse_EmptyDocument(t *testing.T) {
	resp := BuildResponse(nlp.Document{}, Flags{Nouns: true, NounChunks: true})
	b, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"entities":[],"nouns":[],"noun_chunks":[]}`, string(b))
}
