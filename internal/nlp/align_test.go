package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocate(t *testing.T) {
	src := "Steve Jobs met Steve Wozniak."
	got := locate(src, []string{"Steve", "Jobs", "Steve", "missing", "Wozniak", ""})
	assert.Equal(t, [][2]int{{0, 5}, {6, 10}, {15, 20}, {-1, -1}, {21, 28}, {-1, -1}}, got)
}

func TestUniversalPOS(t *testing.T) {
	cases := map[string]string{
		"NN":   "NOUN",
		"NNS":  "NOUN",
		"NNP":  "PROPN",
		"NNPS": "PROPN",
		"PRP":  "PRON",
		"VBD":  "VERB",
		"??":   "X",
	}
	for in, want := range cases {
		assert.Equal(t, want, UniversalPOS(in), in)
	}
}
