package e2e

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"

	"entityd/internal/nlp"
	"entityd/pkg/types"
)

const appleText = "Apple was founded by Steve Jobs in California."

func appleDocument() map[string]any {
	tok := func(text, pos, tag string, start int) map[string]any {
		return map[string]any{"text": text, "pos": pos, "tag": tag, "start": start, "end": start + len(text)}
	}
	return map[string]any{
		"entities": []map[string]any{
			{"text": "Apple", "label": "ORG", "start": 0, "end": 5},
			{"text": "Steve Jobs", "label": "PERSON", "start": 21, "end": 31},
			{"text": "California", "label": "GPE", "start": 35, "end": 45},
		},
		"tokens": []map[string]any{
			tok("Apple", "PROPN", "NNP", 0),
			tok("was", "AUX", "VBD", 6),
			tok("founded", "VERB", "VBN", 10),
			tok("by", "ADP", "IN", 18),
			tok("Steve", "PROPN", "NNP", 21),
			tok("Jobs", "PROPN", "NNP", 27),
			tok("in", "ADP", "IN", 32),
			tok("California", "PROPN", "NNP", 35),
			tok(".", "PUNCT", ".", 45),
		},
		"noun_chunks": []map[string]any{
			{"text": "Apple", "start": 0, "end": 5},
			{"text": "Steve Jobs", "start": 21, "end": 31},
			{"text": "California", "start": 35, "end": 45},
		},
	}
}

// TestE2E_RemoteApple runs the canonical example through the remote backend
// against a sidecar that answers like a spaCy small English model.
func TestE2E_RemoteApple(t *testing.T) {
	side := fakeSidecar(t, appleDocument())
	srv, _ := newServerForBackend(t, nlp.Options{Kind: nlp.KindRemote, RemoteURL: side.URL})

	resp, body := postJSON(t, srv.URL+"/extract_entities", `{"text":"`+appleText+`","extract_nouns":true,"extract_noun_chunks":true}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d body=%s", resp.StatusCode, body)
	}
	var got types.ExtractionResponse
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("json: %v", err)
	}
	wantEntities := []types.Entity{{Text: "Apple", Label: "ORG"}, {Text: "Steve Jobs", Label: "PERSON"}, {Text: "California", Label: "GPE"}}
	if len(got.Entities) != len(wantEntities) {
		t.Fatalf("entities=%+v", got.Entities)
	}
	for i := range wantEntities {
		if got.Entities[i] != wantEntities[i] {
			t.Fatalf("entity %d = %+v, want %+v", i, got.Entities[i], wantEntities[i])
		}
	}
	// every noun here is proper, so the common-noun list is empty but present
	if got.Nouns == nil || len(got.Nouns) != 0 {
		t.Fatalf("nouns=%v", got.Nouns)
	}
	if strings.Join(got.NounChunks, "|") != "Apple|Steve Jobs|California" {
		t.Fatalf("noun_chunks=%v", got.NounChunks)
	}
}

func TestE2E_RemoteFlagsOffAreNull(t *testing.T) {
	side := fakeSidecar(t, appleDocument())
	srv, _ := newServerForBackend(t, nlp.Options{Kind: nlp.KindRemote, RemoteURL: side.URL})

	resp, body := postJSON(t, srv.URL+"/extract_entities", `{"text":"`+appleText+`"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d", resp.StatusCode)
	}
	m := decodeObject(t, body)
	if string(m["nouns"]) != "null" || string(m["noun_chunks"]) != "null" {
		t.Fatalf("expected null lists, got %s", body)
	}
}

func TestE2E_RemoteSidecarDownIs500(t *testing.T) {
	side := fakeSidecar(t, appleDocument())
	srv, _ := newServerForBackend(t, nlp.Options{Kind: nlp.KindRemote, RemoteURL: side.URL})
	side.Close()

	resp, body := postJSON(t, srv.URL+"/extract_entities", `{"text":"hi"}`)
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status=%d body=%s", resp.StatusCode, body)
	}
	var e types.ErrorResponse
	if err := json.Unmarshal(body, &e); err != nil || e.Detail == "" {
		t.Fatalf("expected detail, got %s (%v)", body, err)
	}

	// the server keeps serving other routes
	r, err := http.Get(srv.URL + "/healthz")
	if err != nil || r.StatusCode != http.StatusOK {
		t.Fatalf("healthz after failure: %v %v", r, err)
	}
	r.Body.Close()
}

func TestE2E_ProseEmptyText(t *testing.T) {
	srv, _ := newServerForBackend(t, nlp.Options{Kind: nlp.KindProse})

	resp, body := postJSON(t, srv.URL+"/extract_entities", `{"text":"","extract_nouns":true,"extract_noun_chunks":true}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d", resp.StatusCode)
	}
	if strings.TrimSpace(string(body)) != `{"entities":[],"nouns":[],"noun_chunks":[]}` {
		t.Fatalf("body=%s", body)
	}
}

func TestE2E_ProseStructure(t *testing.T) {
	srv, _ := newServerForBackend(t, nlp.Options{Kind: nlp.KindProse})
	text := "The quick brown fox jumps over the lazy dog near the river bank."

	resp, body := postJSON(t, srv.URL+"/extract_entities", `{"text":"`+text+`","extract_nouns":true,"extract_noun_chunks":true}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d body=%s", resp.StatusCode, body)
	}
	var got types.ExtractionResponse
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("json: %v", err)
	}
	if got.Entities == nil || got.Nouns == nil || got.NounChunks == nil {
		t.Fatalf("requested lists must be present: %s", body)
	}
	for _, n := range got.Nouns {
		if !strings.Contains(text, n) {
			t.Fatalf("noun %q not in input", n)
		}
	}
	for _, c := range got.NounChunks {
		if !strings.Contains(text, c) {
			t.Fatalf("chunk %q not in input", c)
		}
	}
	for _, e := range got.Entities {
		if !strings.Contains(text, e.Text) || e.Label == "" {
			t.Fatalf("bad entity %+v", e)
		}
	}
}

func TestE2E_ProseDeterministicUnderConcurrency(t *testing.T) {
	srv, _ := newServerForBackend(t, nlp.Options{Kind: nlp.KindProse})
	body := `{"text":"` + appleText + `","extract_nouns":true,"extract_noun_chunks":true}`

	_, first := postJSON(t, srv.URL+"/extract_entities", body)
	var wg sync.WaitGroup
	results := make([]string, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp, err := http.Post(srv.URL+"/extract_entities", "application/json", strings.NewReader(body))
			if err != nil {
				return
			}
			defer resp.Body.Close()
			var buf strings.Builder
			_, _ = io.Copy(&buf, resp.Body)
			results[i] = buf.String()
		}(i)
	}
	wg.Wait()
	for i, r := range results {
		if r != string(first) {
			t.Fatalf("response %d differs:\n%s\nvs\n%s", i, r, first)
		}
	}
}

func TestE2E_EmptyObjectIs422(t *testing.T) {
	srv, _ := newServerForBackend(t, nlp.Options{Kind: nlp.KindProse})
	resp, body := postJSON(t, srv.URL+"/extract_entities", `{}`)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status=%d body=%s", resp.StatusCode, body)
	}
}
