package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"entityd/internal/extract"
	"entityd/internal/httpapi"
	"entityd/internal/nlp"
)

// newServerForBackend wires the full stack (backend, service, mux) behind an httptest server.
func newServerForBackend(t *testing.T, opts nlp.Options) (*httptest.Server, *extract.Service) {
	t.Helper()
	backend, err := nlp.Open(context.Background(), opts)
	if err != nil {
		t.Fatalf("open backend: %v", err)
	}
	svc := extract.New(backend, zerolog.Nop())
	t.Cleanup(func() { _ = svc.Close() })
	srv := httptest.NewServer(httpapi.NewMux(svc))
	t.Cleanup(srv.Close)
	return srv, svc
}

// fakeSidecar serves /healthz and /analyze with a canned spaCy-like document.
func fakeSidecar(t *testing.T, doc map[string]any) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/analyze", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Text string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if req.Text == "" {
			_, _ = w.Write([]byte(`{"entities":[],"tokens":[],"noun_chunks":[]}`))
			return
		}
		_ = json.NewEncoder(w).Encode(doc)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url, body string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Post(url, "application/json", bytes.NewBufferString(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return resp, b
}

// decodeObject keeps JSON nulls distinguishable from empty lists.
func decodeObject(t *testing.T, b []byte) map[string]json.RawMessage {
	t.Helper()
	var m map[string]json.RawMessage
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("decode %s: %v", b, err)
	}
	return m
}
