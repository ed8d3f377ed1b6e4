package httpapi

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
)

// TestMux_MetricsUseRoutePattern ensures the mux labels requests by chi route
// pattern and exposes them on /metrics.
func TestMux_MetricsUseRoutePattern(t *testing.T) {
	h := NewMux(&mockService{resp: appleResponse()})
	w := postExtract(t, h, `{"text":"hi"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/no/such/route/12345", nil))

	mrr := httptest.NewRecorder()
	h.ServeHTTP(mrr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := mrr.Body.Bytes()
	if !bytes.Contains(body, []byte(`path="/extract_entities"`)) {
		t.Fatalf("expected /extract_entities label in metrics")
	}
	if bytes.Contains(body, []byte("/no/such/route/12345")) {
		t.Fatalf("unmatched paths must not become labels")
	}
}
