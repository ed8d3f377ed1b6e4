package nlp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// RemoteOptions configures the HTTP sidecar backend.
type RemoteOptions struct {
	// BaseURL of the NLP server, e.g. http://127.0.0.1:9000.
	BaseURL string
	// Timeout bounds each Analyze call. Zero means no timeout.
	Timeout time.Duration
	// ConnectTimeout bounds dialing. Zero selects 5s.
	ConnectTimeout time.Duration
	// HTTPClient overrides the default client (tests).
	HTTPClient *http.Client
}

// remoteBackend implements Backend by calling an NLP server over HTTP.
// The server owns the model; entityd only forwards text and maps results.
type remoteBackend struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
}

// NewRemote constructs a sidecar-backed Backend and probes its health
// endpoint once. An unreachable server is a startup failure.
func NewRemote(ctx context.Context, opts RemoteOptions) (Backend, error) {
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		return nil, ErrBackendUnavailable("remote url is empty", nil)
	}
	cli := opts.HTTPClient
	if cli == nil {
		connectTimeout := opts.ConnectTimeout
		if connectTimeout <= 0 {
			connectTimeout = 5 * time.Second
		}
		tr := &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   connectTimeout,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:          100,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
		}
		// Deadlines come from contexts, see Analyze.
		cli = &http.Client{Transport: otelhttp.NewTransport(tr), Timeout: 0}
	}
	b := &remoteBackend{baseURL: base, timeout: opts.Timeout, httpClient: cli}
	if err := b.ping(ctx); err != nil {
		return nil, ErrBackendUnavailable("nlp server "+base, err)
	}
	return b, nil
}

type remoteRequest struct {
	Text string `json:"text"`
}

type remoteSpan struct {
	Text  string `json:"text"`
	Label string `json:"label,omitempty"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

type remoteToken struct {
	Text  string `json:"text"`
	POS   string `json:"pos"`
	Tag   string `json:"tag"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

type remoteResponse struct {
	Entities   []remoteSpan  `json:"entities"`
	Tokens     []remoteToken `json:"tokens"`
	NounChunks []remoteSpan  `json:"noun_chunks"`
}

func (b *remoteBackend) Name() string { return "remote" }

func (b *remoteBackend) Analyze(ctx context.Context, text string) (Document, error) {
	if b.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.timeout)
		defer cancel()
	}
	payload, err := json.Marshal(remoteRequest{Text: text})
	if err != nil {
		return Document{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+"/analyze", bytes.NewReader(payload))
	if err != nil {
		return Document{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	resp, err := b.httpClient.Do(req)
	if err != nil {
		return Document{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return Document{}, remoteStatusError{status: resp.StatusCode, body: strings.TrimSpace(string(body))}
	}
	var out remoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Document{}, errors.New("decode nlp server response: " + err.Error())
	}
	return out.document(), nil
}

func (r remoteResponse) document() Document {
	doc := Document{
		Entities:   make([]Span, len(r.Entities)),
		Tokens:     make([]Token, len(r.Tokens)),
		NounChunks: make([]Span, len(r.NounChunks)),
	}
	for i, e := range r.Entities {
		doc.Entities[i] = Span(e)
	}
	for i, t := range r.Tokens {
		doc.Tokens[i] = Token(t)
	}
	for i, c := range r.NounChunks {
		doc.NounChunks[i] = Span(c)
	}
	return doc
}

func (b *remoteBackend) ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.baseURL+"/healthz", http.NoBody)
	if err != nil {
		return err
	}
	resp, err := b.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode != http.StatusOK {
		return remoteStatusError{status: resp.StatusCode}
	}
	return nil
}

func (b *remoteBackend) Close() error {
	b.httpClient.CloseIdleConnections()
	return nil
}
