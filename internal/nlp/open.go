package nlp

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Backend kinds accepted by Open.
const (
	KindProse  = "prose"
	KindRemote = "remote"
)

// Options selects and configures a backend.
type Options struct {
	Kind          string
	ModelPath     string
	RemoteURL     string
	RemoteTimeout time.Duration
}

// Open initializes the configured backend. Any error is a startup failure.
func Open(ctx context.Context, opts Options) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Kind)) {
	case "", KindProse:
		return NewProse(ProseOptions{ModelPath: opts.ModelPath})
	case KindRemote:
		return NewRemote(ctx, RemoteOptions{BaseURL: opts.RemoteURL, Timeout: opts.RemoteTimeout})
	default:
		return nil, fmt.Errorf("unknown nlp backend %q", opts.Kind)
	}
}
