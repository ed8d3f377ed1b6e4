package nlp

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/jdkato/prose/v2"
)

// ProseOptions configures the in-process prose backend.
type ProseOptions struct {
	// ModelPath is a prose model directory on disk. Empty selects the
	// English model embedded in the prose module.
	ModelPath string
}

type proseBackend struct {
	model *prose.Model
	name  string
}

// NewProse loads a prose model and runs a warmup parse so that load errors
// surface at startup instead of on the first request.
func NewProse(opts ProseOptions) (Backend, error) {
	b := &proseBackend{name: "prose"}
	if p := strings.TrimSpace(opts.ModelPath); p != "" {
		m, err := loadProseModel(p)
		if err != nil {
			return nil, err
		}
		b.model = m
		b.name = "prose:" + m.Name
	}
	if err := b.warmup(); err != nil {
		return nil, ErrBackendUnavailable("prose warmup", err)
	}
	return b, nil
}

// warmup parses a fixed sentence. Without an explicit model it also keeps the
// embedded one, which prose would otherwise decode again for every document.
func (b *proseBackend) warmup() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	if b.model == nil {
		doc, err := prose.NewDocument("Warmup sentence for the tagger.")
		if err != nil {
			return err
		}
		b.model = doc.Model
	}
	_, err = b.Analyze(context.Background(), "Warmup sentence for the tagger.")
	return err
}

// loadProseModel wraps prose.ModelFromDisk, which panics on unreadable models.
func loadProseModel(path string) (m *prose.Model, err error) {
	fi, statErr := os.Stat(path)
	if statErr != nil {
		return nil, ErrBackendUnavailable("load prose model", statErr)
	}
	if !fi.IsDir() {
		return nil, ErrBackendUnavailable("load prose model "+path, errors.New("not a directory"))
	}
	defer func() {
		if r := recover(); r != nil {
			m = nil
			err = ErrBackendUnavailable("load prose model "+path, fmt.Errorf("%v", r))
		}
	}()
	return prose.ModelFromDisk(path), nil
}

func (b *proseBackend) Name() string { return b.name }

func (b *proseBackend) Analyze(ctx context.Context, text string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	if text == "" {
		return Document{}, nil
	}
	var opts []prose.DocOpt
	if b.model != nil {
		opts = append(opts, prose.UsingModel(b.model))
	}
	doc, err := prose.NewDocument(text, opts...)
	if err != nil {
		return Document{}, err
	}

	ptoks := doc.Tokens()
	texts := make([]string, len(ptoks))
	for i, t := range ptoks {
		texts[i] = t.Text
	}
	offsets := locate(text, texts)
	toks := make([]Token, len(ptoks))
	for i, t := range ptoks {
		toks[i] = Token{
			Text:  t.Text,
			POS:   UniversalPOS(t.Tag),
			Tag:   t.Tag,
			Start: offsets[i][0],
			End:   offsets[i][1],
		}
	}

	pents := doc.Entities()
	etexts := make([]string, len(pents))
	for i, e := range pents {
		etexts[i] = e.Text
	}
	eoffsets := locate(text, etexts)
	ents := make([]Span, len(pents))
	for i, e := range pents {
		ents[i] = Span{Text: e.Text, Label: e.Label, Start: eoffsets[i][0], End: eoffsets[i][1]}
	}

	return Document{
		Entities:   ents,
		Tokens:     toks,
		NounChunks: nounChunks(text, toks),
	}, nil
}

func (b *proseBackend) Close() error { return nil }
