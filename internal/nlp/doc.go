// Package nlp defines the narrow contract between entityd and the language
// model that does the actual linguistic work, plus the concrete backends.
//
//   - backend.go: Backend interface and the Document/Span/Token shapes.
//   - errors.go: typed errors (IsBackendUnavailable, IsRemoteStatus).
//   - open.go: Open selects and initializes a backend from Options.
//   - prose.go: in-process backend over github.com/jdkato/prose/v2.
//   - remote.go: HTTP client for an NLP sidecar (e.g. a spaCy server).
//   - postag.go, align.go, chunker.go: helpers used by the prose backend to
//     produce Universal POS tags, byte offsets and noun chunks.
//
// Backends are initialized once at startup and then treated as read-only;
// Analyze must be safe for concurrent use.
package nlp
