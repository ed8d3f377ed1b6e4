package extract

import "errors"

// ExtractionError wraps any failure raised while invoking the model or
// mapping its output. Error returns the cause's message unchanged so it can
// be surfaced to callers as-is.
type ExtractionError struct {
	Backend  string
	Panicked bool
	Err      error
}

func (e *ExtractionError) Error() string { return e.Err.Error() }

func (e *ExtractionError) Unwrap() error { return e.Err }

// IsExtractionFailure reports whether err came from the extraction path.
func IsExtractionFailure(err error) bool {
	var target *ExtractionError
	return errors.As(err, &target)
}
