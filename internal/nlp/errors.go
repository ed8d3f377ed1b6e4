package nlp

import (
	"errors"
	"fmt"
)

// backendUnavailableError signals that the model could not be loaded or
// reached. At startup it is fatal; during a request it maps to 500.
type backendUnavailableError struct {
	msg string
	err error
}

func (e backendUnavailableError) Error() string {
	if e.err != nil {
		return "backend unavailable: " + e.msg + ": " + e.err.Error()
	}
	return "backend unavailable: " + e.msg
}

func (e backendUnavailableError) Unwrap() error { return e.err }

// ErrBackendUnavailable constructs a backendUnavailableError.
func ErrBackendUnavailable(msg string, cause error) error {
	return backendUnavailableError{msg: msg, err: cause}
}

// IsBackendUnavailable reports whether err indicates a missing or failed backend.
func IsBackendUnavailable(err error) bool {
	var target backendUnavailableError
	return errors.As(err, &target)
}

// remoteStatusError is returned when the NLP sidecar answers with a non-2xx status.
type remoteStatusError struct {
	status int
	body   string
}

func (e remoteStatusError) Error() string {
	if e.body == "" {
		return fmt.Sprintf("nlp server returned status %d", e.status)
	}
	return fmt.Sprintf("nlp server returned status %d: %s", e.status, e.body)
}

// IsRemoteStatus reports whether err carries a non-2xx sidecar response and
// returns its status code.
func IsRemoteStatus(err error) (int, bool) {
	var target remoteStatusError
	if errors.As(err, &target) {
		return target.status, true
	}
	return 0, false
}
