package lgtm

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrSelectionNotFound is returned when no project selection carries
	// the requested name.
	ErrSelectionNotFound = errors.New("project selection not found")

	// ErrProjectNotFound is returned when the site has no analyzed project
	// for the requested repository.
	ErrProjectNotFound = errors.New("project not found")
)

// RequestError represents a request the site rejected (an envelope with a
// non-success status, or a body that is not the expected JSON) or a request
// abandoned after exhausting transport retries.
type RequestError struct {
	// Body is the raw response body, when one was received. The site
	// reports failure detail only there, so it is kept verbatim.
	Body string
	Err  error
}

func (e *RequestError) Error() string {
	switch {
	case e.Err != nil && e.Body != "":
		return fmt.Sprintf("lgtm request failed: %v (response: %s)", e.Err, e.Body)
	case e.Err != nil:
		return fmt.Sprintf("lgtm request failed: %v", e.Err)
	default:
		return fmt.Sprintf("lgtm request failed with response: %s", e.Body)
	}
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// UnrecognizedShapeError represents a project record that matches neither
// known record shape. One bad record fails the whole batch; callers never
// see a partial result.
type UnrecognizedShapeError struct {
	Record json.RawMessage
}

func (e *UnrecognizedShapeError) Error() string {
	return fmt.Sprintf("unrecognized project record shape: %s", string(e.Record))
}
