package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidTransition marks stage actions that would violate the
	// monotonic-approval invariant.
	ErrInvalidTransition = errors.New("invalid transition")
	// ErrEmptyRequest marks a summarization cycle invoked with neither
	// source text nor a correction.
	ErrEmptyRequest = errors.New("empty request")
	// ErrEmptyCompletion marks a completion call that returned no content.
	ErrEmptyCompletion = errors.New("empty completion")
	// ErrCompletionFailed marks external completion-service failures
	// (timeouts, malformed responses, rate limits).
	ErrCompletionFailed = errors.New("completion failed")
	// ErrMissingSummary marks an export attempt without a stage 3 summary.
	ErrMissingSummary = errors.New("missing summary")
	// ErrMissingFolder marks an export attempt whose source folder is gone.
	ErrMissingFolder = errors.New("missing folder")
	// ErrNoTextFound marks extraction runs that produced no usable text.
	ErrNoTextFound = errors.New("no text found")
	// ErrNotFound marks lookups for documents that do not exist.
	ErrNotFound = errors.New("not found")
)

// Wrap builds an error message that includes workflow context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrCompletionFailed
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}

// Kind returns a stable string label for a classified error so callers can
// render a specific, actionable message. Unclassified errors report "internal".
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, ErrEmptyRequest):
		return "empty_request"
	case errors.Is(err, ErrEmptyCompletion):
		return "empty_completion"
	case errors.Is(err, ErrCompletionFailed):
		return "completion_failed"
	case errors.Is(err, ErrMissingSummary):
		return "missing_summary"
	case errors.Is(err, ErrMissingFolder):
		return "missing_folder"
	case errors.Is(err, ErrNoTextFound):
		return "no_text_found"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	default:
		return "internal"
	}
}
