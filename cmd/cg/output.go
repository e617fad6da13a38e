package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/matsen/citegraph/internal/paper"
	"github.com/matsen/citegraph/internal/pdf"
	"github.com/matsen/citegraph/internal/resolve"
	"github.com/matsen/citegraph/internal/search"
	"github.com/matsen/citegraph/internal/source"
)

// Constants for output formatting.
const (
	TitleMaxLen     = 70 // Title truncation in human summaries
	RelatedMaxShown = 20 // Related papers listed per section in human output
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputHuman writes a human-readable string to stdout.
func outputHuman(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// exitWithSearchError reports a failed search and exits with its exit code.
func exitWithSearchError(err error) {
	msg := search.StatusMessage(nil, err)
	code := exitCodeFor(err)

	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg, Failures: failureResults(err)})
	}
	os.Exit(code)
}

// exitCodeFor maps a pipeline error to an exit code.
func exitCodeFor(err error) int {
	var resErr *resolve.ResolutionError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, paper.ErrEmptyQuery), errors.Is(err, pdf.ErrNoDOI):
		return ExitEmptyQuery
	case errors.As(err, &resErr) && resErr.AllNotFound():
		return ExitNotFound
	case errors.As(err, &resErr) && len(resErr.Failures) > 0:
		return ExitUnreachable
	default:
		return ExitError
	}
}

func failureResults(err error) []FailureResult {
	var resErr *resolve.ResolutionError
	if !errors.As(err, &resErr) {
		return nil
	}
	out := make([]FailureResult, len(resErr.Failures))
	for i, f := range resErr.Failures {
		out[i] = FailureResult{Source: f.Source, Kind: f.Kind, Message: f.Error()}
	}
	return out
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error    string          `json:"error"`
	Failures []FailureResult `json:"failures,omitempty"`
}

// FailureResult is why one source could not resolve the query.
type FailureResult struct {
	Source  string      `json:"source"`
	Kind    source.Kind `json:"kind"`
	Message string      `json:"message"`
}

// truncateString truncates a string to maxLen runes, adding "..." if truncated.
func truncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
