package resolve

import (
	"fmt"
	"strings"

	"github.com/matsen/citegraph/internal/paper"
	"github.com/matsen/citegraph/internal/source"
)

// ResolutionError is returned when every configured source failed.
type ResolutionError struct {
	ID       paper.Identifier
	Failures []*source.Error // one per adapter, in the order tried
}

func (e *ResolutionError) Error() string {
	if len(e.Failures) == 0 {
		return fmt.Sprintf("could not resolve %s: no sources configured", e.ID)
	}
	return fmt.Sprintf("could not resolve %s: %s", e.ID, e.Summary())
}

// Summary lists each source and why it failed, e.g.
// "s2: unreachable; crossref: not_found".
func (e *ResolutionError) Summary() string {
	parts := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		parts[i] = f.Source + ": " + f.Kind.String()
	}
	return strings.Join(parts, "; ")
}

// Unwrap exposes the individual failures to errors.Is and errors.As.
func (e *ResolutionError) Unwrap() []error {
	errs := make([]error, len(e.Failures))
	for i, f := range e.Failures {
		errs[i] = f
	}
	return errs
}

// Kinds returns the failure kinds in the order the sources were tried.
func (e *ResolutionError) Kinds() []source.Kind {
	kinds := make([]source.Kind, len(e.Failures))
	for i, f := range e.Failures {
		kinds[i] = f.Kind
	}
	return kinds
}

// AllNotFound reports whether every source definitively had no record.
func (e *ResolutionError) AllNotFound() bool {
	if len(e.Failures) == 0 {
		return false
	}
	for _, f := range e.Failures {
		if f.Kind != source.NotFound {
			return false
		}
	}
	return true
}
