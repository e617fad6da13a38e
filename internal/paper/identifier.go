package paper

import (
	"errors"
	"net/url"
	"strings"
)

// Identifier is a DOI in canonical form. Provider-specific prefixes and
// escaping are applied by each adapter, not here.
type Identifier string

// ErrEmptyQuery is matched by every EmptyQueryError via errors.Is.
var ErrEmptyQuery = errors.New("empty query")

// EmptyQueryError is returned when the input is empty after trimming.
// No provider is contacted in that case.
type EmptyQueryError struct {
	Raw string
}

func (e *EmptyQueryError) Error() string {
	return "please enter a DOI"
}

// Is makes errors.Is(err, ErrEmptyQuery) succeed.
func (e *EmptyQueryError) Is(target error) bool {
	return target == ErrEmptyQuery
}

// Resolver prefixes users commonly paste in front of a DOI. Matched
// case-insensitively, longest first.
var doiPrefixes = []string{
	"https://dx.doi.org/",
	"http://dx.doi.org/",
	"https://doi.org/",
	"http://doi.org/",
	"dx.doi.org/",
	"doi.org/",
	"doi:",
}

// Normalize turns raw user input into an Identifier.
// It trims whitespace and strips a leading resolver URL or "doi:" prefix.
// Returns *EmptyQueryError if nothing remains after trimming. If stripping a
// prefix would leave nothing, the trimmed input is returned as-is so a
// non-empty query never yields an empty identifier.
func Normalize(raw string) (Identifier, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", &EmptyQueryError{Raw: raw}
	}

	doi := trimmed
	lower := strings.ToLower(doi)
	for _, prefix := range doiPrefixes {
		if strings.HasPrefix(lower, prefix) {
			doi = strings.TrimSpace(doi[len(prefix):])
			break
		}
	}

	if doi == "" {
		return Identifier(trimmed), nil
	}
	return Identifier(doi), nil
}

// String returns the identifier as a plain string.
func (id Identifier) String() string {
	return string(id)
}

// PathEscape escapes each "/"-separated segment of the identifier for use in
// a URL path. Slashes and colons are left literal.
func (id Identifier) PathEscape() string {
	segments := strings.Split(string(id), "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}
