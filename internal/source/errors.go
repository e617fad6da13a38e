package source

import (
	"context"
	"errors"
	"fmt"
)

// Kind classifies why an adapter failed.
type Kind int

const (
	// NotFound means the provider was reached and reported no matching record.
	NotFound Kind = iota + 1
	// Unreachable covers transport failures, timeouts and non-success statuses.
	Unreachable
	// Malformed means the response parsed badly or lacked required fields.
	Malformed
)

func (k Kind) String() string {
	switch k {
	case NotFound:
		return "not_found"
	case Unreachable:
		return "unreachable"
	case Malformed:
		return "malformed"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// MarshalText lets Kind appear as its name in JSON output.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText parses a kind name written by MarshalText.
func (k *Kind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "not_found":
		*k = NotFound
	case "unreachable":
		*k = Unreachable
	case "malformed":
		*k = Malformed
	default:
		return fmt.Errorf("unknown source error kind %q", text)
	}
	return nil
}

// Sentinels matched by errors.Is against an *Error of the same kind.
var (
	ErrNotFound    = errors.New("not found")
	ErrUnreachable = errors.New("source unreachable")
	ErrMalformed   = errors.New("malformed response")
)

// Error is the failure of a single adapter call.
type Error struct {
	Source string // adapter name
	Kind   Kind
	Err    error // underlying cause, may be nil
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Source, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Source, e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel for the error's kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Kind == NotFound
	case ErrUnreachable:
		return e.Kind == Unreachable
	case ErrMalformed:
		return e.Kind == Malformed
	}
	return false
}

// NewError builds an *Error.
func NewError(src string, kind Kind, err error) *Error {
	return &Error{Source: src, Kind: kind, Err: err}
}

// Errorf builds an *Error with a formatted cause.
func Errorf(src string, kind Kind, format string, args ...any) *Error {
	return &Error{Source: src, Kind: kind, Err: fmt.Errorf(format, args...)}
}

// FromTransport classifies an error from http.Client.Do or the rate limiter.
// Deadline expiry and cancellation count as Unreachable, like any other
// transport failure.
func FromTransport(src string, err error) *Error {
	if errors.Is(err, context.DeadlineExceeded) {
		return Errorf(src, Unreachable, "timed out: %w", err)
	}
	return NewError(src, Unreachable, err)
}

// Classify returns err as an *Error, treating any other error as
// Unreachable for the given source.
func Classify(src string, err error) *Error {
	var srcErr *Error
	if errors.As(err, &srcErr) {
		return srcErr
	}
	return FromTransport(src, err)
}

// IsNotFound returns true if err is a NotFound source error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsUnreachable returns true if err is an Unreachable source error.
func IsUnreachable(err error) bool {
	return errors.Is(err, ErrUnreachable)
}

// IsMalformed returns true if err is a Malformed source error.
func IsMalformed(err error) bool {
	return errors.Is(err, ErrMalformed)
}
