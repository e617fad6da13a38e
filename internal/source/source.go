// Package source defines the contract every bibliographic provider adapter
// implements, and the typed failures they report.
package source

import (
	"context"

	"github.com/matsen/citegraph/internal/paper"
)

// Adapter wraps one external bibliographic API.
//
// Resolve returns a record with a non-empty title, or an error that is always
// a *Error. Adapters must not mutate shared state beyond their own rate
// limiter.
type Adapter interface {
	Name() string
	Resolve(ctx context.Context, id paper.Identifier) (*paper.Record, error)
}
