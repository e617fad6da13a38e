// Package resolve tries bibliographic sources in priority order and returns
// the first record any of them produces.
package resolve

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/matsen/citegraph/internal/paper"
	"github.com/matsen/citegraph/internal/source"
)

// DefaultTimeout bounds each individual adapter call.
const DefaultTimeout = 15 * time.Second

// Resolver runs a fixed fallback chain of adapters.
// Adapters are called one at a time; a later adapter is only called after
// the previous one has returned an error.
type Resolver struct {
	adapters []source.Adapter
	timeout  time.Duration
	logger   *zap.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithTimeout sets the per-adapter timeout. Zero or negative disables it.
func WithTimeout(d time.Duration) Option {
	return func(r *Resolver) {
		r.timeout = d
	}
}

// WithLogger sets the logger used for per-adapter diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// New creates a Resolver that tries adapters in the given order.
func New(adapters []source.Adapter, opts ...Option) *Resolver {
	r := &Resolver{
		adapters: append([]source.Adapter(nil), adapters...),
		timeout:  DefaultTimeout,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Sources returns the adapter names in priority order.
func (r *Resolver) Sources() []string {
	names := make([]string, len(r.adapters))
	for i, a := range r.adapters {
		names[i] = a.Name()
	}
	return names
}

// Resolve returns the first successful record. If every adapter fails, the
// error is a *ResolutionError listing each failure in order. A record with
// no references or citations still counts as success; results from
// different sources are never merged.
func (r *Resolver) Resolve(ctx context.Context, id paper.Identifier) (*paper.Record, error) {
	failures := make([]*source.Error, 0, len(r.adapters))

	for _, a := range r.adapters {
		rec, err := r.call(ctx, a, id)
		if err == nil {
			if len(failures) > 0 {
				r.logger.Info("resolved via fallback source",
					zap.String("id", id.String()),
					zap.String("source", a.Name()),
					zap.Int("failed", len(failures)),
				)
			}
			return rec, nil
		}

		srcErr := source.Classify(a.Name(), err)
		failures = append(failures, srcErr)
		r.logger.Debug("source failed",
			zap.String("id", id.String()),
			zap.String("source", srcErr.Source),
			zap.Stringer("kind", srcErr.Kind),
			zap.Error(srcErr.Err),
		)
	}

	resErr := &ResolutionError{ID: id, Failures: failures}
	r.logger.Warn("all sources failed",
		zap.String("id", id.String()),
		zap.String("reasons", resErr.Summary()),
	)
	return nil, resErr
}

// call runs a single adapter under the per-call timeout. A record without a
// title breaks the adapter contract and is reported as Malformed.
func (r *Resolver) call(ctx context.Context, a source.Adapter, id paper.Identifier) (*paper.Record, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	rec, err := a.Resolve(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil || strings.TrimSpace(rec.Title) == "" {
		return nil, source.Errorf(a.Name(), source.Malformed, "record has no title")
	}
	if rec.Source == "" {
		rec.Source = a.Name()
	}
	return rec, nil
}
