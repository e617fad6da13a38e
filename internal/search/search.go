// Package search runs one DOI lookup end to end: normalize the query,
// resolve it through the source chain and build the citation graph.
package search

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/matsen/citegraph/internal/paper"
	"github.com/matsen/citegraph/internal/viz"
)

// Resolver turns an identifier into a record. *resolve.Resolver implements it.
type Resolver interface {
	Resolve(ctx context.Context, id paper.Identifier) (*paper.Record, error)
}

// Result is a successful search.
type Result struct {
	SearchID string           `json:"searchId"`
	Query    paper.Identifier `json:"query"`
	Record   *paper.Record    `json:"record"`
	Graph    *viz.Graph       `json:"graph"`
	Elapsed  time.Duration    `json:"-"`
}

// Searcher runs searches against a resolver.
type Searcher struct {
	resolver Resolver
	logger   *zap.Logger
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithLogger sets the logger. Each search logs with its own search_id field.
func WithLogger(l *zap.Logger) Option {
	return func(s *Searcher) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a Searcher.
func New(resolver Resolver, opts ...Option) *Searcher {
	s := &Searcher{resolver: resolver, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search normalizes raw, resolves it and builds the graph.
// The only errors returned are *paper.EmptyQueryError, before any source is
// contacted, and *resolve.ResolutionError.
func (s *Searcher) Search(ctx context.Context, raw string) (*Result, error) {
	searchID := uuid.NewString()
	log := s.logger.With(zap.String("search_id", searchID))

	id, err := paper.Normalize(raw)
	if err != nil {
		log.Debug("rejected query", zap.String("raw", raw))
		return nil, err
	}

	start := time.Now()
	log.Debug("search started", zap.String("id", id.String()))

	rec, err := s.resolver.Resolve(ctx, id)
	if err != nil {
		log.Info("search failed", zap.String("id", id.String()), zap.Error(err))
		return nil, err
	}

	graph := viz.Build(rec)
	elapsed := time.Since(start)
	log.Info("search completed",
		zap.String("id", id.String()),
		zap.String("source", rec.Source),
		zap.Int("nodes", len(graph.Nodes)),
		zap.Int("edges", len(graph.Edges)),
		zap.Duration("elapsed", elapsed),
	)

	return &Result{
		SearchID: searchID,
		Query:    id,
		Record:   rec,
		Graph:    graph,
		Elapsed:  elapsed,
	}, nil
}
