package search

import (
	"context"
	"sync"
)

// Outcome is what a Session delivers for a finished search.
// Exactly one of Result and Err is set.
type Outcome struct {
	Token  uint64
	Query  string
	Result *Result
	Err    error
}

// Session runs searches concurrently but only delivers the outcome of the
// most recently submitted one. Older searches still run to completion; their
// outcomes are counted and dropped.
type Session struct {
	searcher *Searcher
	deliver  func(Outcome)

	mu        sync.Mutex
	current   uint64
	discarded int
	wg        sync.WaitGroup
}

// NewSession creates a session that hands current outcomes to deliver.
// deliver runs with the session lock held, so it must not call Submit.
func NewSession(searcher *Searcher, deliver func(Outcome)) *Session {
	return &Session{searcher: searcher, deliver: deliver}
}

// Submit starts a search for raw and returns its token. Tokens increase
// monotonically; once Submit returns N, no outcome with a token below N will
// be delivered.
func (s *Session) Submit(ctx context.Context, raw string) uint64 {
	s.mu.Lock()
	s.current++
	token := s.current
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		res, err := s.searcher.Search(ctx, raw)
		s.finish(Outcome{Token: token, Query: raw, Result: res, Err: err})
	}()

	return token
}

func (s *Session) finish(o Outcome) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if o.Token != s.current {
		s.discarded++
		return
	}
	if s.deliver != nil {
		s.deliver(o)
	}
}

// Current returns the token of the latest submitted search, or 0 if none.
func (s *Session) Current() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Discarded returns how many outcomes were dropped as stale.
func (s *Session) Discarded() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.discarded
}

// Wait blocks until every submitted search has finished.
func (s *Session) Wait() {
	s.wg.Wait()
}
