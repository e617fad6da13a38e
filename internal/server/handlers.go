package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/matsen/citegraph/internal/paper"
	"github.com/matsen/citegraph/internal/resolve"
	"github.com/matsen/citegraph/internal/search"
	"github.com/matsen/citegraph/internal/source"
)

// errorResponse is the JSON body of every failed API call.
type errorResponse struct {
	Error    bool      `json:"error"`
	Message  string    `json:"message"`
	Code     int       `json:"code"`
	Failures []failure `json:"failures,omitempty"`
}

// failure describes why one source could not resolve the query.
type failure struct {
	Source  string      `json:"source"`
	Kind    source.Kind `json:"kind"`
	Message string      `json:"message"`
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	res, err := s.searcher.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		s.respondSearchError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, graphResponse{
		Result:   res,
		Elements: res.Graph.ToCytoscape(),
		Status:   search.StatusMessage(res, nil),
	})
}

func (s *Server) respondSearchError(w http.ResponseWriter, err error) {
	msg := search.StatusMessage(nil, err)

	var resErr *resolve.ResolutionError
	switch {
	case errors.Is(err, paper.ErrEmptyQuery):
		s.respondError(w, http.StatusBadRequest, msg, nil)
	case errors.As(err, &resErr):
		status := http.StatusBadGateway
		if resErr.AllNotFound() {
			status = http.StatusNotFound
		}
		failures := make([]failure, len(resErr.Failures))
		for i, f := range resErr.Failures {
			failures[i] = failure{Source: f.Source, Kind: f.Kind, Message: f.Error()}
		}
		s.respondError(w, status, msg, failures)
	default:
		s.logger.Error("unexpected search error", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, msg, nil)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"sources": s.sources,
	})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("Failed to encode response", zap.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string, failures []failure) {
	s.respondJSON(w, status, errorResponse{
		Error:    true,
		Message:  message,
		Code:     status,
		Failures: failures,
	})
}
