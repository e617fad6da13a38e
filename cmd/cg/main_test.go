package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/matsen/citegraph/internal/config"
	"github.com/matsen/citegraph/internal/paper"
	"github.com/matsen/citegraph/internal/pdf"
	"github.com/matsen/citegraph/internal/resolve"
	"github.com/matsen/citegraph/internal/search"
	"github.com/matsen/citegraph/internal/source"
)

func TestExitCodeFor(t *testing.T) {
	notFound := source.NewError("s2", source.NotFound, nil)
	unreachable := source.NewError("s2", source.Unreachable, nil)

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"empty query", &paper.EmptyQueryError{}, ExitEmptyQuery},
		{"no DOI in PDF", fmt.Errorf("scan: %w", pdf.ErrNoDOI), ExitEmptyQuery},
		{"all not found", &resolve.ResolutionError{Failures: []*source.Error{notFound, notFound}}, ExitNotFound},
		{"mixed", &resolve.ResolutionError{Failures: []*source.Error{unreachable, notFound}}, ExitUnreachable},
		{"no sources", &resolve.ResolutionError{}, ExitError},
		{"other", errors.New("boom"), ExitError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFailureResults(t *testing.T) {
	err := &resolve.ResolutionError{ID: "10.1/x", Failures: []*source.Error{
		source.NewError("s2", source.Unreachable, errors.New("timed out")),
		source.NewError("crossref", source.Malformed, nil),
	}}

	got := failureResults(err)
	if len(got) != 2 {
		t.Fatalf("got %d failures, want 2", len(got))
	}
	if got[0].Source != "s2" || got[0].Kind != source.Unreachable {
		t.Errorf("first failure = %+v", got[0])
	}
	if got[1].Message != "crossref: malformed" {
		t.Errorf("second message = %q", got[1].Message)
	}

	if failureResults(errors.New("other")) != nil {
		t.Error("expected nil for non-resolution error")
	}
}

func TestTruncateString(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is a long title", 10, "this is..."},
		{"abcdef", 3, "abc"},
		{"ééééé", 4, "é..."},
	}
	for _, tt := range tests {
		if got := truncateString(tt.in, tt.max); got != tt.want {
			t.Errorf("truncateString(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}

func TestSourcesFor(t *testing.T) {
	cfg := config.Default()

	tests := []struct {
		name    string
		want    []string
		wantErr bool
	}{
		{"", []string{"s2", "crossref"}, false},
		{"all", []string{"s2", "crossref"}, false},
		{"s2", []string{"s2"}, false},
		{"crossref", []string{"crossref"}, false},
		{"pubmed", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adapters, err := sourcesFor(cfg, tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("sourcesFor(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
			var names []string
			for _, a := range adapters {
				names = append(names, a.Name())
			}
			if strings.Join(names, ",") != strings.Join(tt.want, ",") {
				t.Errorf("sourcesFor(%q) = %v, want %v", tt.name, names, tt.want)
			}
		})
	}
}

// lineAdapter resolves every identifier to a record titled after it, except
// "10.1/missing".
type lineAdapter struct{}

func (lineAdapter) Name() string { return "fake" }

func (lineAdapter) Resolve(ctx context.Context, id paper.Identifier) (*paper.Record, error) {
	if id == "10.1/missing" {
		return nil, source.NewError("fake", source.NotFound, nil)
	}
	return &paper.Record{ID: id.String(), Title: "Paper " + id.String()}, nil
}

func TestShellLoop(t *testing.T) {
	humanOutput = false
	searcher := search.New(resolve.New([]source.Adapter{lineAdapter{}}))

	in := strings.NewReader("10.1/missing\nquit\n10.1/never\n")
	var out bytes.Buffer
	if err := runShellLoop(context.Background(), searcher, in, &out); err != nil {
		t.Fatalf("runShellLoop: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d output lines, want 1: %q", len(lines), out.String())
	}

	var got ShellOutcome
	if err := json.Unmarshal([]byte(lines[0]), &got); err != nil {
		t.Fatalf("invalid JSON line: %v", err)
	}
	if got.Token != 1 || got.Query != "10.1/missing" {
		t.Errorf("outcome = %+v", got)
	}
	if got.Error == nil || len(got.Error.Failures) != 1 {
		t.Errorf("expected one failure, got %+v", got.Error)
	}
	if !strings.HasPrefix(got.Status, "No paper found") {
		t.Errorf("status = %q", got.Status)
	}
}

func TestShellLoop_Human(t *testing.T) {
	humanOutput = true
	defer func() { humanOutput = false }()
	searcher := search.New(resolve.New([]source.Adapter{lineAdapter{}}))

	var out bytes.Buffer
	if err := runShellLoop(context.Background(), searcher, strings.NewReader("10.1/a\n"), &out); err != nil {
		t.Fatalf("runShellLoop: %v", err)
	}
	if !strings.Contains(out.String(), `[1] Loaded "Paper 10.1/a" from fake`) {
		t.Errorf("output = %q", out.String())
	}
}
