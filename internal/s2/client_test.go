package s2

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matsen/citegraph/internal/paper"
	"github.com/matsen/citegraph/internal/source"
)

func TestClient_ImplementsAdapter(t *testing.T) {
	var _ source.Adapter = (*Client)(nil)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(WithBaseURL(srv.URL), WithRateLimit(0), WithAPIKey("test-key"))
}

func TestClient_Resolve_Success(t *testing.T) {
	var gotPath, gotFields, gotKey string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotFields = r.URL.Query().Get("fields")
		gotKey = r.Header.Get("x-api-key")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"paperId": "abc123",
			"title": "Example Paper",
			"year": 1999,
			"url": "https://www.semanticscholar.org/paper/abc123",
			"authors": [{"authorId": "1", "name": "A. Author"}, {"name": " "}],
			"references": [
				{"paperId": "P1", "title": "Ref One"},
				{"paperId": null, "title": "Unmatched Ref"}
			],
			"citations": [
				{"paperId": "C1", "title": "Cite One", "url": "https://example.org/c1"}
			]
		}`))
	})

	rec, err := client.Resolve(context.Background(), paper.Identifier("10.1109/5.771073"))
	require.NoError(t, err)

	assert.Equal(t, "/graph/v1/paper/DOI:10.1109/5.771073", gotPath)
	assert.Equal(t, PaperFields, gotFields)
	assert.Equal(t, "test-key", gotKey)

	assert.Equal(t, "abc123", rec.ID)
	assert.Equal(t, "Example Paper", rec.Title)
	assert.Equal(t, 1999, rec.Year)
	assert.Equal(t, []string{"A. Author"}, rec.Authors)
	assert.Equal(t, Name, rec.Source)
	require.Len(t, rec.References, 2)
	assert.Equal(t, paper.Related{ID: "P1", Title: "Ref One"}, rec.References[0])
	assert.Equal(t, "", rec.References[1].ID)
	require.Len(t, rec.Citations, 1)
	assert.Equal(t, "https://example.org/c1", rec.Citations[0].URL)
}

func TestClient_Resolve_StatusMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantKind source.Kind
	}{
		{"not found", http.StatusNotFound, `{"error":"Paper with id DOI:x not found"}`, source.NotFound},
		{"not found without body", http.StatusNotFound, ``, source.NotFound},
		{"rate limited", http.StatusTooManyRequests, `{"message":"Too Many Requests"}`, source.Unreachable},
		{"server error", http.StatusInternalServerError, `oops`, source.Unreachable},
		{"forbidden", http.StatusForbidden, `{"message":"Forbidden"}`, source.Unreachable},
		{"bad gateway", http.StatusBadGateway, ``, source.Unreachable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			rec, err := client.Resolve(context.Background(), "10.1/x")
			require.Error(t, err)
			assert.Nil(t, rec)

			var srcErr *source.Error
			require.ErrorAs(t, err, &srcErr)
			assert.Equal(t, tt.wantKind, srcErr.Kind)
			assert.Equal(t, Name, srcErr.Source)
		})
	}
}

func TestClient_Resolve_NotFoundKeepsMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"Paper with id DOI:10.1/x not found"}`))
	})

	_, err := client.Resolve(context.Background(), "10.1/x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Paper with id DOI:10.1/x not found")
}

func TestClient_Resolve_Malformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"invalid JSON", `{"paperId": "abc"`},
		{"missing title", `{"paperId": "abc", "year": 2000}`},
		{"blank title", `{"paperId": "abc", "title": "   "}`},
		{"null title", `{"paperId": "abc", "title": null}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := client.Resolve(context.Background(), "10.1/x")
			assert.True(t, source.IsMalformed(err), "want Malformed, got %v", err)
		})
	}
}

func TestClient_Resolve_Timeout(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.Resolve(ctx, "10.1/x")
	require.Error(t, err)
	assert.True(t, source.IsUnreachable(err), "want Unreachable, got %v", err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestClient_Resolve_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	baseURL := srv.URL
	srv.Close()

	client := NewClient(WithBaseURL(baseURL), WithRateLimit(0))
	_, err := client.Resolve(context.Background(), "10.1/x")
	assert.True(t, source.IsUnreachable(err), "want Unreachable, got %v", err)
}

func TestMapPaper_FallsBackToDOIForID(t *testing.T) {
	rec, err := MapPaper(&Paper{Title: "T"}, "10.1/x")
	require.NoError(t, err)
	assert.Equal(t, "DOI:10.1/x", rec.ID)
	assert.NotNil(t, rec.References)
	assert.NotNil(t, rec.Citations)
}

func TestNewClient_Defaults(t *testing.T) {
	t.Setenv("S2_API_KEY", "env-key")

	c := NewClient()
	assert.Equal(t, BaseURL, c.baseURL)
	assert.Equal(t, "env-key", c.apiKey)
	assert.Equal(t, DefaultTimeout, c.httpClient.Timeout)

	c = NewClient(WithAPIKey("flag-key"), WithBaseURL(""))
	assert.Equal(t, "flag-key", c.apiKey)
	assert.Equal(t, BaseURL, c.baseURL, "empty base URL keeps default")
}
