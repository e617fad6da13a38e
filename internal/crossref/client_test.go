package crossref

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

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...ClientOption) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	opts = append([]ClientOption{WithBaseURL(srv.URL), WithRateLimit(0)}, opts...)
	return NewClient(opts...)
}

const exampleWork = `{
	"status": "ok",
	"message-type": "work",
	"message": {
		"DOI": "10.1109/5.771073",
		"URL": "http://dx.doi.org/10.1109/5.771073",
		"title": ["Example Paper"],
		"author": [
			{"given": "Claude", "family": "Shannon"},
			{"name": "IEEE Working Group"},
			{"given": "Nobody"}
		],
		"published": {"date-parts": [[2001, 7]]},
		"issued": {"date-parts": [[1999]]}
	}
}`

func TestClient_Resolve_Success(t *testing.T) {
	var gotPath, gotMailto, gotUA string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMailto = r.URL.Query().Get("mailto")
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(exampleWork))
	}, WithMailto("lab@example.org"))

	rec, err := client.Resolve(context.Background(), paper.Identifier("10.1109/5.771073"))
	require.NoError(t, err)

	assert.Equal(t, "/works/10.1109/5.771073", gotPath)
	assert.Equal(t, "lab@example.org", gotMailto)
	assert.Equal(t, UserAgent, gotUA)

	assert.Equal(t, "10.1109/5.771073", rec.ID)
	assert.Equal(t, "Example Paper", rec.Title)
	assert.Equal(t, 2001, rec.Year)
	assert.Equal(t, []string{"Shannon", "IEEE Working Group"}, rec.Authors)
	assert.Equal(t, "http://dx.doi.org/10.1109/5.771073", rec.URL)
	assert.Equal(t, Name, rec.Source)
	assert.Empty(t, rec.References)
	assert.Empty(t, rec.Citations)
}

func TestClient_Resolve_NoMailto(t *testing.T) {
	t.Setenv("CROSSREF_MAILTO", "")

	var rawQuery string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		rawQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(exampleWork))
	})

	_, err := client.Resolve(context.Background(), "10.1109/5.771073")
	require.NoError(t, err)
	assert.Empty(t, rawQuery)
}

func TestClient_Resolve_StatusMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantKind source.Kind
	}{
		{"not found", http.StatusNotFound, "Resource not found.", source.NotFound},
		{"server error", http.StatusInternalServerError, "", source.Unreachable},
		{"rate limited", http.StatusTooManyRequests, "", source.Unreachable},
		{"service unavailable", http.StatusServiceUnavailable, "", source.Unreachable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := client.Resolve(context.Background(), "10.1/x")
			var srcErr *source.Error
			require.ErrorAs(t, err, &srcErr)
			assert.Equal(t, tt.wantKind, srcErr.Kind)
			assert.Equal(t, Name, srcErr.Source)
		})
	}
}

func TestClient_Resolve_Malformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"invalid JSON", `{"status": "ok", "message": `},
		{"no message", `{"status": "ok"}`},
		{"missing title", `{"status": "ok", "message": {"DOI": "10.1/x"}}`},
		{"empty title array", `{"status": "ok", "message": {"DOI": "10.1/x", "title": []}}`},
		{"blank title", `{"status": "ok", "message": {"DOI": "10.1/x", "title": ["  "]}}`},
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
	assert.True(t, source.IsUnreachable(err), "want Unreachable, got %v", err)
}

func TestMapWork(t *testing.T) {
	year := func(y int) *int { return &y }

	tests := []struct {
		name      string
		msg       Message
		wantID    string
		wantYear  int
		wantTitle string
	}{
		{
			name:      "published year",
			msg:       Message{DOI: "10.1/a", Title: []string{"A"}, Published: &Date{DateParts: [][]*int{{year(2001), year(5)}}}},
			wantID:    "10.1/a",
			wantYear:  2001,
			wantTitle: "A",
		},
		{
			name:      "falls back to issued",
			msg:       Message{DOI: "10.1/b", Title: []string{"B"}, Issued: &Date{DateParts: [][]*int{{year(1987)}}}},
			wantID:    "10.1/b",
			wantYear:  1987,
			wantTitle: "B",
		},
		{
			name:      "null year",
			msg:       Message{DOI: "10.1/c", Title: []string{"C"}, Published: &Date{DateParts: [][]*int{{nil}}}},
			wantID:    "10.1/c",
			wantYear:  0,
			wantTitle: "C",
		},
		{
			name:      "missing DOI uses identifier",
			msg:       Message{Title: []string{"", "Second\n  Title"}},
			wantID:    "10.1/input",
			wantYear:  0,
			wantTitle: "Second Title",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := MapWork(&tt.msg, "10.1/input")
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, rec.ID)
			assert.Equal(t, tt.wantYear, rec.Year)
			assert.Equal(t, tt.wantTitle, rec.Title)
		})
	}
}
