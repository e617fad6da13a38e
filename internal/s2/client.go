package s2

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"golang.org/x/time/rate"

	"github.com/matsen/citegraph/internal/paper"
	"github.com/matsen/citegraph/internal/source"
)

const (
	// Name identifies this source in records, errors and logs.
	Name = "s2"

	// BaseURL is the Semantic Scholar API base URL.
	BaseURL = "https://api.semanticscholar.org"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// RateLimit is the shared unauthenticated allowance of 1 request per second.
	RateLimit = 1.0

	// PaperFields are the fields requested for a paper lookup, including the
	// first-class reference and citation lists.
	PaperFields = "paperId,title,year,authors,url," +
		"references.paperId,references.title,references.url," +
		"citations.paperId,citations.title,citations.url"

	// maxErrorBody caps how much of an error response is read.
	maxErrorBody = 4 << 10
)

// Client is a rate-limited HTTP client for the Semantic Scholar Graph API.
// It implements source.Adapter.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	apiKey     string
	baseURL    string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithAPIKey sets the API key for authenticated requests.
func WithAPIKey(key string) ClientOption {
	return func(c *Client) {
		if key != "" {
			c.apiKey = key
		}
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		if url != "" {
			c.baseURL = url
		}
	}
}

// WithRateLimit sets the request rate in requests per second.
// A non-positive value disables limiting.
func WithRateLimit(perSecond float64) ClientOption {
	return func(c *Client) {
		if perSecond <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
}

// NewClient creates a new Semantic Scholar client.
// S2_API_KEY from the environment is used unless WithAPIKey overrides it.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(RateLimit), 1),
		baseURL:    BaseURL,
	}

	if key := os.Getenv("S2_API_KEY"); key != "" {
		c.apiKey = key
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Name returns the source name.
func (c *Client) Name() string {
	return Name
}

// paperURL builds the lookup URL for a DOI. S2 takes the DOI with a "DOI:"
// prefix and literal slashes in the path.
func (c *Client) paperURL(id paper.Identifier) string {
	return fmt.Sprintf("%s/graph/v1/paper/DOI:%s?fields=%s", c.baseURL, id.PathEscape(), PaperFields)
}

// GetPaper fetches a paper with its references and citations.
// Errors are always *source.Error.
func (c *Client) GetPaper(ctx context.Context, id paper.Identifier) (*Paper, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, source.FromTransport(Name, fmt.Errorf("rate limiter: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.paperURL(id), nil)
	if err != nil {
		return nil, source.Errorf(Name, source.Unreachable, "creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, source.FromTransport(Name, err)
	}
	defer resp.Body.Close()

	if err := checkHTTPErrors(resp); err != nil {
		return nil, err
	}

	var p Paper
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, source.Errorf(Name, source.Malformed, "decoding paper: %w", err)
	}

	return &p, nil
}

// Resolve implements source.Adapter.
func (c *Client) Resolve(ctx context.Context, id paper.Identifier) (*paper.Record, error) {
	p, err := c.GetPaper(ctx, id)
	if err != nil {
		return nil, err
	}
	return MapPaper(p, id)
}

// checkHTTPErrors maps a non-2xx response to a source error.
// 404 is NotFound; everything else, including 429, is Unreachable.
func checkHTTPErrors(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	msg := readErrorMessage(resp.Body)
	if resp.StatusCode == http.StatusNotFound {
		if msg == "" {
			return source.NewError(Name, source.NotFound, nil)
		}
		return source.Errorf(Name, source.NotFound, "%s", msg)
	}
	if msg == "" {
		return source.Errorf(Name, source.Unreachable, "HTTP %d", resp.StatusCode)
	}
	return source.Errorf(Name, source.Unreachable, "HTTP %d: %s", resp.StatusCode, msg)
}

// readErrorMessage extracts the message from an S2 error body, if any.
func readErrorMessage(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, maxErrorBody))
	if err != nil || len(data) == 0 {
		return ""
	}
	var eb errorBody
	if err := json.Unmarshal(data, &eb); err != nil {
		return ""
	}
	return eb.text()
}
