package crossref

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/matsen/citegraph/internal/paper"
	"github.com/matsen/citegraph/internal/source"
)

const (
	// Name identifies this source in records, errors and logs.
	Name = "crossref"

	// BaseURL is the Crossref REST API base URL.
	BaseURL = "https://api.crossref.org"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// RateLimit stays well under the public pool allowance.
	RateLimit = 5.0

	// UserAgent identifies the client to Crossref.
	UserAgent = "citegraph (https://github.com/matsen/citegraph)"

	maxErrorBody = 4 << 10
)

// Client is a rate-limited HTTP client for the Crossref works endpoint.
// It implements source.Adapter.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
	mailto     string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithMailto sets the contact address sent with requests, which routes them
// to Crossref's polite pool.
func WithMailto(email string) ClientOption {
	return func(c *Client) {
		if email != "" {
			c.mailto = email
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
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		if u != "" {
			c.baseURL = u
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

// NewClient creates a new Crossref client.
// CROSSREF_MAILTO from the environment is used unless WithMailto overrides it.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(RateLimit), 1),
		baseURL:    BaseURL,
		mailto:     os.Getenv("CROSSREF_MAILTO"),
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

// workURL builds the lookup URL. Crossref takes the bare DOI in the path.
func (c *Client) workURL(id paper.Identifier) string {
	u := fmt.Sprintf("%s/works/%s", c.baseURL, id.PathEscape())
	if c.mailto != "" {
		u += "?mailto=" + url.QueryEscape(c.mailto)
	}
	return u
}

// GetWork fetches the work message for a DOI.
// Errors are always *source.Error.
func (c *Client) GetWork(ctx context.Context, id paper.Identifier) (*Message, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, source.FromTransport(Name, fmt.Errorf("rate limiter: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.workURL(id), nil)
	if err != nil {
		return nil, source.Errorf(Name, source.Unreachable, "creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, source.FromTransport(Name, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		// Crossref answers unknown DOIs with a plain "Resource not found."
		return nil, source.Errorf(Name, source.NotFound, "%s", readErrorText(resp.Body))
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, source.Errorf(Name, source.Unreachable, "HTTP %d", resp.StatusCode)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, source.Errorf(Name, source.Malformed, "decoding work: %w", err)
	}
	if env.Message == nil {
		return nil, source.Errorf(Name, source.Malformed, "response has no message")
	}

	return env.Message, nil
}

// Resolve implements source.Adapter.
func (c *Client) Resolve(ctx context.Context, id paper.Identifier) (*paper.Record, error) {
	msg, err := c.GetWork(ctx, id)
	if err != nil {
		return nil, err
	}
	return MapWork(msg, id)
}

func readErrorText(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, maxErrorBody))
	if err != nil {
		return "resource not found"
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return "resource not found"
	}
	return text
}
