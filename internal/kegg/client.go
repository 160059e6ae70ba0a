package kegg

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rshade/pathscribe/internal/logging"
)

// DefaultBaseURL is the public KEGG REST endpoint.
const DefaultBaseURL = "https://rest.kegg.jp"

// MaxIDsPerRequest is the KEGG REST service's hard ceiling on ids per
// get call. Exceeding it is a caller bug, not a transient condition.
const MaxIDsPerRequest = 10

const defaultHTTPTimeout = 30 * time.Second

// Client errors.
var (
	ErrNoIDs       = errors.New("kegg: no ids to query")
	ErrTooManyIDs  = fmt.Errorf("kegg: at most %d ids per request", MaxIDsPerRequest)
	ErrServerError = errors.New("kegg: server error")
)

// Client queries the KEGG REST API. The zero value is not usable; use
// NewClient.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the KEGG endpoint, used by tests to point the
// client at a local server.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a KEGG REST client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get fetches the entries for up to MaxIDsPerRequest ids in one call.
// Unknown ids are silently omitted from the result: KEGG answers 404
// when none of the ids exist, which is an empty result here, not an
// error. Network failures, 5xx responses, and malformed bodies are
// returned as errors for the caller's retry policy.
func (c *Client) Get(ctx context.Context, ids []string) ([]Entry, error) {
	if len(ids) == 0 {
		return nil, ErrNoIDs
	}
	if len(ids) > MaxIDsPerRequest {
		return nil, fmt.Errorf("%w: got %d", ErrTooManyIDs, len(ids))
	}

	log := logging.FromContext(ctx)

	endpoint := c.baseURL + "/get/" + url.PathEscape(strings.Join(ids, "+"))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("kegg: building request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("kegg: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		// None of the requested ids exist.
		log.Debug().
			Ctx(ctx).
			Str("component", "kegg").
			Int("id_count", len(ids)).
			Msg("no entries found for requested ids")
		return nil, nil
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: status %d", ErrServerError, resp.StatusCode)
	}

	entries, err := ParseFlatFile(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("kegg: parsing response: %w", err)
	}

	log.Debug().
		Ctx(ctx).
		Str("component", "kegg").
		Int("id_count", len(ids)).
		Int("entry_count", len(entries)).
		Msg("batched get complete")

	return entries, nil
}
