// Package client talks to the Everybody Codes API and CDN. It owns
// cookie sourcing, transient-failure retries and per-process
// memoization; the content pipeline in internal/quest never performs
// I/O itself.
package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	gocache "github.com/patrickmn/go-cache"

	"github.com/ectools/eccli/pkg/logtrace"
)

const (
	defaultBaseURL = "https://everybody.codes"
	defaultCDNURL  = "https://everybody-codes.b-cdn.net"
	defaultTimeout = 30 * time.Second
	userAgent      = "eccli/1.0"

	cookieName = "everybody-codes"

	memoTTL       = 5 * time.Minute
	maxGetRetries = 3
)

// Options configures a Client. Zero values fall back to the production
// endpoints and a 30s timeout.
type Options struct {
	BaseURL string
	CDNURL  string
	Cookie  string
	Timeout time.Duration
}

// Client handles Everybody Codes API interactions.
type Client struct {
	baseURL    string
	cdnURL     string
	cookie     string
	httpClient *http.Client
	memo       *gocache.Cache
}

// New creates a client. The cookie must already be resolved (see
// LoadCookie); endpoints default to the public service.
func New(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	if opts.CDNURL == "" {
		opts.CDNURL = defaultCDNURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		cdnURL:  strings.TrimRight(opts.CDNURL, "/"),
		cookie:  opts.Cookie,
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
		memo: gocache.New(memoTTL, 2*memoTTL),
	}
}

func (c *Client) cookieHeader() string {
	return cookieName + "=" + c.cookie
}

// get fetches url, retrying network failures and 5xx responses with
// exponential backoff. 4xx responses are returned immediately.
func (c *Client) get(ctx context.Context, url string, authenticated bool) ([]byte, error) {
	var body []byte

	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("User-Agent", userAgent)
		if authenticated {
			req.Header.Set("Cookie", c.cookieHeader())
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err // retryable: connection trouble
		}
		defer resp.Body.Close()

		b, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		if resp.StatusCode >= http.StatusInternalServerError {
			return &StatusError{Status: resp.StatusCode, Body: snippet(b)}
		}
		if resp.StatusCode != http.StatusOK {
			return backoff.Permanent(&StatusError{Status: resp.StatusCode, Body: snippet(b)})
		}
		body = b
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxGetRetries), ctx)
	if err := backoff.Retry(op, policy); err != nil {
		return nil, err
	}
	return body, nil
}

// snippet keeps error messages readable when the server returns a page
// of HTML instead of the expected JSON.
func snippet(body []byte) string {
	const max = 200
	s := strings.TrimSpace(string(body))
	if len(s) > max {
		s = s[:max] + "..."
	}
	return s
}

func (c *Client) apiURL(format string, args ...interface{}) string {
	return c.baseURL + fmt.Sprintf(format, args...)
}

func (c *Client) cdnAssetURL(format string, args ...interface{}) string {
	return c.cdnURL + fmt.Sprintf(format, args...)
}

func logFields(method string, extra logtrace.Fields) logtrace.Fields {
	return logtrace.WithFields(logtrace.Fields{
		logtrace.FieldModule: "client",
		logtrace.FieldMethod: method,
	}, extra)
}
