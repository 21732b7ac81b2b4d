// Package fetch provides the HTTP plumbing used to talk to remote JSON APIs.
package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"time"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "PortfolioDrafter/1.0"

// maxBodyBytes caps how much of a response body is read into memory.
const maxBodyBytes = 4 << 20

// Result holds the raw response of a request. It is returned for every HTTP
// status; callers decide which statuses are errors.
type Result struct {
	URL         string
	StatusCode  int
	ContentType string
	Header      http.Header
	Body        []byte
}

// OK reports whether the status code is in the 2xx range.
func (r *Result) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Error represents a transport-level failure: the request never produced a
// readable response.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures the fetch behavior.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	Headers   map[string]string
	// Client overrides the HTTP client; Timeout is ignored when set.
	Client *http.Client
}

// DefaultOptions returns sensible defaults for fetching.
func DefaultOptions() *Options {
	return &Options{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// PostJSON marshals payload and POSTs it to urlStr as application/json.
func PostJSON(ctx context.Context, urlStr string, payload any, opts *Options) (*Result, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	safeURL := RedactURL(urlStr)

	parsedURL, err := url.Parse(urlStr)
	if err != nil || parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, &Error{URL: safeURL, Message: "invalid URL", Cause: redactError(err)}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &Error{URL: safeURL, Message: "failed to encode payload", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, urlStr, bytes.NewReader(body))
	if err != nil {
		return nil, &Error{URL: safeURL, Message: "failed to create request", Cause: redactError(err)}
	}

	req.Header.Set("Content-Type", "application/json")
	if opts.UserAgent != "" {
		req.Header.Set("User-Agent", opts.UserAgent)
	}
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}

	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &Error{URL: safeURL, Message: "HTTP request failed", Cause: redactError(err)}
	}
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &Error{URL: safeURL, Message: "failed to read response body", Cause: err}
	}

	return &Result{
		URL:         safeURL,
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Header:      resp.Header,
		Body:        bodyBytes,
	}, nil
}

// keyParam matches the key query parameter in URLs that fail to parse.
var keyParam = regexp.MustCompile(`([?&]key=)[^&#]*`)

// RedactURL hides the value of the "key" query parameter so API keys never
// reach logs or error messages.
func RedactURL(urlStr string) string {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return keyParam.ReplaceAllString(urlStr, "${1}REDACTED")
	}
	q := parsed.Query()
	if q.Get("key") == "" {
		return urlStr
	}
	q.Set("key", "REDACTED")
	parsed.RawQuery = q.Encode()
	return parsed.String()
}

// redactError strips the request URL from *url.Error, which net/http embeds verbatim.
func redactError(err error) error {
	if urlErr, ok := err.(*url.Error); ok {
		return &url.Error{Op: urlErr.Op, URL: RedactURL(urlErr.URL), Err: urlErr.Err}
	}
	return err
}
