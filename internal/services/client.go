// HTTP transport shared by the catalog and streaming services
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/explorer/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

// HTTPError is a non-2xx response from a remote API.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("status %d", e.StatusCode)
	}
	return fmt.Sprintf("status %d: %s", e.StatusCode, e.Message)
}

// Unwrap maps well-known statuses onto the shared sentinels.
func (e *HTTPError) Unwrap() error {
	switch {
	case e.StatusCode == http.StatusUnauthorized:
		return shared.ErrUnauthorized
	case e.StatusCode == http.StatusNotFound:
		return shared.ErrNotFound
	case e.StatusCode >= 500:
		return shared.ErrServiceUnavailable
	}
	return nil
}

// APIResponse represents a raw API response with status and body.
type APIResponse struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	IsJSON     bool
	JSONData   any
}

// ClientOption configures a [Client].
type ClientOption func(*Client)

// WithParams adds query parameters sent with every request (e.g. an api key).
func WithParams(params url.Values) ClientOption {
	return func(c *Client) {
		for k, vs := range params {
			for _, v := range vs {
				c.params.Add(k, v)
			}
		}
	}
}

// WithTokenSource attaches a bearer token from ts to every request.
func WithTokenSource(ts oauth2.TokenSource) ClientOption {
	return func(c *Client) { c.tokens = ts }
}

// WithRateLimit paces outgoing requests to rps per second. Zero disables pacing.
func WithRateLimit(rps float64) ClientOption {
	return func(c *Client) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

// WithUnauthorized registers a hook run when the API answers 401.
func WithUnauthorized(fn func()) ClientOption {
	return func(c *Client) { c.onUnauthorized = fn }
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(l *log.Logger) ClientOption {
	return func(c *Client) { c.logger = l }
}

// Client issues GET requests against a fixed base URL.
//
// Each call is a single request: there is no retry, backoff or caching.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	params         url.Values
	tokens         oauth2.TokenSource
	limiter        *rate.Limiter
	onUnauthorized func()
	logger         *log.Logger
}

// NewClient creates a client for baseURL. A nil httpClient uses [http.DefaultClient].
func NewClient(baseURL string, httpClient *http.Client, opts ...ClientOption) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		params:     url.Values{},
		logger:     log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the base URL requests are resolved against.
func (c *Client) BaseURL() string { return c.baseURL }

// GetJSON performs a GET for path with query and decodes the JSON body into out.
func (c *Client) GetJSON(ctx context.Context, path string, query url.Values, out any) error {
	resp, err := c.do(ctx, path, query)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return c.statusError(resp.StatusCode, body)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %w", shared.ErrAPIRequest, err)
	}
	return nil
}

// Get performs a GET request to path and returns the raw response whatever its status.
//
// path may carry its own query string.
func (c *Client) Get(ctx context.Context, path string) (*APIResponse, error) {
	resp, err := c.do(ctx, path, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %w", shared.ErrAPIRequest, err)
	}

	if resp.StatusCode == http.StatusUnauthorized && c.onUnauthorized != nil {
		c.onUnauthorized()
	}

	apiResp := &APIResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       body,
	}

	var jsonData any
	if err := json.Unmarshal(body, &jsonData); err == nil {
		apiResp.IsJSON = true
		apiResp.JSONData = jsonData
	}

	return apiResp, nil
}

func (c *Client) do(ctx context.Context, path string, query url.Values) (*http.Response, error) {
	fullURL, err := c.resolve(path, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrInvalidInput, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	if c.tokens != nil {
		token, err := c.tokens.Token()
		if err != nil {
			return nil, err
		}
		token.SetAuthHeader(req)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: %w", shared.ErrAPIRequest, err)
		}
	}

	c.logger.Debug("request", "method", req.Method, "path", req.URL.Path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: request failed: %w", shared.ErrAPIRequest, err)
	}
	return resp, nil
}

func (c *Client) resolve(path string, query url.Values) (string, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return "", fmt.Errorf("invalid path %q: %w", path, err)
	}

	q := u.Query()
	for k, vs := range query {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	for k, vs := range c.params {
		if !q.Has(k) {
			q[k] = vs
		}
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (c *Client) statusError(status int, body []byte) error {
	httpErr := &HTTPError{StatusCode: status, Message: errorMessage(body)}
	c.logger.Warn("api error", "status", status, "message", httpErr.Message)

	if status == http.StatusUnauthorized && c.onUnauthorized != nil {
		c.onUnauthorized()
	}
	return fmt.Errorf("%w: %w", shared.ErrAPIRequest, httpErr)
}

// errorMessage pulls a human-readable message out of either API's error envelope.
func errorMessage(body []byte) string {
	var envelope struct {
		StatusMessage string `json:"status_message"`
		Error         struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}
	if envelope.StatusMessage != "" {
		return envelope.StatusMessage
	}
	return envelope.Error.Message
}
