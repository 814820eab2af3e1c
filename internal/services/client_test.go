package services

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/desertthunder/explorer/internal/shared"
	tu "github.com/desertthunder/explorer/internal/testing"
	"golang.org/x/oauth2"
)

type failingSource struct{}

func (failingSource) Token() (*oauth2.Token, error) { return nil, shared.ErrNotAuthenticated }

func TestClient(t *testing.T) {
	t.Run("NewClient", func(t *testing.T) {
		t.Run("Trims Base URL", func(t *testing.T) {
			c := NewClient("http://example.com/", nil)
			if c.BaseURL() != "http://example.com" {
				t.Errorf("expected trimmed base URL, got %s", c.BaseURL())
			}
			if c.httpClient != http.DefaultClient {
				t.Error("expected http.DefaultClient to be used")
			}
		})

		t.Run("Rate Limit Disabled At Zero", func(t *testing.T) {
			if c := NewClient("http://x", nil, WithRateLimit(0)); c.limiter != nil {
				t.Error("expected no limiter for zero rps")
			}
			if c := NewClient("http://x", nil, WithRateLimit(5)); c.limiter == nil {
				t.Error("expected limiter for positive rps")
			}
		})
	})

	t.Run("GetJSON", func(t *testing.T) {
		t.Run("Merges Default Params", func(t *testing.T) {
			api := tu.NewFakeAPI(t, map[string]tu.Route{"/search/movie": {Body: map[string]int{"page": 1}}})
			c := NewClient(api.URL, nil, WithParams(url.Values{"api_key": {"k"}}))

			var out struct {
				Page int `json:"page"`
			}
			if err := c.GetJSON(context.Background(), "/search/movie", url.Values{"query": {"batman"}}, &out); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if out.Page != 1 {
				t.Errorf("expected decoded page 1, got %d", out.Page)
			}

			q := api.Requests()[0].URL.Query()
			if q.Get("api_key") != "k" || q.Get("query") != "batman" {
				t.Errorf("unexpected query %v", q)
			}
		})

		t.Run("Attaches Bearer Token", func(t *testing.T) {
			api := tu.NewFakeAPI(t, map[string]tu.Route{"/me": {Body: map[string]string{}}})
			c := NewClient(api.URL, nil, WithTokenSource(oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "tok"})))

			if err := c.GetJSON(context.Background(), "/me", nil, nil); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if got := api.Requests()[0].Header.Get("Authorization"); got != "Bearer tok" {
				t.Errorf("expected bearer header, got %q", got)
			}
		})

		t.Run("Token Failure Skips Request", func(t *testing.T) {
			api := tu.NewFakeAPI(t, map[string]tu.Route{"/me": {Body: map[string]string{}}})
			c := NewClient(api.URL, nil, WithTokenSource(failingSource{}))

			err := c.GetJSON(context.Background(), "/me", nil, nil)
			if !errors.Is(err, shared.ErrNotAuthenticated) {
				t.Errorf("expected ErrNotAuthenticated, got %v", err)
			}
			if n := len(api.Requests()); n != 0 {
				t.Errorf("expected no requests, got %d", n)
			}
		})

		t.Run("Status Errors", func(t *testing.T) {
			tc := []struct {
				name     string
				status   int
				body     string
				sentinel error
				message  string
			}{
				{"Unauthorized", 401, `{"error":{"status":401,"message":"The access token expired"}}`, shared.ErrUnauthorized, "The access token expired"},
				{"Not Found", 404, `{"status_message":"The resource you requested could not be found."}`, shared.ErrNotFound, "The resource you requested could not be found."},
				{"Server Error", 503, `oops`, shared.ErrServiceUnavailable, ""},
				{"Bad Request", 400, `{}`, shared.ErrAPIRequest, ""},
			}
			for _, tt := range tc {
				t.Run(tt.name, func(t *testing.T) {
					api := tu.NewFakeAPI(t, map[string]tu.Route{"/x": {Status: tt.status, Body: tt.body}})
					hits := 0
					c := NewClient(api.URL, nil, WithUnauthorized(func() { hits++ }))

					err := c.GetJSON(context.Background(), "/x", nil, nil)
					if !errors.Is(err, shared.ErrAPIRequest) || !errors.Is(err, tt.sentinel) {
						t.Fatalf("expected %v, got %v", tt.sentinel, err)
					}

					var httpErr *HTTPError
					if !errors.As(err, &httpErr) {
						t.Fatalf("expected *HTTPError, got %T", err)
					}
					if httpErr.StatusCode != tt.status || httpErr.Message != tt.message {
						t.Errorf("unexpected HTTPError %+v", httpErr)
					}

					wantHits := 0
					if tt.status == 401 {
						wantHits = 1
					}
					if hits != wantHits {
						t.Errorf("expected %d unauthorized hook calls, got %d", wantHits, hits)
					}
					if n := api.Count("/x"); n != 1 {
						t.Errorf("expected exactly one request without retry, got %d", n)
					}
				})
			}
		})

		t.Run("Failed HTTP Request", func(t *testing.T) {
			client := &http.Client{Transport: tu.NewMockRoundTripper(nil, errors.New("connection failed"))}
			c := NewClient("http://example.com", client)

			if err := c.GetJSON(context.Background(), "/x", nil, nil); !errors.Is(err, shared.ErrAPIRequest) {
				t.Errorf("expected ErrAPIRequest, got %v", err)
			}
		})

		t.Run("Failed Response Decode", func(t *testing.T) {
			client := &http.Client{Transport: tu.NewMockRoundTripper(&http.Response{
				StatusCode: http.StatusOK,
				Body:       &tu.FCloser{},
			}, nil)}
			c := NewClient("http://example.com", client)

			var out map[string]any
			if err := c.GetJSON(context.Background(), "/x", nil, &out); !errors.Is(err, shared.ErrAPIRequest) {
				t.Errorf("expected ErrAPIRequest, got %v", err)
			}
		})

		t.Run("Canceled Context With Limiter", func(t *testing.T) {
			client := &http.Client{Transport: tu.NewMockRoundTripper(tu.JSONResponse(200, `{}`), nil)}
			c := NewClient("http://example.com", client, WithRateLimit(1))

			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			if err := c.GetJSON(ctx, "/x", nil, nil); err == nil {
				t.Error("expected error for canceled context")
			}
		})
	})

	t.Run("Get", func(t *testing.T) {
		t.Run("JSON Response", func(t *testing.T) {
			api := tu.NewFakeAPI(t, map[string]tu.Route{"/movie/popular": {Body: map[string]int{"page": 2}}})
			c := NewClient(api.URL, nil, WithParams(url.Values{"api_key": {"k"}}))

			resp, err := c.Get(context.Background(), "/movie/popular?page=2")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if resp.StatusCode != http.StatusOK || !resp.IsJSON || resp.JSONData == nil {
				t.Errorf("unexpected response %+v", resp)
			}
			q := api.Requests()[0].URL.Query()
			if q.Get("page") != "2" || q.Get("api_key") != "k" {
				t.Errorf("expected path query and default params, got %v", q)
			}
		})

		t.Run("Non-JSON Error Is Returned Raw", func(t *testing.T) {
			client := &http.Client{Transport: tu.NewMockRoundTripper(tu.JSONResponse(401, "denied"), nil)}
			hits := 0
			c := NewClient("http://example.com", client, WithUnauthorized(func() { hits++ }))

			resp, err := c.Get(context.Background(), "me")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if resp.IsJSON {
				t.Error("expected non-JSON response")
			}
			if string(resp.Body) != "denied" {
				t.Errorf("expected raw body, got %s", resp.Body)
			}
			if hits != 1 {
				t.Errorf("expected unauthorized hook, got %d calls", hits)
			}
		})

		t.Run("Failed Response Body Read", func(t *testing.T) {
			client := &http.Client{Transport: tu.NewMockRoundTripper(&http.Response{
				StatusCode: http.StatusOK,
				Body:       &tu.FCloser{},
			}, nil)}
			c := NewClient("http://example.com", client)

			if _, err := c.Get(context.Background(), "/x"); err == nil {
				t.Error("expected error for failed body read")
			}
		})
	})
}
