// Package client is a typed REST client for the membership service.
//
// Every request carries the session's bearer token. A 401 on any
// authenticated call clears the session, runs the OnUnauthorized hook and
// returns ErrUnauthorized, so callers only need to handle it once.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

var ErrUnauthorized = errors.New("session expired or not signed in")

// APIError is a non-2xx answer other than an authenticated 401.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// Message returns the server's message for err, or fallback when err is
// not an APIError.
func Message(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

type Options struct {
	BaseURL string
	Session Session
	Timeout time.Duration
	// OnUnauthorized runs after the session has been cleared.
	OnUnauthorized func()
}

type Client struct {
	rc             *resty.Client
	session        Session
	onUnauthorized func()
}

type anonymousKey struct{}

// anonymous marks a request that must not carry the bearer token.
func anonymous(ctx context.Context) context.Context {
	return context.WithValue(ctx, anonymousKey{}, true)
}

func isAnonymous(ctx context.Context) bool {
	v, _ := ctx.Value(anonymousKey{}).(bool)
	return v
}

func New(opt Options) *Client {
	if opt.Session == nil {
		opt.Session = NewMemorySession()
	}
	if opt.Timeout <= 0 {
		opt.Timeout = 30 * time.Second
	}
	c := &Client{session: opt.Session, onUnauthorized: opt.OnUnauthorized}

	c.rc = resty.New().
		SetBaseURL(strings.TrimRight(opt.BaseURL, "/")).
		SetTimeout(opt.Timeout).
		SetHeader("Accept", "application/json")

	c.rc.OnBeforeRequest(func(_ *resty.Client, r *resty.Request) error {
		if isAnonymous(r.Context()) {
			return nil
		}
		if tok := c.session.Token(); tok != "" {
			r.SetHeader("Authorization", "Bearer "+tok)
		}
		return nil
	})
	return c
}

func (c *Client) Session() Session { return c.session }

// FileURL turns a stored document path such as /uploads/... into the URL the
// service serves it from.
func (c *Client) FileURL(p string) string {
	if p == "" || strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://") {
		return p
	}
	return c.rc.BaseURL + "/api/" + strings.TrimLeft(p, "/")
}

// do executes r and applies the shared response handling.
func (c *Client) do(ctx context.Context, r *resty.Request, method, path string, out any) (*resty.Response, error) {
	r.SetContext(ctx)
	if out != nil {
		r.SetResult(out)
	}
	resp, err := r.Execute(method, path)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	if resp.StatusCode() == http.StatusUnauthorized && !isAnonymous(ctx) {
		c.unauthorized(ctx)
		return resp, ErrUnauthorized
	}
	if resp.IsError() {
		return resp, decodeAPIError(resp)
	}
	return resp, nil
}

func (c *Client) unauthorized(ctx context.Context) {
	if err := c.session.Clear(); err != nil {
		slog.WarnContext(ctx, "clear session failed", "err", err)
	}
	if c.onUnauthorized != nil {
		c.onUnauthorized()
	}
}

func decodeAPIError(resp *resty.Response) error {
	e := &APIError{StatusCode: resp.StatusCode()}
	var body struct {
		Error  string          `json:"error"`
		Detail json.RawMessage `json:"detail"`
	}
	if json.Unmarshal(resp.Body(), &body) == nil {
		e.Message = body.Error
		if e.Message == "" && len(body.Detail) > 0 {
			var s string
			if json.Unmarshal(body.Detail, &s) == nil {
				e.Message = s
			}
		}
	}
	if e.Message == "" {
		e.Message = http.StatusText(resp.StatusCode())
	}
	return e
}
