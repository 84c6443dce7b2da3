// Package client is the typed REST client for the Cashew Corner backend.
// A Client is constructed explicitly and hands out one resource client per
// entity; all of them share its transport, authorizer and error handling.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/example/cashew-corner/internal/logging"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	DefaultTimeout = 15 * time.Second

	// RequestIDHeader carries a per-request id for correlating with backend logs
	RequestIDHeader = "X-Request-ID"
)

// Authorizer decorates outgoing requests with credentials
type Authorizer interface {
	Authorize(req *http.Request)
}

// AuthorizerFunc adapts a function to Authorizer
type AuthorizerFunc func(req *http.Request)

func (f AuthorizerFunc) Authorize(req *http.Request) { f(req) }

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

func WithAuthorizer(a Authorizer) Option {
	return func(c *Client) { c.auth = a }
}

// WithUnauthorizedHandler registers fn to run whenever the backend answers 401
func WithUnauthorizedHandler(fn func()) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

func WithLogger(logger logrus.FieldLogger) Option {
	return func(c *Client) { c.log = logging.Component(logger, "HTTPClient") }
}

type Client struct {
	baseURL        string
	http           *http.Client
	auth           Authorizer
	onUnauthorized func()
	log            *logrus.Entry
}

// New creates a client for the API rooted at baseURL, e.g. "http://localhost:8080/api"
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
		log:     logging.Component(logging.Discard(), "HTTPClient"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// SetAuthorizer replaces the authorizer; used when the session manager is
// built after the client it authorizes for.
func (c *Client) SetAuthorizer(a Authorizer) {
	c.auth = a
}

// SetUnauthorizedHandler replaces the 401 hook
func (c *Client) SetUnauthorizedHandler(fn func()) {
	c.onUnauthorized = fn
}

// Raw performs a request and returns the undecoded success body
func (c *Client) Raw(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	return c.send(ctx, method, path, query, body, nil, nil)
}

// sendWithHeader sets one header after the authorizer has run
func (c *Client) sendWithHeader(ctx context.Context, method, path, key, value string, body any) ([]byte, error) {
	h := http.Header{}
	h.Set(key, value)
	return c.send(ctx, method, path, nil, body, nil, h)
}

// do sends body as JSON and decodes a successful response into out when out is non-nil
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	_, err := c.send(ctx, method, path, query, body, out, nil)
	return err
}

func (c *Client) send(ctx context.Context, method, path string, query url.Values, body, out any, header http.Header) ([]byte, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint = endpoint + "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	reqID := uuid.NewString()
	req.Header.Set(RequestIDHeader, reqID)
	if c.auth != nil {
		c.auth.Authorize(req)
	}
	for k, v := range header {
		req.Header[k] = v
	}

	log := c.log.WithFields(logrus.Fields{"method": method, "path": path, "request_id": reqID})
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		log.WithError(err).Debug("request failed")
		return nil, &APIError{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{Method: method, Path: path, StatusCode: resp.StatusCode, Err: err}
	}
	log.WithFields(logrus.Fields{"status": resp.StatusCode, "elapsed": time.Since(start)}).Debug("request completed")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := newAPIError(method, path, resp.StatusCode, data)
		if resp.StatusCode == http.StatusUnauthorized && c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return nil, apiErr
	}

	if out != nil && len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return nil, fmt.Errorf("decode %s %s: %w", method, path, err)
		}
	}
	return data, nil
}

func get[T any](ctx context.Context, c *Client, path string, query url.Values) (T, error) {
	var out T
	err := c.do(ctx, http.MethodGet, path, query, nil, &out)
	return out, err
}

func call[T any](ctx context.Context, c *Client, method, path string, query url.Values, body any) (T, error) {
	var out T
	err := c.do(ctx, method, path, query, body, &out)
	return out, err
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

func idPath(prefix string, id int64, rest ...string) string {
	p := fmt.Sprintf("%s/%d", prefix, id)
	for _, r := range rest {
		p += "/" + r
	}
	return p
}

func nameQuery(key, value string) url.Values {
	return url.Values{key: []string{value}}
}

// APIError is a failed call. StatusCode 0 means the backend was never reached.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Body       ErrorBody
	// RawBody is kept when the backend answered with something other than an error object
	RawBody string
	Err     error
}

// ErrorBody is the backend's error envelope
type ErrorBody struct {
	Timestamp string `json:"timestamp"`
	Status    int    `json:"status"`
	Error     string `json:"error"`
	Message   string `json:"message"`
}

func newAPIError(method, path string, status int, data []byte) *APIError {
	e := &APIError{Method: method, Path: path, StatusCode: status}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return e
	}
	if trimmed[0] == '{' && json.Unmarshal(trimmed, &e.Body) == nil {
		return e
	}
	var s string
	if json.Unmarshal(trimmed, &s) == nil {
		e.RawBody = s
		return e
	}
	e.RawBody = string(trimmed)
	return e
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
	}
	detail := e.Body.Message
	if detail == "" {
		detail = e.RawBody
	}
	if detail == "" {
		detail = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, detail)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Unreachable reports whether the request never got an HTTP response
func (e *APIError) Unreachable() bool {
	return e.StatusCode == 0
}

// IsStatus reports whether err is an *APIError with the given status
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}

// UnreachableMessage is shown when no HTTP response arrived at all
const UnreachableMessage = "Cannot reach the server. Check if the backend is running."

// Message turns err into the text shown to a user: the backend's message,
// else its plain-text body or error text, else the error's own text,
// else fallback.
func Message(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Unreachable():
			return UnreachableMessage
		case apiErr.Body.Message != "":
			return apiErr.Body.Message
		case apiErr.RawBody != "":
			return apiErr.RawBody
		case apiErr.Body.Error != "":
			return apiErr.Body.Error
		}
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}
