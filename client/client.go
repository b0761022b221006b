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

	"github.com/prometheus/client_golang/prometheus"

	darshan "github.com/Rohit-Goswami064/Divine-Darshan"
)

// Config holds the values needed to resolve the backend base URL
type Config interface {
	// GetAPIURL is the externally configured production URL, may be empty
	GetAPIURL() string
	// GetHost is the host the default URL is derived from
	GetHost() string
}

// StaticConfig is a Config with fixed values
type StaticConfig struct {
	APIURL string
	Host   string
}

func (c StaticConfig) GetAPIURL() string { return c.APIURL }
func (c StaticConfig) GetHost() string   { return c.Host }

// Response is the status code and decoded body of a 2xx response.
type Response[T any] struct {
	Status int
	Body   T
}

// Client is the single point of REST access to the backend.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	decorator  RequestDecorator
	logger     darshan.Logger
	debug      bool
	metrics    *clientMetrics

	// applied after all options so their order does not matter
	timeout    time.Duration
	registerer prometheus.Registerer
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets a client timeout. Zero keeps the transport default.
// It applies to the client given by WithHTTPClient too.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithDecorators appends request decorators, run in order before each request.
func WithDecorators(decorators ...RequestDecorator) Option {
	return func(c *Client) {
		c.decorator = Chain(append([]RequestDecorator{c.decorator}, decorators...)...)
	}
}

// WithLogger sets the logger.
func WithLogger(logger darshan.Logger) Option {
	return func(c *Client) {
		c.logger = darshan.NormalizeLogger(logger)
	}
}

// WithDebug logs method, path, status and duration of every request.
// Header values are never logged.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// New builds a Client. The base URL is resolved once here.
func New(cfg Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		cfg = StaticConfig{}
	}

	base, err := ResolveBaseURL(cfg.GetAPIURL(), cfg.GetHost())
	if err != nil {
		return nil, err
	}

	c := &Client{
		baseURL:    base,
		httpClient: &http.Client{},
		decorator:  Chain(),
		logger:     darshan.DefaultLogger(),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if c.timeout > 0 {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}

	if c.registerer != nil {
		m, err := newClientMetrics(c.registerer)
		if err != nil {
			c.logger.Warn("client metrics disabled", "error", err)
		} else {
			c.metrics = m
			c.instrument()
		}
	}

	return c, nil
}

// BaseURL returns a copy of the resolved base URL.
func (c *Client) BaseURL() *url.URL {
	u := *c.baseURL
	return &u
}

func (c *Client) endpoint(path string) string {
	return strings.TrimRight(c.baseURL.String(), "/") + path
}

func (c *Client) do(ctx context.Context, method, path string, payload any) (*http.Response, []byte, error) {
	var body io.Reader
	if payload != nil {
		buf := &bytes.Buffer{}
		if err := json.NewEncoder(buf).Encode(payload); err != nil {
			return nil, nil, darshan.Wrap(err, darshan.ErrRequestSetup)
		}
		body = buf
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path), body)
	if err != nil {
		return nil, nil, darshan.Wrap(err, darshan.ErrRequestSetup)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if err := c.decorator(req); err != nil {
		return nil, nil, darshan.Wrap(err, darshan.ErrRequestSetup)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if c.debug {
			c.logger.Debug("api request failed", "method", method, "path", path, "error", err, "duration", time.Since(start))
		}
		return nil, nil, &NoResponseError{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, &NoResponseError{Method: method, Path: path, Err: err}
	}

	if c.debug {
		c.logger.Debug("api request", "method", method, "path", path, "status", resp.StatusCode, "duration", time.Since(start))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp, data, newHTTPError(method, path, resp, data)
	}

	return resp, data, nil
}

// send performs the request and decodes a 2xx body into T.
func send[T any](ctx context.Context, c *Client, method, path string, payload any) (*Response[T], error) {
	resp, data, err := c.do(ctx, method, path, payload)
	if err != nil {
		return nil, err
	}

	out := &Response[T]{Status: resp.StatusCode}
	if len(bytes.TrimSpace(data)) == 0 {
		return out, nil
	}

	if err := json.Unmarshal(data, &out.Body); err != nil {
		return nil, fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}

	return out, nil
}

func resourcePath(collection, id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", errors.New("resource id is empty")
	}
	return collection + "/" + url.PathEscape(id), nil
}
