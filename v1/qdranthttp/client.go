package qdranthttp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/oapi-codegen/runtime"
)

// Logger is the logging surface of the client.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
}

// HttpRequestDoer performs HTTP requests. *http.Client implements it.
type HttpRequestDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the Qdrant REST API. It implements migrate.Client.
type Client struct {
	server     *url.URL
	apiKey     string
	httpClient HttpRequestDoer
	logger     Logger
}

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the default *http.Client.
func WithHTTPClient(doer HttpRequestDoer) ClientOption {
	return func(c *Client) {
		c.httpClient = doer
	}
}

// NewClient validates the base URL and checks that a Qdrant server answers
// on it.
func NewClient(ctx context.Context, cfg *Config, logger Logger, opts ...ClientOption) (*Client, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("[QdrantHTTP] url is required")
	}
	server, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("[QdrantHTTP] invalid url %q: %w", cfg.URL, err)
	}
	if !strings.HasSuffix(server.Path, "/") {
		server.Path += "/"
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	c := &Client{
		server:     server,
		apiKey:     cfg.ApiKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}

	var version struct {
		Title   string `json:"title"`
		Version string `json:"version"`
	}
	if err := c.do(ctx, http.MethodGet, ".", nil, nil, &version); err != nil {
		return nil, fmt.Errorf("[QdrantHTTP] health check failed: %w", err)
	}

	logger.Info("Qdrant REST client connected", nil, map[string]interface{}{
		"url":     server.Redacted(),
		"version": version.Version,
	})
	return c, nil
}

// Close releases idle connections.
func (c *Client) Close() error {
	if hc, ok := c.httpClient.(*http.Client); ok {
		hc.CloseIdleConnections()
	}
	return nil
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.StatusCode, msg)
}

// envelope is the body of every API response except the root endpoint.
type envelope struct {
	Result json.RawMessage `json:"result"`
	Status json.RawMessage `json:"status"`
	Time   float64         `json:"time"`
}

// statusMessage extracts the error text from {"error": "..."}.
func statusMessage(raw json.RawMessage) string {
	var s struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &s); err == nil {
		return s.Error
	}
	return ""
}

// collectionPath renders /collections/{name}[suffix] with the name escaped
// as a simple-style path parameter.
func collectionPath(name, suffix string) (string, error) {
	pathParam, err := runtime.StyleParamWithLocation("simple", false, "collection_name", runtime.ParamLocationPath, name)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("./collections/%s%s", pathParam, suffix), nil
}

// waitQuery renders ?wait=true.
func waitQuery() (url.Values, error) {
	frag, err := runtime.StyleParamWithLocation("form", true, "wait", runtime.ParamLocationQuery, true)
	if err != nil {
		return nil, err
	}
	return url.ParseQuery(frag)
}

// do sends body as JSON and decodes the result field of the response into
// out. The root endpoint has no envelope, so "." decodes the body directly.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	target, err := c.server.Parse(path)
	if err != nil {
		return err
	}
	if query != nil {
		target.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("api-key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call qdrant API: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		serr := &StatusError{Method: method, Path: target.Path, StatusCode: resp.StatusCode}
		var env envelope
		if json.Unmarshal(data, &env) == nil {
			serr.Message = statusMessage(env.Status)
		}
		return serr
	}

	if out == nil {
		return nil
	}
	if path == "." {
		return json.Unmarshal(data, out)
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if err := json.Unmarshal(env.Result, out); err != nil {
		return fmt.Errorf("failed to decode result: %w", err)
	}
	return nil
}
