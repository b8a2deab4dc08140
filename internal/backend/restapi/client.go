// Package restapi implements the service.Service interface against the
// tasks JSON API.
package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"taskctl/internal/config"
	"taskctl/internal/service"
)

const (
	tasksPath = "/tasks"
	taskPath  = "/tasks/{id}"

	// maxBodySize caps how much of a response body is read.
	maxBodySize = 4 << 20
)

// Client implements service.Service over HTTP.
type Client struct {
	httpClient *http.Client
	baseURL    string
	routes     config.Routes
	logger     *slog.Logger
	requestID  func() string
}

// Option configures a Client.
type Option func(*Client)

// WithRoutes overrides the complete and delete route templates.
func WithRoutes(r config.Routes) Option {
	return func(c *Client) {
		if r.Complete != "" {
			c.routes.Complete = r.Complete
		}
		if r.Delete != "" {
			c.routes.Delete = r.Delete
		}
	}
}

// WithLogger sets the debug logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithRequestID replaces the X-Request-ID generator.
func WithRequestID(fn func() string) Option {
	return func(c *Client) {
		if fn != nil {
			c.requestID = fn
		}
	}
}

// New creates a client from config.
// Credentials, when present, select the authenticating transport.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	u, err := url.Parse(cfg.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid base url: %q", cfg.BaseURL)
	}

	httpClient := newHTTPClient(ctx, cfg.Credentials)
	httpClient.Timeout = cfg.Timeout

	opts := []Option{WithRoutes(cfg.Routes)}
	if cfg.Logger != nil {
		opts = append(opts, WithLogger(cfg.Logger.With("component", "restapi")))
	}
	return NewWithHTTPClient(cfg.BaseURL, httpClient, opts...), nil
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
func NewWithHTTPClient(baseURL string, httpClient *http.Client, opts ...Option) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	c := &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		routes:     config.DefaultRoutes(),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		requestID:  func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListTasks returns all tasks in API order.
func (c *Client) ListTasks(ctx context.Context) ([]service.Task, error) {
	data, err := c.do(ctx, http.MethodGet, tasksPath, nil)
	if err != nil {
		return nil, err
	}
	return decodeTasks(data)
}

// GetTask returns a single task.
func (c *Client) GetTask(ctx context.Context, id int64) (service.Task, error) {
	data, err := c.do(ctx, http.MethodGet, expand(taskPath, id), nil)
	if err != nil {
		return service.Task{}, err
	}
	return decodeTask(data)
}

// CreateTask creates a new task.
func (c *Client) CreateTask(ctx context.Context, title string) (service.Task, error) {
	data, err := c.do(ctx, http.MethodPost, tasksPath, service.CreateTaskRequest{Title: title})
	if err != nil {
		return service.Task{}, err
	}
	return decodeTask(data)
}

// UpdateTask replaces the title and completed flag of a task.
func (c *Client) UpdateTask(ctx context.Context, id int64, req service.UpdateTaskRequest) (service.Task, error) {
	data, err := c.do(ctx, http.MethodPut, expand(taskPath, id), req)
	if err != nil {
		return service.Task{}, err
	}
	return decodeTask(data)
}

// DeleteTask deletes a task. The response data is ignored.
func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, expand(c.routes.Delete, id), nil)
	return err
}

// MarkComplete marks a task as completed.
func (c *Client) MarkComplete(ctx context.Context, id int64) (service.Task, error) {
	data, err := c.do(ctx, http.MethodPatch, expand(c.routes.Complete, id), nil)
	if err != nil {
		return service.Task{}, err
	}
	return decodeTask(data)
}

// do performs one API call and returns the envelope's data on success.
func (c *Client) do(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	reqID := c.requestID()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("request failed",
			"method", method, "path", path, "request_id", reqID, "error", err)
		return nil, transportError(err)
	}
	defer resp.Body.Close()

	c.logger.Debug("request",
		"method", method, "path", path, "status", resp.StatusCode,
		"request_id", reqID, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
		return nil, &service.TransportError{StatusCode: resp.StatusCode}
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, &service.TransportError{Err: fmt.Errorf("failed to read response: %w", err)}
	}
	return decodeEnvelope(raw)
}

// transportError converts a failed round trip. A token endpoint that
// answered with a status keeps that status so auth failures stay visible.
func transportError(err error) error {
	var re *oauth2.RetrieveError
	if errors.As(err, &re) && re.Response != nil {
		return &service.TransportError{StatusCode: re.Response.StatusCode, Err: err}
	}
	return &service.TransportError{Err: err}
}

func expand(tmpl string, id int64) string {
	p := strings.ReplaceAll(tmpl, "{id}", strconv.FormatInt(id, 10))
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}
