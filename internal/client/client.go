// Package client is a typed client for the study tracker HTTP API.
//
// Every method reports a non-success response as an *APIError carrying a
// fixed message for that operation. GetActiveTimer is the exception for 404,
// which it reports as a nil session.
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

	"studyBuddy/internal/handlers/dto"
	"studyBuddy/internal/logger"

	"go.uber.org/zap"
)

const (
	MsgFetchTasks      = "Failed to fetch tasks"
	MsgFetchTask      = "Failed to fetch task"
	MsgCreateTask     = "Failed to create task"
	MsgUpdateTask     = "Failed to update task"
	MsgDeleteTask     = "Failed to delete task"
	MsgStartTimer     = "Failed to start timer"
	MsgStopTimer      = "Failed to stop timer"
	MsgActiveTimer    = "Failed to fetch active timer"
	MsgTimerSessions  = "Failed to fetch timer sessions"
	MsgResetTasks     = "Failed to reset tasks"
	MsgHealthCheck    = "Health check failed"
	DefaultBaseURL    = "http://localhost:3001"
	defaultHTTPTimeout = 10 * time.Second
)

// APIError is returned for transport failures and non-success responses.
type APIError struct {
	Message    string // fixed per operation
	StatusCode int    // 0 when no response was received
	Detail     string // the server's "error" field, if any
	Err        error
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is an APIError for a 404 response.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

func New(baseURL string, opts ...Option) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// do sends the request and decodes a 2xx body into out when out is not nil.
func (c *Client) do(ctx context.Context, method, path string, body, out any, failMsg string) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &APIError{Message: failMsg, Err: fmt.Errorf("encode request: %w", err)}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &APIError{Message: failMsg, Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Debug("Client: Request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return &APIError{Message: failMsg, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Message: failMsg, StatusCode: resp.StatusCode}
		var errBody struct {
			Error string `json:"error"`
		}
		if json.NewDecoder(resp.Body).Decode(&errBody) == nil {
			apiErr.Detail = errBody.Error
		}
		logger.Debug("Client: Unexpected status",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("detail", apiErr.Detail))
		return apiErr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &APIError{Message: failMsg, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func taskPath(id string, parts ...string) string {
	return "/api/tasks/" + url.PathEscape(id) + strings.Join(parts, "")
}

func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil, MsgHealthCheck)
}

type ListOptions struct {
	Status string
	Sort   string
}

func (c *Client) ListTasks(ctx context.Context, opts ListOptions) ([]dto.TaskResponse, error) {
	query := url.Values{}
	if opts.Status != "" {
		query.Set("status", opts.Status)
	}
	if opts.Sort != "" {
		query.Set("sort", opts.Sort)
	}
	path := "/api/tasks"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var tasks []dto.TaskResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &tasks, MsgFetchTasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (c *Client) GetTask(ctx context.Context, id string) (*dto.TaskResponse, error) {
	var t dto.TaskResponse
	if err := c.do(ctx, http.MethodGet, taskPath(id), nil, &t, MsgFetchTask); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *Client) CreateTask(ctx context.Context, req dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	var t dto.TaskResponse
	if err := c.do(ctx, http.MethodPost, "/api/tasks", req, &t, MsgCreateTask); err != nil {
		return nil, err
	}
	return &t, nil
}

// UpdateTaskStatus sends funRating only when it is not nil.
func (c *Client) UpdateTaskStatus(ctx context.Context, id, status string, funRating *int) (*dto.TaskResponse, error) {
	body := struct {
		Status    string `json:"status"`
		FunRating *int   `json:"funRating,omitempty"`
	}{Status: status, FunRating: funRating}

	var t dto.TaskResponse
	if err := c.do(ctx, http.MethodPatch, taskPath(id), body, &t, MsgUpdateTask); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, taskPath(id), nil, nil, MsgDeleteTask)
}

func (c *Client) StartTimer(ctx context.Context, id, mode string) (*dto.TimerSessionResponse, error) {
	var s dto.TimerSessionResponse
	if err := c.do(ctx, http.MethodPost, taskPath(id, "/timer/start"), dto.StartTimerRequest{Mode: mode}, &s, MsgStartTimer); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) StopTimer(ctx context.Context, id string) (*dto.TimerSessionResponse, error) {
	var s dto.TimerSessionResponse
	if err := c.do(ctx, http.MethodPost, taskPath(id, "/timer/stop"), nil, &s, MsgStopTimer); err != nil {
		return nil, err
	}
	return &s, nil
}

// GetActiveTimer returns nil without error when the task has no running timer.
func (c *Client) GetActiveTimer(ctx context.Context, id string) (*dto.TimerSessionResponse, error) {
	var s dto.TimerSessionResponse
	if err := c.do(ctx, http.MethodGet, taskPath(id, "/timer/active"), nil, &s, MsgActiveTimer); err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (c *Client) ListTimerSessions(ctx context.Context, id string) ([]dto.TimerSessionResponse, error) {
	var sessions []dto.TimerSessionResponse
	if err := c.do(ctx, http.MethodGet, taskPath(id, "/timer/sessions"), nil, &sessions, MsgTimerSessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (c *Client) Reset(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/admin/reset", nil, nil, MsgResetTasks)
}
