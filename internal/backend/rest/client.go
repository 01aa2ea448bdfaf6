// Package rest implements the service.Backend interface over the task
// server's REST API.
package rest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"taskwire/internal/config"
	"taskwire/internal/service"
)

// Client implements service.Backend against a base URL.
type Client struct {
	base    *url.URL
	http    *http.Client
	timeout time.Duration
}

// New creates a REST client from configuration.
func New(cfg *config.Config) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.Server.URL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid server URL %q: %w", cfg.Server.URL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid server URL %q: scheme and host required", cfg.Server.URL)
	}
	return &Client{
		base:    base,
		http:    &http.Client{},
		timeout: cfg.Server.Timeout,
	}, nil
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
func NewWithHTTPClient(baseURL string, httpClient *http.Client, timeout time.Duration) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, err
	}
	return &Client{base: base, http: httpClient, timeout: timeout}, nil
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	JWTToken string `json:"jwtToken"`
	UserID   string `json:"user_id"`
}

type taskPayload struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Task      string `json:"task"`
	IsChecked bool   `json:"isChecked"`
}

type createTaskRequest struct {
	UserID string `json:"user_id"`
	Task   string `json:"task"`
}

type createTaskResponse struct {
	TaskID string `json:"task_id"`
}

type patchTaskRequest struct {
	IsChecked bool `json:"isChecked"`
}

// Register implements service.Backend.
func (c *Client) Register(ctx context.Context, username, password string) error {
	return c.do(ctx, "register", http.MethodPost, "/register", "",
		credentialsRequest{Username: username, Password: password}, nil)
}

// Login implements service.Backend.
func (c *Client) Login(ctx context.Context, username, password string) (service.LoginResult, error) {
	var resp loginResponse
	err := c.do(ctx, "login", http.MethodPost, "/login", "",
		credentialsRequest{Username: username, Password: password}, &resp)
	if err != nil {
		return service.LoginResult{}, err
	}
	if resp.JWTToken == "" {
		return service.LoginResult{}, &service.BackendError{Op: "login", Err: fmt.Errorf("response missing jwtToken")}
	}
	return service.LoginResult{Token: resp.JWTToken, UserID: resp.UserID}, nil
}

// ListTasks implements service.Backend.
func (c *Client) ListTasks(ctx context.Context, token, userID string) ([]service.Task, error) {
	var payload []taskPayload
	path := "/tasks/" + url.PathEscape(userID)
	if err := c.do(ctx, "list tasks", http.MethodGet, path, token, nil, &payload); err != nil {
		return nil, err
	}

	tasks := make([]service.Task, 0, len(payload))
	for _, p := range payload {
		tasks = append(tasks, service.Task{
			ID:        p.ID,
			OwnerID:   p.UserID,
			Text:      p.Task,
			Completed: p.IsChecked,
		})
	}
	return tasks, nil
}

// CreateTask implements service.Backend.
func (c *Client) CreateTask(ctx context.Context, token, userID, text string) (string, error) {
	var resp createTaskResponse
	err := c.do(ctx, "create task", http.MethodPost, "/tasks", token,
		createTaskRequest{UserID: userID, Task: text}, &resp)
	if err != nil {
		return "", err
	}
	if resp.TaskID == "" {
		return "", &service.BackendError{Op: "create task", Err: fmt.Errorf("response missing task_id")}
	}
	return resp.TaskID, nil
}

// DeleteTask implements service.Backend.
func (c *Client) DeleteTask(ctx context.Context, token, id string) error {
	path := "/tasks/" + url.PathEscape(id)
	return c.do(ctx, "delete task", http.MethodDelete, path, token, nil, nil)
}

// SetCompletion implements service.Backend.
func (c *Client) SetCompletion(ctx context.Context, token, id string, completed bool) error {
	path := "/tasks/" + url.PathEscape(id)
	return c.do(ctx, "update task", http.MethodPatch, path, token,
		patchTaskRequest{IsChecked: completed}, nil)
}

// do runs one request against the backend. Every call gets the client
// timeout; a non-2xx status is a uniform failure regardless of code.
func (c *Client) do(ctx context.Context, op, method, path, token string, in, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return &service.BackendError{Op: op, Err: err}
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base.String()+path, body)
	if err != nil {
		return &service.BackendError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &service.BackendError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return &service.BackendError{Op: op, Status: resp.StatusCode}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &service.BackendError{Op: op, Err: fmt.Errorf("invalid response body: %w", err)}
		}
	}
	return nil
}
