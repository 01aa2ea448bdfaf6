// Package service defines the backend-agnostic types and interface for task operations.
package service

import "context"

// Backend defines the interface to the remote task server.
// All HTTP calls go through this interface; the synchronizer and
// commands never import the REST implementation directly.
//
// The bearer token is passed per call: the caller reads it from the
// credential store immediately before each request, so a token removed
// between actions is noticed rather than silently reused.
type Backend interface {
	// Register creates a new account. Any 2xx response is success.
	Register(ctx context.Context, username, password string) error

	// Login exchanges credentials for a bearer token and user id.
	Login(ctx context.Context, username, password string) (LoginResult, error)

	// ListTasks returns all tasks owned by userID, in server order.
	ListTasks(ctx context.Context, token, userID string) ([]Task, error)

	// CreateTask creates a task and returns the server-assigned id.
	CreateTask(ctx context.Context, token, userID, text string) (string, error)

	// DeleteTask deletes a task by id.
	DeleteTask(ctx context.Context, token, id string) error

	// SetCompletion updates a task's completion flag.
	SetCompletion(ctx context.Context, token, id string, completed bool) error
}
