// Package service defines the backend-agnostic types and interface for task operations.
package service

// Task represents a single task item owned by one user.
type Task struct {
	ID        string
	OwnerID   string
	Text      string
	Completed bool
}

// LoginResult carries the identity the backend hands out on a successful login.
type LoginResult struct {
	Token  string
	UserID string
}
