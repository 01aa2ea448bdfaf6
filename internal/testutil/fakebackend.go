// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"sync"

	"taskwire/internal/service"
)

// Token is the bearer token the fake backend accepts.
const Token = "fake-token"

// UserID is the user the fake backend serves.
const UserID = "user-1"

// FakeBackend is an in-memory implementation of service.Backend for testing.
type FakeBackend struct {
	mu     sync.Mutex
	tasks  []service.Task
	nextID int

	// Users maps username to password for Register/Login.
	Users map[string]string

	// Calls records the operations that reached the backend, in order.
	Calls []string

	// Error injection for testing
	RegisterErr      error
	LoginErr         error
	ListTasksErr     error
	CreateTaskErr    error
	DeleteTaskErr    error
	SetCompletionErr error
}

// NewFakeBackend creates a fake backend with one known user.
func NewFakeBackend() *FakeBackend {
	return &FakeBackend{
		Users: map[string]string{"alice": "hunter2-long-enough"},
	}
}

// SeedTask appends a task directly into the backend's store.
func (f *FakeBackend) SeedTask(id, text string, completed bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, service.Task{ID: id, OwnerID: UserID, Text: text, Completed: completed})
}

// TaskByID returns the backend's copy of a task.
func (f *FakeBackend) TaskByID(id string) (service.Task, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return service.Task{}, false
}

func (f *FakeBackend) record(op string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, op)
}

// CallCount returns how many times op reached the backend.
func (f *FakeBackend) CallCount(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.Calls {
		if c == op {
			n++
		}
	}
	return n
}

// Register implements service.Backend.
func (f *FakeBackend) Register(ctx context.Context, username, password string) error {
	f.record("register")
	if f.RegisterErr != nil {
		return f.RegisterErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.Users[username]; exists {
		return &service.BackendError{Op: "register", Status: 409}
	}
	f.Users[username] = password
	return nil
}

// Login implements service.Backend.
func (f *FakeBackend) Login(ctx context.Context, username, password string) (service.LoginResult, error) {
	f.record("login")
	if f.LoginErr != nil {
		return service.LoginResult{}, f.LoginErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Users[username] != password {
		return service.LoginResult{}, &service.BackendError{Op: "login", Status: 401}
	}
	return service.LoginResult{Token: Token, UserID: UserID}, nil
}

// ListTasks implements service.Backend.
func (f *FakeBackend) ListTasks(ctx context.Context, token, userID string) ([]service.Task, error) {
	f.record("list")
	if f.ListTasksErr != nil {
		return nil, f.ListTasksErr
	}
	if err := f.checkToken(token); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]service.Task, len(f.tasks))
	copy(out, f.tasks)
	return out, nil
}

// CreateTask implements service.Backend.
func (f *FakeBackend) CreateTask(ctx context.Context, token, userID, text string) (string, error) {
	f.record("create")
	if f.CreateTaskErr != nil {
		return "", f.CreateTaskErr
	}
	if err := f.checkToken(token); err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	id := fmt.Sprintf("task-%d", f.nextID)
	f.tasks = append(f.tasks, service.Task{ID: id, OwnerID: userID, Text: text})
	return id, nil
}

// DeleteTask implements service.Backend.
func (f *FakeBackend) DeleteTask(ctx context.Context, token, id string) error {
	f.record("delete")
	if f.DeleteTaskErr != nil {
		return f.DeleteTaskErr
	}
	if err := f.checkToken(token); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return &service.BackendError{Op: "delete task", Status: 404}
}

// SetCompletion implements service.Backend.
func (f *FakeBackend) SetCompletion(ctx context.Context, token, id string, completed bool) error {
	f.record("patch")
	if f.SetCompletionErr != nil {
		return f.SetCompletionErr
	}
	if err := f.checkToken(token); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks[i].Completed = completed
			return nil
		}
	}
	return &service.BackendError{Op: "update task", Status: 404}
}

func (f *FakeBackend) checkToken(token string) error {
	if token != Token {
		return &service.BackendError{Op: "auth", Status: 401}
	}
	return nil
}
