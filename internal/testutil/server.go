package testutil

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// jwtSecret signs the tokens the fake server issues.
var jwtSecret = []byte("taskwire-test-secret")

type wireTask struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Task      string `json:"task"`
	IsChecked bool   `json:"isChecked"`
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Server is an in-process implementation of the task server's REST API,
// backed by an httptest.Server. It issues real HS256 JWTs on login and
// requires them on every task endpoint, so client tests exercise the
// full auth header path.
type Server struct {
	*httptest.Server

	mu      sync.Mutex
	users   map[string]string // username -> password
	userIDs map[string]string // username -> user id
	tasks   map[string][]wireTask
}

// NewServer starts a fake task server. Callers must Close it.
func NewServer() *Server {
	s := &Server{
		users:   make(map[string]string),
		userIDs: make(map[string]string),
		tasks:   make(map[string][]wireTask),
	}

	r := chi.NewRouter()
	r.Post("/register", s.handleRegister)
	r.Post("/login", s.handleLogin)
	r.Group(func(r chi.Router) {
		r.Use(s.requireToken)
		r.Get("/tasks/{userID}", s.handleListTasks)
		r.Post("/tasks", s.handleCreateTask)
		r.Delete("/tasks/{id}", s.handleDeleteTask)
		r.Patch("/tasks/{id}", s.handlePatchTask)
	})

	s.Server = httptest.NewServer(r)
	return s
}

// AddUser registers a user directly and returns its user id.
func (s *Server) AddUser(username, password string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[username] = password
	id := uuid.NewString()
	s.userIDs[username] = id
	return id
}

// SeedTask inserts a task for a user and returns its id.
func (s *Server) SeedTask(userID, text string, checked bool) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.NewString()
	s.tasks[userID] = append(s.tasks[userID], wireTask{
		ID: id, UserID: userID, Task: text, IsChecked: checked,
	})
	return id
}

// TaskTexts returns the stored task texts for a user, in order.
func (s *Server) TaskTexts(userID string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for _, t := range s.tasks[userID] {
		out = append(out, t.Task)
	}
	return out
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil || creds.Username == "" || creds.Password == "" {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[creds.Username]; exists {
		http.Error(w, "user already exists", http.StatusConflict)
		return
	}
	s.users[creds.Username] = creds.Password
	s.userIDs[creds.Username] = uuid.NewString()
	w.WriteHeader(http.StatusCreated)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	password, ok := s.users[creds.Username]
	userID := s.userIDs[creds.Username]
	s.mu.Unlock()
	if !ok || password != creds.Password {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSecret)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]string{"jwtToken": token, "user_id": userID})
}

func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			http.Error(w, "missing bearer token", http.StatusUnauthorized)
			return
		}
		token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			return jwtSecret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !token.Valid {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	s.mu.Lock()
	tasks := make([]wireTask, len(s.tasks[userID]))
	copy(tasks, s.tasks[userID])
	s.mu.Unlock()
	writeJSON(w, tasks)
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID string `json:"user_id"`
		Task   string `json:"task"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	id := uuid.NewString()
	s.tasks[req.UserID] = append(s.tasks[req.UserID], wireTask{
		ID: id, UserID: req.UserID, Task: req.Task,
	})
	s.mu.Unlock()
	writeJSON(w, map[string]string{"task_id": id})
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	defer s.mu.Unlock()
	for userID, tasks := range s.tasks {
		for i, t := range tasks {
			if t.ID == id {
				s.tasks[userID] = append(tasks[:i], tasks[i+1:]...)
				writeJSON(w, map[string]string{"status": "deleted"})
				return
			}
		}
	}
	http.Error(w, "not found", http.StatusNotFound)
}

func (s *Server) handlePatchTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req struct {
		IsChecked bool `json:"isChecked"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for userID, tasks := range s.tasks {
		for i, t := range tasks {
			if t.ID == id {
				s.tasks[userID][i].IsChecked = req.IsChecked
				writeJSON(w, map[string]string{"status": "updated"})
				return
			}
		}
	}
	http.Error(w, "not found", http.StatusNotFound)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
