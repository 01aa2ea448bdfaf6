// Package syncer holds the authoritative local view of the user's tasks.
//
// The Syncer mediates every create/read/update/delete against the backend
// and derives the filtered/searched display list. Its consistency policy
// is confirm-then-apply: the local cache changes only after the server
// acknowledges a mutation, never speculatively, so a failed request never
// leaves anything to roll back.
package syncer

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"taskwire/internal/service"
	"taskwire/internal/session"
)

// Syncer owns the task cache for the current session.
//
// It is single-owner: one instance per session. The mutex makes each
// completion callback apply atomically, but issuance order does not
// guarantee completion order; two rapid Adds may append in
// response-arrival order.
type Syncer struct {
	mu      sync.Mutex
	backend service.Backend
	store   session.Store
	log     zerolog.Logger

	creds *session.Credentials
	state State
}

// New creates a synchronizer over the given backend and credential store.
func New(backend service.Backend, store session.Store, log zerolog.Logger) *Syncer {
	return &Syncer{
		backend: backend,
		store:   store,
		log:     log,
	}
}

// Initialize loads the task cache for the stored session.
//
// Missing or expired credentials make it a no-op: the cache stays empty
// and no request is issued. A failed load also leaves the cache empty;
// the failure is logged, never surfaced, and never retried. This
// asymmetry with mutation failures is deliberate.
func (s *Syncer) Initialize(ctx context.Context) {
	creds, err := s.store.Load()
	if err != nil || !creds.Valid() {
		s.log.Debug().Msg("no valid session, cache stays empty")
		return
	}

	s.mu.Lock()
	s.creds = creds
	s.mu.Unlock()

	tasks, err := s.backend.ListTasks(ctx, creds.Token.AccessToken, creds.UserID)
	if err != nil {
		s.log.Warn().Err(err).Msg("initial task load failed")
		return
	}

	s.mu.Lock()
	s.state = s.state.withTasks(tasks)
	s.mu.Unlock()
}

// Add creates a task from rawText.
//
// Trimmed-empty text fails with ErrEmptyInput before any network call and
// records the inline error. A missing or expired token in the credential
// store fails with ErrMissingSession. On success the confirmed task (local
// text plus server-assigned id) is appended and the pending input and
// inline error are cleared. On failure the cache is unchanged and the
// error returns to the caller. No retry.
func (s *Syncer) Add(ctx context.Context, rawText string) error {
	if strings.TrimSpace(rawText) == "" {
		s.mu.Lock()
		s.state = s.state.withError(ErrorEmptyInput)
		s.mu.Unlock()
		return ErrEmptyInput
	}

	creds, err := s.currentCreds()
	if err != nil {
		return err
	}

	id, err := s.backend.CreateTask(ctx, creds.Token.AccessToken, creds.UserID, rawText)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.state = s.state.
		appendTask(service.Task{ID: id, OwnerID: creds.UserID, Text: rawText}).
		withPendingInput("")
	s.mu.Unlock()
	return nil
}

// Delete removes the task with the given id.
//
// On success the matching cache entry goes away; on failure the cache is
// unchanged and the error returns to the caller. A not-found response
// from the server is an ordinary failure, not specially reconciled, so a
// duplicate delete of the same id fails loudly.
func (s *Syncer) Delete(ctx context.Context, id string) error {
	creds, err := s.currentCreds()
	if err != nil {
		return err
	}

	if err := s.backend.DeleteTask(ctx, creds.Token.AccessToken, id); err != nil {
		return err
	}

	s.mu.Lock()
	s.state = s.state.removeTask(id)
	s.mu.Unlock()
	return nil
}

// SetCompletion updates one task's completion flag.
//
// On success exactly that entry's flag takes the requested value; the
// response body is not consulted. Failures are the quiet channel: the
// cache stays unchanged, the failure goes to the log, and nothing is
// returned, so a later listing simply shows the unchanged state.
func (s *Syncer) SetCompletion(ctx context.Context, id string, completed bool) {
	creds, err := s.currentCreds()
	if err != nil {
		s.log.Warn().Err(err).Str("task_id", id).Msg("completion update skipped")
		return
	}

	if err := s.backend.SetCompletion(ctx, creds.Token.AccessToken, id, completed); err != nil {
		s.log.Warn().Err(err).Str("task_id", id).Msg("completion update failed")
		return
	}

	s.mu.Lock()
	s.state = s.state.withCompletion(id, completed)
	s.mu.Unlock()
}

// SetStatusFilter changes the status predicate. Purely local.
func (s *Syncer) SetStatusFilter(f StatusFilter) {
	s.mu.Lock()
	s.state = s.state.withStatusFilter(f)
	s.mu.Unlock()
}

// SetSearchTerm changes the search predicate. Purely local.
func (s *Syncer) SetSearchTerm(term string) {
	s.mu.Lock()
	s.state = s.state.withSearch(term)
	s.mu.Unlock()
}

// SetPendingInput mirrors the input box; editing clears the inline error.
func (s *Syncer) SetPendingInput(text string) {
	s.mu.Lock()
	s.state = s.state.withPendingInput(text)
	s.mu.Unlock()
}

// Visible derives the display list from the cache and the view state.
func (s *Syncer) Visible() []service.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.visible()
}

// Tasks returns a copy of the full cache in insertion order.
func (s *Syncer) Tasks() []service.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]service.Task, len(s.state.Tasks))
	copy(out, s.state.Tasks)
	return out
}

// Snapshot returns the current state value.
func (s *Syncer) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Logout clears the credential store and resets the in-memory state so a
// reused instance cannot leak the previous session's tasks. No network call.
func (s *Syncer) Logout() error {
	if err := s.store.Clear(); err != nil {
		return err
	}
	s.mu.Lock()
	s.creds = nil
	s.state = State{}
	s.mu.Unlock()
	return nil
}

// Backend returns the backend the syncer talks to. The session-boundary
// commands (login, register) reuse it for auth calls.
func (s *Syncer) Backend() service.Backend { return s.backend }

// Store returns the credential store.
func (s *Syncer) Store() session.Store { return s.store }

// currentCreds re-reads the credential store, so a token removed or
// expired between actions is noticed on the next mutation.
func (s *Syncer) currentCreds() (*session.Credentials, error) {
	creds, err := s.store.Load()
	if err != nil || !creds.Valid() {
		return nil, ErrMissingSession
	}
	s.mu.Lock()
	s.creds = creds
	s.mu.Unlock()
	return creds, nil
}
