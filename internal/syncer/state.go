package syncer

import (
	"fmt"
	"strings"

	"taskwire/internal/service"
)

// StatusFilter selects which completion states are visible.
type StatusFilter int

const (
	// FilterAll shows every task.
	FilterAll StatusFilter = iota

	// FilterCompleted shows only completed tasks.
	FilterCompleted

	// FilterIncomplete shows only open tasks.
	FilterIncomplete
)

// String returns the CLI spelling of the filter.
func (f StatusFilter) String() string {
	switch f {
	case FilterCompleted:
		return "done"
	case FilterIncomplete:
		return "todo"
	default:
		return "all"
	}
}

// ParseStatusFilter parses the CLI spelling of a status filter.
func ParseStatusFilter(s string) (StatusFilter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return FilterAll, nil
	case "done", "completed":
		return FilterCompleted, nil
	case "todo", "incomplete", "open":
		return FilterIncomplete, nil
	default:
		return FilterAll, fmt.Errorf("invalid filter: %s", s)
	}
}

// View is the purely local display state: never sent to the server.
type View struct {
	Status StatusFilter
	Search string
}

// State is one immutable snapshot of the synchronizer.
// Every transition is a pure function returning a new snapshot, so each
// one is testable in isolation. Tasks keeps insertion order.
type State struct {
	Tasks        []service.Task
	PendingInput string
	View         View
	LastError    ErrorKind
}

// withTasks replaces the cache wholesale.
func (s State) withTasks(tasks []service.Task) State {
	s.Tasks = tasks
	return s
}

// appendTask adds a server-confirmed task at the end of the cache.
func (s State) appendTask(t service.Task) State {
	tasks := make([]service.Task, len(s.Tasks), len(s.Tasks)+1)
	copy(tasks, s.Tasks)
	s.Tasks = append(tasks, t)
	return s
}

// removeTask drops the entry with the given id, if present.
func (s State) removeTask(id string) State {
	tasks := make([]service.Task, 0, len(s.Tasks))
	for _, t := range s.Tasks {
		if t.ID != id {
			tasks = append(tasks, t)
		}
	}
	s.Tasks = tasks
	return s
}

// withCompletion sets exactly one entry's completed flag to the value the
// client asked the server for. The response body is never consulted.
func (s State) withCompletion(id string, completed bool) State {
	tasks := make([]service.Task, len(s.Tasks))
	copy(tasks, s.Tasks)
	for i := range tasks {
		if tasks[i].ID == id {
			tasks[i].Completed = completed
		}
	}
	s.Tasks = tasks
	return s
}

func (s State) withStatusFilter(f StatusFilter) State {
	s.View.Status = f
	return s
}

func (s State) withSearch(term string) State {
	s.View.Search = term
	return s
}

// withPendingInput mirrors the input box; touching it clears the inline error.
func (s State) withPendingInput(text string) State {
	s.PendingInput = text
	s.LastError = ErrorNone
	return s
}

func (s State) withError(kind ErrorKind) State {
	s.LastError = kind
	return s
}

// visible derives the display list: the status predicate first, then the
// case-folded substring search. The predicates compose by conjunction and
// the result preserves cache insertion order.
func (s State) visible() []service.Task {
	out := make([]service.Task, 0, len(s.Tasks))
	for _, t := range s.Tasks {
		switch s.View.Status {
		case FilterCompleted:
			if !t.Completed {
				continue
			}
		case FilterIncomplete:
			if t.Completed {
				continue
			}
		}
		out = append(out, t)
	}

	term := strings.TrimSpace(s.View.Search)
	if term == "" {
		return out
	}
	term = strings.ToLower(term)

	matched := make([]service.Task, 0, len(out))
	for _, t := range out {
		if strings.Contains(strings.ToLower(t.Text), term) {
			matched = append(matched, t)
		}
	}
	return matched
}
