package syncer

import (
	"reflect"
	"testing"

	"taskwire/internal/service"
)

func sampleTasks() []service.Task {
	return []service.Task{
		{ID: "1", OwnerID: "u1", Text: "Buy milk", Completed: true},
		{ID: "2", OwnerID: "u1", Text: "Call mom", Completed: false},
	}
}

func visibleIDs(tasks []service.Task) []string {
	ids := make([]string, 0, len(tasks))
	for _, t := range tasks {
		ids = append(ids, t.ID)
	}
	return ids
}

func TestVisible(t *testing.T) {
	tests := []struct {
		name   string
		status StatusFilter
		search string
		want   []string
	}{
		{"all no search", FilterAll, "", []string{"1", "2"}},
		{"completed only", FilterCompleted, "", []string{"1"}},
		{"incomplete only", FilterIncomplete, "", []string{"2"}},
		{"search case-insensitive substring", FilterAll, "mil", []string{"1"}},
		{"search uppercase term", FilterAll, "CALL", []string{"2"}},
		{"conjunction of filter and search", FilterIncomplete, "call", []string{"2"}},
		{"conjunction excludes wrong status", FilterCompleted, "call", []string{}},
		{"whitespace-only search matches all", FilterAll, "   ", []string{"1", "2"}},
		{"no match", FilterAll, "laundry", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := State{Tasks: sampleTasks(), View: View{Status: tt.status, Search: tt.search}}
			got := visibleIDs(s.visible())
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("visible ids = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVisiblePreservesInsertionOrder(t *testing.T) {
	s := State{Tasks: []service.Task{
		{ID: "a", Text: "write report"},
		{ID: "b", Text: "report back"},
		{ID: "c", Text: "file report"},
	}}
	s = s.withSearch("report")

	got := visibleIDs(s.visible())
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("visible ids = %v, want %v", got, want)
	}
}

func TestAppendTaskDoesNotMutateOriginal(t *testing.T) {
	orig := State{Tasks: sampleTasks()}
	next := orig.appendTask(service.Task{ID: "3", Text: "Water plants"})

	if len(orig.Tasks) != 2 {
		t.Errorf("original state mutated: %d tasks", len(orig.Tasks))
	}
	if len(next.Tasks) != 3 || next.Tasks[2].ID != "3" {
		t.Errorf("append failed: %v", next.Tasks)
	}
}

func TestRemoveTask(t *testing.T) {
	orig := State{Tasks: sampleTasks()}
	next := orig.removeTask("1")

	if got := visibleIDs(next.Tasks); !reflect.DeepEqual(got, []string{"2"}) {
		t.Errorf("tasks after remove = %v, want [2]", got)
	}
	if len(orig.Tasks) != 2 {
		t.Error("original state mutated by remove")
	}

	// Removing an unknown id is a no-op.
	same := next.removeTask("missing")
	if len(same.Tasks) != 1 {
		t.Errorf("remove of unknown id changed cache: %v", same.Tasks)
	}
}

func TestWithCompletionFlipsExactlyOneEntry(t *testing.T) {
	orig := State{Tasks: sampleTasks()}
	next := orig.withCompletion("2", true)

	if !next.Tasks[1].Completed {
		t.Error("target entry not completed")
	}
	if !next.Tasks[0].Completed {
		t.Error("unrelated entry changed")
	}
	if orig.Tasks[1].Completed {
		t.Error("original state mutated")
	}
}

func TestWithPendingInputClearsError(t *testing.T) {
	s := State{LastError: ErrorEmptyInput}
	s = s.withPendingInput("new text")

	if s.LastError != ErrorNone {
		t.Errorf("LastError = %v, want ErrorNone", s.LastError)
	}
	if s.PendingInput != "new text" {
		t.Errorf("PendingInput = %q", s.PendingInput)
	}
}

func TestParseStatusFilter(t *testing.T) {
	tests := []struct {
		in      string
		want    StatusFilter
		wantErr bool
	}{
		{"", FilterAll, false},
		{"all", FilterAll, false},
		{"done", FilterCompleted, false},
		{"completed", FilterCompleted, false},
		{"todo", FilterIncomplete, false},
		{"open", FilterIncomplete, false},
		{"DONE", FilterCompleted, false},
		{"bogus", FilterAll, true},
	}
	for _, tt := range tests {
		got, err := ParseStatusFilter(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseStatusFilter(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("ParseStatusFilter(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
