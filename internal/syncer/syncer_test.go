package syncer_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"taskwire/internal/service"
	"taskwire/internal/syncer"
	"taskwire/internal/testutil"
)

func newSyncer(backend service.Backend, store *testutil.MemStore) *syncer.Syncer {
	return syncer.New(backend, store, zerolog.Nop())
}

func taskTexts(tasks []service.Task) []string {
	texts := make([]string, 0, len(tasks))
	for _, t := range tasks {
		texts = append(texts, t.Text)
	}
	return texts
}

func TestInitializeWithoutSessionIsNoOp(t *testing.T) {
	backend := testutil.NewFakeBackend()
	syn := newSyncer(backend, testutil.NewMemStore(nil))

	syn.Initialize(context.Background())

	if n := backend.CallCount("list"); n != 0 {
		t.Errorf("expected no network call, got %d", n)
	}
	if len(syn.Tasks()) != 0 {
		t.Errorf("expected empty cache, got %v", syn.Tasks())
	}
}

func TestInitializeReplacesCacheWholesale(t *testing.T) {
	backend := testutil.NewFakeBackend()
	backend.SeedTask("t1", "Buy milk", true)
	backend.SeedTask("t2", "Call mom", false)
	syn := newSyncer(backend, testutil.LoggedInStore())

	syn.Initialize(context.Background())

	tasks := syn.Tasks()
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}
	if tasks[0].ID != "t1" || !tasks[0].Completed {
		t.Errorf("unexpected first task: %+v", tasks[0])
	}
	if tasks[1].Text != "Call mom" {
		t.Errorf("unexpected second task: %+v", tasks[1])
	}
}

func TestInitializeFailureLeavesCacheEmpty(t *testing.T) {
	backend := testutil.NewFakeBackend()
	backend.SeedTask("t1", "Buy milk", false)
	backend.ListTasksErr = &service.BackendError{Op: "list tasks", Status: 500}
	syn := newSyncer(backend, testutil.LoggedInStore())

	syn.Initialize(context.Background())

	if len(syn.Tasks()) != 0 {
		t.Errorf("expected empty cache after failed load, got %v", syn.Tasks())
	}
	// One attempt, no retry.
	if n := backend.CallCount("list"); n != 1 {
		t.Errorf("expected exactly one list call, got %d", n)
	}
}

func TestAddEmptyInput(t *testing.T) {
	backend := testutil.NewFakeBackend()
	syn := newSyncer(backend, testutil.LoggedInStore())

	for _, input := range []string{"", "   "} {
		if err := syn.Add(context.Background(), input); !errors.Is(err, syncer.ErrEmptyInput) {
			t.Errorf("Add(%q) = %v, want ErrEmptyInput", input, err)
		}
	}

	if n := backend.CallCount("create"); n != 0 {
		t.Errorf("expected no network call, got %d", n)
	}
	if got := syn.Snapshot().LastError; got != syncer.ErrorEmptyInput {
		t.Errorf("LastError = %v, want ErrorEmptyInput", got)
	}
	if len(syn.Tasks()) != 0 {
		t.Error("cache changed on rejected add")
	}
}

func TestAddAppendsConfirmedTask(t *testing.T) {
	backend := testutil.NewFakeBackend()
	syn := newSyncer(backend, testutil.LoggedInStore())
	syn.Initialize(context.Background())

	if err := syn.Add(context.Background(), "Buy milk"); err != nil {
		t.Fatalf("Add: %v", err)
	}

	tasks := syn.Tasks()
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}
	got := tasks[0]
	if got.Text != "Buy milk" || got.Completed || got.ID != "task-1" || got.OwnerID != testutil.UserID {
		t.Errorf("unexpected task: %+v", got)
	}
	if syn.Snapshot().LastError != syncer.ErrorNone {
		t.Error("LastError not cleared on successful add")
	}
}

func TestAddWithoutStoredTokenFails(t *testing.T) {
	backend := testutil.NewFakeBackend()
	syn := newSyncer(backend, testutil.NewMemStore(nil))

	if err := syn.Add(context.Background(), "Buy milk"); !errors.Is(err, syncer.ErrMissingSession) {
		t.Errorf("Add = %v, want ErrMissingSession", err)
	}
	if n := backend.CallCount("create"); n != 0 {
		t.Errorf("expected no network call, got %d", n)
	}
}

func TestAddBackendFailureLeavesCacheUnchanged(t *testing.T) {
	backend := testutil.NewFakeBackend()
	backend.CreateTaskErr = &service.BackendError{Op: "create task", Status: 500}
	syn := newSyncer(backend, testutil.LoggedInStore())

	err := syn.Add(context.Background(), "Buy milk")
	var backendErr *service.BackendError
	if !errors.As(err, &backendErr) {
		t.Fatalf("Add = %v, want BackendError", err)
	}
	if len(syn.Tasks()) != 0 {
		t.Errorf("cache changed on failed add: %v", syn.Tasks())
	}
}

func TestDeleteRemovesEntry(t *testing.T) {
	backend := testutil.NewFakeBackend()
	backend.SeedTask("t1", "Buy milk", false)
	backend.SeedTask("t2", "Call mom", false)
	syn := newSyncer(backend, testutil.LoggedInStore())
	syn.Initialize(context.Background())

	if err := syn.Delete(context.Background(), "t1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	tasks := syn.Tasks()
	if len(tasks) != 1 || tasks[0].ID != "t2" {
		t.Errorf("unexpected cache after delete: %v", tasks)
	}
}

func TestDeleteFailureLeavesCacheUnchanged(t *testing.T) {
	backend := testutil.NewFakeBackend()
	backend.SeedTask("t1", "Buy milk", false)
	syn := newSyncer(backend, testutil.LoggedInStore())
	syn.Initialize(context.Background())

	backend.DeleteTaskErr = &service.BackendError{Op: "delete task", Status: 500}
	if err := syn.Delete(context.Background(), "t1"); err == nil {
		t.Fatal("expected delete error")
	}
	if len(syn.Tasks()) != 1 {
		t.Errorf("cache changed on failed delete: %v", syn.Tasks())
	}
}

func TestDuplicateDeleteFailsLoudly(t *testing.T) {
	backend := testutil.NewFakeBackend()
	backend.SeedTask("t1", "Buy milk", false)
	syn := newSyncer(backend, testutil.LoggedInStore())
	syn.Initialize(context.Background())

	if err := syn.Delete(context.Background(), "t1"); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	// The server's not-found answer is an ordinary failure.
	if err := syn.Delete(context.Background(), "t1"); err == nil {
		t.Error("expected second delete to fail")
	}
	if len(syn.Tasks()) != 0 {
		t.Errorf("unexpected cache: %v", syn.Tasks())
	}
}

func TestSetCompletionFlipsExactlyOneEntry(t *testing.T) {
	backend := testutil.NewFakeBackend()
	backend.SeedTask("t1", "Buy milk", false)
	backend.SeedTask("t2", "Call mom", false)
	syn := newSyncer(backend, testutil.LoggedInStore())
	syn.Initialize(context.Background())

	syn.SetCompletion(context.Background(), "t1", true)

	tasks := syn.Tasks()
	if !tasks[0].Completed {
		t.Error("target task not completed")
	}
	if tasks[1].Completed {
		t.Error("unrelated task changed")
	}
	if got, _ := backend.TaskByID("t1"); !got.Completed {
		t.Error("backend not updated")
	}
}

func TestSetCompletionFailureIsQuiet(t *testing.T) {
	backend := testutil.NewFakeBackend()
	backend.SeedTask("t1", "Buy milk", false)
	syn := newSyncer(backend, testutil.LoggedInStore())
	syn.Initialize(context.Background())

	backend.SetCompletionErr = &service.BackendError{Op: "update task", Status: 500}
	syn.SetCompletion(context.Background(), "t1", true)

	if syn.Tasks()[0].Completed {
		t.Error("cache changed on failed completion update")
	}
}

func TestSetCompletionWithoutSessionIsQuiet(t *testing.T) {
	backend := testutil.NewFakeBackend()
	store := testutil.LoggedInStore()
	backend.SeedTask("t1", "Buy milk", false)
	syn := newSyncer(backend, store)
	syn.Initialize(context.Background())

	// Session disappears between actions.
	store.Clear()
	syn.SetCompletion(context.Background(), "t1", true)

	if n := backend.CallCount("patch"); n != 0 {
		t.Errorf("expected no network call, got %d", n)
	}
	if syn.Tasks()[0].Completed {
		t.Error("cache changed without server confirmation")
	}
}

func TestLogoutClearsStoreAndState(t *testing.T) {
	backend := testutil.NewFakeBackend()
	backend.SeedTask("t1", "Buy milk", false)
	store := testutil.LoggedInStore()
	syn := newSyncer(backend, store)
	syn.Initialize(context.Background())

	if err := syn.Logout(); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, err := store.Load(); err == nil {
		t.Error("credentials still present after logout")
	}
	if len(syn.Tasks()) != 0 {
		t.Error("cache not cleared on logout")
	}
}

// reorderBackend delays the first create until released, so responses
// arrive in the opposite order of issuance.
type reorderBackend struct {
	*testutil.FakeBackend
	arrived chan struct{}
	release chan struct{}
}

func (b *reorderBackend) CreateTask(ctx context.Context, token, userID, text string) (string, error) {
	if text == "first" {
		close(b.arrived)
		<-b.release
	}
	return b.FakeBackend.CreateTask(ctx, token, userID, text)
}

func TestRapidAddsAppendInResponseArrivalOrder(t *testing.T) {
	backend := &reorderBackend{
		FakeBackend: testutil.NewFakeBackend(),
		arrived:     make(chan struct{}),
		release:     make(chan struct{}),
	}
	syn := newSyncer(backend, testutil.LoggedInStore())

	done := make(chan error, 1)
	go func() { done <- syn.Add(context.Background(), "first") }()
	<-backend.arrived

	if err := syn.Add(context.Background(), "second"); err != nil {
		t.Fatalf("second add: %v", err)
	}
	close(backend.release)
	if err := <-done; err != nil {
		t.Fatalf("first add: %v", err)
	}

	got := taskTexts(syn.Tasks())
	want := []string{"second", "first"}
	if got[0] != want[0] || got[1] != want[1] {
		t.Errorf("cache order = %v, want %v", got, want)
	}
}
