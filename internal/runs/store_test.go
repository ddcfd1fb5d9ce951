package runs

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/signalsfoundry/satlink-simulator/report"
)

type fakeRecorder struct {
	mu   sync.Mutex
	last int
}

func (f *fakeRecorder) SetRunCount(stored int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.last = stored
}

func (f *fakeRecorder) get() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last
}

func TestAddAssignsIDAndTimestamp(t *testing.T) {
	store := NewStore(10, nil)

	run := store.Add(Run{Mission: "uhf-cubesat-demo", Summary: report.Summary{PassCount: 3}})
	if run.ID == "" {
		t.Fatal("Add did not assign an ID")
	}
	if len(run.ID) != 16 {
		t.Errorf("run ID length = %d, want 16 hex chars", len(run.ID))
	}
	if run.CreatedAt.IsZero() {
		t.Error("Add did not assign CreatedAt")
	}

	got, err := store.Get(run.ID)
	if err != nil {
		t.Fatalf("Get(%s): %v", run.ID, err)
	}
	if got.Mission != "uhf-cubesat-demo" || got.Summary.PassCount != 3 {
		t.Errorf("stored run = %+v", got)
	}
}

func TestAddKeepsProvidedIdentity(t *testing.T) {
	store := NewStore(10, nil)
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	run := store.Add(Run{ID: "fixed-id", CreatedAt: created})
	if run.ID != "fixed-id" {
		t.Errorf("ID = %q, want fixed-id", run.ID)
	}
	if !run.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt = %v, want %v", run.CreatedAt, created)
	}
}

func TestGetNotFound(t *testing.T) {
	store := NewStore(10, nil)

	_, err := store.Get("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get on empty store = %v, want ErrNotFound", err)
	}
	if !strings.Contains(err.Error(), "missing") {
		t.Errorf("error should name the run ID: %v", err)
	}
}

func TestListNewestFirst(t *testing.T) {
	store := NewStore(10, nil)
	for i := 1; i <= 3; i++ {
		store.Add(Run{ID: fmt.Sprintf("run-%d", i)})
	}

	got := store.List()
	if len(got) != 3 {
		t.Fatalf("List returned %d runs, want 3", len(got))
	}
	want := []string{"run-3", "run-2", "run-1"}
	for i, run := range got {
		if run.ID != want[i] {
			t.Errorf("List[%d].ID = %q, want %q", i, run.ID, want[i])
		}
	}
}

func TestEvictionAtCapacity(t *testing.T) {
	store := NewStore(2, nil)
	store.Add(Run{ID: "a"})
	store.Add(Run{ID: "b"})
	store.Add(Run{ID: "c"})

	if store.Len() != 2 {
		t.Fatalf("Len = %d, want 2", store.Len())
	}
	if _, err := store.Get("a"); !errors.Is(err, ErrNotFound) {
		t.Errorf("oldest run should be evicted, Get(a) = %v", err)
	}
	if _, err := store.Get("c"); err != nil {
		t.Errorf("newest run missing: %v", err)
	}

	got := store.List()
	if got[0].ID != "c" || got[1].ID != "b" {
		t.Errorf("List after eviction = [%s %s], want [c b]", got[0].ID, got[1].ID)
	}
}

func TestAddSameIDReplaces(t *testing.T) {
	store := NewStore(10, nil)
	store.Add(Run{ID: "dup", Summary: report.Summary{PassCount: 1}})
	store.Add(Run{ID: "dup", Summary: report.Summary{PassCount: 9}})

	if store.Len() != 1 {
		t.Fatalf("Len = %d, want 1", store.Len())
	}
	got, err := store.Get("dup")
	if err != nil {
		t.Fatalf("Get(dup): %v", err)
	}
	if got.Summary.PassCount != 9 {
		t.Errorf("PassCount = %d, want replacement value 9", got.Summary.PassCount)
	}
}

func TestClear(t *testing.T) {
	store := NewStore(10, nil)
	store.Add(Run{ID: "a"})
	store.Add(Run{ID: "b"})
	store.Clear()

	if store.Len() != 0 {
		t.Errorf("Len after Clear = %d, want 0", store.Len())
	}
	if got := store.List(); len(got) != 0 {
		t.Errorf("List after Clear = %v, want empty", got)
	}
}

func TestMetricsRecorderTracksCount(t *testing.T) {
	rec := &fakeRecorder{}
	store := NewStore(2, nil, WithMetricsRecorder(rec))
	if rec.get() != 0 {
		t.Fatalf("initial count = %d, want 0", rec.get())
	}

	store.Add(Run{ID: "a"})
	if rec.get() != 1 {
		t.Errorf("count after first add = %d, want 1", rec.get())
	}
	store.Add(Run{ID: "b"})
	store.Add(Run{ID: "c"})
	if rec.get() != 2 {
		t.Errorf("count at capacity = %d, want 2", rec.get())
	}
	store.Clear()
	if rec.get() != 0 {
		t.Errorf("count after Clear = %d, want 0", rec.get())
	}
}

func TestDefaultCapacity(t *testing.T) {
	store := NewStore(0, nil)
	for i := 0; i < DefaultCapacity+5; i++ {
		store.Add(Run{ID: fmt.Sprintf("run-%d", i)})
	}
	if store.Len() != DefaultCapacity {
		t.Errorf("Len = %d, want %d", store.Len(), DefaultCapacity)
	}
}

func TestConcurrentAddAndList(t *testing.T) {
	store := NewStore(50, nil)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(2)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 25; i++ {
				store.Add(Run{ID: fmt.Sprintf("g%d-r%d", g, i)})
			}
		}(g)
		go func() {
			defer wg.Done()
			for i := 0; i < 25; i++ {
				store.List()
				store.Len()
			}
		}()
	}
	wg.Wait()

	if store.Len() != 50 {
		t.Errorf("Len after concurrent adds = %d, want capacity 50", store.Len())
	}
	got := store.List()
	seen := make(map[string]bool, len(got))
	for _, run := range got {
		if seen[run.ID] {
			t.Fatalf("duplicate run ID in List: %s", run.ID)
		}
		seen[run.ID] = true
	}
}
