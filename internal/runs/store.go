// internal/runs/store.go
package runs

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/signalsfoundry/satlink-simulator/internal/logging"
	"github.com/signalsfoundry/satlink-simulator/report"
)

// ErrNotFound indicates a requested run is not in the store.
var ErrNotFound = errors.New("run not found")

// DefaultCapacity bounds the store when no explicit capacity is given.
const DefaultCapacity = 100

// Run is a completed pass simulation retained for later retrieval.
type Run struct {
	ID        string
	Mission   string
	CreatedAt time.Time
	Elapsed   time.Duration
	Summary   report.Summary
}

// MetricsRecorder receives count updates as runs are added and evicted.
type MetricsRecorder interface {
	SetRunCount(stored int)
}

// Store keeps completed simulation runs in memory, newest first, evicting
// the oldest entries once the capacity is reached.
type Store struct {
	mu sync.RWMutex

	capacity int

	// order holds run IDs newest first; byID owns the entries.
	order []string
	byID  map[string]*Run

	log     logging.Logger
	metrics MetricsRecorder
}

// Option customises Store construction.
type Option func(*Store)

// WithMetricsRecorder attaches an optional metrics recorder for the stored-run gauge.
func WithMetricsRecorder(m MetricsRecorder) Option {
	return func(s *Store) {
		s.metrics = m
	}
}

// NewStore builds a bounded run store. A non-positive capacity selects
// DefaultCapacity.
func NewStore(capacity int, log logging.Logger, opts ...Option) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if log == nil {
		log = logging.Noop()
	}
	store := &Store{
		capacity: capacity,
		byID:     make(map[string]*Run),
		log:      log,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(store)
		}
	}
	store.updateMetricsLocked()
	return store
}

// Add stores a run, assigning an ID and creation time when absent, and
// returns the stored copy. The oldest run is evicted once the store is full.
func (s *Store) Add(run Run) Run {
	s.mu.Lock()
	defer s.mu.Unlock()

	if run.ID == "" {
		run.ID = newRunID()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	if _, exists := s.byID[run.ID]; !exists {
		s.order = append([]string{run.ID}, s.order...)
	}
	stored := run
	s.byID[run.ID] = &stored

	for len(s.order) > s.capacity {
		oldest := s.order[len(s.order)-1]
		s.order = s.order[:len(s.order)-1]
		delete(s.byID, oldest)
		s.log.Debug(context.Background(), "evicted oldest run", logging.String("run_id", oldest))
	}

	s.updateMetricsLocked()
	return run
}

// Get returns the run with the given ID.
func (s *Store) Get(id string) (Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.byID[id]
	if !ok {
		return Run{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return *run, nil
}

// List returns copies of all stored runs, newest first.
func (s *Store) List() []Run {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Run, 0, len(s.order))
	for _, id := range s.order {
		if run, ok := s.byID[id]; ok {
			out = append(out, *run)
		}
	}
	return out
}

// Len reports the number of stored runs.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// Clear drops all stored runs.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.order = nil
	s.byID = make(map[string]*Run)
	s.updateMetricsLocked()
}

// updateMetricsLocked pushes the current count to the recorder. Callers must
// hold the store lock.
func (s *Store) updateMetricsLocked() {
	if s.metrics == nil {
		return
	}
	s.metrics.SetRunCount(len(s.byID))
}

func newRunID() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("run-%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b[:])
}
