package core

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"sync"
	"sync/atomic"
)

// Workload is one unit of repeatable work. The engine calls it in a tight
// loop from several lanes at once, so it must not touch shared mutable state.
type Workload func()

// CountedWorkload runs its own inner loop while running reports true and
// returns how many raw operations it completed. Implementations should poll
// running at a bounded granularity (16 operations in the bundled ones).
type CountedWorkload func(running *atomic.Bool) uint64

// Entry is a named workload registered in a Suite.
// Exactly one of Run or Counted is set.
type Entry struct {
	ID      string
	Run     Workload
	Counted CountedWorkload
}

var (
	// ErrInvalidEntry is returned for entries without an ID or without exactly one body.
	ErrInvalidEntry = errors.New("invalid workload entry")

	// ErrDuplicateWorkload is returned when an ID is registered twice.
	ErrDuplicateWorkload = errors.New("duplicate workload id")

	// ErrUnknownWorkload is returned by lookups for IDs that are not registered.
	ErrUnknownWorkload = errors.New("unknown workload")
)

// Validate reports whether the entry can be handed to the engine.
func (e Entry) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidEntry)
	}
	if (e.Run == nil) == (e.Counted == nil) {
		return fmt.Errorf("%w: %s must set exactly one of Run or Counted", ErrInvalidEntry, e.ID)
	}
	return nil
}

// IsCounted reports whether the entry manages its own inner loop.
func (e Entry) IsCounted() bool {
	return e.Counted != nil
}

// Suite is an ordered collection of workloads executed in one benchmark pass.
type Suite []Entry

// IDs returns the workload ids in suite order.
func (s Suite) IDs() []string {
	ids := make([]string, len(s))
	for i, e := range s {
		ids[i] = e.ID
	}
	return ids
}

// Lookup finds an entry by id.
func (s Suite) Lookup(id string) (Entry, bool) {
	for _, e := range s {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// Shuffled returns a permuted copy of the suite. The receiver is not modified.
func (s Suite) Shuffled(r *rand.Rand) Suite {
	out := slices.Clone(s)
	r.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

// Registry collects workloads once at process start. After registration it is
// only read, but it is safe to use from several goroutines.
type Registry struct {
	mu      sync.RWMutex
	entries []Entry
	index   map[string]int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{index: make(map[string]int)}
}

// Register adds entries in order, stopping at the first invalid or duplicate one.
func (r *Registry) Register(entries ...Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return err
		}
		if _, exists := r.index[e.ID]; exists {
			return fmt.Errorf("%w: %s", ErrDuplicateWorkload, e.ID)
		}
		r.index[e.ID] = len(r.entries)
		r.entries = append(r.entries, e)
	}
	return nil
}

// MustRegister is Register for package-level suite tables; it panics on error.
func (r *Registry) MustRegister(entries ...Entry) *Registry {
	if err := r.Register(entries...); err != nil {
		panic(err)
	}
	return r
}

// Lookup returns the entry registered under id.
func (r *Registry) Lookup(id string) (Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[id]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %s", ErrUnknownWorkload, id)
	}
	return r.entries[i], nil
}

// Len returns the number of registered workloads.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Suite returns the registered workloads in registration order.
func (r *Registry) Suite() Suite {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(Suite(r.entries))
}
