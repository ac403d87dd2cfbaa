package core

import (
	"errors"
	"math/rand/v2"
	"slices"
	"sync/atomic"
	"testing"
)

func TestEntry_Validate(t *testing.T) {
	counted := func(*atomic.Bool) uint64 { return 0 }

	tests := []struct {
		name    string
		entry   Entry
		wantErr bool
	}{
		{name: "run body", entry: Entry{ID: "a", Run: noop}},
		{name: "counted body", entry: Entry{ID: "a", Counted: counted}},
		{name: "empty id", entry: Entry{Run: noop}, wantErr: true},
		{name: "no body", entry: Entry{ID: "a"}, wantErr: true},
		{name: "two bodies", entry: Entry{ID: "a", Run: noop, Counted: counted}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.entry.Validate()
			if tt.wantErr && !errors.Is(err, ErrInvalidEntry) {
				t.Fatalf("Validate() = %v, want ErrInvalidEntry", err)
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("Validate() = %v, want nil", err)
			}
		})
	}
}

func TestRegistry_RegisterAndLookup(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(Entry{ID: "b", Run: noop}, Entry{ID: "a", Run: noop}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if r.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", r.Len())
	}
	if ids := r.Suite().IDs(); !slices.Equal(ids, []string{"b", "a"}) {
		t.Fatalf("Suite() order = %v, want [b a]", ids)
	}
	if e, err := r.Lookup("a"); err != nil || e.ID != "a" {
		t.Fatalf("Lookup(a) = %+v, %v", e, err)
	}
	if _, err := r.Lookup("zz"); !errors.Is(err, ErrUnknownWorkload) {
		t.Fatalf("Lookup(zz) err = %v, want ErrUnknownWorkload", err)
	}
}

func TestRegistry_RejectsDuplicatesAndInvalid(t *testing.T) {
	r := NewRegistry()
	r.MustRegister(Entry{ID: "a", Run: noop})

	if err := r.Register(Entry{ID: "a", Run: noop}); !errors.Is(err, ErrDuplicateWorkload) {
		t.Fatalf("duplicate err = %v, want ErrDuplicateWorkload", err)
	}
	if err := r.Register(Entry{ID: "b"}); !errors.Is(err, ErrInvalidEntry) {
		t.Fatalf("invalid err = %v, want ErrInvalidEntry", err)
	}
	if r.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", r.Len())
	}

	defer func() {
		if recover() == nil {
			t.Fatal("MustRegister did not panic on duplicate")
		}
	}()
	r.MustRegister(Entry{ID: "a", Run: noop})
}

func TestRegistry_SuiteIsACopy(t *testing.T) {
	r := NewRegistry().MustRegister(Entry{ID: "a", Run: noop})
	s := r.Suite()
	s[0].ID = "changed"

	if _, err := r.Lookup("a"); err != nil {
		t.Fatalf("Suite() exposed registry storage: %v", err)
	}
}

func TestSuite_ShuffledKeepsMembership(t *testing.T) {
	suite := Suite{
		{ID: "a", Run: noop}, {ID: "b", Run: noop}, {ID: "c", Run: noop},
		{ID: "d", Run: noop}, {ID: "e", Run: noop},
	}
	original := suite.IDs()

	shuffled := suite.Shuffled(rand.New(rand.NewPCG(1, 2)))

	if !slices.Equal(suite.IDs(), original) {
		t.Fatalf("receiver modified: %v", suite.IDs())
	}
	got := shuffled.IDs()
	slices.Sort(got)
	if !slices.Equal(got, original) {
		t.Fatalf("shuffled membership = %v, want %v", got, original)
	}

	again := suite.Shuffled(rand.New(rand.NewPCG(1, 2)))
	if !slices.Equal(again.IDs(), shuffled.IDs()) {
		t.Fatalf("same seed gave %v and %v", again.IDs(), shuffled.IDs())
	}
}

func TestSuite_Lookup(t *testing.T) {
	suite := Suite{{ID: "a", Run: noop}}
	if _, ok := suite.Lookup("a"); !ok {
		t.Fatal("Lookup(a) not found")
	}
	if _, ok := suite.Lookup("b"); ok {
		t.Fatal("Lookup(b) found")
	}
}
