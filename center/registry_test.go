package center

import (
	"errors"
	"sync"
	"testing"
)

func TestRegistryAssignsMonotonicIDs(t *testing.T) {
	r := NewRegistry()
	a := r.Add("A", 10)
	b := r.Add("B", 5)
	c := r.Add("C", 1)

	if a.ID != 1 || b.ID != 2 || c.ID != 3 {
		t.Errorf("expected ids 1,2,3, got %d,%d,%d", a.ID, b.ID, c.ID)
	}
}

func TestRegistryNewCenterDefaults(t *testing.T) {
	r := NewRegistry()
	c := r.Add("Downtown", 10)

	if c.CurrentLoad() != 0 {
		t.Errorf("new center should start with zero load, got %f", c.CurrentLoad())
	}
	if !c.IsUp() {
		t.Error("new center should start up")
	}
}

func TestRegistryGet(t *testing.T) {
	r := NewRegistry()
	added := r.Add("Downtown", 10)

	got, err := r.Get(added.ID)
	if err != nil {
		t.Fatalf("Get(%d) failed: %v", added.ID, err)
	}
	if got != added {
		t.Error("Get returned a different center instance")
	}
}

func TestRegistryGetUnknownID(t *testing.T) {
	r := NewRegistry()
	_, err := r.Get(99)
	if err == nil {
		t.Fatal("expected error for unknown id")
	}
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRegistryListAscendingID(t *testing.T) {
	r := NewRegistry()
	r.Add("C", 1)
	r.Add("A", 2)
	r.Add("B", 3)

	list := r.List()
	if len(list) != 3 {
		t.Fatalf("expected 3 centers, got %d", len(list))
	}
	for i, c := range list {
		if c.ID != i+1 {
			t.Errorf("list[%d].ID = %d, want %d", i, c.ID, i+1)
		}
	}
}

func TestRegistryConcurrentAdd(t *testing.T) {
	r := NewRegistry()

	const adders = 20
	var wg sync.WaitGroup
	wg.Add(adders)
	for i := 0; i < adders; i++ {
		go func() {
			defer wg.Done()
			r.Add("clinic", 10)
		}()
	}
	wg.Wait()

	if r.Len() != adders {
		t.Fatalf("expected %d centers, got %d", adders, r.Len())
	}

	// Every id in 1..adders must be present exactly once.
	seen := make(map[int]bool)
	for _, c := range r.List() {
		if seen[c.ID] {
			t.Errorf("duplicate id %d", c.ID)
		}
		seen[c.ID] = true
	}
	for id := 1; id <= adders; id++ {
		if !seen[id] {
			t.Errorf("missing id %d", id)
		}
	}
}
