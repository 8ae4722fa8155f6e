package store

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/growthmate/growthmate/pkg/types"
)

func profile(id string) Profile {
	return Profile{Child: types.Child{
		ID:        id,
		Name:      "Child " + id,
		BirthDate: time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
		Gender:    types.GenderFemale,
	}}
}

// fixedClock returns a func() time.Time that always returns t.
func fixedClock(t time.Time) func() time.Time { return func() time.Time { return t } }

func TestPutAndGet(t *testing.T) {
	st := New(5 * time.Minute)
	st.Put(profile("c-1"))

	e, ok := st.Get("c-1")
	if !ok {
		t.Fatal("Get: expected entry, got none")
	}
	if e.Profile.Child.Name != "Child c-1" {
		t.Errorf("Name: got %q, want Child c-1", e.Profile.Child.Name)
	}
}

func TestGet_Missing(t *testing.T) {
	st := New(5 * time.Minute)
	if _, ok := st.Get("unknown"); ok {
		t.Fatal("Get on empty store: expected false, got true")
	}
}

func TestGet_StaleHidden(t *testing.T) {
	base := time.Date(2026, time.October, 17, 12, 0, 0, 0, time.UTC)
	st := New(5 * time.Minute)
	st.now = fixedClock(base.Add(-10 * time.Minute))
	st.Put(profile("old"))

	st.now = fixedClock(base)
	if _, ok := st.Get("old"); ok {
		t.Error("Get returned an entry past its TTL")
	}
	if st.Count() != 1 {
		t.Errorf("Count: got %d, want 1 before eviction", st.Count())
	}
}

func TestPut_Overwrites(t *testing.T) {
	st := New(5 * time.Minute)
	p := profile("c")
	st.Put(p)
	p.Completed = []types.CompletedDose{{VaccineID: "hepb", DoseNumber: 1}}
	st.Put(p)

	e, ok := st.Get("c")
	if !ok {
		t.Fatal("Get: expected entry after two Puts")
	}
	if len(e.Profile.Completed) != 1 {
		t.Errorf("Completed: got %d doses, want 1", len(e.Profile.Completed))
	}
}

func TestPut_CopiesSlices(t *testing.T) {
	st := New(5 * time.Minute)
	p := profile("c")
	p.Measurements = []Measurement{{Type: types.MeasurementHeight, Value: 60}}
	st.Put(p)

	p.Measurements[0].Value = 999

	e, _ := st.Get("c")
	if got := e.Profile.Measurements[0].Value; got != 60 {
		t.Errorf("stored measurement mutated through caller slice: got %v", got)
	}
}

func TestDelete(t *testing.T) {
	st := New(5 * time.Minute)
	st.Put(profile("c"))

	if !st.Delete("c") {
		t.Error("Delete existing: got false")
	}
	if st.Delete("c") {
		t.Error("Delete twice: got true")
	}
	if st.Count() != 0 {
		t.Errorf("Count: got %d, want 0", st.Count())
	}
}

func TestDelete_StaleReportsMissing(t *testing.T) {
	base := time.Date(2026, time.October, 17, 12, 0, 0, 0, time.UTC)
	st := New(5 * time.Minute)
	st.now = fixedClock(base.Add(-10 * time.Minute))
	st.Put(profile("old"))

	st.now = fixedClock(base)
	if st.Delete("old") {
		t.Error("Delete stale: got true, want false to match Get")
	}
	if st.Count() != 0 {
		t.Errorf("Count: got %d, want stale entry removed", st.Count())
	}
}

func TestList_ExcludesStaleAndSorts(t *testing.T) {
	base := time.Date(2026, time.October, 17, 12, 0, 0, 0, time.UTC)
	st := New(5 * time.Minute)

	st.now = fixedClock(base.Add(-10 * time.Minute)) // stale
	st.Put(profile("old"))

	st.now = fixedClock(base)
	st.Put(profile("b"))
	st.Put(profile("a"))

	entries := st.List()
	if len(entries) != 2 {
		t.Fatalf("List: got %d entries, want 2", len(entries))
	}
	if entries[0].Profile.Child.ID != "a" || entries[1].Profile.Child.ID != "b" {
		t.Errorf("List order: got %q,%q, want a,b",
			entries[0].Profile.Child.ID, entries[1].Profile.Child.ID)
	}
}

func TestEvict_RemovesStale(t *testing.T) {
	base := time.Date(2026, time.October, 17, 12, 0, 0, 0, time.UTC)
	st := New(5 * time.Minute)

	st.now = fixedClock(base.Add(-10 * time.Minute))
	st.Put(profile("old1"))
	st.Put(profile("old2"))

	st.now = fixedClock(base)
	st.Put(profile("live"))

	if removed := st.Evict(base); removed != 2 {
		t.Errorf("Evict: removed %d, want 2", removed)
	}
	if st.Count() != 1 {
		t.Errorf("Count after evict: got %d, want 1", st.Count())
	}
}

func TestSetTTL(t *testing.T) {
	base := time.Date(2026, time.October, 17, 12, 0, 0, 0, time.UTC)
	st := New(5 * time.Minute)
	st.now = fixedClock(base.Add(-10 * time.Minute))
	st.Put(profile("c"))

	st.now = fixedClock(base)
	st.SetTTL(time.Hour)
	if _, ok := st.Get("c"); !ok {
		t.Error("Get after extending TTL: expected entry")
	}
}

func TestRun_StopsOnCancel(t *testing.T) {
	st := New(time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		st.Run(ctx)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestEvictInterval_FollowsTTL(t *testing.T) {
	tests := []struct {
		ttl  time.Duration
		want time.Duration
	}{
		{24 * time.Hour, 12 * time.Hour},
		{10 * time.Second, 5 * time.Second},
		{time.Second, time.Second},
		{0, time.Second},
	}
	st := New(time.Hour)
	for _, tt := range tests {
		st.SetTTL(tt.ttl)
		if got := st.evictInterval(); got != tt.want {
			t.Errorf("ttl %v: interval %v, want %v", tt.ttl, got, tt.want)
		}
	}
}

func TestRun_ReschedulesOnSetTTL(t *testing.T) {
	st := New(24 * time.Hour)
	st.Put(profile("c"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		st.Run(ctx)
		close(done)
	}()

	// With the initial TTL the first sweep is 12h away; shrinking the TTL
	// must bring it forward.
	time.Sleep(50 * time.Millisecond)
	st.SetTTL(time.Millisecond)

	deadline := time.Now().Add(3 * time.Second)
	for st.Count() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("Run did not evict after SetTTL shortened the TTL")
		}
		time.Sleep(20 * time.Millisecond)
	}

	cancel()
	<-done
}

func TestConcurrentMixedOps(t *testing.T) {
	st := New(5 * time.Minute)
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(3)
		go func(n int) {
			defer wg.Done()
			st.Put(profile(fmt.Sprintf("c-%d", n%5)))
		}(i)
		go func() {
			defer wg.Done()
			st.List()
		}()
		go func(n int) {
			defer wg.Done()
			st.Get(fmt.Sprintf("c-%d", n%5))
		}(i)
	}
	wg.Wait()

	if st.Count() != 5 {
		t.Errorf("Count after concurrent puts: got %d, want 5", st.Count())
	}
}
