package geocode

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/odezzy/wall_api/util/geo"
)

type fakeGeocoder struct {
	mu      sync.Mutex
	calls   []string
	results map[string][]Place
	err     error
	delay   time.Duration
}

func (f *fakeGeocoder) Search(ctx context.Context, query string, limit int) ([]Place, error) {
	f.mu.Lock()
	f.calls = append(f.calls, query)
	f.mu.Unlock()

	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.results[query], nil
}

func (f *fakeGeocoder) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func TestResolveShortQuery(t *testing.T) {
	source := &fakeGeocoder{}
	r := NewResolver(source, nil)

	for _, query := range []string{"", " ", "a", " a "} {
		if got := r.Resolve(context.Background(), query); got != nil {
			t.Errorf("Resolve(%q) = %v; want nil", query, got)
		}
	}
	if n := source.callCount(); n != 0 {
		t.Errorf("short queries triggered %d lookups; want 0", n)
	}
}

func TestResolveReturnsCandidates(t *testing.T) {
	source := &fakeGeocoder{
		results: map[string][]Place{
			"shanghai": {
				{Point: geo.Point{Lat: 31.2304, Lon: 121.4737}, DisplayName: "Shanghai, China"},
			},
		},
	}
	r := NewResolver(source, nil)

	got := r.Resolve(context.Background(), "shanghai")
	if len(got) != 1 || got[0].DisplayName != "Shanghai, China" {
		t.Fatalf("Resolve = %v; want the Shanghai candidate", got)
	}
}

func TestResolveFailureDegradesToEmpty(t *testing.T) {
	source := &fakeGeocoder{err: errors.New("upstream down")}
	r := NewResolver(source, nil)

	got := r.Resolve(context.Background(), "shanghai")
	if got == nil || len(got) != 0 {
		t.Errorf("Resolve on failure = %v; want empty non-nil slice", got)
	}
}

func TestResolveDebouncedAppliesLatestOnly(t *testing.T) {
	source := &fakeGeocoder{
		results: map[string][]Place{
			"sh":       {{DisplayName: "stale"}},
			"shanghai": {{DisplayName: "Shanghai, China"}},
		},
	}
	r := NewResolver(source, nil)
	r.SetDebounce(20 * time.Millisecond)
	defer r.Close()

	applied := make(chan string, 4)
	apply := func(query string, places []Place) {
		applied <- query
	}

	// keystrokes arriving faster than the debounce window
	r.ResolveDebounced(context.Background(), "sh", apply)
	time.Sleep(5 * time.Millisecond)
	r.ResolveDebounced(context.Background(), "shang", apply)
	time.Sleep(5 * time.Millisecond)
	r.ResolveDebounced(context.Background(), "shanghai", apply)

	select {
	case got := <-applied:
		if got != "shanghai" {
			t.Fatalf("applied query %q; want %q", got, "shanghai")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("debounced lookup never applied")
	}

	// superseded queries must never have reached the source
	if n := source.callCount(); n != 1 {
		t.Errorf("source called %d times; want 1", n)
	}
	select {
	case got := <-applied:
		t.Errorf("stale apply for %q after the latest query", got)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestResolveDebouncedSupersededDuringLookup(t *testing.T) {
	source := &fakeGeocoder{
		delay: 50 * time.Millisecond,
		results: map[string][]Place{
			"old place": {{DisplayName: "old"}},
			"new place": {{DisplayName: "new"}},
		},
	}
	r := NewResolver(source, nil)
	r.SetDebounce(time.Millisecond)
	defer r.Close()

	applied := make(chan string, 2)
	apply := func(query string, places []Place) {
		applied <- query
	}

	r.ResolveDebounced(context.Background(), "old place", apply)
	// wait for the first lookup to be in flight, then supersede it
	time.Sleep(20 * time.Millisecond)
	r.ResolveDebounced(context.Background(), "new place", apply)

	select {
	case got := <-applied:
		if got != "new place" {
			t.Fatalf("applied query %q; want %q", got, "new place")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("debounced lookup never applied")
	}
}

func TestResolveDebouncedShortQueryClearsResults(t *testing.T) {
	source := &fakeGeocoder{}
	r := NewResolver(source, nil)
	r.SetDebounce(time.Millisecond)
	defer r.Close()

	var (
		mu     sync.Mutex
		query  string
		places []Place
		called bool
	)
	r.ResolveDebounced(context.Background(), "a", func(q string, p []Place) {
		mu.Lock()
		defer mu.Unlock()
		query, places, called = q, p, true
	})

	mu.Lock()
	defer mu.Unlock()
	if !called {
		t.Fatal("short query did not apply immediately")
	}
	if query != "a" || places != nil {
		t.Errorf("apply(%q, %v); want (%q, nil)", query, places, "a")
	}
	if n := source.callCount(); n != 0 {
		t.Errorf("short query triggered %d lookups; want 0", n)
	}
}

func TestClosedResolverNeverApplies(t *testing.T) {
	source := &fakeGeocoder{
		results: map[string][]Place{"shanghai": {{DisplayName: "Shanghai, China"}}},
	}
	r := NewResolver(source, nil)
	r.SetDebounce(10 * time.Millisecond)

	applied := make(chan string, 1)
	r.ResolveDebounced(context.Background(), "shanghai", func(q string, p []Place) {
		applied <- q
	})
	r.Close()

	select {
	case got := <-applied:
		t.Errorf("closed resolver applied %q", got)
	case <-time.After(100 * time.Millisecond):
	}

	// further calls on a closed resolver are no-ops
	r.ResolveDebounced(context.Background(), "shanghai", func(q string, p []Place) {
		applied <- q
	})
	select {
	case got := <-applied:
		t.Errorf("closed resolver applied %q", got)
	case <-time.After(100 * time.Millisecond):
	}
}
