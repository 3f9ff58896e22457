// Package geocode turns free-text place queries into candidate
// geographic points. The Resolver debounces interactive input and
// guarantees that only the latest query's result is ever applied.
package geocode

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/odezzy/wall_api/internal/http/nominatim"
	"github.com/odezzy/wall_api/internal/metrics"
	"github.com/odezzy/wall_api/util/geo"
	"github.com/redis/go-redis/v9"
)

// Place is a resolved candidate for a text query.
type Place struct {
	Point       geo.Point `json:"point"`
	DisplayName string    `json:"display_name"`
}

// Geocoder is the external lookup collaborator. Best effort only.
type Geocoder interface {
	Search(ctx context.Context, query string, limit int) ([]Place, error)
}

// NominatimSource adapts the Nominatim client to the Geocoder interface.
type NominatimSource struct {
	Client *nominatim.Client
}

func (s NominatimSource) Search(ctx context.Context, query string, limit int) ([]Place, error) {
	results, err := s.Client.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	places := make([]Place, 0, len(results))
	for _, r := range results {
		lat, latErr := strconv.ParseFloat(r.Lat, 64)
		lon, lonErr := strconv.ParseFloat(r.Lon, 64)
		if latErr != nil || lonErr != nil {
			continue
		}
		places = append(places, Place{
			Point:       geo.Point{Lat: lat, Lon: lon},
			DisplayName: r.DisplayName,
		})
	}
	return places, nil
}

const (
	// MinQueryLen is the shortest query that triggers a lookup.
	MinQueryLen = 2

	defaultDebounce = 300 * time.Millisecond
	defaultLimit    = 5
	cacheTTL        = 24 * time.Hour
)

// Resolver resolves place queries with caching, debouncing and
// cancellation of superseded lookups. One Resolver serves one
// interactive session; Resolve alone is safe for shared use.
type Resolver struct {
	source   Geocoder
	cache    *redis.Client // optional
	debounce time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	cancel  context.CancelFunc
	current string
	closed  bool
}

// NewResolver creates a Resolver. cache may be nil.
func NewResolver(source Geocoder, cache *redis.Client) *Resolver {
	return &Resolver{
		source:   source,
		cache:    cache,
		debounce: defaultDebounce,
	}
}

// Resolve looks a query up immediately. Queries shorter than
// MinQueryLen never trigger a lookup. Lookup failures degrade to an
// empty candidate list; the caller decides how to present "no results".
func (r *Resolver) Resolve(ctx context.Context, query string) []Place {
	query = strings.TrimSpace(query)
	if len([]rune(query)) < MinQueryLen {
		return nil
	}

	if places, ok := r.cached(ctx, query); ok {
		return places
	}

	places, err := r.source.Search(ctx, query, defaultLimit)
	if err != nil {
		if ctx.Err() == nil {
			log.Printf("geocode lookup failed for %q: %v", query, err)
		}
		return []Place{}
	}
	if places == nil {
		places = []Place{}
	}

	r.store(ctx, query, places)
	return places
}

// ResolveDebounced schedules a lookup after the debounce window. Each
// call restarts the window, cancels any in-flight lookup, and marks its
// query as current; apply only ever runs with the latest query's
// result. Queries below the minimum length clear any pending work and
// apply an empty result immediately.
func (r *Resolver) ResolveDebounced(ctx context.Context, query string, apply func(query string, places []Place)) {
	query = strings.TrimSpace(query)

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.current = query

	if len([]rune(query)) < MinQueryLen {
		r.mu.Unlock()
		apply(query, nil)
		return
	}

	r.timer = time.AfterFunc(r.debounce, func() {
		r.mu.Lock()
		if r.closed || r.current != query {
			r.mu.Unlock()
			return
		}
		lookupCtx, cancel := context.WithCancel(ctx)
		r.cancel = cancel
		r.mu.Unlock()

		places := r.Resolve(lookupCtx, query)
		cancel()

		// a newer query may have been issued while we were looking up
		r.mu.Lock()
		stale := r.closed || r.current != query
		r.mu.Unlock()
		if stale {
			return
		}
		apply(query, places)
	})
	r.mu.Unlock()
}

// SetDebounce overrides the debounce window. Intended for tests.
func (r *Resolver) SetDebounce(d time.Duration) {
	r.mu.Lock()
	r.debounce = d
	r.mu.Unlock()
}

// Close cancels any pending or in-flight lookup. A closed Resolver
// never applies another result; used when the owning session tears
// down.
func (r *Resolver) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
}

func cacheKey(query string) string {
	return "geocode:" + strings.ToLower(query)
}

func (r *Resolver) cached(ctx context.Context, query string) ([]Place, bool) {
	if r.cache == nil {
		return nil, false
	}

	raw, err := r.cache.Get(ctx, cacheKey(query)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("geocode cache read failed: %v", err)
		}
		metrics.GeocodeCacheMissesTotal.Inc()
		return nil, false
	}

	var places []Place
	if err := json.Unmarshal(raw, &places); err != nil {
		metrics.GeocodeCacheMissesTotal.Inc()
		return nil, false
	}
	metrics.GeocodeCacheHitsTotal.Inc()
	return places, true
}

func (r *Resolver) store(ctx context.Context, query string, places []Place) {
	if r.cache == nil {
		return
	}
	raw, err := json.Marshal(places)
	if err != nil {
		return
	}
	if err := r.cache.Set(ctx, cacheKey(query), raw, cacheTTL).Err(); err != nil {
		log.Printf("geocode cache write failed: %v", err)
	}
}
