package poster

import (
	"sort"
	"strings"
	"time"

	"github.com/odezzy/wall_api/internal/model"
	"github.com/odezzy/wall_api/util/geo"
)

// DefaultRadiusKm bounds "near me" discovery when the caller does not
// pick a radius.
const DefaultRadiusKm = 20.0

// DiscoverOptions are the inputs to a discovery pass. Reference is the
// user's location or a resolved place; when nil, no distance filtering
// happens. The reference point is always passed in explicitly so the
// filter stays a pure function of its inputs.
type DiscoverOptions struct {
	Reference *geo.Point
	RadiusKm  float64
	Category  model.Category // CategoryAll or empty matches everything
	Query     string
	Now       time.Time
}

// Discover reduces a poster collection to the ordered, publicly visible
// result set for one viewer. Posters with unparseable coordinates are
// dropped, never fatal. The returned order is total and reproducible:
// event-dated posters first by event start, then the rest by display
// deadline, ties broken by id.
func Discover(posters []model.Poster, opts DiscoverOptions) []model.Poster {
	radius := opts.RadiusKm
	if radius <= 0 {
		radius = DefaultRadiusKm
	}
	query := strings.ToLower(strings.TrimSpace(opts.Query))

	out := make([]model.Poster, 0, len(posters))
	for _, p := range posters {
		if !IsPubliclyVisible(p, opts.Now) {
			continue
		}
		point, ok := geo.ParsePoint(p.Coordinates)
		if !ok {
			continue
		}
		if opts.Reference != nil && geo.DistanceKm(*opts.Reference, point) > radius {
			continue
		}
		if opts.Category != "" && opts.Category != model.CategoryAll && p.Category != opts.Category {
			continue
		}
		if query != "" && !matchesQuery(p, query) {
			continue
		}
		out = append(out, p)
	}

	sort.Slice(out, func(i, j int) bool {
		return discoverLess(out[i], out[j])
	})

	return out
}

func matchesQuery(p model.Poster, query string) bool {
	return strings.Contains(strings.ToLower(p.Title), query) ||
		strings.Contains(strings.ToLower(p.Description), query) ||
		strings.Contains(strings.ToLower(string(p.Category)), query)
}

func discoverLess(a, b model.Poster) bool {
	aEvent := a.EventStartDate != nil
	bEvent := b.EventStartDate != nil
	if aEvent != bEvent {
		// event-dated posters always sort before undated ones
		return aEvent
	}

	ka, kb := a.DisplayUntil, b.DisplayUntil
	if aEvent {
		ka, kb = *a.EventStartDate, *b.EventStartDate
	}
	if !ka.Equal(kb) {
		return ka.Before(kb)
	}

	return a.ID.String() < b.ID.String()
}
