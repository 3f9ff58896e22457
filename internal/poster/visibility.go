// Package poster implements the poster lifecycle rules: visibility,
// discovery filtering, submission validation, moderation transitions
// and marker presentation.
package poster

import (
	"time"

	"github.com/odezzy/wall_api/internal/model"
)

// Tier buckets how soon a poster's relevant date arrives.
type Tier string

const (
	TierNear Tier = "near"
	TierSoon Tier = "soon"
	TierFar  Tier = "far"
)

// Lifecycle derives the authoritative lifecycle status from the display
// window. The stored model.Poster.Status is only a query hint and may
// lag behind; the date always wins.
func Lifecycle(p model.Poster, now time.Time) model.LifecycleStatus {
	if IsExpired(p, now) {
		return model.LifecycleExpired
	}
	return model.LifecycleActive
}

// IsExpired reports whether the display window has passed.
func IsExpired(p model.Poster, now time.Time) bool {
	return now.After(p.DisplayUntil)
}

// IsPubliclyVisible reports whether a poster may be shown to end users:
// approved, not hidden, and inside its display window.
func IsPubliclyVisible(p model.Poster, now time.Time) bool {
	return p.ModerationStatus == model.ModerationApproved &&
		!p.Hidden &&
		Lifecycle(p, now) == model.LifecycleActive
}

// ProximityTier buckets the poster by distance-in-days to its relevant
// date: the event start for event posters, the display deadline for
// everything else. Boundaries are inclusive on the nearer tier.
func ProximityTier(p model.Poster, now time.Time) Tier {
	target := p.DisplayUntil
	if p.Category == model.CategoryEvent && p.EventStartDate != nil {
		target = *p.EventStartDate
	}

	days := target.Sub(now).Hours() / 24
	switch {
	case days <= 3:
		return TierNear
	case days <= 7:
		return TierSoon
	default:
		return TierFar
	}
}
