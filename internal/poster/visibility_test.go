package poster

import (
	"testing"
	"time"

	"github.com/odezzy/wall_api/internal/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestLifecycle(t *testing.T) {
	now := day(2025, 1, 11)

	testCases := []struct {
		name         string
		displayUntil time.Time
		storedStatus model.LifecycleStatus
		want         model.LifecycleStatus
	}{
		{"date passed", day(2025, 1, 10), model.LifecycleActive, model.LifecycleExpired},
		{"date ahead", day(2025, 1, 20), model.LifecycleActive, model.LifecycleActive},
		{"stale stored expired is ignored", day(2025, 1, 20), model.LifecycleExpired, model.LifecycleActive},
		{"stale stored active is ignored", day(2025, 1, 5), model.LifecycleActive, model.LifecycleExpired},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := model.Poster{DisplayUntil: tc.displayUntil, Status: tc.storedStatus}
			if got := Lifecycle(p, now); got != tc.want {
				t.Errorf("Lifecycle = %v; want %v", got, tc.want)
			}
		})
	}
}

func TestIsExpiredBoundary(t *testing.T) {
	deadline := day(2025, 1, 10)
	p := model.Poster{DisplayUntil: deadline}

	if IsExpired(p, deadline) {
		t.Error("poster expired exactly at its deadline; want still active")
	}
	if !IsExpired(p, deadline.Add(time.Second)) {
		t.Error("poster still active after its deadline")
	}
}

func TestIsPubliclyVisible(t *testing.T) {
	now := day(2025, 1, 11)
	future := day(2025, 1, 20)
	past := day(2025, 1, 10)

	testCases := []struct {
		name         string
		moderation   model.ModerationStatus
		hidden       bool
		displayUntil time.Time
		want         bool
	}{
		{"approved and current", model.ModerationApproved, false, future, true},
		{"approved but hidden", model.ModerationApproved, true, future, false},
		{"approved but expired", model.ModerationApproved, false, past, false},
		{"pending", model.ModerationPending, false, future, false},
		{"rejected", model.ModerationRejected, false, future, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := model.Poster{
				ModerationStatus: tc.moderation,
				Hidden:           tc.hidden,
				DisplayUntil:     tc.displayUntil,
			}
			if got := IsPubliclyVisible(p, now); got != tc.want {
				t.Errorf("IsPubliclyVisible = %v; want %v", got, tc.want)
			}
		})
	}
}

func TestProximityTier(t *testing.T) {
	now := day(2025, 6, 1)

	testCases := []struct {
		name   string
		poster model.Poster
		want   Tier
	}{
		{
			"deadline today",
			model.Poster{Category: model.CategoryGeneral, DisplayUntil: now},
			TierNear,
		},
		{
			"deadline in three days",
			model.Poster{Category: model.CategoryGeneral, DisplayUntil: day(2025, 6, 4)},
			TierNear,
		},
		{
			"deadline in four days",
			model.Poster{Category: model.CategoryGeneral, DisplayUntil: day(2025, 6, 5)},
			TierSoon,
		},
		{
			"deadline in seven days",
			model.Poster{Category: model.CategoryGeneral, DisplayUntil: day(2025, 6, 8)},
			TierSoon,
		},
		{
			"deadline in eight days",
			model.Poster{Category: model.CategoryGeneral, DisplayUntil: day(2025, 6, 9)},
			TierFar,
		},
		{
			"event uses start date",
			model.Poster{
				Category:       model.CategoryEvent,
				DisplayUntil:   day(2025, 7, 1),
				EventStartDate: timePtr(day(2025, 6, 3)),
			},
			TierNear,
		},
		{
			"event without start date falls back to deadline",
			model.Poster{Category: model.CategoryEvent, DisplayUntil: day(2025, 7, 1)},
			TierFar,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ProximityTier(tc.poster, now); got != tc.want {
				t.Errorf("ProximityTier = %v; want %v", got, tc.want)
			}
		})
	}
}

func timePtr(t time.Time) *time.Time { return &t }
