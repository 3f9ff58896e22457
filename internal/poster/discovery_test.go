package poster

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/odezzy/wall_api/internal/model"
	"github.com/odezzy/wall_api/util/geo"
)

func approvedPoster(id byte, title string, coords string, until time.Time) model.Poster {
	return model.Poster{
		ID:               uuid.UUID{id},
		Title:            title,
		Coordinates:      coords,
		Category:         model.CategoryGeneral,
		DisplayUntil:     until,
		ModerationStatus: model.ModerationApproved,
	}
}

func TestDiscoverRadius(t *testing.T) {
	now := day(2025, 6, 1)
	future := day(2025, 6, 20)
	reference := geo.Point{Lat: 31.2304, Lon: 121.4737}

	near := approvedPoster(1, "near", "(31.2400,121.4800)", future)
	far := approvedPoster(2, "far", "(31.4000,121.7000)", future) // ~28 km out

	got := Discover([]model.Poster{near, far}, DiscoverOptions{
		Reference: &reference,
		RadiusKm:  20,
		Now:       now,
	})

	if len(got) != 1 || got[0].Title != "near" {
		t.Fatalf("Discover radius filter = %v posters; want only %q", len(got), "near")
	}

	got = Discover([]model.Poster{near, far}, DiscoverOptions{
		Reference: &reference,
		RadiusKm:  50,
		Now:       now,
	})
	if len(got) != 2 {
		t.Errorf("Discover with 50km radius = %v posters; want 2", len(got))
	}
}

func TestDiscoverNoReferenceSkipsDistance(t *testing.T) {
	now := day(2025, 6, 1)
	far := approvedPoster(1, "far", "(48.8566,2.3522)", day(2025, 6, 20))

	got := Discover([]model.Poster{far}, DiscoverOptions{Now: now})
	if len(got) != 1 {
		t.Errorf("Discover without reference = %v posters; want 1", len(got))
	}
}

func TestDiscoverVisibilityAndCoordinates(t *testing.T) {
	now := day(2025, 6, 1)
	future := day(2025, 6, 20)

	pending := approvedPoster(1, "pending", "(31.23,121.47)", future)
	pending.ModerationStatus = model.ModerationPending
	hidden := approvedPoster(2, "hidden", "(31.23,121.47)", future)
	hidden.Hidden = true
	expired := approvedPoster(3, "expired", "(31.23,121.47)", day(2025, 5, 1))
	malformed := approvedPoster(4, "malformed", "not-a-point", future)
	ok := approvedPoster(5, "ok", "(31.23,121.47)", future)

	got := Discover([]model.Poster{pending, hidden, expired, malformed, ok}, DiscoverOptions{Now: now})
	if len(got) != 1 || got[0].Title != "ok" {
		t.Fatalf("Discover = %v; want only the visible poster", titles(got))
	}
}

func TestDiscoverCategoryFilter(t *testing.T) {
	now := day(2025, 6, 1)
	future := day(2025, 6, 20)

	general := approvedPoster(1, "general", "(31.23,121.47)", future)
	event := approvedPoster(2, "event", "(31.23,121.47)", future)
	event.Category = model.CategoryEvent

	testCases := []struct {
		name     string
		category model.Category
		want     []string
	}{
		{"specific category", model.CategoryEvent, []string{"event"}},
		{"all matches everything", model.CategoryAll, []string{"event", "general"}},
		{"empty matches everything", "", []string{"event", "general"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Discover([]model.Poster{general, event}, DiscoverOptions{
				Category: tc.category,
				Now:      now,
			})
			assertTitles(t, got, tc.want)
		})
	}
}

func TestDiscoverTextQuery(t *testing.T) {
	now := day(2025, 6, 1)
	future := day(2025, 6, 20)

	jazz := approvedPoster(1, "Jazz Night", "(31.23,121.47)", future)
	jazz.Description = "live music downtown"
	market := approvedPoster(2, "Weekend Market", "(31.23,121.47)", future)
	market.Category = model.CategoryCommunity

	testCases := []struct {
		name  string
		query string
		want  []string
	}{
		{"title match case insensitive", "JAZZ", []string{"Jazz Night"}},
		{"description match", "downtown", []string{"Jazz Night"}},
		{"category match", "community", []string{"Weekend Market"}},
		{"no match", "basketball", nil},
		{"blank matches everything", "   ", []string{"Jazz Night", "Weekend Market"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Discover([]model.Poster{jazz, market}, DiscoverOptions{
				Query: tc.query,
				Now:   now,
			})
			assertTitles(t, got, tc.want)
		})
	}
}

func TestDiscoverOrdering(t *testing.T) {
	now := day(2025, 6, 1)

	laterEvent := approvedPoster(1, "later event", "(31.23,121.47)", day(2025, 7, 1))
	laterEvent.Category = model.CategoryEvent
	laterEvent.EventStartDate = timePtr(day(2025, 6, 15))

	soonEvent := approvedPoster(2, "soon event", "(31.23,121.47)", day(2025, 7, 1))
	soonEvent.Category = model.CategoryEvent
	soonEvent.EventStartDate = timePtr(day(2025, 6, 5))

	noticeA := approvedPoster(3, "notice a", "(31.23,121.47)", day(2025, 6, 10))
	noticeB := approvedPoster(4, "notice b", "(31.23,121.47)", day(2025, 6, 3))

	input := []model.Poster{noticeA, laterEvent, noticeB, soonEvent}
	want := []string{"soon event", "later event", "notice b", "notice a"}

	got := Discover(input, DiscoverOptions{Now: now})
	assertTitles(t, got, want)

	// same input again must yield the identical order
	again := Discover(input, DiscoverOptions{Now: now})
	assertTitles(t, again, want)
}

func TestDiscoverOrderingTiebreak(t *testing.T) {
	now := day(2025, 6, 1)
	until := day(2025, 6, 10)

	a := approvedPoster(1, "a", "(31.23,121.47)", until)
	b := approvedPoster(2, "b", "(31.23,121.47)", until)

	first := Discover([]model.Poster{b, a}, DiscoverOptions{Now: now})
	second := Discover([]model.Poster{a, b}, DiscoverOptions{Now: now})

	assertTitles(t, first, []string{"a", "b"})
	assertTitles(t, second, []string{"a", "b"})
}

func titles(posters []model.Poster) []string {
	out := make([]string, 0, len(posters))
	for _, p := range posters {
		out = append(out, p.Title)
	}
	return out
}

func assertTitles(t *testing.T, got []model.Poster, want []string) {
	t.Helper()
	gotTitles := titles(got)
	if len(gotTitles) != len(want) {
		t.Fatalf("got %v; want %v", gotTitles, want)
	}
	for i := range want {
		if gotTitles[i] != want[i] {
			t.Fatalf("got %v; want %v", gotTitles, want)
		}
	}
}
