package poster

import (
	"testing"

	"github.com/odezzy/wall_api/internal/model"
)

func TestIconSizeTier(t *testing.T) {
	now := day(2025, 6, 1)

	testCases := []struct {
		name   string
		poster model.Poster
		want   IconSize
	}{
		{
			"near deadline",
			model.Poster{Category: model.CategoryGeneral, DisplayUntil: day(2025, 6, 2)},
			SizeLarge,
		},
		{
			"soon deadline",
			model.Poster{Category: model.CategoryGeneral, DisplayUntil: day(2025, 6, 7)},
			SizeMedium,
		},
		{
			"far deadline",
			model.Poster{Category: model.CategoryGeneral, DisplayUntil: day(2025, 7, 1)},
			SizeBase,
		},
		{
			"event start drives the tier",
			model.Poster{
				Category:       model.CategoryEvent,
				DisplayUntil:   day(2025, 7, 1),
				EventStartDate: timePtr(day(2025, 6, 2)),
			},
			SizeLarge,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IconSizeTier(tc.poster, now); got != tc.want {
				t.Errorf("IconSizeTier = %v; want %v", got, tc.want)
			}
		})
	}
}

func TestSizePixels(t *testing.T) {
	testCases := []struct {
		size IconSize
		want int
	}{
		{SizeLarge, 48},
		{SizeMedium, 36},
		{SizeBase, 28},
		{IconSize("unknown"), 28},
	}

	for _, tc := range testCases {
		if got := SizePixels(tc.size); got != tc.want {
			t.Errorf("SizePixels(%v) = %v; want %v", tc.size, got, tc.want)
		}
	}
}

func TestFitMarker(t *testing.T) {
	testCases := []struct {
		name   string
		w, h   int
		wantW  int
		wantH  int
	}{
		{"unknown dimensions", 0, 0, 0, 0},
		{"negative dimensions", -10, 5, 0, 0},
		{"already fits", 40, 30, 40, 30},
		{"exactly the box", 64, 64, 64, 64},
		{"wide landscape", 128, 64, 64, 32},
		{"tall portrait", 64, 128, 32, 64},
		{"large square", 512, 512, 64, 64},
		{"very wide strip", 640, 8, 64, 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w, h := FitMarker(tc.w, tc.h)
			if w != tc.wantW || h != tc.wantH {
				t.Errorf("FitMarker(%d, %d) = (%d, %d); want (%d, %d)",
					tc.w, tc.h, w, h, tc.wantW, tc.wantH)
			}
			if w > MarkerBoxPx || h > MarkerBoxPx {
				t.Errorf("FitMarker(%d, %d) exceeds the %dpx box", tc.w, tc.h, MarkerBoxPx)
			}
		})
	}
}
