package poster

import (
	"time"

	"github.com/odezzy/wall_api/internal/model"
)

// IconSize is the tiered marker size used on the map.
type IconSize string

const (
	SizeLarge  IconSize = "large"
	SizeMedium IconSize = "medium"
	SizeBase   IconSize = "base"
)

// MarkerBoxPx is the bounding box markers with known image dimensions
// are fitted into.
const MarkerBoxPx = 64

// IconSizeTier maps temporal proximity to a marker size.
func IconSizeTier(p model.Poster, now time.Time) IconSize {
	switch ProximityTier(p, now) {
	case TierNear:
		return SizeLarge
	case TierSoon:
		return SizeMedium
	default:
		return SizeBase
	}
}

// SizePixels returns the square marker edge for a tier.
func SizePixels(size IconSize) int {
	switch size {
	case SizeLarge:
		return 48
	case SizeMedium:
		return 36
	default:
		return 28
	}
}

// FitMarker scales an image's natural dimensions to fit within the
// MarkerBoxPx bounding box, preserving aspect ratio. It returns (0, 0)
// when the dimensions are unknown, in which case the caller falls back
// to the tiered square. Presentation only; never affects filtering.
func FitMarker(naturalW, naturalH int) (int, int) {
	if naturalW <= 0 || naturalH <= 0 {
		return 0, 0
	}
	if naturalW <= MarkerBoxPx && naturalH <= MarkerBoxPx {
		return naturalW, naturalH
	}

	if naturalW >= naturalH {
		h := naturalH * MarkerBoxPx / naturalW
		if h < 1 {
			h = 1
		}
		return MarkerBoxPx, h
	}
	w := naturalW * MarkerBoxPx / naturalH
	if w < 1 {
		w = 1
	}
	return w, MarkerBoxPx
}
