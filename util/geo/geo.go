package geo

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const earthRadiusKm = 6371.0

// Point is a latitude/longitude pair in degrees (WGS 84).
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// DistanceKm returns the great-circle distance between two points
// using the Haversine formula.
func DistanceKm(a, b Point) float64 {
	lat1 := a.Lat * math.Pi / 180.0
	lon1 := a.Lon * math.Pi / 180.0
	lat2 := b.Lat * math.Pi / 180.0
	lon2 := b.Lon * math.Pi / 180.0

	dLat := lat2 - lat1
	dLon := lon2 - lon1

	hSin := math.Sin(dLat / 2)
	vSin := math.Sin(dLon / 2)

	h := hSin*hSin + math.Cos(lat1)*math.Cos(lat2)*vSin*vSin

	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}

// ParsePoint parses the stored "(lat,lon)" text encoding. The second
// return value is false for any malformed input; it never panics.
func ParsePoint(text string) (Point, bool) {
	s := strings.TrimSpace(text)
	if len(s) < 5 || s[0] != '(' || s[len(s)-1] != ')' {
		return Point{}, false
	}

	parts := strings.Split(s[1:len(s)-1], ",")
	if len(parts) != 2 {
		return Point{}, false
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Point{}, false
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Point{}, false
	}

	if math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(lon) || math.IsInf(lon, 0) {
		return Point{}, false
	}

	return Point{Lat: lat, Lon: lon}, true
}

// FormatPoint is the inverse of ParsePoint, fixed at 6 decimal places.
func FormatPoint(p Point) string {
	return fmt.Sprintf("(%.6f,%.6f)", p.Lat, p.Lon)
}
