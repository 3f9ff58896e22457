package rest

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/odezzy/wall_api/internal/geocode"
	"github.com/odezzy/wall_api/util"
	"github.com/odezzy/wall_api/util/tracing"
	"github.com/odezzy/wall_api/util/values"
)

func (api *API) PlacesRoutes() chi.Router {
	mux := chi.NewRouter()

	// Forward geocoding (search for a place by name)
	// Query params: ?text=...
	mux.Method(http.MethodGet, "/search", Handler(api.SearchPlacesHandler))

	return mux
}

// SearchPlacesHandler resolves a free-text place query into candidate
// points. Lookup failures and short queries both yield an empty list;
// presentation of "no results" is the caller's concern.
func (api *API) SearchPlacesHandler(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	text := strings.TrimSpace(r.URL.Query().Get("text"))
	if text == "" {
		return respondWithError(nil, "Missing or empty 'text' query parameter", values.BadRequestBody, &tc)
	}

	places := api.Deps.Geocoder.Resolve(r.Context(), text)

	type simplifiedResult struct {
		Name        string  `json:"name"`
		DisplayName string  `json:"display_name"`
		Lat         float64 `json:"lat"`
		Lon         float64 `json:"lon"`
	}
	simplified := make([]simplifiedResult, 0, len(places))
	for _, place := range places {
		simplified = append(simplified, simplifiedResult{
			Name:        placeShortName(place),
			DisplayName: place.DisplayName,
			Lat:         place.Point.Lat,
			Lon:         place.Point.Lon,
		})
	}

	return &ServerResponse{
		Message:    "Places fetched successfully",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
		Data:       simplified,
	}
}

func placeShortName(place geocode.Place) string {
	if idx := strings.Index(place.DisplayName, ","); idx > 0 {
		return place.DisplayName[:idx]
	}
	return place.DisplayName
}
