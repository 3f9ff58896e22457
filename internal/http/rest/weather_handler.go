package rest

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/odezzy/wall_api/internal/http/openweather"
	"github.com/odezzy/wall_api/util"
	"github.com/odezzy/wall_api/util/values"
)

const (
	weatherCacheKey = "weather:current"
	weatherCacheTTL = 30 * time.Minute
)

func (api *API) WeatherRoutes() chi.Router {
	mux := chi.NewRouter()
	mux.Method(http.MethodGet, "/", Handler(api.GetWeather))
	return mux
}

// GetWeather serves current weather for the default reference point.
// Auxiliary data: a total lookup failure degrades to a placeholder
// payload rather than an error, and results are cached for 30 minutes.
func (api *API) GetWeather(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	ok := func(data interface{}) *ServerResponse {
		return &ServerResponse{
			Message:    "Weather fetched successfully",
			Status:     values.Success,
			StatusCode: util.StatusCode(values.Success),
			Data:       data,
		}
	}

	// cache trouble is not weather trouble; any miss falls through to the API
	if cache := api.Deps.Cache; cache != nil {
		raw, err := cache.Get(r.Context(), weatherCacheKey).Bytes()
		if err == nil {
			var cached openweather.CurrentWeather
			if json.Unmarshal(raw, &cached) == nil {
				return ok(&cached)
			}
		}
	}

	weather, err := api.Deps.Weather.Current(r.Context(), api.Config.DefaultLatitude, api.Config.DefaultLongitude)
	if err != nil {
		return ok(openweather.Fallback())
	}

	if cache := api.Deps.Cache; cache != nil {
		if raw, marshalErr := json.Marshal(weather); marshalErr == nil {
			cache.Set(r.Context(), weatherCacheKey, raw, weatherCacheTTL)
		}
	}

	return ok(weather)
}
