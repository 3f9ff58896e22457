package rest

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/odezzy/wall_api/internal/metrics"
	"github.com/odezzy/wall_api/internal/model"
	"github.com/odezzy/wall_api/internal/poster"
	"github.com/odezzy/wall_api/util"
	"github.com/odezzy/wall_api/util/geo"
	"github.com/odezzy/wall_api/util/tracing"
	"github.com/odezzy/wall_api/util/values"
)

func (api *API) PosterRoutes() chi.Router {
	mux := chi.NewRouter()

	mux.Method(http.MethodGet, "/", Handler(api.DiscoverPosters))
	mux.Method(http.MethodPost, "/", Handler(api.CreatePoster))
	mux.Method(http.MethodGet, "/{posterID}", Handler(api.GetPosterByID))

	return mux
}

// DiscoverPosters is the public "near me" listing. When the caller
// supplies no location the configured default reference point is used,
// so discovery never blocks on geolocation.
func (api *API) DiscoverPosters(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)
	metrics.DiscoveryRequestsTotal.Inc()

	params := model.DiscoverPostersParams{
		Latitude:  api.Config.DefaultLatitude,
		Longitude: api.Config.DefaultLongitude,
		RadiusKm:  api.Config.DefaultRadiusKm,
		Category:  model.CategoryAll,
		Query:     strings.TrimSpace(r.URL.Query().Get("q")),
	}

	latStr, lonStr := r.URL.Query().Get("lat"), r.URL.Query().Get("lon")
	if latStr != "" && lonStr != "" {
		lat, latErr := strconv.ParseFloat(latStr, 64)
		lon, lonErr := strconv.ParseFloat(lonStr, 64)
		if latErr != nil || lonErr != nil {
			return respondWithError(nil, "invalid lat/lon", values.BadRequestBody, &tc)
		}
		params.Latitude = lat
		params.Longitude = lon
	}
	if err := util.ValidateStruct(params); err != nil {
		return respondWithError(err, "coordinates out of range", values.BadRequestBody, &tc)
	}

	if radiusStr := r.URL.Query().Get("radius"); radiusStr != "" {
		radius, err := strconv.ParseFloat(radiusStr, 64)
		if err != nil || radius <= 0 {
			return respondWithError(err, "invalid radius", values.BadRequestBody, &tc)
		}
		params.RadiusKm = radius
	}

	if category := r.URL.Query().Get("category"); category != "" {
		c := model.Category(category)
		if c != model.CategoryAll && !c.Valid() {
			return respondWithError(nil, "unknown category", values.BadRequestBody, &tc)
		}
		params.Category = c
	}

	posters, status, message, err := api.DiscoverPostersHelper(r.Context(), params)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}
	if posters == nil {
		posters = []model.Poster{}
	}
	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
		Data:       posters,
	}
}

func (api *API) CreatePoster(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	var req model.CreatePosterRequest
	if decodeErr := util.DecodeJSONBody(&tc, r.Body, &req); decodeErr != nil {
		return respondWithError(decodeErr, "unable to decode request", values.BadRequestBody, &tc)
	}

	if missing := poster.MissingFields(req); len(missing) > 0 {
		metrics.SubmissionRejectionsTotal.Inc()
		resp := respondWithError(nil, "Missing required fields", values.BadRequestBody, &tc)
		resp.Data = map[string]interface{}{"missing_fields": missing}
		return resp
	}

	if vErr := poster.ValidateSubmission(req, time.Now()); vErr != nil {
		metrics.SubmissionRejectionsTotal.Inc()
		resp := respondWithError(vErr, vErr.Message, values.BadRequestBody, &tc)
		resp.Data = map[string]interface{}{"field": vErr.Field}
		return resp
	}

	point, ok := geo.ParsePoint(req.Coordinates)
	if !ok {
		metrics.SubmissionRejectionsTotal.Inc()
		return respondWithError(nil, "invalid coordinates", values.BadRequestBody, &tc)
	}
	if err := util.ValidateStruct(struct {
		Lat float64 `validate:"latitude"`
		Lon float64 `validate:"longitude"`
	}{point.Lat, point.Lon}); err != nil {
		metrics.SubmissionRejectionsTotal.Inc()
		return respondWithError(err, "coordinates out of range", values.BadRequestBody, &tc)
	}

	// embedded base64 payload, with or without a data-URI prefix
	imageData := req.PosterImage.Data
	if idx := strings.Index(imageData, ","); idx >= 0 {
		imageData = imageData[idx+1:]
	}
	imageURL, err := api.Deps.Cloudinary.UploadBase64(r.Context(), req.PosterImage.Type, imageData, "posters")
	if err != nil {
		return respondWithError(err, "failed to upload image", values.Error, &tc)
	}

	endDate := req.EventEndDate
	if req.Category == model.CategoryEvent && endDate == nil {
		endDate = req.EventStartDate
	}

	newPoster := model.Poster{
		Title:          req.Title,
		Description:    req.Description,
		LocationName:   req.LocationName,
		Coordinates:    geo.FormatPoint(point),
		Category:       req.Category,
		PosterImage:    imageURL,
		Link:           req.Link,
		DisplayUntil:   *req.DisplayUntil,
		EventStartDate: req.EventStartDate,
		EventEndDate:   endDate,
	}

	created, status, message, err := api.CreatePosterHelper(r.Context(), newPoster)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	metrics.SubmissionsTotal.Inc()
	go api.refreshPendingBadge()

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
		Data:       created,
	}
}

func (api *API) GetPosterByID(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	posterID := chi.URLParam(r, "posterID")
	if _, err := util.StringToUUID(posterID); err != nil {
		return respondWithError(err, "invalid poster ID", values.BadRequestBody, &tc)
	}

	p, err := api.GetPosterByIDRepo(r.Context(), posterID)
	if err == ErrPosterNotFound {
		return respondWithError(err, "poster not found", values.NotFound, &tc)
	}
	if err != nil {
		return respondWithError(err, "failed to fetch poster", values.Error, &tc)
	}

	// unmoderated and expired posters do not exist publicly
	if !poster.IsPubliclyVisible(p, time.Now()) {
		return respondWithError(nil, "poster not found", values.NotFound, &tc)
	}

	return &ServerResponse{
		Message:    "Poster fetched successfully",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
		Data:       p,
	}
}
