package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/odezzy/wall_api/internal/metrics"
	"github.com/odezzy/wall_api/internal/poster"
	"github.com/odezzy/wall_api/util"
	"github.com/odezzy/wall_api/util/tracing"
	"github.com/odezzy/wall_api/util/values"
)

func (api *API) ModerationRoutes() chi.Router {
	mux := chi.NewRouter()

	mux.Group(func(r chi.Router) {
		r.Use(api.RequireModerator)
		r.Method(http.MethodGet, "/posters", Handler(api.ListModerationPosters))
		r.Method(http.MethodGet, "/posters/pending-count", Handler(api.GetPendingCount))
		r.Method(http.MethodPut, "/posters/{posterID}/{action}", Handler(api.ApplyModerationAction))
		r.Method(http.MethodDelete, "/posters/{posterID}", Handler(api.DeletePoster))
	})

	return mux
}

func moderationTab(r *http.Request) (string, bool) {
	tab := r.URL.Query().Get("tab")
	if tab == "" {
		tab = TabPending
	}
	_, ok := tabPredicates[tab]
	return tab, ok
}

func (api *API) ListModerationPosters(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	tab, ok := moderationTab(r)
	if !ok {
		return respondWithError(nil, "unknown moderation tab", values.BadRequestBody, &tc)
	}

	view, status, message, err := api.ListModerationHelper(r.Context(), tab)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
		Data:       view,
	}
}

func (api *API) GetPendingCount(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	count, err := api.PendingCountRepo(r.Context())
	if err != nil {
		return respondWithError(err, "failed to count pending posters", values.Error, &tc)
	}

	return &ServerResponse{
		Message:    "Pending count fetched successfully",
		Status:     values.Success,
		StatusCode: util.StatusCode(values.Success),
		Data:       map[string]int{"pending_count": count},
	}
}

func (api *API) ApplyModerationAction(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	posterID := chi.URLParam(r, "posterID")
	if _, err := util.StringToUUID(posterID); err != nil {
		return respondWithError(err, "invalid poster ID", values.BadRequestBody, &tc)
	}

	action, err := poster.ParseAction(chi.URLParam(r, "action"))
	if err != nil {
		return respondWithError(err, "unknown moderation action", values.BadRequestBody, &tc)
	}

	tab, ok := moderationTab(r)
	if !ok {
		return respondWithError(nil, "unknown moderation tab", values.BadRequestBody, &tc)
	}

	view, status, message, err := api.ApplyModerationHelper(r.Context(), posterID, action, tab)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	metrics.ModerationActionsTotal.WithLabelValues(string(action)).Inc()

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
		Data:       view,
	}
}

func (api *API) DeletePoster(_ http.ResponseWriter, r *http.Request) *ServerResponse {
	tc := r.Context().Value(values.ContextTracingKey).(tracing.Context)

	posterID := chi.URLParam(r, "posterID")
	if _, err := util.StringToUUID(posterID); err != nil {
		return respondWithError(err, "invalid poster ID", values.BadRequestBody, &tc)
	}

	tab, ok := moderationTab(r)
	if !ok {
		return respondWithError(nil, "unknown moderation tab", values.BadRequestBody, &tc)
	}

	view, status, message, err := api.DeletePosterHelper(r.Context(), posterID, tab)
	if err != nil {
		return respondWithError(err, message, status, &tc)
	}

	metrics.ModerationActionsTotal.WithLabelValues("delete").Inc()

	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
		Data:       view,
	}
}
