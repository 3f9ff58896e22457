package rest

import (
	"context"
	"time"

	"github.com/odezzy/wall_api/internal/model"
	"github.com/odezzy/wall_api/internal/poster"
	"github.com/odezzy/wall_api/util/geo"
	"github.com/odezzy/wall_api/util/values"
)

func (api *API) CreatePosterHelper(ctx context.Context, p model.Poster) (model.Poster, string, string, error) {
	created, err := api.CreatePosterRepo(ctx, p)
	if err != nil {
		return model.Poster{}, values.Error, "Failed to save poster", err
	}
	return created, values.Created, "Poster submitted for review", nil
}

// DiscoverPostersHelper fetches the public collection and runs the
// discovery filter against the caller's reference point.
func (api *API) DiscoverPostersHelper(ctx context.Context, params model.DiscoverPostersParams) ([]model.Poster, string, string, error) {
	posters, err := api.GetPublicPostersRepo(ctx)
	if err != nil {
		return nil, values.Error, "Failed to fetch posters", err
	}

	reference := &geo.Point{Lat: params.Latitude, Lon: params.Longitude}
	visible := poster.Discover(posters, poster.DiscoverOptions{
		Reference: reference,
		RadiusKm:  params.RadiusKm,
		Category:  params.Category,
		Query:     params.Query,
		Now:       time.Now(),
	})

	return visible, values.Success, "Posters fetched successfully", nil
}
