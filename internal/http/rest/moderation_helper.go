package rest

import (
	"context"
	"log"
	"time"

	"github.com/odezzy/wall_api/internal/model"
	"github.com/odezzy/wall_api/internal/poster"
	"github.com/odezzy/wall_api/util/values"
)

// ModerationView is returned after every listing or action: the active
// tab's refreshed list plus the pending badge count.
type ModerationView struct {
	Tab          string         `json:"tab"`
	Posters      []model.Poster `json:"posters"`
	PendingCount int            `json:"pending_count"`
}

func (api *API) ListModerationHelper(ctx context.Context, tab string) (*ModerationView, string, string, error) {
	view, err := api.buildModerationView(ctx, tab)
	if err != nil {
		return nil, values.Error, "Failed to fetch moderation list", err
	}
	return view, values.Success, "Moderation list fetched successfully", nil
}

// ApplyModerationHelper runs one transition and returns the refreshed
// view. The poster is re-read and the state machine applied before the
// update, so an invalid transition never touches the row.
func (api *API) ApplyModerationHelper(ctx context.Context, id string, action poster.Action, tab string) (*ModerationView, string, string, error) {
	p, err := api.GetPosterByIDRepo(ctx, id)
	if err == ErrPosterNotFound {
		return nil, values.NotFound, "Poster not found", err
	}
	if err != nil {
		return nil, values.Error, "Failed to fetch poster", err
	}

	current := poster.StateOf(p)
	next, err := current.Apply(action)
	if err != nil {
		return nil, values.Unprocessable, err.Error(), err
	}

	if next != current {
		if err := api.UpdateModerationStateRepo(ctx, id, next); err != nil {
			return nil, values.Error, "Failed to update poster", err
		}
	}

	view, err := api.buildModerationView(ctx, tab)
	if err != nil {
		return nil, values.Error, "Failed to refresh moderation list", err
	}

	api.Deps.WebSocket.BroadcastPendingCount(view.PendingCount)
	return view, values.Success, "Poster " + string(action) + " applied", nil
}

func (api *API) DeletePosterHelper(ctx context.Context, id string, tab string) (*ModerationView, string, string, error) {
	if err := api.DeletePosterRepo(ctx, id); err != nil {
		if err == ErrDeleteFailed {
			return nil, values.NotFound, "Poster not found", err
		}
		return nil, values.Error, "Failed to delete poster", err
	}

	view, err := api.buildModerationView(ctx, tab)
	if err != nil {
		return nil, values.Error, "Failed to refresh moderation list", err
	}

	api.Deps.WebSocket.BroadcastPendingCount(view.PendingCount)
	return view, values.Success, "Poster deleted", nil
}

func (api *API) buildModerationView(ctx context.Context, tab string) (*ModerationView, error) {
	posters, err := api.ListModerationRepo(ctx, tab)
	if err != nil {
		return nil, err
	}
	if posters == nil {
		posters = []model.Poster{}
	}

	count, err := api.PendingCountRepo(ctx)
	if err != nil {
		return nil, err
	}

	return &ModerationView{Tab: tab, Posters: posters, PendingCount: count}, nil
}

// refreshPendingBadge pushes the current pending count to connected
// clients outside a request cycle (new submissions, sweeps).
func (api *API) refreshPendingBadge() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	count, err := api.PendingCountRepo(ctx)
	if err != nil {
		log.Println("failed to refresh pending badge", err)
		return
	}
	api.Deps.WebSocket.BroadcastPendingCount(count)
}
