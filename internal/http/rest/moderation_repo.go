package rest

import (
	"context"
	"fmt"

	"github.com/odezzy/wall_api/internal/model"
	"github.com/odezzy/wall_api/internal/poster"
)

// Moderation view tabs.
const (
	TabPending  = "pending"
	TabApproved = "approved"
	TabHidden   = "hidden"
	TabExpired  = "expired"
	TabRejected = "rejected"
)

// tabPredicates are the listing query shapes the moderation view
// consumes. The expired tab is the one place the stored lifecycle hint
// is queried directly; the sweeper keeps it converged.
var tabPredicates = map[string]string{
	TabPending:  `moderation_status = 'pending'`,
	TabApproved: `moderation_status = 'approved' AND hidden = false AND status = 'active'`,
	TabHidden:   `moderation_status = 'approved' AND hidden = true`,
	TabExpired:  `moderation_status = 'approved' AND status = 'expired'`,
	TabRejected: `moderation_status = 'rejected'`,
}

// ListModerationRepo lists posters for one moderation tab.
func (api *API) ListModerationRepo(ctx context.Context, tab string) ([]model.Poster, error) {
	predicate, ok := tabPredicates[tab]
	if !ok {
		return nil, fmt.Errorf("unknown moderation tab %q", tab)
	}

	query := `
        SELECT ` + posterColumns + `
        FROM posters
        WHERE ` + predicate + `
        ORDER BY created_at DESC
    `
	rows, err := api.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posters []model.Poster
	for rows.Next() {
		p, err := scanPoster(rows)
		if err != nil {
			return nil, err
		}
		posters = append(posters, p)
	}
	return posters, rows.Err()
}

// PendingCountRepo returns the moderation badge count.
func (api *API) PendingCountRepo(ctx context.Context) (int, error) {
	var count int
	err := api.DB.QueryRow(ctx, `SELECT COUNT(*) FROM posters WHERE moderation_status = 'pending'`).Scan(&count)
	return count, err
}

// UpdateModerationStateRepo persists a moderation transition.
func (api *API) UpdateModerationStateRepo(ctx context.Context, id string, state poster.State) error {
	query := `
        UPDATE posters
        SET moderation_status = $1, hidden = $2
        WHERE id = $3
    `
	result, err := api.DB.Exec(ctx, query, state.Status(), state.Hidden(), id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrUpdateFailed
	}
	return nil
}

// DeletePosterRepo permanently removes a poster. Hard delete, no
// tombstone.
func (api *API) DeletePosterRepo(ctx context.Context, id string) error {
	result, err := api.DB.Exec(ctx, `DELETE FROM posters WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrDeleteFailed
	}
	return nil
}
