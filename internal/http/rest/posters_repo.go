package rest

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/odezzy/wall_api/internal/model"
)

var (
	ErrPosterNotFound = errors.New("poster not found")
	ErrUpdateFailed   = errors.New("failed to update poster")
	ErrDeleteFailed   = errors.New("failed to delete poster")
)

const posterColumns = `
        id, COALESCE(title, ''), COALESCE(description, ''), COALESCE(location_name, ''),
        coordinates, category, COALESCE(poster_image, ''), COALESCE(link, ''),
        display_until, event_start_date, event_end_date,
        moderation_status, hidden, status, created_at
`

func scanPoster(row pgx.Row) (model.Poster, error) {
	var p model.Poster
	err := row.Scan(
		&p.ID, &p.Title, &p.Description, &p.LocationName,
		&p.Coordinates, &p.Category, &p.PosterImage, &p.Link,
		&p.DisplayUntil, &p.EventStartDate, &p.EventEndDate,
		&p.ModerationStatus, &p.Hidden, &p.Status, &p.CreatedAt,
	)
	return p, err
}

// CreatePosterRepo inserts a new submission in the pending state.
func (api *API) CreatePosterRepo(ctx context.Context, p model.Poster) (model.Poster, error) {
	query := `
        INSERT INTO posters (
            title, description, location_name, coordinates, category,
            poster_image, link, display_until, event_start_date, event_end_date,
            moderation_status, hidden, status
        ) VALUES (
            NULLIF($1, ''), NULLIF($2, ''), NULLIF($3, ''), $4, $5,
            $6, NULLIF($7, ''), $8, $9, $10,
            'pending', false, 'active'
        ) RETURNING ` + posterColumns

	return scanPoster(api.DB.QueryRow(ctx, query,
		p.Title, p.Description, p.LocationName, p.Coordinates, p.Category,
		p.PosterImage, p.Link, p.DisplayUntil, p.EventStartDate, p.EventEndDate,
	))
}

// GetPublicPostersRepo retrieves every poster eligible for public
// discovery. The display window predicate is authoritative here; the
// stored lifecycle hint is deliberately not trusted (date always wins).
func (api *API) GetPublicPostersRepo(ctx context.Context) ([]model.Poster, error) {
	query := `
        SELECT ` + posterColumns + `
        FROM posters
        WHERE moderation_status = 'approved'
          AND hidden = false
          AND display_until > NOW()
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

// GetPosterByIDRepo retrieves a poster in any state.
func (api *API) GetPosterByIDRepo(ctx context.Context, id string) (model.Poster, error) {
	query := `
        SELECT ` + posterColumns + `
        FROM posters
        WHERE id = $1
    `
	p, err := scanPoster(api.DB.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return model.Poster{}, ErrPosterNotFound
	}
	return p, err
}

// SweepExpiredRepo converges the stored lifecycle hint with the display
// window so the moderation "expired" tab stays queryable by index.
func (api *API) SweepExpiredRepo(ctx context.Context) (int64, error) {
	query := `
        UPDATE posters
        SET status = 'expired'
        WHERE status = 'active' AND display_until <= NOW()
    `
	result, err := api.DB.Exec(ctx, query)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
