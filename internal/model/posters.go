package model

import (
	"time"

	"github.com/google/uuid"
)

// Category classifies a poster for filtering.
type Category string

const (
	CategoryAll          Category = "all" // filter value only, never stored
	CategoryGeneral      Category = "general"
	CategoryEvent        Category = "event"
	CategoryAnnouncement Category = "announcement"
	CategoryCommunity    Category = "community"
	CategoryOther        Category = "other"
)

// Valid reports whether c is a storable poster category.
func (c Category) Valid() bool {
	switch c {
	case CategoryGeneral, CategoryEvent, CategoryAnnouncement, CategoryCommunity, CategoryOther:
		return true
	}
	return false
}

// ModerationStatus is the editorial approval state of a poster.
type ModerationStatus string

const (
	ModerationPending  ModerationStatus = "pending"
	ModerationApproved ModerationStatus = "approved"
	ModerationRejected ModerationStatus = "rejected"
)

// LifecycleStatus is the stored active/expired hint. The date on the
// poster is authoritative; this field only keeps the persistence layer
// indexable (see poster.Lifecycle).
type LifecycleStatus string

const (
	LifecycleActive  LifecycleStatus = "active"
	LifecycleExpired LifecycleStatus = "expired"
)

type Poster struct {
	ID               uuid.UUID        `json:"id"`
	Title            string           `json:"title,omitempty"`
	Description      string           `json:"description,omitempty"`
	LocationName     string           `json:"location,omitempty"`
	Coordinates      string           `json:"coordinates"` // "(lat,lon)" wire format
	Category         Category         `json:"category"`
	PosterImage      string           `json:"poster_image"`
	Link             string           `json:"link,omitempty"`
	DisplayUntil     time.Time        `json:"display_until"`
	EventStartDate   *time.Time       `json:"event_start_date,omitempty"`
	EventEndDate     *time.Time       `json:"event_end_date,omitempty"`
	ModerationStatus ModerationStatus `json:"moderation_status"`
	Hidden           bool             `json:"hidden"`
	Status           LifecycleStatus  `json:"status"`
	CreatedAt        time.Time        `json:"created_at"`
}

// PosterImagePayload is the embedded image sent with a submission.
type PosterImagePayload struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Data string `json:"data"` // base64, with or without a data-URI prefix
}

type CreatePosterRequest struct {
	Title          string              `json:"title"`
	Description    string              `json:"description"`
	LocationName   string              `json:"location"`
	Coordinates    string              `json:"coordinates"`
	Category       Category            `json:"category"`
	PosterImage    *PosterImagePayload `json:"poster_image"`
	Link           string              `json:"link"`
	DisplayUntil   *time.Time          `json:"display_until"`
	EventStartDate *time.Time          `json:"event_start_date"`
	EventEndDate   *time.Time          `json:"event_end_date"`
}

// DiscoverPostersParams is the parsed query for the public listing.
type DiscoverPostersParams struct {
	Latitude  float64 `validate:"latitude"`
	Longitude float64 `validate:"longitude"`
	RadiusKm  float64
	Category  Category
	Query     string
}
