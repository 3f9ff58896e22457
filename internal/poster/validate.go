package poster

import (
	"regexp"
	"time"

	"github.com/odezzy/wall_api/internal/model"
)

var linkPattern = regexp.MustCompile(`^https?://`)

// ValidationError is a single submission rule violation with a
// user-facing message.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ValidateSubmission applies the submission rules in order and returns
// the first violation. Date rules compare dates only; time of day is
// ignored. A nil return means the poster may enter the pending state.
func ValidateSubmission(req model.CreatePosterRequest, now time.Time) *ValidationError {
	if req.PosterImage == nil || req.PosterImage.Data == "" {
		return &ValidationError{Field: "poster_image", Message: "Please upload a poster image"}
	}

	if req.Category == "" {
		return &ValidationError{Field: "category", Message: "Please select a category"}
	}
	if !req.Category.Valid() {
		return &ValidationError{Field: "category", Message: "Unknown category"}
	}

	today := dateOnly(now)
	if req.DisplayUntil == nil {
		return &ValidationError{Field: "display_until", Message: "Please choose a display until date"}
	}
	if dateOnly(*req.DisplayUntil).Before(today) {
		return &ValidationError{Field: "display_until", Message: "Display until date cannot be in the past"}
	}

	if req.Category == model.CategoryEvent {
		if req.EventStartDate == nil {
			return &ValidationError{Field: "event_start_date", Message: "Please choose an event start date"}
		}
		if dateOnly(*req.EventStartDate).Before(today) {
			return &ValidationError{Field: "event_start_date", Message: "Event start date cannot be in the past"}
		}
		if req.EventEndDate != nil && dateOnly(*req.EventEndDate).Before(dateOnly(*req.EventStartDate)) {
			return &ValidationError{Field: "event_end_date", Message: "Event end date must be on or after the start date"}
		}
	}

	if req.Link != "" && !linkPattern.MatchString(req.Link) {
		return &ValidationError{Field: "link", Message: "Link must start with http:// or https://"}
	}

	return nil
}

// MissingFields enumerates absent required fields for the server-side
// second line of defense.
func MissingFields(req model.CreatePosterRequest) []string {
	var missing []string
	if req.Coordinates == "" {
		missing = append(missing, "coordinates")
	}
	if req.Category == "" {
		missing = append(missing, "category")
	}
	if req.DisplayUntil == nil {
		missing = append(missing, "display_until")
	}
	if req.PosterImage == nil || req.PosterImage.Data == "" {
		missing = append(missing, "poster_image")
	}
	return missing
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
