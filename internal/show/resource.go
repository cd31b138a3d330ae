package show

import (
	"time"

	"station-api/internal/models"
)

type ModeratorResource struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Primary bool   `json:"primary"`
}

// Resource is the wire shape of a show. The lock owner is only exposed
// to authenticated callers.
type Resource struct {
	ID         uint                `json:"id"`
	Title      string              `json:"title"`
	Body       *string             `json:"body"`
	StartDate  *time.Time          `json:"start_date"`
	EndDate    *time.Time          `json:"end_date"`
	IsLive     bool                `json:"is_live"`
	Enabled    bool                `json:"enabled"`
	LockedBy   *uint               `json:"locked_by,omitempty"`
	Moderators []ModeratorResource `json:"moderators"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}

func NewResource(s models.Show, includeLockedBy bool) Resource {
	mods := make([]ModeratorResource, 0, len(s.Moderators))
	for _, m := range s.Moderators {
		mr := ModeratorResource{ID: m.ModeratorID, Primary: m.Primary}
		if m.Moderator != nil {
			mr.Name = m.Moderator.Name
		}
		mods = append(mods, mr)
	}

	r := Resource{
		ID:         s.ID,
		Title:      s.Title,
		Body:       s.Body,
		StartDate:  s.StartDate,
		EndDate:    s.EndDate,
		IsLive:     s.IsLive,
		Enabled:    s.Enabled,
		Moderators: mods,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
	if includeLockedBy {
		r.LockedBy = s.LockedBy
	}
	return r
}

func NewResourceList(shows []models.Show, includeLockedBy bool) []Resource {
	out := make([]Resource, 0, len(shows))
	for _, s := range shows {
		out = append(out, NewResource(s, includeLockedBy))
	}
	return out
}
