package models

import (
	"slices"
	"time"
)

type OwnerSummary struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

type BannerSummary struct {
	ID   uint   `json:"id"`
	Path string `json:"path"`
	URL  string `json:"url"`
}

// MeetupView is the public shape of a meetup: foreign keys are replaced
// by the embedded organizer and banner.
type MeetupView struct {
	ID          uint           `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Latitude    float64        `json:"latitude"`
	Longitude   float64        `json:"longitude"`
	DateTime    time.Time      `json:"date_time"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	User        *OwnerSummary  `json:"user"`
	Banner      *BannerSummary `json:"banner"`
}

// NewMeetupView builds the view of m restricted to the fields named by p.
// urlFor turns a stored file path into a public URL.
func NewMeetupView(m *Meetup, p Projection, urlFor func(path string) string) MeetupView {
	v := MeetupView{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Latitude:    m.Latitude,
		Longitude:   m.Longitude,
		DateTime:    m.DateTime,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}

	if m.User != nil && len(p.OwnerFields) > 0 {
		v.User = &OwnerSummary{ID: m.User.ID, Name: m.User.Name}
		if slices.Contains(p.OwnerFields, "email") {
			v.User.Email = m.User.Email
		}
	}

	if m.Banner != nil && len(p.BannerFields) > 0 {
		v.Banner = &BannerSummary{ID: m.Banner.ID, Path: m.Banner.Path}
		if urlFor != nil {
			v.Banner.URL = urlFor(m.Banner.Path)
		}
	}

	return v
}

func NewMeetupViews(meetups []*Meetup, p Projection, urlFor func(path string) string) []MeetupView {
	views := make([]MeetupView, 0, len(meetups))
	for _, m := range meetups {
		views = append(views, NewMeetupView(m, p, urlFor))
	}
	return views
}
