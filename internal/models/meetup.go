package models

import (
	"context"
	"errors"
	"time"
)

const (
	MeetupsTable  = "meetups"
	UsersTable    = "users"
	FilesTable    = "files"
	CountersTable = "counters"

	// PageSize is the fixed number of meetups returned per page.
	PageSize = 20
)

var ErrNotFound = errors.New("record not found")

type Meetup struct {
	ID          uint      `gorm:"primaryKey" bson:"_id" json:"id"`
	Title       string    `gorm:"not null" bson:"title" json:"title"`
	Description string    `gorm:"type:text;not null" bson:"description" json:"description"`
	Latitude    float64   `gorm:"not null" bson:"latitude" json:"latitude"`
	Longitude   float64   `gorm:"not null" bson:"longitude" json:"longitude"`
	DateTime    time.Time `gorm:"column:date_time;not null;index" bson:"date_time" json:"date_time"`
	UserID      uint      `gorm:"not null;index" bson:"user_id" json:"user_id"`
	BannerID    *uint     `bson:"banner_id,omitempty" json:"banner_id"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`

	User   *User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" bson:"user,omitempty" json:"-"`
	Banner *File `gorm:"foreignKey:BannerID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" bson:"banner,omitempty" json:"-"`
}

// HasHappened reports whether the meetup date is at or before now.
func (m *Meetup) HasHappened(now time.Time) bool {
	return !m.DateTime.After(now)
}

// IsOrganizedBy compares against the loaded owner when present and the
// foreign key otherwise.
func (m *Meetup) IsOrganizedBy(userID uint) bool {
	if m.User != nil {
		return m.User.ID == userID
	}
	return m.UserID == userID
}

// Projection names the association columns attached to a loaded meetup.
// An empty projection loads the bare record.
type Projection struct {
	OwnerFields  []string
	BannerFields []string
}

var (
	PublicProjection = Projection{
		OwnerFields:  []string{"id", "name"},
		BannerFields: []string{"id", "path"},
	}
	OwnerProjection = Projection{
		OwnerFields:  []string{"id", "name", "email"},
		BannerFields: []string{"id", "path"},
	}
	RecordProjection = Projection{}
)

type MeetupFilter struct {
	UserID *uint
	Offset int
	Limit  int
}

// MeetupChanges carries a partial update. Nil fields are left untouched.
type MeetupChanges struct {
	Title       *string
	Description *string
	Latitude    *float64
	Longitude   *float64
	DateTime    *time.Time
}

func (c MeetupChanges) IsEmpty() bool {
	return c.Title == nil && c.Description == nil && c.Latitude == nil &&
		c.Longitude == nil && c.DateTime == nil
}

// Columns returns the changed columns keyed by their stored name.
func (c MeetupChanges) Columns() map[string]interface{} {
	cols := make(map[string]interface{})
	if c.Title != nil {
		cols["title"] = *c.Title
	}
	if c.Description != nil {
		cols["description"] = *c.Description
	}
	if c.Latitude != nil {
		cols["latitude"] = *c.Latitude
	}
	if c.Longitude != nil {
		cols["longitude"] = *c.Longitude
	}
	if c.DateTime != nil {
		cols["date_time"] = *c.DateTime
	}
	return cols
}

func (c MeetupChanges) ApplyTo(m *Meetup) {
	if c.Title != nil {
		m.Title = *c.Title
	}
	if c.Description != nil {
		m.Description = *c.Description
	}
	if c.Latitude != nil {
		m.Latitude = *c.Latitude
	}
	if c.Longitude != nil {
		m.Longitude = *c.Longitude
	}
	if c.DateTime != nil {
		m.DateTime = *c.DateTime
	}
}

type MeetupRepo interface {
	ListMeetups(ctx context.Context, filter MeetupFilter, p Projection) ([]*Meetup, error)
	GetMeetupByID(ctx context.Context, id uint, p Projection) (*Meetup, error)
	CreateMeetup(ctx context.Context, meetup *Meetup) error
	UpdateMeetup(ctx context.Context, meetup *Meetup, changes MeetupChanges) error
	DeleteMeetup(ctx context.Context, id uint) error
	Migrate(ctx context.Context) error
}
