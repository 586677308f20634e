package models

import "time"

// User is owned by the identity side of the platform. This service only
// reads it to attach the organizer to a meetup.
type User struct {
	ID        uint      `gorm:"primaryKey" bson:"_id" json:"id"`
	Name      string    `gorm:"not null" bson:"name" json:"name"`
	Email     string    `gorm:"uniqueIndex;not null" bson:"email,omitempty" json:"email,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"-"`
	UpdatedAt time.Time `bson:"updated_at" json:"-"`
}

// File is an uploaded image. URL is computed from Path when a view is
// built and is never stored.
type File struct {
	ID        uint      `gorm:"primaryKey" bson:"_id" json:"id"`
	Name      string    `gorm:"not null" bson:"name" json:"name,omitempty"`
	Path      string    `gorm:"not null;uniqueIndex" bson:"path" json:"path"`
	URL       string    `gorm:"-" bson:"-" json:"url"`
	CreatedAt time.Time `bson:"created_at" json:"-"`
	UpdatedAt time.Time `bson:"updated_at" json:"-"`
}
