package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

func (r *GormRepo) Migrate(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&User{}, &File{}, &Meetup{}); err != nil {
		return fmt.Errorf("failed to migrate meetup tables: %w", err)
	}
	r.log.Info("meetup tables migrated", "tables", []string{UsersTable, FilesTable, MeetupsTable})
	return nil
}

// withProjection preloads the associations named by p, restricted to the
// listed columns.
func withProjection(tx *gorm.DB, p Projection) *gorm.DB {
	if len(p.OwnerFields) > 0 {
		tx = tx.Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select(p.OwnerFields)
		})
	}
	if len(p.BannerFields) > 0 {
		tx = tx.Preload("Banner", func(db *gorm.DB) *gorm.DB {
			return db.Select(p.BannerFields)
		})
	}
	return tx
}

func (r *GormRepo) ListMeetups(ctx context.Context, filter MeetupFilter, p Projection) ([]*Meetup, error) {
	if filter.Limit <= 0 {
		filter.Limit = PageSize
	}

	query := r.db.WithContext(ctx).Model(&Meetup{})
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}

	var meetups []*Meetup
	err := withProjection(query, p).
		Order("date_time ASC").
		Order("id ASC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&meetups).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list meetups: %w", err)
	}

	return meetups, nil
}

func (r *GormRepo) GetMeetupByID(ctx context.Context, id uint, p Projection) (*Meetup, error) {
	var meetup Meetup
	err := withProjection(r.db.WithContext(ctx), p).First(&meetup, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get meetup %d: %w", id, err)
	}
	return &meetup, nil
}

func (r *GormRepo) CreateMeetup(ctx context.Context, meetup *Meetup) error {
	// Associations are references to existing rows, never written from here.
	if err := r.db.WithContext(ctx).Omit("User", "Banner").Create(meetup).Error; err != nil {
		return fmt.Errorf("failed to create meetup: %w", err)
	}
	return nil
}

func (r *GormRepo) UpdateMeetup(ctx context.Context, meetup *Meetup, changes MeetupChanges) error {
	if changes.IsEmpty() {
		return nil
	}

	cols := changes.Columns()
	now := time.Now()
	cols["updated_at"] = now

	result := r.db.WithContext(ctx).
		Model(&Meetup{}).
		Where("id = ?", meetup.ID).
		Updates(cols)
	if result.Error != nil {
		return fmt.Errorf("failed to update meetup %d: %w", meetup.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	changes.ApplyTo(meetup)
	meetup.UpdatedAt = now
	return nil
}

func (r *GormRepo) DeleteMeetup(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&Meetup{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete meetup %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
