package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/joshua-takyi/meetapp/internal/helpers"
	"github.com/joshua-takyi/meetapp/internal/models"
)

type CreateMeetupInput struct {
	Title       string     `json:"title" validate:"required,max=80"`
	Description string     `json:"description" validate:"required,max=4000"`
	Latitude    *float64   `json:"latitude" validate:"required"`
	Longitude   *float64   `json:"longitude" validate:"required"`
	DateTime    *time.Time `json:"date_time" validate:"required"`
}

// UpdateMeetupInput holds a partial update; absent fields stay as stored.
type UpdateMeetupInput struct {
	Title       *string    `json:"title" validate:"omitnil,min=1"`
	Description *string    `json:"description" validate:"omitnil,min=1"`
	Latitude    *float64   `json:"latitude"`
	Longitude   *float64   `json:"longitude"`
	DateTime    *time.Time `json:"date_time"`
}

func (in UpdateMeetupInput) changes() models.MeetupChanges {
	changes := models.MeetupChanges{
		Title:       in.Title,
		Description: in.Description,
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
	}
	if in.DateTime != nil {
		// stored in UTC so text-backed stores order by instant
		at := in.DateTime.UTC()
		changes.DateTime = &at
	}
	return changes
}

type MeetupService struct {
	meetupRepo models.MeetupRepo
	assets     helpers.AssetURLBuilder
	logger     *slog.Logger
	now        func() time.Time
}

func NewMeetupService(meetupRepo models.MeetupRepo, assets helpers.AssetURLBuilder, logger *slog.Logger) *MeetupService {
	return &MeetupService{
		meetupRepo: meetupRepo,
		assets:     assets,
		logger:     logger,
		now:        time.Now,
	}
}

// WithClock replaces the clock used by the date rules.
func (ms *MeetupService) WithClock(now func() time.Time) *MeetupService {
	ms.now = now
	return ms
}

// EndOfDay returns the last instant of t's calendar day in t's location.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

func (ms *MeetupService) bannerURL(path string) string {
	if ms.assets == nil {
		return ""
	}
	return ms.assets.URL(path)
}

// pageOffset converts a 1-based page into a row offset. ok is false when
// the page lies beyond any addressable row.
func pageOffset(page int) (offset int, ok bool, err error) {
	if page < 1 {
		return 0, false, ValidationError(fmt.Errorf("page must be >= 1, got %d", page))
	}
	if page-1 > (math.MaxInt32-1)/models.PageSize {
		return 0, false, nil
	}
	return (page - 1) * models.PageSize, true, nil
}

func (ms *MeetupService) list(ctx context.Context, userID *uint, page int) ([]models.MeetupView, error) {
	offset, ok, err := pageOffset(page)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []models.MeetupView{}, nil
	}

	meetups, err := ms.meetupRepo.ListMeetups(ctx, models.MeetupFilter{
		UserID: userID,
		Offset: offset,
		Limit:  models.PageSize,
	}, models.PublicProjection)
	if err != nil {
		return nil, err
	}

	return models.NewMeetupViews(meetups, models.PublicProjection, ms.bannerURL), nil
}

// List returns one page of all meetups ordered by date.
func (ms *MeetupService) List(ctx context.Context, page int) ([]models.MeetupView, error) {
	return ms.list(ctx, nil, page)
}

// ListByUser returns one page of the meetups organized by userID.
func (ms *MeetupService) ListByUser(ctx context.Context, userID uint, page int) ([]models.MeetupView, error) {
	return ms.list(ctx, &userID, page)
}

func (ms *MeetupService) Show(ctx context.Context, id uint) (*models.MeetupView, error) {
	meetup, err := ms.meetupRepo.GetMeetupByID(ctx, id, models.PublicProjection)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, NotFoundError()
		}
		return nil, err
	}

	view := models.NewMeetupView(meetup, models.PublicProjection, ms.bannerURL)
	return &view, nil
}

func (ms *MeetupService) Create(ctx context.Context, userID uint, input CreateMeetupInput) (*models.Meetup, error) {
	if err := models.Validate.Struct(input); err != nil {
		return nil, ValidationError(err)
	}

	now := ms.now()
	if input.DateTime.Before(EndOfDay(now)) {
		return nil, ValidationError(fmt.Errorf("date_time must not be before %s", EndOfDay(now).Format(time.RFC3339)))
	}

	meetup := &models.Meetup{
		Title:       input.Title,
		Description: input.Description,
		Latitude:    *input.Latitude,
		Longitude:   *input.Longitude,
		DateTime:    input.DateTime.UTC(),
		UserID:      userID,
	}

	if err := ms.meetupRepo.CreateMeetup(ctx, meetup); err != nil {
		return nil, err
	}

	ms.logger.Info("Meetup created", "meetup_id", meetup.ID, "user_id", userID)
	return meetup, nil
}

func (ms *MeetupService) Update(ctx context.Context, id, userID uint, input UpdateMeetupInput) (*models.MeetupView, error) {
	if err := models.Validate.Struct(input); err != nil {
		return nil, ValidationError(err)
	}
	if input.DateTime != nil && input.DateTime.Before(ms.now()) {
		return nil, ValidationError(errors.New("date_time must not be in the past"))
	}

	meetup, err := ms.meetupRepo.GetMeetupByID(ctx, id, models.OwnerProjection)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, NotFoundError()
		}
		return nil, err
	}

	if !meetup.IsOrganizedBy(userID) {
		return nil, ForbiddenError(MsgEditForbidden)
	}

	if err := ms.meetupRepo.UpdateMeetup(ctx, meetup, input.changes()); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, NotFoundError()
		}
		return nil, err
	}

	view := models.NewMeetupView(meetup, models.OwnerProjection, ms.bannerURL)
	return &view, nil
}

// Cancel deletes a future meetup on behalf of its organizer.
func (ms *MeetupService) Cancel(ctx context.Context, id, userID uint) error {
	meetup, err := ms.meetupRepo.GetMeetupByID(ctx, id, models.RecordProjection)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return NotFoundError()
		}
		return err
	}

	if meetup.HasHappened(ms.now()) {
		return ForbiddenError(MsgCancelPastMeetup)
	}

	if !meetup.IsOrganizedBy(userID) {
		return ForbiddenError(MsgCancelForbidden)
	}

	if err := ms.meetupRepo.DeleteMeetup(ctx, meetup.ID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return NotFoundError()
		}
		return err
	}

	ms.logger.Info("Meetup cancelled", "meetup_id", meetup.ID, "user_id", userID)
	return nil
}
