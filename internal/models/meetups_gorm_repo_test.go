package models

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	sloggorm "github.com/orandin/slog-gorm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var baseTime = time.Date(2030, 3, 1, 18, 0, 0, 0, time.UTC)

func newGormTestRepo(t *testing.T) *GormRepo {
	t.Helper()

	handler := slog.NewTextHandler(io.Discard, nil)
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: sloggorm.New(sloggorm.WithHandler(handler)),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every new connection to :memory: is a fresh database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	repo := GormNewRepo(slog.New(handler), db)
	require.NoError(t, repo.Migrate(context.Background()))

	require.NoError(t, db.Create(&[]User{
		{ID: 1, Name: "Ana", Email: "ana@example.com"},
		{ID: 2, Name: "Ben", Email: "ben@example.com"},
	}).Error)
	require.NoError(t, db.Create(&File{ID: 1, Name: "banner.png", Path: "banner.png"}).Error)

	return repo
}

func createMeetup(t *testing.T, repo MeetupRepo, userID uint, at time.Time) *Meetup {
	t.Helper()
	m := &Meetup{
		Title:       "Go meetup",
		Description: "Talks and pizza",
		Latitude:    -23.5,
		Longitude:   -46.6,
		DateTime:    at,
		UserID:      userID,
	}
	require.NoError(t, repo.CreateMeetup(context.Background(), m))
	require.NotZero(t, m.ID)
	return m
}

func TestGormRepo_ListMeetupsPagesByDate(t *testing.T) {
	repo := newGormTestRepo(t)
	ctx := context.Background()

	// insert latest first so the order has to come from the query
	for i := 24; i >= 0; i-- {
		createMeetup(t, repo, 1, baseTime.Add(time.Duration(i)*time.Hour))
	}

	first, err := repo.ListMeetups(ctx, MeetupFilter{Offset: 0, Limit: PageSize}, PublicProjection)
	require.NoError(t, err)
	require.Len(t, first, PageSize)
	assert.True(t, first[0].DateTime.Equal(baseTime))
	for i := 1; i < len(first); i++ {
		assert.False(t, first[i].DateTime.Before(first[i-1].DateTime))
	}

	second, err := repo.ListMeetups(ctx, MeetupFilter{Offset: PageSize, Limit: PageSize}, PublicProjection)
	require.NoError(t, err)
	require.Len(t, second, 5)
	assert.True(t, second[4].DateTime.Equal(baseTime.Add(24*time.Hour)))

	third, err := repo.ListMeetups(ctx, MeetupFilter{Offset: 2 * PageSize, Limit: PageSize}, PublicProjection)
	require.NoError(t, err)
	assert.Empty(t, third)
}

func TestGormRepo_ListMeetupsFiltersByOrganizer(t *testing.T) {
	repo := newGormTestRepo(t)
	ctx := context.Background()

	createMeetup(t, repo, 1, baseTime)
	createMeetup(t, repo, 2, baseTime.Add(time.Hour))
	createMeetup(t, repo, 2, baseTime.Add(2*time.Hour))

	userID := uint(2)
	meetups, err := repo.ListMeetups(ctx, MeetupFilter{UserID: &userID}, PublicProjection)
	require.NoError(t, err)
	require.Len(t, meetups, 2)
	for _, m := range meetups {
		assert.Equal(t, uint(2), m.UserID)
		require.NotNil(t, m.User)
		assert.Equal(t, "Ben", m.User.Name)
	}
}

func TestGormRepo_GetMeetupByIDProjections(t *testing.T) {
	repo := newGormTestRepo(t)
	ctx := context.Background()

	bannerID := uint(1)
	m := &Meetup{
		Title:       "With banner",
		Description: "desc",
		DateTime:    baseTime,
		UserID:      1,
		BannerID:    &bannerID,
	}
	require.NoError(t, repo.CreateMeetup(ctx, m))

	public, err := repo.GetMeetupByID(ctx, m.ID, PublicProjection)
	require.NoError(t, err)
	require.NotNil(t, public.User)
	assert.Equal(t, "Ana", public.User.Name)
	assert.Empty(t, public.User.Email)
	require.NotNil(t, public.Banner)
	assert.Equal(t, "banner.png", public.Banner.Path)

	owner, err := repo.GetMeetupByID(ctx, m.ID, OwnerProjection)
	require.NoError(t, err)
	require.NotNil(t, owner.User)
	assert.Equal(t, "ana@example.com", owner.User.Email)

	record, err := repo.GetMeetupByID(ctx, m.ID, RecordProjection)
	require.NoError(t, err)
	assert.Nil(t, record.User)
	assert.Nil(t, record.Banner)
	assert.Equal(t, uint(1), record.UserID)
}

func TestGormRepo_MissingMeetup(t *testing.T) {
	repo := newGormTestRepo(t)
	ctx := context.Background()

	_, err := repo.GetMeetupByID(ctx, 999, PublicProjection)
	assert.ErrorIs(t, err, ErrNotFound)

	title := "nope"
	err = repo.UpdateMeetup(ctx, &Meetup{ID: 999}, MeetupChanges{Title: &title})
	assert.ErrorIs(t, err, ErrNotFound)

	err = repo.DeleteMeetup(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGormRepo_UpdateMeetupKeepsUntouchedColumns(t *testing.T) {
	repo := newGormTestRepo(t)
	ctx := context.Background()
	m := createMeetup(t, repo, 1, baseTime)

	loaded, err := repo.GetMeetupByID(ctx, m.ID, OwnerProjection)
	require.NoError(t, err)

	title := "Renamed"
	require.NoError(t, repo.UpdateMeetup(ctx, loaded, MeetupChanges{Title: &title}))
	assert.Equal(t, "Renamed", loaded.Title)
	require.NotNil(t, loaded.User)

	reloaded, err := repo.GetMeetupByID(ctx, m.ID, RecordProjection)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", reloaded.Title)
	assert.Equal(t, "Talks and pizza", reloaded.Description)
	assert.True(t, reloaded.DateTime.Equal(baseTime))
}

func TestGormRepo_UpdateMeetupWithoutChanges(t *testing.T) {
	repo := newGormTestRepo(t)
	m := createMeetup(t, repo, 1, baseTime)
	updatedAt := m.UpdatedAt

	require.NoError(t, repo.UpdateMeetup(context.Background(), m, MeetupChanges{}))
	assert.Equal(t, updatedAt, m.UpdatedAt)
}

func TestGormRepo_DeleteMeetup(t *testing.T) {
	repo := newGormTestRepo(t)
	ctx := context.Background()
	m := createMeetup(t, repo, 1, baseTime)

	require.NoError(t, repo.DeleteMeetup(ctx, m.ID))

	_, err := repo.GetMeetupByID(ctx, m.ID, RecordProjection)
	assert.ErrorIs(t, err, ErrNotFound)
}
