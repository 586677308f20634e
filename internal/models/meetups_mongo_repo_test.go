package models

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

const testNamespace = "meetapp.meetups"

func meetupDoc(id int64, userID int64, at time.Time, extra ...bson.E) bson.D {
	doc := bson.D{
		{Key: "_id", Value: id},
		{Key: "title", Value: "Go meetup"},
		{Key: "description", Value: "Talks"},
		{Key: "latitude", Value: 1.0},
		{Key: "longitude", Value: 2.0},
		{Key: "date_time", Value: at},
		{Key: "user_id", Value: userID},
	}
	return append(doc, extra...)
}

func TestMongodbRepo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	at := time.Date(2030, 3, 1, 18, 0, 0, 0, time.UTC)

	mt.Run("list decodes joined organizer", func(mt *mtest.T) {
		repo := MongodbNewRepo(mt.Client, "meetapp")
		mt.AddMockResponses(mtest.CreateCursorResponse(0, testNamespace, mtest.FirstBatch,
			meetupDoc(1, 1, at, bson.E{Key: "user", Value: bson.D{{Key: "_id", Value: int64(1)}, {Key: "name", Value: "Ana"}}}),
			meetupDoc(2, 1, at.Add(time.Hour)),
		))

		meetups, err := repo.ListMeetups(context.Background(), MeetupFilter{}, PublicProjection)
		require.NoError(mt, err)
		require.Len(mt, meetups, 2)
		assert.Equal(mt, uint(1), meetups[0].ID)
		require.NotNil(mt, meetups[0].User)
		assert.Equal(mt, "Ana", meetups[0].User.Name)
		assert.Nil(mt, meetups[1].User)
	})

	mt.Run("get missing meetup", func(mt *mtest.T) {
		repo := MongodbNewRepo(mt.Client, "meetapp")
		mt.AddMockResponses(mtest.CreateCursorResponse(0, testNamespace, mtest.FirstBatch))

		_, err := repo.GetMeetupByID(context.Background(), 42, PublicProjection)
		assert.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("create allocates sequential id", func(mt *mtest.T) {
		repo := MongodbNewRepo(mt.Client, "meetapp")
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
				{Key: "_id", Value: MeetupsTable},
				{Key: "seq", Value: int64(7)},
			}}),
			mtest.CreateSuccessResponse(),
		)

		m := &Meetup{Title: "New", Description: "d", DateTime: at, UserID: 1}
		require.NoError(mt, repo.CreateMeetup(context.Background(), m))
		assert.Equal(mt, uint(7), m.ID)
		assert.False(mt, m.CreatedAt.IsZero())
	})

	mt.Run("create surfaces write errors", func(mt *mtest.T) {
		repo := MongodbNewRepo(mt.Client, "meetapp")
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
				{Key: "_id", Value: MeetupsTable},
				{Key: "seq", Value: int64(8)},
			}}),
			mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "duplicate key"}),
		)

		err := repo.CreateMeetup(context.Background(), &Meetup{Title: "New", DateTime: at, UserID: 1})
		assert.Error(mt, err)
		assert.NotErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("update applies changes", func(mt *mtest.T) {
		repo := MongodbNewRepo(mt.Client, "meetapp")
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		m := &Meetup{ID: 3, Title: "Old", DateTime: at}
		title := "New"
		require.NoError(mt, repo.UpdateMeetup(context.Background(), m, MeetupChanges{Title: &title}))
		assert.Equal(mt, "New", m.Title)
		assert.True(mt, m.DateTime.Equal(at))
	})

	mt.Run("update missing meetup", func(mt *mtest.T) {
		repo := MongodbNewRepo(mt.Client, "meetapp")
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		title := "New"
		err := repo.UpdateMeetup(context.Background(), &Meetup{ID: 3}, MeetupChanges{Title: &title})
		assert.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("delete missing meetup", func(mt *mtest.T) {
		repo := MongodbNewRepo(mt.Client, "meetapp")
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		err := repo.DeleteMeetup(context.Background(), 3)
		assert.ErrorIs(mt, err, ErrNotFound)
	})

	mt.Run("delete meetup", func(mt *mtest.T) {
		repo := MongodbNewRepo(mt.Client, "meetapp")
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		require.NoError(mt, repo.DeleteMeetup(context.Background(), 3))
	})
}

func TestLookupStages(t *testing.T) {
	assert.Empty(t, lookupStages(RecordProjection))
	// $lookup and $unwind for each association
	assert.Len(t, lookupStages(PublicProjection), 4)

	onlyOwner := Projection{OwnerFields: []string{"id", "name"}}
	stages := lookupStages(onlyOwner)
	require.Len(t, stages, 2)
	assert.Equal(t, "$lookup", stages[0][0].Key)
	assert.Equal(t, "$unwind", stages[1][0].Key)
}
