package models

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// lookupStages joins the organizer and banner documents restricted to the
// fields named by p. Missing references leave the field unset.
func lookupStages(p Projection) mongo.Pipeline {
	var stages mongo.Pipeline
	join := func(from, localField, as string, fields []string) {
		project := bson.M{}
		for _, f := range fields {
			if f == "id" {
				f = "_id"
			}
			project[f] = 1
		}
		stages = append(stages,
			bson.D{{Key: "$lookup", Value: bson.M{
				"from": from,
				"let":  bson.M{"ref": "$" + localField},
				"pipeline": bson.A{
					bson.M{"$match": bson.M{"$expr": bson.M{"$eq": bson.A{"$_id", "$$ref"}}}},
					bson.M{"$project": project},
				},
				"as": as,
			}}},
			bson.D{{Key: "$unwind", Value: bson.M{
				"path":                       "$" + as,
				"preserveNullAndEmptyArrays": true,
			}}},
		)
	}

	if len(p.OwnerFields) > 0 {
		join(UsersTable, "user_id", "user", p.OwnerFields)
	}
	if len(p.BannerFields) > 0 {
		join(FilesTable, "banner_id", "banner", p.BannerFields)
	}
	return stages
}

func (mdb *MongodbRepo) aggregate(ctx context.Context, pipeline mongo.Pipeline) ([]*Meetup, error) {
	cursor, err := mdb.GetCollection(MeetupsTable).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("error aggregating meetups: %w", err)
	}
	defer cursor.Close(ctx)

	meetups := []*Meetup{}
	for cursor.Next(ctx) {
		var m Meetup
		if err := cursor.Decode(&m); err != nil {
			return nil, fmt.Errorf("error decoding meetup: %w", err)
		}
		meetups = append(meetups, &m)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}

	return meetups, nil
}

func (mdb *MongodbRepo) ListMeetups(ctx context.Context, filter MeetupFilter, p Projection) ([]*Meetup, error) {
	if filter.Limit <= 0 {
		filter.Limit = PageSize
	}

	match := bson.M{}
	if filter.UserID != nil {
		match["user_id"] = *filter.UserID
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: bson.D{{Key: "date_time", Value: 1}, {Key: "_id", Value: 1}}}},
		{{Key: "$skip", Value: int64(filter.Offset)}},
		{{Key: "$limit", Value: int64(filter.Limit)}},
	}
	pipeline = append(pipeline, lookupStages(p)...)

	return mdb.aggregate(ctx, pipeline)
}

func (mdb *MongodbRepo) GetMeetupByID(ctx context.Context, id uint, p Projection) (*Meetup, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"_id": id}}},
		{{Key: "$limit", Value: int64(1)}},
	}
	pipeline = append(pipeline, lookupStages(p)...)

	meetups, err := mdb.aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	if len(meetups) == 0 {
		return nil, ErrNotFound
	}
	return meetups[0], nil
}

// nextID hands out sequential ids from the counters collection so mongo
// meetups share the numeric id space of the SQL stores.
func (mdb *MongodbRepo) nextID(ctx context.Context, name string) (uint, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := mdb.GetCollection(CountersTable).
		FindOneAndUpdate(ctx, bson.M{"_id": name}, bson.M{"$inc": bson.M{"seq": 1}}, opts).
		Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("error allocating %s id: %w", name, err)
	}
	return uint(counter.Seq), nil
}

func (mdb *MongodbRepo) CreateMeetup(ctx context.Context, meetup *Meetup) error {
	id, err := mdb.nextID(ctx, MeetupsTable)
	if err != nil {
		return err
	}

	now := time.Now()
	meetup.ID = id
	meetup.CreatedAt = now
	meetup.UpdatedAt = now

	doc := *meetup
	doc.User = nil
	doc.Banner = nil

	if _, err := mdb.GetCollection(MeetupsTable).InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("error inserting meetup: %w", err)
	}
	return nil
}

func (mdb *MongodbRepo) UpdateMeetup(ctx context.Context, meetup *Meetup, changes MeetupChanges) error {
	if changes.IsEmpty() {
		return nil
	}

	now := time.Now()
	set := bson.M{"updated_at": now}
	for col, value := range changes.Columns() {
		set[col] = value
	}

	res, err := mdb.GetCollection(MeetupsTable).UpdateOne(ctx, bson.M{"_id": meetup.ID}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("error updating meetup %d: %w", meetup.ID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}

	changes.ApplyTo(meetup)
	meetup.UpdatedAt = now
	return nil
}

func (mdb *MongodbRepo) DeleteMeetup(ctx context.Context, id uint) error {
	res, err := mdb.GetCollection(MeetupsTable).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("error deleting meetup %d: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Migrate creates the indexes backing the date ordering and the
// organizer listing.
func (mdb *MongodbRepo) Migrate(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "date_time", Value: 1},
				{Key: "_id", Value: 1},
			},
			Options: options.Index().SetName("date_time_idx"),
		},
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "date_time", Value: 1},
			},
			Options: options.Index().SetName("user_date_time_idx"),
		},
	}

	if _, err := mdb.GetCollection(MeetupsTable).Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("error creating indexes: %w", err)
	}
	return nil
}
