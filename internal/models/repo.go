package models

import (
	"log/slog"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

var Validate = validator.New(validator.WithRequiredStructEnabled())

type GormRepo struct {
	log *slog.Logger
	db  *gorm.DB
}

var _ MeetupRepo = (*GormRepo)(nil)

func GormNewRepo(log *slog.Logger, db *gorm.DB) *GormRepo {
	return &GormRepo{
		log: log,
		db:  db,
	}
}

type MongodbRepo struct {
	mongodbClient *mongo.Client
	dbName        string
}

var _ MeetupRepo = (*MongodbRepo)(nil)

func MongodbNewRepo(mongodbClient *mongo.Client, dbName string) *MongodbRepo {
	return &MongodbRepo{
		mongodbClient: mongodbClient,
		dbName:        dbName,
	}
}

func (mdb *MongodbRepo) GetCollection(name string) *mongo.Collection {
	return mdb.mongodbClient.Database(mdb.dbName).Collection(name)
}
