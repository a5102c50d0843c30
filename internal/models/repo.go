package models

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var Validate = validator.New()

const (
	DBName       = "foliohive"
	UsersCol     = "users"
	ProjectsCol  = "projects"
	AnalyticsCol = "analytics"
)

type MongodbRepo struct {
	mongodbClient *mongo.Client
	dbName        string
}

// MongodbNewRepo wires a repo to dbName; an empty name falls back to the
// default database.
func MongodbNewRepo(mongodbClient *mongo.Client, dbName string) *MongodbRepo {
	if dbName == "" {
		dbName = DBName
	}
	return &MongodbRepo{
		mongodbClient: mongodbClient,
		dbName:        dbName,
	}
}

func (mdb *MongodbRepo) Collection(name string) *mongo.Collection {
	return mdb.mongodbClient.Database(mdb.dbName).Collection(name)
}

// EnsureIndexes creates the unique indexes the data model relies on:
// one email per user, and unique sparse slug/projectId across projects.
func (mdb *MongodbRepo) EnsureIndexes(ctx context.Context) error {
	userIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("email_unique"),
		},
	}
	if _, err := mdb.Collection(UsersCol).Indexes().CreateMany(ctx, userIndexes); err != nil {
		return fmt.Errorf("error creating user indexes: %v", err)
	}

	projectIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true).SetName("slug_unique"),
		},
		{
			Keys:    bson.D{{Key: "projectId", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true).SetName("project_id_unique"),
		},
		{
			Keys:    bson.D{{Key: "owner", Value: 1}},
			Options: options.Index().SetName("owner_idx"),
		},
		{
			Keys: bson.D{
				{Key: "owner", Value: 1},
				{Key: "views", Value: -1},
			},
			Options: options.Index().SetName("owner_views_idx"),
		},
	}
	if _, err := mdb.Collection(ProjectsCol).Indexes().CreateMany(ctx, projectIndexes); err != nil {
		return fmt.Errorf("error creating project indexes: %v", err)
	}

	analyticsIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "project", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("project_unique"),
		},
	}
	if _, err := mdb.Collection(AnalyticsCol).Indexes().CreateMany(ctx, analyticsIndexes); err != nil {
		return fmt.Errorf("error creating analytics indexes: %v", err)
	}

	return nil
}
