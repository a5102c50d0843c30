package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AnalyticsRepo interface {
	IncrementAnalytics(ctx context.Context, project primitive.ObjectID, field string) (*Analytics, error)
	GetAnalytics(ctx context.Context, project primitive.ObjectID) (*Analytics, error)
}

// IncrementAnalytics upserts the per-project snapshot with an atomic $inc,
// creating the document on the first interaction.
func (mdb *MongodbRepo) IncrementAnalytics(ctx context.Context, project primitive.ObjectID, field string) (*Analytics, error) {
	now := time.Now()
	filter := bson.M{"project": project}
	update := bson.M{
		"$inc": bson.M{field: 1},
		"$set": bson.M{"updatedAt": now},
		"$setOnInsert": bson.M{
			"project":   project,
			"createdAt": now,
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var result Analytics
	err := mdb.Collection(AnalyticsCol).FindOneAndUpdate(ctx, filter, update, opts).Decode(&result)
	if err != nil {
		return nil, fmt.Errorf("error upserting analytics: %v", err)
	}
	return &result, nil
}

// GetAnalytics returns the snapshot for a project, or a zero-valued one when
// no interaction has been recorded yet.
func (mdb *MongodbRepo) GetAnalytics(ctx context.Context, project primitive.ObjectID) (*Analytics, error) {
	var result Analytics
	err := mdb.Collection(AnalyticsCol).FindOne(ctx, bson.M{"project": project}).Decode(&result)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return &Analytics{Project: project}, nil
		}
		return nil, fmt.Errorf("error finding analytics: %v", err)
	}
	return &result, nil
}
