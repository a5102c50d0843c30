package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/foliohive/server/internal/apperror"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProjectFilter narrows ListProjects. Nil/empty fields match everything.
type ProjectFilter struct {
	Owner  *primitive.ObjectID
	Status string
}

type ProjectRepo interface {
	CreateProject(ctx context.Context, project *Project) (*Project, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	GetProjectByID(ctx context.Context, id primitive.ObjectID) (*Project, error)
	GetProjectByProjectID(ctx context.Context, projectID string) (*Project, error)
	ListProjects(ctx context.Context, filter ProjectFilter) ([]*Project, error)
	SearchProjects(ctx context.Context, query string, tags []string) ([]*Project, error)
	RecordInteraction(ctx context.Context, id primitive.ObjectID, kind, comment string) error
	OwnerTotals(ctx context.Context, owner primitive.ObjectID) (*OwnerTotals, error)
	RecentActivity(ctx context.Context, owner primitive.ObjectID, limit int) ([]*ActivityItem, error)
	TopProjects(ctx context.Context, owner primitive.ObjectID, limit int) ([]*ProjectSummary, error)
}

func (mdb *MongodbRepo) CreateProject(ctx context.Context, project *Project) (*Project, error) {
	col := mdb.Collection(ProjectsCol)

	now := time.Now()
	project.CreatedAt = now
	project.UpdatedAt = now
	if project.ID.IsZero() {
		project.ID = primitive.NewObjectID()
	}
	if project.Comments == nil {
		project.Comments = []string{}
	}

	if _, err := col.InsertOne(ctx, project); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperror.Conflict("project", "slug or projectId already exists")
		}
		return nil, fmt.Errorf("error inserting project: %v", err)
	}

	return project, nil
}

func (mdb *MongodbRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	count, err := mdb.Collection(ProjectsCol).CountDocuments(ctx, bson.M{"slug": slug})
	if err != nil {
		return false, fmt.Errorf("error checking slug: %v", err)
	}
	return count > 0, nil
}

func (mdb *MongodbRepo) GetProjectByID(ctx context.Context, id primitive.ObjectID) (*Project, error) {
	var project Project
	err := mdb.Collection(ProjectsCol).FindOne(ctx, bson.M{"_id": id}).Decode(&project)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NotFound("Project not found")
		}
		return nil, fmt.Errorf("error finding project: %v", err)
	}
	return &project, nil
}

func (mdb *MongodbRepo) GetProjectByProjectID(ctx context.Context, projectID string) (*Project, error) {
	var project Project
	err := mdb.Collection(ProjectsCol).FindOne(ctx, bson.M{"projectId": projectID}).Decode(&project)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NotFound("Project not found")
		}
		return nil, fmt.Errorf("error finding project: %v", err)
	}
	return &project, nil
}

func (mdb *MongodbRepo) ListProjects(ctx context.Context, filter ProjectFilter) ([]*Project, error) {
	query := bson.M{}
	if filter.Owner != nil {
		query["owner"] = *filter.Owner
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	cursor, err := mdb.Collection(ProjectsCol).Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing projects: %v", err)
	}
	defer cursor.Close(ctx)

	projects := []*Project{}
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, fmt.Errorf("error decoding projects: %v", err)
	}
	return projects, nil
}

func (mdb *MongodbRepo) SearchProjects(ctx context.Context, query string, tags []string) ([]*Project, error) {
	filter := bson.M{}
	if query != "" {
		regex := primitive.Regex{Pattern: query, Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"name": regex},
			bson.M{"description": regex},
		}
	}
	if len(tags) > 0 {
		filter["tags"] = bson.M{"$all": tags}
	}

	cursor, err := mdb.Collection(ProjectsCol).Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error searching projects: %v", err)
	}
	defer cursor.Close(ctx)

	projects := []*Project{}
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, fmt.Errorf("error decoding search results: %v", err)
	}
	return projects, nil
}

// RecordInteraction bumps the counter for kind with a server-side $inc so
// concurrent interactions never lose updates. A view also bumps the
// time-windowed view counters; a comment appends to the comment list.
func (mdb *MongodbRepo) RecordInteraction(ctx context.Context, id primitive.ObjectID, kind, comment string) error {
	update := bson.M{"$set": bson.M{"updatedAt": time.Now()}}

	switch kind {
	case InteractionLike:
		update["$inc"] = bson.M{"likes": 1}
	case InteractionShare:
		update["$inc"] = bson.M{"shares": 1}
	case InteractionBookmark:
		update["$inc"] = bson.M{"bookmarks": 1}
	case InteractionReaction:
		update["$inc"] = bson.M{"reactions": 1}
	case InteractionView:
		update["$inc"] = bson.M{
			"views":           1,
			"weeklyViews":     1,
			"monthlyViews":    1,
			"quarterlyViews":  1,
			"halfYearlyViews": 1,
		}
	case InteractionComment:
		update["$push"] = bson.M{"comments": comment}
	default:
		return apperror.ValidationFailed("type", fmt.Sprintf("unknown interaction type: %s", kind))
	}

	result, err := mdb.Collection(ProjectsCol).UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("error recording interaction: %v", err)
	}
	if result.MatchedCount == 0 {
		return apperror.NotFound("Project not found")
	}
	return nil
}

// OwnerTotals pushes the counting and engagement summation into the
// aggregation pipeline instead of loading every document client-side.
func (mdb *MongodbRepo) OwnerTotals(ctx context.Context, owner primitive.ObjectID) (*OwnerTotals, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"owner": owner}}},
		{{Key: "$group", Value: bson.M{
			"_id":           nil,
			"totalProjects": bson.M{"$sum": 1},
			"publishedProjects": bson.M{"$sum": bson.M{
				"$cond": bson.A{bson.M{"$eq": bson.A{"$status", StatusPublished}}, 1, 0},
			}},
			"totalViews": bson.M{"$sum": "$views"},
			"totalEngagement": bson.M{"$sum": bson.M{"$add": bson.A{
				"$likes",
				bson.M{"$size": bson.M{"$ifNull": bson.A{"$comments", bson.A{}}}},
				"$shares",
				"$bookmarks",
				"$reactions",
			}}},
		}}},
	}

	cursor, err := mdb.Collection(ProjectsCol).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("error aggregating owner totals: %v", err)
	}
	defer cursor.Close(ctx)

	var results []OwnerTotals
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("error decoding owner totals: %v", err)
	}
	if len(results) == 0 {
		return &OwnerTotals{}, nil
	}
	return &results[0], nil
}

// RecentActivity flattens each project's comment list into individual feed
// entries. Projects without comments contribute nothing.
func (mdb *MongodbRepo) RecentActivity(ctx context.Context, owner primitive.ObjectID, limit int) ([]*ActivityItem, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"owner": owner}}},
		{{Key: "$unwind", Value: "$comments"}},
		{{Key: "$sort", Value: bson.D{{Key: "updatedAt", Value: -1}}}},
		{{Key: "$limit", Value: limit}},
		{{Key: "$project", Value: bson.M{
			"name":    1,
			"type":    bson.M{"$literal": InteractionComment},
			"content": "$comments",
			"date":    "$updatedAt",
		}}},
	}

	cursor, err := mdb.Collection(ProjectsCol).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("error aggregating recent activity: %v", err)
	}
	defer cursor.Close(ctx)

	items := []*ActivityItem{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("error decoding recent activity: %v", err)
	}
	return items, nil
}

func (mdb *MongodbRepo) TopProjects(ctx context.Context, owner primitive.ObjectID, limit int) ([]*ProjectSummary, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "views", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := mdb.Collection(ProjectsCol).Find(ctx, bson.M{"owner": owner}, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding top projects: %v", err)
	}
	defer cursor.Close(ctx)

	var projects []*Project
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, fmt.Errorf("error decoding top projects: %v", err)
	}

	summaries := make([]*ProjectSummary, 0, len(projects))
	for _, p := range projects {
		summaries = append(summaries, &ProjectSummary{
			Name:            p.Name,
			Views:           p.Views,
			TotalEngagement: p.TotalEngagement(),
		})
	}
	return summaries, nil
}
