package services

import (
	"context"
	"strings"
	"testing"

	"github.com/foliohive/server/internal/apperror"
	"github.com/foliohive/server/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newProjectService() (*ProjectService, *fakeProjectRepo, *fakeAnalyticsRepo) {
	projects := newFakeProjectRepo()
	analytics := newFakeAnalyticsRepo()
	return NewProjectService(projects, analytics, testLogger()), projects, analytics
}

func TestCreateProjectGeneratesIdentifiers(t *testing.T) {
	svc, _, _ := newProjectService()
	owner := primitive.NewObjectID()

	project, err := svc.Create(context.Background(), owner, CreateProjectInput{
		Name:         "My Portfolio Site",
		Description:  "Personal site built with Next.js",
		Technologies: []string{"nextjs", "tailwind"},
	})
	require.NoError(t, err)

	assert.Equal(t, "my-portfolio-site", project.Slug)
	assert.True(t, strings.HasPrefix(project.ProjectID, "P"))
	assert.Equal(t, strings.ToUpper(project.ProjectID), project.ProjectID)
	assert.Equal(t, models.StatusPublished, project.Status, "status defaults to published")
	assert.True(t, project.IsPublic)
	assert.NotNil(t, project.Comments)
}

func TestCreateProjectDeduplicatesSlug(t *testing.T) {
	svc, _, _ := newProjectService()
	owner := primitive.NewObjectID()
	ctx := context.Background()

	first, err := svc.Create(ctx, owner, CreateProjectInput{Name: "Demo"})
	require.NoError(t, err)
	second, err := svc.Create(ctx, owner, CreateProjectInput{Name: "Demo"})
	require.NoError(t, err)
	third, err := svc.Create(ctx, owner, CreateProjectInput{Name: "Demo"})
	require.NoError(t, err)

	assert.Equal(t, "demo", first.Slug)
	assert.Equal(t, "demo-1", second.Slug)
	assert.Equal(t, "demo-2", third.Slug)
}

func TestCreateProjectValidation(t *testing.T) {
	svc, _, _ := newProjectService()
	owner := primitive.NewObjectID()
	ctx := context.Background()

	_, err := svc.Create(ctx, owner, CreateProjectInput{Name: "   "})
	assert.ErrorIs(t, err, apperror.ErrValidation)

	_, err = svc.Create(ctx, owner, CreateProjectInput{Name: "Demo", Status: "live"})
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestGetResolvesBothIdentifierFormats(t *testing.T) {
	svc, _, _ := newProjectService()
	owner := primitive.NewObjectID()
	ctx := context.Background()

	created, err := svc.Create(ctx, owner, CreateProjectInput{Name: "Demo"})
	require.NoError(t, err)

	byOID, err := svc.Get(ctx, created.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, created.ID, byOID.ID)

	byProjectID, err := svc.Get(ctx, created.ProjectID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, byProjectID.ID)
}

func TestGetRejectsMalformedID(t *testing.T) {
	svc, _, _ := newProjectService()

	_, err := svc.Get(context.Background(), "not-a-valid-id")
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestGetUnknownProjectIsNotFound(t *testing.T) {
	svc, _, _ := newProjectService()

	_, err := svc.Get(context.Background(), primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestRecordInteractionBumpsCounters(t *testing.T) {
	svc, _, analytics := newProjectService()
	owner := primitive.NewObjectID()
	ctx := context.Background()

	created, err := svc.Create(ctx, owner, CreateProjectInput{Name: "Demo"})
	require.NoError(t, err)

	_, err = svc.RecordInteraction(ctx, created.ID.Hex(), models.InteractionView, "")
	require.NoError(t, err)
	_, err = svc.RecordInteraction(ctx, created.ID.Hex(), models.InteractionLike, "")
	require.NoError(t, err)
	project, err := svc.RecordInteraction(ctx, created.ProjectID, models.InteractionComment, "Great work!")
	require.NoError(t, err)

	assert.Equal(t, int64(1), project.Views)
	assert.Equal(t, int64(1), project.WeeklyViews)
	assert.Equal(t, int64(1), project.Likes)
	assert.Equal(t, []string{"Great work!"}, project.Comments)
	assert.Equal(t, int64(2), project.TotalEngagement(), "like + comment")

	snap, err := analytics.GetAnalytics(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), snap.Views)
	assert.Equal(t, int64(1), snap.Likes)
	assert.Equal(t, int64(1), snap.Comments)
}

func TestRecordInteractionBookmarkSkipsSnapshot(t *testing.T) {
	svc, _, analytics := newProjectService()
	owner := primitive.NewObjectID()
	ctx := context.Background()

	created, err := svc.Create(ctx, owner, CreateProjectInput{Name: "Demo"})
	require.NoError(t, err)

	project, err := svc.RecordInteraction(ctx, created.ID.Hex(), models.InteractionBookmark, "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), project.Bookmarks)

	snap, err := analytics.GetAnalytics(ctx, created.ID)
	require.NoError(t, err)
	assert.Zero(t, snap.Views+snap.Likes+snap.Comments+snap.Shares)
}

func TestRecordInteractionValidation(t *testing.T) {
	svc, _, _ := newProjectService()
	owner := primitive.NewObjectID()
	ctx := context.Background()

	created, err := svc.Create(ctx, owner, CreateProjectInput{Name: "Demo"})
	require.NoError(t, err)

	_, err = svc.RecordInteraction(ctx, created.ID.Hex(), "rate", "")
	assert.ErrorIs(t, err, apperror.ErrValidation)

	_, err = svc.RecordInteraction(ctx, created.ID.Hex(), models.InteractionComment, "   ")
	assert.ErrorIs(t, err, apperror.ErrValidation)

	_, err = svc.RecordInteraction(ctx, primitive.NewObjectID().Hex(), models.InteractionLike, "")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestListFiltersByStatus(t *testing.T) {
	svc, _, _ := newProjectService()
	owner := primitive.NewObjectID()
	ctx := context.Background()

	_, err := svc.Create(ctx, owner, CreateProjectInput{Name: "Published one"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, owner, CreateProjectInput{Name: "Draft one", Status: models.StatusDraft})
	require.NoError(t, err)

	published, err := svc.List(ctx, models.ProjectFilter{Owner: &owner, Status: models.StatusPublished})
	require.NoError(t, err)
	assert.Len(t, published, 1)

	_, err = svc.List(ctx, models.ProjectFilter{Status: "bogus"})
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestSearchMatchesNameAndTags(t *testing.T) {
	svc, _, _ := newProjectService()
	owner := primitive.NewObjectID()
	ctx := context.Background()

	_, err := svc.Create(ctx, owner, CreateProjectInput{Name: "Weather Dashboard", Tags: []string{"go", "api"}})
	require.NoError(t, err)
	_, err = svc.Create(ctx, owner, CreateProjectInput{Name: "Chat App", Tags: []string{"go"}})
	require.NoError(t, err)

	byName, err := svc.Search(ctx, "weather", nil)
	require.NoError(t, err)
	assert.Len(t, byName, 1)

	byTags, err := svc.Search(ctx, "", []string{"go", "api"})
	require.NoError(t, err)
	assert.Len(t, byTags, 1)
	assert.Equal(t, "Weather Dashboard", byTags[0].Name)
}
