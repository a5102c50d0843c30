package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/foliohive/server/internal/apperror"
	"github.com/foliohive/server/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repos backing the service tests. They implement the same
// contracts as the Mongo-backed repos, including the apperror categories.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]*models.User)}
}

func (f *fakeUserRepo) CreateUser(_ context.Context, user *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return nil, apperror.Conflict("user", "email already exists")
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, apperror.NotFound("User not found")
}

func (f *fakeUserRepo) GetUserByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, apperror.NotFound("User not found")
	}
	return user, nil
}

func (f *fakeUserRepo) UpdateProfile(_ context.Context, id primitive.ObjectID, update bson.M) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, apperror.NotFound("User not found")
	}
	if name, ok := update["name"].(string); ok {
		user.Name = name
	}
	if location, ok := update["location"].(string); ok {
		user.Location = location
	}
	if bio, ok := update["bio"].(string); ok {
		user.Bio = bio
	}
	if picture, ok := update["profilePicture"].(string); ok {
		user.ProfilePicture = picture
	}
	if skills, ok := update["skills"].([]string); ok {
		user.Skills = skills
	}
	user.UpdatedAt = time.Now()
	return user, nil
}

type fakeProjectRepo struct {
	mu       sync.Mutex
	projects map[primitive.ObjectID]*models.Project
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{projects: make(map[primitive.ObjectID]*models.Project)}
}

func (f *fakeProjectRepo) CreateProject(_ context.Context, project *models.Project) (*models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.projects {
		if existing.Slug == project.Slug || existing.ProjectID == project.ProjectID {
			return nil, apperror.Conflict("project", "slug or projectId already exists")
		}
	}
	if project.ID.IsZero() {
		project.ID = primitive.NewObjectID()
	}
	if project.Comments == nil {
		project.Comments = []string{}
	}
	now := time.Now()
	project.CreatedAt = now
	project.UpdatedAt = now
	f.projects[project.ID] = project
	return project, nil
}

func (f *fakeProjectRepo) SlugExists(_ context.Context, slug string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.projects {
		if p.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeProjectRepo) GetProjectByID(_ context.Context, id primitive.ObjectID) (*models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.projects[id]
	if !ok {
		return nil, apperror.NotFound("Project not found")
	}
	return p, nil
}

func (f *fakeProjectRepo) GetProjectByProjectID(_ context.Context, projectID string) (*models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.projects {
		if p.ProjectID == projectID {
			return p, nil
		}
	}
	return nil, apperror.NotFound("Project not found")
}

func (f *fakeProjectRepo) ListProjects(_ context.Context, filter models.ProjectFilter) ([]*models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*models.Project{}
	for _, p := range f.projects {
		if filter.Owner != nil && p.Owner != *filter.Owner {
			continue
		}
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProjectRepo) SearchProjects(_ context.Context, query string, tags []string) ([]*models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*models.Project{}
	query = strings.ToLower(query)
	for _, p := range f.projects {
		if query != "" &&
			!strings.Contains(strings.ToLower(p.Name), query) &&
			!strings.Contains(strings.ToLower(p.Description), query) {
			continue
		}
		if !containsAll(p.Tags, tags) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func containsAll(haystack, needles []string) bool {
	for _, needle := range needles {
		found := false
		for _, h := range haystack {
			if h == needle {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (f *fakeProjectRepo) RecordInteraction(_ context.Context, id primitive.ObjectID, kind, comment string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.projects[id]
	if !ok {
		return apperror.NotFound("Project not found")
	}
	switch kind {
	case models.InteractionLike:
		p.Likes++
	case models.InteractionShare:
		p.Shares++
	case models.InteractionBookmark:
		p.Bookmarks++
	case models.InteractionReaction:
		p.Reactions++
	case models.InteractionView:
		p.Views++
		p.WeeklyViews++
		p.MonthlyViews++
		p.QuarterlyViews++
		p.HalfYearlyViews++
	case models.InteractionComment:
		p.Comments = append(p.Comments, comment)
	default:
		return apperror.ValidationFailed("type", "unknown interaction type: "+kind)
	}
	p.UpdatedAt = time.Now()
	return nil
}

func (f *fakeProjectRepo) OwnerTotals(_ context.Context, owner primitive.ObjectID) (*models.OwnerTotals, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	totals := &models.OwnerTotals{}
	for _, p := range f.projects {
		if p.Owner != owner {
			continue
		}
		totals.TotalProjects++
		if p.Status == models.StatusPublished {
			totals.PublishedProjects++
		}
		totals.TotalViews += p.Views
		totals.TotalEngagement += p.TotalEngagement()
	}
	return totals, nil
}

func (f *fakeProjectRepo) RecentActivity(_ context.Context, owner primitive.ObjectID, limit int) ([]*models.ActivityItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	items := []*models.ActivityItem{}
	for _, p := range f.projects {
		if p.Owner != owner {
			continue
		}
		for _, comment := range p.Comments {
			items = append(items, &models.ActivityItem{
				ProjectName: p.Name,
				Type:        models.InteractionComment,
				Content:     comment,
				Date:        p.UpdatedAt,
			})
		}
	}
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (f *fakeProjectRepo) TopProjects(_ context.Context, owner primitive.ObjectID, limit int) ([]*models.ProjectSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	summaries := []*models.ProjectSummary{}
	for _, p := range f.projects {
		if p.Owner != owner {
			continue
		}
		summaries = append(summaries, &models.ProjectSummary{
			Name:            p.Name,
			Views:           p.Views,
			TotalEngagement: p.TotalEngagement(),
		})
	}
	for i := 0; i < len(summaries); i++ {
		for j := i + 1; j < len(summaries); j++ {
			if summaries[j].Views > summaries[i].Views {
				summaries[i], summaries[j] = summaries[j], summaries[i]
			}
		}
	}
	if len(summaries) > limit {
		summaries = summaries[:limit]
	}
	return summaries, nil
}

type fakeAnalyticsRepo struct {
	mu        sync.Mutex
	snapshots map[primitive.ObjectID]*models.Analytics
}

func newFakeAnalyticsRepo() *fakeAnalyticsRepo {
	return &fakeAnalyticsRepo{snapshots: make(map[primitive.ObjectID]*models.Analytics)}
}

func (f *fakeAnalyticsRepo) IncrementAnalytics(_ context.Context, project primitive.ObjectID, field string) (*models.Analytics, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	snap, ok := f.snapshots[project]
	if !ok {
		snap = &models.Analytics{Project: project, CreatedAt: time.Now()}
		f.snapshots[project] = snap
	}
	switch field {
	case "views":
		snap.Views++
	case "likes":
		snap.Likes++
	case "comments":
		snap.Comments++
	case "shares":
		snap.Shares++
	}
	snap.UpdatedAt = time.Now()
	return snap, nil
}

func (f *fakeAnalyticsRepo) GetAnalytics(_ context.Context, project primitive.ObjectID) (*models.Analytics, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	snap, ok := f.snapshots[project]
	if !ok {
		return &models.Analytics{Project: project}, nil
	}
	return snap, nil
}
