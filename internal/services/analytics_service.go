package services

import (
	"context"

	"github.com/foliohive/server/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	recentActivityLimit = 5
	topProjectsLimit    = 3
)

type AnalyticsService struct {
	userRepo      models.UserRepo
	projectRepo   models.ProjectRepo
	analyticsRepo models.AnalyticsRepo
}

func NewAnalyticsService(userRepo models.UserRepo, projectRepo models.ProjectRepo, analyticsRepo models.AnalyticsRepo) *AnalyticsService {
	return &AnalyticsService{
		userRepo:      userRepo,
		projectRepo:   projectRepo,
		analyticsRepo: analyticsRepo,
	}
}

// DashboardUser is the owner block of the dashboard payload.
type DashboardUser struct {
	Name  string              `json:"name"`
	Email string              `json:"email"`
	Stats *models.OwnerTotals `json:"stats"`
}

// ProjectView decorates a project with its derived engagement so clients
// never recompute it.
type ProjectView struct {
	*models.Project
	TotalEngagement int64 `json:"totalEngagement"`
}

type Dashboard struct {
	User           *DashboardUser           `json:"user"`
	Projects       []*ProjectView           `json:"projects"`
	RecentActivity []*models.ActivityItem   `json:"recentActivity"`
	TopProjects    []*models.ProjectSummary `json:"topProjects"`
}

// Dashboard assembles the owner's aggregate view: profile block with totals,
// all their projects, the latest comments and the most-viewed projects.
func (s *AnalyticsService) Dashboard(ctx context.Context, owner primitive.ObjectID) (*Dashboard, error) {
	user, err := s.userRepo.GetUserByID(ctx, owner)
	if err != nil {
		return nil, err
	}

	totals, err := s.projectRepo.OwnerTotals(ctx, owner)
	if err != nil {
		return nil, err
	}

	projects, err := s.projectRepo.ListProjects(ctx, models.ProjectFilter{Owner: &owner})
	if err != nil {
		return nil, err
	}
	views := make([]*ProjectView, 0, len(projects))
	for _, p := range projects {
		views = append(views, &ProjectView{Project: p, TotalEngagement: p.TotalEngagement()})
	}

	activity, err := s.projectRepo.RecentActivity(ctx, owner, recentActivityLimit)
	if err != nil {
		return nil, err
	}

	top, err := s.projectRepo.TopProjects(ctx, owner, topProjectsLimit)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		User: &DashboardUser{
			Name:  user.Name,
			Email: user.Email,
			Stats: totals,
		},
		Projects:       views,
		RecentActivity: activity,
		TopProjects:    top,
	}, nil
}

// ProjectAnalytics returns the counter snapshot for one project.
func (s *AnalyticsService) ProjectAnalytics(ctx context.Context, project primitive.ObjectID) (*models.Analytics, error) {
	return s.analyticsRepo.GetAnalytics(ctx, project)
}
