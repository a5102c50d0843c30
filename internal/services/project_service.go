package services

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/foliohive/server/internal/apperror"
	"github.com/foliohive/server/internal/helpers"
	"github.com/foliohive/server/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// externalIDPattern matches the generated projectId format, e.g. "PMF3K9X2ABCDE".
var externalIDPattern = regexp.MustCompile(`^P[A-Z0-9]+$`)

type ProjectService struct {
	projectRepo   models.ProjectRepo
	analyticsRepo models.AnalyticsRepo
	logger        *slog.Logger
}

func NewProjectService(projectRepo models.ProjectRepo, analyticsRepo models.AnalyticsRepo, logger *slog.Logger) *ProjectService {
	return &ProjectService{
		projectRepo:   projectRepo,
		analyticsRepo: analyticsRepo,
		logger:        logger,
	}
}

type CreateProjectInput struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	GithubLink   string   `json:"githubLink"`
	DemoLink     string   `json:"demoLink"`
	Tags         []string `json:"tags"`
	Technologies []string `json:"technologies"`
	Status       string   `json:"status"`
	IsPublic     *bool    `json:"isPublic"`
}

func (ps *ProjectService) Create(ctx context.Context, owner primitive.ObjectID, input CreateProjectInput) (*models.Project, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperror.ValidationFailed("name", "project name is required")
	}
	if owner.IsZero() {
		return nil, apperror.ValidationFailed("owner", "owner is required")
	}

	status := input.Status
	if status == "" {
		status = models.StatusPublished
	}
	if !models.ValidStatus(status) {
		return nil, apperror.ValidationFailed("status", fmt.Sprintf("invalid status: %s", status))
	}

	slug, err := ps.uniqueSlug(ctx, name)
	if err != nil {
		return nil, err
	}

	isPublic := true
	if input.IsPublic != nil {
		isPublic = *input.IsPublic
	}

	project := &models.Project{
		ProjectID:    helpers.GenerateProjectID(),
		Slug:         slug,
		Name:         name,
		Description:  strings.TrimSpace(input.Description),
		GithubLink:   strings.TrimSpace(input.GithubLink),
		DemoLink:     strings.TrimSpace(input.DemoLink),
		Owner:        owner,
		Tags:         input.Tags,
		Technologies: input.Technologies,
		Status:       status,
		IsPublic:     isPublic,
	}

	created, err := ps.projectRepo.CreateProject(ctx, project)
	if err != nil {
		return nil, err
	}

	ps.logger.Info("project created",
		"project_id", created.ProjectID,
		"slug", created.Slug,
		"owner", owner.Hex(),
	)
	return created, nil
}

// uniqueSlug derives a slug from the name and appends -1, -2, ... until it
// is free. The unique index on slug still backstops concurrent creates.
func (ps *ProjectService) uniqueSlug(ctx context.Context, name string) (string, error) {
	base := helpers.Slugify(name)
	if base == "" {
		base = "project"
	}

	slug := base
	for i := 1; ; i++ {
		exists, err := ps.projectRepo.SlugExists(ctx, slug)
		if err != nil {
			return "", err
		}
		if !exists {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

// Get resolves id as a Mongo ObjectID hex or as an external projectId.
// Anything matching neither format is a bad request, not a miss.
func (ps *ProjectService) Get(ctx context.Context, id string) (*models.Project, error) {
	id = strings.TrimSpace(id)

	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return ps.projectRepo.GetProjectByID(ctx, oid)
	}
	if externalIDPattern.MatchString(id) {
		return ps.projectRepo.GetProjectByProjectID(ctx, id)
	}
	return nil, apperror.ValidationFailed("id", "Invalid project ID format")
}

func (ps *ProjectService) List(ctx context.Context, filter models.ProjectFilter) ([]*models.Project, error) {
	if filter.Status != "" && !models.ValidStatus(filter.Status) {
		return nil, apperror.ValidationFailed("status", fmt.Sprintf("invalid status: %s", filter.Status))
	}
	return ps.projectRepo.ListProjects(ctx, filter)
}

func (ps *ProjectService) Search(ctx context.Context, query string, tags []string) ([]*models.Project, error) {
	return ps.projectRepo.SearchProjects(ctx, strings.TrimSpace(query), tags)
}

// snapshotField maps an interaction kind to the analytics counter it bumps.
// Bookmarks and reactions only live on the project document.
func snapshotField(kind string) (string, bool) {
	switch kind {
	case models.InteractionView:
		return "views", true
	case models.InteractionLike:
		return "likes", true
	case models.InteractionComment:
		return "comments", true
	case models.InteractionShare:
		return "shares", true
	}
	return "", false
}

// RecordInteraction bumps the project counters and, for tracked kinds, the
// analytics snapshot. The project update is the source of truth; a snapshot
// failure is logged but does not fail the request.
func (ps *ProjectService) RecordInteraction(ctx context.Context, id string, kind, comment string) (*models.Project, error) {
	if !models.ValidInteraction(kind) {
		return nil, apperror.ValidationFailed("type", fmt.Sprintf("unknown interaction type: %s", kind))
	}
	if kind == models.InteractionComment && strings.TrimSpace(comment) == "" {
		return nil, apperror.ValidationFailed("content", "comment content is required")
	}

	project, err := ps.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := ps.projectRepo.RecordInteraction(ctx, project.ID, kind, strings.TrimSpace(comment)); err != nil {
		return nil, err
	}

	if field, ok := snapshotField(kind); ok {
		if _, err := ps.analyticsRepo.IncrementAnalytics(ctx, project.ID, field); err != nil {
			ps.logger.Error("analytics increment failed",
				"project", project.ID.Hex(),
				"field", field,
				"error", err,
			)
		}
	}

	return ps.Get(ctx, project.ID.Hex())
}
