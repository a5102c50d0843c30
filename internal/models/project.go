package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

// Interaction kinds accepted by POST /interactions.
const (
	InteractionLike     = "like"
	InteractionComment  = "comment"
	InteractionShare    = "share"
	InteractionBookmark = "bookmark"
	InteractionReaction = "reaction"
	InteractionView     = "view"
)

type Project struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProjectID   string             `bson:"projectId" json:"projectId"`
	Slug        string             `bson:"slug" json:"slug"`
	Name        string             `bson:"name" json:"name" validate:"required"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	GithubLink  string             `bson:"githubLink,omitempty" json:"githubLink,omitempty"`
	DemoLink    string             `bson:"demoLink,omitempty" json:"demoLink,omitempty"`
	Owner       primitive.ObjectID `bson:"owner" json:"owner" validate:"required"`
	Tags        []string           `bson:"tags,omitempty" json:"tags,omitempty"`
	Technologies []string          `bson:"technologies,omitempty" json:"technologies,omitempty"`
	Comments    []string           `bson:"comments" json:"comments"`

	Likes     int64 `bson:"likes" json:"likes"`
	Shares    int64 `bson:"shares" json:"shares"`
	Bookmarks int64 `bson:"bookmarks" json:"bookmarks"`
	Reactions int64 `bson:"reactions" json:"reactions"`

	Views           int64 `bson:"views" json:"views"`
	WeeklyViews     int64 `bson:"weeklyViews" json:"weeklyViews"`
	MonthlyViews    int64 `bson:"monthlyViews" json:"monthlyViews"`
	QuarterlyViews  int64 `bson:"quarterlyViews" json:"quarterlyViews"`
	HalfYearlyViews int64 `bson:"halfYearlyViews" json:"halfYearlyViews"`

	Status    string    `bson:"status" json:"status"`
	IsPublic  bool      `bson:"isPublic" json:"isPublic"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// TotalEngagement is derived, never stored: likes + comment count + shares +
// bookmarks + reactions.
func (p *Project) TotalEngagement() int64 {
	return p.Likes + int64(len(p.Comments)) + p.Shares + p.Bookmarks + p.Reactions
}

func ValidStatus(status string) bool {
	switch status {
	case StatusDraft, StatusPublished, StatusArchived:
		return true
	}
	return false
}

func ValidInteraction(kind string) bool {
	switch kind {
	case InteractionLike, InteractionComment, InteractionShare,
		InteractionBookmark, InteractionReaction, InteractionView:
		return true
	}
	return false
}

// OwnerTotals is the aggregate block shown on the dashboard.
type OwnerTotals struct {
	TotalProjects     int64 `bson:"totalProjects" json:"totalProjects"`
	PublishedProjects int64 `bson:"publishedProjects" json:"publishedProjects"`
	TotalViews        int64 `bson:"totalViews" json:"totalViews"`
	TotalEngagement   int64 `bson:"totalEngagement" json:"totalEngagement"`
}

// ActivityItem is one flattened comment in the recent-activity feed.
type ActivityItem struct {
	ProjectName string    `bson:"name" json:"name"`
	Type        string    `bson:"type" json:"type"`
	Content     string    `bson:"content" json:"content"`
	Date        time.Time `bson:"date" json:"date"`
}

// ProjectSummary is the projection used for top-project listings.
type ProjectSummary struct {
	Name            string `json:"name"`
	Views           int64  `json:"views"`
	TotalEngagement int64  `json:"totalEngagement"`
}
