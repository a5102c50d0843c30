package handlers

import (
	"net/http"
	"strings"

	"github.com/foliohive/server/internal/models"
	"github.com/foliohive/server/internal/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func ListProjects(projects *services.ProjectService) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := models.ProjectFilter{Status: c.Query("status")}

		if owner := c.Query("owner"); owner != "" {
			oid, err := primitive.ObjectIDFromHex(owner)
			if err != nil {
				c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid owner id"))
				return
			}
			filter.Owner = &oid
		}

		result, err := projects.List(c.Request.Context(), filter)
		if err != nil {
			handleError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(result, ""))
	}
}

func CreateProject(projects *services.ProjectService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("Unauthorized access"))
			return
		}
		owner, err := primitive.ObjectIDFromHex(userID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("Unauthorized access"))
			return
		}

		var req struct {
			Name         string `json:"name"`
			Description  string `json:"description"`
			GithubLink   string `json:"githubLink"`
			DemoLink     string `json:"demoLink"`
			Tags         string `json:"tags"`
			Technologies string `json:"technologies"`
			Status       string `json:"status"`
			IsPublic     *bool  `json:"isPublic"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid request payload"))
			return
		}

		project, err := projects.Create(c.Request.Context(), owner, services.CreateProjectInput{
			Name:         req.Name,
			Description:  req.Description,
			GithubLink:   req.GithubLink,
			DemoLink:     req.DemoLink,
			Tags:         splitList(req.Tags),
			Technologies: splitList(req.Technologies),
			Status:       req.Status,
			IsPublic:     req.IsPublic,
		})
		if err != nil {
			handleError(c, err)
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(project, "Project created successfully"))
	}
}

// splitList turns the comma-separated form values clients send for tags and
// technologies into a cleaned slice.
func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func GetProject(projects *services.ProjectService) gin.HandlerFunc {
	return func(c *gin.Context) {
		project, err := projects.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			handleError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(project, ""))
	}
}

func SearchProjects(projects *services.ProjectService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tags := splitList(c.Query("tags"))

		result, err := projects.Search(c.Request.Context(), c.Query("query"), tags)
		if err != nil {
			handleError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(result, ""))
	}
}

func RecordInteraction(projects *services.ProjectService) gin.HandlerFunc {
	return func(c *gin.Context) {
		// older clients send comment text under "payload", newer ones use
		// "content"; accept both
		var req struct {
			ProjectID string `json:"projectId"`
			Type      string `json:"type"`
			Content   string `json:"content"`
			Payload   string `json:"payload"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid request payload"))
			return
		}
		content := req.Content
		if content == "" {
			content = req.Payload
		}

		project, err := projects.RecordInteraction(c.Request.Context(), req.ProjectID, req.Type, content)
		if err != nil {
			handleError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(project, "Interaction recorded"))
	}
}
