package handlers

import (
	"net/http"

	"github.com/foliohive/server/internal/models"
	"github.com/foliohive/server/internal/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func Dashboard(analytics *services.AnalyticsService) gin.HandlerFunc {
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

		dashboard, err := analytics.Dashboard(c.Request.Context(), owner)
		if err != nil {
			handleError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(dashboard, ""))
	}
}

// ProjectAnalytics serves the public per-project counter snapshot.
func ProjectAnalytics(projects *services.ProjectService, analytics *services.AnalyticsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		project, err := projects.Get(c.Request.Context(), c.Query("projectId"))
		if err != nil {
			handleError(c, err)
			return
		}

		snapshot, err := analytics.ProjectAnalytics(c.Request.Context(), project.ID)
		if err != nil {
			handleError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(snapshot, ""))
	}
}
