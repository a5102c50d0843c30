package routes

import (
	"github.com/foliohive/server/internal/container"
	"github.com/foliohive/server/internal/handlers"
	"github.com/foliohive/server/internal/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(c *container.Container) *gin.Engine {
	if c.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{c.Config.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(c.Logger))
	r.Use(middleware.ErrorHandler(c.Logger))
	r.Use(gin.Recovery())

	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(200, gin.H{
			"status":  "OK",
			"service": "foliohive-api",
		})
	})

	auth := r.Group("/auth")
	{
		// credential endpoints are the brute-force surface
		limited := c.RateLimiter.Middleware()
		auth.POST("/register", limited, handlers.Register(c.AuthService))
		auth.POST("/login", limited, handlers.Login(c.AuthService, c.Config, c.TokenService))
		auth.POST("/logout", handlers.Logout(c.Config))
		auth.GET("/check", handlers.Check(c.TokenService))
		auth.POST("/refresh", handlers.Refresh(c.AuthService, c.Config, c.TokenService))
		auth.GET("/oauth", handlers.OAuth(c.AuthService, c.OAuthProviders, c.Config, c.TokenService))
	}

	// public catalog
	r.GET("/projects", handlers.ListProjects(c.ProjectService))
	r.GET("/projects/:id", handlers.GetProject(c.ProjectService))
	r.GET("/search", handlers.SearchProjects(c.ProjectService))
	r.GET("/analytics", handlers.ProjectAnalytics(c.ProjectService, c.AnalyticsService))

	protected := r.Group("/")
	protected.Use(middleware.AuthMiddleware(c.TokenService))
	{
		protected.POST("/projects", handlers.CreateProject(c.ProjectService))
		protected.POST("/interactions", handlers.RecordInteraction(c.ProjectService))
		protected.GET("/dashboard", handlers.Dashboard(c.AnalyticsService))
		protected.GET("/profile", handlers.GetProfile(c.UserService))
		protected.PUT("/profile", handlers.UpdateProfile(c.UserService))
	}

	return r
}
