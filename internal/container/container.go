package container

import (
	"log/slog"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/foliohive/server/internal/config"
	"github.com/foliohive/server/internal/middleware"
	"github.com/foliohive/server/internal/models"
	"github.com/foliohive/server/internal/oauth"
	"github.com/foliohive/server/internal/services"
	"github.com/foliohive/server/internal/token"
	"go.mongodb.org/mongo-driver/mongo"
)

// Container holds all application dependencies
type Container struct {
	Logger        *slog.Logger
	Config        *config.Config
	Cloudinary    *cloudinary.Cloudinary
	MongoDBClient *mongo.Client

	TokenService     *token.Service
	AuthService      *services.AuthService
	UserService      *services.UserService
	ProjectService   *services.ProjectService
	AnalyticsService *services.AnalyticsService

	OAuthProviders oauth.Registry
	RateLimiter    *middleware.RateLimiter
}

// NewContainer creates a new dependency injection container
func NewContainer(
	logger *slog.Logger,
	cfg *config.Config,
	cld *cloudinary.Cloudinary,
	mongoDBClient *mongo.Client,
) (*Container, error) {
	tokenService, err := token.NewService(cfg.JWTSecret, cfg.JWTRefreshSecret)
	if err != nil {
		return nil, err
	}

	repo := models.MongodbNewRepo(mongoDBClient, cfg.MongoDBName)

	providers := oauth.Registry{}
	if cfg.GithubClientID != "" {
		providers["github"] = oauth.NewGitHubProvider(
			cfg.GithubClientID,
			cfg.GithubClientSecret,
			cfg.AppURL+"/auth/oauth?provider=github",
		)
	}
	if cfg.GoogleClientID != "" {
		providers["google"] = oauth.NewGoogleProvider(
			cfg.GoogleClientID,
			cfg.GoogleClientSecret,
			cfg.AppURL+"/auth/oauth?provider=google",
		)
	}

	return &Container{
		Logger:        logger,
		Config:        cfg,
		Cloudinary:    cld,
		MongoDBClient: mongoDBClient,

		TokenService:     tokenService,
		AuthService:      services.NewAuthService(repo, tokenService, logger),
		UserService:      services.NewUserService(repo, cld),
		ProjectService:   services.NewProjectService(repo, repo, logger),
		AnalyticsService: services.NewAnalyticsService(repo, repo, repo),

		OAuthProviders: providers,
		// 5 attempts burst, refilling one every 2 seconds per IP
		RateLimiter: middleware.NewRateLimiter(0.5, 5),
	}, nil
}
