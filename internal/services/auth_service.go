package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"

	"github.com/foliohive/server/internal/apperror"
	"github.com/foliohive/server/internal/helpers"
	"github.com/foliohive/server/internal/models"
	"github.com/foliohive/server/internal/oauth"
	"github.com/foliohive/server/internal/token"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AuthService struct {
	userRepo models.UserRepo
	tokens   *token.Service
	logger   *slog.Logger
}

func NewAuthService(userRepo models.UserRepo, tokens *token.Service, logger *slog.Logger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		logger:   logger,
	}
}

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResult is returned by Login, Refresh and OAuthLogin: the sanitized
// user plus the tokens the handler turns into cookies.
type AuthResult struct {
	User *models.SanitizedUser
	Pair *token.Pair
}

func (as *AuthService) Register(ctx context.Context, input RegisterInput) (*models.SanitizedUser, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if name == "" {
		return nil, apperror.ValidationFailed("name", "name is required")
	}
	if email == "" {
		return nil, apperror.ValidationFailed("email", "email is required")
	}
	if err := models.Validate.Var(email, "email"); err != nil {
		return nil, apperror.ValidationFailed("email", "invalid email format")
	}
	if input.Password == "" {
		return nil, apperror.ValidationFailed("password", "password is required")
	}
	if !helpers.IsPasswordStrong(input.Password) {
		return nil, apperror.ValidationFailed("password",
			"password must be at least 8 characters and include uppercase, lowercase, number and special character")
	}

	hashed, err := helpers.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %v", err)
	}

	user := &models.User{
		Name:           name,
		Email:          email,
		Password:       hashed,
		Role:           models.RoleUser,
		ProfilePicture: helpers.RandomProfilePicture(),
	}

	created, err := as.userRepo.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}

	as.logger.Info("user registered", "user_id", created.ID.Hex())
	return created.Sanitize(), nil
}

// Login checks credentials and issues a fresh token pair. Unknown email and
// wrong password return the same message so the endpoint cannot be used to
// probe which addresses have accounts.
func (as *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, apperror.ValidationFailed("", "email and password are required")
	}

	user, err := as.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.Unauthorized("Invalid credentials")
		}
		return nil, err
	}

	if !helpers.ComparePassword(password, user.Password) {
		return nil, apperror.Unauthorized("Invalid credentials")
	}

	pair, err := as.tokens.IssuePair(user.ID.Hex(), user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("error issuing tokens: %v", err)
	}

	as.logger.Info("user logged in", "user_id", user.ID.Hex())
	return &AuthResult{User: user.Sanitize(), Pair: pair}, nil
}

// Refresh exchanges a valid refresh token for a new access token. The user
// is re-read so a role change takes effect on the next refresh.
func (as *AuthService) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	claims, err := as.tokens.Verify(refreshToken, token.KindRefresh)
	if err != nil {
		return nil, apperror.Unauthorized("Invalid refresh token")
	}

	id, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return nil, apperror.Unauthorized("Invalid refresh token")
	}

	user, err := as.userRepo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.Unauthorized("Invalid refresh token")
		}
		return nil, err
	}

	access, err := as.tokens.IssueAccessToken(user.ID.Hex(), user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("error issuing access token: %v", err)
	}

	return &AuthResult{
		User: user.Sanitize(),
		Pair: &token.Pair{AccessToken: access, RefreshToken: refreshToken},
	}, nil
}

// OAuthLogin finds the local account matching the provider profile's email,
// creating one on first sign-in, then issues a token pair.
func (as *AuthService) OAuthLogin(ctx context.Context, profile *oauth.Profile) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(profile.Email))
	if email == "" {
		return nil, apperror.Upstream(fmt.Sprintf("%s did not return an email address", profile.Provider))
	}

	user, err := as.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, apperror.ErrNotFound) {
			return nil, err
		}

		name := strings.TrimSpace(profile.Name)
		if name == "" {
			name = email
		}
		picture := profile.Avatar
		if picture == "" {
			picture = helpers.RandomProfilePicture()
		}

		// OAuth accounts have no usable password; the stored hash is random
		// so a password login can never succeed against it
		hashed, hashErr := helpers.HashPassword(randomPassword())
		if hashErr != nil {
			return nil, fmt.Errorf("error hashing placeholder password: %v", hashErr)
		}

		user, err = as.userRepo.CreateUser(ctx, &models.User{
			Name:           name,
			Email:          email,
			Password:       hashed,
			Role:           models.RoleUser,
			ProfilePicture: picture,
		})
		if err != nil {
			return nil, err
		}
		as.logger.Info("user created via oauth", "provider", profile.Provider, "user_id", user.ID.Hex())
	}

	pair, err := as.tokens.IssuePair(user.ID.Hex(), user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("error issuing tokens: %v", err)
	}

	return &AuthResult{User: user.Sanitize(), Pair: pair}, nil
}

const passwordAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789@$!%*?&"

func randomPassword() string {
	b := make([]byte, 32)
	for i := range b {
		b[i] = passwordAlphabet[rand.IntN(len(passwordAlphabet))]
	}
	return string(b)
}
