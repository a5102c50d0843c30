package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/foliohive/server/internal/apperror"
	"github.com/foliohive/server/internal/oauth"
	"github.com/foliohive/server/internal/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newAuthService(t *testing.T) (*AuthService, *fakeUserRepo) {
	t.Helper()
	tokens, err := token.NewService("test-access-secret-0123", "test-refresh-secret-0123")
	require.NoError(t, err)
	users := newFakeUserRepo()
	return NewAuthService(users, tokens, testLogger()), users
}

func TestRegisterCreatesUser(t *testing.T) {
	svc, _ := newAuthService(t)

	user, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Ama Mensah",
		Email:    "Ama@Example.com",
		Password: "Str0ng!pass",
	})
	require.NoError(t, err)

	assert.Equal(t, "Ama Mensah", user.Name)
	assert.Equal(t, "ama@example.com", user.Email, "email should be normalized to lowercase")
	assert.Equal(t, "user", user.Role)
	assert.NotEmpty(t, user.ProfilePicture)
	assert.NotEmpty(t, user.ID)
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Ama Mensah",
		Email:    "ama@example.com",
		Password: "weakpass",
	})
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestRegisterRejectsInvalidEmail(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Ama Mensah",
		Email:    "not-an-email",
		Password: "Str0ng!pass",
	})
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	input := RegisterInput{Name: "Ama Mensah", Email: "ama@example.com", Password: "Str0ng!pass"}
	_, err := svc.Register(ctx, input)
	require.NoError(t, err)

	_, err = svc.Register(ctx, input)
	assert.ErrorIs(t, err, apperror.ErrConflict)
}

func TestLoginIssuesTokenPair(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Name: "Ama Mensah", Email: "ama@example.com", Password: "Str0ng!pass"})
	require.NoError(t, err)

	result, err := svc.Login(ctx, "ama@example.com", "Str0ng!pass")
	require.NoError(t, err)

	assert.Equal(t, "ama@example.com", result.User.Email)
	assert.NotEmpty(t, result.Pair.AccessToken)
	assert.NotEmpty(t, result.Pair.RefreshToken)
	assert.NotEqual(t, result.Pair.AccessToken, result.Pair.RefreshToken)
}

func TestLoginHidesWhichCredentialFailed(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Name: "Ama Mensah", Email: "ama@example.com", Password: "Str0ng!pass"})
	require.NoError(t, err)

	_, wrongPassword := svc.Login(ctx, "ama@example.com", "Wr0ng!pass")
	_, unknownEmail := svc.Login(ctx, "nobody@example.com", "Str0ng!pass")

	require.Error(t, wrongPassword)
	require.Error(t, unknownEmail)
	assert.ErrorIs(t, wrongPassword, apperror.ErrUnauthorized)
	assert.ErrorIs(t, unknownEmail, apperror.ErrUnauthorized)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestRefreshIssuesNewAccessToken(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Name: "Ama Mensah", Email: "ama@example.com", Password: "Str0ng!pass"})
	require.NoError(t, err)

	login, err := svc.Login(ctx, "ama@example.com", "Str0ng!pass")
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, login.Pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.Pair.AccessToken)
	assert.Equal(t, login.User.ID, refreshed.User.ID)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Name: "Ama Mensah", Email: "ama@example.com", Password: "Str0ng!pass"})
	require.NoError(t, err)

	login, err := svc.Login(ctx, "ama@example.com", "Str0ng!pass")
	require.NoError(t, err)

	_, err = svc.Refresh(ctx, login.Pair.AccessToken)
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestOAuthLoginCreatesAccountOnFirstSignIn(t *testing.T) {
	svc, users := newAuthService(t)
	ctx := context.Background()

	profile := &oauth.Profile{
		Provider:   "github",
		ProviderID: "12345",
		Email:      "dev@example.com",
		Name:       "Dev Example",
		Avatar:     "https://avatars.example.com/u/12345",
	}

	result, err := svc.OAuthLogin(ctx, profile)
	require.NoError(t, err)
	assert.Equal(t, "dev@example.com", result.User.Email)
	assert.NotEmpty(t, result.Pair.AccessToken)

	// password login must not work against the placeholder hash
	_, err = svc.Login(ctx, "dev@example.com", "Str0ng!pass")
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)

	// second sign-in reuses the account
	again, err := svc.OAuthLogin(ctx, profile)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, again.User.ID)
	assert.Len(t, users.users, 1)
}

func TestOAuthLoginRequiresEmail(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.OAuthLogin(context.Background(), &oauth.Profile{
		Provider:   "github",
		ProviderID: "12345",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrUpstream))
}
