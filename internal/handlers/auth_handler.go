package handlers

import (
	"net/http"

	"github.com/foliohive/server/internal/config"
	"github.com/foliohive/server/internal/middleware"
	"github.com/foliohive/server/internal/models"
	"github.com/foliohive/server/internal/oauth"
	"github.com/foliohive/server/internal/services"
	"github.com/foliohive/server/internal/token"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	accessCookie  = "accessToken"
	refreshCookie = "refreshToken"
	stateCookie   = "oauthState"
)

// setSessionCookies writes the token pair as httpOnly cookies with expiries
// matching the token lifetimes.
func setSessionCookies(c *gin.Context, cfg *config.Config, tokens *token.Service, pair *token.Pair) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(accessCookie, pair.AccessToken, int(tokens.AccessTTL().Seconds()), "/", "", cfg.IsProduction(), true)
	c.SetCookie(refreshCookie, pair.RefreshToken, int(tokens.RefreshTTL().Seconds()), "/", "", cfg.IsProduction(), true)
}

func clearSessionCookies(c *gin.Context, cfg *config.Config) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(accessCookie, "", -1, "/", "", cfg.IsProduction(), true)
	c.SetCookie(refreshCookie, "", -1, "/", "", cfg.IsProduction(), true)
}

func Register(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input services.RegisterInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid request payload"))
			return
		}

		user, err := auth.Register(c.Request.Context(), input)
		if err != nil {
			handleError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(user, "User registered successfully"))
	}
}

func Login(auth *services.AuthService, cfg *config.Config, tokens *token.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid request payload"))
			return
		}

		result, err := auth.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			handleError(c, err)
			return
		}

		setSessionCookies(c, cfg, tokens, result.Pair)
		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{"user": result.User}, "Login successful"))
	}
}

// Logout clears the session cookies. Tokens are stateless, so an already
// issued access token stays valid until it expires.
func Logout(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		clearSessionCookies(c, cfg)
		c.JSON(http.StatusOK, models.SuccessResponse(nil, "Logged out"))
	}
}

// Check reports whether the request carries a valid access token. Unlike the
// auth middleware it answers 401 with a body the frontend can branch on.
func Check(tokens *token.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(accessCookie)
		if err != nil || raw == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"authenticated": false})
			return
		}

		claims, err := tokens.Verify(raw, token.KindAccess)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"authenticated": false})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"authenticated": true,
			"user": gin.H{
				"id":    claims.UserID,
				"email": claims.Email,
				"role":  claims.Role,
			},
		})
	}
}

// Refresh exchanges the refresh cookie for a fresh access cookie.
func Refresh(auth *services.AuthService, cfg *config.Config, tokens *token.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(refreshCookie)
		if err != nil || raw == "" {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("Refresh token not found"))
			return
		}

		result, err := auth.Refresh(c.Request.Context(), raw)
		if err != nil {
			clearSessionCookies(c, cfg)
			handleError(c, err)
			return
		}

		setSessionCookies(c, cfg, tokens, result.Pair)
		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{"user": result.User}, "Token refreshed"))
	}
}

// OAuth handles both legs of the authorization-code flow on one route.
// Without a code it redirects to the provider's consent page; with one it
// verifies the state cookie, exchanges the code and starts a session.
func OAuth(auth *services.AuthService, providers oauth.Registry, cfg *config.Config, tokens *token.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		provider, ok := providers.Get(c.Query("provider"))
		if !ok {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("unknown oauth provider"))
			return
		}

		code := c.Query("code")
		if code == "" {
			state := uuid.New().String()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(stateCookie, state, 600, "/", "", cfg.IsProduction(), true)
			c.Redirect(http.StatusTemporaryRedirect, provider.AuthURL(state))
			return
		}

		state, err := c.Cookie(stateCookie)
		if err != nil || state == "" || state != c.Query("state") {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("invalid oauth state"))
			return
		}
		c.SetCookie(stateCookie, "", -1, "/", "", cfg.IsProduction(), true)

		profile, err := provider.Exchange(c.Request.Context(), code)
		if err != nil {
			c.JSON(http.StatusBadGateway, models.ErrorResponse("oauth exchange failed"))
			return
		}

		result, err := auth.OAuthLogin(c.Request.Context(), profile)
		if err != nil {
			handleError(c, err)
			return
		}

		setSessionCookies(c, cfg, tokens, result.Pair)
		c.Redirect(http.StatusTemporaryRedirect, cfg.FrontendURL+"/dashboard")
	}
}

// currentUserID extracts the authenticated user's ObjectID set by the auth
// middleware; handlers behind it can assume it is present.
func currentUserID(c *gin.Context) (string, bool) {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		return "", false
	}
	return claims.UserID, true
}
