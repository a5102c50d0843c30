// Package token issues and verifies the self-contained JWTs FolioHive uses
// for sessions. Tokens are stateless: verification needs no database lookup,
// which trades instant revocation for horizontal scalability. Access and
// refresh tokens are signed with separate secrets so a leaked key only
// compromises one kind.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Kind string

const (
	KindAccess  Kind = "access"
	KindRefresh Kind = "refresh"
)

const (
	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour
)

var (
	ErrTokenExpired     = errors.New("token expired")
	ErrInvalidTokenType = errors.New("invalid token type")
	ErrInvalidToken     = errors.New("invalid token")
	ErrInvalidUser      = errors.New("invalid user data")
)

// Claims is the JWT payload. Access tokens carry id, email and role so
// protected handlers never need a user lookup; refresh tokens carry the id
// only.
type Claims struct {
	UserID    string `json:"id"`
	Email     string `json:"email,omitempty"`
	Role      string `json:"role,omitempty"`
	TokenType string `json:"type"`
	jwt.RegisteredClaims
}

type Pair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type Service struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewService(accessSecret, refreshSecret string) (*Service, error) {
	if len(accessSecret) < 16 || len(refreshSecret) < 16 {
		return nil, fmt.Errorf("token: signing secrets must be at least 16 characters")
	}
	return &Service{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     AccessTokenTTL,
		refreshTTL:    RefreshTokenTTL,
	}, nil
}

// AccessTTL is exposed so handlers can set matching cookie expiries.
func (s *Service) AccessTTL() time.Duration { return s.accessTTL }

func (s *Service) RefreshTTL() time.Duration { return s.refreshTTL }

// IssueAccessToken signs a short-lived token carrying id, email and role.
// Fails if the user has no stable identifier.
func (s *Service) IssueAccessToken(userID, email, role string) (string, error) {
	if userID == "" {
		return "", ErrInvalidUser
	}
	return s.sign(&Claims{
		UserID:    userID,
		Email:     email,
		Role:      role,
		TokenType: string(KindAccess),
	}, s.accessSecret, s.accessTTL)
}

// IssueRefreshToken signs a long-lived token carrying the user id only.
func (s *Service) IssueRefreshToken(userID string) (string, error) {
	if userID == "" {
		return "", ErrInvalidUser
	}
	return s.sign(&Claims{
		UserID:    userID,
		TokenType: string(KindRefresh),
	}, s.refreshSecret, s.refreshTTL)
}

func (s *Service) IssuePair(userID, email, role string) (*Pair, error) {
	access, err := s.IssueAccessToken(userID, email, role)
	if err != nil {
		return nil, err
	}
	refresh, err := s.IssueRefreshToken(userID)
	if err != nil {
		return nil, err
	}
	return &Pair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *Service) sign(c *Claims, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	c.RegisteredClaims = jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("token: signing token: %v", err)
	}
	return signed, nil
}

// Verify parses tokenStr and checks it against the expected kind. Returns
// ErrTokenExpired past expiry, ErrInvalidTokenType when an access token is
// presented where a refresh token is expected (or vice versa), and
// ErrInvalidToken for any signature or structure failure.
func (s *Service) Verify(tokenStr string, kind Kind) (*Claims, error) {
	secret, other := s.accessSecret, s.refreshSecret
	if kind == KindRefresh {
		secret, other = s.refreshSecret, s.accessSecret
	}

	claims, err := s.parse(tokenStr, secret)
	if err != nil {
		// A token signed for the other kind fails the signature check here.
		// Re-parse with the other secret so callers see a kind mismatch
		// instead of a generic invalid token.
		if errors.Is(err, ErrInvalidToken) {
			if cross, crossErr := s.parse(tokenStr, other); crossErr == nil && cross.TokenType != string(kind) {
				return nil, ErrInvalidTokenType
			}
		}
		return nil, err
	}
	if claims.TokenType != string(kind) {
		return nil, ErrInvalidTokenType
	}
	if claims.UserID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

func (s *Service) parse(tokenStr string, secret []byte) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(
		tokenStr,
		&Claims{},
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
