package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"donation/internal/core/domain/model/actor"
	"donation/internal/core/domain/model/kernel"
	"donation/internal/core/domain/model/user"
	"donation/internal/generated/servers"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// DefaultTokenTTL is the lifetime of tokens issued at registration and login.
const DefaultTokenTTL = 7 * 24 * time.Hour

const actorKey = "actor"

var (
	ErrMissingToken = errors.New("missing or invalid authorization header")
	ErrInvalidToken = errors.New("invalid token")
)

// Claims identify the caller. Subject is the user id; IsVolunteer fixes the
// actor kind for the lifetime of the token.
type Claims struct {
	IsVolunteer bool `json:"isVolunteer"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 bearer tokens.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	clock  kernel.Clock
}

// NewTokenService returns a token service. A ttl <= 0 means DefaultTokenTTL.
func NewTokenService(secret string, ttl time.Duration, clock kernel.Clock) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("token secret is required")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	if clock == nil {
		clock = kernel.SystemClock()
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, clock: clock}, nil
}

// Issue signs a token for u.
func (t *TokenService) Issue(u *user.User) (string, error) {
	return t.IssueFor(u.ID(), u.IsVolunteer())
}

// IssueFor signs a token for the user id with the given volunteer flag. Login
// uses it to hand out a fresh token whenever the old one expired.
func (t *TokenService) IssueFor(userID kernel.UUID, isVolunteer bool) (string, error) {
	if err := userID.Validate(); err != nil {
		return "", err
	}

	now := t.clock.Now()
	claims := Claims{
		IsVolunteer: isVolunteer,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Parse verifies token and returns the actor it identifies.
func (t *TokenService) Parse(token string) (actor.Actor, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(t.clock.Now), jwt.WithExpirationRequired())
	if err != nil {
		return actor.Actor{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return actor.Actor{}, ErrInvalidToken
	}

	id, err := kernel.UUIDFromString(claims.Subject)
	if err != nil {
		return actor.Actor{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	return actor.FromFlag(id, claims.IsVolunteer)
}

// BearerAuth resolves the caller from the Authorization header and stores the
// actor on the echo context. Requests matched by skipper pass through untouched.
func BearerAuth(tokens *TokenService, skipper middleware.Skipper) echo.MiddlewareFunc {
	if skipper == nil {
		skipper = middleware.DefaultSkipper
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if skipper(c) {
				return next(c)
			}

			header := c.Request().Header.Get(echo.HeaderAuthorization)
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || raw == "" {
				return unauthorized(c, ErrMissingToken)
			}

			a, err := tokens.Parse(raw)
			if err != nil {
				return unauthorized(c, ErrInvalidToken)
			}

			c.Set(actorKey, a)
			return next(c)
		}
	}
}

// PublicRoutes skips authentication for registration, login, health checks and
// API documentation.
func PublicRoutes(c echo.Context) bool {
	path := c.Path()
	switch {
	case c.Request().Method == http.MethodPost && (path == "/api/v1/users" || path == "/api/v1/auth/login"):
		return true
	case path == "/health", path == "/openapi.yaml", strings.HasPrefix(path, "/swagger"):
		return true
	default:
		return false
	}
}

// ActorFrom returns the authenticated caller.
func ActorFrom(c echo.Context) (actor.Actor, bool) {
	a, ok := c.Get(actorKey).(actor.Actor)
	return a, ok
}

func unauthorized(c echo.Context, err error) error {
	return c.JSON(http.StatusUnauthorized, servers.Error{
		Code:    http.StatusUnauthorized,
		Message: err.Error(),
	})
}
