package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ncastelli/hogarfin/pkg/response"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// SessionKey is the context key for the authenticated session
	SessionKey ContextKey = "session"

	// CookieName is the cookie the session token is stored in
	CookieName = "token"

	// TokenTTL is how long issued session tokens stay valid
	TokenTTL = 7 * 24 * time.Hour
)

// Session identifies the authenticated user and their organization
type Session struct {
	UserID         int64  `json:"user_id"`
	OrganizationID int64  `json:"organization_id"`
	Role           string `json:"role"`
}

type sessionClaims struct {
	UserID         int64  `json:"uid"`
	OrganizationID int64  `json:"oid"`
	Role           string `json:"role"`
	jwt.RegisteredClaims
}

// CreateToken issues a signed session token
func CreateToken(secret string, session Session) (string, error) {
	claims := sessionClaims{
		UserID:         session.UserID,
		OrganizationID: session.OrganizationID,
		Role:           session.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// parseToken validates a session token and returns the session it carries
func parseToken(secret, raw string) (*Session, error) {
	claims := &sessionClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	return &Session{
		UserID:         claims.UserID,
		OrganizationID: claims.OrganizationID,
		Role:           claims.Role,
	}, nil
}

// Auth validates the session token from the cookie or the Authorization
// header and stores the session in the request context
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := tokenFromRequest(r)
			if raw == "" {
				response.Unauthorized(w, "Authentication required")
				return
			}

			session, err := parseToken(secret, raw)
			if err != nil {
				response.Unauthorized(w, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), SessionKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole rejects requests whose session role is not in the allowed set
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, ok := GetSession(r.Context())
			if !ok {
				response.Unauthorized(w, "Authentication required")
				return
			}

			for _, role := range roles {
				if session.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			response.Forbidden(w, "You do not have permission to perform this action")
		})
	}
}

// GetSession extracts the session from the request context
func GetSession(ctx context.Context) (*Session, bool) {
	session, ok := ctx.Value(SessionKey).(*Session)
	return session, ok
}

// tokenFromRequest reads the session token from the cookie, falling back to
// a Bearer Authorization header
func tokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(CookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := r.Header.Get("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}

	return ""
}
