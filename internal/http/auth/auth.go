// Package auth validates bearer tokens issued by the external identity
// provider. The engine never creates sessions; it only reads the
// authenticated user id (and admin flag) out of the signed token. Guest
// tokens carry no subject and are rejected before any ledger operation.
package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type contextKey int

const (
	userIDKey contextKey = iota
	adminKey
)

type Middleware struct {
	secret []byte
}

func NewMiddleware(secret string) *Middleware {
	return &Middleware{secret: []byte(secret)}
}

type claims struct {
	Admin bool `json:"admin"`
	jwt.RegisteredClaims
}

func (m *Middleware) parseToken(r *http.Request) (uuid.UUID, bool, error) {
	header := r.Header.Get("Authorization")

	raw, found := strings.CutPrefix(header, "Bearer ")
	if !found {
		return uuid.Nil, false, fmt.Errorf("missing bearer token")
	}

	var c claims

	token, err := jwt.ParseWithClaims(raw, &c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}

		return m.secret, nil
	})
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("parsing token: %w", err)
	}

	if !token.Valid {
		return uuid.Nil, false, fmt.Errorf("invalid token")
	}

	userID, err := uuid.Parse(c.Subject)
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("token subject is not a user id")
	}

	return userID, c.Admin, nil
}

// Authenticate rejects requests without a valid user token and stores the
// user id and admin flag on the request context.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, admin, err := m.parseToken(r)
		if err != nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		ctx = context.WithValue(ctx, adminKey, admin)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin gates a route on the token's admin claim. It must run after
// Authenticate.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !IsAdmin(r.Context()) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// UserID returns the authenticated user's id from the request context.
func UserID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	return id, ok
}

// IsAdmin reports whether the authenticated user carries the admin claim.
func IsAdmin(ctx context.Context) bool {
	admin, ok := ctx.Value(adminKey).(bool)
	return ok && admin
}
