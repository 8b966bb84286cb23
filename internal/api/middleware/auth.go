package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/m04kA/BBQ-RentalService/internal/api/handlers"
	"github.com/m04kA/BBQ-RentalService/pkg/auth"
)

const (
	msgMissingToken = "требуется авторизация"
	msgInvalidToken = "недействительный токен сессии"
	msgAdminOnly    = "требуются права администратора"
	msgUserOnly     = "требуется сессия пользователя"
	msgDriverOnly   = "требуется сессия водителя или администратора"
)

type contextKey string

const claimsKey contextKey = "claims"

// TokenParser проверяет токен сессии
type TokenParser interface {
	Parse(raw string) (*auth.Claims, error)
}

// Auth проверяет Bearer токен и кладет claims в контекст запроса
func Auth(parser TokenParser) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			claims, err := parser.Parse(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// RequireAdmin пропускает только сессии администратора. Ставится после Auth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := GetClaims(r.Context())
		if !ok || !claims.Admin {
			handlers.RespondForbidden(w, msgAdminOnly)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireUser пропускает только сессии зарегистрированных пользователей (не водителя)
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetUserID(r.Context()); !ok {
			handlers.RespondForbidden(w, msgUserOnly)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireDriverOrAdmin пропускает водительскую сессию и администратора. Ставится после Auth.
func RequireDriverOrAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := GetClaims(r.Context())
		if !ok || (claims.Role != auth.RoleDriver && !claims.Admin) {
			handlers.RespondForbidden(w, msgDriverOnly)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// WithClaims кладет claims сессии в контекст
func WithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// GetClaims достает claims сессии из контекста
func GetClaims(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*auth.Claims)
	return claims, ok && claims != nil
}

// GetUserID id пользователя сессии; у водительской сессии его нет
func GetUserID(ctx context.Context) (int64, bool) {
	claims, ok := GetClaims(ctx)
	if !ok {
		return 0, false
	}
	return claims.UserID()
}

// IsAdmin сессия администратора
func IsAdmin(ctx context.Context) bool {
	claims, ok := GetClaims(ctx)
	return ok && claims.Admin
}
