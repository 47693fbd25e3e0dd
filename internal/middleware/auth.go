package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/baharkarakas/contact-manager/internal/api/httpx"
	"github.com/baharkarakas/contact-manager/internal/auth"
)

type claimsKey struct{}

func ClaimsFrom(ctx context.Context) (*auth.Claims, bool) {
	c, ok := ctx.Value(claimsKey{}).(*auth.Claims)
	return c, ok
}

type AuthMiddleware struct {
	TM *auth.TokenManager
}

func NewAuthMiddleware(tm *auth.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{TM: tm}
}

// RequireAdmin accepts only a valid access token carrying the admin role.
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearer(r.Header.Get("Authorization"))
		if !ok {
			httpx.WriteMessage(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		claims, err := m.TM.ParseAccess(token)
		if err != nil {
			httpx.WriteMessage(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		if claims.Role != auth.RoleAdmin {
			httpx.WriteMessage(w, http.StatusForbidden, "Forbidden")
			return
		}
		ctx := context.WithValue(r.Context(), claimsKey{}, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearer(h string) (string, bool) {
	const prefix = "bearer "
	if len(h) <= len(prefix) || !strings.EqualFold(h[:len(prefix)], prefix) {
		return "", false
	}
	tok := strings.TrimSpace(h[len(prefix):])
	return tok, tok != ""
}
