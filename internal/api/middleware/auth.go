package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"contest_hub/internal/common"
	"contest_hub/internal/common/security"
	"contest_hub/internal/domain/model"
	"contest_hub/internal/domain/repository"

	"github.com/go-chi/jwtauth/v5"
)

type contextKey string

const PrincipalCtxKey contextKey = "principalEmail"

// Guard holds the route guards. The role store is an explicit dependency so
// the guards stay stateless and deterministic given (credential, store state).
type Guard struct {
	roleRepo repository.RoleRepository
}

func NewGuard(roleRepo repository.RoleRepository) *Guard {
	return &Guard{roleRepo: roleRepo}
}

// RequireAuth verifies the bearer credential and attaches the verified email
// to the request context. jwtauth.Verifier must run earlier in the chain.
func (g *Guard) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())

		if err != nil {
			if strings.Contains(err.Error(), "token not found") || token == nil {
				common.RespondWithError(w, http.StatusUnauthorized, "Authorization token required")
			} else {
				common.RespondWithError(w, http.StatusUnauthorized, "Invalid token: "+err.Error())
			}
			return
		}

		if token == nil {
			common.RespondWithError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		email, err := security.GetEmailFromClaims(claims)
		if err != nil {
			common.RespondWithError(w, http.StatusUnauthorized, "Invalid token claims: "+err.Error())
			return
		}

		ctx := context.WithValue(r.Context(), PrincipalCtxKey, email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin must run after RequireAuth. The role store, not a token claim,
// is the source of truth: a principal with no role record or a non-admin role
// is rejected.
func (g *Guard) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		email, ok := GetPrincipalFromContext(r.Context())
		if !ok {
			common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
			return
		}

		record, err := g.roleRepo.FindByEmail(r.Context(), email)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				common.RespondWithError(w, http.StatusForbidden, "Admin access required")
				return
			}
			common.RespondWithError(w, http.StatusInternalServerError, "Failed to resolve role")
			return
		}
		if record.Role != model.RoleAdmin {
			common.RespondWithError(w, http.StatusForbidden, "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetPrincipalFromContext returns the verified email attached by RequireAuth.
func GetPrincipalFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(PrincipalCtxKey).(string)
	return email, ok
}
