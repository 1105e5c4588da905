package policy

import (
	"context"
	"net/http"

	"github.com/Shubham-kumar0001/smarttax-pos/internal/gate"
	"github.com/Shubham-kumar0001/smarttax-pos/internal/httpx"
)

// RoleHeader overrides the terminal role for a single request.
const RoleHeader = "X-POS-Role"

// RoleSource reports the role the terminal is currently toggled to.
type RoleSource interface {
	Role() gate.Role
}

// AuthGate holds the role gate and where the active role comes from.
type AuthGate struct {
	Gate  *gate.Gate[gate.Role]
	roles RoleSource
}

// NewAuthGate creates a gate over the built-in admin and staff profiles.
func NewAuthGate(roles RoleSource) *AuthGate {
	return &AuthGate{
		Gate:  gate.New[gate.Role](gate.DefaultResolver()),
		roles: roles,
	}
}

// role returns the role stored in ctx, falling back to the terminal role.
func (ag *AuthGate) role(ctx context.Context) gate.Role {
	if r, ok := gate.RoleFromContext(ctx); ok {
		return r
	}
	if ag.roles == nil {
		return ""
	}
	return ag.roles.Role()
}

// Authorize checks whether the active role can perform action on resourceType.
func (ag *AuthGate) Authorize(ctx context.Context, action gate.Action, resourceType string) error {
	return ag.Gate.Authorize(ctx, ag.role(ctx), action, resourceType)
}

// Can is a convenience method that returns bool instead of error.
func (ag *AuthGate) Can(ctx context.Context, action gate.Action, resourceType string) bool {
	return ag.Authorize(ctx, action, resourceType) == nil
}

// Permissions lists what role is granted.
func (ag *AuthGate) Permissions(ctx context.Context, role gate.Role) []gate.Permission {
	return ag.Gate.Permissions(ctx, role)
}

// WithRole resolves the role for each request: the RoleHeader when it names a
// known role, otherwise the terminal role.
func (ag *AuthGate) WithRole(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role := ag.role(r.Context())
		if h := r.Header.Get(RoleHeader); h != "" {
			parsed, err := gate.ParseRole(h)
			if err != nil {
				httpx.JSONError(w, http.StatusBadRequest, "unknown_role", err.Error())
				return
			}
			role = parsed
		}
		next.ServeHTTP(w, r.WithContext(gate.WithRole(r.Context(), role)))
	})
}

// RequirePermission returns middleware that checks the role's permission.
func (ag *AuthGate) RequirePermission(resourceType string, action gate.Action) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := ag.Authorize(r.Context(), action, resourceType); err != nil {
				httpx.JSONError(w, http.StatusForbidden, "forbidden", map[string]string{
					"role":       string(ag.role(r.Context())),
					"permission": string(gate.NewPermission(resourceType, action)),
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
