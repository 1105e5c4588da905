package gate

import (
	"context"
	"fmt"
	"strings"
)

// Role is the operator mode of the terminal. It filters what the UI offers;
// it is not an authentication boundary.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleStaff
}

// ParseRole accepts a role name in any case.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
	return r, nil
}

// Resource names used in permissions.
const (
	ResourceCatalog   = "catalog"
	ResourceInventory = "inventory"
	ResourceCart      = "cart"
	ResourceCheckout  = "checkout"
	ResourceCustomer  = "customer"
	ResourceOrder     = "order"
	ResourceReport    = "report"
	ResourceSettings  = "settings"
)

// StaffPermissions is what the cashier role can do.
var StaffPermissions = []Permission{
	NewPermission(ResourceCatalog, ActionList),
	NewPermission(ResourceCatalog, ActionView),
	Permission(ResourceCart + ":" + WildcardAll),
	Permission(ResourceCheckout + ":" + WildcardAll),
	NewPermission(ResourceCustomer, ActionList),
	NewPermission(ResourceCustomer, ActionCreate),
	NewPermission(ResourceCustomer, ActionView),
	NewPermission(ResourceOrder, ActionView),
	NewPermission(ResourceInventory, ActionList),
}

// DefaultResolver returns the built-in admin and staff profiles.
func DefaultResolver() *StaticResolver[Role] {
	r := NewStaticResolver[Role]()
	r.Set(RoleAdmin, NewStaticProfile(string(RoleAdmin), PermissionAll))
	r.Set(RoleStaff, NewStaticProfile(string(RoleStaff), StaffPermissions...))
	return r
}

type roleKey struct{}

// WithRole stores the active role in ctx.
func WithRole(ctx context.Context, r Role) context.Context {
	return context.WithValue(ctx, roleKey{}, r)
}

// RoleFromContext returns the role stored by WithRole.
func RoleFromContext(ctx context.Context) (Role, bool) {
	r, ok := ctx.Value(roleKey{}).(Role)
	return r, ok
}
