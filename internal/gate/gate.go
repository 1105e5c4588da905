// Package gate decides which resource:action permissions a subject holds.
// Subjects are resolved to profiles; profiles grant permissions with
// wildcard support ("*:*", "cart:*").
package gate

import "context"

// Gate checks profile permissions for subjects of type U.
type Gate[U comparable] struct {
	resolver ProfileResolver[U]
}

// New creates a gate backed by resolver.
func New[U comparable](resolver ProfileResolver[U]) *Gate[U] {
	return &Gate[U]{resolver: resolver}
}

// Authorize returns nil when subject may perform action on resourceType.
// A zero or unresolvable subject yields ErrUnknownRole; a missing permission
// yields ErrForbidden.
func (g *Gate[U]) Authorize(ctx context.Context, subject U, action Action, resourceType string) error {
	var zero U
	if subject == zero {
		return ErrUnknownRole
	}
	profile, err := g.resolver.Resolve(ctx, subject)
	if err != nil {
		return err
	}
	if profile == nil {
		return ErrUnknownRole
	}
	if !profile.HasPermission(NewPermission(resourceType, action)) {
		return ErrForbidden
	}
	return nil
}

// Can is a convenience wrapper returning bool instead of error.
func (g *Gate[U]) Can(ctx context.Context, subject U, action Action, resourceType string) bool {
	return g.Authorize(ctx, subject, action, resourceType) == nil
}

// Permissions lists what subject is granted, or nil if it has no profile.
func (g *Gate[U]) Permissions(ctx context.Context, subject U) []Permission {
	profile, err := g.resolver.Resolve(ctx, subject)
	if err != nil || profile == nil {
		return nil
	}
	return profile.Permissions()
}
