package gate

import "errors"

// Sentinel errors returned by Gate.Authorize.
var (
	ErrForbidden   = errors.New("forbidden")
	ErrUnknownRole = errors.New("unknown role")
)
