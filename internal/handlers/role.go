package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/Shubham-kumar0001/smarttax-pos/internal/gate"
	"github.com/Shubham-kumar0001/smarttax-pos/internal/httpx"
	"github.com/Shubham-kumar0001/smarttax-pos/internal/store"
)

// PermissionLister reports what a role is granted.
type PermissionLister interface {
	Permissions(ctx context.Context, role gate.Role) []gate.Permission
}

// RoleHandler exposes the admin/staff toggle.
type RoleHandler struct {
	store *store.Store
	perms PermissionLister
	log   *zap.Logger
}

func NewRoleHandler(s *store.Store, perms PermissionLister, log *zap.Logger) *RoleHandler {
	return &RoleHandler{store: s, perms: perms, log: logger(log)}
}

func (h *RoleHandler) write(w http.ResponseWriter, r *http.Request, role gate.Role) {
	httpx.JSON(w, http.StatusOK, map[string]any{
		"role":        role,
		"permissions": h.perms.Permissions(r.Context(), role),
	})
}

func (h *RoleHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.write(w, r, h.store.Role())
}

// Set switches the role with {"role": "admin"|"staff"}.
func (h *RoleHandler) Set(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Role string `json:"role"`
	}
	if err := httpx.DecodeJSON(r, &body); err != nil {
		writeError(w, h.log, err, nil)
		return
	}
	role, err := gate.ParseRole(body.Role)
	if err != nil {
		writeError(w, h.log, err, nil)
		return
	}
	if err := h.store.SetRole(role); err != nil {
		writeError(w, h.log, err, nil)
		return
	}
	h.write(w, r, role)
}
