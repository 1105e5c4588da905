package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/Shubham-kumar0001/smarttax-pos/internal/httpx"
	"github.com/Shubham-kumar0001/smarttax-pos/internal/models"
	"github.com/Shubham-kumar0001/smarttax-pos/internal/store"
	"github.com/Shubham-kumar0001/smarttax-pos/internal/validation"
)

type SettingsHandler struct {
	store *store.Store
	log   *zap.Logger
}

func NewSettingsHandler(s *store.Store, log *zap.Logger) *SettingsHandler {
	return &SettingsHandler{store: s, log: logger(log)}
}

// Get shows the shop profile and the tax rate in effect.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	shop, err := h.store.Shop(r.Context())
	if err != nil {
		writeError(w, h.log, err, nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"shop":     shop,
		"tax_rate": h.store.TaxRate(),
	})
}

// UpdateShop merges the provided fields into the shop profile.
func (h *SettingsHandler) UpdateShop(w http.ResponseWriter, r *http.Request) {
	var patch models.ShopDetailsPatch
	if err := httpx.DecodeJSON(r, &patch); err != nil {
		writeError(w, h.log, err, nil)
		return
	}

	v := make(validation.Violations)
	if patch.Name != nil {
		validation.Required("name", *patch.Name, v)
		validation.MaxLen("name", *patch.Name, 255, v)
	}
	if patch.Email != nil {
		validation.OptionalEmail("email", *patch.Email, v)
	}
	if patch.Address != nil {
		validation.MaxLen("address", *patch.Address, 500, v)
	}
	if patch.Phone != nil {
		validation.MaxLen("phone", *patch.Phone, 50, v)
	}
	if patch.TaxID != nil {
		validation.MaxLen("tax_id", *patch.TaxID, 50, v)
	}
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}

	shop, err := h.store.UpdateShop(r.Context(), patch)
	if err != nil {
		writeError(w, h.log, err, nil)
		return
	}
	h.log.Info("shop profile updated")
	httpx.JSON(w, http.StatusOK, shop)
}
