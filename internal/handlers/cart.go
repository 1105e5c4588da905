package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/Shubham-kumar0001/smarttax-pos/internal/cart"
	"github.com/Shubham-kumar0001/smarttax-pos/internal/httpx"
	"github.com/Shubham-kumar0001/smarttax-pos/internal/models"
	"github.com/Shubham-kumar0001/smarttax-pos/internal/store"
	"github.com/Shubham-kumar0001/smarttax-pos/internal/validation"
)

type CartHandler struct {
	store *store.Store
	log   *zap.Logger
}

func NewCartHandler(s *store.Store, log *zap.Logger) *CartHandler {
	return &CartHandler{store: s, log: logger(log)}
}

type cartView struct {
	Items    []models.CartItem `json:"items"`
	Lines    int               `json:"lines"`
	Units    int               `json:"units"`
	TaxRate  float64           `json:"tax_rate"`
	Subtotal float64           `json:"subtotal"`
	Tax      float64           `json:"tax"`
	Total    float64           `json:"total"`
}

func (h *CartHandler) view(c cart.Cart) cartView {
	rate := h.store.TaxRate()
	t := c.Totals(rate)
	return cartView{
		Items:    c.Items(),
		Lines:    c.Len(),
		Units:    c.Units(),
		TaxRate:  rate,
		Subtotal: t.Subtotal,
		Tax:      t.Tax,
		Total:    t.Total,
	}
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.view(h.store.Cart()))
}

// AddItem adds one unit of {"product_id": "..."}.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ProductID string `json:"product_id"`
	}
	if err := httpx.DecodeJSON(r, &body); err != nil {
		writeError(w, h.log, err, nil)
		return
	}
	v := make(validation.Violations)
	validation.Required("product_id", body.ProductID, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}

	c, err := h.store.AddToCart(body.ProductID)
	if err != nil {
		writeError(w, h.log, err, nil)
		return
	}
	httpx.JSON(w, http.StatusOK, h.view(c))
}

// UpdateItem sets {"quantity": n}; values below 1 are stored as 1.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Quantity *int `json:"quantity"`
	}
	if err := httpx.DecodeJSON(r, &body); err != nil {
		writeError(w, h.log, err, nil)
		return
	}
	if body.Quantity == nil {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", validation.Violations{"quantity": "required"})
		return
	}
	httpx.JSON(w, http.StatusOK, h.view(h.store.UpdateQuantity(r.PathValue("id"), *body.Quantity)))
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.view(h.store.RemoveFromCart(r.PathValue("id"))))
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.view(h.store.ClearCart()))
}
