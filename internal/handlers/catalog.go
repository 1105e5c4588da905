package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/Shubham-kumar0001/smarttax-pos/internal/gate"
	"github.com/Shubham-kumar0001/smarttax-pos/internal/httpx"
	"github.com/Shubham-kumar0001/smarttax-pos/internal/reports"
	"github.com/Shubham-kumar0001/smarttax-pos/internal/store"
)

type CatalogHandler struct {
	store *store.Store
	auth  Authorizer
	log   *zap.Logger
}

func NewCatalogHandler(s *store.Store, auth Authorizer, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{store: s, auth: auth, log: logger(log)}
}

// List returns the catalog, filtered by ?q= on name or category.
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	products := h.store.SearchProducts(query)
	httpx.JSON(w, http.StatusOK, map[string]any{
		"products": products,
		"query":    query,
		"total":    len(products),
	})
}

func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.store.Product(r.PathValue("id"))
	if err != nil {
		writeError(w, h.log, err, nil)
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

// Inventory lists stock levels and the total stock value. Liabilities,
// equity, profit and loss are only included for roles allowed to see them.
func (h *CatalogHandler) Inventory(w http.ResponseWriter, r *http.Request) {
	withFinancials := h.auth.Can(r.Context(), gate.ActionValue, gate.ResourceInventory)
	inv := reports.InventoryReport(h.store.Products(), withFinancials)
	if r.URL.Query().Get("filter") == "out_of_stock" {
		inv.Products = reports.OutOfStock(inv.Products)
	}
	httpx.JSON(w, http.StatusOK, inv)
}
