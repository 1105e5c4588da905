package main

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/Shubham-kumar0001/smarttax-pos/internal/gate"
	"github.com/Shubham-kumar0001/smarttax-pos/internal/httpx"
	"github.com/Shubham-kumar0001/smarttax-pos/internal/policy"
)

// App is the main application handler that sets up all routes.
type App struct {
	mux       *http.ServeMux
	routerCfg *policy.RouterConfig
	log       *zap.Logger
}

// NewApp creates a new application with all routes configured.
func NewApp(routerCfg *policy.RouterConfig, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}
	app := &App{
		mux:       http.NewServeMux(),
		routerCfg: routerCfg,
		log:       log,
	}
	app.setupRoutes()
	return app
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.routerCfg.AuthGate.WithRole(a.mux).ServeHTTP(w, r)
}

// setupRoutes configures all application routes.
func (a *App) setupRoutes() {
	// ─────────────────────────────────────────────────────────────────────────
	// Public routes
	// ─────────────────────────────────────────────────────────────────────────
	a.mux.HandleFunc("GET /healthz", a.healthz)

	rh := a.routerCfg.RoleHandler
	a.mux.HandleFunc("GET /role", rh.Get)
	a.mux.HandleFunc("PUT /role", rh.Set)

	// ─────────────────────────────────────────────────────────────────────────
	// Catalog and inventory
	// ─────────────────────────────────────────────────────────────────────────
	ph := a.routerCfg.CatalogHandler
	a.handle("GET /products", gate.ResourceCatalog, gate.ActionList, ph.List)
	a.handle("GET /products/{id}", gate.ResourceCatalog, gate.ActionView, ph.Get)
	a.handle("GET /inventory", gate.ResourceInventory, gate.ActionList, ph.Inventory)

	// ─────────────────────────────────────────────────────────────────────────
	// Cart
	// ─────────────────────────────────────────────────────────────────────────
	ch := a.routerCfg.CartHandler
	a.handle("GET /cart", gate.ResourceCart, gate.ActionView, ch.Get)
	a.handle("POST /cart/items", gate.ResourceCart, gate.ActionCreate, ch.AddItem)
	a.handle("PATCH /cart/items/{id}", gate.ResourceCart, gate.ActionUpdate, ch.UpdateItem)
	a.handle("DELETE /cart/items/{id}", gate.ResourceCart, gate.ActionDelete, ch.RemoveItem)
	a.handle("DELETE /cart", gate.ResourceCart, gate.ActionDelete, ch.Clear)

	// ─────────────────────────────────────────────────────────────────────────
	// Checkout
	// ─────────────────────────────────────────────────────────────────────────
	xh := a.routerCfg.CheckoutHandler
	a.handle("GET /checkout", gate.ResourceCheckout, gate.ActionView, xh.Get)
	a.handle("GET /checkout/methods", gate.ResourceCheckout, gate.ActionView, xh.Methods)
	a.handle("POST /checkout", gate.ResourceCheckout, gate.ActionCreate, xh.Open)
	a.handle("POST /checkout/customer", gate.ResourceCheckout, gate.ActionUpdate, xh.SelectCustomer)
	a.handle("POST /checkout/method", gate.ResourceCheckout, gate.ActionUpdate, xh.SelectMethod)
	a.handle("POST /checkout/submethod", gate.ResourceCheckout, gate.ActionUpdate, xh.SelectSubmethod)
	a.handle("POST /checkout/back", gate.ResourceCheckout, gate.ActionUpdate, xh.Back)
	a.handle("POST /checkout/pay", gate.ResourceCheckout, gate.ActionPay, xh.Pay)
	a.handle("POST /checkout/close", gate.ResourceCheckout, gate.ActionDelete, xh.Close)

	// ─────────────────────────────────────────────────────────────────────────
	// Orders and receipts
	// ─────────────────────────────────────────────────────────────────────────
	oh := a.routerCfg.OrderHandler
	a.handle("GET /orders/{id}", gate.ResourceOrder, gate.ActionView, oh.Get)
	a.handle("GET /orders/{id}/receipt", gate.ResourceOrder, gate.ActionView, oh.Receipt)
	a.handle("GET /orders/{id}/receipt.csv", gate.ResourceOrder, gate.ActionView, oh.ReceiptCSV)

	// ─────────────────────────────────────────────────────────────────────────
	// Customers
	// ─────────────────────────────────────────────────────────────────────────
	cu := a.routerCfg.CustomerHandler
	a.handle("GET /customers", gate.ResourceCustomer, gate.ActionList, cu.List)
	a.handle("POST /customers", gate.ResourceCustomer, gate.ActionCreate, cu.Create)
	a.handle("GET /customers/{id}", gate.ResourceCustomer, gate.ActionView, cu.Get)
	a.handle("GET /customers/{id}/history", gate.ResourceCustomer, gate.ActionHistory, cu.History)

	// ─────────────────────────────────────────────────────────────────────────
	// Reports and settings (admin)
	// ─────────────────────────────────────────────────────────────────────────
	rp := a.routerCfg.ReportHandler
	a.handle("GET /reports/summary", gate.ResourceReport, gate.ActionView, rp.Summary)
	a.handle("GET /reports/orders", gate.ResourceReport, gate.ActionList, rp.Orders)
	a.handle("GET /reports/orders.csv", gate.ResourceReport, gate.ActionList, rp.OrdersCSV)

	sh := a.routerCfg.SettingsHandler
	a.handle("GET /settings", gate.ResourceSettings, gate.ActionView, sh.Get)
	a.handle("PUT /settings/shop", gate.ResourceSettings, gate.ActionUpdate, sh.UpdateShop)
}

// handle registers fn behind a permission check.
func (a *App) handle(pattern, resourceType string, action gate.Action, fn http.HandlerFunc) {
	a.mux.Handle(pattern, a.requirePermission(resourceType, action)(fn))
}

// requirePermission wraps a handler to require specific resource permission.
func (a *App) requirePermission(resourceType string, action gate.Action) func(http.Handler) http.Handler {
	return a.routerCfg.AuthGate.RequirePermission(resourceType, action)
}

func (a *App) healthz(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ─────────────────────────────────────────────────────────────────────────────
// Middleware
// ─────────────────────────────────────────────────────────────────────────────

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withLogging adds request logging middleware.
func withLogging(log *zap.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)))
	})
}
