package policy

import (
	"time"

	"go.uber.org/zap"

	"github.com/Shubham-kumar0001/smarttax-pos/internal/checkout"
	"github.com/Shubham-kumar0001/smarttax-pos/internal/handlers"
	"github.com/Shubham-kumar0001/smarttax-pos/internal/store"
)

// RouterConfig holds configured handlers and middleware for the application.
type RouterConfig struct {
	// AuthGate provides permission checks and middleware
	AuthGate *AuthGate

	CatalogHandler  *handlers.CatalogHandler
	CartHandler     *handlers.CartHandler
	CheckoutHandler *handlers.CheckoutHandler
	OrderHandler    *handlers.OrderHandler
	CustomerHandler *handlers.CustomerHandler
	ReportHandler   *handlers.ReportHandler
	SettingsHandler *handlers.SettingsHandler
	RoleHandler     *handlers.RoleHandler
}

// NewRouterConfig wires the role gate and every handler around one store and
// one checkout process. now may be nil.
func NewRouterConfig(s *store.Store, p *checkout.Process, now func() time.Time, log *zap.Logger) *RouterConfig {
	if log == nil {
		log = zap.NewNop()
	}
	authGate := NewAuthGate(s)

	return &RouterConfig{
		AuthGate:        authGate,
		CatalogHandler:  handlers.NewCatalogHandler(s, authGate, log),
		CartHandler:     handlers.NewCartHandler(s, log),
		CheckoutHandler: handlers.NewCheckoutHandler(p, s, log.Named("checkout")),
		OrderHandler:    handlers.NewOrderHandler(s, log),
		CustomerHandler: handlers.NewCustomerHandler(s, log),
		ReportHandler:   handlers.NewReportHandler(s, now, log),
		SettingsHandler: handlers.NewSettingsHandler(s, log),
		RoleHandler:     handlers.NewRoleHandler(s, authGate, log),
	}
}
