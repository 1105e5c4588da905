package handlers

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/Shubham-kumar0001/smarttax-pos/internal/cart"
	"github.com/Shubham-kumar0001/smarttax-pos/internal/checkout"
	"github.com/Shubham-kumar0001/smarttax-pos/internal/gate"
	"github.com/Shubham-kumar0001/smarttax-pos/internal/httpx"
	"github.com/Shubham-kumar0001/smarttax-pos/internal/reports"
	"github.com/Shubham-kumar0001/smarttax-pos/internal/store"
)

// Authorizer answers permission questions for the request's role.
type Authorizer interface {
	Can(ctx context.Context, action gate.Action, resourceType string) bool
}

var errorCodes = []struct {
	err    error
	status int
	code   string
}{
	{store.ErrProductNotFound, http.StatusNotFound, "product_not_found"},
	{store.ErrCustomerNotFound, http.StatusNotFound, "customer_not_found"},
	{store.ErrOrderNotFound, http.StatusNotFound, "order_not_found"},
	{store.ErrInvalidMethod, http.StatusBadRequest, "invalid_payment_method"},
	{cart.ErrEmpty, http.StatusConflict, "cart_empty"},
	{checkout.ErrAlreadyOpen, http.StatusConflict, "checkout_already_open"},
	{checkout.ErrNotOpen, http.StatusConflict, "checkout_not_open"},
	{checkout.ErrNotReady, http.StatusConflict, "payment_not_ready"},
	{checkout.ErrBusy, http.StatusConflict, "payment_in_progress"},
	{checkout.ErrInvalidTransition, http.StatusConflict, "invalid_transition"},
	{checkout.ErrInvalidSubmethod, http.StatusBadRequest, "invalid_submethod"},
	{gate.ErrUnknownRole, http.StatusBadRequest, "unknown_role"},
	{gate.ErrForbidden, http.StatusForbidden, "forbidden"},
	{reports.ErrNoOrders, http.StatusConflict, "no_orders_to_export"},
	{httpx.ErrBadJSON, http.StatusBadRequest, "invalid_json"},
}

// writeError maps a domain error to its status and code. Unknown errors are
// logged and reported as 500.
func writeError(w http.ResponseWriter, log *zap.Logger, err error, details any) {
	for _, c := range errorCodes {
		if errors.Is(err, c.err) {
			if details == nil && c.status != http.StatusConflict {
				details = err.Error()
			}
			httpx.JSONError(w, c.status, c.code, details)
			return
		}
	}
	log.Error("request failed", zap.Error(err))
	httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
}

func logger(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
