package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/Shubham-kumar0001/smarttax-pos/internal/checkout"
	"github.com/Shubham-kumar0001/smarttax-pos/internal/httpx"
	"github.com/Shubham-kumar0001/smarttax-pos/internal/models"
	"github.com/Shubham-kumar0001/smarttax-pos/internal/store"
	"github.com/Shubham-kumar0001/smarttax-pos/internal/validation"
)

type CheckoutHandler struct {
	process *checkout.Process
	store   *store.Store
	log     *zap.Logger
}

func NewCheckoutHandler(p *checkout.Process, s *store.Store, log *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{process: p, store: s, log: logger(log)}
}

// respond writes the snapshot, or the error with the snapshot as details.
func (h *CheckoutHandler) respond(w http.ResponseWriter, snap checkout.Snapshot, err error) {
	if err != nil {
		writeError(w, h.log, err, map[string]any{"message": err.Error(), "checkout": snap})
		return
	}
	httpx.JSON(w, http.StatusOK, snap)
}

func (h *CheckoutHandler) Get(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.process.Snapshot())
}

func (h *CheckoutHandler) Open(w http.ResponseWriter, r *http.Request) {
	snap, err := h.process.Open()
	h.respond(w, snap, err)
}

// SelectCustomer takes {"customer_id": "..."}; an empty id clears the customer.
func (h *CheckoutHandler) SelectCustomer(w http.ResponseWriter, r *http.Request) {
	var body struct {
		CustomerID string `json:"customer_id"`
	}
	if err := httpx.DecodeJSON(r, &body); err != nil {
		writeError(w, h.log, err, nil)
		return
	}
	if body.CustomerID != "" {
		if _, err := h.store.Customer(r.Context(), body.CustomerID); err != nil {
			writeError(w, h.log, err, nil)
			return
		}
	}
	snap, err := h.process.SelectCustomer(body.CustomerID)
	h.respond(w, snap, err)
}

// SelectMethod takes {"method": "cash"|"online"}.
func (h *CheckoutHandler) SelectMethod(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Method string `json:"method"`
	}
	if err := httpx.DecodeJSON(r, &body); err != nil {
		writeError(w, h.log, err, nil)
		return
	}
	var (
		snap checkout.Snapshot
		err  error
	)
	switch body.Method {
	case "cash":
		snap, err = h.process.SelectCash()
	case "online":
		snap, err = h.process.SelectOnline()
	default:
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", validation.Violations{"method": "must_be_cash_or_online"})
		return
	}
	h.respond(w, snap, err)
}

// SelectSubmethod takes {"submethod": "gpay"} and friends.
func (h *CheckoutHandler) SelectSubmethod(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Submethod models.PaymentMethod `json:"submethod"`
	}
	if err := httpx.DecodeJSON(r, &body); err != nil {
		writeError(w, h.log, err, nil)
		return
	}
	snap, err := h.process.SelectSubmethod(body.Submethod)
	h.respond(w, snap, err)
}

func (h *CheckoutHandler) Back(w http.ResponseWriter, r *http.Request) {
	snap, err := h.process.Back()
	h.respond(w, snap, err)
}

// Pay answers 202 since the payment completes asynchronously; poll GET /checkout.
func (h *CheckoutHandler) Pay(w http.ResponseWriter, r *http.Request) {
	snap, err := h.process.Pay()
	if err != nil {
		h.respond(w, snap, err)
		return
	}
	httpx.JSON(w, http.StatusAccepted, snap)
}

func (h *CheckoutHandler) Close(w http.ResponseWriter, r *http.Request) {
	snap, err := h.process.Close()
	h.respond(w, snap, err)
}

// Methods lists the payment options for the checkout screen.
func (h *CheckoutHandler) Methods(w http.ResponseWriter, r *http.Request) {
	type option struct {
		ID    models.PaymentMethod `json:"id"`
		Label string               `json:"label"`
	}
	online := make([]option, 0, len(models.OnlineMethods))
	for _, m := range models.OnlineMethods {
		online = append(online, option{ID: m, Label: m.Label()})
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"methods": []option{
			{ID: models.PaymentCash, Label: models.PaymentCash.Label()},
			{ID: "online", Label: "Online Payment"},
		},
		"online": online,
	})
}
