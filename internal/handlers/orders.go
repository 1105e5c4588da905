package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/Shubham-kumar0001/smarttax-pos/internal/httpx"
	"github.com/Shubham-kumar0001/smarttax-pos/internal/receipt"
	"github.com/Shubham-kumar0001/smarttax-pos/internal/store"
)

type OrderHandler struct {
	store *store.Store
	log   *zap.Logger
}

func NewOrderHandler(s *store.Store, log *zap.Logger) *OrderHandler {
	return &OrderHandler{store: s, log: logger(log)}
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	o, err := h.store.Order(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, h.log, err, nil)
		return
	}
	httpx.JSON(w, http.StatusOK, o)
}

// Receipt renders the printable slip for an order.
func (h *OrderHandler) Receipt(w http.ResponseWriter, r *http.Request) {
	o, err := h.store.Order(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, h.log, err, nil)
		return
	}
	shop, err := h.store.Shop(r.Context())
	if err != nil {
		writeError(w, h.log, err, nil)
		return
	}
	httpx.Text(w, http.StatusOK, receipt.Render(o, shop))
}

// ReceiptCSV downloads the receipt as receipt_<id>.csv.
func (h *OrderHandler) ReceiptCSV(w http.ResponseWriter, r *http.Request) {
	o, err := h.store.Order(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, h.log, err, nil)
		return
	}
	httpx.Attachment(w, "text/csv; charset=utf-8", receipt.Filename(o), []byte(receipt.CSV(o)))
}
