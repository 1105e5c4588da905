package handlers

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/Shubham-kumar0001/smarttax-pos/internal/httpx"
	"github.com/Shubham-kumar0001/smarttax-pos/internal/models"
	"github.com/Shubham-kumar0001/smarttax-pos/internal/reports"
	"github.com/Shubham-kumar0001/smarttax-pos/internal/store"
	"github.com/Shubham-kumar0001/smarttax-pos/internal/validation"
)

// dateParam is the layout of ?start= and ?end=.
const dateParam = "2006-01-02"

type ReportHandler struct {
	store *store.Store
	now   func() time.Time
	log   *zap.Logger
}

func NewReportHandler(s *store.Store, now func() time.Time, log *zap.Logger) *ReportHandler {
	if now == nil {
		now = time.Now
	}
	return &ReportHandler{store: s, now: now, log: logger(log)}
}

func (h *ReportHandler) Summary(w http.ResponseWriter, r *http.Request) {
	orders, err := h.store.Orders(r.Context())
	if err != nil {
		writeError(w, h.log, err, nil)
		return
	}
	products := h.store.Products()
	httpx.JSON(w, http.StatusOK, map[string]any{
		"summary":      reports.SalesSummary(orders, products, h.now()),
		"out_of_stock": reports.OutOfStock(products),
	})
}

// Orders lists the ledger filtered by optional ?start=YYYY-MM-DD&end=YYYY-MM-DD.
func (h *ReportHandler) Orders(w http.ResponseWriter, r *http.Request) {
	orders, ok := h.filtered(w, r)
	if !ok {
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"orders": orders, "total": len(orders)})
}

// OrdersCSV downloads the filtered ledger as a sales report.
func (h *ReportHandler) OrdersCSV(w http.ResponseWriter, r *http.Request) {
	orders, ok := h.filtered(w, r)
	if !ok {
		return
	}
	body, err := reports.SalesReportCSV(orders)
	if err != nil {
		writeError(w, h.log, err, "No orders found to download.")
		return
	}
	httpx.Attachment(w, "text/csv; charset=utf-8", reports.SalesReportFilename(h.now()), []byte(body))
}

func (h *ReportHandler) filtered(w http.ResponseWriter, r *http.Request) ([]models.Order, bool) {
	v := make(validation.Violations)
	start := parseDate("start", r.URL.Query().Get("start"), v)
	end := parseDate("end", r.URL.Query().Get("end"), v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return nil, false
	}
	orders, err := h.store.Orders(r.Context())
	if err != nil {
		writeError(w, h.log, err, nil)
		return nil, false
	}
	return reports.FilterByDate(orders, start, end), true
}

func parseDate(field, value string, v validation.Violations) *time.Time {
	if value == "" {
		return nil
	}
	t, err := time.ParseInLocation(dateParam, value, time.Local)
	if err != nil {
		v[field] = "invalid_date"
		return nil
	}
	return &t
}
