package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/Shubham-kumar0001/smarttax-pos/internal/httpx"
	"github.com/Shubham-kumar0001/smarttax-pos/internal/models"
	"github.com/Shubham-kumar0001/smarttax-pos/internal/reports"
	"github.com/Shubham-kumar0001/smarttax-pos/internal/store"
	"github.com/Shubham-kumar0001/smarttax-pos/internal/validation"
)

type CustomerHandler struct {
	store *store.Store
	log   *zap.Logger
}

func NewCustomerHandler(s *store.Store, log *zap.Logger) *CustomerHandler {
	return &CustomerHandler{store: s, log: logger(log)}
}

// customerView adds the avatar letter shown in the directory.
type customerView struct {
	models.Customer
	Initial string `json:"initial"`
}

func viewCustomer(c models.Customer) customerView {
	return customerView{Customer: c, Initial: c.Initial()}
}

func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	customers, err := h.store.Customers(r.Context())
	if err != nil {
		writeError(w, h.log, err, nil)
		return
	}
	views := make([]customerView, 0, len(customers))
	for _, c := range customers {
		views = append(views, viewCustomer(c))
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"customers": views})
}

func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in store.NewCustomer
	if err := httpx.DecodeJSON(r, &in); err != nil {
		writeError(w, h.log, err, nil)
		return
	}

	v := make(validation.Violations)
	validation.Required("name", in.Name, v)
	validation.MaxLen("name", in.Name, 255, v)
	validation.OptionalEmail("email", in.Email, v)
	validation.MaxLen("phone", in.Phone, 50, v)
	validation.MaxLen("address", in.Address, 500, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}

	c, err := h.store.AddCustomer(r.Context(), in)
	if err != nil {
		writeError(w, h.log, err, nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, viewCustomer(c))
}

func (h *CustomerHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.store.Customer(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, h.log, err, nil)
		return
	}
	httpx.JSON(w, http.StatusOK, viewCustomer(c))
}

// History returns the customer's orders newest first with the total spent.
func (h *CustomerHandler) History(w http.ResponseWriter, r *http.Request) {
	c, err := h.store.Customer(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, h.log, err, nil)
		return
	}
	orders, err := h.store.Orders(r.Context())
	if err != nil {
		writeError(w, h.log, err, nil)
		return
	}
	httpx.JSON(w, http.StatusOK, reports.CustomerHistory(c, orders))
}
