package checkout

import "github.com/Shubham-kumar0001/smarttax-pos/internal/models"

// Selection is the payment choice of an open checkout. It is one of
// Unselected, Cash or Online.
type Selection interface {
	// method returns the concrete payment method, false while incomplete.
	method() (models.PaymentMethod, bool)
}

// Unselected means no payment method has been picked yet.
type Unselected struct{}

// Cash pays at the till.
type Cash struct{}

// Online pays through one of the online channels. Submethod is empty until
// the operator picks one.
type Online struct {
	Submethod models.PaymentMethod
}

func (Unselected) method() (models.PaymentMethod, bool) { return "", false }
func (Cash) method() (models.PaymentMethod, bool)       { return models.PaymentCash, true }

func (o Online) method() (models.PaymentMethod, bool) {
	if o.Submethod == "" {
		return "", false
	}
	return o.Submethod, true
}

// ready reports whether the selection can be paid.
func ready(sel Selection) bool {
	_, ok := sel.method()
	return ok
}

func describe(sel Selection) (method, submethod string) {
	switch s := sel.(type) {
	case Cash:
		return "cash", ""
	case Online:
		return "online", string(s.Submethod)
	default:
		return "", ""
	}
}
