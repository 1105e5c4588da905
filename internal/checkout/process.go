// Package checkout drives a single sale from an open cart to a recorded order.
//
// The Process is a state machine:
//
//	idle -> method_selection -> (online_submethod_selection) -> awaiting_confirmation -> completed
//
// and Close returns it to idle. Timers (QR detection, simulated payment) carry
// the generation of the session that armed them; callbacks from a superseded
// session are ignored.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Shubham-kumar0001/smarttax-pos/internal/cart"
	"github.com/Shubham-kumar0001/smarttax-pos/internal/models"
	"github.com/Shubham-kumar0001/smarttax-pos/internal/sched"
	"github.com/Shubham-kumar0001/smarttax-pos/internal/services"
)

// State is the phase of the checkout.
type State string

const (
	StateIdle            State = "idle"
	StateMethodSelection State = "method_selection"
	StateOnlineSubmethod State = "online_submethod_selection"
	StateAwaitingPayment State = "awaiting_confirmation"
	StateCompleted       State = "completed"
)

const (
	// DefaultQRDetectDelay is how long a QR code "scan" takes.
	DefaultQRDetectDelay = 3 * time.Second
	// DefaultPaymentDelay is the processing time of the fallback gateway.
	DefaultPaymentDelay = 1500 * time.Millisecond
)

var (
	ErrEmptyCart         = cart.ErrEmpty
	ErrAlreadyOpen       = errors.New("checkout already open")
	ErrNotOpen           = errors.New("checkout not open")
	ErrNotReady          = errors.New("payment method not ready")
	ErrBusy              = errors.New("payment in progress")
	ErrInvalidSubmethod  = errors.New("invalid online payment method")
	ErrInvalidTransition = errors.New("invalid checkout transition")
)

// Register is the side of the store the checkout reads from and writes to.
type Register interface {
	Cart() cart.Cart
	TaxRate() float64
	CompleteCheckout(ctx context.Context, customerID *string, method models.PaymentMethod) (models.Order, error)
}

// Exporter receives every completed order, typically to write its receipt.
type Exporter interface {
	ExportReceipt(ctx context.Context, order models.Order) error
}

// Config wires a Process. Exporter and Logger are optional; a nil Gateway
// approves payments after DefaultPaymentDelay.
type Config struct {
	Register      Register
	Gateway       Gateway
	Exporter      Exporter
	Scheduler     sched.Scheduler
	QRDetectDelay time.Duration
	Logger        *zap.Logger
}

// Process is the checkout session of the terminal. It is safe for concurrent use.
type Process struct {
	mu sync.Mutex

	register Register
	gateway  Gateway
	exporter Exporter
	sched    sched.Scheduler
	qrDelay  time.Duration
	log      *zap.Logger

	state      State
	sel        Selection
	customerID *string
	order      *models.Order
	lastErr    error

	gen       uint64
	qr        sched.Timer
	cancelPay func()
}

// New creates an idle checkout.
func New(cfg Config) *Process {
	p := &Process{
		register: cfg.Register,
		gateway:  cfg.Gateway,
		exporter: cfg.Exporter,
		sched:    cfg.Scheduler,
		qrDelay:  cfg.QRDetectDelay,
		log:      cfg.Logger,
		state:    StateIdle,
		sel:      Unselected{},
	}
	if p.sched == nil {
		p.sched = sched.Real{}
	}
	if p.qrDelay <= 0 {
		p.qrDelay = DefaultQRDetectDelay
	}
	if p.log == nil {
		p.log = zap.NewNop()
	}
	if p.gateway == nil {
		p.gateway = SimulatedGateway{Scheduler: p.sched, Delay: DefaultPaymentDelay}
	}
	return p
}

// Snapshot returns the current state.
func (p *Process) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshotLocked()
}

// Open starts a checkout for the current cart.
func (p *Process) Open() (Snapshot, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != StateIdle {
		return p.snapshotLocked(), ErrAlreadyOpen
	}
	if p.register.Cart().IsEmpty() {
		return p.snapshotLocked(), ErrEmptyCart
	}
	p.gen++
	p.state = StateMethodSelection
	p.sel = Unselected{}
	p.customerID = nil
	p.order = nil
	p.lastErr = nil
	p.log.Debug("checkout opened", zap.Uint64("generation", p.gen))
	return p.snapshotLocked(), nil
}

// SelectCustomer associates the sale with a customer; an empty id means a
// walk-in sale.
func (p *Process) SelectCustomer(id string) (Snapshot, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.guardLocked(StateMethodSelection, StateOnlineSubmethod); err != nil {
		return p.snapshotLocked(), err
	}
	if id == "" {
		p.customerID = nil
	} else {
		p.customerID = &id
	}
	return p.snapshotLocked(), nil
}

// SelectCash picks cash. The checkout becomes payable immediately.
func (p *Process) SelectCash() (Snapshot, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.guardLocked(StateMethodSelection); err != nil {
		return p.snapshotLocked(), err
	}
	p.sel = Cash{}
	p.lastErr = nil
	return p.snapshotLocked(), nil
}

// SelectOnline moves to the list of online channels.
func (p *Process) SelectOnline() (Snapshot, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.guardLocked(StateMethodSelection, StateOnlineSubmethod); err != nil {
		return p.snapshotLocked(), err
	}
	if p.state == StateMethodSelection {
		p.state = StateOnlineSubmethod
		p.sel = Online{}
	}
	p.lastErr = nil
	return p.snapshotLocked(), nil
}

// SelectSubmethod picks an online channel. Choosing the QR code starts a
// detection timer that pays automatically when it fires.
func (p *Process) SelectSubmethod(m models.PaymentMethod) (Snapshot, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.guardLocked(StateOnlineSubmethod); err != nil {
		return p.snapshotLocked(), err
	}
	if !m.IsOnline() {
		return p.snapshotLocked(), fmt.Errorf("%w: %q", ErrInvalidSubmethod, m)
	}
	p.stopQRLocked()
	p.sel = Online{Submethod: m}
	p.lastErr = nil

	if m == models.PaymentQRCode {
		gen := p.gen
		p.qr = p.sched.AfterFunc(p.qrDelay, func() { p.qrDetected(gen) })
		p.log.Debug("qr detection armed", zap.Duration("delay", p.qrDelay))
	}
	return p.snapshotLocked(), nil
}

// Back leaves the online channel list and clears the chosen channel.
func (p *Process) Back() (Snapshot, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.guardLocked(StateOnlineSubmethod); err != nil {
		return p.snapshotLocked(), err
	}
	p.stopQRLocked()
	p.state = StateMethodSelection
	p.sel = Unselected{}
	return p.snapshotLocked(), nil
}

// Pay submits the payment. It is a no-op while a payment is already in
// flight, and refused while the QR code is being detected.
func (p *Process) Pay() (Snapshot, error) {
	p.mu.Lock()
	submit, err := p.payLocked()
	snap := p.snapshotLocked()
	p.mu.Unlock()

	if submit != nil {
		submit()
	}
	return snap, err
}

func (p *Process) payLocked() (func(), error) {
	switch p.state {
	case StateIdle:
		return nil, ErrNotOpen
	case StateAwaitingPayment:
		return nil, nil
	case StateCompleted:
		return nil, fmt.Errorf("%w: %s", ErrInvalidTransition, p.state)
	}
	if o, ok := p.sel.(Online); ok && o.Submethod == models.PaymentQRCode {
		return nil, fmt.Errorf("%w: waiting for QR code scan", ErrNotReady)
	}
	if !ready(p.sel) {
		return nil, ErrNotReady
	}
	return p.beginPaymentLocked(), nil
}

// Close dismisses the checkout. Before completion it discards the selection;
// after completion it resets to idle. It is refused while paying.
func (p *Process) Close() (Snapshot, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch p.state {
	case StateIdle:
		return p.snapshotLocked(), nil
	case StateAwaitingPayment:
		return p.snapshotLocked(), ErrBusy
	}
	p.resetLocked()
	return p.snapshotLocked(), nil
}

// Shutdown cancels pending timers and any payment in flight and returns to idle.
func (p *Process) Shutdown() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancelPay != nil {
		p.cancelPay()
		p.cancelPay = nil
	}
	p.resetLocked()
}

func (p *Process) resetLocked() {
	p.stopQRLocked()
	p.gen++
	p.state = StateIdle
	p.sel = Unselected{}
	p.customerID = nil
	p.order = nil
	p.lastErr = nil
}

// guardLocked reports why a selection command cannot run in the current state.
func (p *Process) guardLocked(allowed ...State) error {
	switch p.state {
	case StateIdle:
		return ErrNotOpen
	case StateAwaitingPayment:
		return ErrBusy
	}
	for _, s := range allowed {
		if p.state == s {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrInvalidTransition, p.state)
}

func (p *Process) stopQRLocked() {
	if p.qr != nil {
		p.qr.Stop()
		p.qr = nil
	}
}

func (p *Process) qrDetected(gen uint64) {
	p.mu.Lock()
	if gen != p.gen || p.state != StateOnlineSubmethod {
		p.mu.Unlock()
		return
	}
	if o, ok := p.sel.(Online); !ok || o.Submethod != models.PaymentQRCode {
		p.mu.Unlock()
		return
	}
	p.qr = nil
	p.log.Debug("qr code detected")
	submit := p.beginPaymentLocked()
	p.mu.Unlock()

	submit()
}

// beginPaymentLocked moves to awaiting_confirmation and returns the call
// that hands the payment to the gateway. The call must run without p.mu held
// so a gateway may complete synchronously.
func (p *Process) beginPaymentLocked() func() {
	method, _ := p.sel.method()
	amount := p.register.Cart().Totals(p.register.TaxRate()).Total
	gen := p.gen

	p.stopQRLocked()
	p.state = StateAwaitingPayment
	p.lastErr = nil
	p.log.Info("payment submitted", zap.String("method", string(method)), zap.Float64("amount", amount))

	return func() {
		cancel := p.gateway.Submit(Payment{Method: method, Amount: amount}, func(err error) {
			p.paymentDone(gen, err)
		})
		p.mu.Lock()
		if gen == p.gen && p.state == StateAwaitingPayment {
			p.cancelPay = cancel
		}
		p.mu.Unlock()
	}
}

func (p *Process) paymentDone(gen uint64, err error) {
	ctx := context.Background()

	p.mu.Lock()
	if gen != p.gen || p.state != StateAwaitingPayment {
		p.mu.Unlock()
		return
	}
	p.cancelPay = nil
	if err != nil {
		p.failLocked(fmt.Errorf("payment: %w", err))
		p.mu.Unlock()
		return
	}

	method, _ := p.sel.method()
	order, err := p.register.CompleteCheckout(ctx, p.customerID, method)
	if err != nil {
		p.failLocked(err)
		p.mu.Unlock()
		return
	}
	p.state = StateCompleted
	p.order = &order
	p.mu.Unlock()

	p.log.Info("checkout completed", zap.String("order_id", order.ID), zap.String("method", string(order.Method)))
	if p.exporter != nil {
		if err := p.exporter.ExportReceipt(ctx, order); err != nil {
			p.log.Warn("receipt export failed", zap.String("order_id", order.ID), zap.Error(err))
		}
	}
}

// failLocked returns to the selection the payment started from. A QR
// selection is cleared so detection does not retry on its own.
func (p *Process) failLocked(err error) {
	p.lastErr = err
	switch s := p.sel.(type) {
	case Online:
		p.state = StateOnlineSubmethod
		if s.Submethod == models.PaymentQRCode {
			p.sel = Online{}
		}
	default:
		p.state = StateMethodSelection
	}
	p.log.Warn("checkout payment failed", zap.Error(err))
}

// Snapshot is a read-only view of the checkout.
type Snapshot struct {
	State      State         `json:"state"`
	Method     string        `json:"method,omitempty"`
	Submethod  string        `json:"submethod,omitempty"`
	CustomerID *string       `json:"customer_id,omitempty"`
	Subtotal   float64       `json:"subtotal"`
	Tax        float64       `json:"tax"`
	Total      float64       `json:"total"`
	Ready      bool          `json:"ready"`
	Detecting  bool          `json:"qr_detecting"`
	Order      *models.Order `json:"order,omitempty"`
	Error      string        `json:"error,omitempty"`
}

func (p *Process) snapshotLocked() Snapshot {
	s := Snapshot{State: p.state}
	s.Method, s.Submethod = describe(p.sel)
	if p.customerID != nil {
		id := *p.customerID
		s.CustomerID = &id
	}

	var t services.Totals
	if p.order != nil {
		o := *p.order
		s.Order = &o
		t = services.Totals{Subtotal: o.Subtotal, Tax: o.Tax, Total: o.Total}
	} else {
		t = p.register.Cart().Totals(p.register.TaxRate())
	}
	s.Subtotal, s.Tax, s.Total = t.Subtotal, t.Tax, t.Total

	if p.state == StateMethodSelection || p.state == StateOnlineSubmethod {
		if o, ok := p.sel.(Online); ok && o.Submethod == models.PaymentQRCode {
			s.Detecting = p.qr != nil
		} else {
			s.Ready = ready(p.sel)
		}
	}
	if p.lastErr != nil {
		s.Error = p.lastErr.Error()
	}
	return s
}
