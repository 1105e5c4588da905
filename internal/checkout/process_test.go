package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shubham-kumar0001/smarttax-pos/internal/cart"
	"github.com/Shubham-kumar0001/smarttax-pos/internal/models"
	"github.com/Shubham-kumar0001/smarttax-pos/internal/sched"
	"github.com/Shubham-kumar0001/smarttax-pos/internal/services"
)

const paymentDelay = 1500 * time.Millisecond

type fakeRegister struct {
	mu     sync.Mutex
	cart   cart.Cart
	rate   float64
	orders []models.Order
	err    error
}

func (r *fakeRegister) Cart() cart.Cart {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cart
}

func (r *fakeRegister) TaxRate() float64 { return r.rate }

func (r *fakeRegister) CompleteCheckout(_ context.Context, customerID *string, method models.PaymentMethod) (models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return models.Order{}, r.err
	}
	if r.cart.IsEmpty() {
		return models.Order{}, cart.ErrEmpty
	}
	items := models.SnapshotItems(r.cart.Items())
	t := services.ComputeOrderTotals(items, r.rate)
	o := models.Order{
		ID:         fmt.Sprintf("order-%d", len(r.orders)+1),
		Date:       time.Now(),
		CustomerID: customerID,
		Items:      items,
		Subtotal:   t.Subtotal,
		Tax:        t.Tax,
		Total:      t.Total,
		Method:     method,
	}
	r.orders = append([]models.Order{o}, r.orders...)
	r.cart = r.cart.Clear()
	return o, nil
}

func (r *fakeRegister) orderCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.orders)
}

type recordingExporter struct {
	mu     sync.Mutex
	orders []models.Order
}

func (e *recordingExporter) ExportReceipt(_ context.Context, o models.Order) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.orders = append(e.orders, o)
	return nil
}

// instantGateway resolves inside Submit.
type instantGateway struct{ err error }

func (g instantGateway) Submit(_ Payment, done func(error)) func() {
	done(g.err)
	return func() {}
}

type fixture struct {
	clock    *sched.Fake
	register *fakeRegister
	exporter *recordingExporter
	process  *Process
}

func newFixture(t *testing.T, gw Gateway) *fixture {
	t.Helper()
	clock := sched.NewFake()
	reg := &fakeRegister{
		rate: 0.08,
		cart: cart.New(
			models.CartItem{Product: models.Product{ID: "1", Name: "Widget", Price: 10}, Quantity: 2},
			models.CartItem{Product: models.Product{ID: "2", Name: "Kit", Price: 5}, Quantity: 1},
		),
	}
	if gw == nil {
		gw = SimulatedGateway{Scheduler: clock, Delay: paymentDelay}
	}
	exp := &recordingExporter{}
	p := New(Config{
		Register:      reg,
		Gateway:       gw,
		Exporter:      exp,
		Scheduler:     clock,
		QRDetectDelay: 3 * time.Second,
	})
	return &fixture{clock: clock, register: reg, exporter: exp, process: p}
}

func TestOpen_EmptyCart(t *testing.T) {
	f := newFixture(t, nil)
	f.register.cart = cart.Cart{}

	snap, err := f.process.Open()
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Equal(t, StateIdle, snap.State)
	assert.Equal(t, 0, f.register.orderCount())
}

func TestOpen_Twice(t *testing.T) {
	f := newFixture(t, nil)
	_, err := f.process.Open()
	require.NoError(t, err)
	_, err = f.process.Open()
	assert.ErrorIs(t, err, ErrAlreadyOpen)
}

func TestCommandsWhileIdle(t *testing.T) {
	f := newFixture(t, nil)
	cmds := map[string]func() (Snapshot, error){
		"cash":      f.process.SelectCash,
		"online":    f.process.SelectOnline,
		"back":      f.process.Back,
		"pay":       f.process.Pay,
		"submethod": func() (Snapshot, error) { return f.process.SelectSubmethod(models.PaymentGPay) },
		"customer":  func() (Snapshot, error) { return f.process.SelectCustomer("1") },
	}
	for name, cmd := range cmds {
		t.Run(name, func(t *testing.T) {
			_, err := cmd()
			assert.ErrorIs(t, err, ErrNotOpen)
		})
	}
}

func TestSnapshot_LiveTotals(t *testing.T) {
	f := newFixture(t, nil)
	snap, err := f.process.Open()
	require.NoError(t, err)
	assert.Equal(t, StateMethodSelection, snap.State)
	assert.Equal(t, "25.00", fmt.Sprintf("%.2f", snap.Subtotal))
	assert.Equal(t, "2.00", fmt.Sprintf("%.2f", snap.Tax))
	assert.Equal(t, "27.00", fmt.Sprintf("%.2f", snap.Total))
	assert.False(t, snap.Ready)
}

func TestCashFlow(t *testing.T) {
	f := newFixture(t, nil)
	before := f.register.Cart().Items()

	_, err := f.process.Open()
	require.NoError(t, err)
	snap, err := f.process.SelectCash()
	require.NoError(t, err)
	assert.True(t, snap.Ready)
	assert.Equal(t, "cash", snap.Method)

	snap, err = f.process.Pay()
	require.NoError(t, err)
	assert.Equal(t, StateAwaitingPayment, snap.State)

	f.clock.Advance(paymentDelay - time.Millisecond)
	assert.Equal(t, StateAwaitingPayment, f.process.Snapshot().State)
	assert.Equal(t, 0, f.register.orderCount())

	f.clock.Advance(time.Millisecond)
	snap = f.process.Snapshot()
	require.Equal(t, StateCompleted, snap.State)
	require.NotNil(t, snap.Order)
	assert.Equal(t, models.PaymentCash, snap.Order.Method)
	assert.Equal(t, "27.00", fmt.Sprintf("%.2f", snap.Order.Total))
	assert.Equal(t, snap.Order.Subtotal+snap.Order.Tax, snap.Order.Total)
	require.Len(t, snap.Order.Items, len(before))
	for i := range before {
		assert.Equal(t, before[i].ID, snap.Order.Items[i].ProductID)
		assert.Equal(t, before[i].Quantity, snap.Order.Items[i].Quantity)
	}

	assert.True(t, f.register.Cart().IsEmpty())
	assert.Equal(t, 1, f.register.orderCount())
	assert.Len(t, f.exporter.orders, 1)

	snap, err = f.process.Close()
	require.NoError(t, err)
	assert.Equal(t, StateIdle, snap.State)
	assert.Nil(t, snap.Order)

	snap, err = f.process.Close()
	require.NoError(t, err, "close is idempotent")
	assert.Equal(t, StateIdle, snap.State)
}

func TestPay_NotReady(t *testing.T) {
	f := newFixture(t, nil)
	_, _ = f.process.Open()

	_, err := f.process.Pay()
	assert.ErrorIs(t, err, ErrNotReady, "nothing selected")

	_, _ = f.process.SelectOnline()
	_, err = f.process.Pay()
	assert.ErrorIs(t, err, ErrNotReady, "online without channel")

	snap, err := f.process.SelectSubmethod(models.PaymentDebitCard)
	require.NoError(t, err)
	assert.True(t, snap.Ready)
	assert.Equal(t, "online", snap.Method)
	assert.Equal(t, "debit_card", snap.Submethod)
}

func TestOnlineFlow(t *testing.T) {
	f := newFixture(t, nil)
	_, _ = f.process.Open()
	_, _ = f.process.SelectOnline()
	_, _ = f.process.SelectSubmethod(models.PaymentPaytm)

	_, err := f.process.Pay()
	require.NoError(t, err)
	f.clock.Advance(paymentDelay)

	snap := f.process.Snapshot()
	require.Equal(t, StateCompleted, snap.State)
	assert.Equal(t, models.PaymentPaytm, snap.Order.Method)
}

func TestSelectSubmethod_Invalid(t *testing.T) {
	f := newFixture(t, nil)
	_, _ = f.process.Open()
	_, _ = f.process.SelectOnline()
	_, err := f.process.SelectSubmethod(models.PaymentCash)
	assert.ErrorIs(t, err, ErrInvalidSubmethod)
	_, err = f.process.SelectSubmethod("bitcoin")
	assert.ErrorIs(t, err, ErrInvalidSubmethod)
}

func TestSelectCash_FromOnlineListIsRefused(t *testing.T) {
	f := newFixture(t, nil)
	_, _ = f.process.Open()
	_, _ = f.process.SelectOnline()
	_, err := f.process.SelectCash()
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestBack(t *testing.T) {
	f := newFixture(t, nil)
	_, _ = f.process.Open()

	_, err := f.process.Back()
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, _ = f.process.SelectOnline()
	_, _ = f.process.SelectSubmethod(models.PaymentGPay)
	snap, err := f.process.Back()
	require.NoError(t, err)
	assert.Equal(t, StateMethodSelection, snap.State)
	assert.Empty(t, snap.Submethod)
	assert.False(t, snap.Ready)
}

func TestQRAutoPay(t *testing.T) {
	f := newFixture(t, nil)
	_, _ = f.process.Open()
	_, _ = f.process.SelectOnline()
	snap, err := f.process.SelectSubmethod(models.PaymentQRCode)
	require.NoError(t, err)
	assert.True(t, snap.Detecting)
	assert.False(t, snap.Ready)

	_, err = f.process.Pay()
	assert.ErrorIs(t, err, ErrNotReady, "pay is disabled during QR detection")

	f.clock.Advance(3*time.Second - time.Millisecond)
	assert.Equal(t, StateOnlineSubmethod, f.process.Snapshot().State)

	f.clock.Advance(time.Millisecond)
	assert.Equal(t, StateAwaitingPayment, f.process.Snapshot().State)

	f.clock.Advance(paymentDelay)
	snap = f.process.Snapshot()
	require.Equal(t, StateCompleted, snap.State)
	assert.Equal(t, models.PaymentQRCode, snap.Order.Method)
	assert.Equal(t, 1, f.register.orderCount())
}

func TestQRDetectionCancelled(t *testing.T) {
	tests := []struct {
		name   string
		cancel func(p *Process) error
	}{
		{"other submethod", func(p *Process) error {
			_, err := p.SelectSubmethod(models.PaymentGPay)
			return err
		}},
		{"back", func(p *Process) error {
			_, err := p.Back()
			return err
		}},
		{"close", func(p *Process) error {
			_, err := p.Close()
			return err
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, nil)
			_, _ = f.process.Open()
			_, _ = f.process.SelectOnline()
			_, _ = f.process.SelectSubmethod(models.PaymentQRCode)
			require.NoError(t, tt.cancel(f.process))

			f.clock.Advance(10 * time.Second)
			assert.NotEqual(t, StateAwaitingPayment, f.process.Snapshot().State)
			assert.NotEqual(t, StateCompleted, f.process.Snapshot().State)
			assert.Equal(t, 0, f.register.orderCount())
			assert.False(t, f.process.Snapshot().Detecting)
		})
	}
}

// stopIgnoringScheduler hands out timers whose Stop does nothing, so only the
// generation check can discard a superseded callback.
type stopIgnoringScheduler struct{ *sched.Fake }

type ignoredStop struct{}

func (ignoredStop) Stop() bool { return false }

func (s stopIgnoringScheduler) AfterFunc(d time.Duration, f func()) sched.Timer {
	s.Fake.AfterFunc(d, f)
	return ignoredStop{}
}

func TestStaleQRTimerIgnored(t *testing.T) {
	clock := sched.NewFake()
	reg := &fakeRegister{rate: 0.08, cart: cart.New(models.CartItem{Product: models.Product{ID: "1", Price: 10}, Quantity: 1})}
	p := New(Config{
		Register:      reg,
		Gateway:       SimulatedGateway{Scheduler: clock, Delay: paymentDelay},
		Scheduler:     stopIgnoringScheduler{clock},
		QRDetectDelay: 3 * time.Second,
	})

	_, _ = p.Open()
	_, _ = p.SelectOnline()
	_, _ = p.SelectSubmethod(models.PaymentQRCode)
	_, _ = p.Close()

	_, _ = p.Open()
	_, _ = p.SelectOnline()
	clock.Advance(5 * time.Second)

	assert.Equal(t, StateOnlineSubmethod, p.Snapshot().State)
	assert.Equal(t, 0, reg.orderCount())
}

func TestAwaiting_PayIsNoopAndCloseBusy(t *testing.T) {
	f := newFixture(t, nil)
	_, _ = f.process.Open()
	_, _ = f.process.SelectCash()
	_, _ = f.process.Pay()

	snap, err := f.process.Pay()
	require.NoError(t, err)
	assert.Equal(t, StateAwaitingPayment, snap.State)

	_, err = f.process.Close()
	assert.ErrorIs(t, err, ErrBusy)
	_, err = f.process.SelectCustomer("2")
	assert.ErrorIs(t, err, ErrBusy)

	f.clock.Advance(paymentDelay)
	assert.Equal(t, 1, f.register.orderCount(), "a second pay never creates a second order")
}

func TestCompleted_RejectsSelections(t *testing.T) {
	f := newFixture(t, instantGateway{})
	_, _ = f.process.Open()
	_, _ = f.process.SelectCash()
	snap, err := f.process.Pay()
	require.NoError(t, err)
	assert.Equal(t, StateAwaitingPayment, snap.State, "snapshot is taken before submission")
	assert.Equal(t, StateCompleted, f.process.Snapshot().State)

	_, err = f.process.Pay()
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = f.process.SelectCash()
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = f.process.Open()
	assert.ErrorIs(t, err, ErrAlreadyOpen)
}

func TestCustomerAttached(t *testing.T) {
	f := newFixture(t, instantGateway{})
	_, _ = f.process.Open()
	snap, err := f.process.SelectCustomer("3")
	require.NoError(t, err)
	require.NotNil(t, snap.CustomerID)
	assert.Equal(t, "3", *snap.CustomerID)

	_, _ = f.process.SelectCash()
	_, _ = f.process.Pay()

	order := f.process.Snapshot().Order
	require.NotNil(t, order)
	require.NotNil(t, order.CustomerID)
	assert.Equal(t, "3", *order.CustomerID)
}

func TestCustomerClearedByWalkIn(t *testing.T) {
	f := newFixture(t, instantGateway{})
	_, _ = f.process.Open()
	_, _ = f.process.SelectCustomer("3")
	snap, err := f.process.SelectCustomer("")
	require.NoError(t, err)
	assert.Nil(t, snap.CustomerID)
}

func TestGatewayFailure(t *testing.T) {
	declined := errors.New("declined")

	t.Run("online returns to channel list", func(t *testing.T) {
		f := newFixture(t, instantGateway{err: declined})
		_, _ = f.process.Open()
		_, _ = f.process.SelectOnline()
		_, _ = f.process.SelectSubmethod(models.PaymentCreditCard)
		_, err := f.process.Pay()
		require.NoError(t, err)

		snap := f.process.Snapshot()
		assert.Equal(t, StateOnlineSubmethod, snap.State)
		assert.Equal(t, "credit_card", snap.Submethod)
		assert.Contains(t, snap.Error, "declined")
		assert.Equal(t, 0, f.register.orderCount())
		assert.False(t, f.register.Cart().IsEmpty())
	})

	t.Run("cash returns to method selection", func(t *testing.T) {
		f := newFixture(t, instantGateway{err: declined})
		_, _ = f.process.Open()
		_, _ = f.process.SelectCash()
		_, _ = f.process.Pay()

		snap := f.process.Snapshot()
		assert.Equal(t, StateMethodSelection, snap.State)
		assert.True(t, snap.Ready)
		assert.NotEmpty(t, snap.Error)
	})

	t.Run("qr selection is cleared", func(t *testing.T) {
		f := newFixture(t, instantGateway{err: declined})
		_, _ = f.process.Open()
		_, _ = f.process.SelectOnline()
		_, _ = f.process.SelectSubmethod(models.PaymentQRCode)
		f.clock.Advance(3 * time.Second)

		snap := f.process.Snapshot()
		assert.Equal(t, StateOnlineSubmethod, snap.State)
		assert.Empty(t, snap.Submethod)
		assert.False(t, snap.Detecting)
		f.clock.Advance(time.Minute)
		assert.Equal(t, 0, f.register.orderCount(), "no automatic retry")
	})
}

func TestFinalizeFailure(t *testing.T) {
	f := newFixture(t, nil)
	f.register.err = errors.New("disk full")
	_, _ = f.process.Open()
	_, _ = f.process.SelectCash()
	_, _ = f.process.Pay()
	f.clock.Advance(paymentDelay)

	snap := f.process.Snapshot()
	assert.Equal(t, StateMethodSelection, snap.State)
	assert.Contains(t, snap.Error, "disk full")
	assert.Empty(t, f.exporter.orders)

	f.register.err = nil
	_, err := f.process.Pay()
	require.NoError(t, err)
	f.clock.Advance(paymentDelay)
	assert.Equal(t, StateCompleted, f.process.Snapshot().State)
	assert.Empty(t, f.process.Snapshot().Error)
}

func TestShutdownCancelsPayment(t *testing.T) {
	f := newFixture(t, nil)
	_, _ = f.process.Open()
	_, _ = f.process.SelectCash()
	_, _ = f.process.Pay()

	f.process.Shutdown()
	f.clock.Advance(paymentDelay)

	assert.Equal(t, StateIdle, f.process.Snapshot().State)
	assert.Equal(t, 0, f.register.orderCount())
	assert.Equal(t, 0, f.clock.Pending())
}

func TestNew_DefaultGatewayWaitsForPaymentDelay(t *testing.T) {
	clock := sched.NewFake()
	reg := &fakeRegister{
		rate: 0.08,
		cart: cart.New(models.CartItem{Product: models.Product{ID: "1", Name: "Widget", Price: 10}, Quantity: 1}),
	}
	p := New(Config{Register: reg, Scheduler: clock})

	_, err := p.Open()
	require.NoError(t, err)
	_, err = p.SelectCash()
	require.NoError(t, err)
	_, err = p.Pay()
	require.NoError(t, err)

	clock.Advance(0)
	assert.Equal(t, StateAwaitingPayment, p.Snapshot().State)
	clock.Advance(DefaultPaymentDelay - time.Millisecond)
	assert.Equal(t, StateAwaitingPayment, p.Snapshot().State)
	assert.Equal(t, 0, reg.orderCount())

	clock.Advance(time.Millisecond)
	assert.Equal(t, StateCompleted, p.Snapshot().State)
	assert.Equal(t, 1, reg.orderCount())
}
