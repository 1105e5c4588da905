package checkout

import (
	"time"

	"github.com/Shubham-kumar0001/smarttax-pos/internal/models"
	"github.com/Shubham-kumar0001/smarttax-pos/internal/sched"
)

// Payment is what the gateway is asked to collect.
type Payment struct {
	Method models.PaymentMethod
	Amount float64
}

// Gateway collects a payment asynchronously. done is called exactly once
// unless the returned cancel func runs first.
type Gateway interface {
	Submit(p Payment, done func(error)) (cancel func())
}

// SimulatedGateway approves every payment after a fixed delay.
type SimulatedGateway struct {
	Scheduler sched.Scheduler
	Delay     time.Duration
}

func (g SimulatedGateway) Submit(_ Payment, done func(error)) func() {
	t := g.Scheduler.AfterFunc(g.Delay, func() { done(nil) })
	return func() { t.Stop() }
}
