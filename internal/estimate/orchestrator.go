package estimate

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/bep/debounce"
)

// DefaultQuiet is how long the layout must sit unchanged before a pricing
// request is sent.
const DefaultQuiet = 500 * time.Millisecond

// Calculator is the pricing authority boundary; Client implements it.
type Calculator interface {
	Calculate(ctx context.Context, req Request) (*Response, error)
}

// Orchestrator debounces layout changes into pricing requests and holds the
// last good summary. A failed request never clears it; the error is carried
// alongside until the next success.
type Orchestrator struct {
	mu        sync.Mutex
	client    Calculator
	debounced func(func())
	timeout   time.Duration

	loading bool
	lastErr string
	summary *Summary
	seq     int

	onUpdate func(View)
}

// NewOrchestrator wraps a pricing client. quiet is the debounce window;
// DefaultQuiet matches the editor. onUpdate fires on every state change
// (loading, success, failure) and may be nil.
func NewOrchestrator(client Calculator, quiet time.Duration, onUpdate func(View)) *Orchestrator {
	if quiet <= 0 {
		quiet = DefaultQuiet
	}
	return &Orchestrator{
		client:    client,
		debounced: debounce.New(quiet),
		timeout:   30 * time.Second,
		onUpdate:  onUpdate,
	}
}

// Schedule queues req for pricing after the quiet period. A newer Schedule
// supersedes a pending one; only the latest layout is ever priced.
func (o *Orchestrator) Schedule(req Request) {
	o.debounced(func() {
		o.run(req)
	})
}

// Refresh re-submits the given request immediately, for the retry
// affordance next to the summary panel.
func (o *Orchestrator) Refresh(req Request) {
	o.run(req)
}

func (o *Orchestrator) run(req Request) {
	o.mu.Lock()
	o.seq++
	seq := o.seq
	o.loading = true
	o.mu.Unlock()
	o.notify()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), o.timeout)
		defer cancel()

		resp, err := o.client.Calculate(ctx, req)

		o.mu.Lock()
		if seq != o.seq {
			// A newer request is in flight; drop this result.
			o.mu.Unlock()
			return
		}
		o.loading = false
		if err != nil {
			log.Printf("estimate: pricing request failed: %v", err)
			o.lastErr = err.Error()
		} else {
			o.lastErr = ""
			o.summary = adapt(resp, req.SupportPeriod)
		}
		o.mu.Unlock()
		o.notify()
	}()
}

// Snapshot returns the current display state.
func (o *Orchestrator) Snapshot() View {
	o.mu.Lock()
	defer o.mu.Unlock()
	return View{Loading: o.loading, Error: o.lastErr, Summary: o.summary}
}

func (o *Orchestrator) notify() {
	if o.onUpdate == nil {
		return
	}
	o.onUpdate(o.Snapshot())
}
