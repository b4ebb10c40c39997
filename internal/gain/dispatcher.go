package gain

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/iburimskiy/surround-panner/internal/geometry"
)

// resultBuffer is how many finished queries may wait for the UI loop.
const resultBuffer = 64

// Result is the outcome of one dispatched query.
type Result struct {
	Seq      uint64
	Position geometry.Position
	Request  Request
	Response Response
	Err      error
}

// Dispatcher runs queries in the background so input handling never waits
// on the network. Each query gets a sequence number one higher than the last.
type Dispatcher struct {
	q                Querier
	log              zerolog.Logger
	metrics          *Metrics
	cancelSuperseded bool

	root      context.Context
	stop      context.CancelFunc
	results   chan Result
	wg        sync.WaitGroup
	closeOnce sync.Once

	mu         sync.Mutex
	seq        uint64
	closed     bool
	cancelPrev context.CancelFunc
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithCancelSuperseded cancels the in-flight query whenever a newer one is
// issued.
func WithCancelSuperseded(enabled bool) DispatcherOption {
	return func(d *Dispatcher) { d.cancelSuperseded = enabled }
}

// WithMetrics attaches query counters.
func WithMetrics(m *Metrics) DispatcherOption {
	return func(d *Dispatcher) { d.metrics = m }
}

// NewDispatcher creates a dispatcher sending queries through q.
func NewDispatcher(q Querier, log zerolog.Logger, opts ...DispatcherOption) *Dispatcher {
	root, stop := context.WithCancel(context.Background())
	d := &Dispatcher{
		q:       q,
		log:     log.With().Str("component", "gain-dispatcher").Logger(),
		root:    root,
		stop:    stop,
		results: make(chan Result, resultBuffer),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Results delivers finished queries in completion order, which need not be
// issue order. The channel is closed by Close.
func (d *Dispatcher) Results() <-chan Result {
	return d.results
}

// Issue starts a query for pos and returns its sequence number, or 0 once
// the dispatcher is closed.
func (d *Dispatcher) Issue(pos geometry.Position, canvas geometry.Canvas) uint64 {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return 0
	}
	d.seq++
	seq := d.seq
	if d.cancelSuperseded && d.cancelPrev != nil {
		d.cancelPrev()
	}
	ctx, cancel := context.WithCancel(d.root)
	d.cancelPrev = cancel
	d.wg.Add(1)
	d.mu.Unlock()

	d.metrics.request()
	res := Result{Seq: seq, Position: pos}
	req, err := NewRequest(pos, canvas)
	if err != nil {
		cancel()
		res.Err = err
		go func() {
			defer d.wg.Done()
			d.deliver(res)
		}()
		return seq
	}
	res.Request = req

	d.log.Debug().Uint64("seq", seq).Float64("x", req.X).Float64("y", req.Y).Msg("Gain query issued")

	go func() {
		defer d.wg.Done()
		defer cancel()
		res.Response, res.Err = d.q.Query(ctx, req)
		d.deliver(res)
	}()
	return seq
}

func (d *Dispatcher) deliver(res Result) {
	select {
	case d.results <- res:
	case <-d.root.Done():
	}
}

// Close cancels in-flight queries, waits for their goroutines and closes the
// results channel. It is safe to call more than once.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		d.mu.Lock()
		d.closed = true
		d.mu.Unlock()

		d.stop()
		d.wg.Wait()
		close(d.results)
		d.log.Debug().Uint64("issued", d.seq).Msg("Gain dispatcher closed")
	})
}
