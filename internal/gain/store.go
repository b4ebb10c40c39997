package gain

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
)

// Outcome says what Store.Apply did with a result.
type Outcome int

const (
	// Applied replaced the displayed response.
	Applied Outcome = iota
	// Failed kept the previous response and marked it stale.
	Failed
	// Stale was discarded because a newer result had already been applied.
	Stale
	// Superseded was a cancelled query, dropped silently.
	Superseded
)

func (o Outcome) String() string {
	switch o {
	case Applied:
		return "applied"
	case Failed:
		return "failed"
	case Stale:
		return "stale"
	case Superseded:
		return "superseded"
	}
	return "unknown"
}

// Store keeps the latest gain response for display. Results are applied in
// sequence order: anything not newer than the last applied result is dropped.
type Store struct {
	latest  Response
	request Request
	has     bool
	lastSeq uint64
	err     error

	log     zerolog.Logger
	metrics *Metrics
}

// NewStore creates an empty store. metrics may be nil.
func NewStore(log zerolog.Logger, metrics *Metrics) *Store {
	return &Store{
		log:     log.With().Str("component", "gain-store").Logger(),
		metrics: metrics,
	}
}

// Apply folds one dispatched result into the store.
func (s *Store) Apply(r Result) Outcome {
	if r.Err != nil && errors.Is(r.Err, context.Canceled) {
		s.log.Trace().Uint64("seq", r.Seq).Msg("Cancelled gain query dropped")
		return Superseded
	}

	if r.Seq <= s.lastSeq {
		s.metrics.staleResponse()
		s.log.Debug().
			Uint64("seq", r.Seq).
			Uint64("applied", s.lastSeq).
			Err(ErrStaleResponse).
			Msg("Discarding out-of-order gain response")
		return Stale
	}
	s.lastSeq = r.Seq

	if r.Err != nil {
		s.err = r.Err
		s.metrics.failure()
		s.log.Warn().Uint64("seq", r.Seq).Err(r.Err).Msg("Gain query failed, keeping previous response")
		return Failed
	}

	s.latest = r.Response
	s.request = r.Request
	s.has = true
	s.err = nil
	return Applied
}

// Latest returns the displayed response and whether one has been received.
func (s *Store) Latest() (Response, bool) { return s.latest, s.has }

// Request returns the query that produced the displayed response.
func (s *Store) Request() Request { return s.request }

// Failed reports whether the most recent result was a failure.
func (s *Store) Failed() bool { return s.err != nil }

// Err is the most recent failure, or nil.
func (s *Store) Err() error { return s.err }

// LastSeq is the sequence number of the last result that was not discarded.
func (s *Store) LastSeq() uint64 { return s.lastSeq }
