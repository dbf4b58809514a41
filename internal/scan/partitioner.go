package scan

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/zhangyunhao116/skipmap"
)

// DefaultDrainPollInterval is how often a running scan checks whether
// all of its sub-queries have settled.
const DefaultDrainPollInterval = 20 * time.Millisecond

// Partitioner enumerates an ordered keyed table by recursively
// bisecting any sub-range whose query comes back truncated, until
// every page is complete.
type Partitioner struct {
	fetch Fetch
	poll  time.Duration
	log   zerolog.Logger
}

// NewPartitioner creates a Partitioner over fetch. poll is the drain
// check interval; zero selects DefaultDrainPollInterval.
func NewPartitioner(fetch Fetch, poll time.Duration, lg zerolog.Logger) *Partitioner {
	if poll <= 0 {
		poll = DefaultDrainPollInterval
	}
	return &Partitioner{fetch: fetch, poll: poll, log: lg}
}

// ScanAll returns every row inside r, each exactly once. Hints are
// ascending key boundaries that pre-partition the range, so a known
// key distribution does not have to be rediscovered one bisection at a
// time; they change the query pattern, never the result. Result order
// is unspecified. The first sub-query error aborts the whole scan with
// no partial result.
func (p *Partitioner) ScanAll(ctx context.Context, r Range, hints []uint64) ([]Row, error) {
	lo, hi, ok := r.bounds()
	if !ok {
		return nil, nil
	}

	st := &scanState{
		p:   p,
		ctx: ctx,
		inflight: skipmap.NewFunc[uint64, Range](func(a, b uint64) bool {
			return a < b
		}),
	}

	if len(hints) == 0 {
		st.spawn(lo, hi)
	} else {
		prev := lo
		for _, h := range hints {
			if h <= prev || h > hi {
				continue // boundary outside the remaining range
			}
			st.spawn(prev, h-1)
			prev = h
		}
		st.spawn(prev, hi)
	}

	// Sub-query counts grow while the scan runs, so completion is a
	// polled drain of the in-flight set rather than a join.
	ticker := time.NewTicker(p.poll)
	defer ticker.Stop()
	for range ticker.C {
		if err := st.err(); err != nil {
			return nil, err
		}
		if st.inflight.Len() == 0 {
			break
		}
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	return st.rows, nil
}

// scanState is owned by a single ScanAll call; nothing outlives it.
type scanState struct {
	p   *Partitioner
	ctx context.Context

	inflight *skipmap.FuncMap[uint64, Range]
	nextID   atomic.Uint64

	mu      sync.Mutex
	rows    []Row
	failure error
}

// spawn registers a sub-range in the in-flight set before its goroutine
// starts, so the set can never look drained while work is pending.
func (s *scanState) spawn(lo, hi uint64) {
	if lo > hi {
		return
	}
	id := s.nextID.Add(1)
	s.inflight.Store(id, Range{Lower: lo, Upper: hi})
	go s.run(id, lo, hi)
}

func (s *scanState) run(id, lo, hi uint64) {
	slice, err := s.p.fetch(s.ctx, lo, hi)
	if err != nil {
		s.fail(err)
		s.inflight.Delete(id)
		return
	}
	if !slice.More {
		s.collect(slice.Rows)
		s.inflight.Delete(id)
		return
	}

	// Truncated: the returned rows are discarded and both halves
	// re-queried. [lo, mid-1] and [mid, hi] tile the range exactly.
	mid := lo + (hi-lo)/2
	if mid == lo {
		mid++ // two-key range, force both halves to shrink
	}
	s.p.log.Debug().Uint64("lower", lo).Uint64("upper", hi).Uint64("mid", mid).
		Msg("bisecting truncated range")
	s.spawn(lo, mid-1)
	s.spawn(mid, hi)
	s.inflight.Delete(id)
}

func (s *scanState) collect(rows []Row) {
	s.mu.Lock()
	s.rows = append(s.rows, rows...)
	s.mu.Unlock()
}

func (s *scanState) fail(err error) {
	s.mu.Lock()
	if s.failure == nil {
		s.failure = err
	}
	s.mu.Unlock()
}

func (s *scanState) err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failure
}
