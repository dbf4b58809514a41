package history

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/hsharif269/eosplayer/pkg/rpc"
)

const (
	DefaultPageSize    = 100
	DefaultConcurrency = 4
)

// Dispatcher drives a Scanner over the whole action log in
// fixed-concurrency batches of consecutive windows.
type Dispatcher struct {
	scanner *Scanner
	log     zerolog.Logger
}

func NewDispatcher(s *Scanner, lg zerolog.Logger) *Dispatcher {
	return &Dispatcher{scanner: s, log: lg}
}

// ScanAll walks the log from startPos in pages of pageSize rows,
// keeping concurrency windows in flight per batch. onPage receives
// each page in strictly ascending position order; returning false from
// it stops the scan early. ScanAll returns true once the end of the
// log was delivered, false when onPage stopped it.
//
// Out-of-order completions past the logical end are discarded: the
// first short page in a batch is the true end of the log, and no page
// after it is delivered even when the remote returned data for it.
func (d *Dispatcher) ScanAll(ctx context.Context, startPos, pageSize, concurrency int64, onPage func([]rpc.Action) bool) (bool, error) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	pos := startPos
	for {
		pages := make([][]rpc.Action, concurrency)
		errs := make([]error, concurrency)

		var wg sync.WaitGroup
		for i := int64(0); i < concurrency; i++ {
			wg.Add(1)
			go func(i int64) {
				defer wg.Done()
				start := pos + i*pageSize
				pages[i], errs[i] = d.scanner.ScanWindow(ctx, start, pageSize-1)
			}(i)
		}
		wg.Wait()

		for _, err := range errs {
			if err != nil {
				return false, err
			}
		}

		for i := int64(0); i < concurrency; i++ {
			page := pages[i]
			if len(page) == 0 {
				return true, nil
			}
			if !onPage(page) {
				d.log.Debug().Int64("pos", pos+i*pageSize).Msg("page consumer stopped the scan")
				return false, nil
			}
			if int64(len(page)) < pageSize {
				return true, nil
			}
		}
		pos += concurrency * pageSize
	}
}
