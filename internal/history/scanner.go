// Package history walks an account's append-only action log, which the
// remote API exposes only through bounded, possibly short windows.
package history

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/hsharif269/eosplayer/internal/safemath"
	"github.com/hsharif269/eosplayer/pkg/rpc"
)

// Fetch returns the actions covering sequence numbers [pos, pos+offset],
// or the maximal contiguous window the backend has below that.
type Fetch func(ctx context.Context, pos, offset int64) ([]rpc.Action, error)

// DefaultRequestTimeout bounds a single window request before it is
// retried.
const DefaultRequestTimeout = 10 * time.Second

// Scanner reads one contiguous window of the action log at a time.
type Scanner struct {
	fetch   Fetch
	timeout time.Duration
	log     zerolog.Logger
}

// NewScanner creates a Scanner with the given per-request timeout;
// zero selects DefaultRequestTimeout.
func NewScanner(fetch Fetch, timeout time.Duration, lg zerolog.Logger) *Scanner {
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	return &Scanner{fetch: fetch, timeout: timeout, log: lg}
}

// ScanWindow returns the actions covering sequence numbers
// [startPos, startPos+count], in ascending order. Requests that time
// out or fail in transport are retried until they succeed; chain-side
// errors are returned. A page shorter than requested means the log
// ended inside the window, and the scan stops there rather than
// re-reading past the end.
func (s *Scanner) ScanWindow(ctx context.Context, startPos, count int64) ([]rpc.Action, error) {
	if startPos < 0 || count < 0 {
		return nil, fmt.Errorf("invalid window [%d, +%d]", startPos, count)
	}
	endPos, ok := safemath.AddInt64(startPos, count)
	if !ok {
		return nil, fmt.Errorf("window [%d, +%d] overflows the sequence space", startPos, count)
	}

	pos := startPos
	var out []rpc.Action
	for {
		expect := endPos - pos + 1

		cctx, cancel := context.WithTimeout(ctx, s.timeout)
		page, err := s.fetch(cctx, pos, endPos-pos)
		cancel()
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			if rpc.IsTimeout(err) {
				s.log.Debug().Int64("pos", pos).Int64("end", endPos).
					Msg("window request timed out, retrying")
				continue
			}
			if rpc.IsAPIError(err) {
				return nil, err
			}
			s.log.Warn().Err(err).Int64("pos", pos).Int64("end", endPos).
				Msg("window request failed, retrying")
			continue
		}

		if len(page) == 0 {
			// Nothing at or above pos: the log ends below this window.
			return out, nil
		}
		out = append(out, page...)

		last := page[len(page)-1].AccountActionSeq
		if last >= endPos {
			return out, nil
		}
		if int64(len(page)) < expect {
			// Short page: the backend returns maximal contiguous
			// windows, so fewer rows than requested is end-of-log.
			return out, nil
		}
		// Full page that stopped short of endPos: the sequence has
		// gaps; continue from just past the last one seen.
		pos = last + 1
	}
}
