package client

import (
	"context"

	"github.com/hsharif269/eosplayer/internal/history"
	"github.com/hsharif269/eosplayer/pkg/log"
	"github.com/hsharif269/eosplayer/pkg/rpc"
)

// Action re-exports one entry of an account's action log.
type Action = rpc.Action

type scanOpts struct {
	start       int64
	pageSize    int64
	concurrency int64
}

// ScanOption tunes ScanAllActions.
type ScanOption func(*scanOpts)

// WithStartPos begins the scan at the given account action sequence
// instead of zero.
func WithStartPos(pos int64) ScanOption {
	return func(o *scanOpts) { o.start = pos }
}

// WithPageSize overrides the configured page size.
func WithPageSize(n int64) ScanOption {
	return func(o *scanOpts) { o.pageSize = n }
}

// WithConcurrency overrides the configured number of windows in flight
// per batch.
func WithConcurrency(n int64) ScanOption {
	return func(o *scanOpts) { o.concurrency = n }
}

// ScanAllActions walks account's action log from the start position,
// delivering pages to onPage in strictly ascending sequence order and
// stopping at the end of the log. onPage returning false stops the
// scan early, in which case ScanAllActions returns false; true means
// the end of the log was reached. Window requests that time out are
// retried until they succeed.
func (c *Client) ScanAllActions(ctx context.Context, account string, onPage func([]Action) bool, opts ...ScanOption) (bool, error) {
	so := scanOpts{
		pageSize:    c.cfg.ActionPageSize,
		concurrency: c.cfg.ActionConcurrency,
	}
	for _, opt := range opts {
		opt(&so)
	}

	fetch := func(ctx context.Context, pos, offset int64) ([]rpc.Action, error) {
		res, err := c.rpc.GetActions(ctx, account, pos, offset)
		if err != nil {
			return nil, err
		}
		return res.Actions, nil
	}
	scanner := history.NewScanner(fetch, c.cfg.RequestTimeout(), log.History)
	return history.NewDispatcher(scanner, log.History).
		ScanAll(ctx, so.start, so.pageSize, so.concurrency, onPage)
}
