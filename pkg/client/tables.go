package client

import (
	"bytes"
	"context"
	"encoding/json"
	"strconv"

	"github.com/hsharif269/eosplayer/internal/scan"
	"github.com/hsharif269/eosplayer/pkg/log"
	"github.com/hsharif269/eosplayer/pkg/rpc"
)

// Row re-exports the opaque table row type.
type Row = scan.Row

// Range re-exports the half-open key range taken by ScanAllRows.
type Range = scan.Range

// ScanAllRows enumerates every row of t whose primary key falls in r,
// bisecting truncated responses until the result is complete. Optional
// hints are ascending key boundaries that pre-partition the range; use
// them to cap fan-out when the key distribution is known. Result order
// is unspecified.
func (c *Client) ScanAllRows(ctx context.Context, t Table, r Range, hints ...uint64) ([]Row, error) {
	fetch := func(ctx context.Context, lo, hi uint64) (scan.Slice, error) {
		res, err := c.rpc.GetTableRows(ctx, rpc.TableRowsRequest{
			Code:       t.Code,
			Scope:      t.Scope,
			Table:      t.Table,
			LowerBound: strconv.FormatUint(lo, 10),
			UpperBound: strconv.FormatUint(hi, 10),
			Limit:      -1,
			JSON:       true,
		})
		if err != nil {
			return scan.Slice{}, err
		}
		return scan.Slice{Rows: res.Rows, More: res.More}, nil
	}
	p := scan.NewPartitioner(fetch, c.cfg.DrainPollInterval(), log.Scan)
	return p.ScanAll(ctx, r, hints)
}

// ScanAllRowsByCursor enumerates t in primary-key order by chasing
// truncation with the last returned key as the next lower bound.
// pkField names the row field holding the primary key; limit <= 0
// scans the whole table.
func (c *Client) ScanAllRowsByCursor(ctx context.Context, t Table, pkField string, limit int32) ([]Row, error) {
	return scan.Paginate(ctx, c.pageQuery(t, 0), FieldKey(pkField), limit, log.Scan)
}

// ScanRange fetches up to length rows of t starting at key from, in a
// single query against the index at indexPos (0 for the primary one).
func (c *Client) ScanRange(ctx context.Context, t Table, from uint64, length int32, indexPos int32) ([]Row, error) {
	return scan.Window(ctx, c.pageQuery(t, indexPos), from, length, log.Scan)
}

func (c *Client) pageQuery(t Table, indexPos int32) scan.PageQuery {
	return func(ctx context.Context, lowerBound string, limit int32) (scan.Slice, error) {
		res, err := c.rpc.GetTableRows(ctx, rpc.TableRowsRequest{
			Code:          t.Code,
			Scope:         t.Scope,
			Table:         t.Table,
			LowerBound:    lowerBound,
			Limit:         limit,
			IndexPosition: indexPos,
			JSON:          true,
		})
		if err != nil {
			return scan.Slice{}, err
		}
		return scan.Slice{Rows: res.Rows, More: res.More}, nil
	}
}

// FieldKey builds a cursor accessor reading the named field of a JSON
// row. Number and string values both work; anything else (or a missing
// field) reports absence.
func FieldKey(field string) scan.KeyFunc {
	return func(r Row) (string, bool) {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(r, &obj); err != nil {
			return "", false
		}
		raw, ok := obj[field]
		if !ok {
			return "", false
		}
		raw = bytes.TrimSpace(raw)
		if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
			return "", false
		}
		if raw[0] == '"' {
			var s string
			if err := json.Unmarshal(raw, &s); err != nil {
				return "", false
			}
			return s, true
		}
		if raw[0] == '{' || raw[0] == '[' {
			return "", false
		}
		return string(raw), true
	}
}
