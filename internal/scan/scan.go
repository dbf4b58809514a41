// Package scan implements complete enumeration of ordered, remotely
// stored tables on top of a bounded range-query primitive that may
// truncate its responses.
package scan

import (
	"context"
	"encoding/json"
	"math"
)

// Row is an opaque table row. Only the caller-injected key accessor
// ever looks inside one.
type Row = json.RawMessage

// Slice is the result of one bounded remote query. More=true means the
// requested bounds hold rows beyond the returned ones; More=false means
// Rows is the entire content of the request.
type Slice struct {
	Rows []Row
	More bool
}

// Fetch runs one bounded query over the inclusive key range [lo, hi],
// asking for as many rows as the backend yields in a single page.
type Fetch func(ctx context.Context, lo, hi uint64) (Slice, error)

// MaxKey is the largest representable table key.
const MaxKey = math.MaxUint64

// Range selects keys lower <= k < upper. Upper == 0 means unbounded
// above. A non-zero Upper at or below Lower makes the range empty.
type Range struct {
	Lower uint64
	Upper uint64
}

// bounds converts the half-open range into the inclusive bounds the
// remote query takes. ok=false means the range is empty.
func (r Range) bounds() (lo, hi uint64, ok bool) {
	if r.Upper == 0 {
		return r.Lower, MaxKey, true
	}
	if r.Lower >= r.Upper {
		return 0, 0, false
	}
	return r.Lower, r.Upper - 1, true
}
