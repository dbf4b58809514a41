package scan

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"
)

var (
	// ErrMissingCursorKey is returned when a truncated page carries a
	// row without the configured continuation key, so the scan cannot
	// be resumed without silently losing rows.
	ErrMissingCursorKey = errors.New("truncated page has no cursor key")

	// ErrInvalidRange is returned before any network call when a
	// requested window length is negative.
	ErrInvalidRange = errors.New("negative window length")
)

// KeyFunc extracts the continuation key from a row. ok=false means the
// row does not carry the configured key.
type KeyFunc func(Row) (string, bool)

// PageQuery runs one bounded query starting at lowerBound (inclusive;
// empty string for no bound), returning at most limit rows. limit < 0
// asks for as many rows as the backend returns in one page.
type PageQuery func(ctx context.Context, lowerBound string, limit int32) (Slice, error)

// Paginate drains q into one ordered result, re-querying with the last
// row's key as the next lower bound whenever the backend reports
// truncation. limit <= 0 scans everything. Rows appear in encounter
// order; running it twice against an unmodified table yields identical
// output.
func Paginate(ctx context.Context, q PageQuery, keyOf KeyFunc, limit int32, lg zerolog.Logger) ([]Row, error) {
	var (
		out    []Row
		cursor string
		first  = true
	)
	for {
		req := int32(-1)
		if limit > 0 {
			// The +1 pays for the continuation's first row, which
			// repeats the cursor row and is dropped below.
			req = limit - int32(len(out)) + 1
			if first {
				req = limit
			}
		}

		slice, err := q(ctx, cursor, req)
		if err != nil {
			return nil, err
		}

		rows := slice.Rows
		if !first && len(rows) > 0 {
			rows = rows[1:]
		}
		out = append(out, rows...)

		if limit > 0 && int32(len(out)) >= limit {
			if slice.More {
				lg.Debug().Int32("limit", limit).Msg("limit satisfied before table end")
			}
			return out[:limit], nil
		}
		if !slice.More {
			return out, nil
		}

		if len(slice.Rows) == 0 {
			return nil, fmt.Errorf("%w: backend reported truncation on an empty page", ErrMissingCursorKey)
		}
		if _, ok := keyOf(slice.Rows[0]); !ok {
			return nil, fmt.Errorf("%w: first row %s", ErrMissingCursorKey, snippet(slice.Rows[0]))
		}
		last, ok := keyOf(slice.Rows[len(slice.Rows)-1])
		if !ok {
			return nil, fmt.Errorf("%w: last row %s", ErrMissingCursorKey, snippet(slice.Rows[len(slice.Rows)-1]))
		}
		cursor = last
		first = false
	}
}

// Window fetches up to length rows starting at key from, in one query.
// A truncated response that nevertheless filled the requested length is
// logged as an advisory, not resolved further; callers who need the
// remainder use Paginate.
func Window(ctx context.Context, q PageQuery, from uint64, length int32, lg zerolog.Logger) ([]Row, error) {
	if length < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRange, length)
	}
	if length == 0 {
		// An omitted limit selects the backend's default page size, not
		// zero rows, so a zero-length window never reaches the wire.
		return nil, nil
	}
	slice, err := q(ctx, strconv.FormatUint(from, 10), length)
	if err != nil {
		return nil, err
	}
	if slice.More {
		lg.Info().Uint64("from", from).Int32("length", length).
			Msg("window truncated, rows beyond the requested length left unread")
	}
	return slice.Rows, nil
}

// snippet keeps error context readable when rows are large.
func snippet(r Row) string {
	const max = 128
	if len(r) > max {
		return string(r[:max]) + "..."
	}
	return string(r)
}
