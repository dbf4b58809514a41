package history

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hsharif269/eosplayer/pkg/rpc"
)

func newTestDispatcher(log *fakeLog) *Dispatcher {
	s := NewScanner(log.fetch, time.Second, testLogger())
	return NewDispatcher(s, testLogger())
}

func Test_ScanAll_DeliversWholeLogInOrder(t *testing.T) {
	log := &fakeLog{seqs: contiguous(0, 24)}
	d := newTestDispatcher(log)

	var got []int64
	done, err := d.ScanAll(context.Background(), 0, 10, 2, func(page []rpc.Action) bool {
		got = append(got, seqsOf(page)...)
		return true
	})
	require.NoError(t, err)
	require.True(t, done)
	require.Equal(t, contiguous(0, 24), got)
}

func Test_ScanAll_PageSizes(t *testing.T) {
	log := &fakeLog{seqs: contiguous(0, 24)}
	d := newTestDispatcher(log)

	var sizes []int
	done, err := d.ScanAll(context.Background(), 0, 10, 2, func(page []rpc.Action) bool {
		sizes = append(sizes, len(page))
		return true
	})
	require.NoError(t, err)
	require.True(t, done)
	require.Equal(t, []int{10, 10, 5}, sizes)
}

func Test_ScanAll_NoRepeatRequestsPastLogEnd(t *testing.T) {
	// 25 entries, pages of 10, two windows per batch: the scan issues
	// exactly the windows at 0, 10, 20 and 30. The empty window past
	// the end is requested once and never again, and nothing at or
	// below sequence 24 is fetched twice.
	log := &fakeLog{seqs: contiguous(0, 24)}
	d := newTestDispatcher(log)

	done, err := d.ScanAll(context.Background(), 0, 10, 2, func([]rpc.Action) bool {
		return true
	})
	require.NoError(t, err)
	require.True(t, done)
	require.ElementsMatch(t, []int64{0, 10, 20, 30}, log.fetchPositions())
}

func Test_ScanAll_ConsumerStopsEarly(t *testing.T) {
	log := &fakeLog{seqs: contiguous(0, 99)}
	d := newTestDispatcher(log)

	pages := 0
	done, err := d.ScanAll(context.Background(), 0, 10, 4, func(page []rpc.Action) bool {
		pages++
		return pages < 3
	})
	require.NoError(t, err)
	require.False(t, done)
	require.Equal(t, 3, pages)
}

func Test_ScanAll_StartsMidLog(t *testing.T) {
	log := &fakeLog{seqs: contiguous(0, 49)}
	d := newTestDispatcher(log)

	var got []int64
	done, err := d.ScanAll(context.Background(), 30, 10, 2, func(page []rpc.Action) bool {
		got = append(got, seqsOf(page)...)
		return true
	})
	require.NoError(t, err)
	require.True(t, done)
	require.Equal(t, contiguous(30, 49), got)
}

func Test_ScanAll_NothingPastShortPage(t *testing.T) {
	// 0..14 exist, then a hole, then 20..24. The window for 10..19
	// comes back short, so it is the end of the log as far as the
	// in-order walk is concerned; the 20..24 page completed in the
	// same batch but must not be delivered.
	seqs := append(contiguous(0, 14), contiguous(20, 24)...)
	log := &fakeLog{seqs: seqs}
	d := newTestDispatcher(log)

	var got []int64
	done, err := d.ScanAll(context.Background(), 0, 10, 3, func(page []rpc.Action) bool {
		got = append(got, seqsOf(page)...)
		return true
	})
	require.NoError(t, err)
	require.True(t, done)
	require.Equal(t, contiguous(0, 14), got)
}

func Test_ScanAll_EmptyLog(t *testing.T) {
	log := &fakeLog{}
	d := newTestDispatcher(log)

	done, err := d.ScanAll(context.Background(), 0, 10, 2, func([]rpc.Action) bool {
		t.Fatal("no page expected from an empty log")
		return false
	})
	require.NoError(t, err)
	require.True(t, done)
}

func Test_ScanAll_ScannerErrorAborts(t *testing.T) {
	apiErr := &rpc.APIError{Code: 500, Message: "Internal Service Error"}
	log := &fakeLog{seqs: contiguous(0, 99), failures: []error{apiErr}}
	d := newTestDispatcher(log)

	done, err := d.ScanAll(context.Background(), 0, 10, 2, func([]rpc.Action) bool { return true })
	require.ErrorAs(t, err, new(*rpc.APIError))
	require.False(t, done)
}

func Test_ScanAll_DefaultsApplied(t *testing.T) {
	log := &fakeLog{seqs: contiguous(0, 9)}
	d := newTestDispatcher(log)

	var got []int64
	done, err := d.ScanAll(context.Background(), 0, 0, 0, func(page []rpc.Action) bool {
		got = append(got, seqsOf(page)...)
		return true
	})
	require.NoError(t, err)
	require.True(t, done)
	require.Equal(t, contiguous(0, 9), got)
}
