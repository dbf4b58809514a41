// Package ringlog keeps a bounded history of recently submitted write
// operations for diagnostics. It is observational only; nothing on the
// read path depends on it.
package ringlog

import (
	"sync"
	"time"
)

const DefaultCapacity = 1000

// Entry is one recorded submission.
type Entry struct {
	Time          time.Time
	TransactionID string
	Summary       string
}

// Log is a fixed-capacity FIFO. Push is O(1) and evicts the oldest
// entry once the log is full. Safe for concurrent use.
type Log struct {
	mu    sync.Mutex
	buf   []Entry
	head  int // index of the oldest entry
	count int
}

func New(capacity int) *Log {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Log{buf: make([]Entry, capacity)}
}

func (l *Log) Push(e Entry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.count < len(l.buf) {
		l.buf[(l.head+l.count)%len(l.buf)] = e
		l.count++
		return
	}
	l.buf[l.head] = e
	l.head = (l.head + 1) % len(l.buf)
}

// Recent returns the stored entries, oldest first.
func (l *Log) Recent() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry, l.count)
	for i := 0; i < l.count; i++ {
		out[i] = l.buf[(l.head+i)%len(l.buf)]
	}
	return out
}

func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.count
}

func (l *Log) Capacity() int {
	return len(l.buf)
}
