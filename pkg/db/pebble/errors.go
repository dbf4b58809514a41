package pebble

import "errors"

var (
	ErrNotFound = errors.New("key not found")
	ErrClosed   = errors.New("store is closed")
)
