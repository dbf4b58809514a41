package pebble

import (
	cockroachpebble "github.com/cockroachdb/pebble"
)

type iterator struct {
	it    *cockroachpebble.Iterator
	first bool
}

func (i *iterator) Next() bool {
	if i.first {
		i.first = false
		return i.it.First()
	}
	return i.it.Next()
}

func (i *iterator) Key() []byte {
	k := i.it.Key()
	out := make([]byte, len(k))
	copy(out, k)
	return out
}

func (i *iterator) Value() ([]byte, error) {
	v, err := i.it.ValueAndErr()
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (i *iterator) Valid() bool {
	return i.it.Valid()
}

func (i *iterator) Close() error {
	return i.it.Close()
}
