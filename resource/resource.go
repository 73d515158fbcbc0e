// Package resource is a string-keyed registry of owned values. Every entry
// carries the function that releases its value, so a frontend can hand over
// textures or other handles once and free them all at shutdown.
package resource

import (
	"errors"
	"fmt"
	"hash/maphash"
	"iter"
	"reflect"
)

var (
	ErrEmptyKey = errors.New("resource: empty key")
	ErrNotFound = errors.New("resource: not found")
)

// HashFunc maps a key to a bucket hash.
type HashFunc func(key string) uint64

// Options tunes the bucket table.
type Options struct {
	// InitialSize is the starting bucket count and the floor for shrinking.
	InitialSize int
	// MaxLoadFactor is the entries-per-bucket ratio at which the table doubles.
	MaxLoadFactor float64
	// MinLoadFactorMult scales MaxLoadFactor down to the ratio at which the
	// table halves.
	MinLoadFactorMult float64
	// Hash overrides the default seeded hash.
	Hash HashFunc
}

// DefaultOptions returns a 16 bucket table that doubles at a load of 0.75 and
// halves at a quarter of that.
func DefaultOptions() Options {
	return Options{
		InitialSize:       16,
		MaxLoadFactor:     0.75,
		MinLoadFactorMult: 0.25,
	}
}

type entry[V any] struct {
	key     string
	value   V
	destroy func(V)
	next    *entry[V]
}

// Manager owns values of type V by key. It is not safe for concurrent use.
type Manager[V any] struct {
	opts    Options
	buckets []*entry[V]
	count   int
}

// New creates an empty manager. Zero fields of opts take their defaults.
func New[V any](opts Options) *Manager[V] {
	def := DefaultOptions()
	if opts.InitialSize <= 0 {
		opts.InitialSize = def.InitialSize
	}
	if opts.MaxLoadFactor <= 0 {
		opts.MaxLoadFactor = def.MaxLoadFactor
	}
	if opts.MinLoadFactorMult <= 0 || opts.MinLoadFactorMult >= 1 {
		opts.MinLoadFactorMult = def.MinLoadFactorMult
	}
	if opts.Hash == nil {
		seed := maphash.MakeSeed()
		opts.Hash = func(key string) uint64 {
			return maphash.String(seed, key)
		}
	}

	return &Manager[V]{
		opts:    opts,
		buckets: make([]*entry[V], opts.InitialSize),
	}
}

func (m *Manager[V]) index(key string, size int) int {
	return int(m.opts.Hash(key) % uint64(size))
}

// Set stores value under key. destroy, which may be nil, is called with the
// value when it is destroyed or the manager is closed. A different value
// already stored under key is destroyed first; storing the same value again
// only replaces its destructor.
func (m *Manager[V]) Set(key string, value V, destroy func(V)) error {
	if key == "" {
		return ErrEmptyKey
	}

	idx := m.index(key, len(m.buckets))
	for e := m.buckets[idx]; e != nil; e = e.next {
		if e.key == key {
			if e.destroy != nil && !sameValue(e.value, value) {
				e.destroy(e.value)
			}
			e.value = value
			e.destroy = destroy
			return nil
		}
	}

	m.buckets[idx] = &entry[V]{key: key, value: value, destroy: destroy, next: m.buckets[idx]}
	m.count++
	m.rehash()
	return nil
}

// sameValue reports whether a and b are equal comparable values, such as the
// same pointer.
func sameValue[V any](a, b V) bool {
	va := reflect.ValueOf(&a).Elem()
	vb := reflect.ValueOf(&b).Elem()
	return va.Comparable() && vb.Comparable() && va.Equal(vb)
}

// Get returns the value stored under key.
func (m *Manager[V]) Get(key string) (V, error) {
	var zero V
	if key == "" {
		return zero, ErrEmptyKey
	}
	for e := m.buckets[m.index(key, len(m.buckets))]; e != nil; e = e.next {
		if e.key == key {
			return e.value, nil
		}
	}
	return zero, fmt.Errorf("%w: %q", ErrNotFound, key)
}

// Has reports whether key is stored.
func (m *Manager[V]) Has(key string) bool {
	_, err := m.Get(key)
	return err == nil
}

// Remove detaches the value stored under key and returns it without
// destroying it. Ownership passes to the caller.
func (m *Manager[V]) Remove(key string) (V, error) {
	var zero V
	if key == "" {
		return zero, ErrEmptyKey
	}

	idx := m.index(key, len(m.buckets))
	for link := &m.buckets[idx]; *link != nil; link = &(*link).next {
		e := *link
		if e.key != key {
			continue
		}
		*link = e.next
		m.count--
		m.rehash()
		return e.value, nil
	}
	return zero, fmt.Errorf("%w: %q", ErrNotFound, key)
}

// Destroy removes key and releases its value.
func (m *Manager[V]) Destroy(key string) error {
	if key == "" {
		return ErrEmptyKey
	}

	idx := m.index(key, len(m.buckets))
	for link := &m.buckets[idx]; *link != nil; link = &(*link).next {
		e := *link
		if e.key != key {
			continue
		}
		*link = e.next
		m.count--
		if e.destroy != nil {
			e.destroy(e.value)
		}
		m.rehash()
		return nil
	}
	return fmt.Errorf("%w: %q", ErrNotFound, key)
}

// Len returns the number of stored values.
func (m *Manager[V]) Len() int {
	return m.count
}

// Size returns the current bucket count.
func (m *Manager[V]) Size() int {
	return len(m.buckets)
}

// LoadFactor returns entries per bucket.
func (m *Manager[V]) LoadFactor() float64 {
	return float64(m.count) / float64(len(m.buckets))
}

// All iterates the stored entries in bucket order. The manager must not be
// modified during iteration.
func (m *Manager[V]) All() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		for _, head := range m.buckets {
			for e := head; e != nil; e = e.next {
				if !yield(e.key, e.value) {
					return
				}
			}
		}
	}
}

// Close destroys every value and empties the manager. It can be reused
// afterwards.
func (m *Manager[V]) Close() {
	for i, head := range m.buckets {
		for e := head; e != nil; e = e.next {
			if e.destroy != nil {
				e.destroy(e.value)
			}
		}
		m.buckets[i] = nil
	}
	m.count = 0
	if len(m.buckets) != m.opts.InitialSize {
		m.buckets = make([]*entry[V], m.opts.InitialSize)
	}
}

// rehash doubles the table once the load reaches MaxLoadFactor and halves it
// once the load drops to MaxLoadFactor*MinLoadFactorMult, never below
// InitialSize.
func (m *Manager[V]) rehash() {
	size := len(m.buckets)
	load := m.LoadFactor()

	newSize := size
	switch {
	case load >= m.opts.MaxLoadFactor:
		newSize = size << 1
	case load <= m.opts.MaxLoadFactor*m.opts.MinLoadFactorMult && size>>1 >= m.opts.InitialSize:
		newSize = size >> 1
	}
	if newSize == size {
		return
	}

	buckets := make([]*entry[V], newSize)
	for _, head := range m.buckets {
		for e := head; e != nil; {
			next := e.next
			idx := m.index(e.key, newSize)
			e.next = buckets[idx]
			buckets[idx] = e
			e = next
		}
	}
	m.buckets = buckets
}
