package inmemorystore

import "sync"

// Memo caches the result of one computation per key. The zero value is
// ready to use.
type Memo[K comparable, V any] struct {
	entries sync.Map // Key: K, Value: *entry[V]
}

type entry[V any] struct {
	once  sync.Once
	value V
	err   error
}

// Get returns the memoized result for key, running compute on first use.
// Concurrent callers for the same key block until the first computation
// finishes and then share its result.
func (m *Memo[K, V]) Get(key K, compute func() (V, error)) (V, error) {
	raw, _ := m.entries.LoadOrStore(key, &entry[V]{})
	e := raw.(*entry[V])
	e.once.Do(func() {
		e.value, e.err = compute()
	})
	return e.value, e.err
}

// Len counts the keys seen so far.
func (m *Memo[K, V]) Len() int {
	n := 0
	m.entries.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}
