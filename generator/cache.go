// SPDX-License-Identifier: MIT
// Package: avrand/generator
//
// cache.go - per-engine memo keyed by node ID.

package generator

// memo is an identity-keyed cache populated at most once per key. Failed
// builds are not stored. It is not goroutine-safe; the engine lock guards it.
type memo[K comparable, V any] struct {
	m map[K]V
}

func newMemo[K comparable, V any]() *memo[K, V] {
	return &memo[K, V]{m: make(map[K]V)}
}

// get returns the cached value for key, building and storing it on first access.
//
// Complexity: O(1) amortized, plus one build per key.
func (c *memo[K, V]) get(key K, build func() (V, error)) (V, error) {
	if v, ok := c.m[key]; ok {
		return v, nil
	}
	v, err := build()
	if err != nil {
		var zero V
		return zero, err
	}
	c.m[key] = v
	return v, nil
}

// ensure is get for builders that cannot fail.
func (c *memo[K, V]) ensure(key K, build func() V) V {
	if v, ok := c.m[key]; ok {
		return v
	}
	v := build()
	c.m[key] = v
	return v
}

func (c *memo[K, V]) len() int { return len(c.m) }
