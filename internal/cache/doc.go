// Package cache provides a small generic LRU cache used to memoize
// per-typeface queries (kerning pairs, shaped pair advances) that are
// expensive to recompute but bounded in practice.
//
//	c := cache.New[uint64, float64](4096)
//	c.Set(key, 1.5)
//	v, ok := c.Get(key)
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
