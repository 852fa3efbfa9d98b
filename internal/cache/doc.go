// Package cache provides a byte-bounded LRU for blob contents.
//
// Entries are evicted least recently used first once the summed length of
// the cached values exceeds the capacity. Values larger than the capacity are
// never cached.
package cache
