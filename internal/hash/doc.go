// Package hash provides the CRC32-Castagnoli checksums that guard cached
// protonation results against corruption.
//
//	sum := hash.CRC32C(payload)
//	...
//	if err := hash.Verify(payload, sum); err != nil {
//	    // treat as a cache miss
//	}
package hash
