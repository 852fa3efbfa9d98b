// Package blobstore provides the storage abstraction behind the protonation
// cache.
//
// Store is a flat, name-addressed put/get interface. Implementations must be
// safe for concurrent use.
//
// # Built-in Implementations
//
//   - MemoryStore: process-local map
//   - LocalStore: one file per blob in a directory, atomic writes
//   - s3.Store: Amazon S3 bucket with optional key prefix
//   - minio.Store: MinIO and other S3-compatible storage
//
// # Custom Implementations
//
// Implement the Store interface to support custom backends:
//
//	type Store interface {
//	    Get(ctx, name) ([]byte, error)      // ErrNotFound if missing
//	    Put(ctx, name, data) error          // Atomic write
//	    Delete(ctx, name) error
//	    List(ctx, prefix) ([]string, error)
//	}
package blobstore
