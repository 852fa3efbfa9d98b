// Package s3 provides an Amazon S3 implementation of blobstore.Store.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("protonation/"),
//	    s3.WithRegion("eu-central-1"),
//	)
//	cache := protonate.NewCache(p, store)
//
// Credentials and region resolve through the default AWS configuration chain
// unless overridden by options.
package s3
