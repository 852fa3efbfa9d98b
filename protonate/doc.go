// Package protonate adds hydrogens to heavy-atom structures by running
// PDB2PQR, and provides decorators that cache and rate-limit protonation.
//
// All types implement hbond.Protonator and compose:
//
//	p, err := protonate.NewPDB2PQR(protonate.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	limited := protonate.NewLimited(p, resource.NewController(resource.Config{MaxProcesses: 4}))
//	cached := protonate.NewCache(limited, blobstore.NewLocalStore(dir), func(o *protonate.CacheOptions) {
//	    o.Namespace = p.Config().Digest()
//	})
//
// Cache hits never reach the limiter, so only real tool invocations consume
// process slots.
package protonate
