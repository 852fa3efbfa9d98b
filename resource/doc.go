// Package resource bounds the external processes started on behalf of an
// analysis.
//
// A Controller combines a weighted semaphore (how many processes may run at
// once) with a token bucket (how fast new ones may start):
//
//	rc := resource.NewController(resource.Config{
//	    MaxProcesses:    4,
//	    SpawnsPerSecond: 2,
//	})
//
//	release, err := rc.Acquire(ctx)
//	if err != nil {
//	    return err
//	}
//	defer release()
//
// A nil *Controller is valid and imposes no limits.
package resource
