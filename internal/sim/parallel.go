package sim

import (
	"context"
	"sync"

	"github.com/san-kum/postflight/internal/flight"
)

// RunPair integrates the reference and damaged conditions concurrently from
// the same initial state. Each simulator owns its own integrator, so there is
// no shared mutable state. If either run fails the pair fails; the reference
// error wins when both do.
func RunPair(ctx context.Context, reference, damaged *Simulator, x0 flight.State, cfg Config) (ref, dam *Trajectory, err error) {
	var wg sync.WaitGroup
	var refErr, damErr error

	wg.Add(2)
	go func() {
		defer wg.Done()
		ref, refErr = reference.Run(ctx, x0, cfg)
	}()
	go func() {
		defer wg.Done()
		dam, damErr = damaged.Run(ctx, x0, cfg)
	}()
	wg.Wait()

	if refErr != nil {
		return nil, nil, refErr
	}
	if damErr != nil {
		return nil, nil, damErr
	}
	return ref, dam, nil
}
