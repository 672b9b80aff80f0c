/*
 * // Copyright 2020 Insolar Network Ltd.
 * // All rights reserved.
 * // This material is licensed under the Insolar License version 1.0,
 * // available at https://github.com/insolar/assured-ledger/blob/master/LICENSE.md.
 */

package stampede

import (
	"context"
	"math/rand"
	"time"
)

// Attack must be implemented by a service client.
type Attack interface {
	// Setup should establish the connection to the service
	// It may want to access the Config of the Runner.
	Setup(c RunnerConfig) error
	// Do performs one request and is executed in a separate goroutine.
	// The context is used to cancel the request on timeout.
	Do(ctx context.Context) DoResult
	// Teardown can be used to close the connection to the service
	Teardown() error
	// Clone should return a fresh new Attack
	// Make sure the new Attack has values for shared struct fields initialized at Setup.
	Clone(r *Runner) Attack
}

// simulateUser is one user loop. It issues requests until the run deadline,
// never starting a new request after it. A request already in flight when the
// deadline expires is allowed to complete, its outcome is not lost. Outcomes
// go to a private buffer merged by the runner after the join barrier.
func simulateUser(a Attack, r *Runner, id int) []RequestOutcome {
	l := r.L.Clone()
	ll := *l.With("user", id)
	rnd := rand.New(rand.NewSource(time.Now().UnixNano() + int64(id)))
	outcomes := make([]RequestOutcome, 0, DefaultOutcomesCapacity)
	for {
		select {
		case <-r.runCtx.Done():
			ll.Debugf("run cancelled, stopping user")
			return outcomes
		default:
		}
		if !time.Now().Before(r.deadline) {
			ll.Debugf("deadline reached, stopping user")
			return outcomes
		}
		if r.rl != nil {
			r.rl.Take()
			// Take may block past the deadline, never start a request then
			if !time.Now().Before(r.deadline) {
				return outcomes
			}
		}
		// request timeout is never derived from the run deadline, an
		// in-flight request must not be cancelled when the test time ends
		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.Cfg.AttackerTimeoutSec)*time.Second)
		tStart := time.Now()
		doResult := a.Do(ctx)
		tEnd := time.Now()
		cancel()
		outcomes = append(outcomes, RequestOutcome{
			UserID:   id,
			Begin:    tStart,
			End:      tEnd,
			Elapsed:  tEnd.Sub(tStart),
			DoResult: doResult,
		})
		if doResult.Error != "" {
			ll.Debugf("attack error: %s", doResult.Error)
		}
		if d := userDelay(r.Cfg, rnd); d > 0 {
			if remaining := time.Until(r.deadline); d > remaining {
				d = remaining
			}
			if d <= 0 {
				return outcomes
			}
			t := time.NewTimer(d)
			select {
			case <-r.runCtx.Done():
				t.Stop()
				return outcomes
			case <-t.C:
			}
		}
	}
}

// userDelay picks a uniform random delay in [DelayMinMs, DelayMaxMs].
func userDelay(cfg *RunnerConfig, rnd *rand.Rand) time.Duration {
	if cfg.DelayMaxMs == 0 {
		return 0
	}
	d := cfg.DelayMinMs
	if spread := cfg.DelayMaxMs - cfg.DelayMinMs; spread > 0 {
		d += rnd.Int63n(spread + 1)
	}
	return time.Duration(d) * time.Millisecond
}
