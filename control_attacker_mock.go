/*
 * // Copyright 2020 Insolar Network Ltd.
 * // All rights reserved.
 * // This material is licensed under the Insolar License version 1.0,
 * // available at https://github.com/insolar/assured-ledger/blob/master/LICENSE.md.
 */

package stampede

import (
	"context"
	"sync/atomic"
	"time"
)

// ControlAttackerMock issues no network calls, its latency and failures are
// controlled from tests. The call counter is shared between all clones.
type ControlAttackerMock struct {
	serviceError chan bool
	calls        *int64
	r            *Runner
}

func NewControlAttackerMock() *ControlAttackerMock {
	return &ControlAttackerMock{
		serviceError: make(chan bool),
		calls:        new(int64),
	}
}

func (a *ControlAttackerMock) Clone(r *Runner) Attack {
	return &ControlAttackerMock{
		serviceError: a.serviceError,
		calls:        a.calls,
		r:            r,
	}
}

func (a *ControlAttackerMock) Setup(c RunnerConfig) error {
	return nil
}

func (a *ControlAttackerMock) Do(_ context.Context) DoResult {
	atomic.AddInt64(a.calls, 1)
	select {
	case <-a.serviceError:
		return DoResult{RequestLabel: a.r.Name, Error: "service error"}
	default:
	}
	sleepTime := atomic.LoadInt64(&a.r.controlled.Sleep)
	time.Sleep(time.Duration(sleepTime) * time.Millisecond)
	return DoResult{RequestLabel: a.r.Name}
}

func (a *ControlAttackerMock) Teardown() error {
	return nil
}

// Calls is the total amount of Do calls across all clones.
func (a *ControlAttackerMock) Calls() int64 {
	return atomic.LoadInt64(a.calls)
}

func serviceErrorAfter(se chan bool, t time.Duration) {
	go func() {
		time.Sleep(t)
		se <- true
	}()
}
