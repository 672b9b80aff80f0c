/*
 * // Copyright 2020 Insolar Network Ltd.
 * // All rights reserved.
 * // This material is licensed under the Insolar License version 1.0,
 * // available at https://github.com/insolar/assured-ledger/blob/master/LICENSE.md.
 */

package stampede

import (
	"fmt"
	"time"
)

// DoResult is the return value of a Do call on an Attack.
type DoResult struct {
	// Label identifying the request that was send which is only used for reporting.
	RequestLabel string
	// The error that happened when sending the request or receiving the response.
	Error string
	// The HTTP status code, 0 when the request never got a response.
	StatusCode int
	// Number of bytes transferred when sending the request.
	BytesIn int64
	// Number of bytes transferred when receiving the response.
	BytesOut int64
}

// RequestOutcome is one record per completed request attempt, owned by the
// user loop that produced it until the run join barrier.
type RequestOutcome struct {
	UserID     int
	Begin, End time.Time
	Elapsed    time.Duration
	DoResult   DoResult
}

// Success reports whether the attempt had no transport error and a 2xx/3xx
// status. StatusCode is optional, non-http attackers leave it at zero.
func (o RequestOutcome) Success() bool {
	if o.DoResult.Error != "" {
		return false
	}
	return o.DoResult.StatusCode == 0 || (o.DoResult.StatusCode >= 200 && o.DoResult.StatusCode < 400)
}

func (o RequestOutcome) String() string {
	return fmt.Sprintf(
		"user: %d, begin: %s, end: %s, elapsed: %s, doResult: %v",
		o.UserID,
		o.Begin.Format(time.RFC3339),
		o.End.Format(time.RFC3339),
		o.Elapsed,
		o.DoResult,
	)
}
