/*
 * // Copyright 2020 Insolar Network Ltd.
 * // All rights reserved.
 * // This material is licensed under the Insolar License version 1.0,
 * // available at https://github.com/insolar/assured-ledger/blob/master/LICENSE.md.
 */

package stampede

import (
	"sort"
	"strconv"
	"time"

	"github.com/streadway/quantile"
)

type Metrics struct {
	// Latencies holds computed request latency Metrics.
	Latencies LatencyMetrics `json:"latencies"`
	// Earliest is the earliest request begin timestamp in a result set.
	Earliest time.Time `json:"earliest"`
	// Latest is the latest request begin timestamp in a result set.
	Latest time.Time `json:"latest"`
	// End is the latest timestamp in a result set plus its latency.
	End time.Time `json:"end"`
	// Duration is the measured wall-clock duration of the run.
	Duration time.Duration `json:"duration"`
	// Requests is the total number of requests executed.
	Requests uint64 `json:"requests"`
	// OK is the number of successful requests, Requests == OK + Failed always.
	OK uint64 `json:"ok"`
	// Failed is the number of failed requests.
	Failed uint64 `json:"failed"`
	// Rate is the rate of requests per second.
	Rate float64 `json:"rate"`
	// Success is the ratio of non-error responses.
	Success float64 `json:"success"`
	// StatusCodes is a histogram of the responses' status codes.
	StatusCodes map[string]int `json:"status_codes"`
	// Errors is a set of unique errors returned by the target during the run.
	Errors []string `json:"errors"`
	// ErrorCounts maps each unique error to its occurrence count.
	ErrorCounts map[string]int `json:"error_counts"`

	errors    map[string]struct{}
	samples   []float64
	estimator *quantile.Estimator
}

// LatencyMetrics holds computed request latency Metrics.
type LatencyMetrics struct {
	// Total is the total latency sum of all requests in a run.
	Total time.Duration `json:"total"`
	// Min is the minimum observed request latency.
	Min time.Duration `json:"min"`
	// Mean is the mean request latency.
	Mean time.Duration `json:"mean"`
	// Median is the exact median latency, interpolated for even counts.
	Median time.Duration `json:"median"`
	// P95 is the 95th percentile request latency.
	P95 time.Duration `json:"95th"`
	// P99 is the 99th percentile request latency.
	P99 time.Duration `json:"99th"`
	// Max is the maximum observed request latency.
	Max time.Duration `json:"max"`
}

func NewMetrics() *Metrics {
	m := &Metrics{}
	m.init()
	return m
}

func (m *Metrics) init() {
	if m.estimator == nil {
		m.StatusCodes = map[string]int{}
		m.ErrorCounts = map[string]int{}
		m.errors = map[string]struct{}{}
		m.samples = make([]float64, 0)
		m.estimator = quantile.New(
			quantile.Known(0.50, 0.01),
			quantile.Known(0.95, 0.001),
			quantile.Known(0.99, 0.0005),
		)
	}
}

func (m Metrics) successLogEntry() float64 {
	s := m.Success * 100.0
	if s < 0 {
		return 0
	}
	return s
}

func (m *Metrics) add(o RequestOutcome) {
	m.Requests++
	// StatusCode is optional
	if o.DoResult.StatusCode > 0 {
		m.StatusCodes[strconv.Itoa(o.DoResult.StatusCode)]++
	}
	m.Latencies.Total += o.Elapsed

	m.estimator.Add(float64(o.Elapsed))
	m.samples = append(m.samples, float64(o.Elapsed))

	if m.Earliest.IsZero() || m.Earliest.After(o.Begin) {
		m.Earliest = o.Begin
	}

	if o.Begin.After(m.Latest) {
		m.Latest = o.Begin
	}

	if end := o.End; end.After(m.End) {
		m.End = end
	}

	if o.Elapsed > m.Latencies.Max {
		m.Latencies.Max = o.Elapsed
	}

	if m.Latencies.Min == 0 || o.Elapsed < m.Latencies.Min {
		m.Latencies.Min = o.Elapsed
	}

	if o.DoResult.Error != "" {
		if _, ok := m.errors[o.DoResult.Error]; !ok {
			m.errors[o.DoResult.Error] = struct{}{}
			m.Errors = append(m.Errors, o.DoResult.Error)
		}
		m.ErrorCounts[o.DoResult.Error]++
	}

	if o.Success() {
		m.OK++
	} else {
		m.Failed++
	}
}

// update computes derived summary Metrics which don't need to be run on every
// add call. wall is the measured run duration, when zero the observed
// timestamp span is used instead.
func (m *Metrics) update(wall time.Duration) {
	if m.Requests == 0 {
		return
	}
	fRequests := float64(m.Requests)
	m.Duration = wall
	if m.Duration == 0 {
		m.Duration = m.End.Sub(m.Earliest)
	}
	if secs := m.Duration.Seconds(); secs > 0 {
		m.Rate = fRequests / secs
	}
	m.Success = float64(m.OK) / fRequests
	m.Latencies.Mean = time.Duration(float64(m.Latencies.Total) / fRequests)
	m.Latencies.Median = m.median()
	m.Latencies.P95 = time.Duration(m.estimator.Get(0.95))
	m.Latencies.P99 = time.Duration(m.estimator.Get(0.99))
}

// median is exact, with linear interpolation between the two middle samples
// for even counts.
func (m *Metrics) median() time.Duration {
	n := len(m.samples)
	if n == 0 {
		return 0
	}
	sort.Float64s(m.samples)
	if n%2 == 1 {
		return time.Duration(m.samples[n/2])
	}
	return time.Duration((m.samples[n/2-1] + m.samples[n/2]) / 2)
}
