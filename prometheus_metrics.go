/*
 * // Copyright 2020 Insolar Network Ltd.
 * // All rights reserved.
 * // This material is licensed under the Insolar License version 1.0,
 * // available at https://github.com/insolar/assured-ledger/blob/master/LICENSE.md.
 */

package stampede

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	promRunSuccessRatio = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "stampede_run_success_ratio",
		Help: "Success requests ratio",
	})
	promRunMedian = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "stampede_run_median",
		Help: "Response time median",
	})
	promRunP95 = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "stampede_run_p95",
		Help: "Response time 95 Percentile",
	})
	promRunP99 = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "stampede_run_p99",
		Help: "Response time 99 Percentile",
	})
	promRunMax = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "stampede_run_max",
		Help: "Response time MAX",
	})
	promRunRPS = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "stampede_run_rps",
		Help: "Requests per second rate",
	})
)

type PromReporter struct{}

func (m *PromReporter) reportRun(metrics *Metrics) {
	promRunMedian.Set(float64(metrics.Latencies.Median.Milliseconds()))
	promRunP95.Set(float64(metrics.Latencies.P95.Milliseconds()))
	promRunP99.Set(float64(metrics.Latencies.P99.Milliseconds()))
	promRunMax.Set(float64(metrics.Latencies.Max.Milliseconds()))
	promRunSuccessRatio.Set(metrics.Success)
	promRunRPS.Set(metrics.Rate)
}
