/*
 * // Copyright 2020 Insolar Network Ltd.
 * // All rights reserved.
 * // This material is licensed under the Insolar License version 1.0,
 * // available at https://github.com/insolar/assured-ledger/blob/master/LICENSE.md.
 */

package stampede

import (
	"bytes"
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/require"
)

func tempOutDir(t *testing.T) string {
	dir, err := ioutil.TempDir("", "stampede_test")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = os.RemoveAll(dir)
	})
	return dir
}

func TestReportJSONArtifact(t *testing.T) {
	dir := tempOutDir(t)
	cfg := mockRunnerConfig(2, 1)
	cfg.ReportOptions = &ReportOptions{JSON: true, OutDir: dir}
	r, err := NewRunner(cfg, NewControlAttackerMock(), nil)
	require.NoError(t, err)
	r.controlled.Sleep = 10
	report, err := r.Run(context.TODO())
	require.NoError(t, err)
	require.Empty(t, report.Warnings)

	matches, err := filepath.Glob(filepath.Join(dir, "report_*.json"))
	require.NoError(t, err)
	require.Len(t, matches, 1)
	d, err := ioutil.ReadFile(matches[0])
	require.NoError(t, err)

	var saved Report
	require.NoError(t, jsoniter.Unmarshal(d, &saved))
	require.Equal(t, report.Requests, saved.Requests)
	require.Equal(t, report.OK, saved.OK)
	require.Equal(t, report.Failed, saved.Failed)
	require.Equal(t, report.RunID, saved.RunID)
	// config is echoed back into the artifact
	require.Equal(t, cfg.TargetUrl, saved.Config.TargetUrl)
	require.Equal(t, cfg.Users, saved.Config.Users)
	require.Equal(t, cfg.TestTimeSec, saved.Config.TestTimeSec)
}

func TestReportCSVArtifacts(t *testing.T) {
	dir := tempOutDir(t)
	cfg := mockRunnerConfig(2, 1)
	cfg.ReportOptions = &ReportOptions{CSV: true, OutDir: dir}
	r, err := NewRunner(cfg, NewControlAttackerMock(), nil)
	require.NoError(t, err)
	r.controlled.Sleep = 10
	report, err := r.Run(context.TODO())
	require.NoError(t, err)
	require.Empty(t, report.Warnings)

	requests, err := filepath.Glob(filepath.Join(dir, "requests_*.csv"))
	require.NoError(t, err)
	require.Len(t, requests, 1)
	seconds, err := filepath.Glob(filepath.Join(dir, "seconds_*.csv"))
	require.NoError(t, err)
	require.Len(t, seconds, 1)
}

func TestReportWriteFailureIsWarningOnly(t *testing.T) {
	cfg := mockRunnerConfig(1, 1)
	cfg.ReportOptions = &ReportOptions{
		JSON:   true,
		OutDir: "/nonexistent/dir/for/sure",
	}
	r, err := NewRunner(cfg, NewControlAttackerMock(), nil)
	require.NoError(t, err)
	r.controlled.Sleep = 10
	report, err := r.Run(context.TODO())
	// the measured data survives a failed artifact write
	require.NoError(t, err)
	require.NotNil(t, report)
	require.Greater(t, int(report.Requests), 0)
	require.NotEmpty(t, report.Warnings)
}

func TestReportSummaryContainsFields(t *testing.T) {
	r, err := NewRunner(mockRunnerConfig(2, 1), NewControlAttackerMock(), nil)
	require.NoError(t, err)
	r.controlled.Sleep = 10
	report, err := r.Run(context.TODO())
	require.NoError(t, err)

	var buf bytes.Buffer
	report.PrintSummary(&buf)
	out := buf.String()
	require.Contains(t, out, "LOAD TEST RESULTS")
	require.Contains(t, out, "total requests:")
	require.Contains(t, out, "success rate:")
	require.Contains(t, out, "requests/sec:")
	require.Contains(t, out, "latency (ms):")
}

func TestReportPerSecondAggregates(t *testing.T) {
	start := time.Now()
	outcomes := make([]RequestOutcome, 0)
	m := NewMetrics()
	// three requests in the first second, one in the third
	for _, offset := range []time.Duration{
		100 * time.Millisecond,
		300 * time.Millisecond,
		700 * time.Millisecond,
		2100 * time.Millisecond,
	} {
		o := RequestOutcome{
			Begin:   start.Add(offset),
			End:     start.Add(offset + 10*time.Millisecond),
			Elapsed: 10 * time.Millisecond,
			DoResult: DoResult{
				StatusCode: 200,
			},
		}
		outcomes = append(outcomes, o)
		m.add(o)
	}
	m.update(3 * time.Second)
	cfg := mockRunnerConfig(1, 3)
	cfg.DefaultCfgValues()
	report := NewReport(cfg, m, start, start.Add(3*time.Second), outcomes)
	aggs := report.perSecond()
	require.Len(t, aggs, 2)
	require.Equal(t, 0, aggs[0].tick)
	require.Equal(t, 3, aggs[0].requests)
	require.Equal(t, 2, aggs[1].tick)
	require.Equal(t, 1, aggs[1].requests)
	require.Equal(t, 10*time.Millisecond, aggs[0].p50)
}
