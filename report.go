/*
 * // Copyright 2020 Insolar Network Ltd.
 * // All rights reserved.
 * // This material is licensed under the Insolar License version 1.0,
 * // available at https://github.com/insolar/assured-ledger/blob/master/LICENSE.md.
 */

package stampede

import (
	"encoding/csv"
	"fmt"
	"io"
	"io/ioutil"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
)

// LatencySummary latency statistics of a run in milliseconds.
type LatencySummary struct {
	MinMs    float64 `json:"min_ms"`
	MeanMs   float64 `json:"mean_ms"`
	MedianMs float64 `json:"median_ms"`
	P95Ms    float64 `json:"p95_ms"`
	P99Ms    float64 `json:"p99_ms"`
	MaxMs    float64 `json:"max_ms"`
}

// Report is the read-only aggregate of one run, computed once after the join
// barrier and never mutated afterwards.
type Report struct {
	RunID        string         `json:"run_id"`
	Name         string         `json:"name"`
	Config       *RunnerConfig  `json:"config"`
	StartedAt    time.Time      `json:"started_at"`
	FinishedAt   time.Time      `json:"finished_at"`
	DurationSec  float64        `json:"duration_sec"`
	Requests     uint64         `json:"requests"`
	OK           uint64         `json:"ok"`
	Failed       uint64         `json:"failed"`
	SuccessRatio float64        `json:"success_ratio"`
	RPS          float64        `json:"rps"`
	Latency      LatencySummary `json:"latency"`
	StatusCodes  map[string]int `json:"status_codes"`
	Errors       map[string]int `json:"errors"`
	Warnings     []string       `json:"warnings,omitempty"`

	outcomes []RequestOutcome
	metrics  *Metrics

	jsonFilename        string
	requestsLogFilename string
	secondsLogFilename  string
	timelineHTMLName    string
	timelinePNGName     string
}

func NewReport(cfg *RunnerConfig, m *Metrics, startedAt, finishedAt time.Time, outcomes []RequestOutcome) *Report {
	tn := startedAt.Unix()
	runId := uuid.New().String()
	out := ""
	if cfg.ReportOptions != nil {
		out = cfg.ReportOptions.OutDir
	}
	return &Report{
		RunID:        runId,
		Name:         cfg.Name,
		Config:       cfg,
		StartedAt:    startedAt,
		FinishedAt:   finishedAt,
		DurationSec:  m.Duration.Seconds(),
		Requests:     m.Requests,
		OK:           m.OK,
		Failed:       m.Failed,
		SuccessRatio: m.Success,
		RPS:          m.Rate,
		Latency: LatencySummary{
			MinMs:    durToMs(m.Latencies.Min),
			MeanMs:   durToMs(m.Latencies.Mean),
			MedianMs: durToMs(m.Latencies.Median),
			P95Ms:    durToMs(m.Latencies.P95),
			P99Ms:    durToMs(m.Latencies.P99),
			MaxMs:    durToMs(m.Latencies.Max),
		},
		StatusCodes:         m.StatusCodes,
		Errors:              m.ErrorCounts,
		outcomes:            outcomes,
		metrics:             m,
		jsonFilename:        filepath.Join(out, fmt.Sprintf(ReportJSONFile, cfg.Name, runId, tn)),
		requestsLogFilename: filepath.Join(out, fmt.Sprintf(RequestsLogFile, cfg.Name, runId, tn)),
		secondsLogFilename:  filepath.Join(out, fmt.Sprintf(SecondsLogFile, cfg.Name, runId, tn)),
		timelineHTMLName:    filepath.Join(out, fmt.Sprintf(TimelineHTMLFile, cfg.Name, runId, tn)),
		timelinePNGName:     filepath.Join(out, fmt.Sprintf(TimelinePNGFile, cfg.Name, runId, tn)),
	}
}

// SaveJSON persists the full report as a json artifact.
func (r *Report) SaveJSON() error {
	d, err := jsoniter.MarshalIndent(r, "", "    ")
	if err != nil {
		return &ReportWriteError{Path: r.jsonFilename, Err: err}
	}
	if err := ioutil.WriteFile(r.jsonFilename, d, 0644); err != nil {
		return &ReportWriteError{Path: r.jsonFilename, Err: err}
	}
	return nil
}

// flushLogs writes the raw request log and per second aggregates csv.
func (r *Report) flushLogs() error {
	if err := r.writeRequestsLog(); err != nil {
		return err
	}
	return r.writeSecondsLog()
}

func (r *Report) writeRequestsLog() error {
	f, err := CreateFileOrReplace(r.requestsLogFilename)
	if err != nil {
		return &ReportWriteError{Path: r.requestsLogFilename, Err: err}
	}
	defer f.Close()
	w := csv.NewWriter(f)
	_ = w.Write(RequestsCsvHeader)
	for _, o := range r.outcomes {
		_ = w.Write([]string{
			strconv.Itoa(o.UserID),
			strconv.FormatInt(o.Begin.UnixNano(), 10),
			strconv.FormatInt(o.End.UnixNano(), 10),
			strconv.FormatFloat(durToMs(o.Elapsed), 'f', 3, 64),
			strconv.Itoa(o.DoResult.StatusCode),
			o.DoResult.Error,
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return &ReportWriteError{Path: r.requestsLogFilename, Err: err}
	}
	return nil
}

func (r *Report) writeSecondsLog() error {
	f, err := CreateFileOrReplace(r.secondsLogFilename)
	if err != nil {
		return &ReportWriteError{Path: r.secondsLogFilename, Err: err}
	}
	defer f.Close()
	w := csv.NewWriter(f)
	_ = w.Write(SecondsCsvHeader)
	for _, s := range r.perSecond() {
		_ = w.Write([]string{
			r.Name,
			strconv.Itoa(s.tick),
			strconv.Itoa(s.requests),
			strconv.Itoa(int(s.p50.Milliseconds())),
			strconv.Itoa(int(s.p95.Milliseconds())),
			strconv.Itoa(int(s.p99.Milliseconds())),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return &ReportWriteError{Path: r.secondsLogFilename, Err: err}
	}
	return nil
}

func (r *Report) plotHTML() error {
	chart, err := TimelineChart(r.secondsLogFilename, r.Name)
	if err != nil {
		return &ReportWriteError{Path: r.timelineHTMLName, Err: err}
	}
	if err := RenderEChart(chart, r.timelineHTMLName); err != nil {
		return &ReportWriteError{Path: r.timelineHTMLName, Err: err}
	}
	return nil
}

func (r *Report) plotPNG() error {
	chart, err := TimelinePNGChart(r.Name, r.secondsLogFilename)
	if err != nil {
		return &ReportWriteError{Path: r.timelinePNGName, Err: err}
	}
	if err := RenderChart(chart, r.timelinePNGName); err != nil {
		return &ReportWriteError{Path: r.timelinePNGName, Err: err}
	}
	return nil
}

// PrintSummary writes the human readable digest of the run.
func (r *Report) PrintSummary(w io.Writer) {
	fmt.Fprintf(w, "\n============== LOAD TEST RESULTS ==============\n")
	fmt.Fprintf(w, "target:            %s %s\n", r.Config.Method, r.Config.TargetUrl)
	fmt.Fprintf(w, "users:             %d\n", r.Config.Users)
	fmt.Fprintf(w, "duration:          %.1fs (configured %ds)\n", r.DurationSec, r.Config.TestTimeSec)
	fmt.Fprintf(w, "total requests:    %d\n", r.Requests)
	fmt.Fprintf(w, "successful:        %d\n", r.OK)
	fmt.Fprintf(w, "failed:            %d\n", r.Failed)
	fmt.Fprintf(w, "success rate:      %.1f%%\n", r.SuccessRatio*100)
	fmt.Fprintf(w, "requests/sec:      %.2f\n", r.RPS)
	fmt.Fprintf(w, "latency (ms):      min %.3f / mean %.3f / median %.3f / p95 %.3f / p99 %.3f / max %.3f\n",
		r.Latency.MinMs, r.Latency.MeanMs, r.Latency.MedianMs, r.Latency.P95Ms, r.Latency.P99Ms, r.Latency.MaxMs)
	if len(r.StatusCodes) > 0 {
		fmt.Fprintf(w, "status codes:\n")
		codes := make([]string, 0, len(r.StatusCodes))
		for code := range r.StatusCodes {
			codes = append(codes, code)
		}
		sort.Strings(codes)
		for _, code := range codes {
			fmt.Fprintf(w, "  %s: %d\n", code, r.StatusCodes[code])
		}
	}
	if len(r.Errors) > 0 {
		fmt.Fprintf(w, "errors:\n")
		for e, count := range r.Errors {
			fmt.Fprintf(w, "  %s: %d\n", e, count)
		}
	}
	fmt.Fprintf(w, "===============================================\n")
}

type secondAggregate struct {
	tick     int
	requests int
	p50      time.Duration
	p95      time.Duration
	p99      time.Duration
}

// perSecond buckets outcomes by the second of their begin timestamp, bucket
// request count doubles as per second rate.
func (r *Report) perSecond() []secondAggregate {
	buckets := make(map[int][]time.Duration)
	for _, o := range r.outcomes {
		tick := int(o.Begin.Sub(r.StartedAt).Seconds())
		if tick < 0 {
			tick = 0
		}
		buckets[tick] = append(buckets[tick], o.Elapsed)
	}
	ticks := make([]int, 0, len(buckets))
	for tick := range buckets {
		ticks = append(ticks, tick)
	}
	sort.Ints(ticks)
	out := make([]secondAggregate, 0, len(ticks))
	for _, tick := range ticks {
		lats := buckets[tick]
		sort.Slice(lats, func(i, j int) bool { return lats[i] < lats[j] })
		out = append(out, secondAggregate{
			tick:     tick,
			requests: len(lats),
			p50:      rankedPercentile(lats, 0.50),
			p95:      rankedPercentile(lats, 0.95),
			p99:      rankedPercentile(lats, 0.99),
		})
	}
	return out
}

// rankedPercentile is nearest-rank over a sorted slice.
func rankedPercentile(sorted []time.Duration, q float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(q * float64(len(sorted)-1))
	return sorted[idx]
}

func durToMs(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
