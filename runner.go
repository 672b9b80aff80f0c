/*
 * // Copyright 2020 Insolar Network Ltd.
 * // All rights reserved.
 * // This material is licensed under the Insolar License version 1.0,
 * // available at https://github.com/insolar/assured-ledger/blob/master/LICENSE.md.
 */

package stampede

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/ratelimit"
)

const (
	// DefaultOutcomesCapacity initial capacity of one user's outcome buffer
	DefaultOutcomesCapacity = 1_000

	ReportJSONFile   = "report_%s_%s_%d.json"
	RequestsLogFile  = "requests_%s_%s_%d.csv"
	SecondsLogFile   = "seconds_%s_%s_%d.csv"
	TimelineHTMLFile = "timeline_%s_%s_%d.html"
	TimelinePNGFile  = "timeline_%s_%s_%d.png"
)

var (
	RequestsCsvHeader = []string{"User", "BeginTimeNano", "EndTimeNano", "ElapsedMs", "StatusCode", "Error"}
	SecondsCsvHeader  = []string{"RequestLabel", "Tick", "RPS", "P50", "P95", "P99"}
)

// Controlled struct for adding test vars
type Controlled struct {
	Sleep int64
}

// TestData shared test data
type TestData struct {
	*sync.Mutex
	Index int
	Data  interface{}
}

// Runner owns one run: it starts a constant amount of simulated users against
// the target, joins them after the test time elapses and aggregates their
// outcomes into a report.
type Runner struct {
	// Name of a runner
	Name string
	// Cfg runner config
	Cfg *RunnerConfig
	// prototype from which all attackers cloned
	attackerPrototype Attack
	// attackers cloned from a prototype, one per user
	attackers []Attack
	// optional rps cap shared by all users
	rl ratelimit.Limiter
	// caller context, cancelling it stops launching new requests
	runCtx context.Context
	// wall-clock instant after which no new request is started
	deadline  time.Time
	startedAt time.Time
	// uniq error messages
	uniqErrors map[string]int
	// Report of the last finished run
	Report *Report
	// data used to control attackers in test
	controlled Controlled
	// TestData data shared between attackers during test
	TestData       interface{}
	HTTPClient     *http.Client
	FastHTTPClient *FastHTTPClient
	PromReporter   *PromReporter
	L              *Logger
}

// NewRunner creates new runner with a constant amount of users by RunnerConfig.
// A *ConfigError is returned before any client is built when the config is
// invalid, no network activity happens in that case.
func NewRunner(cfg *RunnerConfig, a Attack, data interface{}) (*Runner, error) {
	if list := cfg.Validate(); len(list) > 0 {
		return nil, &ConfigError{Problems: list}
	}
	cfg.DefaultCfgValues()
	r := &Runner{
		Name:              cfg.Name,
		Cfg:               cfg,
		attackerPrototype: a,
		attackers:         make([]Attack, 0),
		uniqErrors:        make(map[string]int),
		controlled:        Controlled{},
		TestData:          data,
		HTTPClient:        NewLoggingHTTPClient(cfg.DumpTransport, cfg.AttackerTimeoutSec),
		FastHTTPClient:    NewLoggingFastHTTPClient(cfg.DumpTransport, cfg.AttackerTimeoutSec),
		L:                 NewLogger(cfg).With("runner", cfg.Name),
	}
	if cfg.MaxRPS > 0 {
		r.rl = ratelimit.New(cfg.MaxRPS)
	}
	for i := 0; i < cfg.Users; i++ {
		c := r.attackerPrototype.Clone(r)
		if err := c.Setup(*r.Cfg); err != nil {
			return nil, errAttackerSetup
		}
		r.attackers = append(r.attackers, c)
	}
	if cfg.Prometheus != nil && cfg.Prometheus.Enable {
		r.PromReporter = &PromReporter{}
		port := cfg.Prometheus.Port
		if port == 0 {
			port = 2112
		}
		http.Handle("/metrics", promhttp.Handler())
		// nolint
		go http.ListenAndServe(fmt.Sprintf(":%d", port), nil)
	}
	return r, nil
}

// Run starts all user loops at once and blocks until every loop has finished,
// then merges per-user buffers and builds the report. Per-request errors are
// absorbed into statistics and never abort the run.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	r.runCtx = ctx
	r.startedAt = time.Now()
	r.deadline = r.startedAt.Add(time.Duration(r.Cfg.TestTimeSec) * time.Second)
	r.L.Infof("runner started: %d users for %d seconds against %s", r.Cfg.Users, r.Cfg.TestTimeSec, r.Cfg.TargetUrl)
	done := make(chan struct{})
	r.handleShutdownSignal(done)

	buffers := make([][]RequestOutcome, len(r.attackers))
	wg := &sync.WaitGroup{}
	for i, a := range r.attackers {
		wg.Add(1)
		go func(idx int, atk Attack) {
			defer wg.Done()
			buffers[idx] = simulateUser(atk, r, idx)
		}(i, a)
	}
	// join barrier, buffers are merged only after every user loop returned
	wg.Wait()
	close(done)
	finishedAt := time.Now()
	r.teardown()

	outcomes := mergeOutcomes(buffers)
	metrics := NewMetrics()
	for _, o := range outcomes {
		metrics.add(o)
		if o.DoResult.Error != "" {
			r.uniqErrors[o.DoResult.Error]++
		}
	}
	metrics.update(finishedAt.Sub(r.startedAt))
	r.printErrors()

	r.Report = NewReport(r.Cfg, metrics, r.startedAt, finishedAt, outcomes)
	r.Report.PrintSummary(os.Stdout)
	r.persistArtifacts()
	if r.PromReporter != nil {
		r.PromReporter.reportRun(metrics)
	}
	r.L.Infof("runner exited: %d requests, %.2f rps, %.2f%% success",
		metrics.Requests, metrics.Rate, metrics.successLogEntry())
	return r.Report, nil
}

// persistArtifacts writes enabled report artifacts. A write failure is a
// warning only, measured data stays valid and already reported.
func (r *Runner) persistArtifacts() {
	opts := r.Cfg.ReportOptions
	if opts.JSON {
		if err := r.Report.SaveJSON(); err != nil {
			r.warnWrite(err)
		}
	}
	if opts.CSV || opts.Charts || opts.PNG {
		if err := r.Report.flushLogs(); err != nil {
			r.warnWrite(err)
			return
		}
	}
	if opts.Charts {
		if err := r.Report.plotHTML(); err != nil {
			r.warnWrite(err)
		}
	}
	if opts.PNG {
		if err := r.Report.plotPNG(); err != nil {
			r.warnWrite(err)
		}
	}
}

func (r *Runner) warnWrite(err error) {
	r.Report.Warnings = append(r.Report.Warnings, err.Error())
	r.L.Warnf("report artifact not written: %v", err)
}

func (r *Runner) teardown() {
	for _, a := range r.attackers {
		if err := a.Teardown(); err != nil {
			r.L.Warnf("attacker teardown: %v", err)
		}
	}
}

// printErrors print uniq errors
func (r *Runner) printErrors() {
	if len(r.uniqErrors) == 0 {
		return
	}
	r.L.Infof("uniq errors:")
	for e, count := range r.uniqErrors {
		r.L.Infof("error: %s, count: %d", e, count)
	}
}

func mergeOutcomes(buffers [][]RequestOutcome) []RequestOutcome {
	total := 0
	for _, b := range buffers {
		total += len(b)
	}
	merged := make([]RequestOutcome, 0, total)
	for _, b := range buffers {
		merged = append(merged, b...)
	}
	return merged
}
