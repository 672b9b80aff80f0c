package stampede

import (
	"net/url"
	"strings"
)

const (
	// NetHTTPClientType selects the default net/http based attacker client.
	NetHTTPClientType = "http"
	// FastHTTPClientType selects the fasthttp based attacker client.
	FastHTTPClientType = "fasthttp"

	DefaultAttackerTimeoutSec = 30
	DefaultMethod             = "GET"
)

// ReportOptions controls which artifacts are written after a run.
type ReportOptions struct {
	// JSON writes the full report as a json artifact
	JSON bool
	// CSV writes raw request log and per second aggregates
	CSV bool
	// Charts renders html timeline chart from per second aggregates
	Charts bool
	// PNG renders png charts, suitable for posting to chats
	PNG bool
	// OutDir output directory for all artifacts, current dir when empty
	OutDir string
}

// PrometheusOptions enables gauges for the last finished run.
type PrometheusOptions struct {
	Enable bool
	Port   int
}

// RunnerConfig runner configuration
type RunnerConfig struct {
	// TargetUrl absolute url of the endpoint under test
	TargetUrl string
	// Method http method, GET by default
	Method string
	// Name of a runner instance
	Name string
	// Users constant amount of simulated users
	Users int
	// TestTimeSec test duration, no new requests start after it elapses
	TestTimeSec int
	// AttackerTimeoutSec timeout of a single request, distinct from TestTimeSec
	AttackerTimeoutSec int
	// DelayMinMs/DelayMaxMs inter-request delay range per user, uniform random
	DelayMinMs int64
	DelayMaxMs int64
	// MaxRPS optional cap of requests per second shared by all users
	MaxRPS int
	// ClientType http|fasthttp
	ClientType string
	// DumpTransport dump http requests/responses to stdout
	DumpTransport bool
	// GoroutinesDump dump goroutines on exit signal
	GoroutinesDump bool
	// LogLevel debug|info, etc.
	LogLevel string
	// LogEncoding json|console
	LogEncoding string
	ReportOptions *ReportOptions
	Prometheus    *PrometheusOptions
}

// Validate checks all settings and returns a list of strings with problems.
func (c *RunnerConfig) Validate() (list []string) {
	u, err := url.Parse(c.TargetUrl)
	if c.TargetUrl == "" || err != nil || !u.IsAbs() || u.Host == "" {
		list = append(list, "please set an absolute target url")
	}
	if c.Users <= 0 {
		list = append(list, "please set users > 0")
	}
	if c.TestTimeSec <= 0 {
		list = append(list, "please set test time > 0, seconds")
	}
	if c.AttackerTimeoutSec < 0 {
		list = append(list, "please set attacker timeout >= 0, seconds")
	}
	if c.DelayMinMs < 0 || c.DelayMaxMs < c.DelayMinMs {
		list = append(list, "please set delay range so that 0 <= min <= max, milliseconds")
	}
	if c.MaxRPS < 0 {
		list = append(list, "please set max rps >= 0")
	}
	if c.ClientType != "" && c.ClientType != NetHTTPClientType && c.ClientType != FastHTTPClientType {
		list = append(list, "please set client type to http or fasthttp")
	}
	return
}

// DefaultCfgValues fills optional settings left empty.
func (c *RunnerConfig) DefaultCfgValues() {
	if c.Name == "" {
		c.Name = "runner"
	}
	if c.Method == "" {
		c.Method = DefaultMethod
	} else {
		c.Method = strings.ToUpper(c.Method)
	}
	if c.AttackerTimeoutSec == 0 {
		c.AttackerTimeoutSec = DefaultAttackerTimeoutSec
	}
	if c.ClientType == "" {
		c.ClientType = NetHTTPClientType
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogEncoding == "" {
		c.LogEncoding = "console"
	}
	if c.ReportOptions == nil {
		c.ReportOptions = &ReportOptions{}
	}
}
