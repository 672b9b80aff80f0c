package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/insolar/stampede"
)

func main() {
	var (
		url        = flag.String("url", "", "absolute url of the endpoint under test (required)")
		method     = flag.String("method", "GET", "http method")
		name       = flag.String("name", "stampede", "name of the run")
		users      = flag.Int("users", 10, "concurrent simulated users")
		duration   = flag.Int("duration", 60, "test duration, seconds")
		timeout    = flag.Int("timeout", 30, "per request timeout, seconds")
		delayMin   = flag.Int64("delay-min", 0, "min delay between requests per user, milliseconds")
		delayMax   = flag.Int64("delay-max", 0, "max delay between requests per user, milliseconds")
		maxRPS     = flag.Int("max-rps", 0, "optional rps cap shared by all users, 0 disables")
		clientType = flag.String("client", stampede.NetHTTPClientType, "http|fasthttp")
		levels     = flag.String("levels", "", "comma separated user counts for progressive load, overrides -users")
		coolDown   = flag.Int("cooldown", 10, "cool-down between levels, seconds")
		outDir     = flag.String("out", "", "output directory for artifacts")
		jsonOut    = flag.Bool("json", true, "write json report artifact")
		csvOut     = flag.Bool("csv", false, "write csv artifacts")
		charts     = flag.Bool("charts", false, "render html charts")
		png        = flag.Bool("png", false, "render png charts")
		logLevel   = flag.String("log-level", "info", "debug|info|warn")
	)
	flag.Parse()

	cfg := &stampede.RunnerConfig{
		TargetUrl:          *url,
		Method:             *method,
		Name:               *name,
		Users:              *users,
		TestTimeSec:        *duration,
		AttackerTimeoutSec: *timeout,
		DelayMinMs:         *delayMin,
		DelayMaxMs:         *delayMax,
		MaxRPS:             *maxRPS,
		ClientType:         *clientType,
		LogLevel:           *logLevel,
		ReportOptions: &stampede.ReportOptions{
			JSON:   *jsonOut,
			CSV:    *csvOut,
			Charts: *charts,
			PNG:    *png,
			OutDir: *outDir,
		},
	}
	attacker := stampede.AttackerFromString(*clientType)
	if attacker == nil {
		fatal(fmt.Errorf("unknown client type: %s", *clientType))
	}

	if *levels != "" {
		userLevels, err := parseLevels(*levels)
		if err != nil {
			fatal(err)
		}
		if _, err := stampede.RunLevels(cfg, userLevels, time.Duration(*coolDown)*time.Second, attacker, nil); err != nil {
			fatal(err)
		}
		return
	}

	r, err := stampede.NewRunner(cfg, attacker, nil)
	if err != nil {
		fatal(err)
	}
	if _, err := r.Run(context.Background()); err != nil {
		fatal(err)
	}
}

func parseLevels(s string) ([]int, error) {
	out := make([]int, 0)
	for _, part := range strings.Split(s, ",") {
		u, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid load level %q: %v", part, err)
		}
		out = append(out, u)
	}
	return out, nil
}

func fatal(err error) {
	var cfgErr *stampede.ConfigError
	if errors.As(err, &cfgErr) {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", cfgErr)
		flag.Usage()
		os.Exit(2)
	}
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
