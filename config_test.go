/*
 * // Copyright 2020 Insolar Network Ltd.
 * // All rights reserved.
 * // This material is licensed under the Insolar License version 1.0,
 * // available at https://github.com/insolar/assured-ledger/blob/master/LICENSE.md.
 */

package stampede

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfigValidateProblems(t *testing.T) {
	cases := []struct {
		name     string
		cfg      RunnerConfig
		problems int
	}{
		{
			name:     "empty config",
			cfg:      RunnerConfig{},
			problems: 3,
		},
		{
			name: "valid minimal",
			cfg: RunnerConfig{
				TargetUrl:   "http://localhost:9031/ok",
				Users:       1,
				TestTimeSec: 1,
			},
			problems: 0,
		},
		{
			name: "relative url",
			cfg: RunnerConfig{
				TargetUrl:   "/just/a/path",
				Users:       1,
				TestTimeSec: 1,
			},
			problems: 1,
		},
		{
			name: "no users",
			cfg: RunnerConfig{
				TargetUrl:   "http://localhost:9031/ok",
				Users:       0,
				TestTimeSec: 1,
			},
			problems: 1,
		},
		{
			name: "no test time",
			cfg: RunnerConfig{
				TargetUrl:   "http://localhost:9031/ok",
				Users:       1,
				TestTimeSec: 0,
			},
			problems: 1,
		},
		{
			name: "bad delay range",
			cfg: RunnerConfig{
				TargetUrl:   "http://localhost:9031/ok",
				Users:       1,
				TestTimeSec: 1,
				DelayMinMs:  100,
				DelayMaxMs:  50,
			},
			problems: 1,
		},
		{
			name: "negative timeout and rps",
			cfg: RunnerConfig{
				TargetUrl:          "http://localhost:9031/ok",
				Users:              1,
				TestTimeSec:        1,
				AttackerTimeoutSec: -1,
				MaxRPS:             -1,
			},
			problems: 2,
		},
		{
			name: "unknown client type",
			cfg: RunnerConfig{
				TargetUrl:   "http://localhost:9031/ok",
				Users:       1,
				TestTimeSec: 1,
				ClientType:  "carrier-pigeon",
			},
			problems: 1,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Len(t, tc.cfg.Validate(), tc.problems)
		})
	}
}

func TestConfigDefaults(t *testing.T) {
	cfg := &RunnerConfig{
		TargetUrl:   "http://localhost:9031/ok",
		Users:       1,
		TestTimeSec: 1,
		Method:      "post",
	}
	cfg.DefaultCfgValues()
	require.Equal(t, "POST", cfg.Method)
	require.Equal(t, "runner", cfg.Name)
	require.Equal(t, DefaultAttackerTimeoutSec, cfg.AttackerTimeoutSec)
	require.Equal(t, NetHTTPClientType, cfg.ClientType)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, "console", cfg.LogEncoding)
	require.NotNil(t, cfg.ReportOptions)
}
