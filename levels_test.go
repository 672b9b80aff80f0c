/*
 * // Copyright 2020 Insolar Network Ltd.
 * // All rights reserved.
 * // This material is licensed under the Insolar License version 1.0,
 * // available at https://github.com/insolar/assured-ledger/blob/master/LICENSE.md.
 */

package stampede

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLevelsProgressiveRun(t *testing.T) {
	cfg := mockRunnerConfig(1, 1)
	results, err := RunLevels(cfg, []int{2, 4}, 0, NewControlAttackerMock(), nil)
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.Equal(t, 2, results[0].Users)
	require.Equal(t, 4, results[1].Users)
	for _, res := range results {
		require.Greater(t, res.Report.RPS, 0.0)
		require.Equal(t, res.Report.Requests, res.Report.OK+res.Report.Failed)
	}
}

func TestLevelsScalingArtifact(t *testing.T) {
	dir := tempOutDir(t)
	cfg := mockRunnerConfig(1, 1)
	cfg.Name = "scaling_test"
	cfg.ReportOptions = &ReportOptions{CSV: true, OutDir: dir}
	_, err := RunLevels(cfg, []int{1, 2}, 0, NewControlAttackerMock(), nil)
	require.NoError(t, err)

	csvName := filepath.Join(dir, "scaling_scaling_test.csv")
	levels, err := parseScalingData(csvName)
	require.NoError(t, err)
	require.Len(t, levels, 1)
	for _, line := range levels {
		require.Equal(t, []float64{1, 2}, line.XValues)
		require.Len(t, line.YValues, 2)
	}
}

func TestLevelsInvalidInput(t *testing.T) {
	cfg := mockRunnerConfig(1, 1)
	var cfgErr *ConfigError

	_, err := RunLevels(cfg, nil, 0, NewControlAttackerMock(), nil)
	require.Error(t, err)
	require.True(t, errors.As(err, &cfgErr))

	_, err = RunLevels(cfg, []int{1, 0}, 0, NewControlAttackerMock(), nil)
	require.Error(t, err)
	require.True(t, errors.As(err, &cfgErr))
}
