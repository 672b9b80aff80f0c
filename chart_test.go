/*
 * // Copyright 2020 Insolar Network Ltd.
 * // All rights reserved.
 * // This material is licensed under the Insolar License version 1.0,
 * // available at https://github.com/insolar/assured-ledger/blob/master/LICENSE.md.
 */

package stampede

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeCSVFixture(t *testing.T, path string, rows [][]string) {
	f, err := os.Create(path)
	require.NoError(t, err)
	w := csv.NewWriter(f)
	require.NoError(t, w.WriteAll(rows))
	require.NoError(t, f.Close())
}

func secondsFixture(t *testing.T, dir string) string {
	path := filepath.Join(dir, "seconds_fixture.csv")
	writeCSVFixture(t, path, [][]string{
		SecondsCsvHeader,
		{"test", "0", "120", "12", "40", "55"},
		{"test", "1", "140", "11", "38", "49"},
		{"test", "2", "135", "14", "42", "60"},
	})
	return path
}

func scalingFixture(t *testing.T, dir string) string {
	path := filepath.Join(dir, "scaling_fixture.csv")
	writeCSVFixture(t, path, [][]string{
		{"test", "5", "120.00"},
		{"test", "10", "220.50"},
		{"test", "20", "310.20"},
	})
	return path
}

func TestTimelineChartFromCSV(t *testing.T) {
	dir := tempOutDir(t)
	path := secondsFixture(t, dir)
	line, err := TimelineChart(path, "test")
	require.NoError(t, err)
	require.NotNil(t, line)

	out := filepath.Join(dir, "timeline.html")
	require.NoError(t, RenderEChart(line, out))
	_, err = os.Stat(out)
	require.NoError(t, err)
}

func TestScalingChartFromCSV(t *testing.T) {
	dir := tempOutDir(t)
	path := scalingFixture(t, dir)
	line, err := ScalingChart(path, "test")
	require.NoError(t, err)
	require.NotNil(t, line)
}

func TestScalingPNGChartFromCSV(t *testing.T) {
	dir := tempOutDir(t)
	path := scalingFixture(t, dir)
	chartData, err := ScalingPNGChart(path)
	require.NoError(t, err)

	out := filepath.Join(dir, "scaling.png")
	require.NoError(t, RenderChart(chartData, out))
	_, err = os.Stat(out)
	require.NoError(t, err)
}

func TestTimelinePNGChartFromCSV(t *testing.T) {
	dir := tempOutDir(t)
	path := secondsFixture(t, dir)
	chartData, err := TimelinePNGChart("test", path)
	require.NoError(t, err)
	require.NotNil(t, chartData)
}

func TestChartsMalformedCSV(t *testing.T) {
	dir := tempOutDir(t)
	path := filepath.Join(dir, "malformed.csv")
	writeCSVFixture(t, path, [][]string{
		{"only", "two"},
	})
	_, err := TimelineChart(path, "test")
	require.Error(t, err)
	_, err = ScalingChart(path, "test")
	require.Error(t, err)
}

func TestChartsMissingCSV(t *testing.T) {
	_, err := TimelineChart("/nonexistent.csv", "test")
	require.Error(t, err)
}
