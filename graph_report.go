/*
 * // Copyright 2020 Insolar Network Ltd.
 * // All rights reserved.
 * // This material is licensed under the Insolar License version 1.0,
 * // available at https://github.com/insolar/assured-ledger/blob/master/LICENSE.md.
 */

package stampede

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strconv"

	"github.com/go-echarts/go-echarts/charts"
)

type ChartLine struct {
	XValues []float64
	YValues []float64
}

// parseScalingData reads per-level csv in format ${label},${users},${max_rps}
func parseScalingData(path string) (map[string]*ChartLine, error) {
	reader, closeFn, err := openCSV(path)
	if err != nil {
		return nil, err
	}
	defer closeFn()
	levels := make(map[string]*ChartLine)

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		if len(record) != 3 {
			return nil, errors.New("malformed csv")
		}

		label := record[0]
		users := record[1]
		maxRPS := record[2]
		if _, ok := levels[label]; !ok {
			levels[label] = &ChartLine{}
		}
		xValue, err := strconv.ParseFloat(users, 64)
		if err != nil {
			return nil, err
		}
		// users per level
		levels[label].XValues = append(levels[label].XValues, xValue)
		yValue, err := strconv.ParseFloat(maxRPS, 64)
		if err != nil {
			return nil, err
		}
		// max rps reached on that level
		levels[label].YValues = append(levels[label].YValues, yValue)
	}
	for _, v := range levels {
		if len(v.XValues) == 0 || len(v.YValues) == 0 {
			return nil, errors.New("empty csv, nothing to plot")
		}
	}
	return levels, nil
}

// parseTimelineData reads the per second aggregates csv written after a run.
func parseTimelineData(path string) (map[string]*ChartLine, error) {
	reader, closeFn, err := openCSV(path)
	if err != nil {
		return nil, err
	}
	defer closeFn()
	percs := map[string]*ChartLine{
		"rps": {},
		"p50": {},
		"p95": {},
		"p99": {},
	}
	// skip csv header
	_, _ = reader.Read()

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(record) != 6 {
			return nil, errors.New("malformed csv")
		}

		second := record[1]
		rps := record[2]
		p50 := record[3]
		p95 := record[4]
		p99 := record[5]

		xValue, err := strconv.ParseFloat(second, 64)
		if err != nil {
			return nil, err
		}
		// seconds
		percs["rps"].XValues = append(percs["rps"].XValues, xValue)
		percs["p50"].XValues = append(percs["p50"].XValues, xValue)
		percs["p95"].XValues = append(percs["p95"].XValues, xValue)
		percs["p99"].XValues = append(percs["p99"].XValues, xValue)
		yRPS, err := strconv.ParseFloat(rps, 64)
		if err != nil {
			return nil, err
		}
		// rps
		percs["rps"].YValues = append(percs["rps"].YValues, yRPS)
		yValue, err := strconv.ParseFloat(p50, 64)
		if err != nil {
			return nil, err
		}
		// percentiles
		percs["p50"].YValues = append(percs["p50"].YValues, yValue)
		yValue95, err := strconv.ParseFloat(p95, 64)
		if err != nil {
			return nil, err
		}
		percs["p95"].YValues = append(percs["p95"].YValues, yValue95)
		yValue99, err := strconv.ParseFloat(p99, 64)
		if err != nil {
			return nil, err
		}
		percs["p99"].YValues = append(percs["p99"].YValues, yValue99)
	}
	for _, v := range percs {
		if len(v.XValues) == 0 || len(v.YValues) == 0 {
			return nil, errors.New("empty csv, nothing to plot")
		}
	}
	return percs, nil
}

// TimelineChart builds run timeline html chart, rps and latency percentiles
// per second of the test.
func TimelineChart(path string, title string) (*charts.Line, error) {
	d, err := parseTimelineData(path)
	if err != nil {
		return nil, err
	}
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.DataZoomOpts{},
		charts.TitleOpts{Title: title},
		charts.XAxisOpts{Name: "Test time (sec)"},
		charts.YAxisOpts{Name: "Response (ms)"},
	)
	line.AddXAxis(d["rps"].XValues)
	for k, v := range d {
		line.AddYAxis(k, v.YValues, defaultMaxLabel(k)...)
	}
	return line, nil
}

// ScalingChart builds users to max rps html chart over progressive load levels.
func ScalingChart(path string, title string) (*charts.Line, error) {
	d, err := parseScalingData(path)
	if err != nil {
		return nil, err
	}
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.TitleOpts{Title: title},
		charts.XAxisOpts{Name: "Users"},
		charts.YAxisOpts{Name: "RPS"},
	)
	for k, v := range d {
		line.AddXAxis(v.XValues)
		line.AddYAxis(k, v.YValues, defaultMaxLabel(k)...)
	}
	return line, nil
}

func RenderEChart(data *charts.Line, name string) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer f.Close()
	return data.Render(f)
}

// draws max label for every line
func defaultMaxLabel(metric string) []charts.SeriesOptser {
	return []charts.SeriesOptser{
		charts.MPNameTypeItem{Name: "max " + metric, Type: "max"},
		charts.MPStyleOpts{Label: charts.LabelTextOpts{Show: true}},
	}
}

func openCSV(path string) (*csv.Reader, func(), error) {
	csvFile, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return csv.NewReader(csvFile), func() { _ = csvFile.Close() }, nil
}
