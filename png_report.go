/*
 * // Copyright 2020 Insolar Network Ltd.
 * // All rights reserved.
 * // This material is licensed under the Insolar License version 1.0,
 * // available at https://github.com/insolar/assured-ledger/blob/master/LICENSE.md.
 */

package stampede

import (
	"os"
	"sort"

	"github.com/wcharczuk/go-chart"
)

// ScalingPNGChart renders the progressive levels chart as png, data must be
// written in csv in format ${label},${users},${max_rps}
func ScalingPNGChart(path string) (*chart.Chart, error) {
	levels, err := parseScalingData(path)
	if err != nil {
		return nil, err
	}
	var series []chart.Series
	var colorIndex int
	var allYValues []float64
	for key, value := range levels {
		sort.Float64s(value.XValues)
		allYValues = append(allYValues, value.YValues...)
		series = append(series, chart.ContinuousSeries{
			Name: key,
			Style: chart.Style{
				StrokeColor: chart.GetDefaultColor(colorIndex).WithAlpha(255),
				DotWidth:    3.0,
				StrokeWidth: 3,
			},
			XValues: value.XValues,
			YValues: value.YValues,
		})
		colorIndex++
	}
	max := MaxRPS(allYValues)
	chartData := &chart.Chart{
		XAxis: chart.XAxis{
			Name: "Users",
		},
		YAxis: chart.YAxis{
			Name: "Max RPS",
			Range: &chart.ContinuousRange{
				Min: 0.0,
				Max: max,
			},
		},
		Series: series,
	}
	chartData.Elements = []chart.Renderable{
		chart.LegendLeft(chartData),
	}
	return chartData, nil
}

// TimelinePNGChart renders rps and latency percentiles per second as png.
func TimelinePNGChart(chartTitle string, path string) (*chart.Chart, error) {
	percs, err := parseTimelineData(path)
	if err != nil {
		return nil, err
	}
	var series []chart.Series
	var colorIndex int
	for key, value := range percs {
		sort.Float64s(value.XValues)
		line := chart.ContinuousSeries{
			Name: key,
			Style: chart.Style{
				StrokeColor: chart.GetDefaultColor(colorIndex).WithAlpha(255),
				DotWidth:    3.0,
				StrokeWidth: 3,
			},
			XValues: value.XValues,
			YValues: value.YValues,
		}
		if key == "rps" {
			line.YAxis = chart.YAxisSecondary
		}
		series = append(series, line)
		colorIndex++
	}

	chartData := &chart.Chart{
		Title: chartTitle,
		Background: chart.Style{
			Padding: chart.Box{
				Top:  20,
				Left: 150,
			},
		},
		XAxis: chart.XAxis{
			Name: "Test time (Seconds)",
		},
		YAxis: chart.YAxis{
			Name: "Response time (Ms)",
		},
		YAxisSecondary: chart.YAxis{
			Name: "RPS",
		},
		Series: series,
		Width:  800,
		Height: 600,
	}
	chartData.Elements = []chart.Renderable{
		chart.LegendLeft(chartData),
	}
	return chartData, nil
}

func RenderChart(chartData *chart.Chart, fileName string) error {
	file, err := os.Create(fileName)
	if err != nil {
		return err
	}
	defer file.Close()
	return chartData.Render(chart.PNG, file)
}
