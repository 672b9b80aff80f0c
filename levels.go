/*
 * // Copyright 2020 Insolar Network Ltd.
 * // All rights reserved.
 * // This material is licensed under the Insolar License version 1.0,
 * // available at https://github.com/insolar/assured-ledger/blob/master/LICENSE.md.
 */

package stampede

import (
	"context"
	"encoding/csv"
	"fmt"
	"path/filepath"
	"strconv"
	"time"
)

const (
	ScalingLogFile  = "scaling_%s.csv"
	ScalingHTMLFile = "scaling_%s.html"
	ScalingPNGFile  = "scaling_%s.png"
)

// LevelResult is the outcome of one load level of a progressive run.
type LevelResult struct {
	Users  int
	Report *Report
}

// RunLevels is the progressive load driver: it repeats a full run once per
// user count with a cool-down between levels, then writes the scaling csv
// and optional charts. Each level is an independent run of the same core
// operation, nothing is shared between levels.
func RunLevels(cfg *RunnerConfig, users []int, coolDown time.Duration, a Attack, data interface{}) ([]LevelResult, error) {
	if len(users) == 0 {
		return nil, &ConfigError{Problems: []string{"please set at least one load level"}}
	}
	for _, u := range users {
		if u <= 0 {
			return nil, &ConfigError{Problems: []string{"please set users > 0 for every load level"}}
		}
	}
	results := make([]LevelResult, 0, len(users))
	for i, u := range users {
		levelCfg := *cfg
		levelCfg.Users = u
		if cfg.Name != "" {
			levelCfg.Name = fmt.Sprintf("%s_u%d", cfg.Name, u)
		}
		r, err := NewRunner(&levelCfg, a, data)
		if err != nil {
			return nil, err
		}
		report, err := r.Run(context.Background())
		if err != nil {
			return nil, err
		}
		results = append(results, LevelResult{Users: u, Report: report})
		if i < len(users)-1 && coolDown > 0 {
			r.L.Infof("cooling down for %s before next level", coolDown)
			time.Sleep(coolDown)
		}
	}
	if cfg.ReportOptions != nil && (cfg.ReportOptions.CSV || cfg.ReportOptions.Charts || cfg.ReportOptions.PNG) {
		if err := writeScalingArtifacts(cfg, results); err != nil {
			return results, err
		}
	}
	return results, nil
}

func writeScalingArtifacts(cfg *RunnerConfig, results []LevelResult) error {
	out := cfg.ReportOptions.OutDir
	csvName := filepath.Join(out, fmt.Sprintf(ScalingLogFile, cfg.Name))
	f, err := CreateFileOrReplace(csvName)
	if err != nil {
		return &ReportWriteError{Path: csvName, Err: err}
	}
	w := csv.NewWriter(f)
	for _, res := range results {
		_ = w.Write([]string{
			cfg.Name,
			strconv.Itoa(res.Users),
			strconv.FormatFloat(res.Report.RPS, 'f', 2, 64),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return &ReportWriteError{Path: csvName, Err: err}
	}
	if err := f.Close(); err != nil {
		return &ReportWriteError{Path: csvName, Err: err}
	}
	if cfg.ReportOptions.Charts {
		htmlName := filepath.Join(out, fmt.Sprintf(ScalingHTMLFile, cfg.Name))
		chart, err := ScalingChart(csvName, cfg.Name)
		if err != nil {
			return &ReportWriteError{Path: htmlName, Err: err}
		}
		if err := RenderEChart(chart, htmlName); err != nil {
			return &ReportWriteError{Path: htmlName, Err: err}
		}
	}
	if cfg.ReportOptions.PNG {
		pngName := filepath.Join(out, fmt.Sprintf(ScalingPNGFile, cfg.Name))
		chart, err := ScalingPNGChart(csvName)
		if err != nil {
			return &ReportWriteError{Path: pngName, Err: err}
		}
		if err := RenderChart(chart, pngName); err != nil {
			return &ReportWriteError{Path: pngName, Err: err}
		}
	}
	return nil
}
