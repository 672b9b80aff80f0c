/*
 * // Copyright 2020 Insolar Network Ltd.
 * // All rights reserved.
 * // This material is licensed under the Insolar License version 1.0,
 * // available at https://github.com/insolar/assured-ledger/blob/master/LICENSE.md.
 */

package stampede

import (
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
)

var (
	sigs = make(chan os.Signal, 1)
)

// handleShutdownSignal exits on SIGINT/SIGTERM while a run is active, with an
// optional goroutine dump. done must be closed when the run finishes.
func (r *Runner) handleShutdownSignal(done <-chan struct{}) {
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-done:
			return
		case <-sigs:
			r.L.Infof("exit signal received, exiting")
			if r.Cfg.GoroutinesDump {
				buf := make([]byte, 1<<20)
				stacklen := runtime.Stack(buf, true)
				r.L.Infof("*** goroutine dump...\n%s\n*** end\n", buf[:stacklen])
			}
			os.Exit(1)
		}
	}()
}

// CreateFileOrReplace truncates fname if it exists, creating parent dirs is
// the caller's concern.
func CreateFileOrReplace(fname string) (*os.File, error) {
	fpath, err := filepath.Abs(fname)
	if err != nil {
		return nil, err
	}
	return os.Create(fpath)
}

func CreateFileOrAppend(fname string) (*os.File, error) {
	fpath, err := filepath.Abs(fname)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(fpath); err != nil {
		return os.Create(fpath)
	}
	return os.OpenFile(fpath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
}

// MaxRPS max rate among per-level results
func MaxRPS(array []float64) float64 {
	if len(array) == 0 {
		return 1
	}
	var max = array[0]
	for _, value := range array {
		if max < value {
			max = value
		}
	}
	return max
}
