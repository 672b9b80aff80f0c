/*
 * // Copyright 2020 Insolar Network Ltd.
 * // All rights reserved.
 * // This material is licensed under the Insolar License version 1.0,
 * // available at https://github.com/insolar/assured-ledger/blob/master/LICENSE.md.
 */

package stampede

import (
	"errors"
	"fmt"
	"strings"
)

var errAttackerSetup = errors.New("error when setup attacker")

// ConfigError is returned before any request is issued when RunnerConfig
// validation fails.
type ConfigError struct {
	Problems []string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid runner config: %s", strings.Join(e.Problems, "; "))
}

// ReportWriteError wraps a failure to persist a report artifact. The in-memory
// report stays valid, the error is surfaced as a warning only.
type ReportWriteError struct {
	Path string
	Err  error
}

func (e *ReportWriteError) Error() string {
	return fmt.Sprintf("failed to write report artifact %s: %v", e.Path, e.Err)
}

func (e *ReportWriteError) Unwrap() error {
	return e.Err
}
