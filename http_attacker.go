/*
 * // Copyright 2020 Insolar Network Ltd.
 * // All rights reserved.
 * // This material is licensed under the Insolar License version 1.0,
 * // available at https://github.com/insolar/assured-ledger/blob/master/LICENSE.md.
 */

package stampede

import (
	"context"
	"io"
	"io/ioutil"
	"net/http"
)

func init() {
	RegisterAttacker(NetHTTPClientType, &HTTPAttacker{})
}

// HTTPAttacker is the default attacker, one request per Do call with the
// runner's net/http client. The response body is always drained so keep-alive
// connections are reused.
type HTTPAttacker struct {
	*Runner
}

func (a *HTTPAttacker) Clone(r *Runner) Attack {
	return &HTTPAttacker{Runner: r}
}

func (a *HTTPAttacker) Setup(c RunnerConfig) error {
	return nil
}

func (a *HTTPAttacker) Do(ctx context.Context) DoResult {
	req, err := http.NewRequestWithContext(ctx, a.Cfg.Method, a.Cfg.TargetUrl, nil)
	if err != nil {
		return DoResult{RequestLabel: a.Name, Error: err.Error()}
	}
	res, err := a.HTTPClient.Do(req)
	if err != nil {
		return DoResult{RequestLabel: a.Name, Error: err.Error()}
	}
	defer res.Body.Close()
	n, err := io.Copy(ioutil.Discard, res.Body)
	if err != nil {
		return DoResult{
			RequestLabel: a.Name,
			StatusCode:   res.StatusCode,
			Error:        err.Error(),
		}
	}
	return DoResult{
		RequestLabel: a.Name,
		StatusCode:   res.StatusCode,
		BytesOut:     n,
	}
}

func (a *HTTPAttacker) Teardown() error {
	return nil
}
