/*
 * // Copyright 2020 Insolar Network Ltd.
 * // All rights reserved.
 * // This material is licensed under the Insolar License version 1.0,
 * // available at https://github.com/insolar/assured-ledger/blob/master/LICENSE.md.
 */

package stampede

import (
	"context"

	"github.com/valyala/fasthttp"
)

func init() {
	RegisterAttacker(FastHTTPClientType, &FastHTTPAttacker{})
}

// FastHTTPAttacker issues requests with the runner's fasthttp client, useful
// when the generator itself must not be the bottleneck.
type FastHTTPAttacker struct {
	*Runner
}

func (a *FastHTTPAttacker) Clone(r *Runner) Attack {
	return &FastHTTPAttacker{Runner: r}
}

func (a *FastHTTPAttacker) Setup(c RunnerConfig) error {
	return nil
}

func (a *FastHTTPAttacker) Do(_ context.Context) DoResult {
	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)
	req.Header.SetMethod(a.Cfg.Method)
	req.SetRequestURI(a.Cfg.TargetUrl)
	if err := a.FastHTTPClient.Do(req, resp); err != nil {
		return DoResult{RequestLabel: a.Name, Error: err.Error()}
	}
	return DoResult{
		RequestLabel: a.Name,
		StatusCode:   resp.StatusCode(),
		BytesOut:     int64(len(resp.Body())),
	}
}

func (a *FastHTTPAttacker) Teardown() error {
	return nil
}
