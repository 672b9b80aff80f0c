/*
 * // Copyright 2020 Insolar Network Ltd.
 * // All rights reserved.
 * // This material is licensed under the Insolar License version 1.0,
 * // available at https://github.com/insolar/assured-ledger/blob/master/LICENSE.md.
 */

package stampede

import (
	"log"
	"time"

	"github.com/valyala/fasthttp"
)

type FastHTTPClient struct {
	dump    bool
	timeout time.Duration
	fasthttp.Client
}

// NewLoggingFastHTTPClient creates new client with debug http
func NewLoggingFastHTTPClient(debug bool, timeoutSec int) *FastHTTPClient {
	return &FastHTTPClient{
		debug,
		time.Duration(timeoutSec) * time.Second,
		fasthttp.Client{
			MaxConnsPerHost:           65535,
			MaxIdleConnDuration:       90 * time.Second,
			MaxIdemponentCallAttempts: 0,
		},
	}
}

func (m *FastHTTPClient) Do(req *fasthttp.Request, resp *fasthttp.Response) error {
	if m.dump {
		log.Printf(RequestHeader, req.String())
	}
	if err := m.Client.DoDeadline(req, resp, time.Now().Add(m.timeout)); err != nil {
		return err
	}
	if m.dump {
		log.Printf(ResponseHeader, resp.String())
	}
	return nil
}
