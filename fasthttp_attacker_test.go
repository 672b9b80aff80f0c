/*
 * // Copyright 2020 Insolar Network Ltd.
 * // All rights reserved.
 * // This material is licensed under the Insolar License version 1.0,
 * // available at https://github.com/insolar/assured-ledger/blob/master/LICENSE.md.
 */

package stampede

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFastHTTPAttackerOkTarget(t *testing.T) {
	startTestTarget(t, "localhost:9034", 20*time.Millisecond)
	r, err := NewRunner(&RunnerConfig{
		Name:        "fasthttp_ok",
		TargetUrl:   "http://localhost:9034/ok",
		Users:       3,
		TestTimeSec: 1,
		ClientType:  FastHTTPClientType,
	}, &FastHTTPAttacker{}, nil)
	require.NoError(t, err)
	report, err := r.Run(context.TODO())
	require.NoError(t, err)
	require.Equal(t, uint64(0), report.Failed)
	require.Equal(t, 1.0, report.SuccessRatio)
	require.Equal(t, int(report.Requests), report.StatusCodes["200"])
}

func TestFastHTTPAttackerUnreachableTarget(t *testing.T) {
	r, err := NewRunner(&RunnerConfig{
		Name:        "fasthttp_unreachable",
		TargetUrl:   "http://127.0.0.1:1/ok",
		Users:       1,
		TestTimeSec: 1,
		DelayMinMs:  20,
		DelayMaxMs:  20,
	}, &FastHTTPAttacker{}, nil)
	require.NoError(t, err)
	report, err := r.Run(context.TODO())
	require.NoError(t, err)
	require.Equal(t, uint64(0), report.OK)
	require.Equal(t, report.Requests, report.Failed)
	require.NotEmpty(t, report.Errors)
}

func TestAttackerRegistry(t *testing.T) {
	require.NotNil(t, AttackerFromString(NetHTTPClientType))
	require.NotNil(t, AttackerFromString(FastHTTPClientType))
	require.Nil(t, AttackerFromString("carrier-pigeon"))
}
