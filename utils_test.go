/*
 * // Copyright 2020 Insolar Network Ltd.
 * // All rights reserved.
 * // This material is licensed under the Insolar License version 1.0,
 * // available at https://github.com/insolar/assured-ledger/blob/master/LICENSE.md.
 */

package stampede

import (
	"io/ioutil"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMaxRPS(t *testing.T) {
	require.Equal(t, 1.0, MaxRPS(nil))
	require.Equal(t, 30.0, MaxRPS([]float64{12, 30, 7}))
}

func TestUserDelayRange(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	cfg := &RunnerConfig{DelayMinMs: 10, DelayMaxMs: 30}
	for i := 0; i < 100; i++ {
		d := userDelay(cfg, rnd)
		require.GreaterOrEqual(t, int64(d), int64(10*time.Millisecond))
		require.LessOrEqual(t, int64(d), int64(30*time.Millisecond))
	}
}

func TestUserDelayFixedAndDisabled(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	require.Equal(t, time.Duration(0), userDelay(&RunnerConfig{}, rnd))
	fixed := &RunnerConfig{DelayMinMs: 50, DelayMaxMs: 50}
	require.Equal(t, 50*time.Millisecond, userDelay(fixed, rnd))
}

func TestSharedDataSliceRotation(t *testing.T) {
	s := NewSharedDataSlice([]interface{}{"a", "b"})
	require.Equal(t, "a", s.Get())
	require.Equal(t, "b", s.Get())
	require.Equal(t, "a", s.Get())
	s.Add("c")
	require.Equal(t, "b", s.Get())
}

func TestCreateFileOrAppend(t *testing.T) {
	dir := tempOutDir(t)
	name := dir + "/appended.txt"
	f, err := CreateFileOrAppend(name)
	require.NoError(t, err)
	_, err = f.WriteString("one\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())
	f, err = CreateFileOrAppend(name)
	require.NoError(t, err)
	_, err = f.WriteString("two\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())
	d, err := ioutil.ReadFile(name)
	require.NoError(t, err)
	require.Equal(t, "one\ntwo\n", string(d))
}
