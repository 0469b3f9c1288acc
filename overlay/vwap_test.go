// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The goldchart authors

package overlay

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"goldchart/chartval"
)

func TestComputeVwap(t *testing.T) {
	candles := []chartval.Candle{
		{High: 102, Low: 98, Close: 100, Volume: 100},  // typical 100
		{High: 112, Low: 108, Close: 110, Volume: 300}, // typical 110
	}
	vwap := ComputeVwap(candles)
	assert.Len(t, vwap, 2)
	assert.InDelta(t, 100, vwap[0], chartval.NearZero)
	// (100*100 + 110*300) / 400
	assert.InDelta(t, 107.5, vwap[1], chartval.NearZero)
}

func TestComputeVwapZeroVolume(t *testing.T) {
	candles := []chartval.Candle{
		{High: 102, Low: 98, Close: 100, Volume: 0},
		{High: 104, Low: 100, Close: 102, Volume: 0},
	}
	vwap := ComputeVwap(candles)
	// zero volume falls back to the close instead of dividing by zero
	assert.Equal(t, 100.0, vwap[0])
	assert.Equal(t, 102.0, vwap[1])
}

func TestComputeVwapCumulative(t *testing.T) {
	candles := make([]chartval.Candle, 50)
	for i := range candles {
		candles[i] = chartval.Candle{High: 101, Low: 99, Close: 100, Volume: 10}
	}
	vwap := ComputeVwap(candles)
	// constant prices keep the running average constant
	for _, v := range vwap {
		assert.InDelta(t, 100, v, chartval.NearZero)
	}
}
