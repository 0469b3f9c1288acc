// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The goldchart authors

package overlay

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"goldchart/chartval"
)

func bar(o, h, l, c float64) chartval.Candle {
	return chartval.Candle{Open: o, High: h, Low: l, Close: c, Volume: 1000}
}

func TestComputeFvgBullish(t *testing.T) {
	candles := []chartval.Candle{
		bar(99, 100, 98, 100),   // A, high 100
		bar(101, 104, 100, 104), // B, displacement
		bar(105, 107, 105, 106), // C, low 105
	}
	gaps := ComputeFvg(candles)
	assert.Len(t, gaps, 1)
	assert.True(t, gaps[0].Bullish)
	assert.Equal(t, 2, gaps[0].Index)
	assert.Equal(t, 105.0, gaps[0].Top)
	assert.Equal(t, 100.0, gaps[0].Bottom)
}

func TestComputeFvgBearish(t *testing.T) {
	candles := []chartval.Candle{
		bar(106, 107, 105, 105), // A, low 105
		bar(104, 105, 101, 101), // B
		bar(100, 100, 98, 99),   // C, high 100
	}
	gaps := ComputeFvg(candles)
	assert.Len(t, gaps, 1)
	assert.False(t, gaps[0].Bullish)
	assert.Equal(t, 105.0, gaps[0].Top)
	assert.Equal(t, 100.0, gaps[0].Bottom)
}

func TestComputeFvgOverlapNoGap(t *testing.T) {
	candles := []chartval.Candle{
		bar(99, 102, 98, 101),
		bar(101, 103, 100, 102),
		bar(102, 104, 101, 103), // low 101 does not clear high 102
	}
	assert.Empty(t, ComputeFvg(candles))
}

func TestComputeFvgShortSeries(t *testing.T) {
	assert.Empty(t, ComputeFvg(nil))
	assert.Empty(t, ComputeFvg([]chartval.Candle{bar(99, 100, 98, 100), bar(105, 106, 104, 105)}))
}
