// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The goldchart authors

package chartplot

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"goldchart/chartval"
)

var testFrame = Frame{Left: 50, Top: 10, Right: 750, Bottom: 560}

func rangedCandles(low, high float64, n int) []chartval.Candle {
	candles := make([]chartval.Candle, n)
	for i := range candles {
		candles[i] = chartval.Candle{Open: low, High: high, Low: low, Close: high}
	}
	return candles
}

func TestPriceRoundTrip(t *testing.T) {
	v := NewViewport()
	m := NewMapper(testFrame, v, rangedCandles(1990, 2040, 60))
	for p := m.RangeMin; p <= m.RangeMax; p += m.PriceRange() / 37 {
		y := m.PriceToY(p)
		assert.InDelta(t, p, m.YToPrice(y), 1e-9)
	}
}

func TestBarIndexRoundTrip(t *testing.T) {
	v := NewViewport()
	m := NewMapper(testFrame, v, rangedCandles(1990, 2040, 100))
	for i := 0; i < v.VisibleBars(); i++ {
		x := m.BarIndexToX(i)
		assert.Equal(t, i, m.XToBarIndex(x))
	}
}

func TestProjectionOrientation(t *testing.T) {
	m := NewMapper(testFrame, NewViewport(), rangedCandles(1990, 2040, 60))
	// higher price maps to smaller y
	assert.Less(t, m.PriceToY(2040), m.PriceToY(1990))
	assert.InDelta(t, testFrame.Bottom, m.PriceToY(m.RangeMin), 1e-9)
	assert.InDelta(t, testFrame.Top, m.PriceToY(m.RangeMax), 1e-9)
}

func TestDegenerateRangeGuard(t *testing.T) {
	// every candle flat at the same price
	m := NewMapper(testFrame, NewViewport(), rangedCandles(2000, 2000, 60))
	assert.GreaterOrEqual(t, m.PriceRange(), 1.0)

	prevY := math.Inf(1)
	for p := m.RangeMin; p <= m.RangeMax; p += m.PriceRange() / 20 {
		y := m.PriceToY(p)
		assert.False(t, math.IsNaN(y))
		assert.False(t, math.IsInf(y, 0))
		assert.Less(t, y, prevY)
		prevY = y
	}
}

func TestDegenerateRangeZeroPrice(t *testing.T) {
	m := NewMapper(testFrame, NewViewport(), rangedCandles(0, 0, 10))
	assert.GreaterOrEqual(t, m.PriceRange(), 10.0)
	assert.False(t, math.IsNaN(m.PriceToY(0)))
}

func TestEmptySeriesMapper(t *testing.T) {
	m := NewMapper(testFrame, NewViewport(), nil)
	assert.False(t, math.IsNaN(m.PriceToY(2000)))
	assert.Greater(t, m.PriceRange(), 0.0)
}

func TestPricePanShiftsRange(t *testing.T) {
	v := NewViewport()
	base := NewMapper(testFrame, v, rangedCandles(1990, 2040, 60))
	v.Pan(0, 10)
	panned := NewMapper(testFrame, v, rangedCandles(1990, 2040, 60))
	assert.InDelta(t, base.RangeMin+10, panned.RangeMin, 1e-9)
	assert.InDelta(t, base.PriceRange(), panned.PriceRange(), 1e-9)
}

func TestDrawingPriceStableAcrossBarPan(t *testing.T) {
	v := NewViewport()
	candles := rangedCandles(1990, 2040, 120)
	before := NewMapper(testFrame, v, candles)
	yBefore := before.PriceToY(2005)

	v.PanCommitted(10, 0)
	after := NewMapper(testFrame, v, candles)
	// a horizontal drawing stores price, so its y does not move when
	// only the bar pan changes
	assert.InDelta(t, yBefore, after.PriceToY(2005), 1e-9)
}
