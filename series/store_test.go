// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The goldchart authors

package series

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"goldchart/chartplot"
	"goldchart/chartval"
)

func makeCandles(n int, startPrice float64) []chartval.Candle {
	t0 := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	candles := make([]chartval.Candle, n)
	for i := range candles {
		p := startPrice + float64(i)
		candles[i] = chartval.Candle{
			Open:      p,
			High:      p + 2,
			Low:       p - 2,
			Close:     p + 1,
			Volume:    1000,
			Timestamp: t0.Add(time.Duration(i) * time.Minute),
		}
	}
	return candles
}

func TestAppendEvictsOldest(t *testing.T) {
	s := NewStore(100)
	for _, c := range makeCandles(100, 2000) {
		s.Append("1m", c)
	}
	assert.Equal(t, 100, s.Len("1m"))

	newest := chartval.Candle{Open: 2200, High: 2205, Low: 2199, Close: 2204, Volume: 500,
		Timestamp: time.Date(2024, 3, 1, 2, 0, 0, 0, time.UTC)}
	s.Append("1m", newest)
	assert.Equal(t, 100, s.Len("1m"))

	visible, start := s.VisibleSlice("1m", chartplot.NewViewport())
	assert.Equal(t, 0, start)
	assert.Len(t, visible, 100)
	// oldest evicted, newest at index 99
	assert.Equal(t, 2001.0, visible[0].Open)
	assert.Equal(t, newest, visible[99])
}

func TestUpdateLast(t *testing.T) {
	s := NewStore(100)
	// a tick before any candle is dropped
	s.UpdateLast("1m", Tick{Price: 2000, Volume: 10})
	assert.Equal(t, 0, s.Len("1m"))

	s.Append("1m", chartval.Candle{Open: 2000, High: 2002, Low: 1999, Close: 2001, Volume: 100})
	s.UpdateLast("1m", Tick{Price: 2005, Volume: 10})
	candles := s.Candles("1m")
	assert.Equal(t, 2005.0, candles[0].Close)
	assert.Equal(t, 2005.0, candles[0].High)
	assert.Equal(t, 110.0, candles[0].Volume)

	s.UpdateLast("1m", Tick{Price: 1995, Volume: 5})
	candles = s.Candles("1m")
	assert.Equal(t, 1995.0, candles[0].Close)
	assert.Equal(t, 1995.0, candles[0].Low)
	assert.Equal(t, 2005.0, candles[0].High)
}

func TestReplaceTrimsToCap(t *testing.T) {
	s := NewStore(100)
	s.Replace("5m", makeCandles(150, 2000))
	assert.Equal(t, 100, s.Len("5m"))
	candles := s.Candles("5m")
	assert.Equal(t, 2050.0, candles[0].Open)
}

func TestVisibleSliceWithPan(t *testing.T) {
	s := NewStore(100)
	s.Replace("1m", makeCandles(100, 2000))
	v := chartplot.NewViewport()
	v.PanCommitted(10, 0)
	visible, start := s.VisibleSlice("1m", v)
	assert.Equal(t, 0, start)
	// panned back by 10 bars, newest 10 drop off the right edge
	assert.Len(t, visible, 90)
	assert.Equal(t, 2089.0, visible[len(visible)-1].Open)
}

func TestFetchFailureResilience(t *testing.T) {
	s := NewStore(100)
	s.Replace("1m", makeCandles(50, 2000))
	before := s.Candles("1m")

	assert.Equal(t, StatusError, s.ReportFailure())
	assert.Equal(t, StatusError, s.ReportFailure())
	assert.Equal(t, StatusDisconnected, s.ReportFailure())

	after := s.Candles("1m")
	assert.Empty(t, cmp.Diff(before, after))

	s.ReportSuccess()
	assert.Equal(t, StatusConnected, s.Status())
}

func TestPerTimeframeViewport(t *testing.T) {
	s := NewStore(100)
	v := chartplot.NewViewport()
	v.Zoom(1.1)
	v.PanCommitted(7, 3.5)
	s.SaveViewport("5m", v)

	restored := s.SavedViewport("5m")
	assert.Equal(t, v, restored)
	// other timeframes stay at the default view
	assert.Equal(t, chartplot.NewViewport(), s.SavedViewport("1m"))
}

func TestHasNewCandle(t *testing.T) {
	s := NewStore(100)
	assert.False(t, s.HasNewCandle("1m", time.Now()))
	s.Append("1m", chartval.Candle{Open: 2000, High: 2001, Low: 1999, Close: 2000})
	assert.True(t, s.HasNewCandle("1m", time.Now()))
	assert.False(t, s.HasNewCandle("1m", time.Now().Add(3*time.Second)))
}
