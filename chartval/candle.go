// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The goldchart authors

package chartval

import (
	"time"
)

// Candle is a single OHLC bar. Prices are plain floats; the wire layer
// parses decimals and converts once (see chartapi).
// The last candle of a buffer may be updated in place while its time
// bucket is still open; all earlier candles are final.
type Candle struct {
	Open            float64
	High            float64
	Low             float64
	Close           float64
	Volume          float64
	Timestamp       time.Time
	IcebergDetected bool
}

// IsBullish reports whether the bar closed at or above its open.
// Flat bars count as bullish, matching IsGreenCandle.
func (c Candle) IsBullish() bool {
	return IsGreenCandle(c.Open, c.Close)
}

// Range is the full high-low extent of the bar.
func (c Candle) Range() float64 {
	return c.High - c.Low
}

// TypicalPrice is (high+low+close)/3, the price used for VWAP.
func (c Candle) TypicalPrice() float64 {
	return (c.High + c.Low + c.Close) / 3
}

// Valid checks the OHLC ordering invariant.
func (c Candle) Valid() bool {
	lo := c.Open
	hi := c.Close
	if lo > hi {
		lo, hi = hi, lo
	}
	return c.Low <= lo+NearZero && hi <= c.High+NearZero
}

// CandleList sorts by timestamp.
type CandleList []Candle

func (x CandleList) Len() int           { return len(x) }
func (x CandleList) Less(i, j int) bool { return x[i].Timestamp.Before(x[j].Timestamp) }
func (x CandleList) Swap(i, j int)      { x[i], x[j] = x[j], x[i] }

// PriceExtent returns the min low and max high over the given candles.
// ok is false for an empty slice.
func PriceExtent(candles []Candle) (min, max float64, ok bool) {
	if len(candles) == 0 {
		return 0, 0, false
	}
	min = candles[0].Low
	max = candles[0].High
	for _, c := range candles[1:] {
		if c.Low < min {
			min = c.Low
		}
		if c.High > max {
			max = c.High
		}
	}
	return min, max, true
}

// MaxVolume returns the largest volume over the given candles, with a
// floor so that empty or zero-volume data never collapses bar scaling.
func MaxVolume(candles []Candle, floor float64) float64 {
	max := floor
	for _, c := range candles {
		if c.Volume > max {
			max = c.Volume
		}
	}
	return max
}
