// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The goldchart authors

package chartval

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCandleValid(t *testing.T) {
	c := Candle{Open: 2000, High: 2010, Low: 1995, Close: 2005}
	assert.True(t, c.Valid())
	c = Candle{Open: 2000, High: 1999, Low: 1995, Close: 1998}
	assert.False(t, c.Valid())
	// flat bar
	c = Candle{Open: 2000, High: 2000, Low: 2000, Close: 2000}
	assert.True(t, c.Valid())
}

func TestCandleIsBullish(t *testing.T) {
	assert.True(t, Candle{Open: 2000, Close: 2001}.IsBullish())
	assert.True(t, Candle{Open: 2000, Close: 2000}.IsBullish())
	assert.False(t, Candle{Open: 2001, Close: 2000}.IsBullish())
}

func TestTypicalPrice(t *testing.T) {
	c := Candle{High: 2010, Low: 1990, Close: 2000}
	assert.InDelta(t, 2000, c.TypicalPrice(), NearZero)
}

func TestPriceExtent(t *testing.T) {
	_, _, ok := PriceExtent(nil)
	assert.False(t, ok)
	candles := []Candle{
		{High: 2010, Low: 1995},
		{High: 2020, Low: 1990},
		{High: 2005, Low: 2000},
	}
	min, max, ok := PriceExtent(candles)
	assert.True(t, ok)
	assert.Equal(t, 1990.0, min)
	assert.Equal(t, 2020.0, max)
}

func TestMaxVolume(t *testing.T) {
	assert.Equal(t, 1.0, MaxVolume(nil, 1))
	candles := []Candle{{Volume: 100}, {Volume: 2500}, {Volume: 900}}
	assert.Equal(t, 2500.0, MaxVolume(candles, 1))
}

func TestCandleListSort(t *testing.T) {
	t0 := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	list := CandleList{
		{Timestamp: t0.Add(2 * time.Minute)},
		{Timestamp: t0},
		{Timestamp: t0.Add(time.Minute)},
	}
	assert.True(t, list.Less(1, 2))
	assert.False(t, list.Less(0, 1))
	list.Swap(0, 1)
	assert.True(t, list[0].Timestamp.Equal(t0))
}
