// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The goldchart authors

package overlay

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"goldchart/chartval"
)

func TestComputeSessionBands(t *testing.T) {
	calendar := chartval.NewSessionCalendar()
	day := time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC) // Wednesday
	var candles []chartval.Candle
	for h := 6; h <= 14; h++ {
		candles = append(candles, chartval.Candle{
			Open: 2000, High: 2001, Low: 1999, Close: 2000,
			Timestamp: day.Add(time.Duration(h) * time.Hour),
		})
	}
	bands := ComputeSessionBands(candles, calendar)
	assert.Len(t, bands, 3)
	assert.Equal(t, chartval.SessionAsia, bands[0].Session)
	assert.Equal(t, 0, bands[0].StartIndex)
	assert.Equal(t, 1, bands[0].EndIndex)
	assert.Equal(t, chartval.SessionLondon, bands[1].Session)
	assert.Equal(t, 2, bands[1].StartIndex)
	assert.Equal(t, 6, bands[1].EndIndex)
	assert.Equal(t, chartval.SessionNewYork, bands[2].Session)
	assert.Equal(t, 7, bands[2].StartIndex)
	assert.Equal(t, 8, bands[2].EndIndex)
}

func TestComputeSessionBandsWeekend(t *testing.T) {
	calendar := chartval.NewSessionCalendar()
	saturday := time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC)
	candles := []chartval.Candle{{Open: 2000, High: 2001, Low: 1999, Close: 2000, Timestamp: saturday}}
	assert.Empty(t, ComputeSessionBands(candles, calendar))
}
