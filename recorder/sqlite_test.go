// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The goldchart authors

package recorder

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goldchart/chartval"
)

func openTestRecorder(t *testing.T) *SqliteRecorder {
	t.Helper()
	r, err := NewSqliteRecorder(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { r.Close() })
	return r
}

func closedTrade(id int, pnl float64, closeTime time.Time) *chartval.ClosedTrade {
	p := chartval.Position{
		Id:         id,
		Type:       chartval.PositionBuy,
		EntryPrice: 2000,
		Size:       1,
		OpenTime:   closeTime.Add(-time.Hour),
	}
	return &chartval.ClosedTrade{
		Position:  p,
		ExitPrice: 2000 + pnl,
		ClosedPnl: pnl,
		CloseTime: closeTime,
	}
}

func TestTradeRoundTrip(t *testing.T) {
	r := openTestRecorder(t)
	now := time.Date(2024, 3, 6, 15, 0, 0, 0, time.UTC)

	require.NoError(t, r.RecordTrade(closedTrade(1, 10, now)))
	require.NoError(t, r.RecordTrade(closedTrade(2, -5, now.Add(time.Minute))))

	records, err := r.TradeHistory(10)
	require.NoError(t, err)
	require.Len(t, records, 2)
	// newest first
	assert.Equal(t, 2, records[0].Id)
	assert.Equal(t, -5.0, records[0].Pnl)
	assert.Equal(t, 1, records[1].Id)
	assert.Equal(t, 10.0, records[1].Pnl)
	assert.Equal(t, chartval.PositionBuy, records[0].Type)
	assert.Equal(t, now.Unix(), records[1].CloseTime.Unix())
}

func TestTradeHistoryLimit(t *testing.T) {
	r := openTestRecorder(t)
	now := time.Now()
	for i := 0; i < 5; i++ {
		require.NoError(t, r.RecordTrade(closedTrade(i+1, float64(i), now.Add(time.Duration(i)*time.Minute))))
	}
	records, err := r.TradeHistory(3)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, 5, records[0].Id)
}

func TestRecordSweep(t *testing.T) {
	r := openTestRecorder(t)
	err := r.RecordSweep(&SweepEvent{
		Timeframe: "5m",
		Price:     2010.5,
		High:      true,
		Timestamp: time.Now(),
	})
	require.NoError(t, err)
}

func TestNoopRecorder(t *testing.T) {
	var rec Recorder = NewNoopRecorder()
	assert.NoError(t, rec.RecordTrade(closedTrade(1, 0, time.Now())))
	assert.NoError(t, rec.RecordSweep(&SweepEvent{}))
	records, err := rec.TradeHistory(10)
	assert.NoError(t, err)
	assert.Empty(t, records)
	assert.NoError(t, rec.Close())
}
