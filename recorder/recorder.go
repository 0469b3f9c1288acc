// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The goldchart authors

package recorder

import (
	"time"

	"goldchart/chartval"
)

// SweepEvent records one detected liquidity sweep for later review.
type SweepEvent struct {
	Timeframe string
	Price     float64
	High      bool
	Timestamp time.Time
}

// TradeRecord is a persisted closed trade.
type TradeRecord struct {
	Id         int
	Type       chartval.PositionType
	EntryPrice float64
	ExitPrice  float64
	Size       float64
	Pnl        float64
	OpenTime   time.Time
	CloseTime  time.Time
}

// Recorder persists trading history for analysis across sessions.
type Recorder interface {
	RecordTrade(trade *chartval.ClosedTrade) error
	RecordSweep(evt *SweepEvent) error
	TradeHistory(limit int) ([]TradeRecord, error)
	Close() error
}
