// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The goldchart authors

package chartval

import (
	"fmt"
	"time"
)

// PositionType is the trade direction of a manual position marker.
type PositionType int

const (
	PositionBuy PositionType = iota
	PositionSell
)

func (t PositionType) String() string {
	if t == PositionSell {
		return "SELL"
	}
	return "BUY"
}

// ParsePositionType parses the wire direction string.
func ParsePositionType(s string) (PositionType, error) {
	switch s {
	case "BUY", "buy":
		return PositionBuy, nil
	case "SELL", "sell":
		return PositionSell, nil
	}
	return PositionBuy, fmt.Errorf("invalid position type %q", s)
}

// Position is a manual trade marker. It anchors at a bar index, so the
// marker drifts with the rolling buffer as old bars are evicted.
// Pnl is recomputed from the latest close on every render and never
// cached between frames.
type Position struct {
	Id         int
	Type       PositionType
	EntryPrice float64
	EntryIndex int
	StopLoss   float64
	TakeProfit float64
	Size       float64
	Pnl        float64
	OpenTime   time.Time
}

// ProfitLoss computes the unrealized P&L against the given close.
func (p Position) ProfitLoss(currentClose float64) float64 {
	if p.Type == PositionSell {
		return (p.EntryPrice - currentClose) * p.Size
	}
	return (currentClose - p.EntryPrice) * p.Size
}

// Validate rejects positions which could not have been entered.
func (p Position) Validate() error {
	if p.EntryPrice <= 0 {
		return fmt.Errorf("invalid entry price %f", p.EntryPrice)
	}
	if p.Size <= 0 {
		return fmt.Errorf("invalid position size %f", p.Size)
	}
	if p.StopLoss < 0 || p.TakeProfit < 0 {
		return fmt.Errorf("invalid stop/target for position %d", p.Id)
	}
	return nil
}

// ClosedTrade is a position after closing, with the exit snapshot and
// P&L frozen at close time.
type ClosedTrade struct {
	Position
	ExitPrice float64
	ClosedPnl float64
	CloseTime time.Time
}

// Close freezes the position against an exit price.
func (p Position) Close(exitPrice float64, closeTime time.Time) ClosedTrade {
	return ClosedTrade{
		Position:  p,
		ExitPrice: exitPrice,
		ClosedPnl: p.ProfitLoss(exitPrice),
		CloseTime: closeTime,
	}
}
