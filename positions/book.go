// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The goldchart authors

package positions

import (
	"fmt"
	"sync"
	"time"

	"goldchart/chartval"
)

// Book holds the manually opened positions and the closed trade log.
// Open positions carry a live P&L recomputed against the latest close
// on every render; closed trades freeze their P&L at close time.
type Book struct {
	mutex  sync.RWMutex
	nextId int
	open   []chartval.Position
	closed []chartval.ClosedTrade
}

func NewBook() *Book {
	return &Book{nextId: 1}
}

// Add opens a position anchored at the given last bar index. Invalid
// input is rejected without mutating the book.
func (b *Book) Add(t chartval.PositionType, entryPrice, stopLoss, takeProfit, size float64, entryIndex int) (chartval.Position, error) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	p := chartval.Position{
		Id:         b.nextId,
		Type:       t,
		EntryPrice: entryPrice,
		EntryIndex: entryIndex,
		StopLoss:   stopLoss,
		TakeProfit: takeProfit,
		Size:       size,
		OpenTime:   time.Now(),
	}
	if err := p.Validate(); err != nil {
		return chartval.Position{}, err
	}
	b.nextId++
	b.open = append(b.open, p)
	return p, nil
}

// Close moves one position to the closed list with an exit snapshot.
func (b *Book) Close(id int, exitPrice float64) (chartval.ClosedTrade, error) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	for i, p := range b.open {
		if p.Id == id {
			trade := p.Close(exitPrice, time.Now())
			b.open = append(b.open[:i], b.open[i+1:]...)
			b.closed = append(b.closed, trade)
			return trade, nil
		}
	}
	return chartval.ClosedTrade{}, fmt.Errorf("no open position with id %d", id)
}

// CloseAll closes the full open set against one exit price. The whole
// set moves atomically, there is no partial failure state.
func (b *Book) CloseAll(exitPrice float64) []chartval.ClosedTrade {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	now := time.Now()
	trades := make([]chartval.ClosedTrade, 0, len(b.open))
	for _, p := range b.open {
		trades = append(trades, p.Close(exitPrice, now))
	}
	b.open = nil
	b.closed = append(b.closed, trades...)
	return trades
}

// Open returns the open positions with P&L recomputed against the
// given close. The result is a snapshot copy.
func (b *Book) Open(currentClose float64) []chartval.Position {
	b.mutex.RLock()
	defer b.mutex.RUnlock()
	result := make([]chartval.Position, len(b.open))
	for i, p := range b.open {
		p.Pnl = p.ProfitLoss(currentClose)
		result[i] = p
	}
	return result
}

// Closed returns a snapshot of the closed trade log.
func (b *Book) Closed() []chartval.ClosedTrade {
	b.mutex.RLock()
	defer b.mutex.RUnlock()
	return append([]chartval.ClosedTrade(nil), b.closed...)
}

// TotalPnl sums the live P&L of the open set.
func (b *Book) TotalPnl(currentClose float64) float64 {
	b.mutex.RLock()
	defer b.mutex.RUnlock()
	var sum float64
	for _, p := range b.open {
		sum += p.ProfitLoss(currentClose)
	}
	return sum
}
