// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The goldchart authors

package chartval

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProfitLoss(t *testing.T) {
	buy := Position{Type: PositionBuy, EntryPrice: 2000, Size: 2}
	assert.InDelta(t, 20, buy.ProfitLoss(2010), NearZero)
	sell := Position{Type: PositionSell, EntryPrice: 2000, Size: 2}
	assert.InDelta(t, -20, sell.ProfitLoss(2010), NearZero)
}

func TestPositionValidate(t *testing.T) {
	p := Position{Type: PositionBuy, EntryPrice: 2000, Size: 1}
	assert.NoError(t, p.Validate())
	p.EntryPrice = 0
	assert.Error(t, p.Validate())
	p.EntryPrice = 2000
	p.Size = -1
	assert.Error(t, p.Validate())
}

func TestPositionClose(t *testing.T) {
	now := time.Date(2024, 3, 1, 14, 30, 0, 0, time.UTC)
	p := Position{Id: 3, Type: PositionBuy, EntryPrice: 2000, Size: 2}
	trade := p.Close(2015, now)
	assert.Equal(t, 3, trade.Id)
	assert.Equal(t, 2015.0, trade.ExitPrice)
	assert.InDelta(t, 30, trade.ClosedPnl, NearZero)
	assert.True(t, trade.CloseTime.Equal(now))
}

func TestParsePositionType(t *testing.T) {
	pt, err := ParsePositionType("BUY")
	assert.NoError(t, err)
	assert.Equal(t, PositionBuy, pt)
	pt, err = ParsePositionType("sell")
	assert.NoError(t, err)
	assert.Equal(t, PositionSell, pt)
	_, err = ParsePositionType("hold")
	assert.Error(t, err)
}
