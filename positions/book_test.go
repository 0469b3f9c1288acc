// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The goldchart authors

package positions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goldchart/chartval"
)

func TestAddAndPnl(t *testing.T) {
	b := NewBook()
	p, err := b.Add(chartval.PositionBuy, 2000, 0, 0, 2, 99)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Id)

	open := b.Open(2010)
	require.Len(t, open, 1)
	assert.InDelta(t, 20, open[0].Pnl, chartval.NearZero)

	// the same prices on the sell side invert the sign
	_, err = b.Add(chartval.PositionSell, 2000, 0, 0, 2, 99)
	require.NoError(t, err)
	open = b.Open(2010)
	assert.InDelta(t, -20, open[1].Pnl, chartval.NearZero)
	assert.InDelta(t, 0, b.TotalPnl(2010), chartval.NearZero)
}

func TestAddRejectsInvalid(t *testing.T) {
	b := NewBook()
	_, err := b.Add(chartval.PositionBuy, 0, 0, 0, 1, 0)
	assert.Error(t, err)
	_, err = b.Add(chartval.PositionBuy, 2000, 0, 0, 0, 0)
	assert.Error(t, err)
	assert.Empty(t, b.Open(2000))
}

func TestClose(t *testing.T) {
	b := NewBook()
	p, err := b.Add(chartval.PositionBuy, 2000, 0, 0, 1, 50)
	require.NoError(t, err)

	trade, err := b.Close(p.Id, 2015)
	require.NoError(t, err)
	assert.InDelta(t, 15, trade.ClosedPnl, chartval.NearZero)
	assert.Empty(t, b.Open(2015))
	require.Len(t, b.Closed(), 1)

	// closed P&L stays frozen regardless of later prices
	assert.InDelta(t, 15, b.Closed()[0].ClosedPnl, chartval.NearZero)

	_, err = b.Close(p.Id, 2020)
	assert.Error(t, err)
}

func TestCloseAllAtomic(t *testing.T) {
	b := NewBook()
	for i := 0; i < 3; i++ {
		_, err := b.Add(chartval.PositionBuy, 2000, 0, 0, 1, 10+i)
		require.NoError(t, err)
	}
	trades := b.CloseAll(2010)
	assert.Len(t, trades, 3)
	assert.Empty(t, b.Open(2010))
	assert.Len(t, b.Closed(), 3)

	// closing an empty book is a no-op
	assert.Empty(t, b.CloseAll(2010))
}
