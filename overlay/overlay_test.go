// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The goldchart authors

package overlay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goldchart/chartval"
)

func TestRegistryZOrder(t *testing.T) {
	r := NewRegistry(NewVolume(), NewVwap(), NewSweeps(), NewGann())
	var order []int
	for _, o := range r.overlays {
		order = append(order, o.ZOrder())
	}
	assert.IsIncreasing(t, order)
	assert.Equal(t, ZGann, order[0])
	assert.Equal(t, ZVolume, order[3])
}

func TestRegistrySetVisible(t *testing.T) {
	r := NewRegistry(NewVwap(), NewFvg())
	o, ok := r.Get(VwapId)
	require.True(t, ok)
	assert.True(t, o.Visible())

	assert.True(t, r.SetVisible(VwapId, false))
	assert.False(t, o.Visible())
	assert.True(t, r.SetVisible(VwapId, true))
	assert.True(t, o.Visible())

	assert.False(t, r.SetVisible("bogus", true))
}

func TestRegistryUpdateSkipsHidden(t *testing.T) {
	vwap := NewVwap()
	r := NewRegistry(vwap)
	candles := []chartval.Candle{{High: 101, Low: 99, Close: 100, Volume: 10}}
	snap := Snapshot{Candles: candles, All: candles}

	vwap.SetVisible(false)
	r.UpdateAll(snap)
	assert.Empty(t, vwap.values)

	vwap.SetVisible(true)
	r.UpdateAll(snap)
	assert.Len(t, vwap.values, 1)
}

func TestDefaultVisibility(t *testing.T) {
	// heavier layers start hidden and are toggled on by the user
	assert.True(t, NewVwap().Visible())
	assert.True(t, NewVolume().Visible())
	assert.False(t, NewVolumeProfile().Visible())
	assert.False(t, NewGann().Visible())
	assert.False(t, NewCycles().Visible())
	assert.False(t, NewRibbon().Visible())
}
