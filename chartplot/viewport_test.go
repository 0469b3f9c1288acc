// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The goldchart authors

package chartplot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommitPanIdempotent(t *testing.T) {
	v := NewViewport()
	v.Pan(12, 4.5)
	v.CommitPan()
	assert.Equal(t, 12, v.BarPan)
	assert.Equal(t, 4.5, v.PricePan)
	assert.Equal(t, 0, v.TempBarPan)
	assert.Equal(t, 0.0, v.TempPricePan)

	// second commit without an intervening pan changes nothing
	v.CommitPan()
	assert.Equal(t, 12, v.BarPan)
	assert.Equal(t, 4.5, v.PricePan)
}

func TestPanOverwritesNotAccumulates(t *testing.T) {
	v := NewViewport()
	v.Pan(5, 1)
	v.Pan(8, 2)
	assert.Equal(t, 8, v.TempBarPan)
	assert.Equal(t, 2.0, v.TempPricePan)
	v.CommitPan()
	assert.Equal(t, 8, v.BarPan)
}

func TestCancelPan(t *testing.T) {
	v := NewViewport()
	v.PanCommitted(3, 0)
	v.Pan(20, 5)
	v.CancelPan()
	assert.Equal(t, 3, v.BarPan)
	assert.Equal(t, 0, v.TempBarPan)
	assert.Equal(t, 0.0, v.TempPricePan)
}

func TestZoomClamp(t *testing.T) {
	v := NewViewport()
	for i := 0; i < 50; i++ {
		v.Zoom(0.9)
	}
	assert.Equal(t, MinZoom, v.ZoomLevel)
	for i := 0; i < 50; i++ {
		v.Zoom(1.1)
	}
	assert.Equal(t, MaxZoom, v.ZoomLevel)
}

func TestVisibleBars(t *testing.T) {
	v := NewViewport()
	assert.Equal(t, 100, v.VisibleBars())
	v.ZoomLevel = MaxZoom
	assert.Equal(t, 33, v.VisibleBars())
	v.ZoomLevel = MinZoom
	assert.Equal(t, 333, v.VisibleBars())
	v.ZoomLevel = 0.1 // below clamp, only reachable by direct assignment
	assert.Equal(t, 500, v.VisibleBars())
}

func TestReset(t *testing.T) {
	v := NewViewport()
	v.Zoom(1.1)
	v.PanCommitted(10, 2)
	v.LockPriceScale(1990, 2010)
	v.Reset()
	assert.Equal(t, NewViewport(), v)
	assert.Equal(t, 100, v.VisibleBars())
}

func TestLockFreezesSpanNotPosition(t *testing.T) {
	v := NewViewport()
	v.LockPriceScale(1990, 2010)
	assert.True(t, v.PriceScaleLocked)
	v.PanCommitted(0, 5)
	m := NewMapper(Frame{Left: 0, Top: 0, Right: 800, Bottom: 600}, v, nil)
	// span stays 20 wide, shifted by the pan offset
	assert.InDelta(t, 20, m.PriceRange(), 1e-9)
	assert.InDelta(t, 1995, m.RangeMin, 1e-9)
}
