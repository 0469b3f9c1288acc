// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The goldchart authors

package chartplot

import (
	"goldchart/chartval"
)

const (
	MinZoom         = 0.3
	MaxZoom         = 3.0
	DefaultZoom     = 1.0
	baseVisibleBars = 100
	minVisibleBars  = 20
	maxVisibleBars  = 500
)

// Viewport holds the pan/zoom/lock state of a chart. The Temp fields
// carry an in-progress drag delta measured from gesture start; they are
// folded into the committed fields on release and discarded on cancel.
type Viewport struct {
	BarPan           int
	TempBarPan       int
	PricePan         float64
	TempPricePan     float64
	ZoomLevel        float64
	PriceScaleLocked bool
	LockedPriceMin   float64
	LockedPriceMax   float64
}

func NewViewport() Viewport {
	return Viewport{ZoomLevel: DefaultZoom}
}

// Pan sets the in-progress drag delta. Drag deltas are absolute against
// the gesture start position, not cumulative, so repeated calls during
// the same gesture overwrite rather than accumulate.
func (v *Viewport) Pan(deltaBars int, deltaPriceUnits float64) {
	v.TempBarPan = deltaBars
	v.TempPricePan = deltaPriceUnits
}

// PanCommitted shifts the committed offsets directly, used by keyboard
// panning which has no gesture lifecycle.
func (v *Viewport) PanCommitted(deltaBars int, deltaPriceUnits float64) {
	v.BarPan += deltaBars
	v.PricePan += deltaPriceUnits
}

// CommitPan folds the temp delta into the committed offsets. Committing
// twice without an intervening Pan is a no-op the second time.
func (v *Viewport) CommitPan() {
	v.BarPan += v.TempBarPan
	v.PricePan += v.TempPricePan
	v.TempBarPan = 0
	v.TempPricePan = 0
}

// CancelPan discards an in-progress drag without committing it.
func (v *Viewport) CancelPan() {
	v.TempBarPan = 0
	v.TempPricePan = 0
}

// Zoom multiplies the zoom level by the given factor, clamped.
func (v *Viewport) Zoom(factor float64) {
	v.ZoomLevel = chartval.Clamp(v.ZoomLevel*factor, MinZoom, MaxZoom)
}

// VisibleBars derives the visible bar count from the zoom level.
func (v *Viewport) VisibleBars() int {
	return chartval.Clamp(int(baseVisibleBars/v.ZoomLevel), minVisibleBars, maxVisibleBars)
}

func (v *Viewport) EffectiveBarPan() int {
	return v.BarPan + v.TempBarPan
}

func (v *Viewport) EffectivePricePan() float64 {
	return v.PricePan + v.TempPricePan
}

// LockPriceScale freezes the given price span. Panning still applies as
// an offset on top of the lock; only the span is frozen.
func (v *Viewport) LockPriceScale(min, max float64) {
	v.PriceScaleLocked = true
	v.LockedPriceMin = min
	v.LockedPriceMax = max
}

func (v *Viewport) UnlockPriceScale() {
	v.PriceScaleLocked = false
}

// Reset restores the initial view: no pan, no lock, default zoom.
func (v *Viewport) Reset() {
	*v = NewViewport()
}
