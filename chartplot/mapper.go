// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The goldchart authors

package chartplot

import (
	"goldchart/chartval"
)

const (
	// Auto-fit padding above and below the visible price extent.
	rangePaddingFactor = 0.15
	// Ranges below this width are considered degenerate and replaced
	// by a synthetic range to keep the projection finite.
	minPriceRange      = 1.0
	syntheticRangePart = 0.1
	syntheticRangeFlat = 10.0
)

// Frame is the pixel rectangle of the candle plotting area, excluding
// the price axis strip on the right and the time strip at the bottom.
type Frame struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

func (f Frame) Width() float64 {
	return f.Right - f.Left
}

func (f Frame) Height() float64 {
	return f.Bottom - f.Top
}

// Contains reports whether a point is inside the frame, with margin.
func (f Frame) Contains(x, y, margin float64) bool {
	return x >= f.Left-margin && x <= f.Right+margin &&
		y >= f.Top-margin && y <= f.Bottom+margin
}

// Mapper projects between (bar index, price) data space and pixel
// space. It is a pure value derived once per frame from the viewport
// and the visible candles; every overlay, drawing and position marker
// uses the same mapper so their geometry cannot drift apart.
// Like the plot projection this boils down to a linear mapping, with
// precalculated multipliers and offsets.
type Mapper struct {
	Frame    Frame
	RangeMin float64
	RangeMax float64
	Spacing  float64
	mY       float64
	bY       float64
}

// NewMapper derives the projection for one frame. The price range is
// either auto-fit to the visible candles with padding, or the locked
// span; the pan offset applies in both modes.
func NewMapper(frame Frame, v Viewport, visible []chartval.Candle) Mapper {
	min, max, ok := chartval.PriceExtent(visible)
	if !ok {
		min, max = 0, 0
	}
	if v.PriceScaleLocked {
		min = v.LockedPriceMin
		max = v.LockedPriceMax
	}
	r := max - min
	if r < minPriceRange {
		// Flat data must never collapse the projection.
		if max > chartval.NearZero {
			r = max * syntheticRangePart
		} else {
			r = syntheticRangeFlat
		}
		mid := (max + min) / 2
		min = mid - r/2
		max = mid + r/2
	}
	if !v.PriceScaleLocked {
		padding := r * rangePaddingFactor
		min -= padding
		max += padding
	}
	pan := v.EffectivePricePan()
	min += pan
	max += pan

	m := Mapper{
		Frame:    frame,
		RangeMin: min,
		RangeMax: max,
		Spacing:  frame.Width() / float64(v.VisibleBars()),
	}
	m.mY = -frame.Height() / (max - min)
	m.bY = frame.Bottom - min*m.mY
	return m
}

// PriceToY projects a price to a pixel y coordinate.
func (m Mapper) PriceToY(price float64) float64 {
	return price*m.mY + m.bY
}

// YToPrice is the inverse of PriceToY.
func (m Mapper) YToPrice(y float64) float64 {
	return (y - m.bY) / m.mY
}

// BarIndexToX projects a visible-slice index to the pixel x of the bar
// center.
func (m Mapper) BarIndexToX(index int) float64 {
	return m.Frame.Left + m.Spacing/2 + float64(index)*m.Spacing
}

// XToBarIndex is the inverse of BarIndexToX, rounded to the nearest
// bar.
func (m Mapper) XToBarIndex(x float64) int {
	i := (x - m.Frame.Left - m.Spacing/2) / m.Spacing
	if i < 0 {
		return int(i - 0.5)
	}
	return int(i + 0.5)
}

// PriceRange is the visible price span.
func (m Mapper) PriceRange() float64 {
	return m.RangeMax - m.RangeMin
}
