// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The goldchart authors

package overlay

import (
	"image/color"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/widget/material"
	"gioui.org/x/stroke"
	"github.com/cinar/indicator"

	"goldchart/chartplot"
)

const RibbonId Id = "ribbon"

const (
	ribbonFastPeriods = 9
	ribbonSlowPeriods = 21
)

// Ribbon plots a fast and a slow simple moving average over the
// closes.
type Ribbon struct {
	visibility
	fast       []float64
	slow       []float64
	startIndex int
	visible    int
	segments   []stroke.Segment
}

func NewRibbon() *Ribbon {
	return &Ribbon{visibility: visibility{hidden: true}}
}

func (o *Ribbon) Id() Id {
	return RibbonId
}

func (o *Ribbon) ZOrder() int {
	return ZRibbon
}

func (o *Ribbon) Update(snap Snapshot) {
	closes := make([]float64, len(snap.All))
	for i, c := range snap.All {
		closes[i] = c.Close
	}
	o.fast = indicator.Sma(ribbonFastPeriods, closes)
	o.slow = indicator.Sma(ribbonSlowPeriods, closes)
	o.startIndex = snap.StartIndex
	o.visible = len(snap.Candles)
}

func (o *Ribbon) Plot(p *chartplot.Painter, gtx layout.Context, th *material.Theme) {
	defer p.ClipFrame(gtx).Pop()
	o.plotLine(p, gtx, o.fast, ribbonFastPeriods, p.Theme.RibbonFastColor)
	o.plotLine(p, gtx, o.slow, ribbonSlowPeriods, p.Theme.RibbonSlowColor)
}

func (o *Ribbon) plotLine(p *chartplot.Painter, gtx layout.Context, values []float64, warmup int, c color.NRGBA) {
	o.segments = o.segments[:0]
	first := true
	for i := 0; i < o.visible; i++ {
		bufIdx := o.startIndex + i
		// skip the warmup window where the average is not meaningful
		if bufIdx >= len(values) || bufIdx < warmup-1 {
			continue
		}
		x := float32(p.Mapper.BarIndexToX(i))
		y := float32(p.Mapper.PriceToY(values[bufIdx]))
		if first {
			o.segments = append(o.segments, stroke.MoveTo(f32.Pt(x, y)))
			first = false
		} else {
			o.segments = append(o.segments, stroke.LineTo(f32.Pt(x, y)))
		}
	}
	p.StrokeSegments(gtx, o.segments, float32(gtx.Dp(1)), c)
}
