// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The goldchart authors

package overlay

import (
	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/widget/material"
	"gioui.org/x/stroke"

	"goldchart/chartplot"
	"goldchart/chartval"
)

const VwapId Id = "vwap"

// ComputeVwap returns the cumulative volume weighted average price,
// aligned 1:1 with the input candles. The running average restarts at
// nothing: it always spans the full buffer, recomputed monotonically
// whenever new candles load.
func ComputeVwap(candles []chartval.Candle) []float64 {
	result := make([]float64, len(candles))
	var sumPV, sumV float64
	for i, c := range candles {
		sumPV += c.TypicalPrice() * c.Volume
		sumV += c.Volume
		if sumV > chartval.NearZero {
			result[i] = sumPV / sumV
		} else {
			result[i] = c.Close
		}
	}
	return result
}

type Vwap struct {
	visibility
	values     []float64
	startIndex int
	visible    int
	segments   []stroke.Segment
}

func NewVwap() *Vwap {
	return &Vwap{}
}

func (o *Vwap) Id() Id {
	return VwapId
}

func (o *Vwap) ZOrder() int {
	return ZVwap
}

func (o *Vwap) Update(snap Snapshot) {
	o.values = ComputeVwap(snap.All)
	o.startIndex = snap.StartIndex
	o.visible = len(snap.Candles)
}

func (o *Vwap) Plot(p *chartplot.Painter, gtx layout.Context, th *material.Theme) {
	defer p.ClipFrame(gtx).Pop()
	// Draw the whole line with a single stroke.
	o.segments = o.segments[:0]
	first := true
	for i := 0; i < o.visible; i++ {
		bufIdx := o.startIndex + i
		if bufIdx >= len(o.values) {
			break
		}
		x := float32(p.Mapper.BarIndexToX(i))
		y := float32(p.Mapper.PriceToY(o.values[bufIdx]))
		if first {
			o.segments = append(o.segments, stroke.MoveTo(f32.Pt(x, y)))
			first = false
		} else {
			o.segments = append(o.segments, stroke.LineTo(f32.Pt(x, y)))
		}
	}
	p.StrokeSegments(gtx, o.segments, float32(gtx.Dp(1)), p.Theme.VwapColor)
}
