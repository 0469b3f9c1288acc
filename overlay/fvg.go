// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The goldchart authors

package overlay

import (
	"gioui.org/layout"
	"gioui.org/widget/material"

	"goldchart/chartplot"
	"goldchart/chartval"
)

const FvgId Id = "fvg"

// Gap is a fair value gap between candle i-2 and candle i. Index is
// the visible index of the third bar of the pattern.
type Gap struct {
	Index   int
	Top     float64
	Bottom  float64
	Bullish bool
}

// ComputeFvg runs the three-bar gap test over consecutive candles.
// A bullish gap exists when a bar's low clears the high two bars back,
// a bearish one when its high stays below the low two bars back.
// Overlapping ranges yield no gap.
func ComputeFvg(candles []chartval.Candle) []Gap {
	var gaps []Gap
	for i := 2; i < len(candles); i++ {
		first := candles[i-2]
		third := candles[i]
		if third.Low > first.High {
			gaps = append(gaps, Gap{Index: i, Top: third.Low, Bottom: first.High, Bullish: true})
		} else if third.High < first.Low {
			gaps = append(gaps, Gap{Index: i, Top: first.Low, Bottom: third.High, Bullish: false})
		}
	}
	return gaps
}

type Fvg struct {
	visibility
	gaps    []Gap
	visible int
}

func NewFvg() *Fvg {
	return &Fvg{}
}

func (o *Fvg) Id() Id {
	return FvgId
}

func (o *Fvg) ZOrder() int {
	return ZFvg
}

func (o *Fvg) Update(snap Snapshot) {
	o.gaps = ComputeFvg(snap.Candles)
	o.visible = len(snap.Candles)
}

func (o *Fvg) Plot(p *chartplot.Painter, gtx layout.Context, th *material.Theme) {
	defer p.ClipFrame(gtx).Pop()
	for _, g := range o.gaps {
		// the zone extends from the gap bar to the right edge
		x1 := p.Mapper.BarIndexToX(g.Index) - p.Mapper.Spacing/2
		if x1 > p.Mapper.Frame.Right {
			continue
		}
		y1 := p.Mapper.PriceToY(g.Top)
		y2 := p.Mapper.PriceToY(g.Bottom)
		if y1 > p.Mapper.Frame.Bottom && y2 > p.Mapper.Frame.Bottom ||
			y1 < p.Mapper.Frame.Top && y2 < p.Mapper.Frame.Top {
			continue
		}
		c := p.Theme.FvgBullishColor
		if !g.Bullish {
			c = p.Theme.FvgBearishColor
		}
		p.FillRect(gtx, x1, y1, p.Mapper.Frame.Right, y2, c)
	}
}
