// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The goldchart authors

package overlay

import (
	"gioui.org/layout"
	"gioui.org/widget/material"

	"goldchart/chartplot"
	"goldchart/chartval"
)

const VolumeId Id = "volume"

// volumeAreaRatio is how much of the plot height the volume bars may
// occupy, anchored to the bottom edge.
const volumeAreaRatio = 0.15

// volumeLabelStride puts a quantity label on every n-th bar; the
// hovered bar is always labeled.
const volumeLabelStride = 5

type Volume struct {
	visibility
	candles   []chartval.Candle
	hovered   int
	maxVolume float64
}

func NewVolume() *Volume {
	return &Volume{hovered: -1}
}

func (o *Volume) Id() Id {
	return VolumeId
}

func (o *Volume) ZOrder() int {
	return ZVolume
}

func (o *Volume) Update(snap Snapshot) {
	o.candles = snap.Candles
	o.hovered = snap.Hovered
	o.maxVolume = chartval.MaxVolume(snap.Candles, 1)
}

func (o *Volume) Plot(p *chartplot.Painter, gtx layout.Context, th *material.Theme) {
	defer p.ClipFrame(gtx).Pop()
	frame := p.Mapper.Frame
	areaHeight := frame.Height() * volumeAreaRatio
	barWidth := float32(p.Mapper.Spacing * 0.6)
	if barWidth < 1 {
		barWidth = 1
	}
	for i, c := range o.candles {
		x := p.Mapper.BarIndexToX(i)
		if x+p.Mapper.Spacing/2 < frame.Left || x-p.Mapper.Spacing/2 > frame.Right {
			continue
		}
		h := areaHeight * c.Volume / o.maxVolume
		clr := p.Theme.VolumeDownColor
		if c.IsBullish() {
			clr = p.Theme.VolumeUpColor
		}
		p.ThickVLine(gtx, x, frame.Bottom, frame.Bottom-h, barWidth, clr)
		if c.Volume > 0 && (i%volumeLabelStride == 0 || i == o.hovered) {
			labelText := chartval.FormatCompactVolume(c.Volume)
			p.Label(gtx, th, x-8, frame.Bottom-h-float64(gtx.Sp(12)), labelText, 9, p.Theme.VolumeTextColor)
		}
	}
}
