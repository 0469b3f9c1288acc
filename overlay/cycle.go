// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The goldchart authors

package overlay

import (
	"sync"

	"gioui.org/layout"
	"gioui.org/widget/material"

	"goldchart/chartplot"
)

const CycleId Id = "cycles"

// CycleMarker is an externally supplied inflection point keyed by bar
// index, counted from the end of the buffer so markers stay attached
// to their bars as the window rolls.
type CycleMarker struct {
	BarsAgo int
	Label   string
}

type Cycles struct {
	visibility
	mutex   sync.RWMutex
	markers []CycleMarker
	total   int
	start   int
}

func NewCycles() *Cycles {
	return &Cycles{visibility: visibility{hidden: true}}
}

func (o *Cycles) Id() Id {
	return CycleId
}

func (o *Cycles) ZOrder() int {
	return ZCycles
}

func (o *Cycles) SetMarkers(markers []CycleMarker) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.markers = markers
}

func (o *Cycles) Update(snap Snapshot) {
	o.total = len(snap.All)
	o.start = snap.StartIndex
}

// markerIndex converts a from-the-end marker offset into an index of
// the visible slice. Panning changes the start index, not the marker's
// bar, so the marker stays attached to its candle.
func (o *Cycles) markerIndex(barsAgo int) int {
	return o.total - 1 - barsAgo - o.start
}

func (o *Cycles) Plot(p *chartplot.Painter, gtx layout.Context, th *material.Theme) {
	o.mutex.RLock()
	markers := o.markers
	o.mutex.RUnlock()
	if len(markers) == 0 || o.total == 0 {
		return
	}
	defer p.ClipFrame(gtx).Pop()
	frame := p.Mapper.Frame
	for _, m := range markers {
		idx := o.markerIndex(m.BarsAgo)
		if idx < 0 {
			continue
		}
		x := p.Mapper.BarIndexToX(idx)
		if x < frame.Left || x > frame.Right {
			continue
		}
		p.DashedLine(gtx, x, frame.Top, x, frame.Bottom, float32(gtx.Dp(1)), p.Theme.CycleDash, p.Theme.CycleColor)
		if m.Label != "" {
			p.Label(gtx, th, x+3, frame.Top+14, m.Label, 10, p.Theme.CycleColor)
		}
	}
}
