// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The goldchart authors

package overlay

import (
	"strconv"
	"sync"

	"gioui.org/layout"
	"gioui.org/widget/material"

	"goldchart/chartplot"
)

const GannId Id = "gann"

// GannLevel is an externally supplied horizontal price level with a
// label, e.g. "Gann 1/2".
type GannLevel struct {
	Price float64
	Label string
}

// Gann paints backend supplied levels as dashed horizontal reference
// lines with a labeled badge at the right edge. The signal computation
// lives in the backend; this layer only positions it.
type Gann struct {
	visibility
	mutex  sync.RWMutex
	levels []GannLevel
}

func NewGann() *Gann {
	return &Gann{visibility: visibility{hidden: true}}
}

func (o *Gann) Id() Id {
	return GannId
}

func (o *Gann) ZOrder() int {
	return ZGann
}

func (o *Gann) SetLevels(levels []GannLevel) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.levels = levels
}

func (o *Gann) Update(snap Snapshot) {
	// levels arrive through SetLevels from the mentor poll
}

func (o *Gann) Plot(p *chartplot.Painter, gtx layout.Context, th *material.Theme) {
	o.mutex.RLock()
	levels := o.levels
	o.mutex.RUnlock()
	if len(levels) == 0 {
		return
	}
	defer p.ClipFrame(gtx).Pop()
	frame := p.Mapper.Frame
	for _, l := range levels {
		y := p.Mapper.PriceToY(l.Price)
		if y < frame.Top || y > frame.Bottom {
			continue
		}
		p.DashedLine(gtx, frame.Left, y, frame.Right, y, float32(gtx.Dp(1)), p.Theme.GannDash, p.Theme.GannColor)
		labelText := l.Label
		if labelText == "" {
			labelText = strconv.FormatFloat(l.Price, 'f', 2, 64)
		}
		p.Label(gtx, th, frame.Right-80, y-float64(gtx.Sp(12)), labelText, 10, p.Theme.GannColor)
	}
}
