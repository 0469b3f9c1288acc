// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The goldchart authors

package overlay

import (
	"sync"

	"gioui.org/layout"
	"gioui.org/widget/material"

	"goldchart/chartplot"
	"goldchart/chartval"
)

const IcebergId Id = "iceberg"

// IcebergZone is a backend identified price band of suspected hidden
// order absorption.
type IcebergZone struct {
	PriceTop    float64
	PriceBottom float64
	Volume      float64
	Color       string
}

// Icebergs renders backend supplied zones as translucent bands across
// the full plot width. Zones arrive with the chart poll response.
type Icebergs struct {
	visibility
	mutex sync.RWMutex
	zones []IcebergZone
}

func NewIcebergs() *Icebergs {
	return &Icebergs{}
}

func (o *Icebergs) Id() Id {
	return IcebergId
}

func (o *Icebergs) ZOrder() int {
	return ZIceberg
}

// SetZones installs the zones of the latest poll, last write wins.
func (o *Icebergs) SetZones(zones []IcebergZone) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.zones = zones
}

func (o *Icebergs) Update(snap Snapshot) {
	// zones arrive through SetZones together with the candle payload
}

func (o *Icebergs) Plot(p *chartplot.Painter, gtx layout.Context, th *material.Theme) {
	o.mutex.RLock()
	zones := o.zones
	o.mutex.RUnlock()
	if len(zones) == 0 {
		return
	}
	defer p.ClipFrame(gtx).Pop()
	frame := p.Mapper.Frame
	for _, z := range zones {
		y1 := p.Mapper.PriceToY(z.PriceTop)
		y2 := p.Mapper.PriceToY(z.PriceBottom)
		if (y1 < frame.Top && y2 < frame.Top) || (y1 > frame.Bottom && y2 > frame.Bottom) {
			continue
		}
		p.FillRect(gtx, frame.Left, y1, frame.Right, y2, p.Theme.IcebergZoneColor)
		if z.Volume > 0 {
			labelText := "ICE " + chartval.FormatCompactVolume(z.Volume)
			p.Label(gtx, th, frame.Left+4, y1+2, labelText, 10, p.Theme.IcebergTextColor)
		}
	}
}
