// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The goldchart authors

package overlay

import (
	"sort"
	"time"

	"gioui.org/layout"
	"gioui.org/widget/material"

	"goldchart/chartplot"
	"goldchart/chartval"
)

type Id string

// Snapshot is the read-only data handed to every overlay's Update.
// Overlays never touch the series store directly; they recompute their
// geometry from the snapshot and keep the result until the next one.
type Snapshot struct {
	// Candles is the visible slice; All is the full buffer for
	// cumulative computations such as VWAP.
	Candles    []chartval.Candle
	All        []chartval.Candle
	StartIndex int
	// Hovered is the visible index under the pointer, or -1.
	Hovered  int
	Now      time.Time
	Calendar *chartval.SessionCalendar
}

// Overlay is one toggleable chart layer. Update computes geometry from
// the snapshot without painting; Plot paints the computed geometry
// through the shared painter. The split keeps the detection math
// testable without a window.
type Overlay interface {
	Id() Id
	ZOrder() int
	Visible() bool
	SetVisible(bool)
	Update(snap Snapshot)
	Plot(p *chartplot.Painter, gtx layout.Context, th *material.Theme)
}

// Z-order is a correctness contract: layers below ZCandles must not
// obscure the candles, the crosshair above everything is painted by
// the plot itself.
const (
	ZGann = iota * 10
	ZVwap
	ZRibbon
	ZSessions
	ZCandles
	ZFvg
	ZCycles
	ZIceberg
	ZSweeps
	ZLiquidity
	ZVolume
	ZVolumeProfile
)

// visibility is the common toggle state embedded by every overlay.
type visibility struct {
	hidden bool
}

func (v *visibility) Visible() bool {
	return !v.hidden
}

func (v *visibility) SetVisible(visible bool) {
	v.hidden = !visible
}

// Registry owns the overlay set in fixed z-order.
type Registry struct {
	overlays []Overlay
}

func NewRegistry(overlays ...Overlay) *Registry {
	r := &Registry{overlays: overlays}
	sort.SliceStable(r.overlays, func(i, j int) bool {
		return r.overlays[i].ZOrder() < r.overlays[j].ZOrder()
	})
	return r
}

// Get returns the overlay with the given id.
func (r *Registry) Get(id Id) (Overlay, bool) {
	for _, o := range r.overlays {
		if o.Id() == id {
			return o, true
		}
	}
	return nil, false
}

// SetVisible toggles one overlay; unknown ids are ignored.
func (r *Registry) SetVisible(id Id, visible bool) bool {
	o, ok := r.Get(id)
	if ok {
		o.SetVisible(visible)
	}
	return ok
}

// UpdateAll recomputes every visible overlay from the snapshot.
func (r *Registry) UpdateAll(snap Snapshot) {
	for _, o := range r.overlays {
		if o.Visible() {
			o.Update(snap)
		}
	}
}

// PlotRange paints all visible overlays with minZ <= z < maxZ, in
// z-order. The plot calls this once below and once above the candles.
func (r *Registry) PlotRange(p *chartplot.Painter, gtx layout.Context, th *material.Theme, minZ, maxZ int) {
	for _, o := range r.overlays {
		if o.ZOrder() >= minZ && o.ZOrder() < maxZ && o.Visible() {
			o.Plot(p, gtx, th)
		}
	}
}
