// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The goldchart authors

package overlay

import (
	"image/color"
	"sync"

	"gioui.org/layout"
	"gioui.org/widget/material"

	"goldchart/chartplot"
	"goldchart/chartval"
)

const VolumeProfileId Id = "volumeprofile"

// profileWidthRatio is the horizontal share of the plot the histogram
// may grow into from the right edge.
const profileWidthRatio = 0.25

// ProfileBucket is one price level of the backend computed histogram.
type ProfileBucket struct {
	Price       float64
	Volume      float64
	BuyVolume   float64
	SellVolume  float64
	InValueArea bool
	IsPoc       bool
}

// Profile is the backend volume profile payload: point of control,
// value area bounds, session VWAP and the per-level histogram.
type Profile struct {
	Poc         float64
	Vah         float64
	Val         float64
	Vwap        float64
	TotalVolume float64
	Histogram   []ProfileBucket
}

// VolumeProfile renders an externally computed histogram. The data is
// fetched on its own poll cycle and cached until superseded, so it has
// a setter instead of deriving from the candle snapshot.
type VolumeProfile struct {
	visibility
	mutex   sync.RWMutex
	profile Profile
	hasData bool
}

func NewVolumeProfile() *VolumeProfile {
	return &VolumeProfile{visibility: visibility{hidden: true}}
}

func (o *VolumeProfile) Id() Id {
	return VolumeProfileId
}

func (o *VolumeProfile) ZOrder() int {
	return ZVolumeProfile
}

// SetProfile installs a new backend response, last write wins.
func (o *VolumeProfile) SetProfile(profile Profile) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.profile = profile
	o.hasData = true
}

func (o *VolumeProfile) Update(snap Snapshot) {
	// data arrives through SetProfile, nothing to derive per frame
}

func (o *VolumeProfile) Plot(p *chartplot.Painter, gtx layout.Context, th *material.Theme) {
	o.mutex.RLock()
	profile := o.profile
	hasData := o.hasData
	o.mutex.RUnlock()
	if !hasData || len(profile.Histogram) == 0 {
		return
	}
	defer p.ClipFrame(gtx).Pop()
	frame := p.Mapper.Frame

	maxBucket := 0.0
	for _, b := range profile.Histogram {
		if b.Volume > maxBucket {
			maxBucket = b.Volume
		}
	}
	if maxBucket < chartval.NearZero {
		return
	}
	maxWidth := frame.Width() * profileWidthRatio
	barHeight := float32(gtx.Dp(2))
	for _, b := range profile.Histogram {
		y := p.Mapper.PriceToY(b.Price)
		if y < frame.Top || y > frame.Bottom {
			continue
		}
		w := maxWidth * b.Volume / maxBucket
		clr := p.Theme.ProfileBarColor
		if b.InValueArea {
			clr = p.Theme.ProfileValueColor
		}
		if b.IsPoc {
			clr = p.Theme.PocColor
		}
		p.FillRect(gtx, frame.Right-w, y-float64(barHeight)/2, frame.Right, y+float64(barHeight)/2, clr)
	}

	o.referenceLine(p, gtx, th, profile.Poc, "POC", p.Theme.PocColor)
	o.referenceLine(p, gtx, th, profile.Vah, "VAH", p.Theme.ValueAreaColor)
	o.referenceLine(p, gtx, th, profile.Val, "VAL", p.Theme.ValueAreaColor)
	o.referenceLine(p, gtx, th, profile.Vwap, "VWAP", p.Theme.ProfileVwapColor)
}

func (o *VolumeProfile) referenceLine(p *chartplot.Painter, gtx layout.Context, th *material.Theme, price float64, labelText string, clr color.NRGBA) {
	frame := p.Mapper.Frame
	y := p.Mapper.PriceToY(price)
	if price <= 0 || y < frame.Top || y > frame.Bottom {
		return
	}
	p.DashedLine(gtx, frame.Left, y, frame.Right, y, float32(gtx.Dp(1)), []float32{6, 3}, clr)
	p.Label(gtx, th, frame.Left+4, y-float64(gtx.Sp(12)), labelText, 10, clr)
}
