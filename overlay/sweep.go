// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The goldchart authors

package overlay

import (
	"math"

	"gioui.org/layout"
	"gioui.org/widget/material"

	"goldchart/chartplot"
	"goldchart/chartval"
)

const SweepId Id = "sweeps"

const (
	sweepLookback      = 20
	sweepRangeFactor   = 1.05
	sweepVolumeFactor  = 1.1
	sweepDedupeBars    = 3
	sweepDedupeRelDist = 0.001
)

// Sweep marks a breach-and-reversal through a prior swing extreme on
// elevated volume.
type Sweep struct {
	Index int
	Price float64
	High  bool
}

// DetectSweeps scans for liquidity sweeps. A bar sweeps the prior
// swing high when it trades above the lookback high but closes back
// below it, with both a displacement and a volume filter applied.
// Consecutive sweeps of the same side within a few bars or within
// 0.1% of the prior extreme collapse into one marker.
func DetectSweeps(candles []chartval.Candle) []Sweep {
	var sweeps []Sweep
	var lastHigh, lastLow *Sweep
	for i := sweepLookback; i < len(candles); i++ {
		window := candles[i-sweepLookback : i]
		priorHigh := math.Inf(-1)
		priorLow := math.Inf(1)
		var sumRange, sumVolume float64
		for _, w := range window {
			if w.High > priorHigh {
				priorHigh = w.High
			}
			if w.Low < priorLow {
				priorLow = w.Low
			}
			sumRange += w.Range()
			sumVolume += w.Volume
		}
		avgRange := sumRange / float64(len(window))
		avgVolume := sumVolume / float64(len(window))

		bar := candles[i]
		if bar.Range() < avgRange*sweepRangeFactor || bar.Volume < avgVolume*sweepVolumeFactor {
			continue
		}
		if bar.High > priorHigh && bar.Close < priorHigh {
			s := Sweep{Index: i, Price: bar.High, High: true}
			if !duplicateSweep(lastHigh, s) {
				sweeps = append(sweeps, s)
				lastHigh = &s
			}
		}
		if bar.Low < priorLow && bar.Close > priorLow {
			s := Sweep{Index: i, Price: bar.Low, High: false}
			if !duplicateSweep(lastLow, s) {
				sweeps = append(sweeps, s)
				lastLow = &s
			}
		}
	}
	return sweeps
}

func duplicateSweep(prev *Sweep, s Sweep) bool {
	if prev == nil {
		return false
	}
	if s.Index-prev.Index <= sweepDedupeBars {
		return true
	}
	return math.Abs(s.Price-prev.Price) <= math.Abs(prev.Price)*sweepDedupeRelDist
}

type Sweeps struct {
	visibility
	sweeps []Sweep
}

func NewSweeps() *Sweeps {
	return &Sweeps{}
}

func (o *Sweeps) Id() Id {
	return SweepId
}

func (o *Sweeps) ZOrder() int {
	return ZSweeps
}

func (o *Sweeps) Update(snap Snapshot) {
	o.sweeps = DetectSweeps(snap.Candles)
}

func (o *Sweeps) Plot(p *chartplot.Painter, gtx layout.Context, th *material.Theme) {
	for _, s := range o.sweeps {
		x := p.Mapper.BarIndexToX(s.Index)
		y := p.Mapper.PriceToY(s.Price)
		if !p.Mapper.Frame.Contains(x, y, p.Mapper.Spacing) {
			continue
		}
		size := float64(gtx.Dp(5))
		c := p.Theme.SweepLowColor
		labelText := "SWEEP▲"
		labelY := y + size
		if s.High {
			c = p.Theme.SweepHighColor
			labelText = "SWEEP▼"
			labelY = y - size - float64(gtx.Sp(14))
		}
		// triangle rendered as a thick flat-capped tick
		p.ThickVLine(gtx, x, y-size/2, y+size/2, float32(gtx.Dp(4)), c)
		p.Label(gtx, th, x-2*size, labelY, labelText, 10, c)
	}
}
