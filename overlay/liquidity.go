// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The goldchart authors

package overlay

import (
	"gioui.org/layout"
	"gioui.org/widget/material"

	"goldchart/chartplot"
	"goldchart/chartval"
)

const LiquidityId Id = "liquidity"

const pivotStrength = 5

// Pivot is a swing high or low that later price has not yet traded
// through. Resting liquidity tends to pool at these levels.
type Pivot struct {
	Index int
	Price float64
	High  bool
}

// DetectPivots finds unmitigated swing points. A pivot high needs
// pivotStrength lower highs on each side; it is dropped once any later
// bar trades through it.
func DetectPivots(candles []chartval.Candle) []Pivot {
	var pivots []Pivot
	for i := pivotStrength; i < len(candles)-pivotStrength; i++ {
		isHigh := true
		isLow := true
		for j := i - pivotStrength; j <= i+pivotStrength; j++ {
			if j == i {
				continue
			}
			if candles[j].High >= candles[i].High {
				isHigh = false
			}
			if candles[j].Low <= candles[i].Low {
				isLow = false
			}
		}
		if isHigh && !mitigated(candles[i+pivotStrength+1:], candles[i].High, true) {
			pivots = append(pivots, Pivot{Index: i, Price: candles[i].High, High: true})
		}
		if isLow && !mitigated(candles[i+pivotStrength+1:], candles[i].Low, false) {
			pivots = append(pivots, Pivot{Index: i, Price: candles[i].Low, High: false})
		}
	}
	return pivots
}

func mitigated(later []chartval.Candle, price float64, high bool) bool {
	for _, c := range later {
		if high && c.High > price {
			return true
		}
		if !high && c.Low < price {
			return true
		}
	}
	return false
}

type Liquidity struct {
	visibility
	pivots []Pivot
}

func NewLiquidity() *Liquidity {
	return &Liquidity{}
}

func (o *Liquidity) Id() Id {
	return LiquidityId
}

func (o *Liquidity) ZOrder() int {
	return ZLiquidity
}

func (o *Liquidity) Update(snap Snapshot) {
	o.pivots = DetectPivots(snap.Candles)
}

func (o *Liquidity) Plot(p *chartplot.Painter, gtx layout.Context, th *material.Theme) {
	defer p.ClipFrame(gtx).Pop()
	for _, piv := range o.pivots {
		y := p.Mapper.PriceToY(piv.Price)
		if y < p.Mapper.Frame.Top || y > p.Mapper.Frame.Bottom {
			continue
		}
		x := p.Mapper.BarIndexToX(piv.Index)
		c := p.Theme.LiquidityLowColor
		if piv.High {
			c = p.Theme.LiquidityHighColor
		}
		p.Line(gtx, x, y, p.Mapper.Frame.Right, y, float32(gtx.Dp(1)), c)
	}
}
