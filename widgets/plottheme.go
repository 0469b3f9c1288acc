// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The goldchart authors

package widgets

import (
	"image"
	"image/color"

	"gioui.org/layout"
	"gioui.org/unit"
)

type DpPoint struct {
	X unit.Dp
	Y unit.Dp
}

func (p *DpPoint) Dp(gtx layout.Context) image.Point {
	return image.Point{
		X: gtx.Dp(p.X),
		Y: gtx.Dp(p.Y),
	}
}

// PlotTheme carries every color and dash pattern of the chart and its
// overlays. Overlay painters never hardcode colors, so switching the
// theme at runtime recolors everything on the next frame.
type PlotTheme struct {
	AxesMarginMin        DpPoint
	AxesMarginMax        DpPoint
	TextMargin           DpPoint
	AxesXfontSize        int
	AxesYfontSize        int
	BackgroundColor      color.NRGBA
	AxesColor            color.NRGBA
	GridColor            color.NRGBA
	CandleUpColor        color.NRGBA
	CandleDownColor      color.NRGBA
	LiveCandleDashColor  color.NRGBA
	LiveCandleDash       []float32
	FlashColor           color.NRGBA
	AxesXtextColor       color.NRGBA
	AxesYtextColor       color.NRGBA
	CrosshairColor       color.NRGBA
	CrosshairDash        []float32
	HoverTextColor       color.NRGBA
	HoverBgColor         color.NRGBA
	VwapColor            color.NRGBA
	RibbonFastColor      color.NRGBA
	RibbonSlowColor      color.NRGBA
	VolumeUpColor        color.NRGBA
	VolumeDownColor      color.NRGBA
	VolumeTextColor      color.NRGBA
	ProfileBarColor      color.NRGBA
	ProfileValueColor    color.NRGBA
	PocColor             color.NRGBA
	ValueAreaColor       color.NRGBA
	ProfileVwapColor     color.NRGBA
	IcebergZoneColor     color.NRGBA
	IcebergTextColor     color.NRGBA
	FvgBullishColor      color.NRGBA
	FvgBearishColor      color.NRGBA
	SweepHighColor       color.NRGBA
	SweepLowColor        color.NRGBA
	LiquidityHighColor   color.NRGBA
	LiquidityLowColor    color.NRGBA
	SessionAsiaColor     color.NRGBA
	SessionLondonColor   color.NRGBA
	SessionNewYorkColor  color.NRGBA
	SessionTextColor     color.NRGBA
	GannColor            color.NRGBA
	GannDash             []float32
	CycleColor           color.NRGBA
	CycleDash            []float32
	DrawingColor         color.NRGBA
	DrawingPreviewColor  color.NRGBA
	DrawingPreviewDash   []float32
	FibColor             color.NRGBA
	PositionBuyColor     color.NRGBA
	PositionSellColor    color.NRGBA
	StopLossColor        color.NRGBA
	TakeProfitColor      color.NRGBA
	PnlPositiveColor     color.NRGBA
	PnlNegativeColor     color.NRGBA
	BadgeTextColor       color.NRGBA
	BadgeBgColor         color.NRGBA
	StatusConnectedColor color.NRGBA
	StatusErrorColor     color.NRGBA
	StatusLostColor      color.NRGBA
}

func NewDarkPlotTheme() *PlotTheme {
	return &PlotTheme{
		AxesMarginMin:        DpPoint{X: 10, Y: 1},
		AxesMarginMax:        DpPoint{X: 30, Y: 10},
		TextMargin:           DpPoint{X: 7, Y: 7},
		AxesXfontSize:        17,
		AxesYfontSize:        17,
		BackgroundColor:      color.NRGBA{R: 13, G: 17, B: 23, A: 255},
		AxesColor:            color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		GridColor:            color.NRGBA{R: 40, G: 44, B: 52, A: 255},
		CandleUpColor:        color.NRGBA{R: 38, G: 166, B: 154, A: 255},
		CandleDownColor:      color.NRGBA{R: 239, G: 83, B: 80, A: 255},
		LiveCandleDashColor:  color.NRGBA{R: 255, G: 255, B: 255, A: 160},
		LiveCandleDash:       []float32{4, 4},
		FlashColor:           color.NRGBA{R: 255, G: 215, B: 0, A: 60},
		AxesXtextColor:       color.NRGBA{R: 170, G: 178, B: 189, A: 255},
		AxesYtextColor:       color.NRGBA{R: 170, G: 178, B: 189, A: 255},
		CrosshairColor:       color.NRGBA{R: 200, G: 200, B: 200, A: 140},
		CrosshairDash:        []float32{4, 4},
		HoverTextColor:       color.NRGBA{R: 220, G: 223, B: 228, A: 255},
		HoverBgColor:         color.NRGBA{R: 30, G: 34, B: 43, A: 230},
		VwapColor:            color.NRGBA{R: 255, G: 167, B: 38, A: 255},
		RibbonFastColor:      color.NRGBA{R: 66, G: 165, B: 245, A: 255},
		RibbonSlowColor:      color.NRGBA{R: 171, G: 71, B: 188, A: 255},
		VolumeUpColor:        color.NRGBA{R: 38, G: 166, B: 154, A: 110},
		VolumeDownColor:      color.NRGBA{R: 239, G: 83, B: 80, A: 110},
		VolumeTextColor:      color.NRGBA{R: 170, G: 178, B: 189, A: 200},
		ProfileBarColor:      color.NRGBA{R: 100, G: 120, B: 160, A: 90},
		ProfileValueColor:    color.NRGBA{R: 100, G: 160, B: 220, A: 130},
		PocColor:             color.NRGBA{R: 255, G: 215, B: 0, A: 255},
		ValueAreaColor:       color.NRGBA{R: 100, G: 160, B: 220, A: 255},
		ProfileVwapColor:     color.NRGBA{R: 255, G: 167, B: 38, A: 255},
		IcebergZoneColor:     color.NRGBA{R: 41, G: 182, B: 246, A: 60},
		IcebergTextColor:     color.NRGBA{R: 41, G: 182, B: 246, A: 255},
		FvgBullishColor:      color.NRGBA{R: 38, G: 166, B: 154, A: 45},
		FvgBearishColor:      color.NRGBA{R: 239, G: 83, B: 80, A: 45},
		SweepHighColor:       color.NRGBA{R: 255, G: 82, B: 82, A: 255},
		SweepLowColor:        color.NRGBA{R: 0, G: 230, B: 118, A: 255},
		LiquidityHighColor:   color.NRGBA{R: 255, G: 82, B: 82, A: 120},
		LiquidityLowColor:    color.NRGBA{R: 0, G: 230, B: 118, A: 120},
		SessionAsiaColor:     color.NRGBA{R: 255, G: 213, B: 79, A: 18},
		SessionLondonColor:   color.NRGBA{R: 66, G: 165, B: 245, A: 18},
		SessionNewYorkColor:  color.NRGBA{R: 239, G: 83, B: 80, A: 18},
		SessionTextColor:     color.NRGBA{R: 170, G: 178, B: 189, A: 160},
		GannColor:            color.NRGBA{R: 186, G: 104, B: 200, A: 200},
		GannDash:             []float32{6, 4},
		CycleColor:           color.NRGBA{R: 77, G: 208, B: 225, A: 200},
		CycleDash:            []float32{2, 6},
		DrawingColor:         color.NRGBA{R: 255, G: 255, B: 255, A: 220},
		DrawingPreviewColor:  color.NRGBA{R: 255, G: 255, B: 255, A: 120},
		DrawingPreviewDash:   []float32{5, 5},
		FibColor:             color.NRGBA{R: 255, G: 183, B: 77, A: 200},
		PositionBuyColor:     color.NRGBA{R: 0, G: 230, B: 118, A: 255},
		PositionSellColor:    color.NRGBA{R: 255, G: 82, B: 82, A: 255},
		StopLossColor:        color.NRGBA{R: 255, G: 82, B: 82, A: 160},
		TakeProfitColor:      color.NRGBA{R: 0, G: 230, B: 118, A: 160},
		PnlPositiveColor:     color.NRGBA{R: 0, G: 230, B: 118, A: 255},
		PnlNegativeColor:     color.NRGBA{R: 255, G: 82, B: 82, A: 255},
		BadgeTextColor:       color.NRGBA{R: 220, G: 223, B: 228, A: 255},
		BadgeBgColor:         color.NRGBA{R: 30, G: 34, B: 43, A: 200},
		StatusConnectedColor: color.NRGBA{R: 0, G: 230, B: 118, A: 255},
		StatusErrorColor:     color.NRGBA{R: 255, G: 213, B: 79, A: 255},
		StatusLostColor:      color.NRGBA{R: 255, G: 82, B: 82, A: 255},
	}
}

func NewLightPlotTheme() *PlotTheme {
	th := NewDarkPlotTheme()
	th.BackgroundColor = color.NRGBA{R: 250, G: 250, B: 250, A: 255}
	th.AxesColor = color.NRGBA{R: 0, G: 0, B: 0, A: 255}
	th.GridColor = color.NRGBA{R: 230, G: 230, B: 230, A: 255}
	th.LiveCandleDashColor = color.NRGBA{R: 0, G: 0, B: 0, A: 160}
	th.AxesXtextColor = color.NRGBA{R: 60, G: 64, B: 67, A: 255}
	th.AxesYtextColor = color.NRGBA{R: 60, G: 64, B: 67, A: 255}
	th.CrosshairColor = color.NRGBA{R: 60, G: 60, B: 60, A: 140}
	th.HoverTextColor = color.NRGBA{R: 32, G: 33, B: 36, A: 255}
	th.HoverBgColor = color.NRGBA{R: 255, G: 255, B: 255, A: 235}
	th.SessionAsiaColor = color.NRGBA{R: 255, G: 213, B: 79, A: 30}
	th.SessionLondonColor = color.NRGBA{R: 66, G: 165, B: 245, A: 25}
	th.SessionNewYorkColor = color.NRGBA{R: 239, G: 83, B: 80, A: 25}
	th.SessionTextColor = color.NRGBA{R: 95, G: 99, B: 104, A: 200}
	th.DrawingColor = color.NRGBA{R: 32, G: 33, B: 36, A: 220}
	th.DrawingPreviewColor = color.NRGBA{R: 32, G: 33, B: 36, A: 120}
	th.BadgeTextColor = color.NRGBA{R: 32, G: 33, B: 36, A: 255}
	th.BadgeBgColor = color.NRGBA{R: 255, G: 255, B: 255, A: 200}
	return th
}
