// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The goldchart authors

package chartplot

import (
	"image"
	"strconv"
	"time"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget/material"
	"gioui.org/x/stroke"

	"goldchart/chartval"
	"goldchart/widgets"
)

// Note that this is, by design, not a generic plotting library.
// It only draws gold futures candle charts. The X axis is always a
// bar index into the visible slice; timestamps appear on labels only.
type Plot struct {
	Theme   *widgets.PlotTheme
	Painter *Painter
	frame   struct {
		total Frame
		plot  Frame
		// reused across frames to avoid allocating per paint
		upLineSegments   []stroke.Segment
		upBodySegments   []stroke.Segment
		downLineSegments []stroke.Segment
		downBodySegments []stroke.Segment
	}
}

func NewPlot(theme *widgets.PlotTheme) *Plot {
	return &Plot{
		Theme:   theme,
		Painter: NewPainter(theme),
	}
}

// SetTheme swaps the color theme at runtime.
func (plot *Plot) SetTheme(theme *widgets.PlotTheme) {
	plot.Theme = theme
	plot.Painter.Theme = theme
}

// BeginFrame computes the plot area from the window constraints and
// derives the projection for this paint pass.
func (plot *Plot) BeginFrame(gtx layout.Context, v Viewport, visible []chartval.Candle) Mapper {
	marginMin := plot.Theme.AxesMarginMin.Dp(gtx)
	marginMax := plot.Theme.AxesMarginMax.Dp(gtx)
	total := Frame{
		Left:   0,
		Top:    0,
		Right:  float64(gtx.Constraints.Max.X),
		Bottom: float64(gtx.Constraints.Max.Y),
	}
	plotArea := Frame{
		Left:   total.Left + float64(marginMin.X),
		Top:    total.Top + float64(marginMin.Y),
		Right:  total.Right - float64(marginMax.X) - plot.priceAxisWidth(gtx),
		Bottom: total.Bottom - float64(marginMax.Y) - plot.timeAxisHeight(gtx),
	}
	plot.frame.total = total
	plot.frame.plot = plotArea
	m := NewMapper(plotArea, v, visible)
	plot.Painter.BeginFrame(m)
	return m
}

func (plot *Plot) priceAxisWidth(gtx layout.Context) float64 {
	return float64(gtx.Dp(56))
}

func (plot *Plot) timeAxisHeight(gtx layout.Context) float64 {
	return float64(gtx.Dp(22))
}

func (plot *Plot) Frame() Frame {
	return plot.frame.plot
}

// PaintBackground fills the full widget area.
func (plot *Plot) PaintBackground(gtx layout.Context) {
	r := image.Rect(0, 0, gtx.Constraints.Max.X, gtx.Constraints.Max.Y)
	paint.FillShape(gtx.Ops, plot.Theme.BackgroundColor, clip.Rect(r).Op())
}

// PaintGrid draws horizontal grid lines at the price label steps and a
// frame border.
func (plot *Plot) PaintGrid(gtx layout.Context) {
	p := plot.Painter
	frame := plot.frame.plot
	m := p.Mapper
	step := chartval.PriceAxisStep(m.RangeMin, m.PriceRange(), frame.Height())
	start := gridStart(m.RangeMin, step)
	for price := start; price <= m.RangeMax; price += step {
		y := m.PriceToY(price)
		p.Line(gtx, frame.Left, y, frame.Right, y, 1, plot.Theme.GridColor)
	}
	// border on the axis sides only, the top stays open
	p.Line(gtx, frame.Right, frame.Top, frame.Right, frame.Bottom, 1, plot.Theme.AxesColor)
	p.Line(gtx, frame.Left, frame.Bottom, frame.Right, frame.Bottom, 1, plot.Theme.AxesColor)
}

func gridStart(min, step float64) float64 {
	n := int(min / step)
	start := float64(n) * step
	if start < min {
		start += step
	}
	return start
}

// PaintPriceAxis draws the right axis labels at the selected step.
func (plot *Plot) PaintPriceAxis(gtx layout.Context, th *material.Theme) {
	p := plot.Painter
	frame := plot.frame.plot
	m := p.Mapper
	step := chartval.PriceAxisStep(m.RangeMin, m.PriceRange(), frame.Height())
	precision := 2
	if step >= 1 {
		precision = 0
	}
	margin := plot.Theme.TextMargin.Dp(gtx)
	var labelText string
	for price := gridStart(m.RangeMin, step); price <= m.RangeMax; price += step {
		newLabelText := strconv.FormatFloat(price, 'f', precision, 64)
		if newLabelText == labelText {
			continue // do not print text twice if it is unchanged due to precision
		}
		labelText = newLabelText
		y := m.PriceToY(price)
		p.Label(gtx, th, frame.Right+float64(margin.X), y-float64(gtx.Sp(unit.Sp(plot.Theme.AxesYfontSize)))/2,
			labelText, plot.Theme.AxesYfontSize-4, plot.Theme.AxesYtextColor)
	}
}

// PaintCandles draws the visible candles. The last candle of a live
// buffer gets a dashed wick-to-wick outline and a translucent body;
// a freshly appended candle is flashed.
func (plot *Plot) PaintCandles(gtx layout.Context, candles []chartval.Candle, live bool, flash bool) {
	p := plot.Painter
	m := p.Mapper
	frame := plot.frame.plot
	clipRect := image.Rect(int(frame.Left), int(frame.Top), int(frame.Right), int(frame.Bottom))
	defer clip.Rect(clipRect).Push(gtx.Ops).Pop()

	plot.frame.upLineSegments = plot.frame.upLineSegments[:0]
	plot.frame.upBodySegments = plot.frame.upBodySegments[:0]
	plot.frame.downLineSegments = plot.frame.downLineSegments[:0]
	plot.frame.downBodySegments = plot.frame.downBodySegments[:0]

	bodyWidth := float32(m.Spacing * 0.7)
	if bodyWidth < 1 {
		bodyWidth = 1
	}
	last := len(candles) - 1
	for i, c := range candles {
		x := m.BarIndexToX(i)
		// Performance: skip bars fully outside of the plot area before
		// collecting segments. Clipping would also drop them, but only
		// after paying for the paint operations.
		if x+m.Spacing/2 < frame.Left || x-m.Spacing/2 > frame.Right {
			continue
		}
		yLow := m.PriceToY(c.Low)
		yHigh := m.PriceToY(c.High)
		if (yLow < frame.Top && yHigh < frame.Top) || (yLow > frame.Bottom && yHigh > frame.Bottom) {
			continue
		}
		yOpen := m.PriceToY(c.Open)
		yClose := m.PriceToY(c.Close)
		if i == last && flash {
			p.FillRect(gtx, x-float64(bodyWidth), frame.Top, x+float64(bodyWidth), frame.Bottom, plot.Theme.FlashColor)
		}
		if i == last && live {
			plot.paintLiveCandle(gtx, x, yLow, yHigh, yOpen, yClose, bodyWidth, c.IsBullish())
			continue
		}
		wick1 := stroke.MoveTo(f32.Pt(float32(x), float32(yLow)))
		wick2 := stroke.LineTo(f32.Pt(float32(x), float32(yHigh)))
		body1 := stroke.MoveTo(f32.Pt(float32(x), float32(yOpen)))
		body2 := stroke.LineTo(f32.Pt(float32(x), float32(yClose)))
		if c.IsBullish() {
			plot.frame.upLineSegments = append(plot.frame.upLineSegments, wick1, wick2)
			plot.frame.upBodySegments = append(plot.frame.upBodySegments, body1, body2)
		} else {
			plot.frame.downLineSegments = append(plot.frame.downLineSegments, wick1, wick2)
			plot.frame.downBodySegments = append(plot.frame.downBodySegments, body1, body2)
		}
	}
	p.StrokeSegments(gtx, plot.frame.upLineSegments, 1, plot.Theme.CandleUpColor)
	p.StrokeSegments(gtx, plot.frame.upBodySegments, bodyWidth, plot.Theme.CandleUpColor)
	p.StrokeSegments(gtx, plot.frame.downLineSegments, 1, plot.Theme.CandleDownColor)
	p.StrokeSegments(gtx, plot.frame.downBodySegments, bodyWidth, plot.Theme.CandleDownColor)
}

func (plot *Plot) paintLiveCandle(gtx layout.Context, x, yLow, yHigh, yOpen, yClose float64, bodyWidth float32, bullish bool) {
	p := plot.Painter
	c := plot.Theme.CandleDownColor
	if bullish {
		c = plot.Theme.CandleUpColor
	}
	body := c
	body.A = 110
	p.ThickVLine(gtx, x, yOpen, yClose, bodyWidth, body)
	p.DashedLine(gtx, x, yLow, x, yHigh, 1, plot.Theme.LiveCandleDash, plot.Theme.LiveCandleDashColor)
	halfBody := float64(bodyWidth) / 2
	p.DashedLine(gtx, x-halfBody, yOpen, x+halfBody, yOpen, 1, plot.Theme.LiveCandleDash, plot.Theme.LiveCandleDashColor)
	p.DashedLine(gtx, x-halfBody, yClose, x+halfBody, yClose, 1, plot.Theme.LiveCandleDash, plot.Theme.LiveCandleDashColor)
}

// PaintTimeAxis draws timestamp labels along the bottom strip.
func (plot *Plot) PaintTimeAxis(gtx layout.Context, th *material.Theme, candles []chartval.Candle) {
	if len(candles) == 0 {
		return
	}
	p := plot.Painter
	frame := plot.frame.plot
	// aim for a label roughly every 110 px
	stride := int(110 / p.Mapper.Spacing)
	if stride < 1 {
		stride = 1
	}
	format := "15:04"
	if candles[len(candles)-1].Timestamp.Sub(candles[0].Timestamp) > 48*time.Hour {
		format = "01-02 15:04"
	}
	y := frame.Bottom + 4
	for i := 0; i < len(candles); i += stride {
		x := p.Mapper.BarIndexToX(i)
		if x < frame.Left || x > frame.Right {
			continue
		}
		p.Label(gtx, th, x-20, y, candles[i].Timestamp.UTC().Format(format),
			plot.Theme.AxesXfontSize-6, plot.Theme.AxesXtextColor)
	}
}

// PaintDrawings renders the persistent drawings and the in-progress
// preview. Drawing points are data space; startIndex converts their
// buffer index into a visible index.
func (plot *Plot) PaintDrawings(gtx layout.Context, th *material.Theme, drawings []chartval.Drawing, preview *chartval.Drawing, startIndex int) {
	defer plot.Painter.ClipFrame(gtx).Pop()
	for _, d := range drawings {
		plot.paintDrawing(gtx, th, d, startIndex, false)
	}
	if preview != nil {
		plot.paintDrawing(gtx, th, *preview, startIndex, true)
	}
}

func (plot *Plot) paintDrawing(gtx layout.Context, th *material.Theme, d chartval.Drawing, startIndex int, isPreview bool) {
	p := plot.Painter
	frame := plot.frame.plot
	c := plot.Theme.DrawingColor
	if isPreview {
		c = plot.Theme.DrawingPreviewColor
	}
	lineWidth := float32(gtx.Dp(1))
	switch d.Type {
	case chartval.DrawingHorizontal:
		if len(d.Points) < 1 {
			return
		}
		y := p.Mapper.PriceToY(d.Points[0].Price)
		if y < frame.Top || y > frame.Bottom {
			return
		}
		if isPreview {
			p.DashedLine(gtx, frame.Left, y, frame.Right, y, lineWidth, plot.Theme.DrawingPreviewDash, c)
		} else {
			p.Line(gtx, frame.Left, y, frame.Right, y, lineWidth, c)
		}
	case chartval.DrawingTrendline:
		if len(d.Points) < 2 {
			return
		}
		x1 := p.Mapper.BarIndexToX(d.Points[0].BarIndex - startIndex)
		y1 := p.Mapper.PriceToY(d.Points[0].Price)
		x2 := p.Mapper.BarIndexToX(d.Points[1].BarIndex - startIndex)
		y2 := p.Mapper.PriceToY(d.Points[1].Price)
		if !frame.Contains(x1, y1, frame.Width()) && !frame.Contains(x2, y2, frame.Width()) {
			return
		}
		if isPreview {
			p.DashedLine(gtx, x1, y1, x2, y2, lineWidth, plot.Theme.DrawingPreviewDash, c)
		} else {
			p.Line(gtx, x1, y1, x2, y2, lineWidth, c)
		}
	case chartval.DrawingFibonacci:
		if len(d.Points) < 2 {
			return
		}
		for i, level := range chartval.FibonacciLevels(d.Points[0].Price, d.Points[1].Price) {
			y := p.Mapper.PriceToY(level)
			if y < frame.Top || y > frame.Bottom {
				continue
			}
			p.DashedLine(gtx, frame.Left, y, frame.Right, y, lineWidth, plot.Theme.DrawingPreviewDash, plot.Theme.FibColor)
			ratio := chartval.FibonacciRatios[i]
			labelText := strconv.FormatFloat(ratio, 'f', 3, 64) + "  " + strconv.FormatFloat(level, 'f', 2, 64)
			p.Label(gtx, th, frame.Left+4, y-float64(gtx.Sp(12)), labelText, 10, plot.Theme.FibColor)
		}
	}
}

// PaintPositions renders open position markers with entry, stop and
// target lines plus the live P&L.
func (plot *Plot) PaintPositions(gtx layout.Context, th *material.Theme, open []chartval.Position, startIndex int) {
	p := plot.Painter
	frame := plot.frame.plot
	defer p.ClipFrame(gtx).Pop()
	for _, pos := range open {
		y := p.Mapper.PriceToY(pos.EntryPrice)
		if y < frame.Top || y > frame.Bottom {
			continue
		}
		x := p.Mapper.BarIndexToX(pos.EntryIndex - startIndex)
		c := plot.Theme.PositionSellColor
		if pos.Type == chartval.PositionBuy {
			c = plot.Theme.PositionBuyColor
		}
		p.Line(gtx, x, y, frame.Right, y, float32(gtx.Dp(1)), c)
		p.ThickVLine(gtx, x, y-4, y+4, float32(gtx.Dp(4)), c)
		if pos.StopLoss > 0 {
			ySl := p.Mapper.PriceToY(pos.StopLoss)
			p.DashedLine(gtx, x, ySl, frame.Right, ySl, 1, []float32{3, 3}, plot.Theme.StopLossColor)
		}
		if pos.TakeProfit > 0 {
			yTp := p.Mapper.PriceToY(pos.TakeProfit)
			p.DashedLine(gtx, x, yTp, frame.Right, yTp, 1, []float32{3, 3}, plot.Theme.TakeProfitColor)
		}
		pnlColor := plot.Theme.PnlNegativeColor
		if pos.Pnl >= 0 {
			pnlColor = plot.Theme.PnlPositiveColor
		}
		labelText := pos.Type.String() + " " + strconv.FormatFloat(pos.Pnl, 'f', 2, 64)
		p.Label(gtx, th, x+6, y-float64(gtx.Sp(14)), labelText, 11, pnlColor)
	}
}

// PaintCrosshair draws the pointer cross with a price tag on the axis
// and an OHLCV tooltip for the hovered bar.
func (plot *Plot) PaintCrosshair(gtx layout.Context, th *material.Theme, pos f32.Point, hovered *chartval.Candle) {
	p := plot.Painter
	frame := plot.frame.plot
	x := float64(pos.X)
	y := float64(pos.Y)
	if !frame.Contains(x, y, 0) {
		return
	}
	p.DashedLine(gtx, frame.Left, y, frame.Right, y, 1, plot.Theme.CrosshairDash, plot.Theme.CrosshairColor)
	p.DashedLine(gtx, x, frame.Top, x, frame.Bottom, 1, plot.Theme.CrosshairDash, plot.Theme.CrosshairColor)

	price := p.Mapper.YToPrice(y)
	p.Badge(gtx, th, frame.Right+2, y-float64(gtx.Sp(10)),
		strconv.FormatFloat(price, 'f', 2, 64), plot.Theme.AxesYfontSize-4,
		plot.Theme.HoverTextColor, plot.Theme.HoverBgColor)

	if hovered != nil {
		tip := "O " + strconv.FormatFloat(hovered.Open, 'f', 2, 64) +
			"  H " + strconv.FormatFloat(hovered.High, 'f', 2, 64) +
			"  L " + strconv.FormatFloat(hovered.Low, 'f', 2, 64) +
			"  C " + strconv.FormatFloat(hovered.Close, 'f', 2, 64) +
			"  V " + chartval.FormatCompactVolume(hovered.Volume)
		p.Badge(gtx, th, frame.Left+6, frame.Top+6, tip, 11,
			plot.Theme.HoverTextColor, plot.Theme.HoverBgColor)
	}
}

// PaintBadges draws the zoom and timeframe badges plus the connection
// status dot in the top right corner of the plot.
func (plot *Plot) PaintBadges(gtx layout.Context, th *material.Theme, timeframe string, zoom float64, statusColorIdx int) {
	p := plot.Painter
	frame := plot.frame.plot
	labelText := timeframe + "  x" + strconv.FormatFloat(zoom, 'f', 1, 64)
	size := p.Badge(gtx, th, frame.Right-120, frame.Top+6, labelText, 11,
		plot.Theme.BadgeTextColor, plot.Theme.BadgeBgColor)
	statusColor := plot.Theme.StatusConnectedColor
	switch statusColorIdx {
	case 1:
		statusColor = plot.Theme.StatusErrorColor
	case 2:
		statusColor = plot.Theme.StatusLostColor
	}
	dotX := frame.Right - 130
	dotY := frame.Top + 6 + float64(size.Y)/2
	p.ThickVLine(gtx, dotX, dotY-3, dotY+3, float32(gtx.Dp(6)), statusColor)
}
