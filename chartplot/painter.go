// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The goldchart authors

package chartplot

import (
	"image"
	"image/color"
	"math"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget/material"
	"gioui.org/x/stroke"

	"goldchart/widgets"
)

// Painter is the shared drawing surface handed to every overlay.
// It owns the mapper of the current frame, so all layers project
// through identical coordinates. The segment buffer is reused across
// calls to avoid allocating per frame.
type Painter struct {
	Theme    *widgets.PlotTheme
	Mapper   Mapper
	segments []stroke.Segment
}

func NewPainter(theme *widgets.PlotTheme) *Painter {
	return &Painter{Theme: theme}
}

// BeginFrame installs the projection for this render pass.
func (p *Painter) BeginFrame(m Mapper) {
	p.Mapper = m
	p.segments = p.segments[:0]
}

// ClipFrame limits subsequent drawing to the plot area. The returned
// stack must be popped when the caller is done.
func (p *Painter) ClipFrame(gtx layout.Context) clip.Stack {
	r := image.Rect(int(p.Mapper.Frame.Left), int(p.Mapper.Frame.Top),
		int(p.Mapper.Frame.Right), int(p.Mapper.Frame.Bottom))
	return clip.Rect(r).Push(gtx.Ops)
}

// Line strokes a single straight line.
func (p *Painter) Line(gtx layout.Context, x1, y1, x2, y2 float64, width float32, c color.NRGBA) {
	if math.Round(x1) == math.Round(x2) && math.Round(y1) == math.Round(y2) {
		y2++ // Stroke does not draw zero length lines, see https://github.com/andybalholm/stroke/issues/3
	}
	p.segments = p.segments[:0]
	p.segments = append(p.segments,
		stroke.MoveTo(f32.Pt(float32(x1), float32(y1))),
		stroke.LineTo(f32.Pt(float32(x2), float32(y2))))
	p.strokeSegments(gtx, width, stroke.RoundCap, c)
}

// DashedLine strokes a dashed line. Dash state lives in the stroke
// operation itself, so patterns cannot bleed between layers.
func (p *Painter) DashedLine(gtx layout.Context, x1, y1, x2, y2 float64, width float32, dash []float32, c color.NRGBA) {
	if len(dash) == 0 {
		p.Line(gtx, x1, y1, x2, y2, width, c)
		return
	}
	var path stroke.Path
	path.Segments = []stroke.Segment{
		stroke.MoveTo(f32.Pt(float32(x1), float32(y1))),
		stroke.LineTo(f32.Pt(float32(x2), float32(y2))),
	}
	area := stroke.Stroke{Path: path, Width: width, Dashes: stroke.Dashes{Dashes: dash}}.Op(gtx.Ops)
	paint.FillShape(gtx.Ops, c, area)
}

// ThickVLine draws a candle body or volume bar as a thick vertical
// line with a flat cap. clip.Rect has integer resolution and makes
// candles jump during scrolling, so bodies are stroked instead.
func (p *Painter) ThickVLine(gtx layout.Context, x, y1, y2 float64, width float32, c color.NRGBA) {
	if math.Round(y1) == math.Round(y2) {
		y2-- // minimum height of 1 px
	}
	p.segments = p.segments[:0]
	p.segments = append(p.segments,
		stroke.MoveTo(f32.Pt(float32(x), float32(y1))),
		stroke.LineTo(f32.Pt(float32(x), float32(y2))))
	p.strokeSegments(gtx, width, stroke.FlatCap, c)
}

// StrokeSegments strokes a pre-collected segment batch, used by layers
// that draw many bars of the same color with a single paint operation.
func (p *Painter) StrokeSegments(gtx layout.Context, segments []stroke.Segment, width float32, c color.NRGBA) {
	if len(segments) == 0 {
		return
	}
	var path stroke.Path
	path.Segments = segments
	area := stroke.Stroke{Path: path, Width: width, Cap: stroke.FlatCap}.Op(gtx.Ops)
	paint.FillShape(gtx.Ops, c, area)
}

func (p *Painter) strokeSegments(gtx layout.Context, width float32, lineCap stroke.StrokeCap, c color.NRGBA) {
	if len(p.segments) == 0 {
		return
	}
	var path stroke.Path
	path.Segments = p.segments
	area := stroke.Stroke{Path: path, Width: width, Cap: lineCap}.Op(gtx.Ops)
	paint.FillShape(gtx.Ops, c, area)
}

// FillRect fills an axis-aligned rectangle, used for zone overlays and
// session bands.
func (p *Painter) FillRect(gtx layout.Context, x1, y1, x2, y2 float64, c color.NRGBA) {
	if x2 < x1 {
		x1, x2 = x2, x1
	}
	if y2 < y1 {
		y1, y2 = y2, y1
	}
	r := image.Rect(int(x1), int(y1), int(x2), int(y2))
	if r.Empty() {
		return
	}
	paint.FillShape(gtx.Ops, c, clip.Rect(r).Op())
}

// RecordLabel records a text label and returns its size, so the caller
// can position it before replaying the drawing.
func RecordLabel(labelText string, c color.NRGBA, fontSize int, gtx layout.Context, th *material.Theme) (op.CallOp, image.Point) {
	macro := op.Record(gtx.Ops)
	lbl := material.Label(
		th,
		unit.Sp(fontSize),
		labelText,
	)
	lbl.Color = c
	lbl.Alignment = text.Start
	dims := lbl.Layout(gtx)
	return macro.Stop(), dims.Size
}

// Label paints a text label with its top-left corner at the given
// pixel position.
func (p *Painter) Label(gtx layout.Context, th *material.Theme, x, y float64, labelText string, fontSize int, c color.NRGBA) image.Point {
	call, size := RecordLabel(labelText, c, fontSize, gtx, th)
	stack := op.Offset(image.Point{X: int(x), Y: int(y)}).Push(gtx.Ops)
	call.Add(gtx.Ops)
	stack.Pop()
	return size
}

// Badge paints a label over a filled background box.
func (p *Painter) Badge(gtx layout.Context, th *material.Theme, x, y float64, labelText string, fontSize int, textColor, bgColor color.NRGBA) image.Point {
	call, size := RecordLabel(labelText, textColor, fontSize, gtx, th)
	margin := p.Theme.TextMargin.Dp(gtx)
	p.FillRect(gtx, x, y, x+float64(size.X+2*margin.X), y+float64(size.Y+2*margin.Y), bgColor)
	stack := op.Offset(image.Point{X: int(x) + margin.X, Y: int(y) + margin.Y}).Push(gtx.Ops)
	call.Add(gtx.Ops)
	stack.Pop()
	return image.Point{X: size.X + 2*margin.X, Y: size.Y + 2*margin.Y}
}
