// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The goldchart authors

package widgets

import (
	"image"
	"image/color"

	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/widget/material"
)

var messageBannerColor = color.NRGBA{R: 150, G: 0, B: 0, A: 250}

// MessageField paints a transient alert banner in the top left corner,
// used for connection loss and failed chart frames. It draws on top of
// whatever was laid out before it.
type MessageField struct {
}

func NewMessageField() *MessageField {
	return &MessageField{}
}

func (f *MessageField) Layout(txt string, gtx layout.Context, th *material.Theme) layout.Dimensions {
	label := material.Body1(th, txt)
	label.Color = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	macro := op.Record(gtx.Ops)
	textDims := label.Layout(gtx)
	text := macro.Stop()

	padX := gtx.Dp(25)
	padY := gtx.Dp(20)
	banner := image.Rectangle{Max: image.Point{
		X: textDims.Size.X + 2*padX,
		Y: textDims.Size.Y + 2*padY,
	}}
	defer clip.Rect(banner).Push(gtx.Ops).Pop()
	paint.Fill(gtx.Ops, messageBannerColor)

	offset := op.Offset(image.Point{X: padX, Y: padY}).Push(gtx.Ops)
	text.Add(gtx.Ops)
	offset.Pop()
	return layout.Dimensions{Size: banner.Size()}
}
