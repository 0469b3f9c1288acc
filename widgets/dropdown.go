// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The goldchart authors

package widgets

import (
	"image"
	"image/color"

	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/component"
)

// DropDown is a compact selector for chart settings such as the
// timeframe and the active drawing tool. The open menu is deferred so
// it paints above the chart area.
type DropDown struct {
	options  []dropOption
	selected int
	clicked  int
	open     bool
	button   widget.Clickable
	menu     component.MenuState
}

type dropOption struct {
	text  string
	click *widget.Clickable
}

func NewDropDown(items []string, selectedIndex int) *DropDown {
	d := DropDown{
		selected: selectedIndex,
		clicked:  -1,
	}
	for _, t := range items {
		d.options = append(d.options, dropOption{text: t, click: new(widget.Clickable)})
	}
	return &d
}

// ClickedIndex returns the option chosen since the last call, or -1.
// Call from the frame goroutine.
func (d *DropDown) ClickedIndex() int {
	c := d.clicked
	d.clicked = -1
	return c
}

// SetSelectedIndex updates the collapsed button caption. Call from the
// frame goroutine.
func (d *DropDown) SetSelectedIndex(index int) {
	d.selected = index
}

func (d *DropDown) Layout(th *material.Theme, gtx layout.Context) layout.Dimensions {
	if d.open {
		for i := range d.options {
			if d.options[i].click.Pressed() {
				d.clicked = i
				d.open = false
				op.InvalidateOp{}.Add(gtx.Ops)
			}
		}
	}
	if d.button.Clicked(gtx) {
		d.button.Focus()
		d.open = !d.open
		op.InvalidateOp{}.Add(gtx.Ops)
	} else if d.open && !d.button.Focused() {
		// Clicking anywhere else collapses the menu.
		d.open = false
		op.InvalidateOp{}.Add(gtx.Ops)
	}

	var caption string
	if d.selected >= 0 && d.selected < len(d.options) {
		caption = d.options[d.selected].text
	}
	button := material.Button(th, &d.button, caption)
	dims := layout.Inset{Top: 10, Right: 1, Left: 1}.Layout(gtx, button.Layout)

	if d.open && len(d.options) > 0 {
		d.menu.Options = d.menu.Options[:0]
		for _, o := range d.options {
			d.menu.Options = append(d.menu.Options, component.MenuItem(th, o.click, o.text).Layout)
		}
		macro := op.Record(gtx.Ops)
		offset := op.Offset(image.Pt(0, dims.Size.Y+gtx.Dp(2))).Push(gtx.Ops)
		d.menuStyle(th).Layout(gtx)
		offset.Pop()
		op.Defer(gtx.Ops, macro.Stop())
	}
	return dims
}

// menuStyle strips the material shadow, which looks out of place on
// top of a dark chart.
func (d *DropDown) menuStyle(th *material.Theme) component.MenuStyle {
	m := component.Menu(th, &d.menu)
	m.AmbientColor = th.Palette.ContrastBg
	m.PenumbraColor = color.NRGBA{}
	m.UmbraColor = color.NRGBA{}
	return m
}
