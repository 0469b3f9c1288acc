// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The goldchart authors

package widgets

import (
	"image"
	"testing"

	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/unit"
	"github.com/stretchr/testify/assert"
)

func widgetContext() layout.Context {
	return layout.Context{
		Ops:         new(op.Ops),
		Metric:      unit.Metric{PxPerDp: 1, PxPerSp: 1},
		Constraints: layout.Constraints{Max: image.Pt(400, 300)},
	}
}

func TestDropDownClickedIndexResets(t *testing.T) {
	d := NewDropDown([]string{"1m", "5m", "15m"}, 1)
	assert.Equal(t, -1, d.ClickedIndex())

	d.clicked = 2
	assert.Equal(t, 2, d.ClickedIndex())
	// consumed after the first read
	assert.Equal(t, -1, d.ClickedIndex())
}

func TestDropDownLayoutCollapsed(t *testing.T) {
	d := NewDropDown([]string{"1m", "5m"}, 0)
	dims := d.Layout(NewDarkMaterialTheme(), widgetContext())
	assert.Greater(t, dims.Size.X, 0)
	assert.Greater(t, dims.Size.Y, 0)
	assert.False(t, d.open)
}

func TestDropDownCollapsesWithoutFocus(t *testing.T) {
	d := NewDropDown([]string{"1m", "5m"}, 0)
	d.open = true
	// an open menu whose button lost focus folds on the next frame
	d.Layout(NewDarkMaterialTheme(), widgetContext())
	assert.False(t, d.open)
	assert.Empty(t, d.menu.Options)
}
