// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The goldchart authors

package chartplot

import (
	"image"
	"reflect"
	"testing"

	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/unit"
	"github.com/stretchr/testify/assert"

	"goldchart/widgets"
)

func paintContext() layout.Context {
	return layout.Context{
		Ops:         new(op.Ops),
		Metric:      unit.Metric{PxPerDp: 1, PxPerSp: 1},
		Constraints: layout.Exact(image.Pt(800, 600)),
	}
}

func recordCandlePaint(t *testing.T, live, flash bool) *op.Ops {
	t.Helper()
	candles := rangedCandles(1990, 2040, 60)
	plot := NewPlot(widgets.NewDarkPlotTheme())
	gtx := paintContext()
	plot.BeginFrame(gtx, NewViewport(), candles)
	plot.PaintCandles(gtx, candles, live, flash)
	return gtx.Ops
}

func TestPaintCandlesFlashesNewestWhileLive(t *testing.T) {
	plain := recordCandlePaint(t, true, false)
	flashed := recordCandlePaint(t, true, true)
	// the flash highlight emits extra paint ops on top of the live candle
	assert.False(t, reflect.DeepEqual(plain, flashed))
}

func TestPaintCandlesFlashesNewestConsolidated(t *testing.T) {
	plain := recordCandlePaint(t, false, false)
	flashed := recordCandlePaint(t, false, true)
	assert.False(t, reflect.DeepEqual(plain, flashed))
}

func TestPaintPriceAxisRendersLabels(t *testing.T) {
	candles := rangedCandles(1990, 2040, 60)
	plot := NewPlot(widgets.NewDarkPlotTheme())
	gtx := paintContext()
	plot.BeginFrame(gtx, NewViewport(), candles)
	before := *gtx.Ops
	plot.PaintPriceAxis(gtx, widgets.NewDarkMaterialTheme())
	assert.False(t, reflect.DeepEqual(before, *gtx.Ops))
}
