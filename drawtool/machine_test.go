// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The goldchart authors

package drawtool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goldchart/chartval"
)

func TestTrendlineTwoClicks(t *testing.T) {
	m := NewMachine()
	assert.Equal(t, Idle, m.State())

	m.SelectTool(chartval.DrawingTrendline)
	assert.Equal(t, ToolSelected, m.State())

	done := m.AddPoint(chartval.DrawingPoint{BarIndex: 10, Price: 2000})
	assert.False(t, done)
	assert.Equal(t, CollectingPoints, m.State())

	done = m.AddPoint(chartval.DrawingPoint{BarIndex: 20, Price: 2010})
	assert.True(t, done)
	assert.Equal(t, Idle, m.State())

	require.Len(t, m.Drawings(), 1)
	d := m.Drawings()[0]
	assert.Equal(t, chartval.DrawingTrendline, d.Type)
	require.Len(t, d.Points, 2)
	assert.Equal(t, 2000.0, d.Points[0].Price)
	assert.Equal(t, 2010.0, d.Points[1].Price)
}

func TestHorizontalSingleClick(t *testing.T) {
	m := NewMachine()
	m.SelectTool(chartval.DrawingHorizontal)
	done := m.AddPoint(chartval.DrawingPoint{BarIndex: 5, Price: 2005})
	assert.True(t, done)
	assert.Equal(t, Idle, m.State())
	require.Len(t, m.Drawings(), 1)
	assert.Len(t, m.Drawings()[0].Points, 1)
}

func TestReselectCancels(t *testing.T) {
	m := NewMachine()
	m.SelectTool(chartval.DrawingFibonacci)
	m.AddPoint(chartval.DrawingPoint{BarIndex: 1, Price: 2000})
	assert.Equal(t, CollectingPoints, m.State())

	// pressing the armed tool button again aborts
	m.SelectTool(chartval.DrawingFibonacci)
	assert.Equal(t, Idle, m.State())
	assert.Empty(t, m.Drawings())

	// the same tool can be re-armed immediately
	m.SelectTool(chartval.DrawingFibonacci)
	assert.Equal(t, ToolSelected, m.State())
}

func TestSwitchToolDiscardsPoints(t *testing.T) {
	m := NewMachine()
	m.SelectTool(chartval.DrawingTrendline)
	m.AddPoint(chartval.DrawingPoint{BarIndex: 1, Price: 2000})
	m.SelectTool(chartval.DrawingHorizontal)
	assert.Equal(t, ToolSelected, m.State())

	done := m.AddPoint(chartval.DrawingPoint{BarIndex: 3, Price: 2003})
	assert.True(t, done)
	require.Len(t, m.Drawings(), 1)
	assert.Equal(t, chartval.DrawingHorizontal, m.Drawings()[0].Type)
}

func TestClickWhileIdleIgnored(t *testing.T) {
	m := NewMachine()
	assert.False(t, m.AddPoint(chartval.DrawingPoint{BarIndex: 1, Price: 2000}))
	assert.Empty(t, m.Drawings())
}

func TestPreview(t *testing.T) {
	m := NewMachine()
	_, ok := m.Preview(chartval.DrawingPoint{BarIndex: 2, Price: 2002})
	assert.False(t, ok)

	m.SelectTool(chartval.DrawingTrendline)
	_, ok = m.Preview(chartval.DrawingPoint{BarIndex: 2, Price: 2002})
	assert.False(t, ok)

	m.AddPoint(chartval.DrawingPoint{BarIndex: 1, Price: 2000})
	preview, ok := m.Preview(chartval.DrawingPoint{BarIndex: 7, Price: 2012})
	require.True(t, ok)
	require.Len(t, preview.Points, 2)
	assert.Equal(t, 2012.0, preview.Points[1].Price)

	// the preview does not mutate the recorded points
	preview2, _ := m.Preview(chartval.DrawingPoint{BarIndex: 9, Price: 2020})
	assert.Equal(t, 2020.0, preview2.Points[1].Price)
	assert.Len(t, m.points, 1)
}

func TestDrawingsPersistAndClear(t *testing.T) {
	m := NewMachine()
	for i := 0; i < 3; i++ {
		m.SelectTool(chartval.DrawingHorizontal)
		m.AddPoint(chartval.DrawingPoint{BarIndex: i, Price: 2000 + float64(i)})
	}
	assert.Len(t, m.Drawings(), 3)
	m.ClearDrawings()
	assert.Empty(t, m.Drawings())
}
