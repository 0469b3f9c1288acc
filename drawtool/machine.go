// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The goldchart authors

package drawtool

import (
	"goldchart/chartval"
)

// State of the drawing tool.
type State int

const (
	Idle State = iota
	ToolSelected
	CollectingPoints
)

// Machine collects clicks into finished drawings. Points are recorded
// in data space immediately, so an in-progress drawing survives pan
// and zoom between clicks. Finished drawings persist in order until
// explicitly cleared and are never mutated afterwards.
type Machine struct {
	state    State
	tool     chartval.DrawingType
	points   []chartval.DrawingPoint
	drawings []chartval.Drawing
}

func NewMachine() *Machine {
	return &Machine{}
}

func (m *Machine) State() State {
	return m.state
}

// ActiveTool is only meaningful outside Idle.
func (m *Machine) ActiveTool() chartval.DrawingType {
	return m.tool
}

// SelectTool arms a tool. Re-selecting the armed tool cancels it and
// discards any in-progress points; selecting a different tool switches
// to it, also discarding progress.
func (m *Machine) SelectTool(tool chartval.DrawingType) {
	if m.state != Idle && m.tool == tool {
		m.reset()
		return
	}
	m.state = ToolSelected
	m.tool = tool
	m.points = m.points[:0]
}

// AddPoint records a canvas click. Returns true when the click
// completed a drawing.
func (m *Machine) AddPoint(point chartval.DrawingPoint) bool {
	if m.state == Idle {
		return false
	}
	m.state = CollectingPoints
	m.points = append(m.points, point)
	if len(m.points) < m.tool.NumPoints() {
		return false
	}
	m.drawings = append(m.drawings, chartval.Drawing{
		Type:   m.tool,
		Points: append([]chartval.DrawingPoint(nil), m.points...),
	})
	m.reset()
	return true
}

// Cancel aborts any in-progress drawing.
func (m *Machine) Cancel() {
	m.reset()
}

func (m *Machine) reset() {
	m.state = Idle
	m.points = m.points[:0]
}

// Preview returns the provisional drawing from the recorded points to
// the live cursor, redrawn every frame while collecting.
func (m *Machine) Preview(cursor chartval.DrawingPoint) (chartval.Drawing, bool) {
	if m.state != CollectingPoints || len(m.points) == 0 {
		return chartval.Drawing{}, false
	}
	points := append([]chartval.DrawingPoint(nil), m.points...)
	points = append(points, cursor)
	return chartval.Drawing{Type: m.tool, Points: points}, true
}

// Drawings returns the persistent drawing list.
func (m *Machine) Drawings() []chartval.Drawing {
	return m.drawings
}

func (m *Machine) ClearDrawings() {
	m.drawings = nil
}
