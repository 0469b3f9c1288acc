// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The goldchart authors

package chartctl

import (
	"math"

	"goldchart/chartplot"
	"goldchart/chartval"
	"goldchart/drawtool"
	"goldchart/overlay"
)

const (
	wheelZoomOutFactor = 0.9
	wheelZoomInFactor  = 1.1
	keyZoomInFactor    = 1.2
	keyZoomOutFactor   = 0.8
	keyPanBars         = 5
	keyPanRangeRatio   = 0.05
)

// Callbacks are the actions a key press triggers outside the viewport
// itself. Nil callbacks are skipped.
type Callbacks struct {
	ToggleOverlay func(id overlay.Id)
	ToggleTheme   func()
	ResetData     func()
}

// Controller turns pointer and key input into viewport and drawing
// tool mutations. It owns the gesture lifecycle: drags measure against
// the press position, commit on release and cancel when the pointer
// leaves the plot.
type Controller struct {
	Viewport  *chartplot.Viewport
	Machine   *drawtool.Machine
	Scheduler *RedrawScheduler
	Callbacks Callbacks

	AutoScroll bool
	ShowHelp   bool

	panning          bool
	pressX, pressY   float64
	pointerX         float64
	pointerY         float64
	pointerInside    bool
	lastMapper       chartplot.Mapper
	lastStartIndex   int
	haveFrameContext bool
}

func NewController(v *chartplot.Viewport, m *drawtool.Machine, s *RedrawScheduler) *Controller {
	return &Controller{
		Viewport:   v,
		Machine:    m,
		Scheduler:  s,
		AutoScroll: true,
	}
}

// SetFrameContext records the projection of the last painted frame.
// Input arriving between frames converts through it.
func (c *Controller) SetFrameContext(m chartplot.Mapper, startIndex int) {
	c.lastMapper = m
	c.lastStartIndex = startIndex
	c.haveFrameContext = true
}

// Pointer returns the crosshair position, valid while inside the plot.
func (c *Controller) Pointer() (x, y float64, inside bool) {
	return c.pointerX, c.pointerY, c.pointerInside
}

// HoveredIndex is the visible bar index under the pointer, or -1.
func (c *Controller) HoveredIndex(visibleLen int) int {
	if !c.pointerInside || !c.haveFrameContext {
		return -1
	}
	i := c.lastMapper.XToBarIndex(c.pointerX)
	if i < 0 || i >= visibleLen {
		return -1
	}
	return i
}

// PointerDown either records a drawing point (when a tool is armed) or
// begins a pan gesture.
func (c *Controller) PointerDown(x, y float64) {
	if !c.haveFrameContext {
		return
	}
	if c.Machine != nil && c.Machine.State() != drawtool.Idle {
		point := chartval.DrawingPoint{
			BarIndex: c.lastStartIndex + c.lastMapper.XToBarIndex(x),
			Price:    c.lastMapper.YToPrice(y),
		}
		c.Machine.AddPoint(point)
		c.Scheduler.Request()
		return
	}
	c.panning = true
	c.pressX = x
	c.pressY = y
}

// PointerMove updates the crosshair and, while panning, the temp pan
// offsets. The drag always measures against the press position rather
// than accumulating per-move deltas, so there is no drift.
func (c *Controller) PointerMove(x, y float64) {
	c.pointerX = x
	c.pointerY = y
	c.pointerInside = true
	if c.panning && c.haveFrameContext {
		dx := x - c.pressX
		dy := y - c.pressY
		deltaBars := int(math.Round(dx / c.lastMapper.Spacing))
		deltaPrice := (dy / c.lastMapper.Frame.Height()) * c.lastMapper.PriceRange()
		c.Viewport.Pan(deltaBars, deltaPrice)
	}
	c.Scheduler.Request()
}

// PointerUp commits an in-progress pan.
func (c *Controller) PointerUp() {
	if c.panning {
		c.Viewport.CommitPan()
		c.panning = false
		c.Scheduler.Request()
	}
}

// PointerLeave cancels an in-progress pan without committing and
// clears the crosshair.
func (c *Controller) PointerLeave() {
	if c.panning {
		c.Viewport.CancelPan()
		c.panning = false
	}
	c.pointerInside = false
	c.Scheduler.Request()
}

// Wheel applies one zoom step per event. Wheel events are naturally
// rate limited, so the redraw request is issued unconditionally.
func (c *Controller) Wheel(deltaY float64) {
	if deltaY > 0 {
		c.Viewport.Zoom(wheelZoomOutFactor)
	} else {
		c.Viewport.Zoom(wheelZoomInFactor)
	}
	c.Scheduler.Request()
}

// HandleKey dispatches one key press. Every binding no-ops while a
// text editor has focus. Returns false for unbound keys.
func (c *Controller) HandleKey(name string, editorFocused bool) bool {
	if editorFocused {
		return false
	}
	switch name {
	case "R":
		c.Viewport.Reset()
	case "A":
		c.AutoScroll = !c.AutoScroll
		if c.AutoScroll {
			c.Viewport.BarPan = 0
		}
	case "V":
		c.toggleOverlay(overlay.VolumeProfileId)
	case "L":
		c.togglePriceLock()
	case "S":
		c.toggleOverlay(overlay.SessionId)
	case "T":
		if c.Callbacks.ToggleTheme != nil {
			c.Callbacks.ToggleTheme()
		}
	case "+", "=":
		c.Viewport.Zoom(keyZoomInFactor)
	case "-":
		c.Viewport.Zoom(keyZoomOutFactor)
	case "←":
		c.Viewport.PanCommitted(keyPanBars, 0)
	case "→":
		c.Viewport.PanCommitted(-keyPanBars, 0)
	case "↑":
		c.Viewport.PanCommitted(0, c.panPriceStep())
	case "↓":
		c.Viewport.PanCommitted(0, -c.panPriceStep())
	case "H", "?":
		c.ShowHelp = !c.ShowHelp
	default:
		return false
	}
	c.Scheduler.Request()
	return true
}

func (c *Controller) toggleOverlay(id overlay.Id) {
	if c.Callbacks.ToggleOverlay != nil {
		c.Callbacks.ToggleOverlay(id)
	}
}

func (c *Controller) panPriceStep() float64 {
	if !c.haveFrameContext {
		return 0
	}
	return c.lastMapper.PriceRange() * keyPanRangeRatio
}

// togglePriceLock freezes the currently displayed span, or releases
// it. Locking keeps the span, not the position; panning stays active.
func (c *Controller) togglePriceLock() {
	if c.Viewport.PriceScaleLocked {
		c.Viewport.UnlockPriceScale()
		return
	}
	if !c.haveFrameContext {
		return
	}
	pan := c.Viewport.EffectivePricePan()
	c.Viewport.LockPriceScale(c.lastMapper.RangeMin-pan, c.lastMapper.RangeMax-pan)
}
