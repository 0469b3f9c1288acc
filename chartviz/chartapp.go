// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The goldchart authors

package chartviz

import (
	"context"
	"fmt"
	"image"
	"log"
	"math"
	"net/http"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"time"

	"gioui.org/app"
	"gioui.org/f32"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"goldchart/chartapi"
	"goldchart/chartctl"
	"goldchart/chartplot"
	"goldchart/chartval"
	"goldchart/config"
	"goldchart/drawtool"
	"goldchart/memory"
	"goldchart/overlay"
	"goldchart/positions"
	"goldchart/recorder"
	"goldchart/series"
	"goldchart/widgets"
)

const defaultPositionSize = 1.0

// chartTag is the input tag of the candle plot area.
type chartTag struct {
	a *ChartApp
}

// ChartApp owns the window, the data pipeline and the render loop.
// All Ui state is owned by the frame goroutine; background pollers
// communicate through the store, the overlays and the scheduler.
type ChartApp struct {
	window *app.Window
	size   widgets.DpPoint

	config    config.Config
	appConfig config.AppConfig

	matTheme  *material.Theme
	plotTheme *widgets.PlotTheme

	store    *series.Store
	registry *overlay.Registry
	profile  *overlay.VolumeProfile
	icebergs *overlay.Icebergs
	gann     *overlay.Gann
	cycles   *overlay.Cycles

	plot     *chartplot.Plot
	viewport chartplot.Viewport
	machine  *drawtool.Machine
	book     *positions.Book
	calendar *chartval.SessionCalendar

	controller *chartctl.Controller
	scheduler  *chartctl.RedrawScheduler

	client  *chartapi.Client
	stream  *chartapi.TickStream
	poller  *Poller
	history recorder.Recorder
	memory  *memory.PatternMemory

	timeframes        []string
	timeframeIndex    atomic.Int32
	timeframeDropdown *widgets.DropDown
	toolDropdown      *widgets.DropDown
	buttonBuy         widget.Clickable
	buttonSell        widget.Clickable
	buttonCloseAll    widget.Clickable
	buttonTheme       widget.Clickable
	messageField      *widgets.MessageField

	renderError string
	cancel      context.CancelFunc
}

var drawingToolItems = []string{"Cursor", "Trendline", "Horizontal", "Fibonacci"}

func NewChartApp(c config.Config) *ChartApp {
	return &ChartApp{
		config:       c,
		machine:      drawtool.NewMachine(),
		book:         positions.NewBook(),
		calendar:     chartval.NewSessionCalendar(),
		messageField: widgets.NewMessageField(),
	}
}

func (a *ChartApp) Initialize(ctx context.Context) error {
	appConfig, err := a.config.Copy()
	if err != nil {
		return err
	}
	a.appConfig = appConfig
	a.applyTheme(appConfig.LightTheme)

	a.timeframes = appConfig.ChartConfig.Timeframes
	tfIndex := 0
	for i, tf := range a.timeframes {
		if tf == appConfig.ChartConfig.DefaultTimeframe {
			tfIndex = i
		}
	}
	a.timeframeIndex.Store(int32(tfIndex))
	a.timeframeDropdown = widgets.NewDropDown(a.timeframes, tfIndex)
	a.toolDropdown = widgets.NewDropDown(drawingToolItems, 0)

	a.store = series.NewStore(appConfig.ChartConfig.Bars)
	a.viewport = chartplot.NewViewport()
	a.plot = chartplot.NewPlot(a.plotTheme)

	a.profile = overlay.NewVolumeProfile()
	a.icebergs = overlay.NewIcebergs()
	a.gann = overlay.NewGann()
	a.cycles = overlay.NewCycles()
	a.registry = overlay.NewRegistry(
		overlay.NewVwap(),
		overlay.NewRibbon(),
		overlay.NewSessions(a.calendar),
		overlay.NewFvg(),
		overlay.NewSweeps(),
		overlay.NewLiquidity(),
		overlay.NewVolume(),
		a.profile,
		a.icebergs,
		a.gann,
		a.cycles,
	)
	for id, visible := range appConfig.ChartConfig.Overlays {
		a.registry.SetVisible(overlay.Id(id), visible)
	}

	a.scheduler = chartctl.NewRedrawScheduler(a.Invalidate)
	a.controller = chartctl.NewController(&a.viewport, a.machine, a.scheduler)
	a.controller.Callbacks = chartctl.Callbacks{
		ToggleOverlay: a.toggleOverlay,
		ToggleTheme:   a.toggleTheme,
		ResetData:     a.refreshData,
	}

	a.history = recorder.NewNoopRecorder()
	if appConfig.HistoryDbPath != "" {
		history, err := recorder.NewSqliteRecorder(appConfig.HistoryDbPath)
		if err != nil {
			log.Printf("error opening trade history, recording disabled: %v", err)
		} else {
			a.history = history
		}
	}
	patternMemory, err := memory.NewPatternMemory(filepath.Join(config.AppName, "patterns"))
	if err != nil {
		log.Printf("error opening pattern memory: %v", err)
	} else {
		a.memory = patternMemory
	}

	apiClient := &http.Client{Timeout: time.Duration(appConfig.ApiConfig.DataTimeoutSeconds) * time.Second}
	a.client = chartapi.NewClient(appConfig.ApiConfig.BaseUrl, apiClient, appConfig.ApiConfig.RateLimitPerSecond)
	a.stream = chartapi.NewTickStream(appConfig.ApiConfig.WsUrl)
	a.poller = NewPoller(a.client, PollTargets{
		Store:     a.store,
		Scheduler: a.scheduler,
		Profile:   a.profile,
		Icebergs:  a.icebergs,
		Gann:      a.gann,
		Cycles:    a.cycles,
		Recorder:  a.history,
		Timeframe: a.Timeframe,
	}, appConfig.ApiConfig, appConfig.ChartConfig.Bars)

	a.size.X = unit.Dp(appConfig.WindowConfig.Size.X)
	a.size.Y = unit.Dp(appConfig.WindowConfig.Size.Y)

	streamCtx, cancel := context.WithCancel(ctx)
	a.cancel = cancel
	a.poller.Start()
	a.poller.RefreshNow()
	go a.poller.RunTickStream(streamCtx, a.stream)
	return nil
}

// Timeframe returns the active timeframe. Safe from any goroutine.
func (a *ChartApp) Timeframe() string {
	return a.timeframes[a.timeframeIndex.Load()]
}

func (a *ChartApp) Invalidate() {
	if a.window != nil {
		a.window.Invalidate()
	}
}

func (a *ChartApp) applyTheme(light bool) {
	if light {
		a.matTheme = widgets.NewLightMaterialTheme()
		a.plotTheme = widgets.NewLightPlotTheme()
	} else {
		a.matTheme = widgets.NewDarkMaterialTheme()
		a.plotTheme = widgets.NewDarkPlotTheme()
	}
	a.appConfig.LightTheme = light
	if a.plot != nil {
		a.plot.SetTheme(a.plotTheme)
	}
}

func (a *ChartApp) toggleTheme() {
	a.applyTheme(!a.appConfig.LightTheme)
}

func (a *ChartApp) toggleOverlay(id overlay.Id) {
	o, ok := a.registry.Get(id)
	if !ok {
		return
	}
	o.SetVisible(!o.Visible())
	if a.appConfig.ChartConfig.Overlays == nil {
		a.appConfig.ChartConfig.Overlays = make(map[string]bool)
	}
	a.appConfig.ChartConfig.Overlays[string(id)] = o.Visible()
}

func (a *ChartApp) refreshData() {
	a.poller.RefreshNow()
}

func (a *ChartApp) Run(ctx context.Context) {
	a.createWindow()
	err := a.handleEvents(ctx)
	if err != nil {
		log.Printf("terminating with error: %v", err)
	}
	a.terminate()
}

func (a *ChartApp) createWindow() {
	size := a.size
	if size.X == 0 || size.Y == 0 {
		size.X = 1280
		size.Y = 800
	}
	a.window = app.NewWindow(
		app.Title(a.config.GetAppName()),
		app.Size(size.X, size.Y),
	)
}

func (a *ChartApp) handleEvents(ctx context.Context) error {
	var ops op.Ops
	for e := range a.window.Events() {
		switch e := e.(type) {
		case system.FrameEvent:
			gtx := layout.NewContext(&ops, e)
			paint.Fill(gtx.Ops, a.matTheme.Bg)
			a.layout(gtx)
			e.Frame(gtx.Ops)
			a.scheduler.FrameDone()
		case system.DestroyEvent:
			return e.Err
		}
	}
	return nil
}

func (a *ChartApp) layout(gtx layout.Context) {
	a.handleTopBarInput(gtx)
	layout.Flex{
		Axis: layout.Vertical,
	}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return a.layoutTopBar(gtx)
		}),
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			a.layoutChart(gtx)
			return layout.Dimensions{Size: gtx.Constraints.Max}
		}),
	)
	if a.renderError != "" {
		a.messageField.Layout("Chart render failed: "+a.renderError, gtx, a.matTheme)
	} else if a.store.Status() == series.StatusDisconnected {
		a.messageField.Layout("Connection to backend lost. Retrying...", gtx, a.matTheme)
	}
}

func (a *ChartApp) handleTopBarInput(gtx layout.Context) {
	if i := a.timeframeDropdown.ClickedIndex(); i >= 0 {
		a.timeframeDropdown.SetSelectedIndex(i)
		a.switchTimeframe(i)
	}
	if i := a.toolDropdown.ClickedIndex(); i >= 0 {
		a.toolDropdown.SetSelectedIndex(i)
		switch i {
		case 1:
			a.machine.SelectTool(chartval.DrawingTrendline)
		case 2:
			a.machine.SelectTool(chartval.DrawingHorizontal)
		case 3:
			a.machine.SelectTool(chartval.DrawingFibonacci)
		default:
			a.machine.Cancel()
		}
	}
	if a.buttonBuy.Clicked(gtx) {
		a.openPosition(chartval.PositionBuy)
	}
	if a.buttonSell.Clicked(gtx) {
		a.openPosition(chartval.PositionSell)
	}
	if a.buttonCloseAll.Clicked(gtx) {
		a.closeAllPositions()
	}
	if a.buttonTheme.Clicked(gtx) {
		a.toggleTheme()
	}
}

func (a *ChartApp) switchTimeframe(index int) {
	old := a.Timeframe()
	a.store.SaveViewport(old, a.viewport)
	a.timeframeIndex.Store(int32(index))
	a.viewport = a.store.SavedViewport(a.Timeframe())
	a.machine.Cancel()
	a.poller.RefreshNow()
	a.scheduler.Request()
}

func (a *ChartApp) openPosition(t chartval.PositionType) {
	timeframe := a.Timeframe()
	lastClose, ok := a.store.LastClose(timeframe)
	if !ok {
		return
	}
	entryIndex := a.store.Len(timeframe) - 1
	_, err := a.book.Add(t, lastClose, 0, 0, defaultPositionSize, entryIndex)
	if err != nil {
		log.Printf("error opening position: %v", err)
		return
	}
	a.scheduler.Request()
}

func (a *ChartApp) closeAllPositions() {
	lastClose, ok := a.store.LastClose(a.Timeframe())
	if !ok {
		return
	}
	closed := a.book.CloseAll(lastClose)
	for _, trade := range closed {
		if err := a.history.RecordTrade(&trade); err != nil {
			log.Printf("error recording trade: %v", err)
		}
		if a.memory != nil {
			outcome := "loss"
			if trade.ClosedPnl >= 0 {
				outcome = "win"
			}
			a.memory.Remember(memory.Pattern{
				Id:          strconv.Itoa(trade.Id) + "@" + strconv.FormatInt(trade.CloseTime.Unix(), 10),
				Kind:        "trade",
				Timeframe:   a.Timeframe(),
				Description: trade.Type.String() + " " + strconv.FormatFloat(trade.EntryPrice, 'f', 2, 64),
				Outcome:     outcome,
			})
		}
	}
	if len(closed) > 0 {
		a.scheduler.Request()
	}
}

func (a *ChartApp) layoutTopBar(gtx layout.Context) layout.Dimensions {
	inset := layout.Inset{Top: 4, Right: 8, Bottom: 4, Left: 8}
	timeframe := a.Timeframe()
	lastClose, _ := a.store.LastClose(timeframe)
	pnl := a.book.TotalPnl(lastClose)

	return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return inset.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				return a.timeframeDropdown.Layout(a.matTheme, gtx)
			})
		}),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return inset.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				return a.toolDropdown.Layout(a.matTheme, gtx)
			})
		}),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return inset.Layout(gtx, material.Button(a.matTheme, &a.buttonBuy, "Buy").Layout)
		}),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return inset.Layout(gtx, material.Button(a.matTheme, &a.buttonSell, "Sell").Layout)
		}),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return inset.Layout(gtx, material.Button(a.matTheme, &a.buttonCloseAll, "Close All").Layout)
		}),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return inset.Layout(gtx, material.Button(a.matTheme, &a.buttonTheme, "Theme").Layout)
		}),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			label := material.Body1(a.matTheme, "P&L "+strconv.FormatFloat(pnl, 'f', 2, 64))
			if pnl >= 0 {
				label.Color = a.plotTheme.PnlPositiveColor
			} else {
				label.Color = a.plotTheme.PnlNegativeColor
			}
			return inset.Layout(gtx, label.Layout)
		}),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			if prediction, ok := a.poller.Prediction(); ok {
				text := "5m " + prediction.Direction + " " +
					strconv.FormatFloat(prediction.Confidence*100, 'f', 0, 64) + "% → " +
					strconv.FormatFloat(prediction.PredictedClose, 'f', 2, 64)
				return inset.Layout(gtx, material.Body2(a.matTheme, text).Layout)
			}
			return layout.Dimensions{}
		}),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			if ratio, ok := a.poller.OrderFlow(); ok {
				side := "buy"
				pct := ratio * 100
				if ratio < 0.5 {
					side = "sell"
					pct = 100 - pct
				}
				text := "flow " + strconv.FormatFloat(pct, 'f', 0, 64) + "% " + side
				return inset.Layout(gtx, material.Body2(a.matTheme, text).Layout)
			}
			return layout.Dimensions{}
		}),
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			narrative := a.poller.Narrative()
			if narrative == "" {
				return layout.Dimensions{}
			}
			label := material.Body2(a.matTheme, narrative)
			label.MaxLines = 1
			return inset.Layout(gtx, label.Layout)
		}),
	)
}

// layoutChart paints one chart frame. A panic inside the paint path is
// contained here: the frame falls back to a plain background with an
// error message instead of taking the whole app down.
func (a *ChartApp) layoutChart(gtx layout.Context) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("chart render failed: %v", r)
			a.renderError = fmt.Sprint(r)
		}
	}()

	timeframe := a.Timeframe()
	all := a.store.Candles(timeframe)
	now := time.Now()
	if a.controller.AutoScroll && a.store.HasNewCandle(timeframe, now) {
		a.viewport.BarPan = 0
	}
	visible, startIndex := a.store.VisibleSlice(timeframe, a.viewport)
	m := a.plot.BeginFrame(gtx, a.viewport, visible)
	a.handleChartInput(gtx)
	a.controller.SetFrameContext(m, startIndex)

	hoveredIndex := a.controller.HoveredIndex(len(visible))
	var hovered *chartval.Candle
	if hoveredIndex >= 0 {
		hovered = &visible[hoveredIndex]
	}
	a.registry.UpdateAll(overlay.Snapshot{
		Candles:    visible,
		All:        all,
		StartIndex: startIndex,
		Hovered:    hoveredIndex,
		Now:        now,
		Calendar:   a.calendar,
	})

	a.plot.PaintBackground(gtx)
	a.plot.PaintGrid(gtx)
	painter := a.plot.Painter
	a.registry.PlotRange(painter, gtx, a.matTheme, 0, overlay.ZCandles-1)
	flash := a.store.HasNewCandle(timeframe, now)
	a.plot.PaintCandles(gtx, visible, true, flash)
	a.registry.PlotRange(painter, gtx, a.matTheme, overlay.ZCandles+1, math.MaxInt)
	a.plot.PaintPriceAxis(gtx, a.matTheme)
	a.plot.PaintTimeAxis(gtx, a.matTheme, visible)

	var preview *chartval.Drawing
	if x, y, inside := a.controller.Pointer(); inside && a.machine.State() == drawtool.CollectingPoints {
		cursor := chartval.DrawingPoint{
			BarIndex: startIndex + m.XToBarIndex(x),
			Price:    m.YToPrice(y),
		}
		if d, ok := a.machine.Preview(cursor); ok {
			preview = &d
		}
	}
	a.plot.PaintDrawings(gtx, a.matTheme, a.machine.Drawings(), preview, startIndex)

	lastClose, _ := a.store.LastClose(timeframe)
	a.plot.PaintPositions(gtx, a.matTheme, a.book.Open(lastClose), startIndex)

	if x, y, inside := a.controller.Pointer(); inside {
		a.plot.PaintCrosshair(gtx, a.matTheme, f32.Pt(float32(x), float32(y)), hovered)
	}

	statusIdx := 0
	switch a.store.Status() {
	case series.StatusError:
		statusIdx = 1
	case series.StatusDisconnected:
		statusIdx = 2
	}
	a.plot.PaintBadges(gtx, a.matTheme, timeframe, a.viewport.ZoomLevel, statusIdx)

	if a.controller.ShowHelp {
		a.paintHelp(gtx)
	}
	a.renderError = ""
}

var helpLines = []string{
	"drag pan   wheel zoom   +/- zoom   arrows pan",
	"R reset   A auto-scroll   L lock price scale",
	"V volume profile   S sessions   T theme   H help",
}

func (a *ChartApp) paintHelp(gtx layout.Context) {
	p := a.plot.Painter
	frame := a.plot.Frame()
	y := frame.Top + 40
	for _, line := range helpLines {
		size := p.Badge(gtx, a.matTheme, frame.Left+20, y, line, 11,
			a.plotTheme.BadgeTextColor, a.plotTheme.BadgeBgColor)
		y += float64(size.Y) + 6
	}
}

// handleChartInput drains last frame's pointer and key events and
// registers the input areas for the next frame.
func (a *ChartApp) handleChartInput(gtx layout.Context) {
	tag := chartTag{a: a}
	for _, gtxEvent := range gtx.Events(tag) {
		switch e := gtxEvent.(type) {
		case pointer.Event:
			switch e.Type {
			case pointer.Press:
				key.FocusOp{Tag: tag}.Add(gtx.Ops)
				a.controller.PointerDown(float64(e.Position.X), float64(e.Position.Y))
			case pointer.Drag, pointer.Move:
				a.controller.PointerMove(float64(e.Position.X), float64(e.Position.Y))
			case pointer.Release:
				a.controller.PointerUp()
			case pointer.Leave, pointer.Cancel:
				a.controller.PointerLeave()
			case pointer.Scroll:
				a.controller.Wheel(float64(e.Scroll.Y))
			}
		case key.Event:
			if e.State == key.Press {
				if e.Name == key.NameEscape {
					a.machine.Cancel()
					a.scheduler.Request()
					continue
				}
				a.controller.HandleKey(e.Name, false)
			}
		}
	}

	frame := a.plot.Frame()
	area := clip.Rect(image.Rect(int(frame.Left), int(frame.Top), int(frame.Right), int(frame.Bottom))).Push(gtx.Ops)
	pointer.InputOp{
		Tag:   tag,
		Types: pointer.Press | pointer.Release | pointer.Move | pointer.Drag | pointer.Scroll | pointer.Leave,
		ScrollBounds: image.Rectangle{
			Min: image.Point{X: 0, Y: math.MinInt},
			Max: image.Point{X: 0, Y: math.MaxInt},
		},
	}.Add(gtx.Ops)
	key.InputOp{
		Tag: tag,
		Keys: key.Set("R|A|V|L|S|T|H|?|+|=|-|" +
			key.NameLeftArrow + "|" + key.NameRightArrow + "|" +
			key.NameUpArrow + "|" + key.NameDownArrow + "|" + key.NameEscape),
	}.Add(gtx.Ops)
	area.Pop()
}

func (a *ChartApp) saveConfiguration() error {
	appConfig, err := a.config.Lock()
	if err != nil {
		return err
	}
	appConfig.LightTheme = a.appConfig.LightTheme
	appConfig.ChartConfig.Overlays = a.appConfig.ChartConfig.Overlays
	appConfig.ChartConfig.DefaultTimeframe = a.Timeframe()
	return a.config.Unlock(appConfig)
}

func (a *ChartApp) terminate() {
	if err := a.saveConfiguration(); err != nil {
		log.Printf("error saving configuration: %v", err)
	}
	a.cancel()
	a.poller.Stop()
	if err := a.history.Close(); err != nil {
		log.Printf("error closing trade history: %v", err)
	}
}
