// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The goldchart authors

package chartviz

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"goldchart/chartapi"
	"goldchart/chartctl"
	"goldchart/chartval"
	"goldchart/config"
	"goldchart/overlay"
	"goldchart/recorder"
	"goldchart/series"
)

const tickStreamRetryDelay = 5 * time.Second

// PollTargets are the sinks a poll response is applied to. Responses
// overwrite the previous state of their target; a late response simply
// loses to the next one.
type PollTargets struct {
	Store     *series.Store
	Scheduler *chartctl.RedrawScheduler
	Profile   *overlay.VolumeProfile
	Icebergs  *overlay.Icebergs
	Gann      *overlay.Gann
	Cycles    *overlay.Cycles
	Recorder  recorder.Recorder
	// Timeframe returns the currently displayed timeframe. Polls always
	// target the active one.
	Timeframe func() string
}

// Poller periodically refreshes chart data, indicators and forecasts
// from the backend. Each concern runs on its own schedule so a slow
// indicator computation never delays the candle refresh.
type Poller struct {
	cron    *cron.Cron
	client  *chartapi.Client
	targets PollTargets
	bars    int
	timeout time.Duration

	mu             sync.RWMutex
	prediction     chartapi.Prediction
	havePrediction bool
	narrative      string
	source         string
	buyRatio       float64
	haveFlow       bool
	recordedSweeps map[string]struct{}
}

func NewPoller(client *chartapi.Client, targets PollTargets, apiConfig config.ApiConfig, bars int) *Poller {
	p := &Poller{
		cron:           cron.New(),
		client:         client,
		targets:        targets,
		bars:           bars,
		timeout:        time.Duration(apiConfig.DataTimeoutSeconds) * time.Second,
		recordedSweeps: make(map[string]struct{}),
	}
	register := func(seconds int, job func(ctx context.Context)) error {
		_, err := p.cron.AddFunc(fmt.Sprintf("@every %ds", seconds), func() {
			ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
			defer cancel()
			job(ctx)
		})
		return err
	}
	// The @every specs are static, registration cannot fail.
	if err := register(apiConfig.ChartPollSeconds, p.pollChart); err != nil {
		panic(err)
	}
	if err := register(apiConfig.ForecastPollSeconds, p.pollPrediction); err != nil {
		panic(err)
	}
	if err := register(apiConfig.ProfilePollSeconds, p.pollProfile); err != nil {
		panic(err)
	}
	if err := register(30, p.pollMentor); err != nil {
		panic(err)
	}
	if err := register(10, p.pollStatus); err != nil {
		panic(err)
	}
	if err := register(10, p.pollOrders); err != nil {
		panic(err)
	}
	return p
}

func (p *Poller) Start() {
	p.cron.Start()
}

func (p *Poller) Stop() {
	p.cron.Stop()
}

// RefreshNow fetches the chart immediately, e.g. after a timeframe
// switch or a manual reset.
func (p *Poller) RefreshNow() {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
		defer cancel()
		p.pollChart(ctx)
	}()
}

func (p *Poller) pollChart(ctx context.Context) {
	timeframe := p.targets.Timeframe()
	data, err := p.client.QueryChart(ctx, p.bars, timeframe)
	if err != nil {
		log.Printf("chart poll failed: %v", err)
		p.targets.Store.ReportFailure()
		p.targets.Scheduler.Request()
		return
	}
	p.targets.Store.Replace(timeframe, data.Candles)
	p.targets.Icebergs.SetZones(data.IcebergZones)
	p.targets.Store.ReportSuccess()
	p.setSource(data.Source)
	p.recordNewSweeps(timeframe, data.Candles)
	p.targets.Scheduler.Request()
}

// recordNewSweeps persists sweeps which have not been recorded before.
// The dedupe key is coarse on purpose; a sweep re-detected after a
// buffer refresh is the same event.
func (p *Poller) recordNewSweeps(timeframe string, candles []chartval.Candle) {
	if p.targets.Recorder == nil {
		return
	}
	sweeps := overlay.DetectSweeps(candles)
	// Chart polls overlap when a manual refresh fires during a cron
	// run, so the dedupe set needs the lock.
	var fresh []overlay.Sweep
	p.mu.Lock()
	for _, s := range sweeps {
		key := timeframe + "|" + strconv.FormatFloat(s.Price, 'f', 1, 64) + "|" + strconv.FormatBool(s.High)
		if _, done := p.recordedSweeps[key]; done {
			continue
		}
		p.recordedSweeps[key] = struct{}{}
		fresh = append(fresh, s)
	}
	// Keep the dedupe set bounded across long sessions.
	if len(p.recordedSweeps) > 1000 {
		p.recordedSweeps = make(map[string]struct{})
	}
	p.mu.Unlock()
	for _, s := range fresh {
		evt := &recorder.SweepEvent{
			Timeframe: timeframe,
			Price:     s.Price,
			High:      s.High,
			Timestamp: time.Now(),
		}
		if err := p.targets.Recorder.RecordSweep(evt); err != nil {
			log.Printf("error recording sweep: %v", err)
		}
	}
}

func (p *Poller) pollProfile(ctx context.Context) {
	timeframe := p.targets.Timeframe()
	profile, err := p.client.QueryVolumeProfile(ctx, chartapi.VolumeProfileRequest{
		Interval:     timeframe,
		Bars:         p.bars,
		ValueAreaPct: 0.7,
	})
	if err != nil {
		log.Printf("volume profile poll failed: %v", err)
		return
	}
	p.targets.Profile.SetProfile(profile)
	p.targets.Scheduler.Request()
}

func (p *Poller) pollMentor(ctx context.Context) {
	data, err := p.client.QueryMentor(ctx)
	if err != nil {
		log.Printf("mentor poll failed: %v", err)
		return
	}
	p.targets.Gann.SetLevels(data.GannLevels)
	p.targets.Cycles.SetMarkers(data.Cycles)
	p.mu.Lock()
	p.narrative = data.Narrative
	p.mu.Unlock()
	p.targets.Scheduler.Request()
}

func (p *Poller) pollPrediction(ctx context.Context) {
	prediction, err := p.client.QueryPrediction(ctx)
	if err != nil {
		log.Printf("prediction poll failed: %v", err)
		return
	}
	p.mu.Lock()
	p.prediction = prediction
	p.havePrediction = true
	p.mu.Unlock()
	p.targets.Scheduler.Request()
}

func (p *Poller) pollStatus(ctx context.Context) {
	status, err := p.client.QueryStatus(ctx)
	if err != nil {
		p.targets.Store.ReportFailure()
		p.targets.Scheduler.Request()
		return
	}
	p.targets.Store.ReportSuccess()
	p.setSource(status.Source)
}

const orderFlowWindow = 50

func (p *Poller) pollOrders(ctx context.Context) {
	orders, err := p.client.QueryRecentOrders(ctx, orderFlowWindow)
	if err != nil {
		log.Printf("order poll failed: %v", err)
		return
	}
	var buySize, totalSize float64
	for _, o := range orders {
		totalSize += o.Size
		if strings.EqualFold(o.Side, "buy") {
			buySize += o.Size
		}
	}
	if totalSize <= 0 {
		return
	}
	p.mu.Lock()
	p.buyRatio = buySize / totalSize
	p.haveFlow = true
	p.mu.Unlock()
	p.targets.Scheduler.Request()
}

func (p *Poller) setSource(source string) {
	p.mu.Lock()
	p.source = source
	p.mu.Unlock()
}

// Prediction returns the latest forecast, ok false before the first
// successful poll.
func (p *Poller) Prediction() (chartapi.Prediction, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.prediction, p.havePrediction
}

// OrderFlow returns the buy share of recent order volume, ok false
// before the first successful poll.
func (p *Poller) OrderFlow() (float64, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.buyRatio, p.haveFlow
}

// Narrative returns the latest mentor commentary.
func (p *Poller) Narrative() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.narrative
}

// Source names the backend data feed currently serving the chart.
func (p *Poller) Source() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.source
}

// RunTickStream keeps the live tick connection open, reconnecting with
// a fixed delay until ctx is cancelled. Ticks merge into the open
// candle of the active timeframe.
func (p *Poller) RunTickStream(ctx context.Context, stream *chartapi.TickStream) {
	for {
		err := stream.Run(ctx, func(tick series.Tick) {
			p.targets.Store.UpdateLast(p.targets.Timeframe(), tick)
			p.targets.Scheduler.Request()
		})
		if err != nil {
			p.targets.Store.ReportFailure()
			p.targets.Scheduler.Request()
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(tickStreamRetryDelay):
		}
	}
}
