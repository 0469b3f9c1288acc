// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The goldchart authors

package series

import (
	"sync"
	"time"

	"github.com/zhangyunhao116/skipmap"

	"goldchart/chartplot"
	"goldchart/chartval"
)

// DefaultBufferCap is the rolling window size of a timeframe buffer.
const DefaultBufferCap = 100

// disconnectedAfterFailures is the number of consecutive fetch failures
// after which the connection status turns disconnected.
const disconnectedAfterFailures = 3

// newCandleFlashDuration is how long a freshly appended candle counts
// as "new" for the flash effect.
const newCandleFlashDuration = 2 * time.Second

// ConnectionStatus is the health of the polled data feed.
type ConnectionStatus int32

const (
	StatusConnected ConnectionStatus = iota
	StatusError
	StatusDisconnected
)

func (s ConnectionStatus) String() string {
	switch s {
	case StatusError:
		return "error"
	case StatusDisconnected:
		return "disconnected"
	default:
		return "connected"
	}
}

// Tick is a partial update applied to the open candle of a buffer.
type Tick struct {
	Price  float64
	Volume float64
}

// buffer is the rolling candle window of one timeframe, together with
// the viewport the user last had on that timeframe.
type buffer struct {
	mutex      sync.RWMutex
	candles    []chartval.Candle
	cap        int
	lastAppend time.Time
	viewport   chartplot.Viewport
}

func newBuffer(cap int) *buffer {
	return &buffer{
		cap:      cap,
		viewport: chartplot.NewViewport(),
	}
}

// Store owns the per-timeframe candle buffers. Buffers are created on
// first use and never removed; pollers write and the render pass reads
// snapshots, so each buffer is guarded by its own RWMutex.
type Store struct {
	buffers     *skipmap.StringMap[*buffer]
	bufferCap   int
	failures    int
	failureLock sync.Mutex
	status      ConnectionStatus
}

func NewStore(bufferCap int) *Store {
	if bufferCap <= 0 {
		bufferCap = DefaultBufferCap
	}
	return &Store{
		buffers:   skipmap.NewString[*buffer](),
		bufferCap: bufferCap,
	}
}

func (s *Store) buffer(timeframe string) *buffer {
	b, ok := s.buffers.Load(timeframe)
	if !ok {
		b = newBuffer(s.bufferCap)
		actual, loaded := s.buffers.LoadOrStore(timeframe, b)
		if loaded {
			b = actual
		}
	}
	return b
}

// Append adds a finalized candle, evicting the oldest bar once the
// buffer exceeds its cap.
func (s *Store) Append(timeframe string, c chartval.Candle) {
	b := s.buffer(timeframe)
	b.mutex.Lock()
	defer b.mutex.Unlock()
	b.candles = append(b.candles, c)
	if len(b.candles) > b.cap {
		b.candles = b.candles[len(b.candles)-b.cap:]
	}
	b.lastAppend = time.Now()
}

// UpdateLast merges a tick into the open candle of the buffer. A tick
// arriving before any candle exists is dropped.
func (s *Store) UpdateLast(timeframe string, tick Tick) {
	b := s.buffer(timeframe)
	b.mutex.Lock()
	defer b.mutex.Unlock()
	if len(b.candles) == 0 {
		return
	}
	last := &b.candles[len(b.candles)-1]
	last.Close = tick.Price
	if tick.Price > last.High {
		last.High = tick.Price
	}
	if tick.Price < last.Low {
		last.Low = tick.Price
	}
	last.Volume += tick.Volume
}

// Replace swaps in a full refresh, e.g. after a poll response or a
// historical reload. The replacement is trimmed to the buffer cap.
func (s *Store) Replace(timeframe string, candles []chartval.Candle) {
	b := s.buffer(timeframe)
	b.mutex.Lock()
	defer b.mutex.Unlock()
	if len(candles) > b.cap {
		candles = candles[len(candles)-b.cap:]
	}
	prevLen := len(b.candles)
	b.candles = append(b.candles[:0:0], candles...)
	if len(b.candles) > prevLen {
		b.lastAppend = time.Now()
	}
}

// Candles returns a snapshot copy of the buffer.
func (s *Store) Candles(timeframe string) []chartval.Candle {
	b := s.buffer(timeframe)
	b.mutex.RLock()
	defer b.mutex.RUnlock()
	return append([]chartval.Candle(nil), b.candles...)
}

func (s *Store) Len(timeframe string) int {
	b := s.buffer(timeframe)
	b.mutex.RLock()
	defer b.mutex.RUnlock()
	return len(b.candles)
}

// LastClose returns the most recent close, or ok false for an empty
// buffer.
func (s *Store) LastClose(timeframe string) (float64, bool) {
	b := s.buffer(timeframe)
	b.mutex.RLock()
	defer b.mutex.RUnlock()
	if len(b.candles) == 0 {
		return 0, false
	}
	return b.candles[len(b.candles)-1].Close, true
}

// HasNewCandle reports whether a candle was appended within the flash
// window.
func (s *Store) HasNewCandle(timeframe string, now time.Time) bool {
	b := s.buffer(timeframe)
	b.mutex.RLock()
	defer b.mutex.RUnlock()
	return !b.lastAppend.IsZero() && now.Sub(b.lastAppend) < newCandleFlashDuration
}

// VisibleSlice returns a snapshot of the candles visible under the
// given viewport, plus the buffer index of the first returned candle.
// An unpanned viewport yields the newest VisibleBars candles.
func (s *Store) VisibleSlice(timeframe string, v chartplot.Viewport) ([]chartval.Candle, int) {
	b := s.buffer(timeframe)
	b.mutex.RLock()
	defer b.mutex.RUnlock()
	visible := v.VisibleBars()
	end := len(b.candles) - v.EffectiveBarPan()
	end = chartval.Clamp(end, 0, len(b.candles))
	start := chartval.Clamp(end-visible, 0, len(b.candles))
	return append([]chartval.Candle(nil), b.candles[start:end]...), start
}

// SaveViewport stores the viewport of a timeframe so that switching
// away and back restores the prior view exactly.
func (s *Store) SaveViewport(timeframe string, v chartplot.Viewport) {
	b := s.buffer(timeframe)
	b.mutex.Lock()
	defer b.mutex.Unlock()
	b.viewport = v
}

func (s *Store) SavedViewport(timeframe string) chartplot.Viewport {
	b := s.buffer(timeframe)
	b.mutex.RLock()
	defer b.mutex.RUnlock()
	return b.viewport
}

// ReportFailure records a failed poll cycle. The buffer is left
// untouched; stale data beats a blank chart. Only the third
// consecutive failure flips the status to disconnected.
func (s *Store) ReportFailure() ConnectionStatus {
	s.failureLock.Lock()
	defer s.failureLock.Unlock()
	s.failures++
	if s.failures >= disconnectedAfterFailures {
		s.status = StatusDisconnected
	} else {
		s.status = StatusError
	}
	return s.status
}

// ReportSuccess resets the failure counter after any successful poll.
func (s *Store) ReportSuccess() {
	s.failureLock.Lock()
	defer s.failureLock.Unlock()
	s.failures = 0
	s.status = StatusConnected
}

func (s *Store) Status() ConnectionStatus {
	s.failureLock.Lock()
	defer s.failureLock.Unlock()
	return s.status
}
