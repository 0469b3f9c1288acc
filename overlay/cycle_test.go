// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The goldchart authors

package overlay

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"goldchart/chartval"
)

func TestCycleMarkersAnchoredToBuffer(t *testing.T) {
	o := NewCycles()
	o.SetMarkers([]CycleMarker{{BarsAgo: 10, Label: "90m"}})
	all := make([]chartval.Candle, 100)

	o.Update(Snapshot{All: all, Candles: all[40:], StartIndex: 40})
	unpanned := o.markerIndex(10)
	assert.Equal(t, 49, unpanned)

	// panning back shifts the window, not the marker's bar
	o.Update(Snapshot{All: all, Candles: all[30:90], StartIndex: 30})
	panned := o.markerIndex(10)
	assert.Equal(t, 59, panned)
	assert.Equal(t, 40+unpanned, 30+panned)
}
