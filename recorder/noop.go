// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The goldchart authors

package recorder

import "goldchart/chartval"

// NoopRecorder is used when no database path is configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordTrade(_ *chartval.ClosedTrade) error  { return nil }
func (n *NoopRecorder) RecordSweep(_ *SweepEvent) error            { return nil }
func (n *NoopRecorder) TradeHistory(_ int) ([]TradeRecord, error)  { return nil, nil }
func (n *NoopRecorder) Close() error                               { return nil }
