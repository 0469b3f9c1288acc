// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The goldchart authors

package chartapi

import (
	"context"
	"log"

	"github.com/ericlagergren/decimal"
	"github.com/gorilla/websocket"

	"goldchart/chartval"
	"goldchart/series"
)

type wireTick struct {
	Price  *decimal.Big `json:"price"`
	Volume float64      `json:"volume"`
}

// TickStream reads live trades from the backend websocket and forwards
// them as tick updates. Reconnecting is the caller's responsibility;
// Run returns on the first failure so the poll loop can back off and
// report the failure to the series store.
type TickStream struct {
	url    string
	dialer *websocket.Dialer
}

func NewTickStream(url string) *TickStream {
	return &TickStream{
		url:    url,
		dialer: websocket.DefaultDialer,
	}
}

// Run connects and forwards ticks until the connection drops or ctx is
// cancelled. The returned error is nil only on context cancellation.
func (s *TickStream) Run(ctx context.Context, onTick func(series.Tick)) error {
	conn, _, err := s.dialer.DialContext(ctx, s.url, nil)
	if err != nil {
		return err
	}
	defer conn.Close()
	go func() {
		<-ctx.Done()
		conn.Close()
	}()
	for {
		var tick wireTick
		err = conn.ReadJSON(&tick)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			log.Printf("tick stream terminated: %v", err)
			return err
		}
		onTick(series.Tick{
			Price:  chartval.ConvertDecimalToFloat(tick.Price),
			Volume: tick.Volume,
		})
	}
}
