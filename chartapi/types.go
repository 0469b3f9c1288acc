// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The goldchart authors

package chartapi

import (
	"strconv"
	"time"

	"github.com/ericlagergren/decimal"

	"goldchart/chartval"
	"goldchart/overlay"
)

// Wire types of the backend collaborator. Prices travel as decimals
// and convert to plotting floats exactly once, at the boundary.

type wireCandle struct {
	Open            *decimal.Big `json:"open"`
	High            *decimal.Big `json:"high"`
	Low             *decimal.Big `json:"low"`
	Close           *decimal.Big `json:"close"`
	Volume          float64      `json:"volume"`
	Timestamp       string       `json:"timestamp"`
	IcebergDetected bool         `json:"iceberg_detected"`
}

type wireIcebergZone struct {
	PriceTop        *decimal.Big `json:"price_top"`
	PriceBottom     *decimal.Big `json:"price_bottom"`
	VolumeIndicator float64      `json:"volume_indicator"`
	Color           string       `json:"color"`
}

type chartResponse struct {
	Bars         []wireCandle      `json:"bars"`
	IcebergZones []wireIcebergZone `json:"iceberg_zones"`
	Source       string            `json:"source"`
}

// ChartData is the parsed chart poll payload.
type ChartData struct {
	Candles      []chartval.Candle
	IcebergZones []overlay.IcebergZone
	Source       string
}

type chartRequest struct {
	Bars     int    `json:"bars"`
	Interval string `json:"interval"`
}

// Order is one raw tape entry from the orders feed.
type Order struct {
	Price     float64   `json:"-"`
	Size      float64   `json:"size"`
	Side      string    `json:"side"`
	Timestamp time.Time `json:"-"`
}

type wireOrder struct {
	Price     *decimal.Big `json:"price"`
	Size      float64      `json:"size"`
	Side      string       `json:"side"`
	Timestamp string       `json:"timestamp"`
}

type ordersResponse struct {
	Orders []wireOrder `json:"orders"`
}

// VolumeProfileRequest selects the histogram computation window.
type VolumeProfileRequest struct {
	Symbol       string  `json:"symbol"`
	Interval     string  `json:"interval"`
	Bars         int     `json:"bars"`
	TickSize     float64 `json:"tick_size"`
	ValueAreaPct float64 `json:"value_area_pct"`
}

type wireProfileBucket struct {
	Price       *decimal.Big `json:"price"`
	Volume      float64      `json:"volume"`
	BuyVolume   float64      `json:"buy_volume"`
	SellVolume  float64      `json:"sell_volume"`
	InValueArea bool         `json:"in_value_area"`
	IsPoc       bool         `json:"is_poc"`
}

type volumeProfileResponse struct {
	Poc             *decimal.Big        `json:"poc"`
	Vah             *decimal.Big        `json:"vah"`
	Val             *decimal.Big        `json:"val"`
	Vwap            *decimal.Big        `json:"vwap"`
	TotalVolume     float64             `json:"total_volume"`
	TotalBuyVolume  float64             `json:"total_buy_volume"`
	TotalSellVolume float64             `json:"total_sell_volume"`
	BarsAnalyzed    int                 `json:"bars_analyzed"`
	Histogram       []wireProfileBucket `json:"histogram"`
}

// MentorData carries the overlay annotation parts of the mentor
// payload. The narrative text is presentation glue and stays opaque.
type MentorData struct {
	GannLevels []overlay.GannLevel
	Cycles     []overlay.CycleMarker
	Narrative  string
}

type wireGannLevel struct {
	Price *decimal.Big `json:"price"`
	Label string       `json:"label"`
}

type wireCycleMarker struct {
	BarsAgo int    `json:"bars_ago"`
	Label   string `json:"label"`
}

type mentorResponse struct {
	Gann struct {
		Levels []wireGannLevel `json:"levels"`
	} `json:"gann"`
	Cycles    []wireCycleMarker `json:"cycles"`
	Narrative string            `json:"narrative"`
}

// Prediction is the 5min candle forecast strip payload.
type Prediction struct {
	Direction      string  `json:"direction"`
	Confidence     float64 `json:"confidence"`
	PredictedClose float64 `json:"predicted_close"`
}

// Status is the backend health poll payload.
type Status struct {
	Status string `json:"status"`
	Source string `json:"source"`
}

// parseWireTime accepts RFC3339 or unix seconds, the two stamp shapes
// the backend emits.
func parseWireTime(s string) time.Time {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	if unix, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(unix, 0).UTC()
	}
	return time.Time{}
}

func (r chartResponse) convert() ChartData {
	data := ChartData{Source: r.Source}
	data.Candles = make([]chartval.Candle, 0, len(r.Bars))
	for _, b := range r.Bars {
		data.Candles = append(data.Candles, chartval.Candle{
			Open:            chartval.ConvertDecimalToFloat(b.Open),
			High:            chartval.ConvertDecimalToFloat(b.High),
			Low:             chartval.ConvertDecimalToFloat(b.Low),
			Close:           chartval.ConvertDecimalToFloat(b.Close),
			Volume:          b.Volume,
			Timestamp:       parseWireTime(b.Timestamp),
			IcebergDetected: b.IcebergDetected,
		})
	}
	for _, z := range r.IcebergZones {
		data.IcebergZones = append(data.IcebergZones, overlay.IcebergZone{
			PriceTop:    chartval.ConvertDecimalToFloat(z.PriceTop),
			PriceBottom: chartval.ConvertDecimalToFloat(z.PriceBottom),
			Volume:      z.VolumeIndicator,
			Color:       z.Color,
		})
	}
	return data
}

func (r volumeProfileResponse) convert() overlay.Profile {
	profile := overlay.Profile{
		Poc:         chartval.ConvertDecimalToFloat(r.Poc),
		Vah:         chartval.ConvertDecimalToFloat(r.Vah),
		Val:         chartval.ConvertDecimalToFloat(r.Val),
		Vwap:        chartval.ConvertDecimalToFloat(r.Vwap),
		TotalVolume: r.TotalVolume,
	}
	profile.Histogram = make([]overlay.ProfileBucket, 0, len(r.Histogram))
	for _, b := range r.Histogram {
		profile.Histogram = append(profile.Histogram, overlay.ProfileBucket{
			Price:       chartval.ConvertDecimalToFloat(b.Price),
			Volume:      b.Volume,
			BuyVolume:   b.BuyVolume,
			SellVolume:  b.SellVolume,
			InValueArea: b.InValueArea,
			IsPoc:       b.IsPoc,
		})
	}
	return profile
}

func (r mentorResponse) convert() MentorData {
	data := MentorData{Narrative: r.Narrative}
	for _, l := range r.Gann.Levels {
		data.GannLevels = append(data.GannLevels, overlay.GannLevel{
			Price: chartval.ConvertDecimalToFloat(l.Price),
			Label: l.Label,
		})
	}
	for _, c := range r.Cycles {
		data.Cycles = append(data.Cycles, overlay.CycleMarker{
			BarsAgo: c.BarsAgo,
			Label:   c.Label,
		})
	}
	return data
}

func (r ordersResponse) convert() []Order {
	orders := make([]Order, 0, len(r.Orders))
	for _, o := range r.Orders {
		orders = append(orders, Order{
			Price:     chartval.ConvertDecimalToFloat(o.Price),
			Size:      o.Size,
			Side:      o.Side,
			Timestamp: parseWireTime(o.Timestamp),
		})
	}
	return orders
}
