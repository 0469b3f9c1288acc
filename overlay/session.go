// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The goldchart authors

package overlay

import (
	"image/color"

	"gioui.org/layout"
	"gioui.org/widget/material"

	"goldchart/chartplot"
	"goldchart/chartval"
)

const SessionId Id = "sessions"

// SessionBand is a run of consecutive visible bars belonging to the
// same trading session.
type SessionBand struct {
	Session    chartval.Session
	StartIndex int
	EndIndex   int
}

// ComputeSessionBands groups consecutive bars of the same session.
// Bars on non-trading days carry SessionNone and get no band.
func ComputeSessionBands(candles []chartval.Candle, calendar *chartval.SessionCalendar) []SessionBand {
	var bands []SessionBand
	for i, c := range candles {
		session := calendar.SessionOf(c.Timestamp)
		if session == chartval.SessionNone {
			continue
		}
		if len(bands) > 0 {
			last := &bands[len(bands)-1]
			if last.Session == session && last.EndIndex == i-1 {
				last.EndIndex = i
				continue
			}
		}
		bands = append(bands, SessionBand{Session: session, StartIndex: i, EndIndex: i})
	}
	return bands
}

type Sessions struct {
	visibility
	bands    []SessionBand
	calendar *chartval.SessionCalendar
}

func NewSessions(calendar *chartval.SessionCalendar) *Sessions {
	return &Sessions{calendar: calendar}
}

func (o *Sessions) Id() Id {
	return SessionId
}

func (o *Sessions) ZOrder() int {
	return ZSessions
}

func (o *Sessions) Update(snap Snapshot) {
	calendar := snap.Calendar
	if calendar == nil {
		calendar = o.calendar
	}
	o.bands = ComputeSessionBands(snap.Candles, calendar)
}

func (o *Sessions) sessionColor(p *chartplot.Painter, s chartval.Session) color.NRGBA {
	switch s {
	case chartval.SessionAsia:
		return p.Theme.SessionAsiaColor
	case chartval.SessionLondon:
		return p.Theme.SessionLondonColor
	case chartval.SessionNewYork:
		return p.Theme.SessionNewYorkColor
	default:
		return color.NRGBA{}
	}
}

func (o *Sessions) Plot(p *chartplot.Painter, gtx layout.Context, th *material.Theme) {
	defer p.ClipFrame(gtx).Pop()
	for _, b := range o.bands {
		x1 := p.Mapper.BarIndexToX(b.StartIndex) - p.Mapper.Spacing/2
		x2 := p.Mapper.BarIndexToX(b.EndIndex) + p.Mapper.Spacing/2
		if x2 < p.Mapper.Frame.Left || x1 > p.Mapper.Frame.Right {
			continue
		}
		p.FillRect(gtx, x1, p.Mapper.Frame.Top, x2, p.Mapper.Frame.Bottom, o.sessionColor(p, b.Session))
		if x2-x1 > 60 {
			p.Label(gtx, th, x1+4, p.Mapper.Frame.Top+4, b.Session.String(), 10, p.Theme.SessionTextColor)
		}
	}
}
