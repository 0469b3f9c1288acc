// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The goldchart authors

package chartval

import (
	"time"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/aa"
	"github.com/rickar/cal/v2/us"
)

// goodFriday closes COMEX but is not a US federal holiday, so the us
// package does not define it.
var goodFriday = aa.GoodFriday.Clone(&cal.Holiday{Name: "Good Friday", Type: cal.ObservanceBank})

// Session classifies a trading hour into one of the COMEX gold sessions.
type Session int

const (
	SessionNone Session = iota
	SessionAsia
	SessionLondon
	SessionNewYork
)

func (s Session) String() string {
	switch s {
	case SessionAsia:
		return "ASIA"
	case SessionLondon:
		return "LONDON"
	case SessionNewYork:
		return "NEWYORK"
	default:
		return ""
	}
}

// Session hours in UTC. New York overlaps London; the more specific
// session wins during the overlap.
const (
	asiaOpenHour     = 0
	asiaCloseHour    = 8
	londonOpenHour   = 8
	londonCloseHour  = 17
	newYorkOpenHour  = 13
	newYorkCloseHour = 21
)

// SessionOfHour maps a UTC hour to a session. Hours outside every window
// fall back to Asia, matching the around-the-clock futures tape.
func SessionOfHour(utcHour int) Session {
	if utcHour >= newYorkOpenHour && utcHour < newYorkCloseHour {
		return SessionNewYork
	}
	if utcHour >= londonOpenHour && utcHour < londonCloseHour {
		return SessionLondon
	}
	return SessionAsia
}

// SessionCalendar decides whether a bar belongs to an active trading day.
// Weekend and US bank holiday bars get no session tint.
type SessionCalendar struct {
	calendar *cal.BusinessCalendar
}

func NewSessionCalendar() *SessionCalendar {
	c := cal.NewBusinessCalendar()
	c.AddHoliday(
		us.NewYear,
		goodFriday,
		us.MemorialDay,
		us.Juneteenth,
		us.IndependenceDay,
		us.LaborDay,
		us.ThanksgivingDay,
		us.ChristmasDay,
	)
	c.Cacheable = true
	return &SessionCalendar{calendar: c}
}

// SessionOf returns the session for a bar timestamp, or SessionNone on
// non-trading days.
func (c *SessionCalendar) SessionOf(t time.Time) Session {
	utc := t.UTC()
	if !c.calendar.IsWorkday(utc) {
		return SessionNone
	}
	return SessionOfHour(utc.Hour())
}
