// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The goldchart authors

package chartval

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSessionOfHour(t *testing.T) {
	assert.Equal(t, SessionAsia, SessionOfHour(0))
	assert.Equal(t, SessionAsia, SessionOfHour(7))
	assert.Equal(t, SessionLondon, SessionOfHour(8))
	assert.Equal(t, SessionLondon, SessionOfHour(12))
	// New York wins the London overlap
	assert.Equal(t, SessionNewYork, SessionOfHour(13))
	assert.Equal(t, SessionNewYork, SessionOfHour(20))
	assert.Equal(t, SessionAsia, SessionOfHour(22))
}

func TestSessionCalendar(t *testing.T) {
	c := NewSessionCalendar()
	// regular Wednesday
	assert.Equal(t, SessionNewYork, c.SessionOf(time.Date(2024, 3, 6, 15, 0, 0, 0, time.UTC)))
	// Saturday
	assert.Equal(t, SessionNone, c.SessionOf(time.Date(2024, 3, 9, 15, 0, 0, 0, time.UTC)))
	// Independence Day
	assert.Equal(t, SessionNone, c.SessionOf(time.Date(2024, 7, 4, 15, 0, 0, 0, time.UTC)))
	// Good Friday 2024
	assert.Equal(t, SessionNone, c.SessionOf(time.Date(2024, 3, 29, 15, 0, 0, 0, time.UTC)))
	// the following Monday trades again
	assert.Equal(t, SessionNewYork, c.SessionOf(time.Date(2024, 4, 1, 15, 0, 0, 0, time.UTC)))
}

func TestFibonacciLevels(t *testing.T) {
	levels := FibonacciLevels(2000, 2100)
	assert.Len(t, levels, 6)
	assert.InDelta(t, 2000, levels[0], NearZero)
	assert.InDelta(t, 2023.6, levels[1], NearZero)
	assert.InDelta(t, 2038.2, levels[2], NearZero)
	assert.InDelta(t, 2050, levels[3], NearZero)
	assert.InDelta(t, 2061.8, levels[4], NearZero)
	assert.InDelta(t, 2100, levels[5], NearZero)
	// order of anchors does not matter
	assert.Equal(t, levels, FibonacciLevels(2100, 2000))
}
