// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The goldchart authors

package chartval

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.3, Clamp(0.1, 0.3, 3.0))
	assert.Equal(t, 3.0, Clamp(5.0, 0.3, 3.0))
	assert.Equal(t, 1.0, Clamp(1.0, 0.3, 3.0))
	assert.Equal(t, 20, Clamp(7, 20, 500))
}

func TestConvertFloatToDecimal(t *testing.T) {
	d := ConvertFloatToDecimal(2034.25)
	assert.Equal(t, "2034.25", d.String())
	assert.InDelta(t, 2034.25, ConvertDecimalToFloat(d), NearZero)
	assert.Equal(t, 0.0, ConvertDecimalToFloat(nil))
}

func TestFormatCompactVolume(t *testing.T) {
	assert.Equal(t, "512", FormatCompactVolume(512))
	assert.Equal(t, "3K", FormatCompactVolume(2900))
	assert.Equal(t, "1.5M", FormatCompactVolume(1500000))
}

func TestPriceAxisStepHighValue(t *testing.T) {
	// gold futures around 2000 with a 120 unit visible range
	step := PriceAxisStep(1980, 120, 600)
	assert.Equal(t, 5.0, step)
	// tight range still yields whole dollar steps
	assert.Equal(t, 1.0, PriceAxisStep(2030, 6, 600))
}

func TestPriceAxisStepLowValue(t *testing.T) {
	step := PriceAxisStep(20, 5, 600)
	assert.GreaterOrEqual(t, step, 0.01)
	assert.LessOrEqual(t, step, 5.0)
	// never below the cent floor
	assert.GreaterOrEqual(t, PriceAxisStep(0.5, 0.0001, 600), 0.01)
}
