// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The goldchart authors

package chartval

import (
	"strconv"

	"github.com/ericlagergren/decimal"
	"golang.org/x/exp/constraints"
)

const NearZero = 0.000001

func IsGreenCandle(o, c float64) bool {
	// this may be adjusted based on whether it is considered to be green if open price equals close price.
	return c >= o
}

func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// The builtin decimal.Big conversion from float64 is an "exact" conversion, and useless for our cases.
// Therefore, convert using string conversion, even though this requires memory allocation.

// ConvertDecimalToFloat converts a wire decimal to a plotting float.
// A nil decimal converts to zero.
func ConvertDecimalToFloat(d *decimal.Big) float64 {
	if d == nil {
		return 0
	}
	v, _ := d.Float64()
	return v
}

// ConvertFloatToDecimal converts via string to avoid exact binary expansion.
func ConvertFloatToDecimal(v float64) *decimal.Big {
	d, _ := new(decimal.Big).SetString(strconv.FormatFloat(v, 'f', -1, 64))
	return d
}

// FormatCompactVolume renders a volume with K/M suffixes, the way the
// volume bar labels and profile legend print quantities.
func FormatCompactVolume(v float64) string {
	switch {
	case v > 999999:
		return strconv.FormatFloat(v/1000000, 'f', 1, 64) + "M"
	case v > 999:
		return strconv.FormatFloat(v/1000, 'f', 0, 64) + "K"
	default:
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
}

// PriceAxisStep selects the label step for the right price axis.
// High-value contracts get clean integer steps, low-value ones get
// magnitude-scaled decimal steps with a 0.01 floor.
func PriceAxisStep(axisMin, axisRange float64, chartHeight float64) float64 {
	targetLabels := chartHeight / 35
	if targetLabels < 8 {
		targetLabels = 8
	}
	rawStep := axisRange / targetLabels

	if axisMin > 100 {
		if axisRange < 10 {
			return 1
		}
		for _, step := range []float64{1, 2, 5, 10, 20, 50, 100, 200, 500, 1000} {
			labelCount := axisRange / step
			if labelCount >= 8 && labelCount <= 40 {
				return step
			}
		}
		return 1
	}

	magnitude := pow10Floor(rawStep)
	residual := rawStep / magnitude
	var step float64
	switch {
	case residual <= 0.5:
		step = 0.5 * magnitude
	case residual <= 1.0:
		step = magnitude
	case residual <= 2:
		step = 2 * magnitude
	case residual <= 5:
		step = 5 * magnitude
	default:
		step = 10 * magnitude
	}
	if step < 0.01 {
		step = 0.01
	}
	return step
}

func pow10Floor(v float64) float64 {
	if v <= 0 {
		return 0.01
	}
	m := 1.0
	for m*10 <= v {
		m *= 10
	}
	for m > v {
		m /= 10
	}
	return m
}
