// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The goldchart authors

package chartval

// DrawingType selects one of the user drawing tools.
type DrawingType int

const (
	DrawingTrendline DrawingType = iota
	DrawingHorizontal
	DrawingFibonacci
)

func (t DrawingType) String() string {
	switch t {
	case DrawingTrendline:
		return "trendline"
	case DrawingHorizontal:
		return "horizontal"
	case DrawingFibonacci:
		return "fibonacci"
	default:
		return "unknown"
	}
}

// NumPoints is the number of clicks needed to finish a drawing of this type.
func (t DrawingType) NumPoints() int {
	if t == DrawingHorizontal {
		return 1
	}
	return 2
}

// DrawingPoint anchors a drawing in data space. Storing bar index and
// price rather than pixels keeps drawings valid across pan and zoom.
type DrawingPoint struct {
	BarIndex int
	Price    float64
}

// Drawing is a finished user drawing. Never mutated after creation.
type Drawing struct {
	Type   DrawingType
	Points []DrawingPoint
	Label  string
}

// FibonacciRatios are the retracement levels applied between the two
// recorded fibonacci points.
var FibonacciRatios = []float64{0, 0.236, 0.382, 0.5, 0.618, 1.0}

// FibonacciLevels expands two anchor prices into the retracement price
// levels, low to high.
func FibonacciLevels(a, b float64) []float64 {
	low := a
	if b < low {
		low = b
	}
	r := a - b
	if r < 0 {
		r = -r
	}
	levels := make([]float64, len(FibonacciRatios))
	for i, ratio := range FibonacciRatios {
		levels[i] = low + r*ratio
	}
	return levels
}
