// Package pricing computes delivery prices from distance and urgency.
//
// Distances are split into half-open ranges (Min, Max]. Each range carries a
// flat regular price and a flat urgent price; an urgent order pays the urgent
// price instead of the regular one. A distance outside every range, including
// exactly zero, has no price and yields 0.
package pricing

import "math"

// Range is a distance bracket with its flat prices.
type Range struct {
	Min     float64
	Max     float64
	Regular float64
	Urgent  float64
}

// Contains reports whether distance falls into (Min, Max].
func (r Range) Contains(distance float64) bool {
	return distance > r.Min && distance <= r.Max
}

// Unbounded reports whether the range has no upper limit.
func (r Range) Unbounded() bool {
	return math.IsInf(r.Max, 1)
}

// Price returns the range price for the given urgency.
func (r Range) Price(urgent bool) float64 {
	if urgent {
		return r.Urgent
	}
	return r.Regular
}

// DefaultRanges is the price table in effect.
var DefaultRanges = []Range{
	{Min: 0, Max: 2, Regular: 3, Urgent: 6},
	{Min: 2, Max: 5, Regular: 5, Urgent: 8},
	{Min: 5, Max: 10, Regular: 8, Urgent: 11},
	{Min: 10, Max: math.Inf(1), Regular: 12, Urgent: 15},
}

// Calculator prices orders against a fixed table.
type Calculator struct {
	ranges []Range
}

// NewCalculator builds a calculator over ranges. Nil or empty ranges fall back
// to DefaultRanges.
func NewCalculator(ranges []Range) *Calculator {
	if len(ranges) == 0 {
		ranges = DefaultRanges
	}
	cp := make([]Range, len(ranges))
	copy(cp, ranges)
	return &Calculator{ranges: cp}
}

// Price returns the price for distance and urgency, or 0 when no range matches.
func (c *Calculator) Price(distance float64, urgent bool) float64 {
	r, ok := c.RangeFor(distance)
	if !ok {
		return 0
	}
	return r.Price(urgent)
}

// RangeFor returns the range containing distance.
func (c *Calculator) RangeFor(distance float64) (Range, bool) {
	for _, r := range c.ranges {
		if r.Contains(distance) {
			return r, true
		}
	}
	return Range{}, false
}

// Ranges returns a copy of the price table.
func (c *Calculator) Ranges() []Range {
	out := make([]Range, len(c.ranges))
	copy(out, c.ranges)
	return out
}

var defaultCalculator = NewCalculator(DefaultRanges)

// Calculate prices distance against DefaultRanges.
func Calculate(distance float64, urgent bool) float64 {
	return defaultCalculator.Price(distance, urgent)
}

// Quote is a price preview for a distance and urgency. Range is nil when no
// range matches the distance.
type Quote struct {
	Distance float64
	IsUrgent bool
	Price    float64
	Range    *Range
}
