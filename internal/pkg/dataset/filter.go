package dataset

import (
	"math"

	"github.com/ds124wfegd/insight-analyzer/internal/entity"
)

// Bounds returns the integer age range covering every row.
func Bounds(frame *entity.Frame) entity.AgeBounds {
	if frame.Len() == 0 {
		return entity.AgeBounds{}
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, row := range frame.Rows {
		lo = math.Min(lo, row.Age)
		hi = math.Max(hi, row.Age)
	}
	return entity.AgeBounds{Min: math.Floor(lo), Max: math.Ceil(hi)}
}

// Sexes lists the distinct Sex values in order of first appearance.
func Sexes(frame *entity.Frame) []string {
	seen := make(map[string]bool)
	var out []string
	for _, row := range frame.Rows {
		if !seen[row.Sex] {
			seen[row.Sex] = true
			out = append(out, row.Sex)
		}
	}
	return out
}

// Options builds the control values for the filter sidebar.
func Options(frame *entity.Frame, defaultMin, defaultMax float64) entity.FilterOptions {
	bounds := Bounds(frame)
	def := Normalize(entity.FilterParams{AgeMin: defaultMin, AgeMax: defaultMax}, bounds)
	return entity.FilterOptions{
		Sexes:         append([]string{entity.SexAll}, Sexes(frame)...),
		AgeBounds:     bounds,
		DefaultAgeMin: def.AgeMin,
		DefaultAgeMax: def.AgeMax,
		TotalRows:     frame.Len(),
	}
}

// Normalize clamps the age range to bounds and orders it. An empty Sex means All.
func Normalize(p entity.FilterParams, bounds entity.AgeBounds) entity.FilterParams {
	if p.Sex == "" {
		p.Sex = entity.SexAll
	}
	if p.AgeMin > p.AgeMax {
		p.AgeMin, p.AgeMax = p.AgeMax, p.AgeMin
	}
	p.AgeMin = clamp(p.AgeMin, bounds.Min, bounds.Max)
	p.AgeMax = clamp(p.AgeMax, bounds.Min, bounds.Max)
	return p
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Match reports whether a passenger satisfies both predicates.
func Match(row entity.Passenger, p entity.FilterParams) bool {
	if p.Sex != entity.SexAll && row.Sex != p.Sex {
		return false
	}
	return p.AgeMin <= row.Age && row.Age <= p.AgeMax
}

// Apply returns a new frame with the matching rows in source order.
func Apply(frame *entity.Frame, p entity.FilterParams) *entity.Frame {
	out := &entity.Frame{Header: frame.Header, Numeric: frame.Numeric}
	for _, row := range frame.Rows {
		if Match(row, p) {
			out.Rows = append(out.Rows, row)
		}
	}
	return out
}
