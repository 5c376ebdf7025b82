package domain

import "math"

// DefaultHalfWidth is the default region half-width in degrees, giving a
// 0.5° × 0.5° window around the reference coordinate.
const DefaultHalfWidth = 0.25

// RegionResolver selects the records of a set near a reference coordinate.
type RegionResolver interface {
	// Resolve returns every record whose latitude and longitude each differ
	// from the reference by strictly less than halfWidth degrees, preserving
	// the set's original order. The result may be empty.
	Resolve(set RecordSet, lat, lon, halfWidth float64) RecordSet
}

// BoxResolver implements RegionResolver with a strict axis-aligned degree
// window. It is a pure function of its inputs: out-of-range coordinates are
// passed through unvalidated and no state is kept between calls.
type BoxResolver struct{}

func (BoxResolver) Resolve(set RecordSet, lat, lon, halfWidth float64) RecordSet {
	out := make(RecordSet, 0)
	for _, r := range set {
		if math.Abs(r.Geo.Lat-lat) < halfWidth && math.Abs(r.Geo.Lon-lon) < halfWidth {
			out = append(out, r)
		}
	}
	return out
}
