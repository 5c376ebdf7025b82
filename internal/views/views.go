// Package views builds the renderable linked views derived from a region
// subset: the magnitude histogram, the time/magnitude series, and the
// reference marker annotation. Builders are pure over their inputs and carry
// no dependency on any rendering library; consumers receive plain ordered
// values.
package views

import (
	"time"

	"github.com/couchcryptid/quake-views/internal/domain"
)

// Magnitude histogram shape: 20 equal buckets over the fixed range [0, 10].
const (
	HistogramBuckets = 20
	HistogramMin     = 0.0
	HistogramMax     = 10.0
)

// HistogramBucket is one frequency bucket over [Low, High).
type HistogramBucket struct {
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Count int     `json:"count"`
}

// Histogram is the magnitude-distribution view of a region subset.
type Histogram struct {
	Buckets []HistogramBucket `json:"buckets"`
}

// MagnitudeHistogram bins the region's magnitudes into the fixed 0–10 range.
// Magnitudes outside the range are dropped; a magnitude of exactly 10 counts
// in the last bucket.
func MagnitudeHistogram(region domain.RecordSet) Histogram {
	width := (HistogramMax - HistogramMin) / HistogramBuckets
	buckets := make([]HistogramBucket, HistogramBuckets)
	for i := range buckets {
		buckets[i].Low = HistogramMin + float64(i)*width
		buckets[i].High = buckets[i].Low + width
	}

	for _, r := range region {
		if r.Magnitude < HistogramMin || r.Magnitude > HistogramMax {
			continue
		}
		i := int((r.Magnitude - HistogramMin) / width)
		if i == HistogramBuckets {
			i = HistogramBuckets - 1
		}
		buckets[i].Count++
	}
	return Histogram{Buckets: buckets}
}

// TimePoint is one (timestamp, magnitude) pair of the temporal view.
type TimePoint struct {
	Time      time.Time `json:"time"`
	Magnitude float64   `json:"magnitude"`
}

// TimeSeries returns the region's (time, magnitude) pairs in arrival order.
func TimeSeries(region domain.RecordSet) []TimePoint {
	points := make([]TimePoint, len(region))
	for i, r := range region {
		points[i] = TimePoint{Time: r.Time, Magnitude: r.Magnitude}
	}
	return points
}

// Marker is the reference annotation for the selected record. An invisible
// marker renders as nothing and carries no position.
type Marker struct {
	Visible  bool    `json:"visible"`
	Lat      float64 `json:"lat,omitempty"`
	Lon      float64 `json:"lon,omitempty"`
	Easting  float64 `json:"easting,omitempty"`
	Northing float64 `json:"northing,omitempty"`
	Label    string  `json:"label,omitempty"`
}

// MarkerFor builds the annotation for a reference record. A nil reference
// (empty selection) yields an inert marker.
func MarkerFor(ref *domain.Record) Marker {
	if ref == nil {
		return Marker{}
	}
	return Marker{
		Visible:  true,
		Lat:      ref.Geo.Lat,
		Lon:      ref.Geo.Lon,
		Easting:  ref.Easting,
		Northing: ref.Northing,
		Label:    ref.Place,
	}
}

// Snapshot bundles the three linked views for one selection, ready for
// publication. SelectedID is nil for an empty selection.
type Snapshot struct {
	SessionID   string      `json:"session_id"`
	SelectedID  *int        `json:"selected_id,omitempty"`
	RegionSize  int         `json:"region_size"`
	Region      []int       `json:"region_ids"`
	Histogram   Histogram   `json:"histogram"`
	Series      []TimePoint `json:"series"`
	Marker      Marker      `json:"marker"`
	ProcessedAt time.Time   `json:"processed_at"`
}

// BuildSnapshot derives all three views from a resolved region and reference.
func BuildSnapshot(sessionID string, region domain.RecordSet, ref *domain.Record) Snapshot {
	var selected *int
	if ref != nil {
		id := ref.ID
		selected = &id
	}
	return Snapshot{
		SessionID:   sessionID,
		SelectedID:  selected,
		RegionSize:  len(region),
		Region:      region.IDs(),
		Histogram:   MagnitudeHistogram(region),
		Series:      TimeSeries(region),
		Marker:      MarkerFor(ref),
		ProcessedAt: clock.Now().UTC(),
	}
}
