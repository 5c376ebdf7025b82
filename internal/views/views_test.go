package views

import (
	"testing"
	"time"

	"github.com/couchcryptid/quake-views/internal/domain"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func regionWithMagnitudes(mags ...float64) domain.RecordSet {
	set := make(domain.RecordSet, 0, len(mags))
	for i, m := range mags {
		set = append(set, domain.Record{
			ID:        i,
			Magnitude: m,
			Time:      time.Date(2024, 4, 26, 0, i, 0, 0, time.UTC),
		})
	}
	return set
}

func TestMagnitudeHistogram(t *testing.T) {
	t.Run("bucket shape", func(t *testing.T) {
		h := MagnitudeHistogram(nil)

		require.Len(t, h.Buckets, HistogramBuckets)
		assert.Equal(t, 0.0, h.Buckets[0].Low)
		assert.Equal(t, 0.5, h.Buckets[0].High)
		assert.Equal(t, 9.5, h.Buckets[19].Low)
		assert.Equal(t, 10.0, h.Buckets[19].High)
	})

	t.Run("counts by bucket", func(t *testing.T) {
		h := MagnitudeHistogram(regionWithMagnitudes(0.1, 0.4, 5.0, 5.49, 9.9))

		assert.Equal(t, 2, h.Buckets[0].Count)  // [0, 0.5)
		assert.Equal(t, 2, h.Buckets[10].Count) // [5.0, 5.5)
		assert.Equal(t, 1, h.Buckets[19].Count) // [9.5, 10]
	})

	t.Run("exact max lands in last bucket", func(t *testing.T) {
		h := MagnitudeHistogram(regionWithMagnitudes(10.0))
		assert.Equal(t, 1, h.Buckets[19].Count)
	})

	t.Run("out of range dropped", func(t *testing.T) {
		h := MagnitudeHistogram(regionWithMagnitudes(-0.5, 10.5))
		for _, b := range h.Buckets {
			assert.Zero(t, b.Count)
		}
	})

	t.Run("bucket edge belongs to upper bucket", func(t *testing.T) {
		h := MagnitudeHistogram(regionWithMagnitudes(0.5))
		assert.Zero(t, h.Buckets[0].Count)
		assert.Equal(t, 1, h.Buckets[1].Count)
	})
}

func TestTimeSeries_ArrivalOrder(t *testing.T) {
	region := regionWithMagnitudes(5.0, 3.0, 8.0)

	series := TimeSeries(region)

	require.Len(t, series, 3)
	assert.Equal(t, 5.0, series[0].Magnitude)
	assert.Equal(t, 3.0, series[1].Magnitude)
	assert.Equal(t, 8.0, series[2].Magnitude)
	assert.True(t, series[0].Time.Before(series[1].Time))
}

func TestMarkerFor(t *testing.T) {
	t.Run("inert for nil reference", func(t *testing.T) {
		m := MarkerFor(nil)
		assert.False(t, m.Visible)
		assert.Empty(t, m.Label)
	})

	t.Run("visible with position and label", func(t *testing.T) {
		ref := &domain.Record{
			Geo:      domain.Geo{Lat: 34.0, Lon: -118.0},
			Easting:  -13135699.91,
			Northing: 4027023.36,
			Place:    "10km NW of Los Angeles, CA",
		}

		m := MarkerFor(ref)

		assert.True(t, m.Visible)
		assert.Equal(t, 34.0, m.Lat)
		assert.Equal(t, -118.0, m.Lon)
		assert.Equal(t, ref.Easting, m.Easting)
		assert.Equal(t, "10km NW of Los Angeles, CA", m.Label)
	})
}

func TestBuildSnapshot(t *testing.T) {
	frozen := time.Date(2024, 4, 27, 6, 0, 0, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(frozen))
	defer SetClock(nil)

	t.Run("empty selection", func(t *testing.T) {
		snap := BuildSnapshot("sess-1", domain.RecordSet{}, nil)

		assert.Equal(t, "sess-1", snap.SessionID)
		assert.Nil(t, snap.SelectedID)
		assert.Zero(t, snap.RegionSize)
		assert.Empty(t, snap.Region)
		assert.False(t, snap.Marker.Visible)
		assert.Equal(t, frozen, snap.ProcessedAt)
	})

	t.Run("populated selection", func(t *testing.T) {
		region := regionWithMagnitudes(7.1, 6.8)
		ref := &region[0]

		snap := BuildSnapshot("sess-1", region, ref)

		require.NotNil(t, snap.SelectedID)
		assert.Equal(t, 0, *snap.SelectedID)
		assert.Equal(t, 2, snap.RegionSize)
		assert.Equal(t, []int{0, 1}, snap.Region)
		assert.True(t, snap.Marker.Visible)
		assert.Len(t, snap.Series, 2)
	})
}
