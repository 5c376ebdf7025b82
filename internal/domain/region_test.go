package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func setAt(coords ...[2]float64) RecordSet {
	set := make(RecordSet, 0, len(coords))
	for i, c := range coords {
		set = append(set, Record{
			ID:   i,
			Geo:  Geo{Lat: c[0], Lon: c[1]},
			Time: time.Date(2024, 4, 26, 0, i, 0, 0, time.UTC),
		})
	}
	return set
}

func TestBoxResolver_StrictBoundary(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon float64
		included bool
	}{
		{"exactly on lat edge excluded", 10.25, 20.0, false},
		{"exactly on lon edge excluded", 10.0, 20.25, false},
		{"just inside lat edge included", 10.24999, 20.0, true},
		{"just inside lon edge included", 10.0, 20.24999, true},
		{"reference itself included", 10.0, 20.0, true},
		{"negative lat edge excluded", 9.75, 20.0, false},
		{"both axes out excluded", 10.3, 20.3, false},
	}

	var resolver BoxResolver
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := setAt([2]float64{tt.lat, tt.lon})
			region := resolver.Resolve(set, 10.0, 20.0, 0.25)
			if tt.included {
				assert.Len(t, region, 1)
			} else {
				assert.Empty(t, region)
			}
		})
	}
}

func TestBoxResolver_PreservesOrder(t *testing.T) {
	set := setAt(
		[2]float64{34.1, -118.1},
		[2]float64{50.0, 0.0}, // outside
		[2]float64{33.9, -117.9},
		[2]float64{34.0, -118.0},
	)

	region := BoxResolver{}.Resolve(set, 34.0, -118.0, 0.25)

	assert.Equal(t, []int{0, 2, 3}, region.IDs())
}

func TestBoxResolver_Deterministic(t *testing.T) {
	set := setAt(
		[2]float64{34.1, -118.1},
		[2]float64{34.2, -118.2},
		[2]float64{35.0, -119.0},
	)

	first := BoxResolver{}.Resolve(set, 34.0, -118.0, 0.25)
	second := BoxResolver{}.Resolve(set, 34.0, -118.0, 0.25)

	assert.Equal(t, first, second)
}

func TestBoxResolver_EmptyInputs(t *testing.T) {
	region := BoxResolver{}.Resolve(nil, 34.0, -118.0, 0.25)
	assert.NotNil(t, region)
	assert.Empty(t, region)
}

func TestRecordSet_ByID(t *testing.T) {
	// A filtered subset keeps the IDs of its parent set.
	set := RecordSet{
		{ID: 3, Magnitude: 7.2},
		{ID: 8, Magnitude: 8.1},
	}

	r, ok := set.ByID(8)
	assert.True(t, ok)
	assert.Equal(t, 8.1, r.Magnitude)

	_, ok = set.ByID(4)
	assert.False(t, ok)
}

func TestRecordSet_FilterMinMagnitude(t *testing.T) {
	set := RecordSet{
		{ID: 0, Magnitude: 4.5},
		{ID: 1, Magnitude: 7.0},
		{ID: 2, Magnitude: 6.9},
		{ID: 3, Magnitude: 8.2},
	}

	summary := set.FilterMinMagnitude(7.0)

	assert.Equal(t, []int{1, 3}, summary.IDs())
}
