package domain

import (
	"context"
	"time"
)

// Geo represents a WGS-84 latitude/longitude coordinate pair.
type Geo struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Record is one earthquake observation. Records are immutable once loaded;
// ID is the record's ordinal position in the loaded catalog.
type Record struct {
	ID        int       `json:"id"`
	EventID   string    `json:"event_id"`
	Geo       Geo       `json:"geo"`
	Easting   float64   `json:"easting"`
	Northing  float64   `json:"northing"`
	Depth     float64   `json:"depth"`
	Magnitude float64   `json:"magnitude"`
	MagClass  string    `json:"mag_class,omitempty"`
	Time      time.Time `json:"time"`
	Place     string    `json:"place,omitempty"`
}

// RecordSet is an ordered sequence of Records. It is append-only at load
// time and never mutated afterwards.
type RecordSet []Record

// ByID returns the record with the given ordinal ID, scanning in order.
// A filtered set keeps the IDs of the set it was derived from, so IDs are
// not necessarily positional.
func (s RecordSet) ByID(id int) (Record, bool) {
	for _, r := range s {
		if r.ID == id {
			return r, true
		}
	}
	return Record{}, false
}

// IDs returns the ordinal identifiers of the set, in order.
func (s RecordSet) IDs() []int {
	ids := make([]int, len(s))
	for i, r := range s {
		ids[i] = r.ID
	}
	return ids
}

// FilterMinMagnitude returns the ordered subset with Magnitude >= min.
// Records keep their original IDs.
func (s RecordSet) FilterMinMagnitude(min float64) RecordSet {
	out := make(RecordSet, 0)
	for _, r := range s {
		if r.Magnitude >= min {
			out = append(out, r)
		}
	}
	return out
}

// Selection is the minimal sequence-of-identifiers value emitted by a
// selection source (map tap, HTTP request). Only the first identifier is
// significant; the rest are ignored by convention.
type Selection struct {
	IDs []int `json:"ids"`
}

// Empty reports whether the selection carries no identifiers.
func (s Selection) Empty() bool { return len(s.IDs) == 0 }

// RawEvent represents an unprocessed message from the selection source topic.
type RawEvent struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// OutputEvent is the serialized view snapshot destined for the sink topic.
type OutputEvent struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}
