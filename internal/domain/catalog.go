package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Web Mercator constants (EPSG:3857). Latitudes beyond the projection's
// defined extent are clamped rather than rejected.
const (
	earthRadiusM = 6378137.0
	maxMercLat   = 85.051129
)

// CatalogRow holds the string fields of one USGS catalog CSV row before
// parsing. Extra catalog columns (magType, nst, gap, ...) are dropped by the
// loader and never reach this type.
type CatalogRow struct {
	Time      string
	Latitude  string
	Longitude string
	Depth     string
	Magnitude string
	Place     string
}

// ParseCatalogRow converts a raw catalog row into a Record with the given
// ordinal ID, computing the Web Mercator projection and magnitude class.
// Rows with an unparseable time or coordinates are rejected; depth and
// magnitude fall back to zero when empty or malformed, matching the
// "unmeasured means zero" catalog convention.
func ParseCatalogRow(id int, row CatalogRow) (Record, error) {
	ts, err := parseCatalogTime(row.Time)
	if err != nil {
		return Record{}, fmt.Errorf("parse catalog row %d: %w", id, err)
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(row.Latitude), 64)
	if err != nil {
		return Record{}, fmt.Errorf("parse catalog row %d: latitude %q", id, row.Latitude)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(row.Longitude), 64)
	if err != nil {
		return Record{}, fmt.Errorf("parse catalog row %d: longitude %q", id, row.Longitude)
	}

	mag := parseFloatOrZero(row.Magnitude)
	easting, northing := ProjectLonLat(lon, lat)

	return Record{
		ID:        id,
		EventID:   GenerateEventID(ts, lat, lon, mag),
		Geo:       Geo{Lat: lat, Lon: lon},
		Easting:   easting,
		Northing:  northing,
		Depth:     parseFloatOrZero(row.Depth),
		Magnitude: mag,
		MagClass:  MagnitudeClass(mag),
		Time:      ts,
		Place:     strings.TrimSpace(row.Place),
	}, nil
}

// parseCatalogTime accepts ISO 8601 UTC with or without fractional seconds.
func parseCatalogTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("time %q: %w", s, err)
	}
	return ts.UTC(), nil
}

// parseFloatOrZero parses a string as float64, returning 0 on failure.
func parseFloatOrZero(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// MagnitudeClass maps a magnitude onto the seven-level USGS-derived scale.
func MagnitudeClass(mag float64) string {
	switch {
	case mag < 3:
		return "micro"
	case mag < 4:
		return "minor"
	case mag < 5:
		return "light"
	case mag < 6:
		return "moderate"
	case mag < 7:
		return "strong"
	case mag < 8:
		return "major"
	default:
		return "great"
	}
}

// ProjectLonLat converts WGS-84 lon/lat degrees to Web Mercator meters.
// Latitude is clamped to the projection's ±85.051129° extent.
func ProjectLonLat(lon, lat float64) (easting, northing float64) {
	if lat > maxMercLat {
		lat = maxMercLat
	}
	if lat < -maxMercLat {
		lat = -maxMercLat
	}
	easting = earthRadiusM * lon * math.Pi / 180
	northing = earthRadiusM * math.Log(math.Tan(math.Pi/4+lat*math.Pi/360))
	return easting, northing
}

// GenerateEventID produces a deterministic ID from the record's key fields.
// Reprocessing the same catalog row always yields the same ID, so snapshot
// consumers can upsert idempotently.
func GenerateEventID(ts time.Time, lat, lon, mag float64) string {
	input := fmt.Sprintf("%s|%.4f|%.4f|%g", ts.UTC().Format(time.RFC3339Nano), lat, lon, mag)
	hash := sha256.Sum256([]byte(input))
	return "eq-" + hex.EncodeToString(hash[:8])
}
