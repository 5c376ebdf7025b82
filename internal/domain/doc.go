// Package domain models earthquake catalog data and the region query that
// drives the linked views.
//
// # Data Source
//
// Records originate from USGS earthquake catalog CSV exports, available at
// https://earthquake.usgs.gov/earthquakes/search/. The catalog is loaded once
// at startup; records are immutable afterwards and are identified by their
// ordinal position in the loaded set.
//
// # Catalog Conventions
//
// Time format:
//
//	ISO 8601 UTC with optional fractional seconds, e.g. "2011-03-11T05:46:24.120Z".
//
// Coordinates:
//
//	WGS-84 decimal degrees. Latitude north-positive, longitude east-positive.
//	For map display each record also carries Web Mercator (EPSG:3857)
//	easting/northing in meters, computed at load time from lon/lat.
//
// Magnitude classification:
//
//	Derived from the USGS magnitude classes into a seven-level scale for
//	user-facing queries:
//
//	  <3 micro | <4 minor | <5 light | <6 moderate | <7 strong | <8 major | ≥8 great
//
// # Region Queries
//
// A region subset is every record whose latitude and longitude each lie
// strictly within a half-width (default 0.25°, a 0.5° window) of a reference
// coordinate. The window is axis-aligned in degrees, not a great-circle
// distance; it mirrors the box the map view draws around a selected event.
//
// # ID Generation
//
// Event IDs are deterministic SHA-256 hashes of time|lat|lon|mag. This makes
// published view snapshots replay-safe: reprocessing the same selection over
// the same catalog produces identically keyed output. See [GenerateEventID].
package domain
