// Package linked implements the selection-driven recomputation that feeds
// the downstream linked views.
//
// A Session owns two immutable record sets: the full catalog, from which
// region subsets are drawn, and the summary set (the high-magnitude records
// the map view displays), from which the reference coordinates come. A
// selection event names a summary record; the session resolves the region
// around it over the full catalog and memoizes the result per identifier,
// so repeated taps on the same marker never re-scan the catalog.
package linked

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/quake-views/internal/domain"
	"github.com/couchcryptid/quake-views/internal/observability"
	"github.com/google/uuid"
)

// ErrUnknownID is returned when a selection names an identifier that does
// not exist in the summary set. Selections are derived from the summary set,
// so an unknown identifier indicates an inconsistent upstream.
var ErrUnknownID = errors.New("selection id not in summary set")

// DefaultCacheSize bounds the region subset cache when no size is configured.
const DefaultCacheSize = 256

// Result is the output of one selection: the region subset around the
// reference record, and the reference itself. Reference is nil for an empty
// selection.
type Result struct {
	Region    domain.RecordSet
	Reference *domain.Record
}

// Session resolves selections into region subsets with per-identifier
// memoization. Both record sets are injected at construction and never
// mutated; the LRU cache is the session's only mutable state and is
// discarded with it.
//
// Selection processing is sequential: callers serialize OnSelection
// invocations (the pipeline goroutine and the HTTP surface share one
// builder guarded by a mutex).
type Session struct {
	id        string
	full      domain.RecordSet
	summary   domain.RecordSet
	resolver  domain.RegionResolver
	halfWidth float64
	cache     *lruCache
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// NewSession creates a Session over the given full and summary record sets.
// halfWidth <= 0 falls back to domain.DefaultHalfWidth; cacheSize <= 0 falls
// back to DefaultCacheSize.
func NewSession(full, summary domain.RecordSet, resolver domain.RegionResolver, halfWidth float64, cacheSize int, logger *slog.Logger, metrics *observability.Metrics) *Session {
	if halfWidth <= 0 {
		halfWidth = domain.DefaultHalfWidth
	}
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	id := uuid.NewString()
	return &Session{
		id:        id,
		full:      full,
		summary:   summary,
		resolver:  resolver,
		halfWidth: halfWidth,
		cache:     newLRUCache(cacheSize),
		logger:    logger.With("session_id", id[:8]),
		metrics:   metrics,
	}
}

// ID returns the session's unique identifier, used to correlate snapshots
// with the catalog load they were computed against.
func (s *Session) ID() string { return s.id }

// OnSelection resolves a selection into a region subset and reference record.
//
// An empty selection yields an empty region and nil reference without
// touching the cache. For a multi-identifier selection only the first
// identifier is used; the rest are ignored. A cached identifier returns the
// memoized subset without invoking the resolver. An identifier missing from
// the summary set fails fast with ErrUnknownID.
func (s *Session) OnSelection(sel domain.Selection) (Result, error) {
	if sel.Empty() {
		return Result{Region: domain.RecordSet{}}, nil
	}

	// First identifier wins on multi-select.
	id := sel.IDs[0]

	ref, ok := s.summary.ByID(id)
	if !ok {
		return Result{}, fmt.Errorf("%w: %d", ErrUnknownID, id)
	}

	if region, hit := s.cache.get(id); hit {
		s.metrics.RegionCache.WithLabelValues("hit").Inc()
		return Result{Region: region, Reference: &ref}, nil
	}
	s.metrics.RegionCache.WithLabelValues("miss").Inc()

	start := time.Now()
	region := s.resolver.Resolve(s.full, ref.Geo.Lat, ref.Geo.Lon, s.halfWidth)
	s.metrics.ResolveDuration.Observe(time.Since(start).Seconds())
	s.metrics.RegionSize.Observe(float64(len(region)))

	s.cache.put(id, region)

	s.logger.Debug("region resolved",
		"selected_id", id,
		"lat", ref.Geo.Lat,
		"lon", ref.Geo.Lon,
		"region_size", len(region),
	)
	return Result{Region: region, Reference: &ref}, nil
}
