// Package dataset loads a USGS-style earthquake catalog CSV into the
// immutable record sets the service works over.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/couchcryptid/quake-views/internal/domain"
)

// Catalog columns the loader requires. Extra columns in the export are
// ignored; "place" is optional and empty when absent.
var requiredColumns = []string{"time", "latitude", "longitude", "mag"}

// LoadResult is a loaded catalog: the full record set, the derived summary
// subset, and the count of malformed rows that were skipped.
type LoadResult struct {
	Full    domain.RecordSet
	Summary domain.RecordSet
	Skipped int
}

// Load reads the catalog CSV at path once, assigns ordinal IDs in file
// order, and derives the summary subset for the given minimum magnitude.
// Malformed rows are skipped with a warning rather than failing the load;
// a missing required column fails immediately.
func Load(path string, minMagnitude float64, logger *slog.Logger) (LoadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return LoadResult{}, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	result, err := read(f, minMagnitude, logger)
	if err != nil {
		return LoadResult{}, fmt.Errorf("load catalog %s: %w", path, err)
	}
	logger.Info("catalog loaded",
		"path", path,
		"records", len(result.Full),
		"summary_records", len(result.Summary),
		"skipped", result.Skipped,
	)
	return result, nil
}

func read(r io.Reader, minMagnitude float64, logger *slog.Logger) (LoadResult, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // catalog exports vary in trailing columns

	header, err := cr.Read()
	if err != nil {
		return LoadResult{}, fmt.Errorf("read header: %w", err)
	}

	cols, err := columnIndex(header)
	if err != nil {
		return LoadResult{}, err
	}

	full := make(domain.RecordSet, 0)
	skipped := 0
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			skipped++
			logger.Warn("skipping malformed CSV row", "error", err)
			continue
		}

		rec, err := domain.ParseCatalogRow(len(full), domain.CatalogRow{
			Time:      field(row, cols["time"]),
			Latitude:  field(row, cols["latitude"]),
			Longitude: field(row, cols["longitude"]),
			Depth:     field(row, cols["depth"]),
			Magnitude: field(row, cols["mag"]),
			Place:     field(row, cols["place"]),
		})
		if err != nil {
			skipped++
			logger.Warn("skipping unparseable catalog row", "error", err)
			continue
		}
		full = append(full, rec)
	}

	return LoadResult{
		Full:    full,
		Summary: full.FilterMinMagnitude(minMagnitude),
		Skipped: skipped,
	}, nil
}

// columnIndex maps catalog column names to positions, case-insensitively.
// Optional columns (depth, place) map to -1 when absent.
func columnIndex(header []string) (map[string]int, error) {
	cols := map[string]int{"depth": -1, "place": -1}
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("catalog missing required column %q", name)
		}
	}
	return cols, nil
}

func field(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
