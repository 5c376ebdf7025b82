// Command validate performs offline integrity checks on an earthquake
// catalog CSV before it is served: parseability, coordinate and magnitude
// ranges, and summary-set coverage for a given magnitude cut.
//
// Usage:
//
//	go run ./cmd/validate -dataset data/mock/catalog.csv -min-magnitude 7.0
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/couchcryptid/quake-views/internal/dataset"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	datasetPath := flag.String("dataset", "", "path to the catalog CSV")
	minMagnitude := flag.Float64("min-magnitude", 7.0, "summary set magnitude cut")
	flag.Parse()

	if *datasetPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*datasetPath, *minMagnitude); code != 0 {
		os.Exit(code)
	}
}

func run(path string, minMagnitude float64) int {
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))

	loadPhase := &phase{name: "load"}
	result, err := dataset.Load(path, minMagnitude, quiet)
	if err != nil {
		loadPhase.errorf("catalog failed to load: %v", err)
		report(loadPhase)
		return 1
	}
	if len(result.Full) == 0 {
		loadPhase.errorf("catalog contains no loadable records")
	}
	if result.Skipped > 0 {
		loadPhase.errorf("%d rows were skipped as malformed", result.Skipped)
	}

	rangePhase := &phase{name: "ranges"}
	for _, r := range result.Full {
		if r.Geo.Lat < -90 || r.Geo.Lat > 90 {
			rangePhase.errorf("record %d: latitude %.4f out of range", r.ID, r.Geo.Lat)
		}
		if r.Geo.Lon < -180 || r.Geo.Lon > 180 {
			rangePhase.errorf("record %d: longitude %.4f out of range", r.ID, r.Geo.Lon)
		}
		if r.Magnitude < -1 || r.Magnitude > 10 {
			rangePhase.errorf("record %d: magnitude %.2f out of range", r.ID, r.Magnitude)
		}
		if r.Time.IsZero() {
			rangePhase.errorf("record %d: zero time", r.ID)
		}
	}

	summaryPhase := &phase{name: "summary"}
	if len(result.Summary) == 0 {
		summaryPhase.errorf("no records at or above magnitude %.1f; selections would always fail", minMagnitude)
	}

	fmt.Printf("catalog: %s\n", path)
	fmt.Printf("records: %d (summary >= %.1f: %d, skipped: %d)\n\n",
		len(result.Full), minMagnitude, len(result.Summary), result.Skipped)

	code := 0
	for _, p := range []*phase{loadPhase, rangePhase, summaryPhase} {
		if !report(p) {
			code = 1
		}
	}
	return code
}

// report prints a phase result and returns whether it passed.
func report(p *phase) bool {
	if p.passed() {
		fmt.Printf("PASS %s\n", p.name)
		return true
	}
	fmt.Printf("FAIL %s\n", p.name)
	for _, e := range p.errors {
		fmt.Printf("  - %s\n", e)
	}
	return false
}
