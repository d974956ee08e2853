package ghcnd

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Metric identifies a GHCN-Daily observation type.
type Metric string

const (
	MetricTMAX Metric = "TMAX" // maximum temperature
	MetricTMIN Metric = "TMIN" // minimum temperature
	MetricTAVG Metric = "TAVG" // average temperature
	MetricPRCP Metric = "PRCP" // precipitation
	MetricSNOW Metric = "SNOW" // snowfall (mm)
	MetricSNWD Metric = "SNWD" // snow depth (mm)
)

// DefaultMetrics is the metric selection used when a caller does not
// provide one.
var DefaultMetrics = []Metric{
	MetricTMAX, MetricTMIN, MetricTAVG, MetricPRCP, MetricSNOW, MetricSNWD,
}

// ParseMetric converts a case-insensitive metric code into a Metric.
func ParseMetric(s string) (Metric, error) {
	m := Metric(strings.ToUpper(strings.TrimSpace(s)))
	switch m {
	case MetricTMAX, MetricTMIN, MetricTAVG, MetricPRCP, MetricSNOW, MetricSNWD:
		return m, nil
	}
	return "", fmt.Errorf("unknown metric %q (valid: TMAX, TMIN, TAVG, PRCP, SNOW, SNWD)", s)
}

// Record is one flat observation row as returned by the remote source:
// station id, date, one value per requested metric, plus whatever
// provider-specific fields came along. Values stay as strings the whole
// way through so assembled output is byte-stable.
type Record map[string]string

// Station is one row of the station reference dataset.
type Station struct {
	ID         string
	Latitude   string
	Longitude  string
	Elevation  string
	State      string
	Name       string
	GSNFlag    string
	HCNCRNFlag string
	WMOID      string
}

// ResultTable is the final assembled output: a fixed identity/location
// column prefix followed by the requested metrics that are actually
// present, with rows projected into column order.
type ResultTable struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// FetchError describes one failed batch request. It is informational
// output: the pipeline keeps going and returns these alongside the
// assembled table.
type FetchError struct {
	URL        string                 `json:"url"`
	StatusCode int                    `json:"status"`
	Payload    map[string]interface{} `json:"error"`
}

func (e FetchError) Error() string {
	return fmt.Sprintf("request %s failed with status %d", e.URL, e.StatusCode)
}

// UnknownCountryError reports a country code missing from the
// country/territory reference table. It is a hard input error.
type UnknownCountryError struct {
	Country string
}

func (e *UnknownCountryError) Error() string {
	return fmt.Sprintf("unknown country code %q", e.Country)
}

// ReferenceData is the read-only reference surface the pipeline needs.
// It is injected explicitly so tests can substitute a fixture without
// touching global state.
type ReferenceData interface {
	// Ensure makes the reference files available locally, triggering a
	// one-time bulk download when they are absent. Idempotent.
	Ensure(ctx context.Context) error

	// TerritoryCodes returns the territory codes for a country, and
	// whether the country is known at all.
	TerritoryCodes(country string) ([]string, bool)

	// TerritoryStations returns the station ids for a territory code.
	// Territories with no known stations report ok=false.
	TerritoryStations(code string) ([]string, bool)

	// StationMetadata returns the station reference table keyed by
	// station id.
	StationMetadata() map[string]Station
}

// Snapshot is one stored acquisition result for a set of countries.
type Snapshot struct {
	Countries []string     `json:"countries"`
	FetchedAt time.Time    `json:"fetchedAt"` // always UTC
	Table     ResultTable  `json:"table"`
	Errors    []FetchError `json:"errors,omitempty"`
}

// Store is the contract the in-memory store (and any future persistent
// store) must satisfy.
type Store interface {
	SaveSnapshot(countries []string, snap Snapshot)
	GetLatest(countries []string) (Snapshot, error)
	GetRange(countries []string, from, to time.Time) ([]Snapshot, error)
}
