package refdata

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/taskgeo/ghcnd-fetcher/internal/ghcnd"
	"github.com/taskgeo/ghcnd-fetcher/internal/logger"
)

// stationsFile is the marker file gating the bulk download: when it is
// present locally the reference data is considered populated.
const stationsFile = "ghcnd-stations.txt"

// Options configures a Dataset.
type Options struct {
	// DataDir is the local reference-data directory.
	DataDir string

	// BaseURL is the root of the GHCN-Daily file mirror.
	BaseURL string

	// Client is used for the bulk download. Defaults to
	// http.DefaultClient.
	Client *http.Client

	// LargeFiles also downloads the full daily archive, not just the
	// metadata files.
	LargeFiles bool
}

// Dataset serves the static lookup tables the pipeline consumes: the
// country/territory mapping, the territory/station mapping derived from
// the station reference file, and the station metadata itself.
type Dataset struct {
	opts Options
	log  logger.Logger

	mu          sync.RWMutex
	loaded      bool
	stations    map[string]ghcnd.Station
	territories map[string][]string
}

// NewDataset creates a Dataset over the given options.
func NewDataset(opts Options, log logger.Logger) *Dataset {
	if opts.Client == nil {
		opts.Client = http.DefaultClient
	}
	return &Dataset{opts: opts, log: log}
}

// Ensure makes the reference files available locally, downloading them
// once when the stations marker file is absent, and loads the lookup
// tables. Safe to call repeatedly; subsequent calls are no-ops.
func (d *Dataset) Ensure(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.loaded {
		return nil
	}

	marker := filepath.Join(d.opts.DataDir, stationsFile)
	if _, err := os.Stat(marker); errors.Is(err, fs.ErrNotExist) {
		d.log.Infof("reference data missing, downloading into %s", d.opts.DataDir)
		if err := d.download(ctx); err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	return d.load(marker)
}

func (d *Dataset) load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	stations := make(map[string]ghcnd.Station)
	territories := make(map[string][]string)

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		st, ok := parseStationLine(scanner.Text())
		if !ok {
			continue
		}
		stations[st.ID] = st
		code := st.ID[:2]
		territories[code] = append(territories[code], st.ID)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	d.stations = stations
	d.territories = territories
	d.loaded = true
	d.log.Infof("loaded %d stations across %d territories", len(stations), len(territories))
	return nil
}

// parseStationLine decodes one fixed-width row of ghcnd-stations.txt.
//
//	ID 1-11, LATITUDE 13-20, LONGITUDE 22-30, ELEVATION 32-37,
//	STATE 39-40, NAME 42-71, GSN FLAG 73-75, HCN/CRN FLAG 77-79,
//	WMO ID 81-85
func parseStationLine(line string) (ghcnd.Station, bool) {
	if len(line) < 11 || strings.TrimSpace(line[:11]) == "" {
		return ghcnd.Station{}, false
	}
	if len(line) < 85 {
		line = line + strings.Repeat(" ", 85-len(line))
	}

	field := func(from, to int) string {
		return strings.TrimSpace(line[from:to])
	}

	return ghcnd.Station{
		ID:         field(0, 11),
		Latitude:   field(12, 20),
		Longitude:  field(21, 30),
		Elevation:  field(31, 37),
		State:      field(38, 40),
		Name:       field(41, 71),
		GSNFlag:    field(72, 75),
		HCNCRNFlag: field(76, 79),
		WMOID:      field(80, 85),
	}, true
}

// TerritoryCodes returns the territory codes for a country, and whether
// the country is known at all.
func (d *Dataset) TerritoryCodes(country string) ([]string, bool) {
	codes, ok := countryTerritories[country]
	return codes, ok
}

// TerritoryStations returns the station ids for a territory code, in
// reference-file order.
func (d *Dataset) TerritoryStations(code string) ([]string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	stations, ok := d.territories[code]
	if !ok || len(stations) == 0 {
		return nil, false
	}
	return stations, true
}

// StationMetadata returns the station reference table keyed by station
// id. Callers treat it as read-only.
func (d *Dataset) StationMetadata() map[string]ghcnd.Station {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.stations
}
