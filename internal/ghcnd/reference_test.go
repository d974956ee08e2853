package ghcnd

import "context"

// fakeRef is a fixture ReferenceData used across the pipeline tests.
type fakeRef struct {
	territories map[string][]string // country -> territory codes
	stations    map[string][]string // territory code -> station ids
	metadata    map[string]Station
	ensureErr   error
	ensured     int
}

func (f *fakeRef) Ensure(ctx context.Context) error {
	f.ensured++
	return f.ensureErr
}

func (f *fakeRef) TerritoryCodes(country string) ([]string, bool) {
	codes, ok := f.territories[country]
	return codes, ok
}

func (f *fakeRef) TerritoryStations(code string) ([]string, bool) {
	stations, ok := f.stations[code]
	if !ok || len(stations) == 0 {
		return nil, false
	}
	return stations, true
}

func (f *fakeRef) StationMetadata() map[string]Station {
	if f.metadata == nil {
		return map[string]Station{}
	}
	return f.metadata
}
