package ghcnd

// StationResolver maps a country code to the full list of monitoring
// stations through the intermediate territory-code layer.
type StationResolver struct {
	ref ReferenceData
}

// NewStationResolver creates a resolver over the given reference data.
func NewStationResolver(ref ReferenceData) *StationResolver {
	return &StationResolver{ref: ref}
}

// StationsForCountry returns every station id for the country, in
// territory order then within-territory order. Territories without any
// known stations are skipped; duplicates across territories are kept.
// An unknown country code is a hard input error.
func (r *StationResolver) StationsForCountry(country string) ([]string, error) {
	codes, ok := r.ref.TerritoryCodes(country)
	if !ok {
		return nil, &UnknownCountryError{Country: country}
	}

	var stations []string
	for _, code := range codes {
		codeStations, ok := r.ref.TerritoryStations(code)
		if !ok {
			continue
		}
		stations = append(stations, codeStations...)
	}

	return stations, nil
}
