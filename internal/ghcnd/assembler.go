package ghcnd

// fixedColumns is the identity/location prefix of every result table.
var fixedColumns = []string{
	"DATE", "STATION", "LATITUDE", "LONGITUDE", "ELEVATION", "NAME",
	"GSN FLAG", "HCN/CRN FLAG", "WMO ID",
}

// ResultAssembler flattens fetched records into one table and enriches
// them with station reference metadata.
type ResultAssembler struct {
	ref ReferenceData
}

// NewResultAssembler creates an assembler over the given reference data.
func NewResultAssembler(ref ReferenceData) *ResultAssembler {
	return &ResultAssembler{ref: ref}
}

// Assemble left-joins the records with station metadata on station id
// and projects them into column order. Every record is kept even when
// its station has no metadata row; those metadata fields stay empty.
// Metadata rows without a matching record are dropped, as are the
// metadata ID and STATE columns. Trailing columns are the requested
// metrics that actually appear in the data, in requested order.
func (a *ResultAssembler) Assemble(records []Record, metrics []Metric) ResultTable {
	if len(metrics) == 0 {
		metrics = DefaultMetrics
	}

	stations := a.ref.StationMetadata()

	present := make(map[Metric]bool)
	joined := make([]Record, 0, len(records))
	for _, rec := range records {
		row := make(Record, len(rec)+len(fixedColumns))
		for k, v := range rec {
			row[k] = v
		}
		if st, ok := stations[rec["STATION"]]; ok {
			row["LATITUDE"] = st.Latitude
			row["LONGITUDE"] = st.Longitude
			row["ELEVATION"] = st.Elevation
			row["NAME"] = st.Name
			row["GSN FLAG"] = st.GSNFlag
			row["HCN/CRN FLAG"] = st.HCNCRNFlag
			row["WMO ID"] = st.WMOID
		}
		for _, m := range metrics {
			if _, ok := rec[string(m)]; ok {
				present[m] = true
			}
		}
		joined = append(joined, row)
	}

	columns := make([]string, 0, len(fixedColumns)+len(metrics))
	columns = append(columns, fixedColumns...)
	for _, m := range metrics {
		if present[m] {
			columns = append(columns, string(m))
		}
	}

	rows := make([][]string, 0, len(joined))
	for _, row := range joined {
		out := make([]string, len(columns))
		for i, col := range columns {
			out[i] = row[col]
		}
		rows = append(rows, out)
	}

	return ResultTable{Columns: columns, Rows: rows}
}
