package ghcnd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assemblerFixture() *ResultAssembler {
	return NewResultAssembler(&fakeRef{
		metadata: map[string]Station{
			"USC00000001": {
				ID:         "USC00000001",
				Latitude:   "37.7983",
				Longitude:  "-122.4550",
				Elevation:  "47.2",
				State:      "CA",
				Name:       "SAN FRANCISCO OCEANSIDE",
				GSNFlag:    "GSN",
				HCNCRNFlag: "HCN",
				WMOID:      "72494",
			},
		},
	})
}

func TestAssembleLeftMerge(t *testing.T) {
	a := assemblerFixture()

	table := a.Assemble([]Record{
		{"STATION": "USC00000001", "DATE": "2020-01-01", "TMAX": "12.3"},
		{"STATION": "XXM00000009", "DATE": "2020-01-01", "TMAX": "-2.0"},
	}, []Metric{MetricTMAX})

	require.Len(t, table.Rows, 2)

	cols := map[string]int{}
	for i, c := range table.Columns {
		cols[c] = i
	}

	// Matched station carries its metadata fields.
	matched := table.Rows[0]
	assert.Equal(t, "USC00000001", matched[cols["STATION"]])
	assert.Equal(t, "37.7983", matched[cols["LATITUDE"]])
	assert.Equal(t, "SAN FRANCISCO OCEANSIDE", matched[cols["NAME"]])
	assert.Equal(t, "72494", matched[cols["WMO ID"]])

	// Unmatched station is kept with empty metadata fields.
	unmatched := table.Rows[1]
	assert.Equal(t, "XXM00000009", unmatched[cols["STATION"]])
	assert.Equal(t, "", unmatched[cols["LATITUDE"]])
	assert.Equal(t, "", unmatched[cols["NAME"]])
	assert.Equal(t, "-2.0", unmatched[cols["TMAX"]])
}

func TestAssembleColumnOrder(t *testing.T) {
	a := assemblerFixture()

	// SNOW is requested but absent from the data, so it is omitted.
	table := a.Assemble([]Record{
		{"STATION": "USC00000001", "DATE": "2020-01-01", "TMAX": "12.3"},
	}, []Metric{MetricSNOW, MetricTMAX})

	assert.Equal(t, []string{
		"DATE", "STATION", "LATITUDE", "LONGITUDE", "ELEVATION", "NAME",
		"GSN FLAG", "HCN/CRN FLAG", "WMO ID", "TMAX",
	}, table.Columns)
}

func TestAssembleDropsStateAndID(t *testing.T) {
	a := assemblerFixture()

	table := a.Assemble([]Record{
		{"STATION": "USC00000001", "DATE": "2020-01-01", "TMAX": "12.3"},
	}, nil)

	assert.NotContains(t, table.Columns, "STATE")
	assert.NotContains(t, table.Columns, "ID")
}

func TestAssembleRequestedMetricOrder(t *testing.T) {
	a := assemblerFixture()

	table := a.Assemble([]Record{
		{"STATION": "USC00000001", "DATE": "2020-01-01", "TMAX": "12.3", "SNOW": "0.0", "PRCP": "4.1"},
	}, []Metric{MetricSNOW, MetricPRCP, MetricTMAX})

	trailing := table.Columns[len(table.Columns)-3:]
	assert.Equal(t, []string{"SNOW", "PRCP", "TMAX"}, trailing)
}

func TestAssembleEmptyRecords(t *testing.T) {
	a := assemblerFixture()

	table := a.Assemble(nil, nil)

	assert.Len(t, table.Columns, 9)
	assert.Empty(t, table.Rows)
}
