package ghcnd

import (
	"fmt"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func batcherFixture(stationCount int) *RequestBatcher {
	stations := make([]string, 0, stationCount)
	for i := 0; i < stationCount; i++ {
		stations = append(stations, fmt.Sprintf("USC%08d", i))
	}
	ref := &fakeRef{
		territories: map[string][]string{"US": {"US"}},
		stations:    map[string][]string{"US": stations},
	}
	now := time.Date(2020, 4, 1, 15, 30, 0, 0, time.UTC)
	return NewRequestBatcher(NewStationResolver(ref), fixedClock(now))
}

func TestBuildBatchesUnderLimit(t *testing.T) {
	b := batcherFixture(7)

	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2020, 2, 1, 0, 0, 0, 0, time.UTC)
	batches, err := b.BuildBatches("US", start, end, nil)

	require.NoError(t, err)
	require.Len(t, batches, 1)
	assert.Len(t, batches[0].Stations, 7)
}

func TestBuildBatchesChunking(t *testing.T) {
	b := batcherFixture(120)

	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2020, 2, 1, 0, 0, 0, 0, time.UTC)
	batches, err := b.BuildBatches("US", start, end, nil)

	require.NoError(t, err)
	require.Len(t, batches, 3)
	assert.Len(t, batches[0].Stations, 50)
	assert.Len(t, batches[1].Stations, 50)
	assert.Len(t, batches[2].Stations, 20)

	// Concatenating all batches reproduces the resolved list exactly.
	var all []string
	for _, batch := range batches {
		all = append(all, batch.Stations...)
	}
	for i, st := range all {
		assert.Equal(t, fmt.Sprintf("USC%08d", i), st)
	}
}

func TestBuildBatchesZeroStations(t *testing.T) {
	b := batcherFixture(0)

	batches, err := b.BuildBatches("US", time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), time.Time{}, nil)

	require.NoError(t, err)
	assert.Empty(t, batches)
}

func TestBuildBatchesUnknownCountry(t *testing.T) {
	b := batcherFixture(10)

	batches, err := b.BuildBatches("ZZ", time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), time.Time{}, nil)

	require.Error(t, err)
	assert.Nil(t, batches)
}

func TestBuildBatchesDefaults(t *testing.T) {
	b := batcherFixture(3)

	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	batches, err := b.BuildBatches("US", start, time.Time{}, nil)

	require.NoError(t, err)
	require.Len(t, batches, 1)

	// End defaults to the injected clock, metrics to the default set.
	assert.Equal(t, time.Date(2020, 4, 1, 15, 30, 0, 0, time.UTC), batches[0].End)
	assert.Equal(t, DefaultMetrics, batches[0].Metrics)
}

func TestBuildBatchesStartAfterEnd(t *testing.T) {
	b := batcherFixture(3)

	start := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err := b.BuildBatches("US", start, end, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "after end date")
}

func TestRequestBatchURL(t *testing.T) {
	batch := RequestBatch{
		Stations: []string{"USC00000001", "USC00000002"},
		Start:    time.Date(2020, 1, 1, 9, 45, 0, 0, time.UTC),
		End:      time.Date(2020, 2, 1, 23, 59, 0, 0, time.UTC),
		Metrics:  []Metric{MetricSNOW, MetricTMAX},
	}

	raw := batch.URL("https://example.test/data/v1")

	u, err := url.Parse(raw)
	require.NoError(t, err)
	q := u.Query()

	assert.Equal(t, "daily-summaries", q.Get("dataset"))
	assert.Equal(t, "USC00000001,USC00000002", q.Get("stations"))
	assert.Equal(t, "SNOW,TMAX", q.Get("dataTypes"))
	assert.Equal(t, "json", q.Get("format"))
	assert.Equal(t, "metric", q.Get("units"))

	// Time-of-day is discarded in the encoded dates.
	assert.Equal(t, "2020-01-01", q.Get("startDate"))
	assert.Equal(t, "2020-02-01", q.Get("endDate"))
}
