package ghcnd

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// MaxBatchStations is the remote API's hard per-request station ceiling.
const MaxBatchStations = 50

const dataset = "daily-summaries"

// RequestBatch is one outbound request covering at most
// MaxBatchStations stations. It is created by the batcher and consumed
// exactly once by the executor.
type RequestBatch struct {
	Stations []string
	Start    time.Time
	End      time.Time
	Metrics  []Metric
}

// URL serializes the batch into the outbound request URL.
func (b RequestBatch) URL(baseURL string) string {
	codes := make([]string, 0, len(b.Metrics))
	for _, m := range b.Metrics {
		codes = append(codes, string(m))
	}

	values := url.Values{}
	values.Set("dataset", dataset)
	values.Set("stations", strings.Join(b.Stations, ","))
	values.Set("startDate", b.Start.Format("2006-01-02"))
	values.Set("endDate", b.End.Format("2006-01-02"))
	values.Set("dataTypes", strings.Join(codes, ","))
	values.Set("format", "json")
	values.Set("units", "metric")

	return fmt.Sprintf("%s?%s", baseURL, values.Encode())
}

// RequestBatcher turns a country plus date range and metric selection
// into request batches.
type RequestBatcher struct {
	resolver *StationResolver
	clock    func() time.Time
}

// NewRequestBatcher creates a batcher. The clock supplies the default
// end date when a caller omits one; tests pin it.
func NewRequestBatcher(resolver *StationResolver, clock func() time.Time) *RequestBatcher {
	if clock == nil {
		clock = time.Now
	}
	return &RequestBatcher{resolver: resolver, clock: clock}
}

// BuildBatches resolves the country's stations and partitions them into
// contiguous chunks of at most MaxBatchStations, preserving station
// order. A zero end time defaults to the current date; an empty metric
// selection defaults to DefaultMetrics. A country that resolves to zero
// stations yields zero batches.
func (b *RequestBatcher) BuildBatches(country string, start, end time.Time, metrics []Metric) ([]RequestBatch, error) {
	stations, err := b.resolver.StationsForCountry(country)
	if err != nil {
		return nil, err
	}

	if end.IsZero() {
		end = b.clock()
	}
	if start.After(end) {
		return nil, fmt.Errorf("start date %s is after end date %s",
			start.Format("2006-01-02"), end.Format("2006-01-02"))
	}
	if len(metrics) == 0 {
		metrics = DefaultMetrics
	}

	var batches []RequestBatch
	for i := 0; i < len(stations); i += MaxBatchStations {
		chunk := stations[i:min(i+MaxBatchStations, len(stations))]
		batches = append(batches, RequestBatch{
			Stations: chunk,
			Start:    start,
			End:      end,
			Metrics:  metrics,
		})
	}

	return batches, nil
}
