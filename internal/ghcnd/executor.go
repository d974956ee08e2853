package ghcnd

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/taskgeo/ghcnd-fetcher/internal/logger"
)

// FetchExecutor issues batch requests and separates successful payloads
// from failed ones. A failing batch never aborts the remaining batches:
// partial-failure isolation is this component's core contract.
type FetchExecutor struct {
	client      *http.Client
	baseURL     string
	concurrency int
	log         logger.Logger
}

// NewFetchExecutor creates an executor. Concurrency bounds the worker
// pool; values below one run requests sequentially.
func NewFetchExecutor(client *http.Client, baseURL string, concurrency int, log logger.Logger) *FetchExecutor {
	if concurrency < 1 {
		concurrency = 1
	}
	return &FetchExecutor{
		client:      client,
		baseURL:     baseURL,
		concurrency: concurrency,
		log:         log,
	}
}

type batchOutcome struct {
	records []Record
	failure *FetchError
	fatal   error
}

// Execute runs every batch once, with no retries and no backoff.
// Results are accumulated by original batch position, so the returned
// record and error lists have a reproducible order regardless of the
// worker pool. A non-2xx response is isolated into the error list; a
// transport failure or an undecodable body is fatal for the whole call.
func (e *FetchExecutor) Execute(ctx context.Context, batches []RequestBatch) ([]Record, []FetchError, error) {
	outcomes := make([]batchOutcome, len(batches))

	var wg sync.WaitGroup
	sem := make(chan struct{}, e.concurrency)

	for i, batch := range batches {
		i, batch := i, batch
		wg.Add(1)
		go func() {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			e.log.Debugf("making request %d/%d", i+1, len(batches))
			outcomes[i] = e.fetchOne(ctx, batch)
		}()
	}
	wg.Wait()

	var (
		records []Record
		errs    []FetchError
	)
	for _, out := range outcomes {
		if out.fatal != nil {
			return nil, nil, out.fatal
		}
		if out.failure != nil {
			errs = append(errs, *out.failure)
			continue
		}
		records = append(records, out.records...)
	}

	return records, errs, nil
}

func (e *FetchExecutor) fetchOne(ctx context.Context, batch RequestBatch) batchOutcome {
	target := batch.URL(e.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return batchOutcome{fatal: err}
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return batchOutcome{fatal: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var payload map[string]interface{}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return batchOutcome{fatal: fmt.Errorf("decoding error response from %s: %w", target, err)}
		}
		return batchOutcome{failure: &FetchError{
			URL:        target,
			StatusCode: resp.StatusCode,
			Payload:    payload,
		}}
	}

	var records []Record
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return batchOutcome{fatal: fmt.Errorf("decoding response from %s: %w", target, err)}
	}

	return batchOutcome{records: records}
}
