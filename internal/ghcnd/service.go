package ghcnd

import (
	"context"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/taskgeo/ghcnd-fetcher/internal/logger"
)

// Service orchestrates the acquisition pipeline: resolve stations per
// country, batch requests, execute them, and assemble the merged table.
type Service struct {
	ref       ReferenceData
	resolver  *StationResolver
	batcher   *RequestBatcher
	executor  *FetchExecutor
	assembler *ResultAssembler
	store     Store
	clock     func() time.Time
	log       logger.Logger
}

// NewService creates a Service. The clock supplies the default end date
// for requests that omit one and the snapshot fetch time; pass nil for
// the wall clock.
func NewService(ref ReferenceData, executor *FetchExecutor, store Store, clock func() time.Time, log logger.Logger) *Service {
	if clock == nil {
		clock = time.Now
	}
	resolver := NewStationResolver(ref)
	return &Service{
		ref:       ref,
		resolver:  resolver,
		batcher:   NewRequestBatcher(resolver, clock),
		executor:  executor,
		assembler: NewResultAssembler(ref),
		store:     store,
		clock:     clock,
		log:       log,
	}
}

// Fetch retrieves observations for every country in order and returns
// the assembled table plus the per-request errors collected along the
// way. Per-request failures never abort the run; an unknown country or
// a transport failure does.
func (s *Service) Fetch(ctx context.Context, countries []string, start, end time.Time, metrics []Metric) (ResultTable, []FetchError, error) {
	if err := s.ref.Ensure(ctx); err != nil {
		return ResultTable{}, nil, err
	}

	var (
		records []Record
		errs    []FetchError
	)

	for _, country := range countries {
		s.log.Infof("requesting data for %s", country)

		batches, err := s.batcher.BuildBatches(country, start, end, metrics)
		if err != nil {
			return ResultTable{}, nil, err
		}

		countryRecords, countryErrs, err := s.executor.Execute(ctx, batches)
		if err != nil {
			return ResultTable{}, nil, err
		}

		if len(countryErrs) > 0 {
			s.log.Infof("the following errors were found during the operation:")
			for _, fe := range countryErrs {
				s.log.Infof("%v", fe)
			}
		}

		records = append(records, countryRecords...)
		errs = append(errs, countryErrs...)
	}

	return s.assembler.Assemble(records, metrics), errs, nil
}

// FetchAndStore runs Fetch over the trailing lookback window and saves
// the result as a snapshot. Used by the scheduler.
func (s *Service) FetchAndStore(ctx context.Context, countries []string, lookback time.Duration, metrics []Metric) error {
	now := s.clock().UTC()
	start := now.Add(-lookback)

	table, errs, err := s.Fetch(ctx, countries, start, now, metrics)
	if err != nil {
		return err
	}

	if combined := CombinedError(errs); combined != nil {
		s.log.Warnf("fetch completed with %d failed requests: %v", len(errs), combined)
	}

	s.store.SaveSnapshot(countries, Snapshot{
		Countries: countries,
		FetchedAt: now,
		Table:     table,
		Errors:    errs,
	})
	return nil
}

// Stations resolves the station ids for one country.
func (s *Service) Stations(country string) ([]string, error) {
	return s.resolver.StationsForCountry(country)
}

// GetLatest delegates to the underlying store.
func (s *Service) GetLatest(countries []string) (Snapshot, error) {
	return s.store.GetLatest(countries)
}

// GetRange delegates to the underlying store.
func (s *Service) GetRange(countries []string, from, to time.Time) ([]Snapshot, error) {
	return s.store.GetRange(countries, from, to)
}

// CombinedError folds per-request failures into a single error value
// for report sinks, or nil when the run was clean.
func CombinedError(errs []FetchError) error {
	if len(errs) == 0 {
		return nil
	}
	var combined *multierror.Error
	for _, fe := range errs {
		combined = multierror.Append(combined, fe)
	}
	return combined.ErrorOrNil()
}
