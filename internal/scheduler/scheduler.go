package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/taskgeo/ghcnd-fetcher/internal/ghcnd"
	"github.com/taskgeo/ghcnd-fetcher/internal/logger"
)

// Scheduler periodically refreshes observation data for the configured
// countries.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   *ghcnd.Service
	countries []string
	lookback  time.Duration
	interval  time.Duration
	log       logger.Logger
}

// New creates a new Scheduler.
func New(countries []string, interval, lookback time.Duration, service *ghcnd.Service, log logger.Logger) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		service:   service,
		countries: countries,
		lookback:  lookback,
		interval:  interval,
		log:       log,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if len(s.countries) == 0 {
		s.log.Infof("scheduler: no countries configured; nothing to schedule")
		return nil
	}

	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 360
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(func() {
		s.log.Infof("scheduler: running observation fetch job")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		if err := s.service.FetchAndStore(ctx, s.countries, s.lookback, nil); err != nil {
			s.log.Errorf("scheduler: fetch failed for %v: %v", s.countries, err)
			return
		}
		s.log.Infof("scheduler: completed observation fetch job")
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
