package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/taskgeo/ghcnd-fetcher/internal/logger"
)

func TestStartWithoutCountries(t *testing.T) {
	log := logger.New("error", "production")
	s := New(nil, time.Hour, 24*time.Hour, nil, log)

	// Nothing to schedule is not an error.
	assert.NoError(t, s.Start())
	s.Stop()
}
