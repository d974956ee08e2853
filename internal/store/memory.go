package store

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/taskgeo/ghcnd-fetcher/internal/ghcnd"
)

var (
	// ErrNotFound is returned when no snapshot is available for a given
	// country set.
	ErrNotFound = errors.New("no observation data for countries")
)

// snapshotHistory holds a time-ordered list of snapshots for one
// country set.
type snapshotHistory struct {
	snapshots []ghcnd.Snapshot
}

// MemoryStore is a concurrency-safe in-memory snapshot store.
type MemoryStore struct {
	mu sync.RWMutex

	// key: canonical country-set key, value: history
	data map[string]*snapshotHistory

	// retention configuration
	maxHistory int           // max number of snapshots per country set
	maxAge     time.Duration // optional max age for snapshots
}

// NewMemoryStore creates a new MemoryStore with optional limits.
// If maxHistory is <= 0, it is treated as unlimited.
func NewMemoryStore(maxHistory int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		data:       make(map[string]*snapshotHistory),
		maxHistory: maxHistory,
		maxAge:     maxAge,
	}
}

// Key returns the canonical store key for a country list.
func Key(countries []string) string {
	return strings.Join(countries, ",")
}

// SaveSnapshot appends a snapshot for a country set and enforces
// retention.
func (s *MemoryStore) SaveSnapshot(countries []string, snap ghcnd.Snapshot) {
	key := Key(countries)

	s.mu.Lock()
	defer s.mu.Unlock()

	history, ok := s.data[key]
	if !ok {
		history = &snapshotHistory{}
		s.data[key] = history
	}

	history.snapshots = append(history.snapshots, snap)

	// Enforce retention by count.
	if s.maxHistory > 0 && len(history.snapshots) > s.maxHistory {
		over := len(history.snapshots) - s.maxHistory
		history.snapshots = history.snapshots[over:]
	}

	// Enforce retention by age.
	if s.maxAge > 0 {
		cutoff := time.Now().Add(-s.maxAge)
		i := 0
		for ; i < len(history.snapshots); i++ {
			if !history.snapshots[i].FetchedAt.Before(cutoff) {
				break
			}
		}
		if i > 0 {
			history.snapshots = history.snapshots[i:]
		}
	}
}

// GetLatest returns the most recent snapshot for a country set.
func (s *MemoryStore) GetLatest(countries []string) (ghcnd.Snapshot, error) {
	key := Key(countries)

	s.mu.RLock()
	defer s.mu.RUnlock()

	history, ok := s.data[key]
	if !ok || len(history.snapshots) == 0 {
		return ghcnd.Snapshot{}, ErrNotFound
	}
	return history.snapshots[len(history.snapshots)-1], nil
}

// GetRange returns all snapshots for a country set fetched between from
// and to (inclusive).
func (s *MemoryStore) GetRange(countries []string, from, to time.Time) ([]ghcnd.Snapshot, error) {
	key := Key(countries)

	s.mu.RLock()
	defer s.mu.RUnlock()

	history, ok := s.data[key]
	if !ok || len(history.snapshots) == 0 {
		return nil, ErrNotFound
	}

	var result []ghcnd.Snapshot
	for _, snap := range history.snapshots {
		if !snap.FetchedAt.Before(from) && !snap.FetchedAt.After(to) {
			result = append(result, snap)
		}
	}

	if len(result) == 0 {
		return nil, ErrNotFound
	}

	return result, nil
}
