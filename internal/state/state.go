// Package state provides thread-safe almanac state for the application:
// the latest computed almanac, compute metadata, and a small per-date
// cache so revisiting a day in the UI does not recompute it.
package state

import (
	"sync"
	"time"

	kosmorrolib "github.com/Kosmorro/lib"
)

// Almanac bundles everything the library computes for one day at one
// position: ephemerides for every object, the Moon phase and the events.
type Almanac struct {
	Date     time.Time                      `json:"date"`
	Position kosmorrolib.Position           `json:"position"`
	Timezone float64                        `json:"timezone"`
	Objects  []kosmorrolib.AsterEphemerides `json:"ephemerides"`
	Moon     kosmorrolib.MoonPhase          `json:"moon_phase"`
	Events   []kosmorrolib.Event            `json:"events"`
}

// DateKey returns the cache key of the almanac's day.
func (a Almanac) DateKey() string {
	return a.Date.Format("2006-01-02")
}

// Snapshot is an immutable view of the current state.
type Snapshot struct {
	Current         Almanac
	HasData         bool
	LastComputed    time.Time
	LastError       error
	ComputeDuration time.Duration
	Computing       bool
}

// Config holds configuration for the state manager.
type Config struct {
	// MaxCached bounds the per-date almanac cache.
	MaxCached int
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		MaxCached: 30, // A month of browsed days
	}
}

// Manager handles shared application state with thread-safe access.
type Manager struct {
	mu sync.RWMutex

	current    Almanac
	hasData    bool
	computing  bool
	lastRun    time.Time
	lastError  error
	runLatency time.Duration

	cache     map[string]Almanac
	cacheKeys []string // insertion order, oldest first
	maxCached int
}

// NewManager creates a new state manager.
func NewManager(cfg Config) *Manager {
	maxCached := cfg.MaxCached
	if maxCached <= 0 {
		maxCached = 30
	}
	return &Manager{
		cache:     make(map[string]Almanac, maxCached),
		maxCached: maxCached,
	}
}

// SetComputing flags a computation in flight, so the UI can show a
// spinner between request and result.
func (m *Manager) SetComputing(v bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.computing = v
}

// Update atomically records a computation result. On success the
// almanac becomes current and enters the cache; on error the previous
// almanac stays current and only the error is recorded.
func (m *Manager) Update(a Almanac, took time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastRun = time.Now()
	m.lastError = err
	m.runLatency = took
	m.computing = false

	if err != nil {
		return
	}

	m.current = a
	m.hasData = true
	m.store(a)
}

// store inserts into the cache, evicting the oldest entry when full.
// Caller holds the lock.
func (m *Manager) store(a Almanac) {
	key := a.DateKey()
	if _, ok := m.cache[key]; !ok {
		m.cacheKeys = append(m.cacheKeys, key)
		if len(m.cacheKeys) > m.maxCached {
			delete(m.cache, m.cacheKeys[0])
			m.cacheKeys = m.cacheKeys[1:]
		}
	}
	m.cache[key] = a
}

// Cached returns the cached almanac for a day, if present.
func (m *Manager) Cached(date time.Time) (Almanac, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.cache[date.Format("2006-01-02")]
	return a, ok
}

// Promote makes a cached almanac the current one. It reports whether
// the day was cached.
func (m *Manager) Promote(date time.Time) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.cache[date.Format("2006-01-02")]
	if !ok {
		return false
	}
	m.current = a
	m.hasData = true
	m.lastError = nil
	return true
}

// Snapshot returns a consistent snapshot of current state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return Snapshot{
		Current:         m.current,
		HasData:         m.hasData,
		LastComputed:    m.lastRun,
		LastError:       m.lastError,
		ComputeDuration: m.runLatency,
		Computing:       m.computing,
	}
}

// HasData reports whether at least one computation succeeded.
func (m *Manager) HasData() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.hasData
}
