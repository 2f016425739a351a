package fundamentals

import (
	"log"
	"sync"
	"time"

	"MorningBrief/internal/collector"
	"MorningBrief/internal/model"
)

// Manager is the time-boxed fundamentals cache: snapshots younger than the
// TTL are served from the persisted file, older ones are re-fetched with a
// fixed inter-call delay toward the provider. Refresh failures degrade to
// whatever is cached (possibly an empty snapshot), never to an error.
type Manager struct {
	mu        sync.Mutex
	snapshots map[string]model.FundamentalsSnapshot
	filePath  string
	fetcher   collector.Fetcher
	ttl       time.Duration
	delay     time.Duration

	now   func() time.Time
	sleep func(time.Duration)
}

// NewManager creates a Manager, loading any existing cache file.
func NewManager(filePath string, fetcher collector.Fetcher, ttl, delay time.Duration) (*Manager, error) {
	snapshots, err := loadCache(filePath)
	if err != nil {
		return nil, err
	}
	return &Manager{
		snapshots: snapshots,
		filePath:  filePath,
		fetcher:   fetcher,
		ttl:       ttl,
		delay:     delay,
		now:       time.Now,
		sleep:     time.Sleep,
	}, nil
}

// Get returns the ticker's snapshot, refreshing it when stale.
func (m *Manager) Get(ticker string) model.FundamentalsSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	if snap, ok := m.snapshots[ticker]; ok {
		age := m.now().Sub(time.Unix(snap.LastFetched, 0))
		if age < m.ttl {
			return snap
		}
	}

	m.sleep(m.delay) // fixed-delay rate limit toward the provider

	fresh, err := m.fetcher.FetchFundamentals(ticker)
	if err != nil {
		log.Printf("[WARN] fundamentals refresh failed for %s, using cached/empty: %v", ticker, err)
		return m.snapshots[ticker] // zero snapshot when never fetched
	}

	fresh.LastFetched = m.now().Unix()
	m.snapshots[ticker] = fresh
	if err := m.save(); err != nil {
		log.Printf("[ERROR] failed to save fundamentals cache: %v", err)
	}
	return fresh
}

func (m *Manager) save() error {
	return saveCache(m.filePath, m.snapshots)
}
