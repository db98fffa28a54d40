package observability

import "sync"

// Inmem keeps the last max events in a ring plus running totals. Enough
// for /healthz-style introspection without an external metrics backend.
type Inmem struct {
	mu     sync.Mutex
	last   []any
	max    int
	totals struct {
		cacheHits, cacheMiss int
		upstreamCalls        int
		upstreamErrors       int
	}
}

func NewInmem(max int) *Inmem {
	return &Inmem{max: max}
}

func (m *Inmem) push(v any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.last = append(m.last, v)
	if len(m.last) > m.max {
		m.last = m.last[1:]
	}
}

func (m *Inmem) ObserveLookup(source string, durMs float64) {
	m.push(struct {
		Kind   string
		Source string
		Dur    float64
	}{"lookup", source, durMs})
}

func (m *Inmem) ObserveUpstream(kind string, durMs float64, ok bool) {
	m.mu.Lock()
	m.totals.upstreamCalls++
	if !ok {
		m.totals.upstreamErrors++
	}
	m.mu.Unlock()
	m.push(struct {
		Kind string
		Dur  float64
		OK   bool
	}{"upstream_" + kind, durMs, ok})
}

func (m *Inmem) ObserveHTTP(method, route string, status int, durMs float64) {
	m.push(struct {
		Kind          string
		Method, Route string
		Status        int
		Dur           float64
	}{"http", method, route, status, durMs})
}

func (m *Inmem) IncCacheHit() {
	m.mu.Lock()
	m.totals.cacheHits++
	m.mu.Unlock()
}

func (m *Inmem) IncCacheMiss() {
	m.mu.Lock()
	m.totals.cacheMiss++
	m.mu.Unlock()
}

// CacheStats returns the hit/miss totals, used by tests and debug output.
func (m *Inmem) CacheStats() (hits, misses int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.totals.cacheHits, m.totals.cacheMiss
}

// UpstreamStats returns total and failed upstream call counts.
func (m *Inmem) UpstreamStats() (calls, errors int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.totals.upstreamCalls, m.totals.upstreamErrors
}
