// Package metrics keeps run counters for the optional monitoring endpoints.
// Observability only: nothing in the pipeline reads these back.
package metrics

import (
	"sync"
	"time"
)

type Metrics struct {
	mu sync.RWMutex

	// Counters
	PagesFetched       int64
	EmptyPages         int64
	ArticlesCollected  int64
	DuplicatesFiltered int64
	Retries            int64
	RateLimitHits      int64
	SessionRotations   int64
	ReportsRendered    int64
	ReportsSent        int64

	// Status
	LastRunTime   time.Time
	LastErrorTime time.Time
	LastError     string
	IsHealthy     bool
}

var Global = &Metrics{IsHealthy: true}

func (m *Metrics) IncrementPagesFetched() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PagesFetched++
}

func (m *Metrics) IncrementEmptyPages() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EmptyPages++
}

func (m *Metrics) IncrementArticlesCollected() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ArticlesCollected++
}

func (m *Metrics) IncrementDuplicatesFiltered() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DuplicatesFiltered++
}

func (m *Metrics) IncrementRetries() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Retries++
}

func (m *Metrics) IncrementRateLimitHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RateLimitHits++
}

func (m *Metrics) IncrementSessionRotations() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SessionRotations++
}

func (m *Metrics) IncrementReportsRendered() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ReportsRendered++
}

func (m *Metrics) IncrementReportsSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ReportsSent++
}

func (m *Metrics) SetLastRun() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastRunTime = time.Now()
	m.IsHealthy = true
}

func (m *Metrics) SetError(err string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastError = err
	m.LastErrorTime = time.Now()
	m.IsHealthy = false
}

func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"pages_fetched":       m.PagesFetched,
		"empty_pages":         m.EmptyPages,
		"articles_collected":  m.ArticlesCollected,
		"duplicates_filtered": m.DuplicatesFiltered,
		"retries":             m.Retries,
		"rate_limit_hits":     m.RateLimitHits,
		"session_rotations":   m.SessionRotations,
		"reports_rendered":    m.ReportsRendered,
		"reports_sent":        m.ReportsSent,
		"last_run_time":       m.LastRunTime.Format(time.RFC3339),
		"last_error_time":     m.LastErrorTime.Format(time.RFC3339),
		"last_error":          m.LastError,
		"is_healthy":          m.IsHealthy,
	}
}
