package metrics

import (
	"sync"
	"time"
)

type operationStats struct {
	calls           int
	errors          int
	cacheFallbacks  int
	localSaves      int
	lastCallLatency time.Duration
}

// Recorder captures lightweight, in-memory metrics about backend calls and
// cache behavior. It is intentionally simple so it can be swapped for a real
// backend later; when OTel is configured the same events are exported.
type Recorder struct {
	mu    sync.Mutex
	stats map[string]*operationStats
	otel  *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats: make(map[string]*operationStats),
		otel:  otel,
	}
}

// RecordBackendCall increments counters for a backend call and stores the last
// observed latency.
func (r *Recorder) RecordBackendCall(operation string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	stats := r.ensureStats(operation)
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	if r.otel != nil {
		r.otel.recordBackendCall(operation, duration, err)
	}
}

// RecordCacheFallback tracks that a read degraded to the local cache for the
// given collection.
func (r *Recorder) RecordCacheFallback(collection string) {
	if r == nil {
		return
	}

	stats := r.ensureStats(collection)
	stats.cacheFallbacks++
	if r.otel != nil {
		r.otel.recordCacheFallback(collection)
	}
}

// RecordLocalSave tracks that a prediction write degraded to durable
// local-only storage.
func (r *Recorder) RecordLocalSave() {
	if r == nil {
		return
	}

	stats := r.ensureStats("predictions")
	stats.localSaves++
	if r.otel != nil {
		r.otel.recordLocalSave()
	}
}

// RecordSyncCycle tracks a reconciliation pass: how long it took, how many
// pending entries it promoted, and whether it failed outright.
func (r *Recorder) RecordSyncCycle(duration time.Duration, synced, total int, err error) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordSyncCycle(duration, synced, total, err)
}

// RecordHTTPRequest tracks basic HTTP metrics for the local API.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// BackendCalls returns the total attempts recorded for an operation.
func (r *Recorder) BackendCalls(operation string) int {
	return r.Snapshot(operation).Calls
}

// BackendErrors returns the total failed attempts recorded for an operation.
func (r *Recorder) BackendErrors(operation string) int {
	return r.Snapshot(operation).Errors
}

// CacheFallbacks returns the fallback count for a collection.
func (r *Recorder) CacheFallbacks(collection string) int {
	return r.Snapshot(collection).CacheFallbacks
}

// LocalSaves returns how many writes degraded to local-only storage.
func (r *Recorder) LocalSaves() int {
	return r.Snapshot("predictions").LocalSaves
}

// Snapshot is a copy of the current stats for one operation or collection.
type Snapshot struct {
	Calls           int
	Errors          int
	CacheFallbacks  int
	LocalSaves      int
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(key string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	stats := r.snapshot(key)
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		CacheFallbacks:  stats.cacheFallbacks,
		LocalSaves:      stats.localSaves,
		LastCallLatency: stats.lastCallLatency,
	}
}

func (r *Recorder) ensureStats(key string) *operationStats {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[key]
	if !ok {
		stats = &operationStats{}
		r.stats[key] = stats
	}
	return stats
}

func (r *Recorder) snapshot(key string) operationStats {
	r.mu.Lock()
	defer r.mu.Unlock()

	if stats, ok := r.stats[key]; ok && stats != nil {
		return *stats
	}
	return operationStats{}
}
