package metrics

import (
	"errors"
	"testing"
	"time"
)

func TestRecorderTracksBackendCallsAndErrors(t *testing.T) {
	rec := NewRecorder()
	rec.RecordBackendCall("upcoming-matches", 10*time.Millisecond, nil)
	rec.RecordBackendCall("upcoming-matches", 15*time.Millisecond, errors.New("boom"))

	if got := rec.BackendCalls("upcoming-matches"); got != 2 {
		t.Fatalf("expected 2 calls, got %d", got)
	}
	if got := rec.BackendErrors("upcoming-matches"); got != 1 {
		t.Fatalf("expected 1 error, got %d", got)
	}

	snap := rec.Snapshot("upcoming-matches")
	if snap.Calls != 2 || snap.Errors != 1 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	if snap.LastCallLatency != 15*time.Millisecond {
		t.Fatalf("expected last latency 15ms, got %s", snap.LastCallLatency)
	}
}

func TestRecorderTracksCacheFallbacks(t *testing.T) {
	rec := NewRecorder()
	rec.RecordCacheFallback("upcoming_matches")
	rec.RecordCacheFallback("upcoming_matches")
	rec.RecordCacheFallback("user_predictions")

	if got := rec.CacheFallbacks("upcoming_matches"); got != 2 {
		t.Fatalf("expected 2 fallbacks, got %d", got)
	}
	if got := rec.CacheFallbacks("user_predictions"); got != 1 {
		t.Fatalf("expected 1 fallback, got %d", got)
	}
}

func TestRecorderTracksLocalSaves(t *testing.T) {
	rec := NewRecorder()
	rec.RecordLocalSave()
	rec.RecordLocalSave()

	if got := rec.LocalSaves(); got != 2 {
		t.Fatalf("expected 2 local saves, got %d", got)
	}
}

func TestRecorderUnknownKeyIsZero(t *testing.T) {
	rec := NewRecorder()
	if snap := rec.Snapshot("never-seen"); snap != (Snapshot{}) {
		t.Fatalf("expected zero snapshot, got %+v", snap)
	}
}

func TestNilRecorderIsSafe(t *testing.T) {
	var rec *Recorder
	rec.RecordBackendCall("op", time.Millisecond, nil)
	rec.RecordCacheFallback("collection")
	rec.RecordLocalSave()
	rec.RecordSyncCycle(time.Millisecond, 1, 2, nil)
	rec.RecordHTTPRequest("GET", "/health", 200, time.Millisecond)

	if snap := rec.Snapshot("op"); snap != (Snapshot{}) {
		t.Fatalf("expected zero snapshot, got %+v", snap)
	}
}
