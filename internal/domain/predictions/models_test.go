package predictions

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestNewLocalIDIsDisjointFromServerIDs(t *testing.T) {
	id := NewLocalID()
	if !id.IsLocal() {
		t.Fatal("expected local id")
	}
	if !strings.HasPrefix(id.Local, "local-") {
		t.Fatalf("unexpected prefix: %q", id.Local)
	}
	if id.Server != 0 {
		t.Fatalf("expected no server component, got %d", id.Server)
	}
	if NewLocalID() == id {
		t.Fatal("expected unique ids")
	}
}

func TestIDJSONRoundTrip(t *testing.T) {
	server := ID{Server: 42}
	out, err := json.Marshal(server)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != "42" {
		t.Fatalf("expected bare integer, got %s", out)
	}

	var decoded ID
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded != server {
		t.Fatalf("round trip mismatch: %+v", decoded)
	}

	local := NewLocalID()
	out, err = json.Marshal(local)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded != local {
		t.Fatalf("round trip mismatch: %+v vs %+v", decoded, local)
	}
}

func TestIDUnmarshalRejectsUnknownStrings(t *testing.T) {
	var id ID
	if err := json.Unmarshal([]byte(`"remote-123"`), &id); err == nil {
		t.Fatal("expected rejection of non-local string id")
	}
	if err := json.Unmarshal([]byte(`true`), &id); err == nil {
		t.Fatal("expected rejection of non-id value")
	}
}

func TestIDString(t *testing.T) {
	if got := (ID{Server: 7}).String(); got != "7" {
		t.Fatalf("unexpected string: %q", got)
	}
	local := ID{Local: "local-abc"}
	if got := local.String(); got != "local-abc" {
		t.Fatalf("unexpected string: %q", got)
	}
	if !(ID{}).IsZero() || (ID{Server: 1}).IsZero() {
		t.Fatal("unexpected zero check")
	}
}

func TestPredictionMarshalEmitsLocalFlag(t *testing.T) {
	p := Prediction{
		ID: ID{Local: "local-abc"}, MatchID: 3, HomeScore: 2, AwayScore: 1,
		Comment: "test", Origin: OriginLocalOnly,
	}
	out, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(out), `"is_local_only":true`) {
		t.Fatalf("expected local flag, got %s", out)
	}
	if !strings.Contains(string(out), `"id":"local-abc"`) {
		t.Fatalf("expected string id, got %s", out)
	}
}

func TestPredictionUnmarshalRestoresOrigin(t *testing.T) {
	var local Prediction
	if err := json.Unmarshal([]byte(`{"id":"local-x","match_id":1,"home_score":2,"away_score":1,"is_local_only":true}`), &local); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if local.Origin != OriginLocalOnly {
		t.Fatalf("expected local-only origin, got %s", local.Origin)
	}

	// A fresh server payload carries no flag and decodes as confirmed.
	var confirmed Prediction
	if err := json.Unmarshal([]byte(`{"id":10,"match_id":1,"home_score":2,"away_score":1}`), &confirmed); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if confirmed.Origin != OriginServerConfirmed {
		t.Fatalf("expected server-confirmed origin, got %s", confirmed.Origin)
	}
	if confirmed.ID.Server != 10 {
		t.Fatalf("unexpected id: %+v", confirmed.ID)
	}
}

func TestMapLocalOnlyOrdersByMatchID(t *testing.T) {
	m := Map{
		5: {ID: NewLocalID(), MatchID: 5, Origin: OriginLocalOnly},
		1: {ID: ID{Server: 10}, MatchID: 1, Origin: OriginServerConfirmed},
		3: {ID: NewLocalID(), MatchID: 3, Origin: OriginLocalOnly},
		2: {ID: NewLocalID(), MatchID: 2, Origin: OriginLocalOnly},
	}

	pending := m.LocalOnly()
	if len(pending) != 3 {
		t.Fatalf("expected 3 pending, got %d", len(pending))
	}
	for i, want := range []int{2, 3, 5} {
		if pending[i].MatchID != want {
			t.Fatalf("expected match %d at index %d, got %d", want, i, pending[i].MatchID)
		}
	}
}

func TestMapCloneDoesNotAlias(t *testing.T) {
	m := Map{1: {ID: ID{Server: 1}, MatchID: 1, HomeScore: 1}}
	clone := m.Clone()
	clone[1] = Prediction{ID: ID{Server: 1}, MatchID: 1, HomeScore: 9}
	clone[2] = Prediction{MatchID: 2}

	if m[1].HomeScore != 1 || len(m) != 1 {
		t.Fatalf("expected original untouched, got %+v", m)
	}
}

func TestMapJSONRoundTripKeysByMatchID(t *testing.T) {
	m := Map{
		1: {ID: ID{Server: 10}, MatchID: 1, HomeScore: 2, AwayScore: 1, Origin: OriginServerConfirmed},
		2: {ID: ID{Local: "local-y"}, MatchID: 2, HomeScore: 0, AwayScore: 0, Origin: OriginLocalOnly},
	}

	out, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded Map
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(decoded))
	}
	if decoded[2].Origin != OriginLocalOnly || decoded[1].Origin != OriginServerConfirmed {
		t.Fatalf("origins lost in storage round trip: %+v", decoded)
	}
}
