package predictions

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Origin tags where the stored form of a prediction currently lives.
// A prediction enters OriginLocalOnly when a submit cannot reach the backend
// and leaves it only when reconciliation pushes it through.
type Origin string

const (
	OriginServerConfirmed Origin = "server_confirmed"
	OriginLocalOnly       Origin = "local_only"
)

const localIDPrefix = "local-"

// ID identifies a prediction. Server-assigned ids are integers; predictions
// the backend has not accepted yet carry a synthesized string id drawn from a
// disjoint space so the two can never collide.
type ID struct {
	Server int
	Local  string
}

// NewLocalID synthesizes a placeholder id for a not-yet-accepted prediction.
func NewLocalID() ID {
	return ID{Local: localIDPrefix + uuid.NewString()}
}

// IsLocal reports whether the id is a synthesized placeholder.
func (id ID) IsLocal() bool {
	return id.Local != ""
}

// IsZero reports whether the id is unset.
func (id ID) IsZero() bool {
	return id.Server == 0 && id.Local == ""
}

func (id ID) String() string {
	if id.IsLocal() {
		return id.Local
	}
	return fmt.Sprintf("%d", id.Server)
}

// MarshalJSON emits the server integer or the placeholder string, matching
// the shape the backend and the cache exchange.
func (id ID) MarshalJSON() ([]byte, error) {
	if id.IsLocal() {
		return json.Marshal(id.Local)
	}
	return json.Marshal(id.Server)
}

// UnmarshalJSON accepts either an integer (server id) or a string placeholder.
func (id *ID) UnmarshalJSON(data []byte) error {
	var server int
	if err := json.Unmarshal(data, &server); err == nil {
		*id = ID{Server: server}
		return nil
	}
	var local string
	if err := json.Unmarshal(data, &local); err != nil {
		return fmt.Errorf("prediction id must be an integer or a string: %w", err)
	}
	if !strings.HasPrefix(local, localIDPrefix) {
		return fmt.Errorf("unrecognized prediction id %q", local)
	}
	*id = ID{Local: local}
	return nil
}

// Prediction is a user's forecast for one fixture. At most one prediction per
// fixture exists locally at any time; the collection is keyed by match id and
// writes always overwrite the prior entry.
type Prediction struct {
	ID           ID     `json:"id"`
	MatchID      int    `json:"match_id"`
	HomeScore    int    `json:"home_score"`
	AwayScore    int    `json:"away_score"`
	Comment      string `json:"comment"`
	UserID       int    `json:"user_id,omitempty"`
	PointsEarned *int   `json:"points_earned,omitempty"`
	CreatedAt    string `json:"created_at,omitempty"`
	UpdatedAt    string `json:"updated_at,omitempty"`
	Origin       Origin `json:"-"`
}

type predictionAlias Prediction

type predictionJSON struct {
	predictionAlias
	IsLocalOnly bool `json:"is_local_only"`
}

// MarshalJSON persists the origin as the is_local_only flag the cache layout
// and the UI contract use.
func (p Prediction) MarshalJSON() ([]byte, error) {
	return json.Marshal(predictionJSON{
		predictionAlias: predictionAlias(p),
		IsLocalOnly:     p.Origin == OriginLocalOnly,
	})
}

// UnmarshalJSON restores the origin from the is_local_only flag. Payloads
// without the flag (fresh server responses) decode as server-confirmed.
func (p *Prediction) UnmarshalJSON(data []byte) error {
	var decoded predictionJSON
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*p = Prediction(decoded.predictionAlias)
	if decoded.IsLocalOnly {
		p.Origin = OriginLocalOnly
	} else {
		p.Origin = OriginServerConfirmed
	}
	return nil
}

// Map holds the local prediction collection keyed by match id.
type Map map[int]Prediction

// LocalOnly returns the pending entries ordered by match id so reconciliation
// walks them deterministically.
func (m Map) LocalOnly() []Prediction {
	var pending []Prediction
	for _, p := range m {
		if p.Origin == OriginLocalOnly {
			pending = append(pending, p)
		}
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].MatchID < pending[j].MatchID })
	return pending
}

// Clone returns a shallow copy so callers can mutate without aliasing the
// original map.
func (m Map) Clone() Map {
	out := make(Map, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
