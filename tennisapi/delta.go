package tennisapi

import (
	"encoding/json"
	"fmt"

	"tennis-score-service/scoreboard"
)

// Push channel event names. The server historically emitted score fragments
// and partial match objects under separate events; both normalize into the
// same delta shape here.
const (
	EventScoreUpdated = "scoreUpdated"
	EventMatchUpdated = "matchUpdated"
	EventJoinMatch    = "joinMatch"
)

// PushMessage is the framing of one push-channel frame.
type PushMessage struct {
	Event   string          `json:"event"`
	MatchID string          `json:"matchId,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// wirePair accepts both the canonical playerA/playerB keys and the legacy
// p1/p2 aliases still seen on older payloads.
type wirePair struct {
	PlayerA *int `json:"playerA"`
	PlayerB *int `json:"playerB"`
	P1      *int `json:"p1"`
	P2      *int `json:"p2"`
}

func (p *wirePair) pair() scoreboard.Pair {
	var out scoreboard.Pair
	switch {
	case p.PlayerA != nil || p.PlayerB != nil:
		if p.PlayerA != nil {
			out.PlayerA = *p.PlayerA
		}
		if p.PlayerB != nil {
			out.PlayerB = *p.PlayerB
		}
	default:
		if p.P1 != nil {
			out.PlayerA = *p.P1
		}
		if p.P2 != nil {
			out.PlayerB = *p.P2
		}
	}
	return out
}

// wireStatPair is wirePair for float-valued statistics.
type wireStatPair struct {
	PlayerA *float64 `json:"playerA"`
	PlayerB *float64 `json:"playerB"`
	P1      *float64 `json:"p1"`
	P2      *float64 `json:"p2"`
}

func (p *wireStatPair) pair() scoreboard.StatPair {
	var out scoreboard.StatPair
	switch {
	case p.PlayerA != nil || p.PlayerB != nil:
		if p.PlayerA != nil {
			out.PlayerA = *p.PlayerA
		}
		if p.PlayerB != nil {
			out.PlayerB = *p.PlayerB
		}
	default:
		if p.P1 != nil {
			out.PlayerA = *p.P1
		}
		if p.P2 != nil {
			out.PlayerB = *p.P2
		}
	}
	return out
}

// wireSet accepts a set either as {games:{...}} or as a bare pair.
type wireSet struct {
	Games *wirePair `json:"games"`
	wirePair
}

func (s *wireSet) set() scoreboard.SetGames {
	if s.Games != nil {
		return scoreboard.SetGames{Games: s.Games.pair()}
	}
	return scoreboard.SetGames{Games: s.wirePair.pair()}
}

// wireScore is the score fragment of a delta. Advantage and server are kept
// raw so an explicit null (clearing the value) can be told apart from an
// absent key.
type wireScore struct {
	Points    *wirePair       `json:"points"`
	Advantage json.RawMessage `json:"advantage"`
	Sets      []wireSet       `json:"sets"`
	SetScore  *wirePair       `json:"setScore"`
	Server    json.RawMessage `json:"server"`
}

// wireDelta is the top-level delta shape pushed by the server.
type wireDelta struct {
	Status     *scoreboard.Status      `json:"status"`
	Winner     json.RawMessage         `json:"winner"`
	Score      *wireScore              `json:"score"`
	Statistics map[string]wireStatPair `json:"statistics"`

	// Legacy revisions pushed score fragments at the top level instead of
	// nested under "score".
	Points   *wirePair       `json:"points"`
	Sets     []wireSet       `json:"sets"`
	SetScore *wirePair       `json:"setScore"`
	Server   json.RawMessage `json:"server"`
}

// ParseDelta normalizes one push payload into the canonical delta shape.
// Unparseable payloads yield an error; the caller logs and drops them.
func ParseDelta(data []byte) (scoreboard.Delta, error) {
	var w wireDelta
	if err := json.Unmarshal(data, &w); err != nil {
		return scoreboard.Delta{}, fmt.Errorf("malformed delta: %w", err)
	}

	var d scoreboard.Delta
	d.Status = w.Status

	if winner := decodeWinner(w.Winner); winner != "" {
		d.Winner = &winner
	}

	score := w.Score
	if score == nil && (w.Points != nil || w.Sets != nil || w.SetScore != nil || len(w.Server) > 0) {
		score = &wireScore{
			Points:   w.Points,
			Sets:     w.Sets,
			SetScore: w.SetScore,
			Server:   w.Server,
		}
	}
	if score != nil {
		sd := &scoreboard.ScoreDelta{}
		if score.Points != nil {
			p := score.Points.pair()
			sd.Points = &p
		}
		sd.Advantage = decodeSide(score.Advantage)
		if score.Sets != nil {
			sets := make([]scoreboard.SetGames, len(score.Sets))
			for i := range score.Sets {
				sets[i] = score.Sets[i].set()
			}
			sd.Sets = sets
		}
		if score.SetScore != nil {
			p := score.SetScore.pair()
			sd.SetScore = &p
		}
		sd.Server = decodeSide(score.Server)
		d.Score = sd
	}

	if w.Statistics != nil {
		stats := make(scoreboard.Statistics, len(w.Statistics))
		for name, pair := range w.Statistics {
			stats[name] = pair.pair()
		}
		d.Statistics = stats
	}

	return d, nil
}

// decodeSide decodes a side field that may be absent, an explicit null
// (cleared) or a side tag. Absent yields nil; null yields a pointer to the
// empty side so the merge replaces the old value.
func decodeSide(raw json.RawMessage) *scoreboard.Side {
	if len(raw) == 0 {
		return nil
	}
	if string(raw) == "null" {
		cleared := scoreboard.Side("")
		return &cleared
	}
	var s scoreboard.Side
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	return &s
}

// decodeWinner collapses the three observed winner encodings (side tag, raw
// player id, embedded id-bearing object) into one string: a side tag or a
// player id. Unset or unrecognized shapes yield the empty string.
func decodeWinner(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}

	var tag string
	if err := json.Unmarshal(raw, &tag); err == nil {
		return tag
	}

	var embedded struct {
		ID    string `json:"_id"`
		AltID string `json:"id"`
	}
	if err := json.Unmarshal(raw, &embedded); err == nil {
		if embedded.ID != "" {
			return embedded.ID
		}
		return embedded.AltID
	}
	return ""
}
