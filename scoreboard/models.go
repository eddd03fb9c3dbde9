package scoreboard

// Side identifies one of the two players in a match.
type Side string

const (
	SidePlayerA Side = "playerA"
	SidePlayerB Side = "playerB"
)

// Status represents the lifecycle state of a match.
type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusLive      Status = "live"
	StatusCompleted Status = "completed"

	// StatusFinished and StatusScheduled are synonyms seen on the wire
	// for completed and upcoming respectively.
	StatusFinished  Status = "finished"
	StatusScheduled Status = "scheduled"
)

// Player represents a ranked tennis player.
type Player struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	CountryCode int    `json:"country_code"` // numeric dialing code
	Ranking     int    `json:"ranking"`
	Wins        int    `json:"wins"`
	Losses      int    `json:"losses"`
	GrandSlams  int    `json:"grandSlams"`
	Age         int    `json:"age"`
	Height      int    `json:"height"` // in cm
	Weight      int    `json:"weight"` // in kg
	Hand        string `json:"hand"`
	Backhand    string `json:"backhand"`
}

// MatchInfo holds the static metadata of a match.
type MatchInfo struct {
	Tournament string `json:"tournament"`
	Round      string `json:"round"`
	Surface    string `json:"surface"`
	Court      string `json:"court"`
	Umpire     string `json:"umpire"`
}

// Pair holds one integer value per side.
type Pair struct {
	PlayerA int `json:"playerA"`
	PlayerB int `json:"playerB"`
}

// StatPair holds one statistic value per side.
type StatPair struct {
	PlayerA float64 `json:"playerA"`
	PlayerB float64 `json:"playerB"`
}

// Statistics maps a statistic name (aces, doubleFaults, ...) to its values.
type Statistics map[string]StatPair

// SetGames holds the games won by each side in one set.
type SetGames struct {
	Games Pair `json:"games"`
}

// Score represents the full scoring state of a match.
type Score struct {
	Points    Pair       `json:"points"`
	Advantage Side       `json:"advantage,omitempty"` // empty when no advantage
	Sets      []SetGames `json:"sets"`
	SetScore  Pair       `json:"setScore"` // sets won per side
	Server    Side       `json:"server,omitempty"`
}

// Match represents one tennis match as held by the client.
//
// Winner is the canonical encoding produced at the channel boundary: either
// a side tag ("playerA"/"playerB") or a raw player id. Empty means unset.
type Match struct {
	MatchID    string     `json:"matchId"`
	PlayerA    *Player    `json:"playerA"`
	PlayerB    *Player    `json:"playerB"`
	Status     Status     `json:"status"`
	Info       MatchInfo  `json:"matchInfo"`
	Score      Score      `json:"score"`
	Statistics Statistics `json:"statistics,omitempty"`
	Winner     string     `json:"winner,omitempty"`
}

// Delta is a partial update to a match. Nil fields leave the corresponding
// match field untouched; non-nil fields replace it wholesale, except Score
// which is merged one level deeper (see ScoreDelta).
type Delta struct {
	Status     *Status
	Winner     *string
	Score      *ScoreDelta
	Statistics Statistics // nil means absent; non-nil replaces wholesale
}

// ScoreDelta is a partial update to a score. Each non-nil field replaces the
// corresponding score field wholesale; nil fields are kept. Advantage and
// Server use a pointer to the empty Side to distinguish "cleared" (explicit
// null on the wire) from "absent".
type ScoreDelta struct {
	Points    *Pair
	Advantage *Side
	Sets      []SetGames // nil means absent; non-nil (even empty) replaces
	SetScore  *Pair
	Server    *Side
}
