package tennisapi

import (
	"testing"

	"tennis-score-service/scoreboard"
)

func TestParseDeltaScoreFragment(t *testing.T) {
	payload := []byte(`{"score":{"points":{"playerA":2,"playerB":3}}}`)

	d, err := ParseDelta(payload)
	if err != nil {
		t.Fatalf("ParseDelta failed: %v", err)
	}
	if d.Score == nil || d.Score.Points == nil {
		t.Fatal("Expected points in delta")
	}
	if d.Score.Points.PlayerA != 2 || d.Score.Points.PlayerB != 3 {
		t.Errorf("Expected points 2-3, got %+v", d.Score.Points)
	}
	if d.Score.Sets != nil {
		t.Errorf("Expected sets absent, got %+v", d.Score.Sets)
	}
	if d.Status != nil || d.Winner != nil || d.Statistics != nil {
		t.Errorf("Expected only score present, got %+v", d)
	}
}

func TestParseDeltaLegacyAliases(t *testing.T) {
	payload := []byte(`{"points":{"p1":1,"p2":0},"sets":[{"p1":6,"p2":4}]}`)

	d, err := ParseDelta(payload)
	if err != nil {
		t.Fatalf("ParseDelta failed: %v", err)
	}
	if d.Score == nil || d.Score.Points == nil {
		t.Fatal("Expected top-level score fragment to normalize")
	}
	if d.Score.Points.PlayerA != 1 || d.Score.Points.PlayerB != 0 {
		t.Errorf("Expected p1/p2 aliases mapped, got %+v", d.Score.Points)
	}
	if len(d.Score.Sets) != 1 || d.Score.Sets[0].Games.PlayerA != 6 {
		t.Errorf("Expected legacy set pair mapped, got %+v", d.Score.Sets)
	}
}

func TestParseDeltaNestedSetGames(t *testing.T) {
	payload := []byte(`{"score":{"sets":[{"games":{"playerA":6,"playerB":4}},{"games":{"playerA":3,"playerB":5}}]}}`)

	d, err := ParseDelta(payload)
	if err != nil {
		t.Fatalf("ParseDelta failed: %v", err)
	}
	if len(d.Score.Sets) != 2 {
		t.Fatalf("Expected 2 sets, got %d", len(d.Score.Sets))
	}
	if d.Score.Sets[1].Games.PlayerB != 5 {
		t.Errorf("Expected second set 3-5, got %+v", d.Score.Sets[1])
	}
}

func TestParseDeltaStatusAndWinnerTag(t *testing.T) {
	payload := []byte(`{"status":"completed","winner":"playerA"}`)

	d, err := ParseDelta(payload)
	if err != nil {
		t.Fatalf("ParseDelta failed: %v", err)
	}
	if d.Status == nil || *d.Status != scoreboard.StatusCompleted {
		t.Errorf("Expected completed status, got %+v", d.Status)
	}
	if d.Winner == nil || *d.Winner != "playerA" {
		t.Errorf("Expected winner playerA, got %+v", d.Winner)
	}
}

func TestParseDeltaWinnerEncodings(t *testing.T) {
	cases := []struct {
		name    string
		payload string
		want    string
	}{
		{"raw id", `{"winner":"66f0a1"}`, "66f0a1"},
		{"embedded object", `{"winner":{"_id":"66f0a1","name":"Player A"}}`, "66f0a1"},
		{"embedded alt id", `{"winner":{"id":"66f0a1"}}`, "66f0a1"},
		{"null", `{"winner":null}`, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d, err := ParseDelta([]byte(tc.payload))
			if err != nil {
				t.Fatalf("ParseDelta failed: %v", err)
			}
			if tc.want == "" {
				if d.Winner != nil {
					t.Errorf("Expected winner absent, got %q", *d.Winner)
				}
				return
			}
			if d.Winner == nil || *d.Winner != tc.want {
				t.Errorf("Expected winner %q, got %+v", tc.want, d.Winner)
			}
		})
	}
}

func TestParseDeltaAdvantageNullClears(t *testing.T) {
	d, err := ParseDelta([]byte(`{"score":{"advantage":null}}`))
	if err != nil {
		t.Fatalf("ParseDelta failed: %v", err)
	}
	if d.Score.Advantage == nil {
		t.Fatal("Expected explicit null to be present as cleared")
	}
	if *d.Score.Advantage != "" {
		t.Errorf("Expected cleared advantage, got %q", *d.Score.Advantage)
	}

	d, err = ParseDelta([]byte(`{"score":{"advantage":"playerB"}}`))
	if err != nil {
		t.Fatalf("ParseDelta failed: %v", err)
	}
	if d.Score.Advantage == nil || *d.Score.Advantage != scoreboard.SidePlayerB {
		t.Errorf("Expected advantage playerB, got %+v", d.Score.Advantage)
	}

	d, err = ParseDelta([]byte(`{"score":{"points":{"playerA":1}}}`))
	if err != nil {
		t.Fatalf("ParseDelta failed: %v", err)
	}
	if d.Score.Advantage != nil {
		t.Errorf("Expected absent advantage to stay nil, got %+v", d.Score.Advantage)
	}
}

func TestParseDeltaStatistics(t *testing.T) {
	payload := []byte(`{"statistics":{"aces":{"playerA":7,"playerB":4},"firstServePercentage":{"p1":68,"p2":71}}}`)

	d, err := ParseDelta(payload)
	if err != nil {
		t.Fatalf("ParseDelta failed: %v", err)
	}
	if len(d.Statistics) != 2 {
		t.Fatalf("Expected 2 statistics, got %d", len(d.Statistics))
	}
	if d.Statistics["aces"].PlayerA != 7 {
		t.Errorf("Expected 7 aces, got %v", d.Statistics["aces"].PlayerA)
	}
	if d.Statistics["firstServePercentage"].PlayerB != 71 {
		t.Errorf("Expected legacy stat aliases mapped, got %+v", d.Statistics["firstServePercentage"])
	}
}

func TestParseDeltaMalformed(t *testing.T) {
	if _, err := ParseDelta([]byte(`{not json`)); err == nil {
		t.Error("Expected error for malformed payload")
	}
	if _, err := ParseDelta([]byte(`"just a string"`)); err == nil {
		t.Error("Expected error for non-object payload")
	}
}

func TestParseDeltaRoundTripThroughMerge(t *testing.T) {
	m := scoreboard.Match{
		MatchID: "m1",
		PlayerA: &scoreboard.Player{ID: "pA"},
		PlayerB: &scoreboard.Player{ID: "pB"},
		Status:  scoreboard.StatusLive,
		Score: scoreboard.Score{
			Points: scoreboard.Pair{PlayerA: 3, PlayerB: 3},
			Sets:   []scoreboard.SetGames{{Games: scoreboard.Pair{PlayerA: 6, PlayerB: 4}}},
		},
	}
	vm := scoreboard.NewMatchViewModel(m)

	d, err := ParseDelta([]byte(`{"score":{"points":{"playerA":0,"playerB":0},"advantage":null,"sets":[{"games":{"playerA":6,"playerB":4}},{"games":{"playerA":1,"playerB":0}}]}}`))
	if err != nil {
		t.Fatalf("ParseDelta failed: %v", err)
	}

	got := vm.Merge(d)
	if len(got.Score.Sets) != 2 {
		t.Errorf("Expected 2 sets after merge, got %d", len(got.Score.Sets))
	}
	if got.Score.Points.PlayerA != 0 || got.Score.Points.PlayerB != 0 {
		t.Errorf("Expected points reset, got %+v", got.Score.Points)
	}
	if got.Status != scoreboard.StatusLive {
		t.Errorf("Expected status untouched, got %q", got.Status)
	}
}
