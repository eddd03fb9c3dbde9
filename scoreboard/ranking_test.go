package scoreboard

import "testing"

func rankedPlayers() []Player {
	return []Player{
		{ID: "p1", Name: "Alcaraz", Ranking: 1, Wins: 57, Losses: 9, GrandSlams: 4, Age: 22},
		{ID: "p2", Name: "Sinner", Ranking: 2, Wins: 60, Losses: 8, GrandSlams: 3, Age: 24},
		{ID: "p3", Name: "Zverev", Ranking: 3, Wins: 50, Losses: 20, GrandSlams: 0, Age: 28},
		{ID: "p4", Name: "Djokovic", Ranking: 4, Wins: 50, Losses: 12, GrandSlams: 24, Age: 38},
		{ID: "p5", Name: "Fritz", Ranking: 5, Wins: 45, Losses: 18, GrandSlams: 0, Age: 27},
	}
}

func TestSortDefaultIsRankingAscending(t *testing.T) {
	table := NewRankingTable(rankedPlayers(), 10)

	sorted := table.Sorted()
	for i, want := range []string{"p1", "p2", "p3", "p4", "p5"} {
		if sorted[i].ID != want {
			t.Errorf("Expected %s at position %d, got %s", want, i, sorted[i].ID)
		}
	}
}

func TestSortStability(t *testing.T) {
	table := NewRankingTable(rankedPlayers(), 10)
	table.Click(SortWins)
	table.Click(SortWins) // flip to ascending

	sorted := table.Sorted()
	// Zverev and Djokovic both have 50 wins; Zverev precedes in the source.
	var first string
	for _, p := range sorted {
		if p.Wins == 50 {
			first = p.ID
			break
		}
	}
	if first != "p3" {
		t.Errorf("Expected stable order to keep p3 before p4 on equal wins, got %s first", first)
	}
}

func TestClickHigherIsBetterDefaultsDescending(t *testing.T) {
	for _, key := range []SortKey{SortWins, SortLosses, SortGrandSlams} {
		table := NewRankingTable(rankedPlayers(), 10)
		table.Click(key)
		if table.Dir() != Descending {
			t.Errorf("Expected first click on %q to sort descending, got %q", key, table.Dir())
		}
	}
}

func TestClickRegularKeyDefaultsAscending(t *testing.T) {
	for _, key := range []SortKey{SortName, SortAge, SortRanking} {
		table := NewRankingTable(rankedPlayers(), 10)
		table.Click(SortWins) // move off the initial key first
		table.Click(key)
		if table.Dir() != Ascending {
			t.Errorf("Expected first click on %q to sort ascending, got %q", key, table.Dir())
		}
	}
}

func TestClickSameKeyTwiceRestoresDirection(t *testing.T) {
	table := NewRankingTable(rankedPlayers(), 10)

	table.Click(SortWins)
	first := table.Dir()
	table.Click(SortWins)
	if table.Dir() == first {
		t.Errorf("Expected second click to flip direction")
	}
	table.Click(SortWins)
	if table.Dir() != first {
		t.Errorf("Expected third click to restore first direction %q, got %q", first, table.Dir())
	}
}

func TestClickSortsWinsDescending(t *testing.T) {
	table := NewRankingTable(rankedPlayers(), 10)
	table.Click(SortWins)

	sorted := table.Sorted()
	if sorted[0].ID != "p2" {
		t.Errorf("Expected p2 (60 wins) first, got %s", sorted[0].ID)
	}
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Wins > sorted[i-1].Wins {
			t.Errorf("Expected descending wins at position %d", i)
		}
	}
}

func TestPaginateWindows(t *testing.T) {
	players := make([]Player, 23)
	for i := range players {
		players[i] = Player{ID: string(rune('a' + i)), Ranking: i + 1}
	}
	table := NewRankingTable(players, 10)

	sizes := map[int]int{1: 10, 2: 10, 3: 3}
	for page, want := range sizes {
		table.SetPage(page)
		if got := len(table.Page()); got != want {
			t.Errorf("Expected page %d to hold %d entries, got %d", page, want, got)
		}
	}

	// Page 4 clamps to the last page.
	table.SetPage(4)
	if table.PageNumber() != 3 {
		t.Errorf("Expected page clamped to 3, got %d", table.PageNumber())
	}
	if got := len(table.Page()); got != 3 {
		t.Errorf("Expected clamped page to hold 3 entries, got %d", got)
	}

	table.SetPage(0)
	if table.PageNumber() != 1 {
		t.Errorf("Expected page clamped to 1, got %d", table.PageNumber())
	}
}

func TestSortResetsPage(t *testing.T) {
	players := make([]Player, 23)
	for i := range players {
		players[i] = Player{Ranking: i + 1}
	}
	table := NewRankingTable(players, 10)

	table.SetPage(3)
	table.Click(SortWins)
	if table.PageNumber() != 1 {
		t.Errorf("Expected sort change to reset page to 1, got %d", table.PageNumber())
	}

	table.SetPage(2)
	table.SetPage(2)
	if table.Key() != SortWins {
		t.Errorf("Expected page change to leave sort untouched, got %q", table.Key())
	}
}

func TestEmptyTable(t *testing.T) {
	table := NewRankingTable(nil, 10)

	if table.TotalPages() != 1 {
		t.Errorf("Expected 1 page for empty table, got %d", table.TotalPages())
	}
	if got := table.Page(); len(got) != 0 {
		t.Errorf("Expected empty page, got %d entries", len(got))
	}
}
