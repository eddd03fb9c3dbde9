package scoreboard

import (
	"sort"
	"strings"
)

// SortKey names a sortable column of the ranking table.
type SortKey string

const (
	SortRanking    SortKey = "ranking"
	SortName       SortKey = "name"
	SortWins       SortKey = "wins"
	SortLosses     SortKey = "losses"
	SortGrandSlams SortKey = "grandSlams"
	SortAge        SortKey = "age"
)

// Direction is a sort direction.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// higherIsBetter lists the keys that default to descending on first click.
// This asymmetry is a deliberate UX policy: for counting columns the
// interesting entries are the large ones.
var higherIsBetter = map[SortKey]bool{
	SortWins:       true,
	SortLosses:     true,
	SortGrandSlams: true,
}

// RankingTable holds the players list and keeps a sort/page state over it.
// Every read recomputes from the canonical unsorted source, so repeated
// re-sorting cannot compound.
type RankingTable struct {
	players  []Player // canonical order, never mutated
	key      SortKey
	dir      Direction
	page     int
	pageSize int
}

// NewRankingTable creates a table over the given players, initially sorted
// by ranking ascending on page 1.
func NewRankingTable(players []Player, pageSize int) *RankingTable {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &RankingTable{
		players:  players,
		key:      SortRanking,
		dir:      Ascending,
		page:     1,
		pageSize: pageSize,
	}
}

// Click registers a header click on the given column. Clicking the active
// column flips the direction; clicking a new column selects it with its
// default direction (descending for higher-is-better columns, ascending
// otherwise). Any click resets to page 1.
func (t *RankingTable) Click(key SortKey) {
	if key == t.key {
		if t.dir == Ascending {
			t.dir = Descending
		} else {
			t.dir = Ascending
		}
	} else {
		t.key = key
		t.dir = Ascending
		if higherIsBetter[key] {
			t.dir = Descending
		}
	}
	t.page = 1
}

// Sort sets an explicit sort key and direction, resetting to page 1.
func (t *RankingTable) Sort(key SortKey, dir Direction) {
	t.key = key
	t.dir = dir
	t.page = 1
}

// SetPage selects a 1-based page, clamped to the valid range. The sort
// state is left untouched.
func (t *RankingTable) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	if max := t.TotalPages(); page > max {
		page = max
	}
	t.page = page
}

// Key returns the active sort key.
func (t *RankingTable) Key() SortKey { return t.key }

// Dir returns the active sort direction.
func (t *RankingTable) Dir() Direction { return t.dir }

// PageNumber returns the current 1-based page number.
func (t *RankingTable) PageNumber() int { return t.page }

// TotalPages returns the number of pages, at least 1.
func (t *RankingTable) TotalPages() int {
	n := (len(t.players) + t.pageSize - 1) / t.pageSize
	if n < 1 {
		n = 1
	}
	return n
}

// Sorted returns a stably sorted copy of the full players list. Entries
// with equal key values keep their relative order from the source.
func (t *RankingTable) Sorted() []Player {
	sorted := make([]Player, len(t.players))
	copy(sorted, t.players)

	sort.SliceStable(sorted, func(i, j int) bool {
		less := keyLess(sorted[i], sorted[j], t.key)
		if t.dir == Descending {
			return keyLess(sorted[j], sorted[i], t.key)
		}
		return less
	})
	return sorted
}

// Page returns the current window of the sorted list.
func (t *RankingTable) Page() []Player {
	sorted := t.Sorted()

	start := (t.page - 1) * t.pageSize
	if start >= len(sorted) {
		return []Player{}
	}
	end := start + t.pageSize
	if end > len(sorted) {
		end = len(sorted)
	}
	return sorted[start:end]
}

// keyLess compares two players on a single column. Unknown keys fall back
// to the ranking column.
func keyLess(a, b Player, key SortKey) bool {
	switch key {
	case SortName:
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	case SortWins:
		return a.Wins < b.Wins
	case SortLosses:
		return a.Losses < b.Losses
	case SortGrandSlams:
		return a.GrandSlams < b.GrandSlams
	case SortAge:
		return a.Age < b.Age
	default:
		return a.Ranking < b.Ranking
	}
}
