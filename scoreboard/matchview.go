package scoreboard

// pointNames maps a point count (0..3) to its tennis display value.
var pointNames = [4]string{"0", "15", "30", "40"}

// MatchViewModel wraps one match snapshot and reconciles incoming deltas
// into it. All derivations read the current snapshot synchronously.
type MatchViewModel struct {
	match Match
}

// NewMatchViewModel wraps a fetched match snapshot.
func NewMatchViewModel(initial Match) *MatchViewModel {
	return &MatchViewModel{match: initial}
}

// Match returns the current snapshot.
func (vm *MatchViewModel) Match() Match {
	return vm.match
}

// Merge applies a partial update and returns the resulting snapshot.
//
// Fields absent from the delta are retained; present fields replace the
// corresponding match field wholesale, except Score which is overlaid one
// level deeper so that e.g. a points update does not erase the sets. A
// terminal status is never reverted to a non-terminal one. Applying the same
// delta twice is equivalent to applying it once.
func (vm *MatchViewModel) Merge(d Delta) Match {
	next := vm.match

	if d.Status != nil {
		if !isTerminal(next.Status) || isTerminal(*d.Status) {
			next.Status = *d.Status
		}
	}
	if d.Winner != nil {
		next.Winner = *d.Winner
	}
	if d.Score != nil {
		s := next.Score
		if d.Score.Points != nil {
			s.Points = *d.Score.Points
		}
		if d.Score.Advantage != nil {
			s.Advantage = *d.Score.Advantage
		}
		if d.Score.Sets != nil {
			s.Sets = d.Score.Sets
		}
		if d.Score.SetScore != nil {
			s.SetScore = *d.Score.SetScore
		}
		if d.Score.Server != nil {
			s.Server = *d.Score.Server
		}
		next.Score = s
	}
	if d.Statistics != nil {
		next.Statistics = d.Statistics
	}

	vm.match = next
	return next
}

// DisplayPoint returns the tennis point display for a side: "0", "15", "30",
// "40" or "AD". Out-of-range point counts clamp to "40".
func (vm *MatchViewModel) DisplayPoint(side Side) string {
	if vm.match.Score.Advantage == side {
		return "AD"
	}
	p := vm.match.Score.Points.PlayerA
	if side == SidePlayerB {
		p = vm.match.Score.Points.PlayerB
	}
	if p < 0 || p >= len(pointNames) {
		return "40"
	}
	return pointNames[p]
}

// IsTerminal reports whether the match has reached a state from which no
// further score progression is expected.
func (vm *MatchViewModel) IsTerminal() bool {
	return isTerminal(vm.match.Status)
}

// ResolveWinner resolves the winner field to one of the two players. It
// accepts the side tag and raw player id encodings. A terminal match with an
// unset or unresolvable winner yields nil; that is an inconsistent but
// tolerated state, not an error.
func (vm *MatchViewModel) ResolveWinner() *Player {
	if !vm.IsTerminal() || vm.match.Winner == "" {
		return nil
	}
	switch vm.match.Winner {
	case string(SidePlayerA):
		return vm.match.PlayerA
	case string(SidePlayerB):
		return vm.match.PlayerB
	}
	if vm.match.PlayerA != nil && vm.match.PlayerA.ID == vm.match.Winner {
		return vm.match.PlayerA
	}
	if vm.match.PlayerB != nil && vm.match.PlayerB.ID == vm.match.Winner {
		return vm.match.PlayerB
	}
	return nil
}

func isTerminal(s Status) bool {
	return s == StatusCompleted || s == StatusFinished
}
