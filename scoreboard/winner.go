package scoreboard

// PresentationState is the lifecycle state of the winner announcement.
type PresentationState int

const (
	PresentationIdle PresentationState = iota
	PresentationShowing
	PresentationDismissed
)

// WinnerPresentation derives the match-complete announcement from terminal
// match state. It moves idle -> showing when the match becomes terminal with
// a resolvable winner, fires the celebration hook exactly once at that
// transition, and never shows again after Dismiss within the same lifetime.
type WinnerPresentation struct {
	state     PresentationState
	winner    *Player
	celebrate func(Player)
}

// NewWinnerPresentation creates an idle presentation. The celebrate hook may
// be nil; when set it fires once per presentation, not once per call.
func NewWinnerPresentation(celebrate func(Player)) *WinnerPresentation {
	return &WinnerPresentation{celebrate: celebrate}
}

// Present inspects the match and returns the winner to announce, or nil when
// nothing should be shown. Repeated calls while showing keep returning the
// same winner without re-firing the celebration.
func (p *WinnerPresentation) Present(vm *MatchViewModel) *Player {
	switch p.state {
	case PresentationDismissed:
		return nil
	case PresentationShowing:
		return p.winner
	}

	if !vm.IsTerminal() {
		return nil
	}
	winner := vm.ResolveWinner()
	if winner == nil {
		// Terminal without a resolvable winner: tolerated, render nothing.
		return nil
	}

	p.state = PresentationShowing
	p.winner = winner
	if p.celebrate != nil {
		p.celebrate(*winner)
	}
	return winner
}

// Dismiss suppresses re-presentation for the rest of this lifetime. Safe to
// call in any state.
func (p *WinnerPresentation) Dismiss() {
	p.state = PresentationDismissed
	p.winner = nil
}

// State returns the current presentation state.
func (p *WinnerPresentation) State() PresentationState {
	return p.state
}
