package scoreboard

import "testing"

func TestPresentIdleUntilTerminal(t *testing.T) {
	vm := NewMatchViewModel(testMatch())
	p := NewWinnerPresentation(nil)

	if got := p.Present(vm); got != nil {
		t.Errorf("Expected nil for live match, got %+v", got)
	}
	if p.State() != PresentationIdle {
		t.Errorf("Expected idle state, got %v", p.State())
	}
}

func TestPresentTransitionsOnce(t *testing.T) {
	vm := NewMatchViewModel(testMatch())
	celebrations := 0
	p := NewWinnerPresentation(func(Player) { celebrations++ })

	vm.Merge(Delta{Status: statusPtr(StatusCompleted), Winner: strPtr("playerA")})

	first := p.Present(vm)
	if first == nil || first.ID != "p100" {
		t.Fatalf("Expected winner p100, got %+v", first)
	}
	if p.State() != PresentationShowing {
		t.Errorf("Expected showing state, got %v", p.State())
	}

	// Re-renders keep returning the winner without re-celebrating.
	for i := 0; i < 3; i++ {
		if got := p.Present(vm); got == nil || got.ID != "p100" {
			t.Errorf("Expected winner on re-render, got %+v", got)
		}
	}
	if celebrations != 1 {
		t.Errorf("Expected exactly 1 celebration, got %d", celebrations)
	}
}

func TestDismissSuppressesRePresentation(t *testing.T) {
	vm := NewMatchViewModel(testMatch())
	vm.Merge(Delta{Status: statusPtr(StatusCompleted), Winner: strPtr("playerB")})

	p := NewWinnerPresentation(nil)
	if p.Present(vm) == nil {
		t.Fatal("Expected winner before dismissal")
	}

	p.Dismiss()
	if p.State() != PresentationDismissed {
		t.Errorf("Expected dismissed state, got %v", p.State())
	}
	if got := p.Present(vm); got != nil {
		t.Errorf("Expected nil after dismissal, got %+v", got)
	}
}

func TestPresentTerminalWithoutWinner(t *testing.T) {
	m := testMatch()
	m.Status = StatusCompleted
	vm := NewMatchViewModel(m)

	celebrations := 0
	p := NewWinnerPresentation(func(Player) { celebrations++ })

	if got := p.Present(vm); got != nil {
		t.Errorf("Expected nil for terminal match without winner, got %+v", got)
	}
	if celebrations != 0 {
		t.Errorf("Expected no celebration, got %d", celebrations)
	}
	if p.State() != PresentationIdle {
		t.Errorf("Expected presentation to stay idle, got %v", p.State())
	}
}

func TestDismissBeforeShowing(t *testing.T) {
	vm := NewMatchViewModel(testMatch())
	p := NewWinnerPresentation(nil)

	p.Dismiss()
	vm.Merge(Delta{Status: statusPtr(StatusCompleted), Winner: strPtr("playerA")})

	if got := p.Present(vm); got != nil {
		t.Errorf("Expected no presentation after early dismissal, got %+v", got)
	}
}
