package war

import (
	"fmt"
	"strings"
)

// Agent answers the continue question after each completed round
type Agent interface {
	Continue(last RoundResult) (bool, error)
}

// AgentFunc adapts a function to Agent
type AgentFunc func(last RoundResult) (bool, error)

// Continue calls f(last)
func (f AgentFunc) Continue(last RoundResult) (bool, error) { return f(last) }

// AlwaysContinue plays until the deck runs out
type AlwaysContinue struct{}

// Continue implements Agent
func (AlwaysContinue) Continue(RoundResult) (bool, error) { return true, nil }

// StopAfter stops once Rounds rounds have been played
type StopAfter struct {
	Rounds int
}

// Continue implements Agent
func (s StopAfter) Continue(last RoundResult) (bool, error) {
	return last.Number < s.Rounds, nil
}

// ParseContinue reads a yes/no answer. Only yes and y continue; any other
// answer stops the game.
func ParseContinue(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y":
		return true
	default:
		return false
	}
}

// Play runs g until it halts, asking agent after every completed round
func Play(g *Game, agent Agent) (Result, error) {
	for g.State() != Halted {
		last, _, err := g.PlayRound()
		if err != nil {
			return g.Result(), err
		}
		// an abandoned round has already halted the game
		if !g.Awaiting() {
			break
		}

		more, err := agent.Continue(last)
		if err != nil {
			return g.Result(), fmt.Errorf("continue decision: %w", err)
		}
		if err := g.Continue(more); err != nil {
			return g.Result(), err
		}
	}
	return g.Result(), nil
}
