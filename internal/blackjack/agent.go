package blackjack

import (
	"fmt"
	"strings"
)

// Choice is the player's decision in PlayerTurn
type Choice int

const (
	Hit Choice = iota
	Stand
)

// String returns the string representation of a choice
func (c Choice) String() string {
	if c == Hit {
		return "hit"
	}
	return "stand"
}

// ParseChoice accepts hit, h, stand or s in any case. Anything else is
// rejected so the caller can ask again.
func ParseChoice(s string) (Choice, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hit", "h":
		return Hit, true
	case "stand", "s":
		return Stand, true
	default:
		return 0, false
	}
}

// View is the read-only table state offered to an agent
type View struct {
	Player HandView
	Dealer HandView
}

// Agent decides hit or stand for the player
type Agent interface {
	Decide(view View) (Choice, error)
}

// AgentFunc adapts a function to Agent
type AgentFunc func(view View) (Choice, error)

// Decide calls f(view)
func (f AgentFunc) Decide(view View) (Choice, error) { return f(view) }

// ThresholdAgent hits while the player's hand is below StandOn. With
// StandOn = 17 it mirrors the dealer.
type ThresholdAgent struct {
	StandOn int
}

// Decide implements Agent
func (a ThresholdAgent) Decide(view View) (Choice, error) {
	if view.Player.Value < a.StandOn {
		return Hit, nil
	}
	return Stand, nil
}

// Play runs r to Terminal, consulting agent at every suspend point
func Play(r *Round, agent Agent) (Outcome, error) {
	if r.State() == Dealing {
		if err := r.Start(); err != nil {
			return Undecided, err
		}
	}

	for r.Awaiting() {
		choice, err := agent.Decide(r.View())
		if err != nil {
			return Undecided, fmt.Errorf("player decision: %w", err)
		}

		switch choice {
		case Hit:
			err = r.Hit()
		default:
			err = r.Stand()
		}
		if err != nil {
			return Undecided, err
		}
	}

	return r.Outcome(), nil
}
