package oldmaid

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lox/gamecenter/internal/deck"
	"github.com/lox/gamecenter/internal/randutil"
)

// InvalidPick is returned by ParsePick for input that is not a number
const InvalidPick = -1

// View is what the human sees when it is their turn
type View struct {
	Hand     []deck.Card
	Opponent []deck.Card // face down; renderers decide whether to show them
}

// Agent picks a card (0-based) from the opponent's hand. Out-of-range
// picks are not retried: the engine draws a random card instead.
type Agent interface {
	Pick(view View) (int, error)
}

// AgentFunc adapts a function to Agent
type AgentFunc func(view View) (int, error)

// Pick calls f(view)
func (f AgentFunc) Pick(view View) (int, error) { return f(view) }

// RandomAgent picks uniformly from the opponent's hand
type RandomAgent struct {
	Rng randutil.Source
}

// Pick implements Agent
func (a RandomAgent) Pick(view View) (int, error) {
	if len(view.Opponent) == 0 {
		return InvalidPick, nil
	}
	return a.Rng.IntN(len(view.Opponent)), nil
}

// ParsePick converts a 1-based position typed by a person into a 0-based
// index. Free text yields InvalidPick, which the engine treats as a random draw.
func ParsePick(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return InvalidPick
	}
	return n - 1
}

// Play deals if needed and runs g until it halts
func Play(g *Game, agent Agent) (Result, error) {
	if g.State() == Setup {
		if err := g.Setup(); err != nil {
			return Result{}, err
		}
	}

	for g.Awaiting() {
		index, err := agent.Pick(g.View())
		if err != nil {
			return g.Result(), fmt.Errorf("human pick: %w", err)
		}
		if _, err := g.HumanDraw(index); err != nil {
			return g.Result(), err
		}
	}
	return g.Result(), nil
}
