// Package oldmaid implements two-handed Old Maid between a human and the
// computer. One Queen is removed before the deal, so exactly one Queen can
// never be paired; whoever is stuck with it at the end is the Old Maid.
package oldmaid

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/lox/gamecenter/internal/deck"
	"github.com/lox/gamecenter/internal/event"
	"github.com/lox/gamecenter/internal/randutil"
)

// Side identifies a participant
type Side int

const (
	Human Side = iota
	Computer
)

// String returns the string representation of a side
func (s Side) String() string {
	if s == Human {
		return "human"
	}
	return "computer"
}

// State is a step of the game state machine
type State int

const (
	Setup State = iota
	HumanTurn
	ComputerTurn
	Halted
)

// String returns the string representation of a state
func (s State) String() string {
	switch s {
	case Setup:
		return "Setup"
	case HumanTurn:
		return "HumanTurn"
	case ComputerTurn:
		return "ComputerTurn"
	case Halted:
		return "Halted"
	default:
		return "Unknown"
	}
}

var (
	// ErrNotHumanTurn is returned by HumanDraw outside HumanTurn
	ErrNotHumanTurn = errors.New("not the human's turn")
	// ErrAlreadyDealt is returned when Setup or Deal runs twice
	ErrAlreadyDealt = errors.New("hands already dealt")
	// ErrNoQueen is returned when the deck has no Queen to set aside
	ErrNoQueen = errors.New("deck has no queen to remove")
)

// TurnResult describes one completed turn
type TurnResult struct {
	Side         Side
	Card         deck.Card
	Skipped      bool // the hand to draw from was empty
	Fallback     bool // the human's pick was invalid and a random card was taken
	PairsRemoved int
	HandSize     int // size of the drawing side's hand after pair removal
}

// Result is the final outcome
type Result struct {
	OldMaid       Side // the loser
	HumanCards    int
	ComputerCards int
	Turns         int
}

// HumanWins reports whether the computer ended as the Old Maid
func (r Result) HumanWins() bool { return r.OldMaid == Computer }

// Game is the Old Maid state machine. Turns alternate strictly
// Human, Computer, Human… until either hand is empty.
type Game struct {
	rng          randutil.Source
	human        []deck.Card
	computer     []deck.Card
	removed      deck.Card
	initialPairs [2]int
	turns        int
	state        State
	bus          event.Bus
	logger       *log.Logger
}

// NewGame creates a game in Setup
func NewGame(rng randutil.Source, bus event.Bus, logger *log.Logger) *Game {
	if bus == nil {
		bus = event.Discard
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Game{rng: rng, bus: bus, logger: logger}
}

// State returns the current state
func (g *Game) State() State { return g.state }

// Awaiting reports whether the game is suspended for the human's pick
func (g *Game) Awaiting() bool { return g.state == HumanTurn }

// HumanHand returns a copy of the human's hand
func (g *Game) HumanHand() []deck.Card { return clone(g.human) }

// ComputerHand returns a copy of the computer's hand
func (g *Game) ComputerHand() []deck.Card { return clone(g.computer) }

// RemovedQueen returns the Queen set aside at setup
func (g *Game) RemovedQueen() deck.Card { return g.removed }

// InitialPairs returns the pairs discarded right after the deal, human first
func (g *Game) InitialPairs() [2]int { return g.initialPairs }

// View returns what the human may see before picking
func (g *Game) View() View {
	return View{Hand: g.HumanHand(), Opponent: g.ComputerHand()}
}

// Setup builds a deck, sets one random Queen aside, shuffles and deals.
// The human receives the first half rounded down (25 of 51).
func (g *Game) Setup() error {
	if g.state != Setup {
		return fmt.Errorf("setup: %w", ErrAlreadyDealt)
	}

	d := deck.NewDeck(g.rng)
	var queens []deck.Card
	for _, c := range d.Cards() {
		if c.Rank == deck.Queen {
			queens = append(queens, c)
		}
	}
	if len(queens) == 0 {
		return ErrNoQueen
	}
	g.removed = queens[g.rng.IntN(len(queens))]
	d.Remove(g.removed)
	d.Shuffle()

	cards := d.Deal(d.CardsRemaining())
	half := len(cards) / 2
	g.logger.Debug("Dealing", "removed", g.removed, "human", half, "computer", len(cards)-half)
	return g.Deal(cards[:half], cards[half:])
}

// Deal hands out the given cards and discards the initial pairs. Setup calls
// it with a shuffled deck; tests call it directly for fixed hands.
func (g *Game) Deal(human, computer []deck.Card) error {
	if g.state != Setup {
		return fmt.Errorf("deal: %w", ErrAlreadyDealt)
	}

	g.human, g.initialPairs[0] = RemovePairs(human)
	g.computer, g.initialPairs[1] = RemovePairs(computer)
	g.state = HumanTurn

	g.bus.Publish(DealtEvent{
		HumanPairs:    g.initialPairs[0],
		ComputerPairs: g.initialPairs[1],
		Hand:          g.HumanHand(),
		ComputerCards: len(g.computer),
	})
	g.logger.Info("Initial pairs removed",
		"human", g.initialPairs[0],
		"computer", g.initialPairs[1],
		"humanCards", len(g.human),
		"computerCards", len(g.computer))

	g.checkEnd()
	return nil
}

// HumanDraw takes the card at index (0-based) from the computer's hand. An
// index out of range takes a uniformly random card instead. The computer's
// turn then runs immediately unless the game is over.
func (g *Game) HumanDraw(index int) ([]TurnResult, error) {
	if g.state != HumanTurn {
		return nil, fmt.Errorf("human draw in %s: %w", g.state, ErrNotHumanTurn)
	}

	results := []TurnResult{g.humanTurn(index)}
	if g.checkEnd() {
		return results, nil
	}

	g.state = ComputerTurn
	results = append(results, g.computerTurn())
	if !g.checkEnd() {
		g.state = HumanTurn
	}
	return results, nil
}

func (g *Game) humanTurn(index int) TurnResult {
	g.turns++
	res := TurnResult{Side: Human}
	if len(g.computer) == 0 {
		res.Skipped = true
		res.HandSize = len(g.human)
		g.bus.Publish(TurnEvent{Turn: res})
		return res
	}

	if index < 0 || index >= len(g.computer) {
		res.Fallback = true
		index = g.rng.IntN(len(g.computer))
	}

	res.Card = g.computer[index]
	g.computer = removeAt(g.computer, index)
	g.human, res.PairsRemoved = RemovePairs(append(g.human, res.Card))
	res.HandSize = len(g.human)

	g.bus.Publish(TurnEvent{Turn: res})
	g.logger.Debug("Human drew", "card", res.Card, "fallback", res.Fallback, "pairs", res.PairsRemoved, "handSize", res.HandSize)
	return res
}

func (g *Game) computerTurn() TurnResult {
	g.turns++
	res := TurnResult{Side: Computer}
	if len(g.human) == 0 {
		res.Skipped = true
		res.HandSize = len(g.computer)
		g.bus.Publish(TurnEvent{Turn: res})
		return res
	}

	index := g.rng.IntN(len(g.human))
	res.Card = g.human[index]
	g.human = removeAt(g.human, index)
	g.computer, res.PairsRemoved = RemovePairs(append(g.computer, res.Card))
	res.HandSize = len(g.computer)

	g.bus.Publish(TurnEvent{Turn: res})
	g.logger.Debug("Computer drew", "card", res.Card, "pairs", res.PairsRemoved, "handSize", res.HandSize)
	return res
}

// checkEnd halts the game once either hand is empty
func (g *Game) checkEnd() bool {
	if len(g.human) > 0 && len(g.computer) > 0 {
		return false
	}
	g.state = Halted
	res := g.Result()
	g.bus.Publish(GameOverEvent{Result: res})
	g.logger.Info("Game over",
		"oldMaid", res.OldMaid,
		"humanCards", res.HumanCards,
		"computerCards", res.ComputerCards,
		"turns", res.Turns)
	return true
}

// Result reports the outcome. Only the human's hand decides it: a human left
// holding exactly one card is the Old Maid, otherwise the computer is.
func (g *Game) Result() Result {
	res := Result{
		OldMaid:       Computer,
		HumanCards:    len(g.human),
		ComputerCards: len(g.computer),
		Turns:         g.turns,
	}
	if len(g.human) == 1 {
		res.OldMaid = Human
	}
	return res
}

func removeAt(cards []deck.Card, i int) []deck.Card {
	out := make([]deck.Card, 0, len(cards)-1)
	out = append(out, cards[:i]...)
	return append(out, cards[i+1:]...)
}

func clone(cards []deck.Card) []deck.Card {
	out := make([]deck.Card, len(cards))
	copy(out, cards)
	return out
}
