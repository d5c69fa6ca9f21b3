// Package war implements two-player War against a single shared deck.
//
// Each round both players draw one card and the higher card scores two
// points. A tie gets exactly one tiebreak draw; a second tie scores nothing.
// The game halts when the deck cannot supply a required card or when the
// caller declines to continue.
package war

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/lox/gamecenter/internal/deck"
	"github.com/lox/gamecenter/internal/event"
)

// PointsPerRound is awarded to the winner of a round or tiebreak
const PointsPerRound = 2

// CardValue ranks cards for War: 2 low through Ace high (14)
func CardValue(c deck.Card) int {
	return int(c.Rank)
}

// Player identifies one of the two seats
type Player int

const (
	Nobody Player = iota
	PlayerOne
	PlayerTwo
)

// String returns the string representation of a player
func (p Player) String() string {
	switch p {
	case PlayerOne:
		return "Player one"
	case PlayerTwo:
		return "Player two"
	default:
		return "Nobody"
	}
}

// State is a step of the game state machine
type State int

const (
	RoundStart State = iota
	AwaitingContinue
	Halted
)

// String returns the string representation of a state
func (s State) String() string {
	switch s {
	case RoundStart:
		return "RoundStart"
	case AwaitingContinue:
		return "AwaitingContinue"
	case Halted:
		return "Halted"
	default:
		return "Unknown"
	}
}

// HaltReason explains why the game stopped
type HaltReason int

const (
	NotHalted HaltReason = iota
	DeckEmpty
	UserStopped
)

// String returns the string representation of a halt reason
func (h HaltReason) String() string {
	switch h {
	case DeckEmpty:
		return "deck empty"
	case UserStopped:
		return "stopped by user"
	default:
		return "running"
	}
}

var (
	// ErrNotAwaitingContinue is returned by Continue outside AwaitingContinue
	ErrNotAwaitingContinue = errors.New("not waiting for a continue decision")
	// ErrRoundNotReady is returned by PlayRound outside RoundStart
	ErrRoundNotReady = errors.New("round cannot start in this state")
)

// Draw is one comparison: each player's card and who won it
type Draw struct {
	One    deck.Card
	Two    deck.Card
	Winner Player
}

// RoundResult describes a completed round
type RoundResult struct {
	Number   int
	Draw     Draw
	Tiebreak *Draw // set only when Draw was a tie
	Winner   Player
	Scores   [2]int
}

// Result is the final outcome of a game
type Result struct {
	Winner Player // Nobody on equal scores
	Scores [2]int
	Rounds int
	Reason HaltReason
}

// Game is the War state machine. One deck, shuffled once by the caller,
// is consumed across rounds; scores only ever grow.
type Game struct {
	deck   *deck.Deck
	scores [2]int
	rounds int
	state  State
	reason HaltReason
	bus    event.Bus
	logger *log.Logger
}

// NewGame creates a game over d
func NewGame(d *deck.Deck, bus event.Bus, logger *log.Logger) *Game {
	if bus == nil {
		bus = event.Discard
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Game{deck: d, bus: bus, logger: logger}
}

// State returns the current state
func (g *Game) State() State { return g.state }

// Scores returns both cumulative scores, player one first
func (g *Game) Scores() [2]int { return g.scores }

// CardsRemaining returns what is left in the deck
func (g *Game) CardsRemaining() int { return g.deck.CardsRemaining() }

// Awaiting reports whether the game is suspended for a continue decision
func (g *Game) Awaiting() bool { return g.state == AwaitingContinue }

// PlayRound draws for both players, runs a tiebreak if needed and scores the
// round. If the deck runs out part way the round is abandoned and the game
// halts; the returned bool is false in that case.
func (g *Game) PlayRound() (RoundResult, bool, error) {
	if g.state != RoundStart {
		return RoundResult{}, false, fmt.Errorf("play round in %s: %w", g.state, ErrRoundNotReady)
	}

	first, ok := g.draw()
	if !ok {
		return RoundResult{}, false, nil
	}

	result := RoundResult{Number: g.rounds + 1, Draw: first, Winner: first.Winner}
	if first.Winner == Nobody {
		g.bus.Publish(TieEvent{Draw: first})
		tiebreak, ok := g.draw()
		if !ok {
			return RoundResult{}, false, nil
		}
		result.Tiebreak = &tiebreak
		result.Winner = tiebreak.Winner
	}

	g.award(result.Winner)
	g.rounds++
	result.Scores = g.scores
	g.state = AwaitingContinue

	g.bus.Publish(RoundEndedEvent{Result: result})
	g.logger.Debug("Round complete",
		"round", result.Number,
		"winner", result.Winner,
		"tiebreak", result.Tiebreak != nil,
		"scores", g.scores,
		"remaining", g.deck.CardsRemaining())
	return result, true, nil
}

// Continue answers the post-round question. false halts the game.
func (g *Game) Continue(more bool) error {
	if g.state != AwaitingContinue {
		return fmt.Errorf("continue in %s: %w", g.state, ErrNotAwaitingContinue)
	}
	if !more {
		g.halt(UserStopped)
		return nil
	}
	g.state = RoundStart
	return nil
}

// Result returns the outcome so far; Reason is NotHalted while running
func (g *Game) Result() Result {
	r := Result{Scores: g.scores, Rounds: g.rounds, Reason: g.reason}
	switch {
	case g.scores[0] > g.scores[1]:
		r.Winner = PlayerOne
	case g.scores[1] > g.scores[0]:
		r.Winner = PlayerTwo
	}
	return r
}

func (g *Game) draw() (Draw, bool) {
	one, ok := g.deck.DealOne()
	if !ok {
		g.halt(DeckEmpty)
		return Draw{}, false
	}
	g.bus.Publish(CardDrawnEvent{Player: PlayerOne, Card: one})

	two, ok := g.deck.DealOne()
	if !ok {
		g.halt(DeckEmpty)
		return Draw{}, false
	}
	g.bus.Publish(CardDrawnEvent{Player: PlayerTwo, Card: two})

	d := Draw{One: one, Two: two}
	switch {
	case CardValue(one) > CardValue(two):
		d.Winner = PlayerOne
	case CardValue(two) > CardValue(one):
		d.Winner = PlayerTwo
	}
	return d, true
}

func (g *Game) award(p Player) {
	switch p {
	case PlayerOne:
		g.scores[0] += PointsPerRound
	case PlayerTwo:
		g.scores[1] += PointsPerRound
	}
}

func (g *Game) halt(reason HaltReason) {
	g.state = Halted
	g.reason = reason
	result := g.Result()
	g.bus.Publish(GameHaltedEvent{Result: result})
	g.logger.Info("Game halted",
		"reason", reason,
		"winner", result.Winner,
		"scores", result.Scores,
		"rounds", result.Rounds)
}
