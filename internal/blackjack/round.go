package blackjack

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/lox/gamecenter/internal/deck"
	"github.com/lox/gamecenter/internal/event"
)

// State is a step of the round state machine
type State int

const (
	Dealing State = iota
	PlayerTurn
	DealerTurn
	Resolution
	Terminal
)

// String returns the string representation of a state
func (s State) String() string {
	switch s {
	case Dealing:
		return "Dealing"
	case PlayerTurn:
		return "PlayerTurn"
	case DealerTurn:
		return "DealerTurn"
	case Resolution:
		return "Resolution"
	case Terminal:
		return "Terminal"
	default:
		return "Unknown"
	}
}

// Winner names who took a round
type Winner int

const (
	NoWinner Winner = iota
	PlayerWins
	DealerWins
	Tie
)

// String returns the string representation of a winner
func (w Winner) String() string {
	switch w {
	case PlayerWins:
		return "player"
	case DealerWins:
		return "dealer"
	case Tie:
		return "tie"
	default:
		return "none"
	}
}

// Outcome records how a round was decided
type Outcome int

const (
	Undecided Outcome = iota
	BothBlackjack
	PlayerBlackjack
	DealerBlackjack
	PlayerTwentyOne
	PlayerBust
	DealerBust
	PlayerHigher
	DealerHigher
	Push
)

// Winner maps the outcome to the side that won
func (o Outcome) Winner() Winner {
	switch o {
	case PlayerBlackjack, PlayerTwentyOne, DealerBust, PlayerHigher:
		return PlayerWins
	case DealerBlackjack, PlayerBust, DealerHigher:
		return DealerWins
	case BothBlackjack, Push:
		return Tie
	default:
		return NoWinner
	}
}

// String returns the string representation of an outcome
func (o Outcome) String() string {
	switch o {
	case BothBlackjack:
		return "both blackjack"
	case PlayerBlackjack:
		return "player blackjack"
	case DealerBlackjack:
		return "dealer blackjack"
	case PlayerTwentyOne:
		return "player twenty-one"
	case PlayerBust:
		return "player bust"
	case DealerBust:
		return "dealer bust"
	case PlayerHigher:
		return "player higher"
	case DealerHigher:
		return "dealer higher"
	case Push:
		return "push"
	default:
		return "undecided"
	}
}

var (
	// ErrNotPlayerTurn is returned when Hit or Stand is called outside PlayerTurn
	ErrNotPlayerTurn = errors.New("not the player's turn")
	// ErrAlreadyDealt is returned when Start is called twice
	ErrAlreadyDealt = errors.New("round already dealt")
)

// Round drives a single hand of blackjack from the deal to a result.
// It suspends in PlayerTurn until Hit or Stand is supplied; everything
// else (dealer play, resolution) runs without input.
type Round struct {
	deck    *deck.Deck
	player  *Hand
	dealer  *Hand
	state   State
	outcome Outcome
	bus     event.Bus
	logger  *log.Logger
}

// NewRound creates a round over d. The deck should already be shuffled.
func NewRound(d *deck.Deck, bus event.Bus, logger *log.Logger) *Round {
	if bus == nil {
		bus = event.Discard
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Round{
		deck:   d,
		player: NewHand(false),
		dealer: NewHand(true),
		state:  Dealing,
		bus:    bus,
		logger: logger,
	}
}

// State returns the current state
func (r *Round) State() State { return r.state }

// Outcome returns the result, Undecided until Terminal
func (r *Round) Outcome() Outcome { return r.outcome }

// Awaiting reports whether the round is suspended waiting for Hit or Stand
func (r *Round) Awaiting() bool { return r.state == PlayerTurn }

// PlayerHand returns the player's hand
func (r *Round) PlayerHand() *Hand { return r.player }

// DealerHand returns the dealer's hand
func (r *Round) DealerHand() *Hand { return r.dealer }

// View returns what the player can see right now
func (r *Round) View() View {
	return View{
		Player: r.player.View(true),
		Dealer: r.dealer.View(r.state >= DealerTurn),
	}
}

// Start deals two cards each, alternating player then dealer, and settles
// any immediate 21. Otherwise the round moves to PlayerTurn.
func (r *Round) Start() error {
	if r.state != Dealing {
		return fmt.Errorf("start: %w", ErrAlreadyDealt)
	}

	for range 2 {
		r.player.Add(r.deck.Deal(1)...)
		r.dealer.Add(r.deck.Deal(1)...)
	}

	r.logger.Debug("Dealt hands",
		"player", r.player.Cards(),
		"playerValue", r.player.Value(),
		"dealerValue", r.dealer.Value())

	r.bus.Publish(HandsDealtEvent{
		Player: r.player.View(true),
		Dealer: r.dealer.View(false),
	})

	switch {
	case r.player.IsBlackjack() && r.dealer.IsBlackjack():
		r.resolve(BothBlackjack)
	case r.player.IsBlackjack():
		r.resolve(PlayerBlackjack)
	case r.dealer.IsBlackjack():
		r.resolve(DealerBlackjack)
	default:
		r.transition(PlayerTurn)
	}
	return nil
}

// Hit deals the player one card. Reaching 21 wins outright, going over busts.
// An exhausted deck turns the hit into a stand.
func (r *Round) Hit() error {
	if r.state != PlayerTurn {
		return fmt.Errorf("hit in %s: %w", r.state, ErrNotPlayerTurn)
	}

	cards := r.deck.Deal(1)
	if len(cards) == 0 {
		r.logger.Warn("Deck exhausted on hit, standing instead")
		return r.Stand()
	}

	r.player.Add(cards...)
	r.bus.Publish(PlayerHitEvent{Card: cards[0], Player: r.player.View(true)})
	r.logger.Debug("Player hit", "card", cards[0], "value", r.player.Value())

	switch {
	case r.player.IsBust():
		r.resolve(PlayerBust)
	case r.player.IsBlackjack():
		r.resolve(PlayerTwentyOne)
	}
	return nil
}

// Stand ends the player's turn and plays out the dealer
func (r *Round) Stand() error {
	if r.state != PlayerTurn {
		return fmt.Errorf("stand in %s: %w", r.state, ErrNotPlayerTurn)
	}

	r.bus.Publish(PlayerStoodEvent{Value: r.player.Value()})
	r.transition(DealerTurn)
	r.playDealer()
	return nil
}

func (r *Round) playDealer() {
	var drawn []deck.Card
	for r.dealer.Value() < DealerStandsOn {
		cards := r.deck.Deal(1)
		if len(cards) == 0 {
			r.logger.Warn("Deck exhausted during dealer turn", "dealerValue", r.dealer.Value())
			break
		}
		r.dealer.Add(cards...)
		drawn = append(drawn, cards...)
	}

	r.bus.Publish(DealerRevealedEvent{Dealer: r.dealer.View(true), Drawn: drawn})
	r.logger.Debug("Dealer finished", "drawn", len(drawn), "value", r.dealer.Value())

	r.transition(Resolution)
	player, dealer := r.player.Value(), r.dealer.Value()
	switch {
	case dealer > Target:
		r.resolve(DealerBust)
	case player > dealer:
		r.resolve(PlayerHigher)
	case player < dealer:
		r.resolve(DealerHigher)
	default:
		r.resolve(Push)
	}
}

func (r *Round) resolve(o Outcome) {
	r.outcome = o
	r.transition(Terminal)
	r.bus.Publish(RoundResolvedEvent{
		Outcome: o,
		Player:  r.player.View(true),
		Dealer:  r.dealer.View(true),
	})
	r.logger.Info("Round resolved",
		"outcome", o,
		"winner", o.Winner(),
		"playerValue", r.player.Value(),
		"dealerValue", r.dealer.Value())
}

func (r *Round) transition(to State) {
	r.logger.Debug("State transition", "from", r.state, "to", to)
	r.state = to
}
