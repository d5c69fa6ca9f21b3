package blackjack

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/lox/gamecenter/internal/deck"
	"github.com/lox/gamecenter/internal/event"
)

// ErrNoRounds is returned when a session is asked to play fewer than one round
var ErrNoRounds = errors.New("session needs at least one round")

// Tally counts round winners across a session
type Tally struct {
	Rounds     int
	PlayerWins int
	DealerWins int
	Ties       int
}

// Record adds one round outcome
func (t *Tally) Record(o Outcome) {
	t.Rounds++
	switch o.Winner() {
	case PlayerWins:
		t.PlayerWins++
	case DealerWins:
		t.DealerWins++
	case Tie:
		t.Ties++
	}
}

// SessionConfig configures a multi-round session
type SessionConfig struct {
	Rounds  int
	NewDeck func() *deck.Deck // called once per round; must return a ready-to-deal deck
	Bus     event.Bus
	Logger  *log.Logger
}

// Session plays a fixed number of independent rounds. Every round starts
// from a fresh deck and empty hands; only the tally carries over.
type Session struct {
	config SessionConfig
	tally  Tally
}

// NewSession creates a session
func NewSession(config SessionConfig) *Session {
	if config.Bus == nil {
		config.Bus = event.Discard
	}
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	return &Session{config: config}
}

// Tally returns the results so far
func (s *Session) Tally() Tally { return s.tally }

// Run plays every round with agent deciding for the player. It stops early
// only if the agent returns an error.
func (s *Session) Run(agent Agent) (Tally, error) {
	if s.config.Rounds < 1 {
		return s.tally, ErrNoRounds
	}

	for n := 1; n <= s.config.Rounds; n++ {
		s.config.Bus.Publish(RoundStartedEvent{Number: n, Total: s.config.Rounds})

		round := NewRound(s.config.NewDeck(), s.config.Bus, s.config.Logger.With("round", n))
		outcome, err := Play(round, agent)
		if err != nil {
			return s.tally, fmt.Errorf("round %d: %w", n, err)
		}
		s.tally.Record(outcome)
	}

	s.config.Bus.Publish(SessionEndedEvent{Tally: s.tally})
	s.config.Logger.Info("Session finished",
		"rounds", s.tally.Rounds,
		"playerWins", s.tally.PlayerWins,
		"dealerWins", s.tally.DealerWins,
		"ties", s.tally.Ties)
	return s.tally, nil
}
