package oldmaid

import (
	"github.com/lox/gamecenter/internal/deck"
	"github.com/lox/gamecenter/internal/event"
)

// Event types published by the old maid engine
const (
	EventDealt    event.Type = "oldmaid.dealt"
	EventTurn     event.Type = "oldmaid.turn"
	EventGameOver event.Type = "oldmaid.game_over"
)

// DealtEvent reports the initial pair removal
type DealtEvent struct {
	HumanPairs    int
	ComputerPairs int
	Hand          []deck.Card // the human's hand after pair removal
	ComputerCards int
}

func (DealtEvent) EventType() event.Type { return EventDealt }

// TurnEvent reports a completed turn for either side
type TurnEvent struct {
	Turn TurnResult
}

func (TurnEvent) EventType() event.Type { return EventTurn }

// GameOverEvent carries the final result
type GameOverEvent struct {
	Result Result
}

func (GameOverEvent) EventType() event.Type { return EventGameOver }
