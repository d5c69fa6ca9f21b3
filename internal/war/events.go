package war

import (
	"github.com/lox/gamecenter/internal/deck"
	"github.com/lox/gamecenter/internal/event"
)

// Event types published by the war engine
const (
	EventCardDrawn  event.Type = "war.card_drawn"
	EventTie        event.Type = "war.tie"
	EventRoundEnded event.Type = "war.round_ended"
	EventGameHalted event.Type = "war.game_halted"
)

// CardDrawnEvent is published for every card a player takes
type CardDrawnEvent struct {
	Player Player
	Card   deck.Card
}

func (CardDrawnEvent) EventType() event.Type { return EventCardDrawn }

// TieEvent announces that a tiebreak draw follows
type TieEvent struct {
	Draw Draw
}

func (TieEvent) EventType() event.Type { return EventTie }

// RoundEndedEvent carries a completed round with the running scores
type RoundEndedEvent struct {
	Result RoundResult
}

func (RoundEndedEvent) EventType() event.Type { return EventRoundEnded }

// GameHaltedEvent carries the final result
type GameHaltedEvent struct {
	Result Result
}

func (GameHaltedEvent) EventType() event.Type { return EventGameHalted }
