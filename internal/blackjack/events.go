package blackjack

import (
	"github.com/lox/gamecenter/internal/deck"
	"github.com/lox/gamecenter/internal/event"
)

// Event types published by the blackjack engine
const (
	EventRoundStarted   event.Type = "blackjack.round_started"
	EventHandsDealt     event.Type = "blackjack.hands_dealt"
	EventPlayerHit      event.Type = "blackjack.player_hit"
	EventPlayerStood    event.Type = "blackjack.player_stood"
	EventDealerRevealed event.Type = "blackjack.dealer_revealed"
	EventRoundResolved  event.Type = "blackjack.round_resolved"
	EventSessionEnded   event.Type = "blackjack.session_ended"
)

// RoundStartedEvent opens round Number of Total in a session
type RoundStartedEvent struct {
	Number int
	Total  int
}

func (RoundStartedEvent) EventType() event.Type { return EventRoundStarted }

// HandsDealtEvent carries the opening hands
type HandsDealtEvent struct {
	Player HandView
	Dealer HandView
}

func (HandsDealtEvent) EventType() event.Type { return EventHandsDealt }

// PlayerHitEvent carries the drawn card and the updated hand
type PlayerHitEvent struct {
	Card   deck.Card
	Player HandView
}

func (PlayerHitEvent) EventType() event.Type { return EventPlayerHit }

// PlayerStoodEvent marks the end of the player's turn
type PlayerStoodEvent struct {
	Value int
}

func (PlayerStoodEvent) EventType() event.Type { return EventPlayerStood }

// DealerRevealedEvent shows the dealer's full hand after drawing
type DealerRevealedEvent struct {
	Dealer HandView
	Drawn  []deck.Card
}

func (DealerRevealedEvent) EventType() event.Type { return EventDealerRevealed }

// RoundResolvedEvent reports the outcome with both hands face up
type RoundResolvedEvent struct {
	Outcome Outcome
	Player  HandView
	Dealer  HandView
}

func (RoundResolvedEvent) EventType() event.Type { return EventRoundResolved }

// SessionEndedEvent reports the tally after the last round
type SessionEndedEvent struct {
	Tally Tally
}

func (SessionEndedEvent) EventType() event.Type { return EventSessionEnded }
