package blackjack

import (
	"github.com/lox/gamecenter/internal/deck"
)

const (
	// Target is the best possible hand value
	Target = 21
	// DealerStandsOn is the value at which the dealer stops drawing
	DealerStandsOn = 17

	aceHigh       = 11
	aceCorrection = 10
)

// CardValue returns the blackjack value of a card: pips at face value,
// J/Q/K as 10 and Ace as 11. Hand.Value applies the ace correction.
func CardValue(c deck.Card) int {
	switch {
	case c.Rank == deck.Ace:
		return aceHigh
	case c.Rank >= deck.Jack:
		return 10
	default:
		return int(c.Rank)
	}
}

// Hand is an ordered set of cards held by the player or the dealer
type Hand struct {
	cards  []deck.Card
	dealer bool
}

// NewHand creates an empty hand
func NewHand(dealer bool) *Hand {
	return &Hand{dealer: dealer}
}

// NewHandOf creates a player hand holding cards, mostly for tests
func NewHandOf(cards ...deck.Card) *Hand {
	h := NewHand(false)
	h.Add(cards...)
	return h
}

// Add appends cards to the hand
func (h *Hand) Add(cards ...deck.Card) {
	h.cards = append(h.cards, cards...)
}

// Cards returns a copy of the cards in the hand
func (h *Hand) Cards() []deck.Card {
	cards := make([]deck.Card, len(h.cards))
	copy(cards, h.cards)
	return cards
}

// Len returns the number of cards held
func (h *Hand) Len() int {
	return len(h.cards)
}

// Value sums the cards and, if that busts with an Ace present, counts one
// Ace as 1. The correction is applied at most once however many Aces are
// held, so [A, A, K] is 22 and a bust.
func (h *Hand) Value() int {
	total := 0
	hasAce := false
	for _, c := range h.cards {
		total += CardValue(c)
		if c.IsAce() {
			hasAce = true
		}
	}
	if hasAce && total > Target {
		total -= aceCorrection
	}
	return total
}

// IsBlackjack reports a hand worth exactly 21, however many cards it holds
func (h *Hand) IsBlackjack() bool {
	return h.Value() == Target
}

// IsBust reports a hand worth more than 21
func (h *Hand) IsBust() bool {
	return h.Value() > Target
}

// HandView is what a participant is allowed to see of a hand
type HandView struct {
	Cards      []deck.Card
	Dealer     bool
	HoleHidden bool // Cards[0] is face down
	Value      int  // zero while the hole card is hidden
}

// View renders the hand for display. The dealer's first card stays face
// down until reveal, except that a dealer blackjack is always shown.
func (h *Hand) View(reveal bool) HandView {
	v := HandView{
		Cards:  h.Cards(),
		Dealer: h.dealer,
	}
	if h.dealer && !reveal && !h.IsBlackjack() && len(h.cards) > 0 {
		v.HoleHidden = true
		return v
	}
	v.Value = h.Value()
	return v
}
