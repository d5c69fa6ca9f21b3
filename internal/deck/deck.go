package deck

import (
	"github.com/lox/gamecenter/internal/randutil"
)

// Size is the number of cards in a standard deck
const Size = 52

// Deck represents an ordered pile of cards. Index 0 is the top of the deck.
type Deck struct {
	cards []Card
	rng   randutil.Source
}

// NewDeck creates a new standard 52-card deck in suit/rank order.
// The deck is not shuffled; call Shuffle to randomise it.
func NewDeck(rng randutil.Source) *Deck {
	d := &Deck{
		cards: make([]Card, 0, Size),
		rng:   rng,
	}

	for _, suit := range Suits {
		for rank := Two; rank <= Ace; rank++ {
			d.cards = append(d.cards, NewCard(suit, rank))
		}
	}

	return d
}

// NewShuffledDeck creates a standard deck and shuffles it once
func NewShuffledDeck(rng randutil.Source) *Deck {
	d := NewDeck(rng)
	d.Shuffle()
	return d
}

// NewDeckFrom creates a deck with a fixed order, first card on top.
// It has no random source, so Shuffle is a no-op.
func NewDeckFrom(cards ...Card) *Deck {
	d := &Deck{cards: make([]Card, len(cards))}
	copy(d.cards, cards)
	return d
}

// Shuffle randomizes the order of cards in the deck
func (d *Deck) Shuffle() {
	if d.rng == nil || len(d.cards) < 2 {
		return
	}
	d.rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// DealOne removes and returns the top card from the deck
func (d *Deck) DealOne() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}

	card := d.cards[0]
	d.cards = d.cards[1:]
	return card, true
}

// Deal removes up to n cards from the top of the deck. It never returns more
// cards than remain, and returns an empty slice once the deck is exhausted.
func (d *Deck) Deal(n int) []Card {
	if n > len(d.cards) {
		n = len(d.cards)
	}
	if n <= 0 {
		return []Card{}
	}

	cards := make([]Card, n)
	copy(cards, d.cards[:n])
	d.cards = d.cards[n:]
	return cards
}

// Remove takes a specific card out of the deck, reporting whether it was present
func (d *Deck) Remove(card Card) bool {
	for i, c := range d.cards {
		if c == card {
			d.cards = append(d.cards[:i], d.cards[i+1:]...)
			return true
		}
	}
	return false
}

// Cards returns a copy of the remaining cards, top first
func (d *Deck) Cards() []Card {
	cards := make([]Card, len(d.cards))
	copy(cards, d.cards)
	return cards
}

// CardsRemaining returns the number of cards left in the deck
func (d *Deck) CardsRemaining() int {
	return len(d.cards)
}

// IsEmpty returns true if the deck has no cards left
func (d *Deck) IsEmpty() bool {
	return len(d.cards) == 0
}
