package deck

import (
	"fmt"
	"strings"
)

// Suit represents a card suit
type Suit int

const (
	Spades Suit = iota
	Clubs
	Hearts
	Diamonds
)

// Suits lists every suit in deck-construction order
var Suits = []Suit{Spades, Clubs, Hearts, Diamonds}

// String returns the string representation of a suit
func (s Suit) String() string {
	switch s {
	case Spades:
		return "♠"
	case Clubs:
		return "♣"
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	default:
		return "?"
	}
}

// Name returns the lower-case English name of the suit
func (s Suit) Name() string {
	switch s {
	case Spades:
		return "spades"
	case Clubs:
		return "clubs"
	case Hearts:
		return "hearts"
	case Diamonds:
		return "diamonds"
	default:
		return "unknown"
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank represents a card rank. The numeric value doubles as the natural
// high-ace ordering; games that score ranks differently map them themselves.
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// String returns the short representation of a rank
func (r Rank) String() string {
	switch {
	case r >= Two && r <= Ten:
		return fmt.Sprintf("%d", int(r))
	case r == Jack:
		return "J"
	case r == Queen:
		return "Q"
	case r == King:
		return "K"
	case r == Ace:
		return "A"
	default:
		return "?"
	}
}

// Name returns the long form used in prose ("Queen", "7")
func (r Rank) Name() string {
	switch r {
	case Jack:
		return "Jack"
	case Queen:
		return "Queen"
	case King:
		return "King"
	case Ace:
		return "Ace"
	default:
		return r.String()
	}
}

// Card represents a playing card
type Card struct {
	Suit Suit
	Rank Rank
}

// NewCard creates a new card
func NewCard(suit Suit, rank Rank) Card {
	return Card{Suit: suit, Rank: rank}
}

// String returns the string representation of a card (e.g., "A♠")
func (c Card) String() string {
	return fmt.Sprintf("%s%s", c.Rank, c.Suit)
}

// Describe returns the long form, e.g. "Queen of hearts"
func (c Card) Describe() string {
	return fmt.Sprintf("%s of %s", c.Rank.Name(), c.Suit.Name())
}

// IsRed returns true if the card is red
func (c Card) IsRed() bool {
	return c.Suit.IsRed()
}

// IsAce returns true if the card is an Ace
func (c Card) IsAce() bool {
	return c.Rank == Ace
}

// IsFaceCard returns true if the card is a face card (J, Q, K)
func (c Card) IsFaceCard() bool {
	return c.Rank >= Jack && c.Rank <= King
}

// ParseCards parses compact card notation such as "AsKhTd2c".
// Ranks are 2-9, T, J, Q, K, A; suits are s, c, h, d. Case and spaces are ignored.
func ParseCards(s string) ([]Card, error) {
	s = strings.ReplaceAll(s, " ", "")
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("invalid card string length: %d (must be even)", len(s))
	}

	cards := make([]Card, 0, len(s)/2)
	for i := 0; i < len(s); i += 2 {
		rank, err := parseRank(s[i])
		if err != nil {
			return nil, fmt.Errorf("invalid rank '%c' at position %d: %w", s[i], i, err)
		}
		suit, err := parseSuit(s[i+1])
		if err != nil {
			return nil, fmt.Errorf("invalid suit '%c' at position %d: %w", s[i+1], i+1, err)
		}
		cards = append(cards, Card{Suit: suit, Rank: rank})
	}

	return cards, nil
}

// MustParseCards parses cards and panics on error (for tests)
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(fmt.Sprintf("failed to parse cards '%s': %v", s, err))
	}
	return cards
}

func parseRank(c byte) (Rank, error) {
	switch c {
	case 'A', 'a':
		return Ace, nil
	case 'K', 'k':
		return King, nil
	case 'Q', 'q':
		return Queen, nil
	case 'J', 'j':
		return Jack, nil
	case 'T', 't':
		return Ten, nil
	}
	if c >= '2' && c <= '9' {
		return Rank(c - '0'), nil
	}
	return 0, fmt.Errorf("unknown rank '%c'", c)
}

func parseSuit(c byte) (Suit, error) {
	switch c {
	case 's', 'S':
		return Spades, nil
	case 'c', 'C':
		return Clubs, nil
	case 'h', 'H':
		return Hearts, nil
	case 'd', 'D':
		return Diamonds, nil
	default:
		return 0, fmt.Errorf("unknown suit '%c'", c)
	}
}
