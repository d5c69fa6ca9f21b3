package oldmaid

import (
	"github.com/lox/gamecenter/internal/deck"
)

// RemovePairs drops every rank that appears exactly twice in hand and
// returns what is left, in original order, with the number of pairs
// removed. Ranks held three or four times are left alone.
func RemovePairs(hand []deck.Card) ([]deck.Card, int) {
	counts := make(map[deck.Rank]int, len(hand))
	for _, c := range hand {
		counts[c.Rank]++
	}

	pairs := 0
	for _, n := range counts {
		if n == 2 {
			pairs++
		}
	}

	kept := make([]deck.Card, 0, len(hand))
	for _, c := range hand {
		if counts[c.Rank] != 2 {
			kept = append(kept, c)
		}
	}
	return kept, pairs
}
