package war

import (
	"errors"
	"testing"

	"github.com/lox/gamecenter/internal/deck"
	"github.com/lox/gamecenter/internal/event"
	"github.com/lox/gamecenter/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGame(cards string) (*Game, *event.Recorder) {
	bus := event.NewBus()
	rec := &event.Recorder{}
	bus.Subscribe(rec)
	return NewGame(deck.NewDeckFrom(deck.MustParseCards(cards)...), bus, nil), rec
}

func TestCardValueAceHigh(t *testing.T) {
	assert.Equal(t, 14, CardValue(deck.NewCard(deck.Spades, deck.Ace)))
	assert.Equal(t, 13, CardValue(deck.NewCard(deck.Spades, deck.King)))
	assert.Equal(t, 12, CardValue(deck.NewCard(deck.Spades, deck.Queen)))
	assert.Equal(t, 11, CardValue(deck.NewCard(deck.Spades, deck.Jack)))
	assert.Equal(t, 2, CardValue(deck.NewCard(deck.Spades, deck.Two)))
}

func TestTiebreakAwardsWinner(t *testing.T) {
	g, rec := newTestGame("7s7hKd3c2s4s")

	result, ok, err := g.PlayRound()
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, Nobody, result.Draw.Winner)
	require.NotNil(t, result.Tiebreak)
	assert.Equal(t, deck.MustParseCards("Kd")[0], result.Tiebreak.One)
	assert.Equal(t, deck.MustParseCards("3c")[0], result.Tiebreak.Two)
	assert.Equal(t, PlayerOne, result.Winner)
	assert.Equal(t, [2]int{2, 0}, g.Scores())
	assert.Equal(t, 2, g.CardsRemaining(), "round consumed exactly four cards")
	assert.Equal(t, AwaitingContinue, g.State())

	assert.Equal(t, []event.Type{
		EventCardDrawn, EventCardDrawn, EventTie, EventCardDrawn, EventCardDrawn, EventRoundEnded,
	}, rec.Types())
}

func TestSecondTieScoresNothing(t *testing.T) {
	g, _ := newTestGame("7s7hKdKc9s2s")

	result, ok, err := g.PlayRound()
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, Nobody, result.Winner)
	require.NotNil(t, result.Tiebreak)
	assert.Equal(t, Nobody, result.Tiebreak.Winner)
	assert.Equal(t, [2]int{0, 0}, g.Scores())
	assert.Equal(t, 2, g.CardsRemaining(), "no second tiebreak draw")

	require.NoError(t, g.Continue(true))
	next, ok, err := g.PlayRound()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, PlayerOne, next.Winner)
	assert.Nil(t, next.Tiebreak)
	assert.Equal(t, [2]int{2, 0}, next.Scores)
}

func TestHigherCardWins(t *testing.T) {
	tests := []struct {
		name   string
		cards  string
		winner Player
		scores [2]int
	}{
		{"ace beats two", "As2c", PlayerOne, [2]int{2, 0}},
		{"player two ace", "2cAs", PlayerTwo, [2]int{0, 2}},
		{"king beats queen", "QhKd", PlayerTwo, [2]int{0, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, _ := newTestGame(tt.cards)
			result, ok, err := g.PlayRound()
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, tt.winner, result.Winner)
			assert.Equal(t, tt.scores, result.Scores)
		})
	}
}

func TestDeckEmptyDuringTiebreakHalts(t *testing.T) {
	g, rec := newTestGame("7s7h")

	_, ok, err := g.PlayRound()
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Equal(t, Halted, g.State())
	res := g.Result()
	assert.Equal(t, DeckEmpty, res.Reason)
	assert.Equal(t, 0, res.Rounds)
	assert.Equal(t, Nobody, res.Winner)
	assert.Equal(t, EventGameHalted, rec.Events[len(rec.Events)-1].EventType())
}

func TestPlayUntilDeckEmpty(t *testing.T) {
	d := deck.NewShuffledDeck(randutil.New(11))
	g := NewGame(d, nil, nil)

	res, err := Play(g, AlwaysContinue{})
	require.NoError(t, err)

	assert.Equal(t, DeckEmpty, res.Reason)
	assert.LessOrEqual(t, res.Rounds, deck.Size/2)
	assert.Zero(t, (res.Scores[0]+res.Scores[1])%PointsPerRound)
	assert.LessOrEqual(t, res.Scores[0]+res.Scores[1], res.Rounds*PointsPerRound)
	assert.Equal(t, 0, g.CardsRemaining())
}

func TestIdenticalDecksGiveIdenticalResults(t *testing.T) {
	play := func() Result {
		g := NewGame(deck.NewShuffledDeck(randutil.New(5)), nil, nil)
		res, err := Play(g, AlwaysContinue{})
		require.NoError(t, err)
		return res
	}

	assert.Equal(t, play(), play())
}

func TestUserStop(t *testing.T) {
	g, _ := newTestGame("As2c3s2d")

	res, err := Play(g, StopAfter{Rounds: 1})
	require.NoError(t, err)

	assert.Equal(t, UserStopped, res.Reason)
	assert.Equal(t, 1, res.Rounds)
	assert.Equal(t, PlayerOne, res.Winner)
	assert.Equal(t, 2, g.CardsRemaining())
}

func TestEqualScoresTie(t *testing.T) {
	g, _ := newTestGame("As2c2dAh")

	res, err := Play(g, AlwaysContinue{})
	require.NoError(t, err)

	assert.Equal(t, [2]int{2, 2}, res.Scores)
	assert.Equal(t, Nobody, res.Winner)
	assert.Equal(t, DeckEmpty, res.Reason)
}

func TestStateMisuse(t *testing.T) {
	g, _ := newTestGame("As2c3s2d")

	assert.ErrorIs(t, g.Continue(true), ErrNotAwaitingContinue)

	_, _, err := g.PlayRound()
	require.NoError(t, err)
	_, _, err = g.PlayRound()
	assert.ErrorIs(t, err, ErrRoundNotReady)
}

func TestPlayPropagatesAgentError(t *testing.T) {
	g, _ := newTestGame("As2c3s2d")
	boom := errors.New("closed")

	res, err := Play(g, AgentFunc(func(RoundResult) (bool, error) { return false, boom }))

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, res.Rounds)
}

func TestPlayStopsAskingOnceTiebreakRunsOut(t *testing.T) {
	g, _ := newTestGame("As2c7s7h")
	asked := 0

	res, err := Play(g, AgentFunc(func(last RoundResult) (bool, error) {
		asked++
		assert.True(t, g.Awaiting())
		return true, nil
	}))
	require.NoError(t, err)

	assert.Equal(t, 1, asked)
	assert.False(t, g.Awaiting())
	assert.Equal(t, DeckEmpty, res.Reason)
	assert.Equal(t, 1, res.Rounds)
	assert.Equal(t, PlayerOne, res.Winner)
}

func TestParseContinue(t *testing.T) {
	assert.True(t, ParseContinue("yes"))
	assert.True(t, ParseContinue(" Y "))
	assert.False(t, ParseContinue("no"))
	assert.False(t, ParseContinue("n"))
	assert.False(t, ParseContinue("maybe"))
	assert.False(t, ParseContinue(""))
}
