package blackjack

import (
	"errors"
	"testing"

	"github.com/lox/gamecenter/internal/deck"
	"github.com/lox/gamecenter/internal/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRound deals from cards in order: player, dealer, player, dealer, then hits.
func newTestRound(t *testing.T, cards string) (*Round, *event.Recorder) {
	t.Helper()
	bus := event.NewBus()
	rec := &event.Recorder{}
	bus.Subscribe(rec)
	r := NewRound(deck.NewDeckFrom(deck.MustParseCards(cards)...), bus, nil)
	require.NoError(t, r.Start())
	return r, rec
}

func script(choices ...Choice) Agent {
	i := 0
	return AgentFunc(func(View) (Choice, error) {
		if i >= len(choices) {
			return Stand, nil
		}
		c := choices[i]
		i++
		return c, nil
	})
}

func TestRoundPlayerStandsDealerWins(t *testing.T) {
	r, rec := newTestRound(t, "AsKh5d7c")

	assert.Equal(t, deck.MustParseCards("As5d"), r.PlayerHand().Cards())
	assert.Equal(t, deck.MustParseCards("Kh7c"), r.DealerHand().Cards())
	assert.Equal(t, 16, r.PlayerHand().Value())
	assert.Equal(t, 17, r.DealerHand().Value())
	require.True(t, r.Awaiting())

	outcome, err := Play(r, script(Stand))
	require.NoError(t, err)

	assert.Equal(t, DealerHigher, outcome)
	assert.Equal(t, DealerWins, outcome.Winner())
	assert.Equal(t, Terminal, r.State())
	assert.Len(t, r.DealerHand().Cards(), 2, "dealer stands on 17")
	assert.Equal(t, []event.Type{
		EventHandsDealt, EventPlayerStood, EventDealerRevealed, EventRoundResolved,
	}, rec.Types())
}

func TestRoundImmediateBlackjack(t *testing.T) {
	tests := []struct {
		name    string
		cards   string
		outcome Outcome
		winner  Winner
	}{
		{"player blackjack", "As2cKh3d", PlayerBlackjack, PlayerWins},
		{"dealer blackjack", "2cAs3dKh", DealerBlackjack, DealerWins},
		{"both blackjack", "AsAcKhKd", BothBlackjack, Tie},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, rec := newTestRound(t, tt.cards)

			assert.Equal(t, Terminal, r.State())
			assert.False(t, r.Awaiting())
			assert.Equal(t, tt.outcome, r.Outcome())
			assert.Equal(t, tt.winner, r.Outcome().Winner())
			assert.Equal(t, []event.Type{EventHandsDealt, EventRoundResolved}, rec.Types())
		})
	}
}

func TestRoundDealerBlackjackShownOnDeal(t *testing.T) {
	_, rec := newTestRound(t, "2cAs3dKh")

	dealt := rec.Events[0].(HandsDealtEvent)
	assert.False(t, dealt.Dealer.HoleHidden)
	assert.Equal(t, 21, dealt.Dealer.Value)
}

func TestRoundHoleCardHiddenDuringPlayerTurn(t *testing.T) {
	r, rec := newTestRound(t, "Ts2c8h9d")

	dealt := rec.Events[0].(HandsDealtEvent)
	assert.True(t, dealt.Dealer.HoleHidden)
	assert.True(t, r.View().Dealer.HoleHidden)
	assert.Equal(t, 18, r.View().Player.Value)
}

func TestRoundPlayerBust(t *testing.T) {
	r, _ := newTestRound(t, "Ts2c6h3dKd")

	outcome, err := Play(r, script(Hit))
	require.NoError(t, err)

	assert.Equal(t, PlayerBust, outcome)
	assert.Equal(t, 26, r.PlayerHand().Value())
	assert.Len(t, r.DealerHand().Cards(), 2, "dealer does not play after a player bust")
}

func TestRoundPlayerHitsToTwentyOne(t *testing.T) {
	r, _ := newTestRound(t, "Ts2c6h3d5s")

	outcome, err := Play(r, script(Hit))
	require.NoError(t, err)

	assert.Equal(t, PlayerTwentyOne, outcome)
	assert.Equal(t, PlayerWins, outcome.Winner())
	assert.Len(t, r.DealerHand().Cards(), 2)
}

func TestRoundDealerDrawsBelowSeventeen(t *testing.T) {
	r, rec := newTestRound(t, "Ts2c8h3d4s5s6s9s")

	outcome, err := Play(r, script(Stand))
	require.NoError(t, err)

	assert.Equal(t, DealerHigher, outcome)
	assert.Equal(t, 20, r.DealerHand().Value())

	revealed := rec.Events[2].(DealerRevealedEvent)
	assert.Equal(t, deck.MustParseCards("4s5s6s"), revealed.Drawn)
	assert.False(t, revealed.Dealer.HoleHidden)
}

func TestRoundDealerBust(t *testing.T) {
	r, _ := newTestRound(t, "Ts6c9hTd8s")

	outcome, err := Play(r, script(Stand))
	require.NoError(t, err)

	assert.Equal(t, DealerBust, outcome)
	assert.Equal(t, PlayerWins, outcome.Winner())
}

func TestRoundPush(t *testing.T) {
	r, _ := newTestRound(t, "TsTc8h8d")

	outcome, err := Play(r, script(Stand))
	require.NoError(t, err)

	assert.Equal(t, Push, outcome)
	assert.Equal(t, Tie, outcome.Winner())
}

func TestRoundPlayerHigher(t *testing.T) {
	r, _ := newTestRound(t, "TsTc9h7d")

	outcome, err := Play(r, script(Stand))
	require.NoError(t, err)
	assert.Equal(t, PlayerHigher, outcome)
}

func TestRoundRejectsInputOutsidePlayerTurn(t *testing.T) {
	r, _ := newTestRound(t, "As2cKh3d")

	assert.ErrorIs(t, r.Hit(), ErrNotPlayerTurn)
	assert.ErrorIs(t, r.Stand(), ErrNotPlayerTurn)
	assert.ErrorIs(t, r.Start(), ErrAlreadyDealt)
}

func TestRoundHitOnEmptyDeckStands(t *testing.T) {
	r, _ := newTestRound(t, "TsTc8h8d")

	require.NoError(t, r.Hit())
	assert.Equal(t, Terminal, r.State())
	assert.Equal(t, Push, r.Outcome())
	assert.Len(t, r.PlayerHand().Cards(), 2)
}

func TestPlayPropagatesAgentError(t *testing.T) {
	r := NewRound(deck.NewDeckFrom(deck.MustParseCards("Ts2c8h3d")...), nil, nil)
	boom := errors.New("input closed")

	outcome, err := Play(r, AgentFunc(func(View) (Choice, error) { return Hit, boom }))

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, Undecided, outcome)
	assert.True(t, r.Awaiting())
}

func TestParseChoice(t *testing.T) {
	tests := []struct {
		input string
		want  Choice
		ok    bool
	}{
		{"hit", Hit, true},
		{"H", Hit, true},
		{" Stand ", Stand, true},
		{"s", Stand, true},
		{"", 0, false},
		{"double", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseChoice(tt.input)
		assert.Equal(t, tt.ok, ok, "input %q", tt.input)
		if tt.ok {
			assert.Equal(t, tt.want, got, "input %q", tt.input)
		}
	}
}

func TestThresholdAgent(t *testing.T) {
	agent := ThresholdAgent{StandOn: DealerStandsOn}

	c, err := agent.Decide(View{Player: HandView{Value: 16}})
	require.NoError(t, err)
	assert.Equal(t, Hit, c)

	c, err = agent.Decide(View{Player: HandView{Value: 17}})
	require.NoError(t, err)
	assert.Equal(t, Stand, c)
}
