package console

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/lox/gamecenter/internal/blackjack"
	"github.com/lox/gamecenter/internal/event"
)

// RunBlackjack plays a session of Blackjack rounds against the dealer
func (c *Console) RunBlackjack() (blackjack.Tally, error) {
	c.println(c.styles.header.Render(" Blackjack "))

	rounds := c.opts.Rounds
	if rounds == 0 {
		n, err := c.ReadGameCount("How many games would you like to play? ")
		if err != nil {
			c.inputClosed(err)
			return blackjack.Tally{}, err
		}
		rounds = n
	}

	logger := c.logger.With("game", "blackjack", "session", uuid.NewString())
	bus := event.NewBus()
	bus.Subscribe(event.SubscriberFunc(c.onBlackjackEvent))

	session := blackjack.NewSession(blackjack.SessionConfig{
		Rounds:  rounds,
		NewDeck: c.newDeck,
		Bus:     bus,
		Logger:  logger,
	})
	tally, err := session.Run(blackjack.AgentFunc(c.hitOrStand))
	if err != nil {
		c.inputClosed(err)
		return tally, err
	}
	return tally, nil
}

// hitOrStand asks until a recognised choice is typed
func (c *Console) hitOrStand(blackjack.View) (blackjack.Choice, error) {
	for {
		line, err := c.ask("Hit or stand? (h/s): ")
		if err != nil {
			return blackjack.Stand, err
		}
		if choice, ok := blackjack.ParseChoice(line); ok {
			return choice, nil
		}
		c.println(c.styles.failure.Render("Invalid choice. Please type hit or stand."))
	}
}

func (c *Console) onBlackjackEvent(e event.Event) {
	switch ev := e.(type) {
	case blackjack.RoundStartedEvent:
		c.println()
		c.println(c.styles.info.Render(fmt.Sprintf("Game %d of %d", ev.Number, ev.Total)))

	case blackjack.HandsDealtEvent:
		c.println("Dealer's hand:", c.handView(ev.Dealer))
		c.println("Your hand:    ", c.handView(ev.Player))

	case blackjack.PlayerHitEvent:
		c.printf("You drew %s. Your hand: %s\n", c.card(ev.Card), c.handView(ev.Player))

	case blackjack.PlayerStoodEvent:
		c.printf("You stand on %d.\n", ev.Value)

	case blackjack.DealerRevealedEvent:
		for _, card := range ev.Drawn {
			c.printf("Dealer draws %s.\n", c.card(card))
		}
		c.println("Dealer's hand:", c.handView(ev.Dealer))

	case blackjack.RoundResolvedEvent:
		switch ev.Outcome {
		case blackjack.PlayerBlackjack, blackjack.PlayerTwentyOne, blackjack.PlayerBust:
			// the dealer never played, so the hole card has not been shown
			c.println("Dealer had:   ", c.handView(ev.Dealer))
		}
		c.println(c.outcomeMessage(ev))

	case blackjack.SessionEndedEvent:
		t := ev.Tally
		c.println()
		c.println(c.styles.header.Render(" Session over "))
		c.printf("Games played: %d. You won %d, the dealer won %d, %s.\n",
			t.Rounds, t.PlayerWins, t.DealerWins, plural(t.Ties, "tie"))
	}
}

func (c *Console) handView(v blackjack.HandView) string {
	if v.HoleHidden {
		rest := ""
		if len(v.Cards) > 1 {
			rest = " " + c.cards(v.Cards[1:])
		}
		return c.hidden() + rest
	}
	return fmt.Sprintf("%s (%d)", c.cards(v.Cards), v.Value)
}

func (c *Console) outcomeMessage(ev blackjack.RoundResolvedEvent) string {
	player, dealer := ev.Player.Value, ev.Dealer.Value
	var msg string
	switch ev.Outcome {
	case blackjack.BothBlackjack:
		msg = "You and the dealer both have blackjack. It's a tie!"
	case blackjack.PlayerBlackjack:
		msg = "Blackjack! You win!"
	case blackjack.DealerBlackjack:
		msg = "The dealer has blackjack. Dealer wins."
	case blackjack.PlayerTwentyOne:
		msg = "Twenty-one! You win!"
	case blackjack.PlayerBust:
		msg = fmt.Sprintf("Bust with %d! Dealer wins.", player)
	case blackjack.DealerBust:
		msg = fmt.Sprintf("The dealer busts with %d. You win!", dealer)
	case blackjack.PlayerHigher:
		msg = fmt.Sprintf("You win, %d to %d!", player, dealer)
	case blackjack.DealerHigher:
		msg = fmt.Sprintf("Dealer wins, %d to %d.", dealer, player)
	case blackjack.Push:
		msg = fmt.Sprintf("It's a tie at %d.", player)
	default:
		msg = ev.Outcome.String()
	}

	switch ev.Outcome.Winner() {
	case blackjack.PlayerWins:
		return c.styles.success.Render(msg)
	case blackjack.DealerWins:
		return c.styles.failure.Render(msg)
	default:
		return c.styles.warning.Render(msg)
	}
}
