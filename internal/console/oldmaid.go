package console

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lox/gamecenter/internal/deck"
	"github.com/lox/gamecenter/internal/event"
	"github.com/lox/gamecenter/internal/oldmaid"
)

// RunOldMaid plays one game of Old Maid against the computer
func (c *Console) RunOldMaid() (oldmaid.Result, error) {
	c.println(c.styles.header.Render(" Old Maid "))

	logger := c.logger.With("game", "oldmaid", "session", uuid.NewString())
	bus := event.NewBus()
	bus.Subscribe(event.SubscriberFunc(c.onOldMaidEvent))

	game := oldmaid.NewGame(c.rng, bus, logger)
	res, err := oldmaid.Play(game, oldmaid.AgentFunc(c.pickCard))
	if err != nil {
		c.inputClosed(err)
		return res, err
	}
	return res, nil
}

// pickCard never re-prompts: anything unusable becomes a random draw
func (c *Console) pickCard(view oldmaid.View) (int, error) {
	c.println()
	c.println("Your hand:      ", c.cards(view.Hand))
	c.println("Computer's hand:", c.opponentHand(view.Opponent))

	line, err := c.ask(fmt.Sprintf("Pick a card from the computer's hand (1-%d): ", len(view.Opponent)))
	if err != nil {
		return oldmaid.InvalidPick, err
	}
	return oldmaid.ParsePick(line), nil
}

func (c *Console) opponentHand(cards []deck.Card) string {
	if c.opts.ShowOpponentCards {
		return c.cards(cards)
	}
	parts := make([]string, len(cards))
	for i := range cards {
		parts[i] = fmt.Sprintf("[%d]", i+1)
	}
	return c.styles.hidden.Render(strings.Join(parts, " "))
}

func (c *Console) onOldMaidEvent(e event.Event) {
	switch ev := e.(type) {
	case oldmaid.DealtEvent:
		c.printf("You discarded %s. The computer discarded %s.\n",
			plural(ev.HumanPairs, "pair"), plural(ev.ComputerPairs, "pair"))
		c.printf("You hold %s, the computer holds %s.\n",
			plural(len(ev.Hand), "card"), plural(ev.ComputerCards, "card"))

	case oldmaid.TurnEvent:
		c.oldMaidTurn(ev.Turn)

	case oldmaid.GameOverEvent:
		c.println()
		c.println(c.styles.header.Render(" Game over "))
		if ev.Result.HumanWins() {
			c.println(c.styles.success.Render("The computer is left with the Old Maid. You win!"))
		} else {
			c.println(c.styles.failure.Render("You are left holding the Old Maid. You lose!"))
		}
	}
}

func (c *Console) oldMaidTurn(t oldmaid.TurnResult) {
	if t.Side == oldmaid.Human {
		switch {
		case t.Skipped:
			c.println("The computer has no cards to draw from.")
			return
		case t.Fallback:
			c.println(c.styles.warning.Render("Invalid pick, drawing a random card instead."))
		}
		c.printf("You drew %s.\n", c.card(t.Card))
		if t.PairsRemoved > 0 {
			c.println(c.styles.success.Render("You made a pair!"))
		}
		c.printf("You have %s left.\n", plural(t.HandSize, "card"))
		return
	}

	if t.Skipped {
		c.println("You have no cards for the computer to draw.")
		return
	}
	c.printf("The computer drew %s from your hand.\n", c.card(t.Card))
	if t.PairsRemoved > 0 {
		c.println("The computer made a pair.")
	}
	c.printf("The computer has %s left.\n", plural(t.HandSize, "card"))
}
