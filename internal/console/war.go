package console

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/lox/gamecenter/internal/event"
	"github.com/lox/gamecenter/internal/war"
)

// RunWar plays one game of War until the deck runs out or the player stops
func (c *Console) RunWar() (war.Result, error) {
	c.println(c.styles.header.Render(" War "))

	logger := c.logger.With("game", "war", "session", uuid.NewString())
	bus := event.NewBus()
	bus.Subscribe(event.SubscriberFunc(c.onWarEvent))

	game := war.NewGame(c.newDeck(), bus, logger)
	res, err := war.Play(game, war.AgentFunc(c.keepPlaying))
	if err != nil {
		c.inputClosed(err)
		return res, err
	}
	return res, nil
}

func (c *Console) keepPlaying(war.RoundResult) (bool, error) {
	line, err := c.ask("Play another round? (yes/no): ")
	if err != nil {
		return false, err
	}
	return war.ParseContinue(line), nil
}

func (c *Console) onWarEvent(e event.Event) {
	switch ev := e.(type) {
	case war.CardDrawnEvent:
		c.printf("%s draws %s\n", ev.Player, c.card(ev.Card))

	case war.TieEvent:
		c.println(c.styles.warning.Render("Tie! Drawing again..."))

	case war.RoundEndedEvent:
		r := ev.Result
		switch {
		case r.Winner != war.Nobody:
			c.println(c.styles.success.Render(fmt.Sprintf("%s wins round %d.", r.Winner, r.Number)))
		default:
			c.println(c.styles.warning.Render("Tied again. No points awarded."))
		}
		c.println(c.styles.info.Render(c.warScore(r.Scores)))

	case war.GameHaltedEvent:
		r := ev.Result
		c.println()
		switch r.Reason {
		case war.DeckEmpty:
			c.println("The deck is empty.")
		case war.UserStopped:
			c.println("Game stopped.")
		}
		c.println(c.styles.header.Render(" Game over "))
		c.println(c.warScore(r.Scores))
		switch r.Winner {
		case war.Nobody:
			c.println(c.styles.warning.Render(fmt.Sprintf("The game is a tie after %s.", plural(r.Rounds, "round"))))
		default:
			c.println(c.styles.success.Render(fmt.Sprintf("%s wins the game after %s!", r.Winner, plural(r.Rounds, "round"))))
		}
	}
}

func (c *Console) warScore(scores [2]int) string {
	return fmt.Sprintf("Score: %s %d, %s %d", war.PlayerOne, scores[0], war.PlayerTwo, scores[1])
}
